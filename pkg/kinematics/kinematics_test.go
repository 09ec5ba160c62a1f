package kinematics

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/quadrupedlab/go-a1/pkg/posture"
)

const floatTolerance = 1e-9

func anglesEqual(a, b JointAngles) bool {
	return math.Abs(a.HipAA-b.HipAA) < floatTolerance &&
		math.Abs(a.HipFE-b.HipFE) < floatTolerance &&
		math.Abs(a.Knee-b.Knee) < floatTolerance
}

func TestForwardStandingPose(t *testing.T) {
	// Straight hip, bent knee: the startup pose commanded by the bridge.
	j := JointAngles{HipAA: 0, HipFE: 0.7, Knee: -1.4}

	right := Forward(posture.FrontRight, A1LegGeometry, j)
	left := Forward(posture.FrontLeft, A1LegGeometry, j)

	// With a zero hip angle the toe sits one hip offset out to the side.
	if math.Abs(right.Y-A1LegGeometry.HipOffset) > floatTolerance {
		t.Errorf("right toe y: got %v, want %v", right.Y, A1LegGeometry.HipOffset)
	}
	if math.Abs(left.Y+A1LegGeometry.HipOffset) > floatTolerance {
		t.Errorf("left toe y: got %v, want %v", left.Y, -A1LegGeometry.HipOffset)
	}
	// Toe is beneath the hip, x and z shared between sides.
	if right.Z >= 0 || math.Abs(right.Z-left.Z) > floatTolerance {
		t.Errorf("toe z: right %v, left %v", right.Z, left.Z)
	}
	if math.Abs(right.X-left.X) > floatTolerance {
		t.Errorf("toe x: right %v, left %v", right.X, left.X)
	}
}

func TestInverseRoundTrip(t *testing.T) {
	cases := []JointAngles{
		{HipAA: 0.1, HipFE: 0.7, Knee: -1.4},
		{HipAA: 0, HipFE: 0.7, Knee: -1.4},
		{HipAA: -0.3, HipFE: 1.1, Knee: -2.0},
		{HipAA: 0.25, HipFE: 0.4, Knee: -1.0},
	}

	for _, leg := range posture.Legs() {
		for _, want := range cases {
			p := Forward(leg, A1LegGeometry, want)
			got, err := Inverse(leg, A1LegGeometry, p)
			if err != nil {
				t.Fatalf("%s %+v: %v", leg, want, err)
			}
			if !anglesEqual(got, want) {
				t.Errorf("%s: round trip %+v -> %+v", leg, want, got)
			}
		}
	}
}

func TestInverseUnreachable(t *testing.T) {
	cases := []r3.Vector{
		{X: 0, Y: 10, Z: 10},    // inside the hip offset cylinder
		{X: 0, Y: 80, Z: -500},  // beyond full leg extension
		{X: 500, Y: 80, Z: -10}, // too far forward
	}

	for _, p := range cases {
		if _, err := Inverse(posture.FrontRight, A1LegGeometry, p); !errors.Is(err, ErrUnreachable) {
			t.Errorf("Inverse(%v): got %v, want ErrUnreachable", p, err)
		}
	}
}

func TestLimitsCheck(t *testing.T) {
	ok := JointAngles{HipAA: 0, HipFE: 0.7, Knee: -1.4}
	if err := A1Limits.Check(ok); err != nil {
		t.Errorf("Check(%+v): unexpected error %v", ok, err)
	}

	bad := []JointAngles{
		{HipAA: 0.9, HipFE: 0.7, Knee: -1.4},
		{HipAA: 0, HipFE: -1.2, Knee: -1.4},
		{HipAA: 0, HipFE: 0.7, Knee: -0.5},
		{HipAA: 0, HipFE: 0.7, Knee: -2.8},
	}
	for _, j := range bad {
		if err := A1Limits.Check(j); !errors.Is(err, ErrMotorLimit) {
			t.Errorf("Check(%+v): got %v, want ErrMotorLimit", j, err)
		}
	}
}
