// Package kinematics implements the closed-form forward and inverse
// kinematics of a 3-DOF quadruped leg: hip abduction/adduction, hip
// flexion/extension and knee. Coordinates are toe positions relative to the
// hip, in millimetres.
package kinematics

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"github.com/quadrupedlab/go-a1/pkg/posture"
)

// ErrUnreachable is returned by Inverse when the target point lies outside
// the leg's workspace.
var ErrUnreachable = errors.New("target outside leg workspace")

// LegGeometry holds the link lengths of one leg in millimetres.
type LegGeometry struct {
	ThighLen  float64
	ShankLen  float64
	HipOffset float64
}

// A1LegGeometry is the Unitree A1 leg, measured from the STL files of the
// thigh and calf.
var A1LegGeometry = LegGeometry{
	ThighLen:  200,
	ShankLen:  200,
	HipOffset: 80,
}

// JointAngles holds the angular positions of the three motors of one leg,
// in radians.
type JointAngles struct {
	HipAA float64 `json:"hip_aa"` // hip abduction/adduction
	HipFE float64 `json:"hip_fe"` // hip flexion/extension
	Knee  float64 `json:"knee"`
}

// Forward computes the toe position relative to the hip from the three motor
// angles. Left and right legs mirror each other in the sign of the hip
// offset.
func Forward(leg posture.Leg, geom LegGeometry, j JointAngles) r3.Vector {
	l1 := geom.ThighLen
	l2 := geom.ShankLen
	o := geom.HipOffset

	// h is the distance from the toe to the top centre of the thigh rod.
	h := l1*math.Cos(j.HipFE) + l2*math.Cos(j.HipFE+j.Knee)
	x := -l1*math.Sin(j.HipFE) - l2*math.Sin(j.HipFE+j.Knee)

	var y, z float64
	if leg.IsRight() {
		y = o*math.Cos(j.HipAA) - h*math.Sin(j.HipAA)
		z = -o*math.Sin(j.HipAA) - h*math.Cos(j.HipAA)
	} else {
		y = -o*math.Cos(j.HipAA) - h*math.Sin(j.HipAA)
		z = o*math.Sin(j.HipAA) - h*math.Cos(j.HipAA)
	}

	return r3.Vector{X: x, Y: y, Z: z}
}

// Inverse computes the three motor angles that place the toe at p, relative
// to the hip. The knee solution takes the negative root because the A1 knee
// only bends backwards. Returns ErrUnreachable when p lies outside the
// workspace.
func Inverse(leg posture.Leg, geom LegGeometry, p r3.Vector) (JointAngles, error) {
	l1 := geom.ThighLen
	l2 := geom.ShankLen
	o := geom.HipOffset

	hsq := p.Z*p.Z + p.Y*p.Y - o*o
	if hsq < 0 {
		return JointAngles{}, fmt.Errorf("%s: %w", leg, ErrUnreachable)
	}
	h := math.Sqrt(hsq)

	cosKnee := (-l1*l1 - l2*l2 + p.X*p.X + hsq) / (2 * l1 * l2)
	if cosKnee < -1 || cosKnee > 1 {
		return JointAngles{}, fmt.Errorf("%s: %w", leg, ErrUnreachable)
	}
	sinKnee := -math.Sqrt(1 - cosKnee*cosKnee)

	var hipAA float64
	if leg.IsRight() {
		hipAA = math.Atan2(math.Abs(p.Z), p.Y) - math.Atan2(h, o)
	} else {
		hipAA = math.Atan2(h, o) - math.Atan2(math.Abs(p.Z), -p.Y)
	}

	reach := math.Sqrt(p.X*p.X + hsq)
	cosFE := (l1*l1 + p.X*p.X + hsq - l2*l2) / (2 * l1 * reach)
	if cosFE < -1 || cosFE > 1 {
		return JointAngles{}, fmt.Errorf("%s: %w", leg, ErrUnreachable)
	}

	return JointAngles{
		HipAA: hipAA,
		HipFE: math.Acos(cosFE) - math.Atan2(p.X, h),
		Knee:  math.Atan2(sinKnee, cosKnee),
	}, nil
}
