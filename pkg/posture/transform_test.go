package posture

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func vecEquals(a, b r3.Vector) bool {
	return floatEquals(a.X, b.X) && floatEquals(a.Y, b.Y) && floatEquals(a.Z, b.Z)
}

func TestZeroAttitudeIsIdentity(t *testing.T) {
	geom := Geometry{L: 180, W: 100}
	points := []r3.Vector{
		{X: 0, Y: 0, Z: 0},
		{X: 12.5, Y: -80, Z: -346},
		{X: -50, Y: 42, Z: 7},
	}

	for _, leg := range Legs() {
		for _, p := range points {
			if got := Apply(YawMatrix(0, geom, leg.IsFront(), leg.IsRight()), p); !vecEquals(got, p) {
				t.Errorf("%s yaw(0): got %v, want %v", leg, got, p)
			}
			if got := Apply(PitchMatrix(0, geom, leg.IsFront()), p); !vecEquals(got, p) {
				t.Errorf("%s pitch(0): got %v, want %v", leg, got, p)
			}
			if got := Apply(RollMatrix(0, geom, leg.IsRight()), p); !vecEquals(got, p) {
				t.Errorf("%s roll(0): got %v, want %v", leg, got, p)
			}
		}
	}
}

func TestYawQuarterTurnTranslation(t *testing.T) {
	// At 90 degrees the origin picks up the pure translation term:
	// (L*cos - W*sin - L, L*sin + W*cos - W) = (-2, 0) for L = W = 1.
	geom := Geometry{L: 1, W: 1}
	m := YawMatrix(math.Pi/2, geom, true, true)

	got := Apply(m, r3.Vector{})
	want := r3.Vector{X: -2, Y: 0, Z: 0}
	if !vecEquals(got, want) {
		t.Errorf("front-right yaw(90deg) of origin: got %v, want %v", got, want)
	}
}

func TestYawLegVariants(t *testing.T) {
	// Each leg's translation cancels its own attachment offset, so yawing the
	// attachment point itself must keep it on the circle of radius
	// sqrt(L^2+W^2) about the body centre.
	geom := Geometry{L: 180, W: 100}
	radius := math.Hypot(geom.L, geom.W)
	angle := 0.3

	// y axis points to the robot's right in this convention.
	attach := map[Leg]r3.Vector{
		FrontRight: {X: geom.L, Y: geom.W},
		FrontLeft:  {X: geom.L, Y: -geom.W},
		HindRight:  {X: -geom.L, Y: geom.W},
		HindLeft:   {X: -geom.L, Y: -geom.W},
	}

	for _, leg := range Legs() {
		// Applying the transform to the attachment-local origin yields the
		// translation term, which is rotate(attach) - attach.
		got := Apply(YawMatrix(angle, geom, leg.IsFront(), leg.IsRight()), r3.Vector{})
		rotated := attach[leg].Add(got)
		if r := math.Hypot(rotated.X, rotated.Y); !floatEquals(r, radius) {
			t.Errorf("%s: rotated attachment radius %v, want %v", leg, r, radius)
		}
	}
}

func TestPitchLeavesYInvariant(t *testing.T) {
	geom := Geometry{L: 180, W: 100}
	p := r3.Vector{X: 30, Y: -77.3, Z: -350}

	for _, front := range []bool{true, false} {
		got := Apply(PitchMatrix(0.4, geom, front), p)
		if !floatEquals(got.Y, p.Y) {
			t.Errorf("front=%v: pitch moved y from %v to %v", front, p.Y, got.Y)
		}
	}
}

func TestRollLeftRightMirror(t *testing.T) {
	// The left-leg roll matrix is the right-leg matrix with W negated.
	angle := 0.25
	geom := Geometry{L: 180, W: 100}
	mirror := Geometry{L: geom.L, W: -geom.W}

	right := RollMatrix(angle, geom, true)
	left := RollMatrix(angle, mirror, false)

	if !mat.EqualApprox(right, left, floatTolerance) {
		t.Errorf("roll right != roll left under W -> -W:\n%v\nvs\n%v",
			mat.Formatted(right), mat.Formatted(left))
	}
}

func TestAttitudeIsZero(t *testing.T) {
	if !(Attitude{}).IsZero() {
		t.Error("zero-value attitude must report IsZero")
	}
	nonZero := []Attitude{
		{Yaw: 0.01},
		{Pitch: -0.3},
		{Roll: 1e-9},
	}
	for _, a := range nonZero {
		if a.IsZero() {
			t.Errorf("%+v must not report IsZero", a)
		}
	}
}

func TestZeroCompositionIsIdentity(t *testing.T) {
	geom := Geometry{L: 180, W: 100}
	p := r3.Vector{X: 5, Y: -97, Z: -340}

	for _, leg := range Legs() {
		if got := AdjustFoot(leg, Attitude{}, geom, p); !vecEquals(got, p) {
			t.Errorf("%s: zero adjustment moved %v to %v", leg, p, got)
		}
	}
}

func TestRotationBlockDeterminant(t *testing.T) {
	geom := Geometry{L: 180, W: 100}
	angles := []float64{-1.2, -0.5, -0.01, 0, 0.3, 0.7854, 1.5, 3.0}

	det2 := func(m *mat.Dense, i, j int) float64 {
		return m.At(i, i)*m.At(j, j) - m.At(i, j)*m.At(j, i)
	}

	for _, a := range angles {
		if d := det2(YawMatrix(a, geom, true, true), 0, 1); !floatEquals(d, 1) {
			t.Errorf("yaw(%v): det %v, want 1", a, d)
		}
		if d := det2(PitchMatrix(a, geom, false), 0, 1); !floatEquals(d, 1) {
			t.Errorf("pitch(%v): det %v, want 1", a, d)
		}
		if d := det2(RollMatrix(a, geom, false), 1, 2); !floatEquals(d, 1) {
			t.Errorf("roll(%v): det %v, want 1", a, d)
		}
	}
}

func TestDegenerateGeometry(t *testing.T) {
	// L = 0 or W = 0 collapses the translation terms but stays well defined.
	p := r3.Vector{X: 10, Y: 20, Z: 30}
	got := Apply(RollMatrix(0.5, Geometry{L: 180, W: 0}, true), p)

	c, s := math.Cos(0.5), math.Sin(0.5)
	want := r3.Vector{X: p.X, Y: c*p.Y - s*p.Z, Z: s*p.Y + c*p.Z}
	if !vecEquals(got, want) {
		t.Errorf("roll with W=0: got %v, want pure rotation %v", got, want)
	}
}
