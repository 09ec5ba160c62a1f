// Package posture implements the coordinate transforms that keep a quadruped's
// feet planted while its body yaws, pitches or rolls.
//
// Each rotation mode has four matrix variants, one per leg, because the leg
// attachment points sit at (±L, ±W) from the body centre. The matrices are
// affine: a rotation block plus a translation term that cancels the attachment
// offset, so that at zero angle every matrix is the identity. Matrices are
// rebuilt on every call; the attitude changes each control tick, so there is
// nothing worth caching.
package posture

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Geometry holds the half dimensions of the robot body. The leg attachment
// points are at (±L, ±W) in the body frame.
type Geometry struct {
	L float64 // half body length
	W float64 // half body width
}

// Attitude is the body orientation in radians.
type Attitude struct {
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
	Roll  float64 `json:"roll"`
}

// IsZero reports whether all three angles are exactly zero.
func (a Attitude) IsZero() bool {
	return a.Yaw == 0 && a.Pitch == 0 && a.Roll == 0
}

// sign returns +1 or -1 for the front/right leg variants.
func sign(positive bool) float64 {
	if positive {
		return 1
	}
	return -1
}

// YawMatrix returns the 4x4 affine transform for yawing the body by angle
// radians. The rotation acts on x and y; z is unaffected. The translation
// cancels the (±L, ±W) attachment offset of the selected leg so that a zero
// angle maps every point to itself.
func YawMatrix(angle float64, geom Geometry, front, right bool) *mat.Dense {
	c, s := math.Cos(angle), math.Sin(angle)
	f := sign(front)
	r := sign(right)
	l := f * geom.L
	w := -r * geom.W
	return mat.NewDense(4, 4, []float64{
		c, -s, 0, l*c + w*s - l,
		s, c, 0, l*s - w*c + w,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}

// PitchMatrix returns the 3x3 affine transform for pitching the body by angle
// radians. It acts on the homogeneous (x, z, 1) vector; y is invariant under
// pitch, which is why this mode needs only a 3x3 matrix.
func PitchMatrix(angle float64, geom Geometry, front bool) *mat.Dense {
	c, s := math.Cos(angle), math.Sin(angle)
	l := sign(front) * geom.L
	return mat.NewDense(3, 3, []float64{
		c, -s, l * (c - 1),
		s, c, l * s,
		0, 0, 1,
	})
}

// RollMatrix returns the 4x4 affine transform for rolling the body by angle
// radians. The rotation acts on y and z; x is unaffected.
func RollMatrix(angle float64, geom Geometry, right bool) *mat.Dense {
	c, s := math.Cos(angle), math.Sin(angle)
	w := sign(right) * geom.W
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, c, -s, w * (c - 1),
		0, s, c, w * s,
		0, 0, 0, 1,
	})
}

// Apply multiplies an affine transform matrix onto a point. A 4x4 matrix acts
// on (x, y, z, 1); a 3x3 matrix is a pitch transform and acts on (x, z, 1),
// leaving y untouched.
func Apply(m *mat.Dense, p r3.Vector) r3.Vector {
	rows, _ := m.Dims()
	if rows == 3 {
		var out mat.VecDense
		out.MulVec(m, mat.NewVecDense(3, []float64{p.X, p.Z, 1}))
		return r3.Vector{X: out.AtVec(0), Y: p.Y, Z: out.AtVec(1)}
	}
	var out mat.VecDense
	out.MulVec(m, mat.NewVecDense(4, []float64{p.X, p.Y, p.Z, 1}))
	return r3.Vector{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

// AdjustFoot maps a foot position through the full attitude change: roll,
// then pitch, then yaw. The order matters and matches the derivation the
// matrices came from.
func AdjustFoot(leg Leg, att Attitude, geom Geometry, foot r3.Vector) r3.Vector {
	if att.IsZero() {
		return foot
	}
	p := Apply(RollMatrix(att.Roll, geom, leg.IsRight()), foot)
	p = Apply(PitchMatrix(att.Pitch, geom, leg.IsFront()), p)
	return Apply(YawMatrix(att.Yaw, geom, leg.IsFront(), leg.IsRight()), p)
}
