// Package control implements the posture-adjustment control loop: it turns a
// target body attitude into per-leg motor targets and streams them to the
// simulator bridge at a fixed rate.
package control

import (
	"fmt"

	"github.com/quadrupedlab/go-a1/pkg/kinematics"
	"github.com/quadrupedlab/go-a1/pkg/posture"
	"github.com/quadrupedlab/go-a1/pkg/robot"
)

// Adjuster computes the motor targets that realise a body attitude while the
// feet stay planted. It is stateless; the reference posture is supplied per
// call.
type Adjuster struct {
	Body   posture.Geometry
	Leg    kinematics.LegGeometry
	Limits kinematics.Limits
}

// NewA1Adjuster returns an Adjuster configured for the Unitree A1.
func NewA1Adjuster(body posture.Geometry) Adjuster {
	return Adjuster{
		Body:   body,
		Leg:    kinematics.A1LegGeometry,
		Limits: kinematics.A1Limits,
	}
}

// Adjust maps a reference posture through the attitude change and returns the
// new motor targets. deltaZ lowers each toe relative to its hip before the
// rotation, which stands in for body height on uneven terrain.
//
// The adjustment is all or nothing: if any leg's target is unreachable or
// exceeds a motor limit, an error is returned and no partial posture is
// produced.
func (a Adjuster) Adjust(ref robot.Posture, att posture.Attitude, deltaZ float64) (robot.Posture, error) {
	var out robot.Posture
	for _, leg := range posture.Legs() {
		toe := kinematics.Forward(leg, a.Leg, ref.Leg(leg))
		toe.Z -= deltaZ

		toe = posture.AdjustFoot(leg, att, a.Body, toe)

		j, err := kinematics.Inverse(leg, a.Leg, toe)
		if err != nil {
			return robot.Posture{}, fmt.Errorf("adjust %s: %w", leg, err)
		}
		if err := a.Limits.Check(j); err != nil {
			return robot.Posture{}, fmt.Errorf("adjust %s: %w", leg, err)
		}
		out.SetLeg(leg, j)
	}
	return out, nil
}
