// Package robot provides interfaces and implementations for driving a
// simulated quadruped through the physics-sim bridge daemon.
//
// This package follows the Interface Segregation Principle (ISP) by defining
// small, focused interfaces that can be composed as needed. Consumers should
// depend only on the interfaces they actually use.
package robot

import (
	"math"

	"github.com/quadrupedlab/go-a1/pkg/kinematics"
	"github.com/quadrupedlab/go-a1/pkg/posture"
)

// Posture is the full 12-motor state of the robot: one JointAngles per leg,
// indexed by posture.Leg in the order front-right, front-left, hind-right,
// hind-left.
type Posture [4]kinematics.JointAngles

// StandingPosture is the startup pose commanded after loading the model:
// straight hips, knees bent so the toes sit beneath the hips.
func StandingPosture() Posture {
	var p Posture
	for i := range p {
		p[i] = kinematics.JointAngles{HipAA: 0, HipFE: 0.7, Knee: -1.4}
	}
	return p
}

// Leg returns the joint angles of the given leg.
func (p Posture) Leg(l posture.Leg) kinematics.JointAngles {
	return p[l]
}

// SetLeg sets the joint angles of the given leg.
func (p *Posture) SetLeg(l posture.Leg, j kinematics.JointAngles) {
	p[l] = j
}

// EqualApprox reports whether every joint angle of p is within tol radians of
// the corresponding angle of other.
func (p Posture) EqualApprox(other Posture, tol float64) bool {
	for i := range p {
		if math.Abs(p[i].HipAA-other[i].HipAA) > tol ||
			math.Abs(p[i].HipFE-other[i].HipFE) > tol ||
			math.Abs(p[i].Knee-other[i].Knee) > tol {
			return false
		}
	}
	return true
}

// State is the bridge daemon's view of the simulation.
type State struct {
	Connected bool   `json:"connected"`
	SimState  string `json:"sim_state"`
	Error     string `json:"error,omitempty"`
}
