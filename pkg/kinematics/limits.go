package kinematics

import (
	"errors"
	"fmt"
)

// ErrMotorLimit is returned when a joint angle exceeds its motor's range.
var ErrMotorLimit = errors.New("motor limit reached")

// Range is one motor's angular travel in radians, exclusive at both ends.
type Range struct {
	Min, Max float64
}

// Contains reports whether v lies strictly inside the range.
func (r Range) Contains(v float64) bool {
	return r.Min < v && v < r.Max
}

// Limits holds the angular travel of the three motors of one leg.
type Limits struct {
	HipAA Range
	HipFE Range
	Knee  Range
}

// A1Limits are the motor limits of the Unitree A1.
var A1Limits = Limits{
	HipAA: Range{Min: -0.803, Max: 0.803},
	HipFE: Range{Min: -1.047, Max: 4.189},
	Knee:  Range{Min: -2.697, Max: -0.916},
}

// Check returns ErrMotorLimit (wrapped with the offending motor) if any joint
// angle is out of range.
func (l Limits) Check(j JointAngles) error {
	switch {
	case !l.HipAA.Contains(j.HipAA):
		return fmt.Errorf("hip abduction/adduction %.4f outside (%.3f, %.3f): %w",
			j.HipAA, l.HipAA.Min, l.HipAA.Max, ErrMotorLimit)
	case !l.HipFE.Contains(j.HipFE):
		return fmt.Errorf("hip flexion/extension %.4f outside (%.3f, %.3f): %w",
			j.HipFE, l.HipFE.Min, l.HipFE.Max, ErrMotorLimit)
	case !l.Knee.Contains(j.Knee):
		return fmt.Errorf("knee %.4f outside (%.3f, %.3f): %w",
			j.Knee, l.Knee.Min, l.Knee.Max, ErrMotorLimit)
	}
	return nil
}
