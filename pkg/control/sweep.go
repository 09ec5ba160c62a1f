package control

import (
	"math"
	"time"

	"github.com/quadrupedlab/go-a1/pkg/posture"
)

// Sweep is a scripted attitude trajectory that the Manager can play instead
// of a manually set target. Sweeps replace the interactive sliders of the
// original simulator UI.
type Sweep interface {
	// Name returns the sweep identifier (for logging).
	Name() string

	// Duration returns the total duration of the sweep.
	// Returns 0 for infinite/continuous sweeps.
	Duration() time.Duration

	// Evaluate returns the attitude at time t since sweep start.
	Evaluate(t time.Duration) posture.Attitude

	// IsComplete returns true when the sweep has finished.
	IsComplete(t time.Duration) bool
}

// triangle maps t through one period of a triangle wave in [-1, 1],
// starting and ending at zero.
func triangle(t, period time.Duration) float64 {
	phase := math.Mod(t.Seconds()/period.Seconds(), 1)
	switch {
	case phase < 0.25:
		return 4 * phase
	case phase < 0.75:
		return 2 - 4*phase
	default:
		return 4*phase - 4
	}
}

// RollSweep tilts the body side to side through ±Amplitude radians.
type RollSweep struct {
	Amplitude float64
	Period    time.Duration
	Cycles    int // 0 means run forever
}

func (s *RollSweep) Name() string { return "roll-sweep" }

func (s *RollSweep) Duration() time.Duration {
	if s.Cycles == 0 {
		return 0
	}
	return time.Duration(s.Cycles) * s.Period
}

func (s *RollSweep) Evaluate(t time.Duration) posture.Attitude {
	if s.IsComplete(t) {
		return posture.Attitude{}
	}
	return posture.Attitude{Roll: s.Amplitude * triangle(t, s.Period)}
}

func (s *RollSweep) IsComplete(t time.Duration) bool {
	return s.Cycles > 0 && t >= s.Duration()
}

// PitchSweep nods the body through ±Amplitude radians.
type PitchSweep struct {
	Amplitude float64
	Period    time.Duration
	Cycles    int
}

func (s *PitchSweep) Name() string { return "pitch-sweep" }

func (s *PitchSweep) Duration() time.Duration {
	if s.Cycles == 0 {
		return 0
	}
	return time.Duration(s.Cycles) * s.Period
}

func (s *PitchSweep) Evaluate(t time.Duration) posture.Attitude {
	if s.IsComplete(t) {
		return posture.Attitude{}
	}
	return posture.Attitude{Pitch: s.Amplitude * triangle(t, s.Period)}
}

func (s *PitchSweep) IsComplete(t time.Duration) bool {
	return s.Cycles > 0 && t >= s.Duration()
}

// Ramp interpolates linearly from a zero attitude to Target over Length.
type Ramp struct {
	Target posture.Attitude
	Length time.Duration
}

func (r *Ramp) Name() string { return "ramp" }

func (r *Ramp) Duration() time.Duration { return r.Length }

func (r *Ramp) Evaluate(t time.Duration) posture.Attitude {
	if t >= r.Length || r.Length == 0 {
		return r.Target
	}
	alpha := t.Seconds() / r.Length.Seconds()
	return posture.Attitude{
		Yaw:   alpha * r.Target.Yaw,
		Pitch: alpha * r.Target.Pitch,
		Roll:  alpha * r.Target.Roll,
	}
}

func (r *Ramp) IsComplete(t time.Duration) bool { return t >= r.Length }
