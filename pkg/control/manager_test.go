package control

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrupedlab/go-a1/pkg/posture"
	"github.com/quadrupedlab/go-a1/pkg/robot"
)

func newTestManager(t *testing.T) (*Manager, *robot.Mock) {
	t.Helper()
	mock := robot.NewMock()
	m := NewManager(mock, NewA1Adjuster(testBody), 33*time.Millisecond)
	require.NoError(t, m.CaptureReference())
	return m, mock
}

func TestManagerDeadZone(t *testing.T) {
	m, mock := newTestManager(t)

	m.SetAttitude(posture.Attitude{Roll: 0.04}, 0)
	m.tick()
	m.tick() // same attitude again

	assert.Len(t, mock.Commands(), 1, "unchanged attitude must not be re-sent")
	assert.Equal(t, uint64(1), m.Snapshot().Skipped)
}

func TestManagerRateLimitsSteps(t *testing.T) {
	m, mock := newTestManager(t)

	m.SetAttitude(posture.Attitude{Roll: 0.5}, 0)
	m.tick()

	// First tick ramps from zero by at most maxStepRad.
	require.Len(t, mock.Commands(), 1)
	assert.InDelta(t, maxStepRad, m.Snapshot().Attitude.Roll, 1e-12)

	want, err := NewA1Adjuster(testBody).Adjust(robot.StandingPosture(), posture.Attitude{Roll: maxStepRad}, 0)
	require.NoError(t, err)
	assert.True(t, mock.Commands()[0].EqualApprox(want, 1e-9))

	// Subsequent ticks keep stepping toward the target.
	for i := 0; i < 20; i++ {
		m.tick()
	}
	assert.InDelta(t, 0.5, m.Snapshot().Attitude.Roll, 1e-12)
}

func TestManagerClampsAttitude(t *testing.T) {
	m, _ := newTestManager(t)

	m.SetAttitude(posture.Attitude{Roll: 3.0}, 0)
	for i := 0; i < 30; i++ {
		m.tick()
	}

	assert.InDelta(t, MaxRoll, m.Snapshot().Attitude.Roll, 1e-12)
}

func TestManagerLimitAbortKeepsLastPosture(t *testing.T) {
	m, mock := newTestManager(t)

	// Ramp to a small roll first.
	m.SetAttitude(posture.Attitude{Roll: 0.04}, 0)
	m.tick()
	sent := len(mock.Commands())

	// A hind-knee limit breach: nothing new may reach the bridge.
	m.SetAttitude(posture.Attitude{Pitch: 0.3}, 0)
	for i := 0; i < 10; i++ {
		m.tick()
	}

	snap := m.Snapshot()
	assert.Greater(t, snap.Errors, uint64(0))
	// Early ramp steps may still be valid; the commands that were sent must
	// all be within limits, and the last valid attitude stays in effect.
	for _, p := range mock.Commands()[sent:] {
		for _, leg := range posture.Legs() {
			assert.NoError(t, NewA1Adjuster(testBody).Limits.Check(p.Leg(leg)))
		}
	}
}

func TestManagerSweepCompletes(t *testing.T) {
	m, mock := newTestManager(t)

	m.QueueSweep(&Ramp{Target: posture.Attitude{Roll: 0.04}, Length: 0})
	m.tick()

	assert.Len(t, mock.Commands(), 1)
	snap := m.Snapshot()
	assert.Empty(t, snap.Sweep, "completed sweep should clear")
	assert.InDelta(t, 0.04, snap.Attitude.Roll, 1e-12)
}

func TestManagerStopSweepFreezesAttitude(t *testing.T) {
	m, _ := newTestManager(t)

	m.QueueSweep(&RollSweep{Amplitude: 0.3, Period: time.Hour})
	m.StopSweep()

	assert.Empty(t, m.Snapshot().Sweep)
}

func TestRollSweepShape(t *testing.T) {
	s := &RollSweep{Amplitude: 0.5, Period: 4 * time.Second, Cycles: 1}

	assert.InDelta(t, 0, s.Evaluate(0).Roll, 1e-12)
	assert.InDelta(t, 0.5, s.Evaluate(time.Second).Roll, 1e-12)
	assert.InDelta(t, 0, s.Evaluate(2*time.Second).Roll, 1e-12)
	assert.InDelta(t, -0.5, s.Evaluate(3*time.Second).Roll, 1e-12)
	assert.True(t, s.IsComplete(4*time.Second))
	assert.Equal(t, posture.Attitude{}, s.Evaluate(5*time.Second))
}

func TestRampEvaluate(t *testing.T) {
	r := &Ramp{Target: posture.Attitude{Yaw: 0.2, Pitch: -0.1}, Length: 2 * time.Second}

	mid := r.Evaluate(time.Second)
	assert.InDelta(t, 0.1, mid.Yaw, 1e-12)
	assert.InDelta(t, -0.05, mid.Pitch, 1e-12)
	assert.Equal(t, r.Target, r.Evaluate(3*time.Second))
	assert.False(t, r.IsComplete(time.Second))
	assert.True(t, r.IsComplete(2*time.Second))
}
