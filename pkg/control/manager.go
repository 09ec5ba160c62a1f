package control

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/quadrupedlab/go-a1/internal/log"
	"github.com/quadrupedlab/go-a1/pkg/posture"
	"github.com/quadrupedlab/go-a1/pkg/robot"
)

// Attitude limits (radians). These match the slider ranges of the original
// simulator UI; beyond them the hip motors run out of travel anyway.
const (
	MaxYaw   = 0.5
	MaxPitch = 0.5
	MaxRoll  = 0.5
)

// Dead-zone threshold: skip sending if no attitude component changed by at
// least this much since the last command. Reduces bridge traffic when idle.
const DeadZoneRad = 0.002

// maxStepRad limits how far the attitude may move in one tick, so a slider
// jump does not command an instantaneous body flip.
const maxStepRad = 0.05

// clamp restricts v to the range [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampAttitude restricts each attitude component to its limit.
func clampAttitude(a posture.Attitude) posture.Attitude {
	return posture.Attitude{
		Yaw:   clamp(a.Yaw, -MaxYaw, MaxYaw),
		Pitch: clamp(a.Pitch, -MaxPitch, MaxPitch),
		Roll:  clamp(a.Roll, -MaxRoll, MaxRoll),
	}
}

// Bridge is the interface the Manager needs from the simulator connection.
type Bridge interface {
	robot.PostureController
	robot.PostureReader
}

// Manager owns the posture control loop. It holds the target attitude, plays
// scripted sweeps, and is the only writer to the bridge.
//
// Architecture:
//   - A reference posture is captured once the motors settle; every
//     adjustment is computed against it so errors do not accumulate tick
//     over tick.
//   - Manual attitude targets and sweeps both flow through the same tick
//     path: clamp, rate-limit, dead-zone filter, adjust, send.
type Manager struct {
	bridge   Bridge
	adjuster Adjuster
	rate     time.Duration

	mu sync.RWMutex

	ref    robot.Posture
	refSet bool

	target posture.Attitude
	deltaZ float64

	currentSweep Sweep
	sweepStart   time.Time

	lastSent     posture.Attitude
	sentOnce     bool
	tickCount    uint64
	skippedTicks uint64
	errorCount   uint64
}

// NewManager creates a Manager ticking at the given rate (~33ms for 30Hz).
func NewManager(bridge Bridge, adjuster Adjuster, rate time.Duration) *Manager {
	return &Manager{
		bridge:   bridge,
		adjuster: adjuster,
		rate:     rate,
	}
}

// CaptureReference reads the current motor positions from the bridge and
// makes them the reference posture for all subsequent adjustments. Call it
// after the motors have settled into the standing pose.
func (m *Manager) CaptureReference() error {
	ref, err := m.bridge.GetPosture()
	if err != nil {
		return fmt.Errorf("capture reference posture: %w", err)
	}
	m.mu.Lock()
	m.ref = ref
	m.refSet = true
	m.mu.Unlock()
	log.Info("reference posture captured")
	return nil
}

// SetAttitude sets the manual target attitude and height offset. It cancels
// any running sweep.
func (m *Manager) SetAttitude(att posture.Attitude, deltaZ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.target = clampAttitude(att)
	m.deltaZ = deltaZ
	m.currentSweep = nil
}

// QueueSweep starts a scripted sweep, replacing any current one.
func (m *Manager) QueueSweep(s Sweep) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentSweep = s
	m.sweepStart = time.Now()
	log.Info("sweep queued", "sweep", s.Name(), "duration", s.Duration())
}

// StopSweep stops the current sweep, freezing the attitude where it is.
func (m *Manager) StopSweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.currentSweep != nil {
		m.target = clampAttitude(m.currentSweep.Evaluate(time.Since(m.sweepStart)))
		m.currentSweep = nil
	}
}

// Run starts the control loop and blocks until ctx is done.
func (m *Manager) Run(ctx context.Context) error {
	if err := m.ensureReference(); err != nil {
		return err
	}

	ticker := time.NewTicker(m.rate)
	defer ticker.Stop()

	log.Info("posture control loop started", "hz", 1.0/m.rate.Seconds())

	for {
		select {
		case <-ctx.Done():
			log.Info("posture control loop stopped",
				"ticks", m.tickCount, "skipped", m.skippedTicks, "errors", m.errorCount)
			return ctx.Err()
		case <-ticker.C:
			m.tick()
		}
	}
}

func (m *Manager) ensureReference() error {
	m.mu.RLock()
	ok := m.refSet
	m.mu.RUnlock()
	if ok {
		return nil
	}
	return m.CaptureReference()
}

// tick executes one control cycle.
func (m *Manager) tick() {
	m.mu.Lock()
	target := m.target
	if m.currentSweep != nil {
		elapsed := time.Since(m.sweepStart)
		target = clampAttitude(m.currentSweep.Evaluate(elapsed))
		if m.currentSweep.IsComplete(elapsed) {
			log.Info("sweep completed", "sweep", m.currentSweep.Name())
			m.target = target
			m.currentSweep = nil
		}
	}
	ref := m.ref
	deltaZ := m.deltaZ
	m.mu.Unlock()

	target = m.rateLimit(target)

	if m.sentOnce && !m.needsSend(target) {
		m.count(&m.skippedTicks)
		return
	}

	p, err := m.adjuster.Adjust(ref, target, deltaZ)
	if err != nil {
		// A limit breach aborts the whole adjustment; the last good posture
		// stays in effect.
		if m.count(&m.errorCount)%100 == 1 {
			log.Warn("posture adjustment aborted", "error", err)
		}
		return
	}

	if err := m.bridge.SetPosture(p); err != nil {
		if m.count(&m.errorCount)%100 == 1 {
			log.Warn("bridge command failed", "error", err)
		}
		return
	}

	m.mu.Lock()
	m.tickCount++
	m.lastSent = target
	m.sentOnce = true
	ticks := m.tickCount
	m.mu.Unlock()

	if ticks%300 == 0 {
		log.Debug("control loop heartbeat",
			"ticks", ticks,
			"yaw", target.Yaw, "pitch", target.Pitch, "roll", target.Roll)
	}
}

// count increments a counter under the lock and returns the new value.
func (m *Manager) count(c *uint64) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	*c++
	return *c
}

// rateLimit clamps the per-tick attitude step to maxStepRad per axis. The
// starting point is the zero attitude of the reference posture, so even the
// first command ramps in.
func (m *Manager) rateLimit(target posture.Attitude) posture.Attitude {
	step := func(from, to float64) float64 {
		return from + clamp(to-from, -maxStepRad, maxStepRad)
	}
	return posture.Attitude{
		Yaw:   step(m.lastSent.Yaw, target.Yaw),
		Pitch: step(m.lastSent.Pitch, target.Pitch),
		Roll:  step(m.lastSent.Roll, target.Roll),
	}
}

// needsSend reports whether the attitude moved out of the dead zone.
func (m *Manager) needsSend(a posture.Attitude) bool {
	return abs(a.Yaw-m.lastSent.Yaw) >= DeadZoneRad ||
		abs(a.Pitch-m.lastSent.Pitch) >= DeadZoneRad ||
		abs(a.Roll-m.lastSent.Roll) >= DeadZoneRad
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Snapshot is a point-in-time view of the control loop for the dashboard.
type Snapshot struct {
	Attitude     posture.Attitude `json:"attitude"`
	DeltaZ       float64          `json:"delta_z"`
	Sweep        string           `json:"sweep,omitempty"`
	ReferenceSet bool             `json:"reference_set"`
	Ticks        uint64           `json:"ticks"`
	Skipped      uint64           `json:"skipped"`
	Errors       uint64           `json:"errors"`
}

// Snapshot returns the current control loop state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := Snapshot{
		Attitude:     m.lastSent,
		DeltaZ:       m.deltaZ,
		ReferenceSet: m.refSet,
		Ticks:        m.tickCount,
		Skipped:      m.skippedTicks,
		Errors:       m.errorCount,
	}
	if m.currentSweep != nil {
		s.Sweep = m.currentSweep.Name()
	}
	return s
}

// Reference returns the captured reference posture.
func (m *Manager) Reference() (robot.Posture, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.refSet {
		return robot.Posture{}, errors.New("reference posture not captured")
	}
	return m.ref, nil
}
