package robot

import "sync"

// Mock is an in-memory Controller for tests and for running the dashboard
// without a simulator. It records every commanded posture.
type Mock struct {
	mu       sync.Mutex
	current  Posture
	commands []Posture
	resets   int

	// Err, when set, is returned by every mutating call.
	Err error
}

// NewMock creates a mock controller preloaded with the standing posture.
func NewMock() *Mock {
	return &Mock{current: StandingPosture()}
}

// SetPosture records the command and makes it the current posture.
func (m *Mock) SetPosture(p Posture) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.commands = append(m.commands, p)
	m.current = p
	return nil
}

// GetPosture returns the last commanded posture.
func (m *Mock) GetPosture() (Posture, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, nil
}

// GetBridgeStatus always reports running.
func (m *Mock) GetBridgeStatus() (string, error) {
	return "running", nil
}

// ResetBase counts resets and restores the standing posture.
func (m *Mock) ResetBase() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.resets++
	m.current = StandingPosture()
	return nil
}

// Commands returns a copy of all recorded posture commands.
func (m *Mock) Commands() []Posture {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Posture, len(m.commands))
	copy(out, m.commands)
	return out
}

// Resets returns how many times ResetBase was called.
func (m *Mock) Resets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resets
}

var _ Controller = (*Mock)(nil)
