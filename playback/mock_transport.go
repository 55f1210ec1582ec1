package playback

import (
	"sync"
	"time"
)

// MockTransport implements Transport for testing. It records every
// command it receives and lets tests set the playhead position directly
// instead of simulating real time.
type MockTransport struct {
	mu       sync.Mutex
	position time.Duration
	playing  bool
	history  []TransportEvent

	// Error injection
	playErr  error
	pauseErr error
	seekErr  error
}

// TransportEvent records one transport call for test verification.
type TransportEvent struct {
	Op  string // "play", "pause" or "seek"
	Pos time.Duration
}

// NewMockTransport creates a mock transport positioned at zero, paused.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Play starts simulated playback.
func (m *MockTransport) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.playErr != nil {
		return m.playErr
	}
	m.playing = true
	m.history = append(m.history, TransportEvent{Op: "play"})
	return nil
}

// Pause halts simulated playback.
func (m *MockTransport) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pauseErr != nil {
		return m.pauseErr
	}
	m.playing = false
	m.history = append(m.history, TransportEvent{Op: "pause"})
	return nil
}

// Seek moves the simulated playhead.
func (m *MockTransport) Seek(pos time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seekErr != nil {
		return m.seekErr
	}
	m.position = pos
	m.history = append(m.history, TransportEvent{Op: "seek", Pos: pos})
	return nil
}

// Position returns the simulated playhead position.
func (m *MockTransport) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

// IsPlaying reports the simulated play state.
func (m *MockTransport) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

// SetPosition moves the playhead without recording a seek, simulating
// playback progress between samples.
func (m *MockTransport) SetPosition(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = pos
}

// History returns a copy of the recorded transport calls.
func (m *MockTransport) History() []TransportEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]TransportEvent, len(m.history))
	copy(out, m.history)
	return out
}

// ClearHistory discards the recorded transport calls.
func (m *MockTransport) ClearHistory() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = m.history[:0]
}

// InjectError makes the named operation fail with err until cleared.
func (m *MockTransport) InjectError(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch op {
	case "play":
		m.playErr = err
	case "pause":
		m.pauseErr = err
	case "seek":
		m.seekErr = err
	}
}
