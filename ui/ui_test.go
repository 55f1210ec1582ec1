package ui

import (
	"testing"
	"time"

	"github.com/dgnsrekt/relisten/align"
	"github.com/dgnsrekt/relisten/playback"
)

// fakePlayer adapts the mock transport to the Player interface.
type fakePlayer struct {
	*playback.MockTransport
	duration time.Duration
}

func (f *fakePlayer) Duration() time.Duration { return f.duration }
func (f *fakePlayer) Close() error            { return nil }

func testSegments() []align.Segment {
	return []align.Segment{
		{Text: "The first sentence.", Start: 0, End: 5 * time.Second},
		{Text: "A second thought.", Start: 5 * time.Second, End: 10 * time.Second},
		{Text: "The final word.", Start: 10 * time.Second, End: 15 * time.Second},
	}
}

func testModel(t *testing.T, cfg Config) (*model, *fakePlayer) {
	t.Helper()
	if cfg.SampleInterval == 0 {
		cfg.SampleInterval = playback.DefaultSampleInterval
	}
	if cfg.BoundaryTolerance == 0 {
		cfg.BoundaryTolerance = playback.DefaultBoundaryTolerance
	}
	if cfg.RepeatTarget == 0 {
		cfg.RepeatTarget = 2
	}
	player := &fakePlayer{
		MockTransport: playback.NewMockTransport(),
		duration:      15 * time.Second,
	}
	return newModel(cfg, player, testSegments()), player
}

func TestPositionTickDrivesController(t *testing.T) {
	m, player := testModel(t, Config{})

	player.Play()
	m.controller.HandlePlay()
	player.SetPosition(6 * time.Second)
	m.onPositionTick()

	st := m.controller.Status()
	if st.ActiveIndex != 1 {
		t.Errorf("ActiveIndex = %d, want 1", st.ActiveIndex)
	}
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1 (follows active sentence)", m.cursor)
	}
}

func TestPositionTickIgnoredWhilePaused(t *testing.T) {
	m, player := testModel(t, Config{RepeatMode: "sentence", RepeatTarget: 3})

	// Make segment 0 active while playing, then pause inside the
	// boundary-tolerance window of its end.
	player.Play()
	m.controller.HandlePlay()
	player.SetPosition(1 * time.Second)
	m.onPositionTick()
	if got := m.controller.Status().ActiveIndex; got != 0 {
		t.Fatalf("ActiveIndex = %d, want 0", got)
	}

	player.Pause()
	m.controller.HandlePause()
	player.SetPosition(4950 * time.Millisecond)
	player.ClearHistory()

	m.onPositionTick()

	st := m.controller.Status()
	if st.Cycling || st.RepeatsCompleted != 0 {
		t.Errorf("repeat machine ran while paused: %+v", st)
	}
	if history := player.History(); len(history) != 0 {
		t.Errorf("transport commands issued while paused: %v", history)
	}
	if got := player.Position(); got != 4950*time.Millisecond {
		t.Errorf("playhead moved while paused: %v", got)
	}
}

func TestPositionTickSynthesizesEnded(t *testing.T) {
	m, player := testModel(t, Config{RepeatMode: "all"})

	// Mark the session as playing, then park the silent transport at
	// the end of the recording.
	m.controller.HandlePlay()
	player.SetPosition(15 * time.Second)
	m.onPositionTick()

	history := player.History()
	if len(history) != 2 || history[0].Op != "seek" || history[0].Pos != 0 || history[1].Op != "play" {
		t.Errorf("history = %v, want seek(0) then play", history)
	}
	if !player.IsPlaying() {
		t.Error("transport not restarted after synthesized end of stream")
	}
}

func TestPositionTickNoEndedMidRecording(t *testing.T) {
	m, player := testModel(t, Config{RepeatMode: "all"})

	m.controller.HandlePlay()
	player.SetPosition(7 * time.Second)
	m.onPositionTick()

	if history := player.History(); len(history) != 0 {
		t.Errorf("history = %v, want none while mid-recording", history)
	}
}

func TestJumpAppliesSeek(t *testing.T) {
	m, player := testModel(t, Config{})

	m.jump(2)
	history := player.History()
	if len(history) != 1 || history[0].Op != "seek" || history[0].Pos != 10*time.Second {
		t.Errorf("history = %v, want seek(10s)", history)
	}
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}
}

func TestJumpOutOfRangeIgnored(t *testing.T) {
	m, player := testModel(t, Config{})

	m.jump(99)
	if history := player.History(); len(history) != 0 {
		t.Errorf("history = %v, want none for a rejected jump", history)
	}
}

func TestFilterSentences(t *testing.T) {
	m, _ := testModel(t, Config{})

	m.filterSentences("final")
	if len(m.matches) != 1 || m.matches[0] != 2 {
		t.Errorf("matches = %v, want [2]", m.matches)
	}
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2 (first match)", m.cursor)
	}

	m.filterSentences("")
	if m.matches != nil {
		t.Errorf("matches = %v, want nil for empty query", m.matches)
	}
}

func TestNextRepeatModeCycles(t *testing.T) {
	order := []playback.RepeatMode{playback.RepeatOff, playback.RepeatSentence, playback.RepeatAll}
	for i, mode := range order {
		want := order[(i+1)%len(order)]
		if got := nextRepeatMode(mode); got != want {
			t.Errorf("nextRepeatMode(%v) = %v, want %v", mode, got, want)
		}
	}
}

func TestClampCursor(t *testing.T) {
	m, _ := testModel(t, Config{})

	m.cursor = -3
	m.clampCursor()
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}

	m.cursor = 99
	m.clampCursor()
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}
}

func TestVisibleRangeKeepsCursorInWindow(t *testing.T) {
	m, _ := testModel(t, Config{})
	m.height = 11 // three list rows after chrome

	m.cursor = 0
	if top, bottom := m.visibleRange(3); top != 0 || bottom != 3 {
		t.Errorf("visibleRange = [%d, %d), want [0, 3)", top, bottom)
	}

	m.cursor = 9
	top, bottom := m.visibleRange(10)
	if m.cursor < top || m.cursor >= bottom {
		t.Errorf("cursor %d outside visible range [%d, %d)", m.cursor, top, bottom)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{5 * time.Second, "0:05"},
		{65 * time.Second, "1:05"},
		{10 * time.Minute, "10:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
