package playback

import "testing"

func TestRepeatModeRoundTrip(t *testing.T) {
	tests := []struct {
		in   string
		want RepeatMode
	}{
		{"off", RepeatOff},
		{"sentence", RepeatSentence},
		{"all", RepeatAll},
		{"bogus", RepeatOff},
		{"", RepeatOff},
	}

	for _, tt := range tests {
		if got := ParseRepeatMode(tt.in); got != tt.want {
			t.Errorf("ParseRepeatMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, mode := range []RepeatMode{RepeatOff, RepeatSentence, RepeatAll} {
		if ParseRepeatMode(mode.String()) != mode {
			t.Errorf("round trip failed for %v", mode)
		}
	}
}

func TestStatusInCycle(t *testing.T) {
	s := Status{Cycling: true, ActiveIndex: 2}
	if !s.InCycle() {
		t.Error("InCycle = false with cycling and an active segment")
	}

	s.ActiveIndex = NoActiveSegment
	if s.InCycle() {
		t.Error("InCycle = true without an active segment")
	}

	s = Status{Cycling: false, ActiveIndex: 0}
	if s.InCycle() {
		t.Error("InCycle = true while not cycling")
	}
}
