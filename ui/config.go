package ui

import "time"

// Config contains TUI-specific configuration.
type Config struct {
	// Paths of the recording and its transcript.
	AudioPath      string
	TranscriptPath string

	// Playback tunables.
	RepeatMode        string        // "off", "sentence" or "all"
	RepeatTarget      int           // plays per sentence when repeating
	BoundaryTolerance time.Duration // sentence-end detection window
	SampleInterval    time.Duration // position polling period

	// Reload the segment list when the transcript file changes.
	WatchTranscript bool

	EnableMouse bool

	// For debugging the UI
	ShowTimestamps bool `env:"RELISTEN_SHOW_TIMESTAMPS"`
}
