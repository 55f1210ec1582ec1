package playback

import "time"

// RepeatMode selects how playback advances between segments.
type RepeatMode int

const (
	// RepeatOff plays straight through the recording.
	RepeatOff RepeatMode = iota
	// RepeatSentence replays the current segment until the configured
	// number of plays is reached, then advances.
	RepeatSentence
	// RepeatAll restarts the whole recording when it ends.
	RepeatAll
)

// String returns the string representation of the repeat mode.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "off"
	case RepeatSentence:
		return "sentence"
	case RepeatAll:
		return "all"
	default:
		return "unknown"
	}
}

// ParseRepeatMode maps a config string to a RepeatMode. Unknown values
// fall back to RepeatOff.
func ParseRepeatMode(s string) RepeatMode {
	switch s {
	case "sentence":
		return RepeatSentence
	case "all":
		return RepeatAll
	default:
		return RepeatOff
	}
}

// NoActiveSegment is the ActiveIndex value when the playhead sits outside
// every segment, e.g. in a gap between sentences.
const NoActiveSegment = -1

// Status is a read-only snapshot of the controller's session state,
// pulled by the rendering layer after each processed event.
type Status struct {
	ActiveIndex      int           // Index of the current segment, or NoActiveSegment
	Playing          bool          // Mirrors the transport's play/pause status
	RepeatMode       RepeatMode    // Current repeat mode
	RepeatTarget     int           // Configured plays per sentence (>= 1)
	RepeatsCompleted int           // Plays of the current sentence finished this cycle
	Cycling          bool          // True while a repeat cycle is in progress
	Position         time.Duration // Last sampled transport position
	TotalSegments    int           // Number of loaded segments
}

// InCycle reports whether a repeat cycle is in progress for the segment
// at ActiveIndex.
func (s Status) InCycle() bool {
	return s.Cycling && s.ActiveIndex != NoActiveSegment
}
