package playback

import "errors"

// Common errors for the playback controller.
var (
	// ErrInvalidSegmentIndex is returned by JumpTo for an out-of-range
	// target. The command is rejected and state is left unchanged.
	ErrInvalidSegmentIndex = errors.New("segment index out of range")

	// ErrNoSegments is returned by JumpTo when no segment sequence is
	// loaded.
	ErrNoSegments = errors.New("no segments loaded")
)
