package transcript

import "errors"

// Common errors for transcript loading.
var (
	ErrInvalidTranscript = errors.New("invalid transcript JSON")
)
