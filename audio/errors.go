package audio

import "errors"

// Common errors for audio decoding and playback.
var (
	ErrNotWAV            = errors.New("not a RIFF/WAVE file")
	ErrMalformedWAV      = errors.New("malformed WAV file")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrEmptyAudio        = errors.New("empty audio data")
	ErrPlayerClosed      = errors.New("audio player is closed")
)
