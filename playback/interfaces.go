package playback

import "time"

// Transport is the audio playhead the controller drives. Seek, Play and
// Pause are fire-and-forget: completion is observed through subsequent
// lifecycle events and position samples, never awaited. The controller
// never reads raw audio samples.
type Transport interface {
	// Play starts or resumes playback.
	Play() error

	// Pause halts playback without moving the playhead.
	Pause() error

	// Seek moves the playhead to the given position.
	Seek(pos time.Duration) error

	// Position returns the current playhead position.
	Position() time.Duration

	// IsPlaying reports whether audio is currently playing.
	IsPlaying() bool
}

// Apply drains the controller's pending commands and issues them to the
// transport in order. It returns the first transport error, after
// issuing the remaining commands.
func Apply(t Transport, commands []Command) error {
	var firstErr error
	for _, cmd := range commands {
		var err error
		switch cmd.Type {
		case CmdSeek:
			err = t.Seek(cmd.Pos)
		case CmdPlay:
			err = t.Play()
		case CmdPause:
			err = t.Pause()
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
