package playback

import (
	"fmt"
	"time"
)

// CommandType identifies a transport command issued by the controller.
type CommandType int

const (
	// CmdSeek moves the transport playhead to Command.Pos.
	CmdSeek CommandType = iota
	// CmdPlay starts or resumes the transport.
	CmdPlay
	// CmdPause halts the transport without moving the playhead.
	CmdPause
)

// Command is a transport instruction produced by a state transition.
//
// Transitions never call the transport directly: they queue commands,
// and the host drains the queue with Controller.Commands after the event
// that produced them has been fully processed. This keeps transitions
// free of reentrant mutation and makes cancellation a matter of dropping
// undrained commands.
type Command struct {
	Type CommandType
	Pos  time.Duration // Seek target; meaningful for CmdSeek only
}

// String returns a loggable representation of the command.
func (c Command) String() string {
	switch c.Type {
	case CmdSeek:
		return fmt.Sprintf("seek(%s)", c.Pos)
	case CmdPlay:
		return "play"
	case CmdPause:
		return "pause"
	default:
		return "unknown"
	}
}
