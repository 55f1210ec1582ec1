package ui

import (
	"time"

	"github.com/dgnsrekt/relisten/align"
)

// positionTickMsg carries one position-sampling tick.
type positionTickMsg time.Time

// transcriptChangedMsg reports that the watched transcript file changed
// on disk.
type transcriptChangedMsg struct{}

// transcriptReloadedMsg carries the result of re-aligning a changed
// transcript.
type transcriptReloadedMsg struct {
	segments  []align.Segment
	fromCache bool
	err       error
}

// statusTimeoutMsg expires a transient status message.
type statusTimeoutMsg struct{}
