// Package playback drives sentence-scoped, repeat-aware playback from a
// periodic audio-position signal.
//
// The controller is a reducer over (state, event) pairs: every input
// (position sample, transport lifecycle event, user command) updates the
// session state and may queue transport commands, which the host applies
// after the event returns. The host supplies position samples at its own
// cadence; the controller never owns a timer and never blocks.
package playback

import (
	"sync"
	"time"

	"github.com/dgnsrekt/relisten/align"
)

// DefaultBoundaryTolerance is how close to a segment's end a position
// sample must land to count as "sentence end reached". It absorbs
// sampling granularity and seek imprecision. Tunable, not derived.
const DefaultBoundaryTolerance = 100 * time.Millisecond

// DefaultSampleInterval is the position sampling period hosts should use
// while the transport is playing.
const DefaultSampleInterval = 100 * time.Millisecond

// Config holds controller tunables.
type Config struct {
	// BoundaryTolerance is the epsilon for segment-end detection.
	BoundaryTolerance time.Duration

	// RepeatMode is the initial repeat mode.
	RepeatMode RepeatMode

	// RepeatTarget is the initial number of plays per sentence when
	// RepeatMode is RepeatSentence. Values below 1 are clamped to 1.
	RepeatTarget int
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		BoundaryTolerance: DefaultBoundaryTolerance,
		RepeatMode:        RepeatOff,
		RepeatTarget:      2,
	}
}

// Controller owns the playback session state. It consumes position
// samples and user commands, decides seeks and segment transitions, and
// exposes a status snapshot for rendering.
//
// All methods take the controller's lock; events are processed one at a
// time to completion. Drive it from a single event loop and apply the
// queued commands between events.
type Controller struct {
	mu sync.RWMutex

	segments  []align.Segment
	tolerance time.Duration

	active      int
	playing     bool
	mode        RepeatMode
	target      int
	completed   int
	cycling     bool
	entered     bool
	lastPos     time.Duration

	pending []Command
}

// NewController creates a controller with the given configuration. No
// segments are loaded; until Load is called the controller is a
// pass-through that only records positions.
func NewController(cfg Config) *Controller {
	if cfg.BoundaryTolerance <= 0 {
		cfg.BoundaryTolerance = DefaultBoundaryTolerance
	}
	if cfg.RepeatTarget < 1 {
		cfg.RepeatTarget = 1
	}
	return &Controller{
		tolerance: cfg.BoundaryTolerance,
		active:    NoActiveSegment,
		mode:      cfg.RepeatMode,
		target:    cfg.RepeatTarget,
	}
}

// Load replaces the segment sequence and resets the session state.
// Pending commands from the previous sequence are dropped.
func (c *Controller) Load(segments []align.Segment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.segments = segments
	c.active = NoActiveSegment
	c.resetCycle()
	c.entered = false
	c.pending = c.pending[:0]
}

// Segments returns the loaded segment sequence. The slice must not be
// mutated by the caller.
func (c *Controller) Segments() []align.Segment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.segments
}

// Status returns a snapshot of the current session state.
func (c *Controller) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Status{
		ActiveIndex:      c.active,
		Playing:          c.playing,
		RepeatMode:       c.mode,
		RepeatTarget:     c.target,
		RepeatsCompleted: c.completed,
		Cycling:          c.cycling,
		Position:         c.lastPos,
		TotalSegments:    len(c.segments),
	}
}

// Commands drains and returns the queued transport commands. The host
// calls this after every event and applies the result to the transport.
func (c *Controller) Commands() []Command {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.pending) == 0 {
		return nil
	}
	out := make([]Command, len(c.pending))
	copy(out, c.pending)
	c.pending = c.pending[:0]
	return out
}

// HandlePosition processes one position sample. It locates the segment
// containing pos, detects sentence-end boundaries when sentence repeat is
// active, and runs the repeat state machine on a boundary hit.
func (c *Controller) HandlePosition(pos time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastPos = pos
	if len(c.segments) == 0 {
		return
	}

	// Boundary detection operates on the pinned active segment, not on
	// the freshly located one: near a boundary the sample may already
	// sit inside the next segment, and trusting the scan there would
	// skip the repeat machine entirely.
	if c.mode == RepeatSentence && c.active != NoActiveSegment {
		seg := c.segments[c.active]
		if pos > seg.Start && pos < seg.End-c.tolerance {
			c.entered = true
		}
		// The end window only counts after the playhead has been
		// inside the segment's interior. Right after an advance a
		// sample can land exactly on a boundary shared with the
		// finished segment, relocate back to it (the first-containing
		// scan prefers the earlier segment), and without this gate the
		// finished segment's end window would fire again and replay it.
		if c.entered && pos >= seg.End-c.tolerance {
			c.onBoundary()
			return
		}
	}

	located := c.locate(pos)
	if located != c.active {
		c.active = located
		// The index changed outside the repeat machine (drift or a
		// seek landing); a cycle is scoped to exactly one segment and
		// is abandoned, never carried over.
		c.resetCycle()
		c.entered = false
		if located != NoActiveSegment {
			seg := c.segments[located]
			c.entered = pos > seg.Start && pos < seg.End-c.tolerance
		}
	}
}

// HandlePlay records that the transport started playing.
func (c *Controller) HandlePlay() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = true
}

// HandlePause records that the transport paused.
func (c *Controller) HandlePause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = false
}

// HandleEnded processes end-of-stream. With RepeatAll the recording is
// restarted from the top; otherwise playback simply stops. Any
// in-progress repeat cycle is abandoned either way.
func (c *Controller) HandleEnded() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.playing = false
	c.resetCycle()

	if c.mode == RepeatAll {
		c.pending = append(c.pending,
			Command{Type: CmdSeek, Pos: 0},
			Command{Type: CmdPlay},
		)
		c.playing = true
	}
}

// JumpTo selects a segment explicitly. The jump cancels any in-progress
// repeat cycle and any undrained seek from a previous sample, then seeks
// to the segment's start. Out-of-range targets are rejected without
// touching state.
func (c *Controller) JumpTo(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.segments) == 0 {
		return ErrNoSegments
	}
	if index < 0 || index >= len(c.segments) {
		return ErrInvalidSegmentIndex
	}

	c.dropPendingSeeks()
	c.active = index
	c.resetCycle()
	c.entered = false
	c.pending = append(c.pending, Command{Type: CmdSeek, Pos: c.segments[index].Start})
	return nil
}

// SetRepeatMode changes the repeat mode. Moving away from sentence
// repeat cancels the current cycle and any undrained seek, so a stale
// replay can never fire after the mode change.
func (c *Controller) SetRepeatMode(mode RepeatMode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if mode != RepeatSentence && c.mode == RepeatSentence {
		c.dropPendingSeeks()
		c.resetCycle()
	}
	c.mode = mode
}

// SetRepeatTarget changes the number of plays per sentence. Values below
// 1 are clamped to 1. Lowering the target below an in-flight cycle's
// completed count caps the count so the invariant 0 <= completed <=
// target holds.
func (c *Controller) SetRepeatTarget(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n < 1 {
		n = 1
	}
	c.target = n
	if c.completed > n {
		c.completed = n
	}
}

// locate returns the index of the first segment whose span contains pos,
// or NoActiveSegment. Both endpoints are inclusive, so on a shared
// boundary the earlier segment wins; segment counts are small enough
// that the linear scan is fine.
func (c *Controller) locate(pos time.Duration) int {
	for i, s := range c.segments {
		if pos >= s.Start && pos <= s.End {
			return i
		}
	}
	return NoActiveSegment
}

// onBoundary runs the repeat state machine for the pinned active
// segment. Called only on a sentence-end boundary hit with sentence
// repeat active.
func (c *Controller) onBoundary() {
	seg := c.segments[c.active]

	if !c.cycling {
		c.cycling = true
		c.completed = 1
		if c.completed < c.target {
			c.pending = append(c.pending, Command{Type: CmdSeek, Pos: seg.Start})
			return
		}
		// Target of one play: the cycle is already complete.
		c.finishCycle()
		return
	}

	if c.completed < c.target {
		c.completed++
		c.pending = append(c.pending, Command{Type: CmdSeek, Pos: seg.Start})
		return
	}

	c.finishCycle()
}

// finishCycle ends the repeat cycle and advances to the next segment, or
// stops playback when there is none. The active index moves with the
// advance: leaving it pinned would re-trigger the boundary check on the
// very next sample when segments touch, since the end test only bounds
// from below.
func (c *Controller) finishCycle() {
	c.resetCycle()
	if next := c.active + 1; next < len(c.segments) {
		c.active = next
		c.entered = false
		c.pending = append(c.pending, Command{Type: CmdSeek, Pos: c.segments[next].Start})
		return
	}
	c.pending = append(c.pending, Command{Type: CmdPause})
	c.playing = false
}

func (c *Controller) resetCycle() {
	c.cycling = false
	c.completed = 0
}

// dropPendingSeeks removes undrained seek commands, leaving play/pause
// commands in place.
func (c *Controller) dropPendingSeeks() {
	kept := c.pending[:0]
	for _, cmd := range c.pending {
		if cmd.Type != CmdSeek {
			kept = append(kept, cmd)
		}
	}
	c.pending = kept
}
