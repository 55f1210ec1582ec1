// Package ui provides the terminal interface for relisten: a sentence
// list with playback status, driven by periodic position samples fed
// into the playback controller.
package ui

import (
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/sahilm/fuzzy"

	"github.com/dgnsrekt/relisten/align"
	"github.com/dgnsrekt/relisten/internal/cache"
	"github.com/dgnsrekt/relisten/playback"
)

const statusMessageTimeout = time.Second * 3 // how long to show status messages like "copied!"

// Player is the audio transport the UI drives: the controller's
// transport plus the recording-level extras the host loop needs.
type Player interface {
	playback.Transport

	// Duration returns the total play time of the recording.
	Duration() time.Duration

	// Close releases the audio device.
	Close() error
}

// NewProgram returns a new Tea program wired to the given player and
// segment sequence.
func NewProgram(cfg Config, player Player, segments []align.Segment) *tea.Program {
	log.Debug(
		"Starting relisten",
		"audio", cfg.AudioPath,
		"transcript", cfg.TranscriptPath,
		"segments", len(segments),
	)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.EnableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return tea.NewProgram(newModel(cfg, player, segments), opts...)
}

type model struct {
	cfg  Config
	keys keyMap

	controller *playback.Controller
	player     Player
	alignments *cache.AlignmentCache
	watcher    *transcriptWatcher

	duration time.Duration

	// Sentence list state.
	cursor  int
	matches []int // filtered segment indices while searching; nil when not filtering

	// Widgets.
	help        help.Model
	progressBar progress.Model
	searchInput textinput.Model
	searching   bool

	statusMessage string
	width, height int
}

func newModel(cfg Config, player Player, segments []align.Segment) *model {
	controller := playback.NewController(playback.Config{
		BoundaryTolerance: cfg.BoundaryTolerance,
		RepeatMode:        playback.ParseRepeatMode(cfg.RepeatMode),
		RepeatTarget:      cfg.RepeatTarget,
	})
	controller.Load(segments)

	searchInput := textinput.New()
	searchInput.Placeholder = "search sentences"
	searchInput.Prompt = "/"

	m := &model{
		cfg:         cfg,
		keys:        defaultKeyMap(),
		controller:  controller,
		player:      player,
		alignments:  cache.New(cache.DefaultCapacity),
		duration:    player.Duration(),
		help:        help.New(),
		progressBar: progress.New(progress.WithDefaultGradient()),
		searchInput: searchInput,
	}

	if cfg.WatchTranscript {
		w, err := watchTranscript(cfg.TranscriptPath)
		if err != nil {
			log.Debug("Transcript watch disabled", "error", err)
		} else {
			m.watcher = w
		}
	}
	return m
}

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{samplePosition(m.cfg.SampleInterval)}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.waitForChange())
	}
	return tea.Batch(cmds...)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progressBar.Width = msg.Width - 4
		return m, nil

	case positionTickMsg:
		m.onPositionTick()
		return m, samplePosition(m.cfg.SampleInterval)

	case transcriptChangedMsg:
		cmds := []tea.Cmd{reloadTranscript(m.cfg.TranscriptPath, m.alignments)}
		if m.watcher != nil {
			cmds = append(cmds, m.watcher.waitForChange())
		}
		return m, tea.Batch(cmds...)

	case transcriptReloadedMsg:
		if msg.err != nil {
			return m, m.setStatus("transcript reload failed: " + msg.err.Error())
		}
		m.controller.Load(msg.segments)
		m.clampCursor()
		if msg.fromCache {
			return m, nil
		}
		return m, m.setStatus("transcript reloaded")

	case statusTimeoutMsg:
		m.statusMessage = ""
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// onPositionTick runs one sampling cycle: read the playhead, feed the
// controller, synthesize end-of-stream if the device ran out, and
// apply whatever the controller decided.
func (m *model) onPositionTick() {
	pos := m.player.Position()
	playing := m.player.IsPlaying()

	// Samples are delivered only while the transport is playing. A
	// paused playhead can sit inside the boundary-tolerance window,
	// and feeding that sample would run the repeat machine and seek a
	// paused transport.
	if playing {
		m.controller.HandlePosition(pos)
	}

	// The device has no end-of-stream event: paused at (or within
	// tolerance of) the known duration while we still think we are
	// playing means the recording ran out.
	st := m.controller.Status()
	if st.Playing && !playing && pos >= m.duration-m.cfg.BoundaryTolerance {
		m.controller.HandleEnded()
	}

	m.applyCommands()

	// Follow the active sentence unless the user is mid-search.
	if st = m.controller.Status(); st.ActiveIndex != playback.NoActiveSegment && !m.searching {
		m.cursor = st.ActiveIndex
	}
}

// applyCommands drains the controller's queued commands into the player.
func (m *model) applyCommands() {
	if err := playback.Apply(m.player, m.controller.Commands()); err != nil {
		log.Debug("Transport command failed", "error", err)
		m.statusMessage = "playback error: " + err.Error()
	}
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	segments := m.controller.Segments()

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.watcher != nil {
			m.watcher.Close()
		}
		m.player.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		if m.player.IsPlaying() {
			if err := m.player.Pause(); err == nil {
				m.controller.HandlePause()
			}
		} else {
			if err := m.player.Play(); err == nil {
				m.controller.HandlePlay()
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.jump(m.controller.Status().ActiveIndex + 1)
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		active := m.controller.Status().ActiveIndex
		if active == playback.NoActiveSegment {
			active = 1
		}
		m.jump(active - 1)
		return m, nil

	case key.Matches(msg, m.keys.Replay):
		if active := m.controller.Status().ActiveIndex; active != playback.NoActiveSegment {
			m.jump(active)
		}
		return m, nil

	case key.Matches(msg, m.keys.CursorUp):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.CursorDown):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		if len(segments) > 0 {
			m.cursor = len(segments) - 1
		}
		return m, nil

	case key.Matches(msg, m.keys.Jump):
		m.jump(m.cursor)
		return m, nil

	case key.Matches(msg, m.keys.RepeatMode):
		mode := nextRepeatMode(m.controller.Status().RepeatMode)
		m.controller.SetRepeatMode(mode)
		m.applyCommands()
		return m, m.setStatus("repeat: " + mode.String())

	case key.Matches(msg, m.keys.TargetUp):
		m.controller.SetRepeatTarget(m.controller.Status().RepeatTarget + 1)
		return m, m.statusTarget()

	case key.Matches(msg, m.keys.TargetDown):
		m.controller.SetRepeatTarget(m.controller.Status().RepeatTarget - 1)
		return m, m.statusTarget()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Copy):
		if m.cursor < len(segments) {
			if err := clipboard.WriteAll(segments[m.cursor].Text); err != nil {
				return m, m.setStatus("copy failed: " + err.Error())
			}
			return m, m.setStatus("copied!")
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

func (m *model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.CancelSearch):
		m.searching = false
		m.matches = nil
		m.searchInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Jump):
		m.searching = false
		m.searchInput.Blur()
		if len(m.matches) > 0 {
			m.jump(m.matches[0])
		}
		m.matches = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.filterSentences(m.searchInput.Value())
	return m, cmd
}

// filterSentences fuzzy-matches the query against the sentence texts
// and keeps the matching indices in rank order.
func (m *model) filterSentences(query string) {
	if query == "" {
		m.matches = nil
		return
	}

	segments := m.controller.Segments()
	texts := make([]string, len(segments))
	for i, s := range segments {
		texts[i] = s.Text
	}

	results := fuzzy.Find(query, texts)
	m.matches = make([]int, len(results))
	for i, r := range results {
		m.matches[i] = r.Index
	}
	if len(m.matches) > 0 {
		m.cursor = m.matches[0]
	}
}

// jump selects a segment and applies the resulting seek. Out-of-range
// indices are ignored; the controller already rejects them.
func (m *model) jump(index int) {
	if err := m.controller.JumpTo(index); err != nil {
		log.Debug("Jump rejected", "index", index, "error", err)
		return
	}
	m.cursor = index
	m.applyCommands()
}

func (m *model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *model) clampCursor() {
	total := len(m.controller.Segments())
	if total == 0 {
		m.cursor = 0
		return
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= total {
		m.cursor = total - 1
	}
}

func (m *model) setStatus(text string) tea.Cmd {
	m.statusMessage = text
	return hideStatusAfter(statusMessageTimeout)
}

func (m *model) statusTarget() tea.Cmd {
	st := m.controller.Status()
	return m.setStatus("repeat target: " + strconv.Itoa(st.RepeatTarget))
}

func nextRepeatMode(mode playback.RepeatMode) playback.RepeatMode {
	switch mode {
	case playback.RepeatOff:
		return playback.RepeatSentence
	case playback.RepeatSentence:
		return playback.RepeatAll
	default:
		return playback.RepeatOff
	}
}
