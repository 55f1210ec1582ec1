package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"

	"github.com/dgnsrekt/relisten/playback"
)

const ellipsis = "…"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"})

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"})

	activeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"})

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"})

	cyclingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#D08700", Dark: "#ECB100"})

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
)

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.progressView())
	b.WriteString("\n")
	b.WriteString(m.transportView())
	b.WriteString("\n\n")
	b.WriteString(m.sentenceListView())
	b.WriteString("\n")

	if m.searching {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	}
	if m.statusMessage != "" {
		b.WriteString(statusStyle.Render(m.statusMessage))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *model) headerView() string {
	name := filepath.Base(m.cfg.AudioPath)
	meta := formatDuration(m.duration)
	if info, err := os.Stat(m.cfg.AudioPath); err == nil {
		meta += " · " + humanize.Bytes(uint64(info.Size()))
	}
	return titleStyle.Render("relisten") + "  " + name + "  " + subtleStyle.Render(meta)
}

func (m *model) progressView() string {
	if m.duration <= 0 {
		return ""
	}
	pos := m.controller.Status().Position
	ratio := float64(pos) / float64(m.duration)
	if ratio > 1 {
		ratio = 1
	}
	return m.progressBar.ViewAs(ratio)
}

// transportView renders the play state, repeat mode and progress
// through the sentence list.
func (m *model) transportView() string {
	st := m.controller.Status()

	state := "⏸ paused"
	if st.Playing {
		state = "▶ playing"
	}

	repeat := "repeat " + st.RepeatMode.String()
	if st.RepeatMode == playback.RepeatSentence {
		repeat += fmt.Sprintf(" ×%d", st.RepeatTarget)
		if st.InCycle() {
			repeat = cyclingStyle.Render(fmt.Sprintf("%s (%d/%d)", repeat, st.RepeatsCompleted, st.RepeatTarget))
		}
	}

	where := "no sentence"
	if st.ActiveIndex != playback.NoActiveSegment {
		where = fmt.Sprintf("sentence %d/%d", st.ActiveIndex+1, st.TotalSegments)
	}

	pos := subtleStyle.Render(formatDuration(st.Position))
	return strings.Join([]string{state, repeat, where, pos}, " · ")
}

func (m *model) sentenceListView() string {
	segments := m.controller.Segments()
	if len(segments) == 0 {
		return subtleStyle.Render("no sentences aligned")
	}

	st := m.controller.Status()
	top, bottom := m.visibleRange(len(segments))

	var b strings.Builder
	for i := top; i < bottom; i++ {
		line := segments[i].Text
		if m.cfg.ShowTimestamps {
			line = fmt.Sprintf("[%s-%s] %s",
				formatDuration(segments[i].Start), formatDuration(segments[i].End), line)
		}
		line = fmt.Sprintf("%3d  %s", i+1, line)
		if m.width > 4 {
			line = truncate.StringWithTail(line, uint(m.width-2), ellipsis)
		}

		prefix := "  "
		switch {
		case i == m.cursor && i == st.ActiveIndex:
			prefix = "> "
			line = activeStyle.Render(line)
		case i == m.cursor:
			prefix = "> "
			line = cursorStyle.Render(line)
		case i == st.ActiveIndex:
			line = activeStyle.Render(line)
		case m.dimmedBySearch(i):
			line = subtleStyle.Render(line)
		}

		b.WriteString(prefix + line + "\n")
	}
	return b.String()
}

// visibleRange keeps the cursor inside the window the terminal height
// allows for the sentence list.
func (m *model) visibleRange(total int) (int, int) {
	rows := m.height - 8 // header, progress, transport, status, help
	if rows < 3 {
		rows = 3
	}
	if total <= rows {
		return 0, total
	}

	top := m.cursor - rows/2
	if top < 0 {
		top = 0
	}
	if top+rows > total {
		top = total - rows
	}
	return top, top + rows
}

// dimmedBySearch reports whether a search filter is active and the
// sentence did not match it.
func (m *model) dimmedBySearch(index int) bool {
	if m.matches == nil {
		return false
	}
	for _, match := range m.matches {
		if match == index {
			return false
		}
	}
	return true
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
