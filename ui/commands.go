package ui

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/dgnsrekt/relisten/align"
	"github.com/dgnsrekt/relisten/internal/cache"
	"github.com/dgnsrekt/relisten/transcript"
)

// samplePosition schedules the next position sample.
func samplePosition(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return positionTickMsg(t)
	})
}

// hideStatusAfter expires the status message after the given delay.
func hideStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return statusTimeoutMsg{}
	})
}

// reloadTranscript loads and aligns the transcript, consulting the
// alignment cache first. Alignment is pure, so a cached result for an
// unchanged file is always valid.
func reloadTranscript(path string, alignments *cache.AlignmentCache) tea.Cmd {
	return func() tea.Msg {
		info, err := os.Stat(path)
		if err != nil {
			return transcriptReloadedMsg{err: err}
		}

		key := cache.Key(path, info.ModTime(), info.Size())
		if segments, ok := alignments.Get(key); ok {
			log.Debug("Alignment served from cache", "path", path)
			return transcriptReloadedMsg{segments: segments, fromCache: true}
		}

		words, err := transcript.Load(path)
		if err != nil {
			return transcriptReloadedMsg{err: err}
		}

		segments := align.Align(words)
		alignments.Put(key, segments)
		log.Debug("Transcript aligned", "path", path, "words", len(words), "segments", len(segments))
		return transcriptReloadedMsg{segments: segments}
	}
}
