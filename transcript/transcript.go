// Package transcript loads word-timestamp transcripts from JSON files
// and converts them into the aligner's word sequence.
//
// Two layouts are accepted: whisper-style verbose output, where words
// are nested under segments, and a flat top-level word list. Times are
// float seconds in the file and become time.Duration here.
package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dgnsrekt/relisten/align"
)

// wordJSON is one timed word as it appears on disk.
type wordJSON struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// segmentJSON is a whisper verbose-output segment. Only the nested
// words matter here; segment-level text and timing are ignored.
type segmentJSON struct {
	Words []wordJSON `json:"words"`
}

// fileJSON covers both accepted layouts. Whisper verbose output nests
// words under segments; simpler exporters put them at the top level.
type fileJSON struct {
	Segments []segmentJSON `json:"segments"`
	Words    []wordJSON    `json:"words"`
}

// Load reads a transcript file and returns its word sequence in
// transcript order. A transcript with no words returns an empty
// sequence, not an error.
func Load(path string) ([]align.Word, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	words, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse transcript %s: %w", path, err)
	}
	return words, nil
}

// Parse decodes transcript JSON into a word sequence. Words nested
// under segments take priority; the flat word list is the fallback.
// Timestamps are sanitized: negative times clamp to zero and each
// word's times are forced to be non-decreasing relative to the
// previous word, so the aligner's ordering assumption always holds.
func Parse(data []byte) ([]align.Word, error) {
	var file fileJSON
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTranscript, err)
	}

	raw := file.Words
	if len(file.Segments) > 0 {
		raw = raw[:0:0]
		for _, seg := range file.Segments {
			raw = append(raw, seg.Words...)
		}
	}
	if len(raw) == 0 {
		return nil, nil
	}

	words := make([]align.Word, 0, len(raw))
	var floor time.Duration
	for _, w := range raw {
		start := secondsToDuration(w.Start)
		end := secondsToDuration(w.End)
		if start < floor {
			start = floor
		}
		if end < start {
			end = start
		}
		floor = start
		words = append(words, align.Word{Text: w.Word, Start: start, End: end})
	}
	return words, nil
}

func secondsToDuration(s float64) time.Duration {
	if s < 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}
