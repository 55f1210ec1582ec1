// Package align maps transcript text spans onto word-level timestamps,
// producing sentence-aligned audio segments.
package align

import (
	"strings"
	"time"
	"unicode"
)

// Word is a single transcribed word with its time span in the source audio.
// Words arrive in transcript order with non-decreasing start times.
type Word struct {
	Text  string        // Text fragment, including any surrounding whitespace
	Start time.Duration // Start time in the source audio
	End   time.Duration // End time in the source audio
}

// Segment is a sentence-level time span with its text. Segments are
// immutable once produced and always satisfy Start < End.
type Segment struct {
	Text  string        // Trimmed sentence text
	Start time.Duration // Start time of the first word in the sentence
	End   time.Duration // End time of the last word in the sentence
}

// Align converts a time-ordered word sequence into sentence segments.
//
// The word texts are concatenated unchanged into a reference string, the
// reference is split into sentences, and each sentence is located back in
// the reference with a monotonic search cursor so recurring sentence text
// can never match out of order. Sentences that cannot be located or whose
// offsets fall outside the word map are dropped rather than failing the
// whole alignment; callers that care can compare the segment count against
// the sentence count.
//
// Align is pure: identical input always yields identical output.
func Align(words []Word) []Segment {
	if len(words) == 0 {
		return nil
	}
	ref, _ := buildReference(words)
	return AlignSentences(words, splitSentences(ref))
}

// AlignSentences aligns an externally supplied sentence list against the
// word sequence. The sentences are located in the concatenated word text
// in order; use this instead of Align when the sentence split has
// already happened elsewhere, e.g. against a corrected transcript whose
// text no longer matches the words exactly. Sentences that cannot be
// located are dropped.
func AlignSentences(words []Word, sentences []string) []Segment {
	if len(words) == 0 || len(sentences) == 0 {
		return nil
	}

	ref, wordAt := buildReference(words)

	segments := make([]Segment, 0, len(sentences))
	cursor := 0
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		idx := strings.Index(ref[cursor:], sentence)
		if idx < 0 {
			// Sentence text not present past the cursor. Skip it and
			// keep going; one bad sentence must not block the rest.
			continue
		}
		start := cursor + idx
		end := start + len(sentence) - 1
		cursor = start + len(sentence)

		if start >= len(wordAt) || end >= len(wordAt) {
			continue
		}

		seg := Segment{
			Text:  sentence,
			Start: words[wordAt[start]].Start,
			End:   words[wordAt[end]].End,
		}
		if seg.Start >= seg.End {
			// Degenerate timestamps; a zero-length span is unplayable.
			continue
		}
		segments = append(segments, seg)
	}

	return segments
}

// buildReference concatenates word texts into a single reference string and
// records, for every byte offset, the index of the word it came from.
func buildReference(words []Word) (string, []int) {
	var b strings.Builder
	size := 0
	for _, w := range words {
		size += len(w.Text)
	}
	b.Grow(size)

	wordAt := make([]int, 0, size)
	for i, w := range words {
		b.WriteString(w.Text)
		for j := 0; j < len(w.Text); j++ {
			wordAt = append(wordAt, i)
		}
	}
	return b.String(), wordAt
}

// splitSentences cuts the reference string at sentence-ending punctuation
// (".", "!", "?") followed by whitespace or end of text. Results are
// trimmed; empty results are dropped.
func splitSentences(ref string) []string {
	var sentences []string
	start := 0

	for i := 0; i < len(ref); i++ {
		if !isSentenceEnd(ref[i]) {
			continue
		}
		// Swallow punctuation runs like "?!" or "..." as one boundary.
		end := i + 1
		for end < len(ref) && isSentenceEnd(ref[end]) {
			end++
		}
		if end < len(ref) && !unicode.IsSpace(rune(ref[end])) {
			i = end - 1
			continue
		}

		if s := strings.TrimSpace(ref[start:end]); s != "" {
			sentences = append(sentences, s)
		}
		start = end
		i = end - 1
	}

	if s := strings.TrimSpace(ref[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSentenceEnd(c byte) bool {
	return c == '.' || c == '!' || c == '?'
}
