package transcript

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/dgnsrekt/relisten/align"
)

func sec(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func TestParseWhisperVerbose(t *testing.T) {
	data := []byte(`{
		"text": "Hi. Bye.",
		"segments": [
			{"words": [
				{"word": "Hi.", "start": 0.0, "end": 1.0},
				{"word": " Bye.", "start": 1.0, "end": 2.0}
			]}
		]
	}`)

	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []align.Word{
		{Text: "Hi.", Start: 0, End: sec(1)},
		{Text: " Bye.", Start: sec(1), End: sec(2)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse = %v, want %v", got, want)
	}
}

func TestParseFlatWordList(t *testing.T) {
	data := []byte(`{"words": [
		{"word": "One.", "start": 0.5, "end": 1.5},
		{"word": " Two.", "start": 1.5, "end": 2.5}
	]}`)

	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 2 || got[0].Text != "One." || got[1].Start != sec(1.5) {
		t.Errorf("Parse = %v", got)
	}
}

func TestParseMultipleSegments(t *testing.T) {
	data := []byte(`{"segments": [
		{"words": [{"word": "A.", "start": 0, "end": 1}]},
		{"words": [{"word": " B.", "start": 1, "end": 2}]}
	]}`)

	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d words, want 2: %v", len(got), got)
	}
}

func TestParseSanitizesTimestamps(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []align.Word
	}{
		{
			name: "negative times clamp to zero",
			data: `{"words": [{"word": "Hi.", "start": -0.5, "end": 1.0}]}`,
			want: []align.Word{{Text: "Hi.", Start: 0, End: sec(1)}},
		},
		{
			name: "end before start collapses",
			data: `{"words": [{"word": "Hi.", "start": 2.0, "end": 1.0}]}`,
			want: []align.Word{{Text: "Hi.", Start: sec(2), End: sec(2)}},
		},
		{
			name: "decreasing start raised to previous",
			data: `{"words": [
				{"word": "A.", "start": 3.0, "end": 4.0},
				{"word": " B.", "start": 1.0, "end": 5.0}
			]}`,
			want: []align.Word{
				{Text: "A.", Start: sec(3), End: sec(4)},
				{Text: " B.", Start: sec(3), End: sec(5)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseEmptyTranscript(t *testing.T) {
	for _, data := range []string{`{}`, `{"words": []}`, `{"segments": []}`} {
		got, err := Parse([]byte(data))
		if err != nil {
			t.Errorf("Parse(%s): %v", data, err)
		}
		if got != nil {
			t.Errorf("Parse(%s) = %v, want nil", data, got)
		}
	}
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`not json`))
	if !errors.Is(err, ErrInvalidTranscript) {
		t.Errorf("Parse error = %v, want ErrInvalidTranscript", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.json")
	content := `{"words": [{"word": "Hello.", "start": 0, "end": 1.2}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	words, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(words) != 1 || words[0].End != sec(1.2) {
		t.Errorf("Load = %v", words)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load on a missing file did not fail")
	}
}
