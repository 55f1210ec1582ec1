package audio

import (
	"encoding/binary"
	"errors"
	"io"
	"testing"
	"time"
)

// buildWAV assembles a minimal RIFF/WAVE file around the given PCM data.
func buildWAV(sampleRate, channels int, pcm []byte) []byte {
	var fmtChunk [16]byte
	binary.LittleEndian.PutUint16(fmtChunk[0:2], 1) // PCM
	binary.LittleEndian.PutUint16(fmtChunk[2:4], uint16(channels))
	binary.LittleEndian.PutUint32(fmtChunk[4:8], uint32(sampleRate))
	binary.LittleEndian.PutUint32(fmtChunk[8:12], uint32(sampleRate*channels*2))
	binary.LittleEndian.PutUint16(fmtChunk[12:14], uint16(channels*2))
	binary.LittleEndian.PutUint16(fmtChunk[14:16], 16)

	body := make([]byte, 0, 36+len(pcm))
	body = append(body, "WAVE"...)
	body = append(body, "fmt "...)
	body = binary.LittleEndian.AppendUint32(body, 16)
	body = append(body, fmtChunk[:]...)
	body = append(body, "data"...)
	body = binary.LittleEndian.AppendUint32(body, uint32(len(pcm)))
	body = append(body, pcm...)

	file := make([]byte, 0, 8+len(body))
	file = append(file, "RIFF"...)
	file = binary.LittleEndian.AppendUint32(file, uint32(len(body)))
	file = append(file, body...)
	return file
}

func TestDecodeWAV(t *testing.T) {
	pcm := make([]byte, 8000*2*2) // one second, 8 kHz stereo
	w, err := DecodeWAV(buildWAV(8000, 2, pcm))
	if err != nil {
		t.Fatalf("DecodeWAV: %v", err)
	}

	if w.SampleRate != 8000 || w.Channels != 2 {
		t.Errorf("format = %d Hz, %d ch, want 8000 Hz, 2 ch", w.SampleRate, w.Channels)
	}
	if len(w.Data) != len(pcm) {
		t.Errorf("data = %d bytes, want %d", len(w.Data), len(pcm))
	}
	if got := w.Duration(); got != time.Second {
		t.Errorf("Duration = %v, want 1s", got)
	}
}

func TestDecodeWAVSkipsUnknownChunks(t *testing.T) {
	pcm := make([]byte, 4)
	file := buildWAV(8000, 1, pcm)

	// Splice a LIST chunk between fmt and data.
	extra := append([]byte("LIST"), 0x04, 0, 0, 0, 'i', 'n', 'f', 'o')
	spliced := append([]byte{}, file[:36]...)
	spliced = append(spliced, extra...)
	spliced = append(spliced, file[36:]...)
	binary.LittleEndian.PutUint32(spliced[4:8], uint32(len(spliced)-8))

	w, err := DecodeWAV(spliced)
	if err != nil {
		t.Fatalf("DecodeWAV with LIST chunk: %v", err)
	}
	if len(w.Data) != len(pcm) {
		t.Errorf("data = %d bytes, want %d", len(w.Data), len(pcm))
	}
}

func TestDecodeWAVErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrNotWAV},
		{"wrong magic", []byte("OggS....babble"), ErrNotWAV},
		{"truncated header", []byte("RIFF\x00\x00"), ErrNotWAV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeWAV(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("DecodeWAV = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeWAVRejectsCompressed(t *testing.T) {
	file := buildWAV(8000, 1, make([]byte, 4))
	// Rewrite the fmt audio-format field to IEEE float (3).
	binary.LittleEndian.PutUint16(file[20:22], 3)

	if _, err := DecodeWAV(file); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("DecodeWAV = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecodeWAVTrimsRaggedTail(t *testing.T) {
	// Stereo frames are 4 bytes; 6 bytes of data leaves a ragged tail.
	w, err := DecodeWAV(buildWAV(8000, 2, make([]byte, 6)))
	if err != nil {
		t.Fatalf("DecodeWAV: %v", err)
	}
	if len(w.Data) != 4 {
		t.Errorf("data = %d bytes, want 4 after trim", len(w.Data))
	}
}

func TestByteOffsetRoundTrip(t *testing.T) {
	w := &WAV{SampleRate: 44100, Channels: 2, Data: make([]byte, 44100*4)}

	tests := []struct {
		pos  time.Duration
		want int64
	}{
		{0, 0},
		{250 * time.Millisecond, 44100},
		{500 * time.Millisecond, 88200},
		{-time.Second, 0},
		{time.Hour, int64(len(w.Data))}, // clamped to the end
	}

	for _, tt := range tests {
		got := w.ByteOffset(tt.pos)
		if got != tt.want {
			t.Errorf("ByteOffset(%v) = %d, want %d", tt.pos, got, tt.want)
		}
		if got%int64(w.BytesPerFrame()) != 0 {
			t.Errorf("ByteOffset(%v) = %d, not frame aligned", tt.pos, got)
		}
	}

	if got := w.PositionAt(88200); got != 500*time.Millisecond {
		t.Errorf("PositionAt(88200) = %v, want 500ms", got)
	}
}

func TestPositionTrackingReader(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	r := newPositionTrackingReader(data)

	buf := make([]byte, 3)
	if _, err := r.Read(buf); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := r.Position(); got != 3 {
		t.Errorf("Position after read = %d, want 3", got)
	}

	if _, err := r.Seek(6, io.SeekStart); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if got := r.Position(); got != 6 {
		t.Errorf("Position after seek = %d, want 6", got)
	}

	n, _ := r.Read(buf)
	if got := r.Position(); got != int64(6+n) {
		t.Errorf("Position after second read = %d, want %d", got, 6+n)
	}
}
