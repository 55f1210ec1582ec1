// Package audio plays a PCM recording through ebitengine/oto and
// exposes the seekable transport the playback controller drives.
package audio

import (
	"encoding/binary"
	"fmt"
	"os"
	"time"
)

// WAV is a decoded RIFF/WAVE file holding 16-bit PCM samples.
type WAV struct {
	SampleRate int
	Channels   int
	Data       []byte // interleaved little-endian signed 16-bit samples
}

// BytesPerFrame returns the size of one sample frame across all channels.
func (w *WAV) BytesPerFrame() int {
	return w.Channels * 2
}

// Duration returns the total play time of the recording.
func (w *WAV) Duration() time.Duration {
	frames := len(w.Data) / w.BytesPerFrame()
	return time.Duration(frames) * time.Second / time.Duration(w.SampleRate)
}

// ByteOffset converts a play position to a frame-aligned byte offset
// into the PCM data, clamped to the recording.
func (w *WAV) ByteOffset(pos time.Duration) int64 {
	if pos < 0 {
		pos = 0
	}
	frame := int64(pos) * int64(w.SampleRate) / int64(time.Second)
	offset := frame * int64(w.BytesPerFrame())
	if max := int64(len(w.Data)); offset > max {
		offset = max
	}
	return offset
}

// PositionAt converts a byte offset into the PCM data to a play position.
func (w *WAV) PositionAt(offset int64) time.Duration {
	frames := offset / int64(w.BytesPerFrame())
	return time.Duration(frames) * time.Second / time.Duration(w.SampleRate)
}

// LoadWAV reads and decodes a WAV file from disk.
func LoadWAV(path string) (*WAV, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	w, err := DecodeWAV(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return w, nil
}

// DecodeWAV parses a RIFF/WAVE container. Only uncompressed 16-bit PCM
// is supported; chunks other than fmt and data are skipped.
func DecodeWAV(data []byte) (*WAV, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, ErrNotWAV
	}

	w := &WAV{}
	sawFmt := false

	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8
		if size < 0 || body+size > len(data) {
			return nil, fmt.Errorf("%w: chunk %q exceeds file size", ErrMalformedWAV, id)
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, fmt.Errorf("%w: short fmt chunk", ErrMalformedWAV)
			}
			audioFormat := binary.LittleEndian.Uint16(data[body : body+2])
			channels := binary.LittleEndian.Uint16(data[body+2 : body+4])
			sampleRate := binary.LittleEndian.Uint32(data[body+4 : body+8])
			bitsPerSample := binary.LittleEndian.Uint16(data[body+14 : body+16])

			if audioFormat != 1 || bitsPerSample != 16 {
				return nil, fmt.Errorf("%w: format %d, %d bits (want PCM 16-bit)",
					ErrUnsupportedFormat, audioFormat, bitsPerSample)
			}
			if channels == 0 || sampleRate == 0 {
				return nil, fmt.Errorf("%w: zero channels or sample rate", ErrMalformedWAV)
			}
			w.Channels = int(channels)
			w.SampleRate = int(sampleRate)
			sawFmt = true

		case "data":
			w.Data = data[body : body+size]
		}

		// Chunk bodies are word-aligned; odd sizes carry a pad byte.
		offset = body + size + size%2
	}

	if !sawFmt {
		return nil, fmt.Errorf("%w: missing fmt chunk", ErrMalformedWAV)
	}
	if w.Data == nil {
		return nil, fmt.Errorf("%w: missing data chunk", ErrMalformedWAV)
	}
	if len(w.Data)%w.BytesPerFrame() != 0 {
		// Trim a ragged tail rather than failing the whole file.
		w.Data = w.Data[:len(w.Data)-len(w.Data)%w.BytesPerFrame()]
	}
	return w, nil
}
