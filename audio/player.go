package audio

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Format specifies the oto sample format for decoded WAV data.
const Format = oto.FormatSignedInt16LE

// positionTrackingReader wraps a bytes.Reader and tracks the consumed
// byte offset atomically, so the playhead position can be read without
// taking the player lock.
type positionTrackingReader struct {
	mu       sync.Mutex // protects reader operations
	reader   *bytes.Reader
	position int64 // atomic
}

func newPositionTrackingReader(data []byte) *positionTrackingReader {
	return &positionTrackingReader{reader: bytes.NewReader(data)}
}

func (ptr *positionTrackingReader) Read(p []byte) (n int, err error) {
	ptr.mu.Lock()
	defer ptr.mu.Unlock()

	n, err = ptr.reader.Read(p)
	if n > 0 {
		atomic.AddInt64(&ptr.position, int64(n))
	}
	return n, err
}

func (ptr *positionTrackingReader) Seek(offset int64, whence int) (int64, error) {
	ptr.mu.Lock()
	defer ptr.mu.Unlock()

	newPos, err := ptr.reader.Seek(offset, whence)
	if err == nil {
		atomic.StoreInt64(&ptr.position, newPos)
	}
	return newPos, err
}

func (ptr *positionTrackingReader) Position() int64 {
	return atomic.LoadInt64(&ptr.position)
}

// oto allows one context per process; the first player created fixes
// the output format for the process lifetime.
var (
	otoContext     *oto.Context
	otoContextOnce sync.Once
)

func getContext(sampleRate, channels int) (*oto.Context, error) {
	var initErr error
	otoContextOnce.Do(func() {
		options := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       Format,
		}
		ctx, ready, err := oto.NewContext(options)
		if err != nil {
			initErr = fmt.Errorf("create audio context: %w", err)
			return
		}
		<-ready
		otoContext = ctx
	})
	if initErr != nil {
		return nil, initErr
	}
	return otoContext, nil
}

// Player plays one decoded WAV recording. It satisfies the controller's
// transport contract: play, pause and seek are fire-and-forget, and the
// playhead position is readable on demand.
type Player struct {
	mu       sync.Mutex
	player   *oto.Player
	reader   *positionTrackingReader
	wav      *WAV
	duration time.Duration
	closed   bool
}

// NewPlayer creates a player for the given recording. The audio device
// is opened immediately; playback starts on the first Play call.
func NewPlayer(w *WAV) (*Player, error) {
	if len(w.Data) == 0 {
		return nil, ErrEmptyAudio
	}

	ctx, err := getContext(w.SampleRate, w.Channels)
	if err != nil {
		return nil, err
	}

	reader := newPositionTrackingReader(w.Data)
	return &Player{
		player:   ctx.NewPlayer(reader),
		reader:   reader,
		wav:      w,
		duration: w.Duration(),
	}, nil
}

// Play starts or resumes playback.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPlayerClosed
	}
	p.player.Play()
	return nil
}

// Pause halts playback without moving the playhead.
func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPlayerClosed
	}
	p.player.Pause()
	return nil
}

// Seek moves the playhead. The offset is aligned down to a whole
// sample frame and clamped to the recording.
func (p *Player) Seek(pos time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPlayerClosed
	}
	if _, err := p.player.Seek(p.wav.ByteOffset(pos), io.SeekStart); err != nil {
		return fmt.Errorf("seek to %s: %w", pos, err)
	}
	return nil
}

// Position returns the current playhead position. The tracked reader
// offset runs ahead of the audible playhead by whatever oto has
// buffered, so the buffered byte count is subtracted back out.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return 0
	}
	consumed := p.reader.Position() - int64(p.player.BufferedSize())
	if consumed < 0 {
		consumed = 0
	}
	return p.wav.PositionAt(consumed)
}

// IsPlaying reports whether audio is currently playing.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return false
	}
	return p.player.IsPlaying()
}

// Duration returns the total play time of the recording.
func (p *Player) Duration() time.Duration {
	return p.duration
}

// AtEnd reports whether the playhead sits within tolerance of the end
// of the recording. The device never raises an end-of-stream event, so
// the host polls this to synthesize one.
func (p *Player) AtEnd(tolerance time.Duration) bool {
	return p.Position() >= p.duration-tolerance
}

// Close releases the audio device player. The shared context stays
// open for the process lifetime.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("close player: %w", err)
	}
	return nil
}
