// Package audio plays a short click on every beat.
package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"

	"github.com/kpatel528/rehabtrainer/internal/model"
)

const (
	SampleRate       = 44100
	DefaultFrequency = 1000.0
	clickMS          = 20
	amplitude        = 0.3
)

// Click is an indicator that sounds on the blue beat flash and ignores every
// other color.
type Click struct {
	stream *clickStream
	player *oto.Player
}

// NewClick opens the default audio device. Only one oto context may exist
// per process.
func NewClick(frequency float64) (*Click, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	stream := newClickStream(SampleRate, frequency)
	player := ctx.NewPlayer(stream)
	// 10ms keeps the click close to the visual flash.
	player.SetBufferSize(SampleRate / 100 * 2)
	player.Play()
	return &Click{stream: stream, player: player}, nil
}

// Set implements the trainer indicator.
func (c *Click) Set(color model.Color) {
	if color == model.Beat {
		c.stream.trigger()
	}
}

// Close stops playback.
func (c *Click) Close() error {
	return c.player.Close()
}

// clickStream is an endless mono PCM reader that emits a square burst after
// each trigger and silence otherwise.
type clickStream struct {
	pending atomic.Bool

	mu        sync.Mutex
	halfCycle int
	burst     int
	remaining int
	pos       int
}

func newClickStream(sampleRate int, frequency float64) *clickStream {
	if frequency <= 0 {
		frequency = DefaultFrequency
	}
	half := int(math.Round(float64(sampleRate) / frequency / 2))
	if half < 1 {
		half = 1
	}
	return &clickStream{
		halfCycle: half,
		burst:     sampleRate * clickMS / 1000,
	}
}

func (s *clickStream) trigger() {
	s.pending.Store(true)
}

func (s *clickStream) Read(buf []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending.Swap(false) {
		s.remaining = s.burst
		s.pos = 0
	}

	samples := len(buf) / 2
	level := int16(amplitude * math.MaxInt16)
	for i := 0; i < samples; i++ {
		var v int16
		if s.remaining > 0 {
			v = level
			if (s.pos/s.halfCycle)%2 == 1 {
				v = -level
			}
			s.pos++
			s.remaining--
		}
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(v))
	}
	return samples * 2, nil
}
