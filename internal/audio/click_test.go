package audio

import (
	"encoding/binary"
	"testing"

	"github.com/kpatel528/rehabtrainer/internal/model"
)

func readSamples(t *testing.T, s *clickStream, n int) []int16 {
	t.Helper()
	buf := make([]byte, n*2)
	got, err := s.Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != len(buf) {
		t.Fatalf("expected %d bytes, got %d", len(buf), got)
	}
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(buf[i*2:]))
	}
	return out
}

func TestClickStreamSilentUntilTriggered(t *testing.T) {
	s := newClickStream(1000, 100)
	for _, v := range readSamples(t, s, 50) {
		if v != 0 {
			t.Fatalf("expected silence, got %d", v)
		}
	}
}

func TestClickStreamBurst(t *testing.T) {
	// 1 kHz sample rate gives a 20-sample burst with a 5-sample half cycle.
	s := newClickStream(1000, 100)
	s.trigger()

	samples := readSamples(t, s, 30)
	for i := 0; i < 20; i++ {
		if samples[i] == 0 {
			t.Fatalf("expected sound at sample %d", i)
		}
	}
	if samples[0] <= 0 || samples[5] >= 0 || samples[10] <= 0 {
		t.Fatalf("expected alternating square wave, got %v", samples[:11])
	}
	for i := 20; i < 30; i++ {
		if samples[i] != 0 {
			t.Fatalf("expected silence after burst at sample %d, got %d", i, samples[i])
		}
	}
}

func TestClickStreamBurstSpansReads(t *testing.T) {
	s := newClickStream(1000, 100)
	s.trigger()
	first := readSamples(t, s, 8)
	second := readSamples(t, s, 20)
	if first[7] == 0 || second[11] == 0 {
		t.Fatalf("expected burst to continue across reads")
	}
	if second[12] != 0 {
		t.Fatalf("expected burst to end after 20 samples")
	}
}

func TestClickIgnoresFeedbackColors(t *testing.T) {
	c := &Click{stream: newClickStream(1000, 100)}
	c.Set(model.OnBeat)
	c.Set(model.OffBeat)
	c.Set(model.Off)
	if c.stream.pending.Load() {
		t.Fatalf("feedback colors must not click")
	}
	c.Set(model.Beat)
	if !c.stream.pending.Load() {
		t.Fatalf("beat must click")
	}
}
