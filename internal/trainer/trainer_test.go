package trainer

import (
	"strings"
	"sync"
	"testing"

	"github.com/kpatel528/rehabtrainer/internal/model"
)

type recordIndicator struct {
	mu     sync.Mutex
	colors []model.Color
}

func (r *recordIndicator) Set(c model.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.colors = append(r.colors, c)
}

func (r *recordIndicator) last() model.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.colors) == 0 {
		return model.Off
	}
	return r.colors[len(r.colors)-1]
}

type recordOutput struct {
	mu    sync.Mutex
	lines []string
}

func (r *recordOutput) Emit(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
}

func (r *recordOutput) text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.lines, "\n")
}

func (r *recordOutput) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = nil
}

func TestTrainerSessionFlow(t *testing.T) {
	ind := &recordIndicator{}
	out := &recordOutput{}
	tr := New(60, ind, out, nil)

	tr.Greet()
	if !strings.Contains(out.text(), "Type 'h' for help") {
		t.Fatalf("expected banner, got:\n%s", out.text())
	}

	tr.HandleCommand('s')
	for i := 0; i < 5000; i++ {
		tr.Tick()
	}
	snap := tr.Snapshot()
	if snap.BeatCounter != 5 || snap.LastBeat != 5000 {
		t.Fatalf("expected 5 beats with last at 5000, got %d / %d", snap.BeatCounter, snap.LastBeat)
	}
	if ind.last() != model.Beat {
		t.Fatalf("expected beat flash, got %v", ind.last())
	}

	for i := 0; i < 80; i++ {
		tr.Tick()
	}
	out.reset()
	tr.SyncPressed()
	if ind.last() != model.OnBeat {
		t.Fatalf("expected on-beat feedback, got %v", ind.last())
	}
	if out.text() != "Good! Error: 80 ms" {
		t.Fatalf("unexpected feedback: %q", out.text())
	}

	tr.AbortPressed()
	if ind.last() != model.Off {
		t.Fatalf("expected indicator off after abort, got %v", ind.last())
	}
	if !strings.Contains(out.text(), "=== Session Stopped ===") {
		t.Fatalf("expected stop report, got:\n%s", out.text())
	}
	if tr.Snapshot().Active {
		t.Fatalf("expected idle trainer")
	}
}

func TestTrainerIgnoresIdleButtons(t *testing.T) {
	ind := &recordIndicator{}
	out := &recordOutput{}
	tr := New(60, ind, out, nil)

	tr.SyncPressed()
	tr.AbortPressed()
	if len(ind.colors) != 0 || out.text() != "" {
		t.Fatalf("expected no output while idle, got %v %q", ind.colors, out.text())
	}
}

func TestTrainerConcurrentSources(t *testing.T) {
	tr := New(120, &recordIndicator{}, &recordOutput{}, nil)
	tr.HandleCommand('s')

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 20000; i++ {
			tr.Tick()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			tr.SyncPressed()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			tr.HandleCommand('+')
			tr.HandleCommand('-')
		}
	}()
	wg.Wait()

	snap := tr.Snapshot()
	if snap.Tick != 20000 {
		t.Fatalf("expected 20000 ticks, got %d", snap.Tick)
	}
	if snap.Acc.ErrorCount != snap.Acc.TotalPresses || snap.Acc.AccuratePresses > snap.Acc.TotalPresses {
		t.Fatalf("inconsistent accumulators: %+v", snap.Acc)
	}
	if snap.BPM < model.MinBPM || snap.BPM > model.MaxBPM {
		t.Fatalf("bpm out of range: %d", snap.BPM)
	}
}

func TestIndicatorsFanOut(t *testing.T) {
	a := &recordIndicator{}
	b := &recordIndicator{}
	ind := Indicators(a, nil, b)
	ind.Set(model.OffBeat)
	if a.last() != model.OffBeat || b.last() != model.OffBeat {
		t.Fatalf("expected both indicators set")
	}
}
