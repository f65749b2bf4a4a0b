package trainer

import (
	"io"
	"log/slog"
	"sync"

	"github.com/kpatel528/rehabtrainer/internal/model"
	"github.com/kpatel528/rehabtrainer/internal/stats"
)

// Indicator is the RGB cue driven by the trainer. Set must not block.
type Indicator interface {
	Set(c model.Color)
}

// IndicatorFunc adapts a function to Indicator.
type IndicatorFunc func(c model.Color)

// Set implements Indicator.
func (f IndicatorFunc) Set(c model.Color) { f(c) }

type multiIndicator []Indicator

func (m multiIndicator) Set(c model.Color) {
	for _, ind := range m {
		ind.Set(c)
	}
}

// Indicators fans a color out to every non-nil indicator.
func Indicators(list ...Indicator) Indicator {
	out := make(multiIndicator, 0, len(list))
	for _, ind := range list {
		if ind != nil {
			out = append(out, ind)
		}
	}
	return out
}

// Output receives user-facing text one line at a time. Emit must not block.
type Output interface {
	Emit(line string)
}

// OutputFunc adapts a function to Output.
type OutputFunc func(line string)

// Emit implements Output.
func (f OutputFunc) Emit(line string) { f(line) }

// Trainer owns the trainer state and serializes every event source onto it.
// All methods are safe for concurrent use.
type Trainer struct {
	mu    sync.Mutex
	state State

	indicator Indicator
	out       Output
	logger    *slog.Logger
}

// New returns an idle trainer. A nil logger discards diagnostics.
func New(bpm int, indicator Indicator, out Output, logger *slog.Logger) *Trainer {
	if indicator == nil {
		indicator = Indicators()
	}
	if out == nil {
		out = OutputFunc(func(string) {})
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Trainer{
		state:     NewState(bpm),
		indicator: indicator,
		out:       out,
		logger:    logger,
	}
}

// Greet emits the startup banner.
func (t *Trainer) Greet() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, line := range BannerLines() {
		t.out.Emit(line)
	}
}

// Tick advances the clock by one millisecond.
func (t *Trainer) Tick() {
	t.dispatch(Tick{})
}

// SyncPressed handles an edge of the sync button.
func (t *Trainer) SyncPressed() {
	t.dispatch(SyncPress{})
}

// AbortPressed handles an edge of the stop button.
func (t *Trainer) AbortPressed() {
	t.dispatch(AbortPress{})
}

// HandleCommand interprets one character of console input.
func (t *Trainer) HandleCommand(ch rune) {
	t.dispatch(Command{Char: ch})
}

// Snapshot returns a copy of the current state.
func (t *Trainer) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Trainer) dispatch(ev Event) {
	t.mu.Lock()
	next, effects := Reduce(t.state, ev)
	t.state = next
	var notices []Effect
	for _, eff := range effects {
		switch eff := eff.(type) {
		case SetIndicator:
			t.indicator.Set(eff.Color)
		case EmitLine:
			t.out.Emit(eff.Line)
		default:
			notices = append(notices, eff)
		}
	}
	t.mu.Unlock()

	// Log sinks may block, so they run outside the lock.
	for _, eff := range notices {
		t.logNotice(eff)
	}
}

func (t *Trainer) logNotice(eff Effect) {
	switch eff := eff.(type) {
	case SessionStarted:
		t.logger.Info("session started", "bpm", eff.BPM)
	case SessionEnded:
		sum := stats.Summarize(eff.Acc)
		t.logger.Info("session ended",
			"reason", eff.Reason.String(),
			"beats", eff.Beats,
			"presses", sum.TotalPresses,
			"accurate", sum.AccuratePresses,
			"accuracy", sum.AccuracyText(),
			"mean_error", sum.MeanErrorText(),
		)
	}
}
