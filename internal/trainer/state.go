// Package trainer implements the beat scheduler, timing evaluator, session
// controller and command interpreter of the rhythm trainer.
//
// The logic is a pure reducer: Reduce takes the current State and one Event
// and returns the next State plus the Effects to perform. Trainer owns the
// single State value, serializes events behind one lock and hands effects to
// the injected Indicator and Output.
package trainer

import "github.com/kpatel528/rehabtrainer/internal/model"

// State is the complete mutable state of the trainer.
type State struct {
	// Tick is the millisecond clock. It wraps at 2^32.
	Tick uint32

	Active      bool
	BeatCounter uint32
	LastBeat    uint32

	BPM      uint32
	Interval uint32

	// Indicator is the last color sent to the indicator.
	Indicator model.Color

	Acc model.Accumulators
}

// NewState returns an idle state at the given tempo. Tempos outside the
// supported range fall back to the default.
func NewState(bpm int) State {
	if !ValidBPM(bpm) {
		bpm = model.DefaultBPM
	}
	return State{
		BPM:      uint32(bpm),
		Interval: model.IntervalFor(uint32(bpm)),
	}
}

// ValidBPM reports whether bpm is reachable with the tempo commands.
func ValidBPM(bpm int) bool {
	if bpm < model.MinBPM || bpm > model.MaxBPM {
		return false
	}
	return (bpm-model.MinBPM)%model.BPMStep == 0
}

// SinceBeat returns the modular distance from the last beat to now.
func (s State) SinceBeat() uint32 {
	return s.Tick - s.LastBeat
}
