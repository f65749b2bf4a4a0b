package trainer

import "github.com/kpatel528/rehabtrainer/internal/model"

// Event is the input to Reduce.
type Event interface {
	eventMarker()
}

// Tick is delivered once per millisecond by the tick source.
type Tick struct{}

func (Tick) eventMarker() {}

// SyncPress is an edge of the sync button.
type SyncPress struct{}

func (SyncPress) eventMarker() {}

// AbortPress is an edge of the stop button.
type AbortPress struct{}

func (AbortPress) eventMarker() {}

// Command is one character of console input.
type Command struct {
	Char rune
}

func (Command) eventMarker() {}

// Effect is an output of Reduce that the Trainer performs.
type Effect interface {
	effectMarker()
}

// SetIndicator drives the indicator to a color.
type SetIndicator struct {
	Color model.Color
}

func (SetIndicator) effectMarker() {}

// EmitLine writes one line of user-facing text.
type EmitLine struct {
	Line string
}

func (EmitLine) effectMarker() {}

// SessionStarted reports that a new session began.
type SessionStarted struct {
	BPM uint32
}

func (SessionStarted) effectMarker() {}

// EndReason says why a session ended.
type EndReason int

const (
	// Completed means the session reached MaxSessionBeats.
	Completed EndReason = iota
	// Aborted means the stop button ended the session.
	Aborted
)

// String returns the reason name.
func (r EndReason) String() string {
	if r == Aborted {
		return "aborted"
	}
	return "completed"
}

// SessionEnded reports the final accumulators of a session.
type SessionEnded struct {
	Reason EndReason
	Beats  uint32
	Acc    model.Accumulators
}

func (SessionEnded) effectMarker() {}
