// Package model defines shared data structures.
package model

import "log/slog"

// Session and tempo constants.
const (
	MaxSessionBeats = 120
	ToleranceMS     = 100
	PulseMS         = 50

	MinBPM     = 40
	MaxBPM     = 120
	BPMStep    = 10
	DefaultBPM = 60
)

// IntervalFor returns the beat interval in milliseconds for a tempo.
func IntervalFor(bpm uint32) uint32 {
	if bpm == 0 {
		return 0
	}
	return 60000 / bpm
}

// Color is a tri-state indicator command.
type Color int

const (
	// Off turns every channel off.
	Off Color = iota
	// Beat is the blue "beat now" flash.
	Beat
	// OnBeat is the green feedback for an accurate press.
	OnBeat
	// OffBeat is the red feedback for an inaccurate press.
	OffBeat
)

// RGB returns the channel states for a color.
func (c Color) RGB() (red, green, blue bool) {
	switch c {
	case Beat:
		return false, false, true
	case OnBeat:
		return false, true, false
	case OffBeat:
		return true, false, false
	default:
		return false, false, false
	}
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case Off:
		return "off"
	case Beat:
		return "beat"
	case OnBeat:
		return "on-beat"
	case OffBeat:
		return "off-beat"
	default:
		return "unknown"
	}
}

// Accumulators hold the per-session press statistics.
type Accumulators struct {
	TotalPresses    uint32
	AccuratePresses uint32
	ErrorSum        uint64
	ErrorCount      uint32
}

// Config defines runtime settings after flags and the config file are merged.
type Config struct {
	BPM int

	SerialDevice string
	SerialBaud   int

	GPIO GPIOConfig
	MIDI MIDIConfig

	Click     bool
	ClickFreq float64

	LogLevel slog.Level
	LogFile  string
}

// GPIOConfig maps the buttons and the RGB indicator to GPIO line offsets.
type GPIOConfig struct {
	Enabled   bool
	Chip      string
	Sync      int
	Abort     int
	Red       int
	Green     int
	Blue      int
	ActiveLow bool
}

// MIDIConfig maps MIDI notes to the buttons.
type MIDIConfig struct {
	Enabled   bool
	Port      string
	SyncNote  int
	AbortNote int
}
