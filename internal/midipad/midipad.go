// Package midipad maps notes from a MIDI controller onto the trainer buttons.
package midipad

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/kpatel528/rehabtrainer/internal/model"
)

// Default pad notes (C3 and D3 on most controllers).
const (
	DefaultSyncNote  = 48
	DefaultAbortNote = 50
)

// Virtual and system ports that are never picked automatically.
var excludedPorts = []string{"Midi Through", "Through Port", "Dummy"}

// Action is what a note press means to the trainer.
type Action int

const (
	None Action = iota
	Sync
	Abort
)

// ActionFor maps a note number to a button.
func ActionFor(cfg model.MIDIConfig, note int) Action {
	switch note {
	case cfg.SyncNote:
		return Sync
	case cfg.AbortNote:
		return Abort
	default:
		return None
	}
}

// DefaultConfig returns the default note mapping with MIDI disabled.
func DefaultConfig() model.MIDIConfig {
	return model.MIDIConfig{SyncNote: DefaultSyncNote, AbortNote: DefaultAbortNote}
}

// Pad listens on one MIDI input port.
type Pad struct {
	drv    *rtmididrv.Driver
	in     drivers.In
	stop   func()
	logger *slog.Logger
}

// Open connects to the configured input port, or to the first real port when
// none is configured. onSync and onAbort run on the driver's goroutine.
func Open(cfg model.MIDIConfig, onSync, onAbort func(), logger *slog.Logger) (*Pad, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("failed to open midi driver: %w", err)
	}
	p := &Pad{drv: drv, logger: logger}

	ins, err := drv.Ins()
	if err != nil {
		p.closeDriver()
		return nil, fmt.Errorf("failed to list midi inputs: %w", err)
	}
	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.String()
	}
	idx := selectPort(names, cfg.Port)
	if idx < 0 {
		p.closeDriver()
		if cfg.Port == "" {
			return nil, fmt.Errorf("no midi input found")
		}
		return nil, fmt.Errorf("midi input %q not found", cfg.Port)
	}
	in := ins[idx]
	if err := in.Open(); err != nil {
		p.closeDriver()
		return nil, fmt.Errorf("failed to open midi input %q: %w", names[idx], err)
	}

	stop, err := midi.ListenTo(in, func(msg midi.Message, _ int32) {
		var ch, key, vel uint8
		if !msg.GetNoteStart(&ch, &key, &vel) {
			return
		}
		logger.Debug("midi: note on", "ch", ch, "key", key, "vel", vel)
		switch ActionFor(cfg, int(key)) {
		case Sync:
			if onSync != nil {
				onSync()
			}
		case Abort:
			if onAbort != nil {
				onAbort()
			}
		}
	}, midi.HandleError(func(listenErr error) {
		logger.Warn("midi: listener error", "device", names[idx], "err", listenErr)
	}))
	if err != nil {
		if cerr := in.Close(); cerr != nil {
			// Best-effort close after a failed listen.
			_ = cerr
		}
		p.closeDriver()
		return nil, fmt.Errorf("failed to listen on midi input %q: %w", names[idx], err)
	}

	p.in = in
	p.stop = stop
	logger.Info("midi: connected", "device", names[idx])
	return p, nil
}

// Close stops listening and releases the driver.
func (p *Pad) Close() error {
	if p.stop != nil {
		p.stop()
	}
	var err error
	if p.in != nil {
		err = p.in.Close()
	}
	p.closeDriver()
	return err
}

func (p *Pad) closeDriver() {
	if cerr := p.drv.Close(); cerr != nil {
		// Best-effort driver shutdown.
		_ = cerr
	}
}

// Ports lists the MIDI input names.
func Ports() ([]string, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("failed to open midi driver: %w", err)
	}
	defer drv.Close()
	ins, err := drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("failed to list midi inputs: %w", err)
	}
	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.String()
	}
	return names, nil
}

// selectPort returns the index of the port to open, or -1. A configured name
// matches case-insensitively as a substring.
func selectPort(names []string, want string) int {
	for i, name := range names {
		if want != "" {
			if containsFold(name, want) {
				return i
			}
			continue
		}
		if !excluded(name) {
			return i
		}
	}
	return -1
}

func excluded(name string) bool {
	for _, pattern := range excludedPorts {
		if containsFold(name, pattern) {
			return true
		}
	}
	return false
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
