package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/kpatel528/rehabtrainer/internal/audio"
	"github.com/kpatel528/rehabtrainer/internal/gpio"
	"github.com/kpatel528/rehabtrainer/internal/midipad"
	"github.com/kpatel528/rehabtrainer/internal/model"
	"github.com/kpatel528/rehabtrainer/internal/trainer"
)

// hardware collects the optional devices. It is an indicator in its own right
// so the trainer can be built before any device is opened.
type hardware struct {
	logger *slog.Logger

	mu         sync.Mutex
	indicators []trainer.Indicator
	closers    []io.Closer
	buttons    int
}

func (h *hardware) Set(c model.Color) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ind := range h.indicators {
		ind.Set(c)
	}
}

func (h *hardware) open(cfg model.Config, tr *trainer.Trainer) error {
	if cfg.GPIO.Enabled {
		board, err := gpio.Open(cfg.GPIO, tr.SyncPressed, tr.AbortPressed, h.logger)
		if err != nil {
			return fmt.Errorf("failed to open gpio: %w", err)
		}
		h.add(board, board, true)
	}
	if cfg.MIDI.Enabled {
		pad, err := midipad.Open(cfg.MIDI, tr.SyncPressed, tr.AbortPressed, h.logger)
		if err != nil {
			return fmt.Errorf("failed to open midi: %w", err)
		}
		h.add(nil, pad, true)
	}
	if cfg.Click {
		click, err := audio.NewClick(cfg.ClickFreq)
		if err != nil {
			return fmt.Errorf("failed to open audio: %w", err)
		}
		h.add(click, click, false)
	}
	return nil
}

func (h *hardware) add(ind trainer.Indicator, c io.Closer, buttons bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ind != nil {
		h.indicators = append(h.indicators, ind)
	}
	h.closers = append(h.closers, c)
	if buttons {
		h.buttons++
	}
}

func (h *hardware) hasButtons() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.buttons > 0
}

// close releases devices in reverse order of opening.
func (h *hardware) close() {
	h.mu.Lock()
	closers := h.closers
	h.indicators = nil
	h.closers = nil
	h.mu.Unlock()

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		errs = append(errs, closers[i].Close())
	}
	if err := errors.Join(errs...); err != nil {
		h.logger.Warn("failed to release devices", "err", err)
	}
}
