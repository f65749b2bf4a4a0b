//go:build linux

package gpio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/warthog618/gpiod"

	"github.com/kpatel528/rehabtrainer/internal/model"
)

const consumer = "rehabtrainer"

// Board owns the requested GPIO lines.
type Board struct {
	leds    [3]*gpiod.Line
	buttons []*gpiod.Line
	logger  *slog.Logger
}

// Open requests the LED lines as outputs and the button lines as inputs with
// falling-edge events. onSync and onAbort run on the gpiod event goroutine.
func Open(cfg model.GPIOConfig, onSync, onAbort func(), logger *slog.Logger) (*Board, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	b := &Board{logger: logger}

	ledOpts := []gpiod.LineReqOption{gpiod.WithConsumer(consumer), gpiod.AsOutput(0)}
	if cfg.ActiveLow {
		ledOpts = append(ledOpts, gpiod.AsActiveLow)
	}
	for i, offset := range []int{cfg.Red, cfg.Green, cfg.Blue} {
		l, err := gpiod.RequestLine(cfg.Chip, offset, ledOpts...)
		if err != nil {
			b.closeQuietly()
			return nil, fmt.Errorf("failed to request led line %d: %w", offset, err)
		}
		b.leds[i] = l
	}

	buttons := []struct {
		offset int
		fn     func()
	}{
		{cfg.Sync, onSync},
		{cfg.Abort, onAbort},
	}
	for _, btn := range buttons {
		fn := btn.fn
		l, err := gpiod.RequestLine(cfg.Chip, btn.offset,
			gpiod.WithConsumer(consumer),
			gpiod.WithPullUp,
			gpiod.WithFallingEdge,
			gpiod.WithDebounce(DebouncePeriod),
			gpiod.WithEventHandler(func(evt gpiod.LineEvent) {
				if evt.Type == gpiod.LineEventFallingEdge && fn != nil {
					fn()
				}
			}),
		)
		if err != nil {
			b.closeQuietly()
			return nil, fmt.Errorf("failed to request button line %d: %w", btn.offset, err)
		}
		b.buttons = append(b.buttons, l)
	}

	logger.Info("gpio: lines requested", "chip", cfg.Chip, "sync", cfg.Sync, "abort", cfg.Abort)
	return b, nil
}

// Set drives the RGB LED.
func (b *Board) Set(c model.Color) {
	lv := levels(c)
	for i, l := range b.leds {
		if l == nil {
			continue
		}
		if err := l.SetValue(lv[i]); err != nil {
			b.logger.Warn("gpio: set led failed", "line", l.Offset(), "err", err)
		}
	}
}

// Close turns the LED off and releases every line.
func (b *Board) Close() error {
	b.Set(model.Off)
	var errs []error
	for _, l := range b.buttons {
		errs = append(errs, l.Close())
	}
	for _, l := range b.leds {
		if l != nil {
			errs = append(errs, l.Close())
		}
	}
	b.logger.Info("gpio: lines released")
	return errors.Join(errs...)
}

func (b *Board) closeQuietly() {
	if err := b.Close(); err != nil {
		// Best-effort release after a failed request.
		_ = err
	}
}
