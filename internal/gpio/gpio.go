// Package gpio drives the trainer from Linux GPIO lines: two push buttons
// wired to ground and a three-channel RGB LED.
package gpio

import (
	"time"

	"github.com/warthog618/gpiod/device/rpi"

	"github.com/kpatel528/rehabtrainer/internal/model"
)

// DebouncePeriod filters contact bounce on the button lines.
const DebouncePeriod = 10 * time.Millisecond

// Default Raspberry Pi header wiring (BCM numbering).
const (
	DefaultChip  = "gpiochip0"
	DefaultSync  = rpi.GPIO25
	DefaultAbort = rpi.GPIO10
	DefaultRed   = rpi.GPIO24
	DefaultGreen = rpi.GPIO22
	DefaultBlue  = rpi.GPIO23
)

// DefaultConfig returns the default wiring with GPIO disabled.
func DefaultConfig() model.GPIOConfig {
	return model.GPIOConfig{
		Chip:  DefaultChip,
		Sync:  DefaultSync,
		Abort: DefaultAbort,
		Red:   DefaultRed,
		Green: DefaultGreen,
		Blue:  DefaultBlue,
	}
}

// levels returns the logical red, green and blue line values for a color.
func levels(c model.Color) [3]int {
	r, g, b := c.RGB()
	return [3]int{boolToInt(r), boolToInt(g), boolToInt(b)}
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
