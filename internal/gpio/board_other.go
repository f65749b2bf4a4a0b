//go:build !linux

package gpio

import (
	"fmt"
	"log/slog"

	"github.com/kpatel528/rehabtrainer/internal/model"
)

// Board is unavailable outside Linux.
type Board struct{}

// Open always fails outside Linux.
func Open(model.GPIOConfig, func(), func(), *slog.Logger) (*Board, error) {
	return nil, fmt.Errorf("gpio is only supported on linux")
}

// Set is a no-op.
func (*Board) Set(model.Color) {}

// Close is a no-op.
func (*Board) Close() error { return nil }
