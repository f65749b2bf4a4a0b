package console

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// MakeRaw switches f to raw mode so single keystrokes arrive without a
// newline. The returned function restores the previous mode. Non-terminals
// are left untouched.
func MakeRaw(f *os.File) (func(), error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return func() {}, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	return func() {
		if rerr := term.Restore(fd, state); rerr != nil {
			// Best-effort restore on exit.
			_ = rerr
		}
	}, nil
}
