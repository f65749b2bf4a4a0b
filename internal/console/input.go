package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Keys that act as buttons when the console also stands in for the board.
const (
	SyncKey  = ' '
	AbortKey = 'x'

	interruptKey = 0x03
	eofKey       = 0x04
)

// Target receives routed console input.
type Target interface {
	HandleCommand(ch rune)
	SyncPressed()
	AbortPressed()
}

// ReadCommands feeds r to target one character at a time until EOF or
// ctrl-c. With buttons set, SyncKey and AbortKey act as the sync and stop
// buttons instead of being passed to the command interpreter.
func ReadCommands(r io.Reader, target Target, buttons bool) error {
	br := bufio.NewReader(r)
	for {
		ch, _, err := br.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) || isClosed(err) {
				return nil
			}
			return fmt.Errorf("failed to read command: %w", err)
		}
		if ch == interruptKey || ch == eofKey {
			return nil
		}
		Route(ch, target, buttons)
	}
}

// Route dispatches a single character.
func Route(ch rune, target Target, buttons bool) {
	if buttons {
		switch ch {
		case SyncKey:
			target.SyncPressed()
			return
		case AbortKey:
			target.AbortPressed()
			return
		}
	}
	target.HandleCommand(ch)
}
