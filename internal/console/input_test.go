package console

import (
	"strings"
	"testing"
)

type recordTarget struct {
	commands []rune
	syncs    int
	aborts   int
}

func (r *recordTarget) HandleCommand(ch rune) { r.commands = append(r.commands, ch) }
func (r *recordTarget) SyncPressed()          { r.syncs++ }
func (r *recordTarget) AbortPressed()         { r.aborts++ }

func TestReadCommandsWithButtons(t *testing.T) {
	target := &recordTarget{}
	if err := ReadCommands(strings.NewReader("s+  x-h"), target, true); err != nil {
		t.Fatalf("ReadCommands failed: %v", err)
	}
	if string(target.commands) != "s+-h" {
		t.Fatalf("unexpected commands: %q", string(target.commands))
	}
	if target.syncs != 2 || target.aborts != 1 {
		t.Fatalf("expected 2 syncs and 1 abort, got %d/%d", target.syncs, target.aborts)
	}
}

func TestReadCommandsWithoutButtons(t *testing.T) {
	target := &recordTarget{}
	if err := ReadCommands(strings.NewReader("s x"), target, false); err != nil {
		t.Fatalf("ReadCommands failed: %v", err)
	}
	if string(target.commands) != "s x" || target.syncs != 0 || target.aborts != 0 {
		t.Fatalf("expected raw command routing, got %q %d %d", string(target.commands), target.syncs, target.aborts)
	}
}

func TestReadCommandsStopsOnInterrupt(t *testing.T) {
	target := &recordTarget{}
	if err := ReadCommands(strings.NewReader("s\x03+"), target, true); err != nil {
		t.Fatalf("ReadCommands failed: %v", err)
	}
	if string(target.commands) != "s" {
		t.Fatalf("expected input after ctrl-c to be ignored, got %q", string(target.commands))
	}
}
