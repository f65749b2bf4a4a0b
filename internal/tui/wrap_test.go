package tui

import (
	"reflect"
	"testing"
)

func TestWrapLineFits(t *testing.T) {
	got := wrapLine("BPM: 60", 20)
	if !reflect.DeepEqual(got, []string{"BPM: 60"}) {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapLineAtSpaces(t *testing.T) {
	got := wrapLine("Press the stop button to end the session", 16)
	want := []string{"Press the stop", "button to end", "the session"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapLineSplitsLongWords(t *testing.T) {
	got := wrapLine("=================", 8)
	want := []string{"========", "========", "="}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapLineWideRunes(t *testing.T) {
	// Each of these runes occupies two columns.
	got := wrapLine("練習練習", 5)
	want := []string{"練習", "練習"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapLineEmpty(t *testing.T) {
	got := wrapLine("", 10)
	if len(got) != 1 || got[0] != "" {
		t.Fatalf("expected a single empty row, got %q", got)
	}
}
