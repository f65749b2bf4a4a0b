package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/kpatel528/rehabtrainer/internal/config"
	"github.com/kpatel528/rehabtrainer/internal/gpio"
	"github.com/kpatel528/rehabtrainer/internal/midipad"
)

func intPtr(v int) *int          { return &v }
func boolPtr(v bool) *bool       { return &v }
func stringPtr(v string) *string { return &v }

func TestMergeConfigDefaults(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := mergeConfig(cmd, config.FileConfig{})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if cfg.BPM != 60 || cfg.GPIO.Enabled || cfg.MIDI.Enabled || cfg.Click {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.GPIO.Sync != gpio.DefaultSync || cfg.MIDI.SyncNote != midipad.DefaultSyncNote {
		t.Fatalf("expected device defaults, got %+v / %+v", cfg.GPIO, cfg.MIDI)
	}
}

func TestMergeConfigFlagsOverrideFile(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--bpm", "90"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	fileCfg := config.FileConfig{}
	fileCfg.Trainer.BPM = intPtr(50)
	fileCfg.GPIO.Enabled = boolPtr(true)
	fileCfg.GPIO.Sync = intPtr(5)
	fileCfg.MIDI.Port = stringPtr("nanoPAD")
	fileCfg.Serial.Device = stringPtr("/dev/ttyACM0")

	cfg, err := mergeConfig(cmd, fileCfg)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if cfg.BPM != 90 {
		t.Fatalf("expected flag bpm 90, got %d", cfg.BPM)
	}
	if !cfg.GPIO.Enabled || cfg.GPIO.Sync != 5 {
		t.Fatalf("expected file gpio settings, got %+v", cfg.GPIO)
	}
	if cfg.MIDI.Port != "nanoPAD" || cfg.SerialDevice != "/dev/ttyACM0" {
		t.Fatalf("expected file strings, got %q %q", cfg.MIDI.Port, cfg.SerialDevice)
	}
}

func TestMergeConfigRejectsInvalidValues(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--bpm", "65"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := mergeConfig(cmd, config.FileConfig{}); err == nil {
		t.Fatalf("expected off-grid bpm to be rejected")
	}

	cmd = newRootCmd()
	if err := cmd.ParseFlags([]string{"--log-level", "loud"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := mergeConfig(cmd, config.FileConfig{}); err == nil {
		t.Fatalf("expected unknown log level to be rejected")
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var b strings.Builder
	for _, line := range strings.Split(defaultConfigTemplate(), "\n") {
		// Uncomment every setting so each key is checked.
		if strings.HasPrefix(line, "# ") && strings.Contains(line, " = ") {
			line = strings.TrimPrefix(line, "# ")
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("template does not decode: %v", err)
	}
	if fileCfg.Trainer.BPM == nil || *fileCfg.Trainer.BPM != 60 {
		t.Fatalf("expected bpm from template")
	}
	if fileCfg.GPIO.Blue == nil || *fileCfg.GPIO.Blue != gpio.DefaultBlue {
		t.Fatalf("expected gpio blue from template")
	}
}

func TestEditorCommand(t *testing.T) {
	parts, err := editorCommand("")
	if err != nil || !reflect.DeepEqual(parts, []string{"vi"}) {
		t.Fatalf("expected vi, got %q (%v)", parts, err)
	}
	parts, err = editorCommand(`code --wait "--user-data-dir=/tmp/my dir"`)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	want := []string{"code", "--wait", "--user-data-dir=/tmp/my dir"}
	if !reflect.DeepEqual(parts, want) {
		t.Fatalf("expected %q, got %q", want, parts)
	}
	if _, err := editorCommand(`vim "unterminated`); err == nil {
		t.Fatalf("expected quoting error")
	}
}

func TestWritePorts(t *testing.T) {
	var buf bytes.Buffer
	if err := writePorts(&buf, []string{"/dev/ttyACM0"}, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "Serial:\n  /dev/ttyACM0\nMIDI:\n  (none)\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}
