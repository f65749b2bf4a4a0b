package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kpatel528/rehabtrainer/internal/model"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
	if cfg.Trainer.BPM != nil {
		t.Fatalf("expected empty config")
	}
}

func TestLoadConfigDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[trainer]
bpm = 80

[serial]
device = "/dev/ttyACM0"
baud = 9600

[gpio]
enabled = true
chip = "gpiochip0"
sync = 25
active-low = true

[midi]
sync-note = 36

[audio]
click = true
frequency = 1200.0

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Trainer.BPM == nil || *cfg.Trainer.BPM != 80 {
		t.Fatalf("unexpected bpm: %v", cfg.Trainer.BPM)
	}
	if cfg.Serial.Device == nil || *cfg.Serial.Device != "/dev/ttyACM0" {
		t.Fatalf("unexpected serial device: %v", cfg.Serial.Device)
	}
	if cfg.GPIO.ActiveLow == nil || !*cfg.GPIO.ActiveLow {
		t.Fatalf("expected active-low gpio")
	}
	if cfg.GPIO.Red != nil {
		t.Fatalf("expected unset red line")
	}
	if cfg.MIDI.SyncNote == nil || *cfg.MIDI.SyncNote != 36 {
		t.Fatalf("unexpected sync note: %v", cfg.MIDI.SyncNote)
	}
	if cfg.Audio.Frequency == nil || *cfg.Audio.Frequency != 1200 {
		t.Fatalf("unexpected click frequency: %v", cfg.Audio.Frequency)
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %v", cfg.Log.Level)
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[trainer]\ntolerance = 50\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestValidate(t *testing.T) {
	base := model.Config{BPM: 60}
	if err := Validate(base); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	for _, bpm := range []int{30, 130, 65} {
		cfg := base
		cfg.BPM = bpm
		if err := Validate(cfg); err == nil {
			t.Fatalf("expected bpm %d to be rejected", bpm)
		}
	}

	cfg := base
	cfg.GPIO = model.GPIOConfig{Enabled: true, Chip: "gpiochip0", Sync: 25, Abort: 25, Red: 1, Green: 2, Blue: 3}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected shared gpio line to be rejected")
	}

	cfg = base
	cfg.MIDI = model.MIDIConfig{Enabled: true, SyncNote: 36, AbortNote: 36}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected identical midi notes to be rejected")
	}

	cfg = base
	cfg.MIDI = model.MIDIConfig{Enabled: true, SyncNote: 200, AbortNote: 38}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected out of range midi note to be rejected")
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "rehabtrainer", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/tmp/state", "rehabtrainer", "rehabtrainer.log") {
		t.Fatalf("unexpected log path: %s", got)
	}
}
