// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/kpatel528/rehabtrainer/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Trainer TrainerConfig `toml:"trainer"`
	Serial  SerialConfig  `toml:"serial"`
	GPIO    GPIOConfig    `toml:"gpio"`
	MIDI    MIDIConfig    `toml:"midi"`
	Audio   AudioConfig   `toml:"audio"`
	Log     LogConfig     `toml:"log"`
}

// TrainerConfig maps session settings.
type TrainerConfig struct {
	BPM *int `toml:"bpm"`
}

// SerialConfig maps the console serial line.
type SerialConfig struct {
	Device *string `toml:"device"`
	Baud   *int    `toml:"baud"`
}

// GPIOConfig maps buttons and the RGB indicator to GPIO lines.
type GPIOConfig struct {
	Enabled   *bool   `toml:"enabled"`
	Chip      *string `toml:"chip"`
	Sync      *int    `toml:"sync"`
	Abort     *int    `toml:"abort"`
	Red       *int    `toml:"red"`
	Green     *int    `toml:"green"`
	Blue      *int    `toml:"blue"`
	ActiveLow *bool   `toml:"active-low"`
}

// MIDIConfig maps MIDI pads to buttons.
type MIDIConfig struct {
	Enabled   *bool   `toml:"enabled"`
	Port      *string `toml:"port"`
	SyncNote  *int    `toml:"sync-note"`
	AbortNote *int    `toml:"abort-note"`
}

// AudioConfig maps the audible beat click.
type AudioConfig struct {
	Click     *bool    `toml:"click"`
	Frequency *float64 `toml:"frequency"`
}

// LogConfig maps diagnostic logging.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Validate checks a merged runtime config.
func Validate(cfg model.Config) error {
	if cfg.BPM < model.MinBPM || cfg.BPM > model.MaxBPM {
		return fmt.Errorf("--bpm must be between %d and %d", model.MinBPM, model.MaxBPM)
	}
	if (cfg.BPM-model.MinBPM)%model.BPMStep != 0 {
		return fmt.Errorf("--bpm must be a multiple of %d", model.BPMStep)
	}
	if cfg.SerialBaud < 0 {
		return fmt.Errorf("--baud must be >= 0")
	}
	if cfg.GPIO.Enabled {
		if cfg.GPIO.Chip == "" {
			return fmt.Errorf("gpio chip must not be empty")
		}
		lines := map[string]int{
			"sync":  cfg.GPIO.Sync,
			"abort": cfg.GPIO.Abort,
			"red":   cfg.GPIO.Red,
			"green": cfg.GPIO.Green,
			"blue":  cfg.GPIO.Blue,
		}
		seen := map[int]string{}
		for _, name := range []string{"sync", "abort", "red", "green", "blue"} {
			offset := lines[name]
			if offset < 0 {
				return fmt.Errorf("gpio %s line must be >= 0", name)
			}
			if other, ok := seen[offset]; ok {
				return fmt.Errorf("gpio %s and %s share line %d", other, name, offset)
			}
			seen[offset] = name
		}
	}
	if cfg.MIDI.Enabled {
		if !validNote(cfg.MIDI.SyncNote) || !validNote(cfg.MIDI.AbortNote) {
			return fmt.Errorf("midi notes must be between 0 and 127")
		}
		if cfg.MIDI.SyncNote == cfg.MIDI.AbortNote {
			return fmt.Errorf("midi sync and abort notes must differ")
		}
	}
	if cfg.Click && cfg.ClickFreq <= 0 {
		return fmt.Errorf("click frequency must be > 0")
	}
	return nil
}

func validNote(n int) bool {
	return n >= 0 && n <= 127
}
