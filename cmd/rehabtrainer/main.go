// Package main provides the CLI entrypoint for rehabtrainer.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/fang"
	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"github.com/kpatel528/rehabtrainer/internal/audio"
	"github.com/kpatel528/rehabtrainer/internal/clock"
	"github.com/kpatel528/rehabtrainer/internal/config"
	"github.com/kpatel528/rehabtrainer/internal/console"
	"github.com/kpatel528/rehabtrainer/internal/gpio"
	"github.com/kpatel528/rehabtrainer/internal/logging"
	"github.com/kpatel528/rehabtrainer/internal/midipad"
	"github.com/kpatel528/rehabtrainer/internal/model"
	"github.com/kpatel528/rehabtrainer/internal/trainer"
	"github.com/kpatel528/rehabtrainer/internal/tui"
)

const (
	defaultLogLevel = "info"
	stderrLogFile   = "-"
)

var (
	flagBPM      int
	flagGPIO     bool
	flagGPIOChip string
	flagMIDI     bool
	flagMIDIPort string
	flagClick    bool
	flagLogLevel string
	flagLogFile  string
	flagSerial   string
	flagBaud     int
)

func main() {
	rootCmd := newRootCmd()
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rehabtrainer",
		Short: "One-hand rhythm trainer",
		Long: `rehabtrainer flashes a blue beat at a fixed tempo and scores how closely
each press of the sync button lands on it. Buttons and the RGB indicator can
be the keyboard, GPIO lines, a MIDI pad or any mix of them.`,
		SilenceUsage: true,
		RunE:         runTUICmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.IntVar(&flagBPM, "bpm", model.DefaultBPM, "starting tempo (40-120, steps of 10)")
	flags.BoolVar(&flagGPIO, "gpio", false, "use GPIO buttons and RGB LED")
	flags.StringVar(&flagGPIOChip, "gpio-chip", gpio.DefaultChip, "GPIO chip name")
	flags.BoolVar(&flagMIDI, "midi", false, "use MIDI pads as buttons")
	flags.StringVar(&flagMIDIPort, "midi-port", "", "MIDI input name (default: first device)")
	flags.BoolVar(&flagClick, "click", false, "play an audible click on each beat")
	flags.StringVar(&flagLogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&flagLogFile, "log-file", "", "log file path, - for stderr (default: state dir)")

	rootCmd.AddCommand(newConsoleCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newPortsCmd())

	return rootCmd
}

func runTUICmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRuntimeConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	lamp := &tui.Lamp{}
	queue := console.NewQueue(console.DefaultQueueSize)
	hw := &hardware{logger: logger}
	defer hw.close()

	tr := trainer.New(cfg.BPM, trainer.Indicators(lamp, hw), queue, logger)
	if err := hw.open(cfg, tr); err != nil {
		return err
	}

	tr.Greet()
	go clock.Run(ctx, clock.DefaultPeriod, tr.Tick)

	m := tui.NewModel(tr, lamp, queue.Lines())
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if n := queue.Dropped(); n > 0 {
		logger.Warn("console output dropped", "lines", n)
	}
	return nil
}

func newConsoleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Run on a plain terminal or serial line",
		Long: `console runs the trainer on a line-oriented console. On a terminal the
space bar is the sync button and x is the stop button. With --serial the
line carries commands only and buttons come from GPIO or MIDI.`,
		Args: cobra.NoArgs,
		RunE: runConsoleCmd,
	}
	cmd.Flags().StringVar(&flagSerial, "serial", "", "serial device for the console")
	cmd.Flags().IntVar(&flagBaud, "baud", console.DefaultBaud, "serial baud rate")
	return cmd
}

func runConsoleCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRuntimeConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	var (
		in      io.Reader
		out     io.Writer
		buttons bool
	)
	if cfg.SerialDevice != "" {
		port, err := console.OpenSerial(cfg.SerialDevice, cfg.SerialBaud)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := port.Close(); cerr != nil {
				logger.Warn("failed to close serial port", "err", cerr)
			}
		}()
		in, out = port, port
		logger.Info("console on serial port", "device", cfg.SerialDevice, "baud", cfg.SerialBaud)
	} else {
		restore, err := console.MakeRaw(os.Stdin)
		if err != nil {
			return err
		}
		defer restore()
		in, out, buttons = os.Stdin, os.Stdout, true
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	queue := console.NewQueue(console.DefaultQueueSize)
	hw := &hardware{logger: logger}
	defer hw.close()

	tr := trainer.New(cfg.BPM, hw, queue, logger)
	if err := hw.open(cfg, tr); err != nil {
		return err
	}
	if !buttons && !hw.hasButtons() {
		logger.Warn("no button source attached; enable --gpio or --midi")
	}

	drained := make(chan error, 1)
	go func() {
		drained <- queue.Drain(ctx, out, "\r\n")
	}()
	go clock.Run(ctx, clock.DefaultPeriod, tr.Tick)
	tr.Greet()

	readErr := make(chan error, 1)
	go func() {
		readErr <- console.ReadCommands(in, tr, buttons)
	}()

	select {
	case err = <-readErr:
	case <-ctx.Done():
	}
	cancel()
	if derr := <-drained; derr != nil {
		logger.Warn("console output failed", "err", derr)
	}
	if n := queue.Dropped(); n > 0 {
		logger.Warn("console output dropped", "lines", n)
	}
	return err
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	parts, err := editorCommand(os.Getenv("EDITOR"))
	if err != nil {
		return err
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// editorCommand splits $EDITOR with shell quoting rules, defaulting to vi.
func editorCommand(editor string) ([]string, error) {
	editor = strings.TrimSpace(editor)
	if editor == "" {
		editor = "vi"
	}
	parts, err := shlex.Split(editor)
	if err != nil {
		return nil, fmt.Errorf("failed to parse $EDITOR: %w", err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}
	return parts, nil
}

func newPortsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List serial devices and MIDI inputs",
		Args:  cobra.NoArgs,
		RunE:  runPortsCmd,
	}
}

func runPortsCmd(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	serialPorts, err := console.ListSerial()
	if err != nil {
		return err
	}
	midiPorts, err := midipad.Ports()
	if err != nil {
		logErrf("failed to list midi inputs: %v\n", err)
	}
	return writePorts(w, serialPorts, midiPorts)
}

func writePorts(w io.Writer, serialPorts, midiPorts []string) error {
	sections := []struct {
		title string
		names []string
	}{
		{"Serial", serialPorts},
		{"MIDI", midiPorts},
	}
	for _, sec := range sections {
		if _, err := fmt.Fprintf(w, "%s:\n", sec.title); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if len(sec.names) == 0 {
			if _, err := fmt.Fprintln(w, "  (none)"); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			continue
		}
		for _, name := range sec.names {
			if _, err := fmt.Fprintf(w, "  %s\n", name); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}
	return nil
}

// loadRuntimeConfig merges defaults, the config file and flags, in that order
// of increasing precedence.
func loadRuntimeConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return mergeConfig(cmd, fileCfg)
}

func mergeConfig(cmd *cobra.Command, fileCfg config.FileConfig) (model.Config, error) {
	applyIntConfig(cmd, "bpm", &flagBPM, fileCfg.Trainer.BPM)
	applyBoolConfig(cmd, "gpio", &flagGPIO, fileCfg.GPIO.Enabled)
	applyStringConfig(cmd, "gpio-chip", &flagGPIOChip, fileCfg.GPIO.Chip)
	applyBoolConfig(cmd, "midi", &flagMIDI, fileCfg.MIDI.Enabled)
	applyStringConfig(cmd, "midi-port", &flagMIDIPort, fileCfg.MIDI.Port)
	applyBoolConfig(cmd, "click", &flagClick, fileCfg.Audio.Click)
	applyStringConfig(cmd, "log-level", &flagLogLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &flagLogFile, fileCfg.Log.File)
	applyStringConfig(cmd, "serial", &flagSerial, fileCfg.Serial.Device)
	applyIntConfig(cmd, "baud", &flagBaud, fileCfg.Serial.Baud)

	level, err := logging.ParseLevel(flagLogLevel)
	if err != nil {
		return model.Config{}, err
	}

	gpioCfg := gpio.DefaultConfig()
	gpioCfg.Enabled = flagGPIO
	gpioCfg.Chip = flagGPIOChip
	applyFileValue(&gpioCfg.Sync, fileCfg.GPIO.Sync)
	applyFileValue(&gpioCfg.Abort, fileCfg.GPIO.Abort)
	applyFileValue(&gpioCfg.Red, fileCfg.GPIO.Red)
	applyFileValue(&gpioCfg.Green, fileCfg.GPIO.Green)
	applyFileValue(&gpioCfg.Blue, fileCfg.GPIO.Blue)
	applyFileValue(&gpioCfg.ActiveLow, fileCfg.GPIO.ActiveLow)

	midiCfg := midipad.DefaultConfig()
	midiCfg.Enabled = flagMIDI
	midiCfg.Port = flagMIDIPort
	applyFileValue(&midiCfg.SyncNote, fileCfg.MIDI.SyncNote)
	applyFileValue(&midiCfg.AbortNote, fileCfg.MIDI.AbortNote)

	clickFreq := audio.DefaultFrequency
	applyFileValue(&clickFreq, fileCfg.Audio.Frequency)

	cfg := model.Config{
		BPM:          flagBPM,
		SerialDevice: flagSerial,
		SerialBaud:   flagBaud,
		GPIO:         gpioCfg,
		MIDI:         midiCfg,
		Click:        flagClick,
		ClickFreq:    clickFreq,
		LogLevel:     level,
		LogFile:      flagLogFile,
	}
	if err := config.Validate(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

// openLogger sends diagnostics to the log file so they never interleave with
// the trainer's own output.
func openLogger(cfg model.Config) (*slog.Logger, func(), error) {
	if cfg.LogFile == stderrLogFile {
		return logging.New(os.Stderr, cfg.LogLevel), func() {}, nil
	}
	path := cfg.LogFile
	if path == "" {
		path = config.DefaultLogPath()
	}
	f, err := logging.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}
	return logging.New(f, cfg.LogLevel), closeFn, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = *value
}

// applyFileValue copies settings that have no flag.
func applyFileValue[T any](target, value *T) {
	if value != nil {
		*target = *value
	}
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# rehabtrainer configuration
# Uncomment a value to enable it. CLI flags override config values.

[trainer]
# bpm = %d                 # Starting tempo (40-120, steps of 10)

[serial]
# device = "/dev/ttyACM0"  # Console serial device (console --serial)
# baud = %d

[gpio]
# enabled = false
# chip = %q
# sync = %d                # Sync button line
# abort = %d               # Stop button line
# red = %d
# green = %d
# blue = %d
# active-low = false       # Set for common-anode LEDs

[midi]
# enabled = false
# port = ""                # Substring of the input name (default: first device)
# sync-note = %d
# abort-note = %d

[audio]
# click = false            # Audible click on each beat
# frequency = %.1f

[log]
# level = %q
# file = ""                # Default: state dir; "-" for stderr
`,
		model.DefaultBPM,
		console.DefaultBaud,
		gpio.DefaultChip,
		gpio.DefaultSync,
		gpio.DefaultAbort,
		gpio.DefaultRed,
		gpio.DefaultGreen,
		gpio.DefaultBlue,
		midipad.DefaultSyncNote,
		midipad.DefaultAbortNote,
		audio.DefaultFrequency,
		defaultLogLevel,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
