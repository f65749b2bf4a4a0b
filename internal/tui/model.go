// Package tui provides the Bubble Tea trainer interface: the RGB lamp, the
// session status and a scrolling log of console output.
package tui

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kpatel528/rehabtrainer/internal/model"
	"github.com/kpatel528/rehabtrainer/internal/stats"
	"github.com/kpatel528/rehabtrainer/internal/trainer"
)

const (
	frameInterval = 33 * time.Millisecond
	maxLogLines   = 500
	chromeHeight  = 5
)

// Lamp mirrors the indicator color for rendering. It is safe to Set from the
// clock goroutine.
type Lamp struct {
	color atomic.Int32
}

// Set implements trainer.Indicator.
func (l *Lamp) Set(c model.Color) {
	l.color.Store(int32(c))
}

// Color returns the last color set.
func (l *Lamp) Color() model.Color {
	return model.Color(l.color.Load())
}

type lineMsg struct {
	line string
}

type frameMsg time.Time

// Model implements the Bubble Tea trainer UI.
type Model struct {
	trainer *trainer.Trainer
	lamp    *Lamp
	lines   <-chan string

	keys keyMap
	help help.Model
	log  viewport.Model

	logLines []string
	snap     trainer.State

	width  int
	height int
}

var (
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	idleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	headingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	goodStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	badStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	logStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#D0D0D0"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	lampBaseStyle = lipgloss.NewStyle().Padding(0, 3)
)

var lampColors = map[model.Color]lipgloss.Color{
	model.Off:     lipgloss.Color("#3A3A3A"),
	model.Beat:    lipgloss.Color("#3A7BFF"),
	model.OnBeat:  lipgloss.Color("#52C41A"),
	model.OffBeat: lipgloss.Color("#FF4D4F"),
}

// NewModel constructs the trainer TUI. lines delivers the trainer's console
// output; the lamp must be one of the trainer's indicators.
func NewModel(tr *trainer.Trainer, lamp *Lamp, lines <-chan string) *Model {
	return &Model{
		trainer: tr,
		lamp:    lamp,
		lines:   lines,
		keys:    newKeyMap(),
		help:    help.New(),
		log:     viewport.New(0, 0),
		snap:    tr.Snapshot(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(waitForLine(m.lines), frame())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.log.Width = msg.Width
		m.log.Height = max(1, msg.Height-chromeHeight)
		m.refreshLog()
		return m, nil
	case lineMsg:
		m.appendLine(msg.line)
		return m, waitForLine(m.lines)
	case frameMsg:
		m.snap = m.trainer.Snapshot()
		return m, frame()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Sync):
		m.trainer.SyncPressed()
	case key.Matches(msg, m.keys.Abort):
		m.trainer.AbortPressed()
	case key.Matches(msg, m.keys.More):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Scroll):
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return m, cmd
	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			m.trainer.HandleCommand(r)
		}
	}
	m.snap = m.trainer.Snapshot()
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.renderHeader()
	footer := m.renderFooter()
	helpView := m.help.View(m.keys)
	if m.width == 0 || m.height == 0 {
		return strings.Join([]string{header, strings.Join(m.logLines, "\n"), footer, helpView}, "\n")
	}
	return strings.Join([]string{header, "", m.log.View(), footer, helpView}, "\n")
}

func (m *Model) renderHeader() string {
	lamp := lampBaseStyle.Background(lampColors[m.lamp.Color()]).Render(" ")
	var status string
	if m.snap.Active {
		status = statusStyle.Render(fmt.Sprintf("Beat %d/%d  BPM %d", m.snap.BeatCounter, model.MaxSessionBeats, m.snap.BPM))
	} else {
		status = idleStyle.Render(fmt.Sprintf("Idle  BPM %d", m.snap.BPM))
	}
	return lamp + "  " + status
}

// renderFooter shows the running session figures as a two-line table.
func (m *Model) renderFooter() string {
	return footerStyle.Render(strings.Join(stats.SummaryTable(m.snap.Acc), "\n"))
}

func (m *Model) appendLine(line string) {
	m.logLines = append(m.logLines, line)
	if over := len(m.logLines) - maxLogLines; over > 0 {
		m.logLines = append([]string(nil), m.logLines[over:]...)
	}
	m.refreshLog()
}

func (m *Model) refreshLog() {
	var b strings.Builder
	for i, line := range m.logLines {
		if i > 0 {
			b.WriteByte('\n')
		}
		style := styleFor(line)
		for j, part := range wrapLine(line, m.log.Width) {
			if j > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(style.Render(part))
		}
	}
	m.log.SetContent(b.String())
	m.log.GotoBottom()
}

func styleFor(line string) lipgloss.Style {
	switch {
	case strings.HasPrefix(line, "==="):
		return headingStyle
	case strings.HasPrefix(line, "Good!"):
		return goodStyle
	case strings.HasPrefix(line, "Off beat."):
		return badStyle
	default:
		return logStyle
	}
}

func waitForLine(lines <-chan string) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-lines
		if !ok {
			return nil
		}
		return lineMsg{line: line}
	}
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
