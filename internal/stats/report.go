package stats

import (
	"fmt"
	"strconv"

	"github.com/kpatel528/rehabtrainer/internal/model"
)

// Report titles.
const (
	TitleComplete = "Session Complete"
	TitleStopped  = "Session Stopped"
)

const (
	noData      = "no data"
	startPrompt = "Type 's' to start"
)

// ReportLines formats the end-of-session report. The first line is blank so
// the report stands apart from the press feedback above it.
func ReportLines(title string, acc model.Accumulators) []string {
	s := Summarize(acc)
	return []string{
		"",
		fmt.Sprintf("=== %s ===", title),
		fmt.Sprintf("Total presses: %d", s.TotalPresses),
		fmt.Sprintf("Accurate presses: %d", s.AccuratePresses),
		fmt.Sprintf("Accuracy: %s", s.AccuracyText()),
		fmt.Sprintf("Mean error: %s", s.MeanErrorText()),
		startPrompt,
	}
}

// SummaryTable renders the accumulators as a header row and a value row.
func SummaryTable(acc model.Accumulators) []string {
	s := Summarize(acc)
	return formatTable(
		[]string{"Presses", "Accurate", "Accuracy", "Mean error"},
		[]string{formatUint(s.TotalPresses), formatUint(s.AccuratePresses), s.AccuracyText(), s.MeanErrorText()},
	)
}

func formatUint(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}
