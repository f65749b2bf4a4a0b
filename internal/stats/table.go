package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// formatTable lays out one header row over one value row. Each column is as
// wide as its wider cell and right-aligned. Missing values are blank.
func formatTable(headers, values []string) []string {
	if len(headers) == 0 {
		return nil
	}
	var head, row strings.Builder
	for i, header := range headers {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		width := max(runewidth.StringWidth(header), runewidth.StringWidth(value))
		if i > 0 {
			head.WriteByte(' ')
			row.WriteByte(' ')
		}
		head.WriteString(padLeft(header, width))
		row.WriteString(padLeft(value, width))
	}
	return []string{head.String(), row.String()}
}

func padLeft(value string, width int) string {
	if gap := width - runewidth.StringWidth(value); gap > 0 {
		return strings.Repeat(" ", gap) + value
	}
	return value
}
