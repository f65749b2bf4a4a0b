package tui

import "github.com/mattn/go-runewidth"

// wrapLine breaks a log line into display rows no wider than width, preferring
// the last space on each row. Words longer than a row are split.
func wrapLine(line string, width int) []string {
	if width <= 0 || runewidth.StringWidth(line) <= width {
		return []string{line}
	}
	runes := []rune(line)
	var out []string
	row := make([]rune, 0, len(runes))
	rowWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		r := runes[i]
		w := runewidth.RuneWidth(r)
		if rowWidth+w > width && len(row) > 0 {
			if lastSpaceIdx >= 0 {
				out = append(out, string(row[:lastSpaceIdx]))
				row = append([]rune{}, row[lastSpaceIdx+1:]...)
			} else {
				out = append(out, string(row))
				row = row[:0]
			}
			rowWidth = runewidth.StringWidth(string(row))
			lastSpaceIdx = lastSpaceIndex(row)
			continue
		}
		row = append(row, r)
		rowWidth += w
		if r == ' ' {
			lastSpaceIdx = len(row) - 1
		}
		i++
	}
	return append(out, string(row))
}

func lastSpaceIndex(row []rune) int {
	for i := len(row) - 1; i >= 0; i-- {
		if row[i] == ' ' {
			return i
		}
	}
	return -1
}
