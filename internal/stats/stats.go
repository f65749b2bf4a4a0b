// Package stats contains statistics calculations and reporting.
package stats

import "github.com/kpatel528/rehabtrainer/internal/model"

// Summary is the reportable view of a session's accumulators. Derived values
// are only valid when their Has flag is set.
type Summary struct {
	TotalPresses    uint32
	AccuratePresses uint32

	Accuracy    uint32
	HasAccuracy bool

	MeanError    uint32
	HasMeanError bool
}

// Summarize computes accuracy and mean error with integer truncation.
// Zero counts leave the corresponding value unset instead of dividing.
func Summarize(acc model.Accumulators) Summary {
	s := Summary{
		TotalPresses:    acc.TotalPresses,
		AccuratePresses: acc.AccuratePresses,
	}
	if acc.TotalPresses > 0 {
		s.Accuracy = uint32(uint64(acc.AccuratePresses) * 100 / uint64(acc.TotalPresses))
		s.HasAccuracy = true
	}
	if acc.ErrorCount > 0 {
		s.MeanError = uint32(acc.ErrorSum / uint64(acc.ErrorCount))
		s.HasMeanError = true
	}
	return s
}

// AccuracyText formats the accuracy percentage or a no-data marker.
func (s Summary) AccuracyText() string {
	if !s.HasAccuracy {
		return noData
	}
	return formatUint(s.Accuracy) + "%"
}

// MeanErrorText formats the mean error or a no-data marker.
func (s Summary) MeanErrorText() string {
	if !s.HasMeanError {
		return noData
	}
	return formatUint(s.MeanError) + " ms"
}
