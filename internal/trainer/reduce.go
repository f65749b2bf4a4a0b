package trainer

import (
	"fmt"

	"github.com/kpatel528/rehabtrainer/internal/model"
	"github.com/kpatel528/rehabtrainer/internal/stats"
)

// Reduce applies one event to the state. It performs no I/O and never blocks.
func Reduce(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case Tick:
		return reduceTick(s)
	case SyncPress:
		return reduceSync(s)
	case AbortPress:
		return reduceAbort(s)
	case Command:
		return reduceCommand(s, ev.Char)
	default:
		return s, nil
	}
}

// TimingError returns the distance in milliseconds from a press to the
// nearest beat, given the time since the last beat. Presses in the second
// half of the interval are measured against the upcoming beat.
func TimingError(interval, sinceBeat uint32) uint32 {
	if interval == 0 {
		return 0
	}
	if sinceBeat >= interval {
		// A tempo change shortened the interval before the next beat fired.
		sinceBeat %= interval
	}
	if sinceBeat > interval/2 {
		return interval - sinceBeat
	}
	return sinceBeat
}

func reduceTick(s State) (State, []Effect) {
	s.Tick++
	if !s.Active {
		return s, nil
	}

	var effects []Effect
	if s.SinceBeat() >= s.Interval {
		s.LastBeat = s.Tick
		s.BeatCounter++
		effects = s.indicate(effects, model.Beat)
		if s.BeatCounter >= model.MaxSessionBeats {
			return endSession(s, effects, Completed)
		}
	}

	// Any lit color, beat flash or press feedback, goes dark once the pulse
	// window has passed. Clearing only when lit keeps this to one effect.
	since := s.SinceBeat()
	if s.Indicator != model.Off && since >= model.PulseMS && since < s.Interval {
		effects = s.indicate(effects, model.Off)
	}
	return s, effects
}

func reduceSync(s State) (State, []Effect) {
	if !s.Active {
		return s, nil
	}
	timingErr := TimingError(s.Interval, s.SinceBeat())

	s.Acc.TotalPresses++
	s.Acc.ErrorSum += uint64(timingErr)
	s.Acc.ErrorCount++

	var effects []Effect
	if timingErr <= model.ToleranceMS {
		s.Acc.AccuratePresses++
		effects = s.indicate(effects, model.OnBeat)
		effects = append(effects, EmitLine{Line: fmt.Sprintf("Good! Error: %d ms", timingErr)})
	} else {
		effects = s.indicate(effects, model.OffBeat)
		effects = append(effects, EmitLine{Line: fmt.Sprintf("Off beat. Error: %d ms", timingErr)})
	}
	return s, effects
}

func reduceAbort(s State) (State, []Effect) {
	if !s.Active {
		return s, nil
	}
	return endSession(s, nil, Aborted)
}

func reduceCommand(s State, ch rune) (State, []Effect) {
	switch ch {
	case 's', 'S':
		return startSession(s)
	case '+':
		if s.BPM >= model.MaxBPM {
			return s, nil
		}
		return setTempo(s, s.BPM+model.BPMStep)
	case '-':
		if s.BPM <= model.MinBPM {
			return s, nil
		}
		return setTempo(s, s.BPM-model.BPMStep)
	case 'h', 'H':
		return s, lines(nil, HelpLines())
	default:
		return s, nil
	}
}

func startSession(s State) (State, []Effect) {
	effects := lines(nil, []string{
		"",
		"=== Session Started ===",
		"Press the sync button in time with the blue beat",
		"Press the stop button to end the session",
		fmt.Sprintf("BPM: %d", s.BPM),
	})

	s.Tick = 0
	s.BeatCounter = 0
	s.LastBeat = 0
	s.Acc = model.Accumulators{}
	s.Active = true
	return s, append(effects, SessionStarted{BPM: s.BPM})
}

func setTempo(s State, bpm uint32) (State, []Effect) {
	s.BPM = bpm
	s.Interval = model.IntervalFor(bpm)
	return s, []Effect{EmitLine{Line: fmt.Sprintf("BPM: %d", s.BPM)}}
}

func endSession(s State, effects []Effect, reason EndReason) (State, []Effect) {
	s.Active = false
	effects = s.indicate(effects, model.Off)

	title := stats.TitleComplete
	if reason == Aborted {
		title = stats.TitleStopped
	}
	effects = lines(effects, stats.ReportLines(title, s.Acc))
	return s, append(effects, SessionEnded{Reason: reason, Beats: s.BeatCounter, Acc: s.Acc})
}

func (s *State) indicate(effects []Effect, c model.Color) []Effect {
	s.Indicator = c
	return append(effects, SetIndicator{Color: c})
}

func lines(effects []Effect, text []string) []Effect {
	for _, line := range text {
		effects = append(effects, EmitLine{Line: line})
	}
	return effects
}

// HelpLines lists the console commands.
func HelpLines() []string {
	return []string{
		"",
		"=== Commands ===",
		"s - Start session",
		"+ - Increase BPM",
		"- - Decrease BPM",
		"h - Help",
	}
}

// BannerLines is printed once at startup.
func BannerLines() []string {
	return []string{
		"",
		"=================================",
		"One-Hand Typing Trainer",
		"=================================",
		"Type 'h' for help",
	}
}
