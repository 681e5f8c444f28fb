package session

import (
	"math"

	"github.com/focustache/focustache/internal/models"
)

const (
	shortBreakSeconds = 300
	longBreakSeconds  = 900
	longBreakEvery    = 4 // every 4th completed work cycle earns a long break

	// Flat fallback scores when no planned duration exists. The threshold is
	// one full notional 25-minute work cycle.
	fallbackThresholdSeconds = 1500
	fallbackScoreAbove       = 80
	fallbackScoreBelow       = 50

	pausePenaltyPercent = 3
	pauseCostSeconds    = 60
)

// Efficiency scores a session 0-100. With a planned duration, the score is
// progress toward the plan minus a penalty per pause. Without one, it falls
// back to a flat score based on raw effort.
func Efficiency(s *models.FocusSession) int {
	if s.PlannedSeconds > 0 {
		progress := float64(s.ElapsedSeconds) / float64(s.PlannedSeconds) * 100
		if progress > 100 {
			progress = 100
		}
		score := progress - float64(s.PauseCount*pausePenaltyPercent)
		if score < 0 {
			score = 0
		}
		return int(math.Round(score))
	}

	if s.ElapsedSeconds >= fallbackThresholdSeconds {
		return fallbackScoreAbove
	}
	return fallbackScoreBelow
}

// RemainingInCycle returns the seconds left in the current Pomodoro cycle,
// or 0 when Pomodoro mode is off.
func RemainingInCycle(s *models.FocusSession) int {
	if !s.PomodoroEnabled || s.CycleDurationSeconds <= 0 {
		return 0
	}
	return s.CycleDurationSeconds - s.ElapsedSeconds%s.CycleDurationSeconds
}

// CycleProgressPercent returns how far through the current cycle the session
// is, 0-100.
func CycleProgressPercent(s *models.FocusSession) float64 {
	if !s.PomodoroEnabled || s.CycleDurationSeconds <= 0 {
		return 0
	}
	progress := float64(s.ElapsedSeconds%s.CycleDurationSeconds) / float64(s.CycleDurationSeconds) * 100
	if progress > 100 {
		progress = 100
	}
	return progress
}

// ProductiveSeconds estimates focused time, assuming each pause costs one
// minute of lost focus.
func ProductiveSeconds(s *models.FocusSession) int {
	productive := s.ElapsedSeconds - s.PauseCount*pauseCostSeconds
	if productive < 0 {
		return 0
	}
	return productive
}

// BreakSeconds returns the length of the break following the given completed
// work cycle: every 4th one earns a long break.
func BreakSeconds(workCyclesCompleted int) int {
	if workCyclesCompleted > 0 && workCyclesCompleted%longBreakEvery == 0 {
		return longBreakSeconds
	}
	return shortBreakSeconds
}
