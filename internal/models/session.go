package models

import (
	"time"

	"gorm.io/gorm"
)

// Session lifecycle statuses. Completed and cancelled are terminal.
const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
)

// Pomodoro cycle kinds
const (
	CycleKindWork  = "work"
	CycleKindBreak = "break"
)

// FocusSession represents one continuous work attempt on exactly one task.
// Elapsed time is client-reported; the server never runs its own timer.
type FocusSession struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID string `gorm:"index;not null" json:"user_id"`
	TaskID uint   `gorm:"not null" json:"task_id"`

	StartedAt      time.Time  `gorm:"not null" json:"started_at"`
	EndedAt        *time.Time `json:"ended_at"`
	ElapsedSeconds int        `json:"elapsed_seconds"`
	PlannedSeconds int        `json:"planned_seconds"` // 0 means no planned duration

	// Timer flags. Never both true at once.
	TimerRunning bool `json:"timer_running"`
	TimerPaused  bool `json:"timer_paused"`

	// Focus flags. Pomodoro mode implies both.
	FocusEnabled            bool `json:"focus_enabled"`
	NotificationsSuppressed bool `json:"notifications_suppressed"`

	// Pomodoro configuration
	PomodoroEnabled      bool   `json:"pomodoro_enabled"`
	CycleDurationSeconds int    `json:"cycle_duration_seconds"`
	TotalCyclesPlanned   int    `json:"total_cycles_planned"`
	CyclesElapsed        int    `json:"cycles_elapsed"` // counts work/break transitions
	CurrentCycleKind     string `gorm:"default:work" json:"current_cycle_kind"`

	PauseCount        int `json:"pause_count"`
	EfficiencyPercent int `json:"efficiency_percent"` // cached snapshot, finalized at completion

	Status string `gorm:"default:active" json:"status"`
	Notes  string `json:"notes"`

	// Relationships
	Task Task `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"task"`
}

// Terminal reports whether the session has reached a terminal status.
func (s *FocusSession) Terminal() bool {
	return s.Status == SessionStatusCompleted || s.Status == SessionStatusCancelled
}
