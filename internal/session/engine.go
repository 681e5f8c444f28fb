package session

import (
	"log/slog"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/focustache/focustache/internal/db"
	"github.com/focustache/focustache/internal/models"
)

// Validation bounds for session configuration
const (
	MinPlannedMinutes = 5
	MaxPlannedMinutes = 480
	MinCycleMinutes   = 5
	MaxCycleMinutes   = 60
	MinTotalCycles    = 1
	MaxTotalCycles    = 12

	DefaultCycleMinutes = 25
	DefaultTotalCycles  = 4

	// Completion thresholds for writing progress back to the task
	progressMinSeconds = 300
	promoteMinSeconds  = 900
)

// Timer actions
const (
	TimerActionPause  = "pause"
	TimerActionResume = "resume"
)

// Stop outcomes
const (
	StopActionComplete = "complete"
	StopActionCancel   = "cancel"
)

// Clock provides the current time. Injected so tests control timestamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Engine is the focus session lifecycle controller. All mutations run under
// a per-user lock and a database transaction, so the precondition check and
// the write are atomic.
type Engine struct {
	db     *gorm.DB
	clock  Clock
	logger *slog.Logger

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

// NewEngine creates an engine over the given database. A nil clock or logger
// selects the system clock and the default slog logger.
func NewEngine(gdb *gorm.DB, clock Clock, logger *slog.Logger) *Engine {
	if clock == nil {
		clock = systemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		db:        gdb,
		clock:     clock,
		logger:    logger,
		userLocks: make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex serializing all session mutations for one user.
func (e *Engine) userLock(userID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		e.userLocks[userID] = lock
	}
	return lock
}

// Start creates a new active session for the user. taskIDs must contain
// exactly one task id; at most one active session may exist per user.
func (e *Engine) Start(userID string, taskIDs []uint, plannedMinutes int) (*models.FocusSession, error) {
	if len(taskIDs) != 1 {
		return nil, invalidArgf("a session must reference exactly one task, got %d", len(taskIDs))
	}
	if err := validatePlannedMinutes(plannedMinutes); err != nil {
		return nil, err
	}
	taskID := taskIDs[0]

	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	var session models.FocusSession
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var active models.FocusSession
		if err := tx.Where("user_id = ? AND status = ?", userID, models.SessionStatusActive).
			First(&active).Error; err == nil {
			return conflictf("an active session already exists for task #%d, stop it first", active.TaskID)
		}

		if _, err := db.FindTaskForUser(tx, taskID, userID); err != nil {
			return notFoundf("task #%d not found", taskID)
		}

		session = models.FocusSession{
			UserID:           userID,
			TaskID:           taskID,
			StartedAt:        e.clock.Now(),
			PlannedSeconds:   plannedMinutes * 60,
			Status:           models.SessionStatusActive,
			CurrentCycleKind: models.CycleKindWork,
		}
		session.EfficiencyPercent = Efficiency(&session)

		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, err
	}

	e.db.Preload("Task").First(&session, session.ID)
	return &session, nil
}

// EnableFocus switches the session into focus-only mode: notifications off,
// timer running. Rejected if Pomodoro mode is already enabled; the two modes
// are mutually exclusive for the lifetime of a session.
func (e *Engine) EnableFocus(userID string, sessionID uint, plannedMinutes int) (*models.FocusSession, error) {
	if err := validatePlannedMinutes(plannedMinutes); err != nil {
		return nil, err
	}

	return e.mutate(userID, sessionID, func(tx *gorm.DB, s *models.FocusSession) error {
		if s.PomodoroEnabled {
			return conflictf("chronodoro mode is already enabled on session #%d", s.ID)
		}

		s.FocusEnabled = true
		s.NotificationsSuppressed = true
		s.TimerRunning = true
		s.TimerPaused = false
		s.PomodoroEnabled = false
		if plannedMinutes > 0 {
			s.PlannedSeconds = plannedMinutes * 60
		}
		s.EfficiencyPercent = Efficiency(s)
		return nil
	})
}

// EnablePomodoro switches the session into chronodoro mode: alternating work
// and break cycles. Zero arguments select the 25-minute/4-cycle defaults.
func (e *Engine) EnablePomodoro(userID string, sessionID uint, cycleMinutes, totalCycles int) (*models.FocusSession, error) {
	if cycleMinutes == 0 {
		cycleMinutes = DefaultCycleMinutes
	}
	if totalCycles == 0 {
		totalCycles = DefaultTotalCycles
	}
	if cycleMinutes < MinCycleMinutes || cycleMinutes > MaxCycleMinutes {
		return nil, invalidArgf("cycle length must be between %d and %d minutes", MinCycleMinutes, MaxCycleMinutes)
	}
	if totalCycles < MinTotalCycles || totalCycles > MaxTotalCycles {
		return nil, invalidArgf("total cycles must be between %d and %d", MinTotalCycles, MaxTotalCycles)
	}

	return e.mutate(userID, sessionID, func(tx *gorm.DB, s *models.FocusSession) error {
		if s.PomodoroEnabled {
			return conflictf("chronodoro mode is already enabled on session #%d", s.ID)
		}

		s.PomodoroEnabled = true
		s.FocusEnabled = true
		s.NotificationsSuppressed = true
		s.TimerRunning = true
		s.TimerPaused = false
		s.CycleDurationSeconds = cycleMinutes * 60
		s.TotalCyclesPlanned = totalCycles
		s.CyclesElapsed = 0
		s.CurrentCycleKind = models.CycleKindWork
		s.EfficiencyPercent = Efficiency(s)
		return nil
	})
}

// SetTimer pauses or resumes the session timer. Timer control requires an
// active focus or chronodoro mode.
func (e *Engine) SetTimer(userID string, sessionID uint, action string) (*models.FocusSession, error) {
	if action != TimerActionPause && action != TimerActionResume {
		return nil, invalidArgf("unknown timer action %q, use pause or resume", action)
	}

	return e.mutate(userID, sessionID, func(tx *gorm.DB, s *models.FocusSession) error {
		if !s.FocusEnabled {
			return preconditionf("timer control requires focus or chronodoro mode on session #%d", s.ID)
		}

		switch action {
		case TimerActionPause:
			if s.TimerPaused {
				return invalidStatef("session #%d timer is already paused", s.ID)
			}
			s.TimerRunning = false
			s.TimerPaused = true
			s.PauseCount++
		case TimerActionResume:
			if !s.TimerPaused {
				return invalidStatef("session #%d timer is not paused", s.ID)
			}
			s.TimerRunning = true
			s.TimerPaused = false
		}

		s.EfficiencyPercent = Efficiency(s)
		return nil
	})
}

// UpdateResult is the outcome of an elapsed-time report.
type UpdateResult struct {
	Session          *models.FocusSession
	SessionCompleted bool
	CycleChanged     bool
	NextBreakSeconds int // set when a work cycle just completed
}

// UpdateElapsed records a client-reported elapsed time. In chronodoro mode it
// detects cycle boundary crossings and may auto-complete the session once all
// planned cycles have finished.
func (e *Engine) UpdateElapsed(userID string, sessionID uint, elapsedSeconds int) (*UpdateResult, error) {
	if elapsedSeconds < 0 {
		return nil, invalidArgf("elapsed seconds must not be negative")
	}

	result := &UpdateResult{}
	session, err := e.mutate(userID, sessionID, func(tx *gorm.DB, s *models.FocusSession) error {
		if !s.TimerRunning {
			return preconditionf("session #%d timer is not running", s.ID)
		}

		oldElapsed := s.ElapsedSeconds
		s.ElapsedSeconds = elapsedSeconds
		s.EfficiencyPercent = Efficiency(s)

		if s.PomodoroEnabled && s.CycleDurationSeconds > 0 {
			oldIndex := oldElapsed / s.CycleDurationSeconds
			newIndex := elapsedSeconds / s.CycleDurationSeconds

			if newIndex > oldIndex {
				s.CyclesElapsed = newIndex
				// Cycle kind follows transition parity: even counts land on work
				if s.CyclesElapsed%2 == 0 {
					s.CurrentCycleKind = models.CycleKindWork
				} else {
					s.CurrentCycleKind = models.CycleKindBreak
				}
				result.CycleChanged = true

				// A work->break transition is a completed work cycle
				oldWorkCycles := (oldIndex + 1) / 2
				newWorkCycles := (newIndex + 1) / 2
				if newWorkCycles > oldWorkCycles {
					result.NextBreakSeconds = BreakSeconds(newWorkCycles)
				}

				if s.CyclesElapsed/2 >= s.TotalCyclesPlanned {
					if err := e.finalizeComplete(tx, s); err != nil {
						return err
					}
					result.SessionCompleted = true
					return nil
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Session = session
	return result, nil
}

// Stop terminates the session, either completing or cancelling it. Terminal
// sessions reject a second stop, so completion side effects apply once.
func (e *Engine) Stop(userID string, sessionID uint, action, notes string) (*models.FocusSession, error) {
	if action != StopActionComplete && action != StopActionCancel {
		return nil, invalidArgf("unknown stop action %q, use complete or cancel", action)
	}

	return e.mutate(userID, sessionID, func(tx *gorm.DB, s *models.FocusSession) error {
		if notes != "" {
			s.Notes = notes
		}

		if action == StopActionCancel {
			now := e.clock.Now()
			s.Status = models.SessionStatusCancelled
			s.EndedAt = &now
			s.TimerRunning = false
			s.TimerPaused = false
			s.EfficiencyPercent = 0
			return nil
		}

		return e.finalizeComplete(tx, s)
	})
}

// finalizeComplete marks the session completed and writes accumulated
// progress back to the task. Callers hold the user lock and transaction.
func (e *Engine) finalizeComplete(tx *gorm.DB, s *models.FocusSession) error {
	now := e.clock.Now()
	s.Status = models.SessionStatusCompleted
	s.EndedAt = &now
	s.TimerRunning = false
	s.TimerPaused = false
	s.EfficiencyPercent = Efficiency(s)

	if s.ElapsedSeconds <= progressMinSeconds {
		return nil
	}

	progress := db.TaskProgress{
		TimeSpentDelta: s.ElapsedSeconds,
		MarkInProgress: s.ElapsedSeconds > promoteMinSeconds,
	}
	if s.PomodoroEnabled {
		progress.PomodoroDelta = (s.CyclesElapsed + 1) / 2 // completed work cycles
	}

	if err := db.IncrementTaskProgress(tx, s.TaskID, progress); err != nil {
		return err
	}

	e.logger.Info("focus session completed",
		"session_id", s.ID, "task_id", s.TaskID,
		"elapsed_seconds", s.ElapsedSeconds, "efficiency", s.EfficiencyPercent)
	return nil
}

// mutate runs fn against the session under the user lock and a transaction,
// persisting the mutated record on success.
func (e *Engine) mutate(userID string, sessionID uint, fn func(tx *gorm.DB, s *models.FocusSession) error) (*models.FocusSession, error) {
	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	var session models.FocusSession
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).First(&session, sessionID).Error; err != nil {
			return notFoundf("session #%d not found", sessionID)
		}
		if session.Terminal() {
			return invalidStatef("session #%d is already %s", session.ID, session.Status)
		}

		if err := fn(tx, &session); err != nil {
			return err
		}

		return tx.Save(&session).Error
	})
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// Active returns the user's current active session, or nil when none exists.
func (e *Engine) Active(userID string) (*models.FocusSession, error) {
	var session models.FocusSession

	err := e.db.Where("user_id = ? AND status = ?", userID, models.SessionStatusActive).
		Preload("Task").First(&session).Error
	if err != nil {
		return nil, nil // No active session is not an error
	}

	return &session, nil
}

// History returns the user's terminated sessions, most recent first.
func (e *Engine) History(userID string, limit int) ([]models.FocusSession, error) {
	if limit <= 0 {
		limit = 50
	}

	var sessions []models.FocusSession
	err := e.db.Where("user_id = ? AND status <> ?", userID, models.SessionStatusActive).
		Preload("Task").
		Order("started_at DESC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// Stats summarizes a user's terminated sessions.
type Stats struct {
	TotalSessions     int `json:"total_sessions"`
	CompletedSessions int `json:"completed_sessions"`
	CancelledSessions int `json:"cancelled_sessions"`
	TotalFocusSeconds int `json:"total_focus_seconds"`
	TotalPauses       int `json:"total_pauses"`
	PomodoroCycles    int `json:"pomodoro_cycles"`
	AverageEfficiency int `json:"average_efficiency"`
	ProductiveSeconds int `json:"productive_seconds"`
}

// StatsFor aggregates the user's session history.
func (e *Engine) StatsFor(userID string) (*Stats, error) {
	var sessions []models.FocusSession
	err := e.db.Where("user_id = ? AND status <> ?", userID, models.SessionStatusActive).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	stats := &Stats{TotalSessions: len(sessions)}
	efficiencySum := 0
	for i := range sessions {
		s := &sessions[i]
		switch s.Status {
		case models.SessionStatusCompleted:
			stats.CompletedSessions++
		case models.SessionStatusCancelled:
			stats.CancelledSessions++
		}
		stats.TotalFocusSeconds += s.ElapsedSeconds
		stats.TotalPauses += s.PauseCount
		if s.PomodoroEnabled {
			stats.PomodoroCycles += (s.CyclesElapsed + 1) / 2
		}
		stats.ProductiveSeconds += ProductiveSeconds(s)
		efficiencySum += s.EfficiencyPercent
	}
	if len(sessions) > 0 {
		stats.AverageEfficiency = efficiencySum / len(sessions)
	}

	return stats, nil
}

func validatePlannedMinutes(plannedMinutes int) error {
	if plannedMinutes == 0 {
		return nil
	}
	if plannedMinutes < MinPlannedMinutes || plannedMinutes > MaxPlannedMinutes {
		return invalidArgf("planned duration must be between %d and %d minutes", MinPlannedMinutes, MaxPlannedMinutes)
	}
	return nil
}
