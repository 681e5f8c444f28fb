package api

import (
	"net/http"

	"github.com/focustache/focustache/internal/models"
	"github.com/focustache/focustache/internal/session"
)

type startSessionRequest struct {
	TaskIDs        []uint `json:"taskIds"`
	PlannedMinutes int    `json:"plannedMinutes"`
}

type focusRequest struct {
	PlannedMinutes int `json:"plannedMinutes"`
}

type chronodoroRequest struct {
	CycleMinutes int `json:"cycleMinutes"`
	TotalCycles  int `json:"totalCycles"`
}

type timerRequest struct {
	Action string `json:"action"`
}

type updateElapsedRequest struct {
	ElapsedSeconds int `json:"elapsedSeconds"`
}

type stopSessionRequest struct {
	Action string `json:"action"`
	Notes  string `json:"notes"`
}

// pomodoroView is the Pomodoro sub-state attached to session responses.
type pomodoroView struct {
	CurrentCycleKind        string  `json:"current_cycle_kind"`
	CyclesElapsed           int     `json:"cycles_elapsed"`
	TotalCyclesPlanned      int     `json:"total_cycles_planned"`
	RemainingInCycleSeconds int     `json:"remaining_in_cycle_seconds"`
	CycleProgressPercent    float64 `json:"cycle_progress_percent"`
}

type sessionView struct {
	Session  *models.FocusSession `json:"session"`
	Pomodoro *pomodoroView        `json:"pomodoro,omitempty"`
}

type updateElapsedView struct {
	sessionView
	SessionCompleted bool `json:"sessionCompleted"`
	CycleChanged     bool `json:"cycleChanged,omitempty"`
	NextBreakSeconds int  `json:"nextBreakSeconds,omitempty"`
}

func viewOf(s *models.FocusSession) sessionView {
	view := sessionView{Session: s}
	if s != nil && s.PomodoroEnabled {
		view.Pomodoro = &pomodoroView{
			CurrentCycleKind:        s.CurrentCycleKind,
			CyclesElapsed:           s.CyclesElapsed,
			TotalCyclesPlanned:      s.TotalCyclesPlanned,
			RemainingInCycleSeconds: session.RemainingInCycle(s),
			CycleProgressPercent:    session.CycleProgressPercent(s),
		}
	}
	return view
}

func (s *Server) handleActiveSession(w http.ResponseWriter, r *http.Request, userID string) {
	active, err := s.engine.Active(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(active))
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request, userID string) {
	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorPayload(w, http.StatusBadRequest, "invalid_argument", "malformed request body")
		return
	}

	created, err := s.engine.Start(userID, req.TaskIDs, req.PlannedMinutes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewOf(created))
}

func (s *Server) handleEnableFocus(w http.ResponseWriter, r *http.Request, userID string) {
	id, err := pathID(r)
	if err != nil {
		writeErrorPayload(w, http.StatusBadRequest, "invalid_argument", "invalid session id")
		return
	}

	var req focusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorPayload(w, http.StatusBadRequest, "invalid_argument", "malformed request body")
		return
	}

	updated, err := s.engine.EnableFocus(userID, id, req.PlannedMinutes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(updated))
}

func (s *Server) handleEnableChronodoro(w http.ResponseWriter, r *http.Request, userID string) {
	id, err := pathID(r)
	if err != nil {
		writeErrorPayload(w, http.StatusBadRequest, "invalid_argument", "invalid session id")
		return
	}

	var req chronodoroRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorPayload(w, http.StatusBadRequest, "invalid_argument", "malformed request body")
		return
	}

	updated, err := s.engine.EnablePomodoro(userID, id, req.CycleMinutes, req.TotalCycles)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(updated))
}

func (s *Server) handleTimer(w http.ResponseWriter, r *http.Request, userID string) {
	id, err := pathID(r)
	if err != nil {
		writeErrorPayload(w, http.StatusBadRequest, "invalid_argument", "invalid session id")
		return
	}

	var req timerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorPayload(w, http.StatusBadRequest, "invalid_argument", "malformed request body")
		return
	}

	updated, err := s.engine.SetTimer(userID, id, req.Action)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(updated))
}

func (s *Server) handleUpdateElapsed(w http.ResponseWriter, r *http.Request, userID string) {
	id, err := pathID(r)
	if err != nil {
		writeErrorPayload(w, http.StatusBadRequest, "invalid_argument", "invalid session id")
		return
	}

	var req updateElapsedRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorPayload(w, http.StatusBadRequest, "invalid_argument", "malformed request body")
		return
	}

	result, err := s.engine.UpdateElapsed(userID, id, req.ElapsedSeconds)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updateElapsedView{
		sessionView:      viewOf(result.Session),
		SessionCompleted: result.SessionCompleted,
		CycleChanged:     result.CycleChanged,
		NextBreakSeconds: result.NextBreakSeconds,
	})
}

func (s *Server) handleStopSession(w http.ResponseWriter, r *http.Request, userID string) {
	id, err := pathID(r)
	if err != nil {
		writeErrorPayload(w, http.StatusBadRequest, "invalid_argument", "invalid session id")
		return
	}

	var req stopSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorPayload(w, http.StatusBadRequest, "invalid_argument", "malformed request body")
		return
	}

	stopped, err := s.engine.Stop(userID, id, req.Action, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(stopped))
}

func (s *Server) handleSessionHistory(w http.ResponseWriter, r *http.Request, userID string) {
	history, err := s.engine.History(userID, 0)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": history})
}

func (s *Server) handleSessionStats(w http.ResponseWriter, r *http.Request, userID string) {
	stats, err := s.engine.StatsFor(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
