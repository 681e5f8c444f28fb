package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/focustache/focustache/internal/db"
	"github.com/focustache/focustache/internal/models"
	"github.com/focustache/focustache/internal/session"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()
	gdb, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	engine := session.NewEngine(gdb, nil, testLogger)
	server := NewServer(gdb, engine, testLogger, []string{"etu.univ.fr"})
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts, gdb
}

func registerUser(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp := doJSON(t, ts, http.MethodPost, "/api/users", "",
		map[string]any{"email": "amelie@etu.univ.fr", "name": "Amélie"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("registration failed with status %d", resp.StatusCode)
	}

	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("failed to decode user: %v", err)
	}
	return user.ID
}

func seedAPITask(t *testing.T, gdb *gorm.DB, userID string) *models.Task {
	t.Helper()
	task := models.Task{UserID: userID, Title: "Révisions", Status: models.TaskStatusTodo}
	if err := gdb.Create(&task).Error; err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
	return &task
}

func doJSON(t *testing.T, ts *httptest.Server, method, path, userID string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, ts.URL+path, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var envelope errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return envelope.Error
}

func TestRegisterUser_DomainRestriction(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, ts, http.MethodPost, "/api/users", "",
		map[string]any{"email": "mallory@gmail.com", "name": "Mallory"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for disallowed domain, got %d", resp.StatusCode)
	}

	registerUser(t, ts) // allowed domain succeeds
}

func TestAuth_RequiresValidUserHeader(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, ts, http.MethodGet, "/api/sessions/active", "", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without header, got %d", resp.StatusCode)
	}

	resp = doJSON(t, ts, http.MethodGet, "/api/sessions/active", "not-a-uuid", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for malformed uuid, got %d", resp.StatusCode)
	}
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	ts, gdb := newTestServer(t)
	userID := registerUser(t, ts)
	task := seedAPITask(t, gdb, userID)

	// No active session yet
	resp := doJSON(t, ts, http.MethodGet, "/api/sessions/active", userID, nil)
	var view struct {
		Session *models.FocusSession `json:"session"`
	}
	json.NewDecoder(resp.Body).Decode(&view)
	resp.Body.Close()
	if view.Session != nil {
		t.Fatal("expected no active session")
	}

	// Start one
	resp = doJSON(t, ts, http.MethodPost, "/api/sessions/start", userID,
		map[string]any{"taskIds": []uint{task.ID}, "plannedMinutes": 50})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("start failed with status %d", resp.StatusCode)
	}
	json.NewDecoder(resp.Body).Decode(&view)
	resp.Body.Close()
	sessionID := view.Session.ID

	// A second start conflicts
	resp = doJSON(t, ts, http.MethodPost, "/api/sessions/start", userID,
		map[string]any{"taskIds": []uint{task.ID}})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for second start, got %d", resp.StatusCode)
	}
	if e := decodeError(t, resp); e.Kind != "conflict" {
		t.Errorf("expected conflict kind, got %s", e.Kind)
	}
	resp.Body.Close()

	// Timer control before enabling focus mode fails the precondition
	resp = doJSON(t, ts, http.MethodPut, fmt.Sprintf("/api/sessions/%d/timer", sessionID), userID,
		map[string]any{"action": "pause"})
	if resp.StatusCode != http.StatusPreconditionFailed {
		t.Errorf("expected 412 for timer without focus mode, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Enable chronodoro and report a full cycle
	resp = doJSON(t, ts, http.MethodPut, fmt.Sprintf("/api/sessions/%d/chronodoro", sessionID), userID,
		map[string]any{"cycleMinutes": 25, "totalCycles": 2})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("chronodoro failed with status %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, ts, http.MethodPut, fmt.Sprintf("/api/sessions/%d/update", sessionID), userID,
		map[string]any{"elapsedSeconds": 1500})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update failed with status %d", resp.StatusCode)
	}
	var update struct {
		Session          *models.FocusSession `json:"session"`
		Pomodoro         *pomodoroView        `json:"pomodoro"`
		SessionCompleted bool                 `json:"sessionCompleted"`
	}
	json.NewDecoder(resp.Body).Decode(&update)
	resp.Body.Close()
	if update.SessionCompleted {
		t.Error("session should not complete after one cycle")
	}
	if update.Pomodoro == nil || update.Pomodoro.CurrentCycleKind != models.CycleKindBreak {
		t.Errorf("expected break sub-state, got %+v", update.Pomodoro)
	}

	// Stop with complete
	resp = doJSON(t, ts, http.MethodPut, fmt.Sprintf("/api/sessions/%d/stop", sessionID), userID,
		map[string]any{"action": "complete", "notes": "done for today"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stop failed with status %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Stopping again is rejected as invalid state
	resp = doJSON(t, ts, http.MethodPut, fmt.Sprintf("/api/sessions/%d/stop", sessionID), userID,
		map[string]any{"action": "cancel"})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 stopping a terminal session, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// History and stats reflect the finished session
	resp = doJSON(t, ts, http.MethodGet, "/api/sessions/stats", userID, nil)
	var stats session.Stats
	json.NewDecoder(resp.Body).Decode(&stats)
	resp.Body.Close()
	if stats.TotalSessions != 1 || stats.CompletedSessions != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestTaskEndpoints(t *testing.T) {
	ts, _ := newTestServer(t)
	userID := registerUser(t, ts)

	resp := doJSON(t, ts, http.MethodPost, "/api/tasks", userID,
		map[string]any{"title": "Rapport de stage", "course": "info-2010", "due": "2 weeks"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("task creation failed with status %d", resp.StatusCode)
	}
	var task models.Task
	json.NewDecoder(resp.Body).Decode(&task)
	resp.Body.Close()
	if task.Course != "INFO-2010" {
		t.Errorf("expected normalized course code, got %q", task.Course)
	}
	if task.Due == nil {
		t.Error("expected parsed due date")
	}

	resp = doJSON(t, ts, http.MethodGet, "/api/tasks", userID, nil)
	var list struct {
		Tasks []models.Task `json:"tasks"`
	}
	json.NewDecoder(resp.Body).Decode(&list)
	resp.Body.Close()
	if len(list.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(list.Tasks))
	}

	resp = doJSON(t, ts, http.MethodPut, fmt.Sprintf("/api/tasks/%d/done", task.ID), userID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("marking done failed with status %d", resp.StatusCode)
	}
	resp.Body.Close()
}
