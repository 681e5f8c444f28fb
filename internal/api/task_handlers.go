package api

import (
	"net/http"

	"github.com/focustache/focustache/internal/db"
	"github.com/focustache/focustache/internal/parser"
)

type registerUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type createTaskRequest struct {
	Title    string   `json:"title"`
	Course   string   `json:"course"`
	Tags     []string `json:"tags"`
	Priority string   `json:"priority"`
	Note     string   `json:"note"`
	Due      string   `json:"due"` // dd/mm/yyyy or relative like "3 days"
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorPayload(w, http.StatusBadRequest, "invalid_argument", "malformed request body")
		return
	}

	user, err := db.RegisterUser(s.gdb, req.Email, req.Name, s.allowedDomains)
	if err != nil {
		writeErrorPayload(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request, userID string) {
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorPayload(w, http.StatusBadRequest, "invalid_argument", "malformed request body")
		return
	}

	due, err := parser.ParseDueDate(req.Due)
	if err != nil {
		writeErrorPayload(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}

	task, err := db.CreateTask(s.gdb, db.CreateTaskRequest{
		UserID:   userID,
		Title:    req.Title,
		Course:   req.Course,
		Tags:     req.Tags,
		Priority: req.Priority,
		Note:     req.Note,
		DueDate:  due,
	})
	if err != nil {
		writeErrorPayload(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request, userID string) {
	tasks, err := db.GetTasks(s.gdb, userID)
	if err != nil {
		writeErrorPayload(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func (s *Server) handleTaskDone(w http.ResponseWriter, r *http.Request, userID string) {
	id, err := pathID(r)
	if err != nil {
		writeErrorPayload(w, http.StatusBadRequest, "invalid_argument", "invalid task id")
		return
	}

	task, err := db.MarkTaskDone(s.gdb, id, userID)
	if err != nil {
		writeErrorPayload(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, task)
}
