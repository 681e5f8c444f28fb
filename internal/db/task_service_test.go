package db

import (
	"testing"

	"github.com/focustache/focustache/internal/models"
)

func TestCreateTask(t *testing.T) {
	gdb := openTestDB(t)
	user, _ := GetOrCreateLocalUser(gdb)

	task, err := CreateTask(gdb, CreateTaskRequest{
		UserID:   user.ID,
		Title:    "Réviser le partiel",
		Course:   "info-2010",
		Tags:     []string{"exam", "revision"},
		Priority: "high",
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.Course != "INFO-2010" {
		t.Errorf("course should be normalized, got %q", task.Course)
	}
	if task.Priority != 3 {
		t.Errorf("priority = %d, want 3", task.Priority)
	}
	if task.Status != models.TaskStatusTodo {
		t.Errorf("new task status = %q", task.Status)
	}
	if len(task.Tags) != 2 {
		t.Errorf("tags = %v", task.Tags)
	}

	if _, err := CreateTask(gdb, CreateTaskRequest{UserID: user.ID, Title: "   "}); err == nil {
		t.Error("blank title should be rejected")
	}
}

func TestCreateTask_ReusesTags(t *testing.T) {
	gdb := openTestDB(t)
	user, _ := GetOrCreateLocalUser(gdb)

	for i := 0; i < 2; i++ {
		if _, err := CreateTask(gdb, CreateTaskRequest{
			UserID: user.ID, Title: "task", Tags: []string{"shared"},
		}); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}

	var count int64
	gdb.Model(&models.Tag{}).Where("name = ?", "shared").Count(&count)
	if count != 1 {
		t.Errorf("expected a single shared tag row, got %d", count)
	}
}

func TestIncrementTaskProgress(t *testing.T) {
	gdb := openTestDB(t)
	user, _ := GetOrCreateLocalUser(gdb)
	task, _ := CreateTask(gdb, CreateTaskRequest{UserID: user.ID, Title: "thesis chapter"})

	err := IncrementTaskProgress(gdb, task.ID, TaskProgress{
		TimeSpentDelta: 1800,
		PomodoroDelta:  1,
		MarkInProgress: true,
	})
	if err != nil {
		t.Fatalf("IncrementTaskProgress failed: %v", err)
	}

	updated, _ := FindTaskForUser(gdb, task.ID, user.ID)
	if updated.TimeSpentSeconds != 1800 {
		t.Errorf("time spent = %d", updated.TimeSpentSeconds)
	}
	if updated.PomodoroCount != 1 {
		t.Errorf("pomodoro count = %d", updated.PomodoroCount)
	}
	if updated.Status != models.TaskStatusInProgress {
		t.Errorf("status = %q, want in-progress", updated.Status)
	}

	// A second report accumulates but never demotes a done task
	gdb.Model(updated).Update("status", models.TaskStatusDone)
	if err := IncrementTaskProgress(gdb, task.ID, TaskProgress{
		TimeSpentDelta: 600,
		MarkInProgress: true,
	}); err != nil {
		t.Fatalf("IncrementTaskProgress failed: %v", err)
	}
	updated, _ = FindTaskForUser(gdb, task.ID, user.ID)
	if updated.TimeSpentSeconds != 2400 {
		t.Errorf("time spent = %d, want 2400", updated.TimeSpentSeconds)
	}
	if updated.Status != models.TaskStatusDone {
		t.Errorf("done task was demoted to %q", updated.Status)
	}
}

func TestFindTaskForUser_Ownership(t *testing.T) {
	gdb := openTestDB(t)
	owner, _ := RegisterUser(gdb, "owner@univ.fr", "Owner", testDomains)
	other, _ := RegisterUser(gdb, "other@univ.fr", "Other", testDomains)

	task, _ := CreateTask(gdb, CreateTaskRequest{UserID: owner.ID, Title: "private"})

	if _, err := FindTaskForUser(gdb, task.ID, owner.ID); err != nil {
		t.Errorf("owner lookup failed: %v", err)
	}
	if _, err := FindTaskForUser(gdb, task.ID, other.ID); err == nil {
		t.Error("another user should not see the task")
	}
}

func TestMarkTaskDone(t *testing.T) {
	gdb := openTestDB(t)
	user, _ := GetOrCreateLocalUser(gdb)
	task, _ := CreateTask(gdb, CreateTaskRequest{UserID: user.ID, Title: "hand in report"})

	done, err := MarkTaskDone(gdb, task.ID, user.ID)
	if err != nil {
		t.Fatalf("MarkTaskDone failed: %v", err)
	}
	if done.Status != models.TaskStatusDone || done.DoneAt == nil {
		t.Errorf("task not marked done: %+v", done)
	}

	if _, err := MarkTaskDone(gdb, task.ID, user.ID); err == nil {
		t.Error("marking a done task again should fail")
	}
}
