package db

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/focustache/focustache/internal/models"
	"github.com/focustache/focustache/internal/parser"
)

// CreateTaskRequest holds the data needed to create a new task
type CreateTaskRequest struct {
	UserID   string
	Title    string
	Course   string
	Tags     []string
	Priority string // "low/medium/high", "1/2/3", or empty for no priority
	Note     string
	DueDate  *time.Time
}

// CreateTask creates a new task with tags
func CreateTask(gdb *gorm.DB, req CreateTaskRequest) (*models.Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("task title is required")
	}

	priority := parsePriority(req.Priority)

	// Normalize course code if it looks like one, keep anything else as typed
	course := req.Course
	if course != "" && parser.IsValidCourseCode(course) {
		normalized, _ := parser.NormalizeCourseCode(course)
		course = normalized
	}

	task := models.Task{
		UserID:   req.UserID,
		Title:    req.Title,
		Course:   course,
		Status:   models.TaskStatusTodo,
		Priority: priority,
		Note:     req.Note,
		Due:      req.DueDate,
	}

	if len(req.Tags) > 0 {
		tags, err := findOrCreateTags(gdb, req.Tags)
		if err != nil {
			return nil, err
		}
		task.Tags = tags
	}

	if err := gdb.Create(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// parsePriority converts priority string to int
func parsePriority(priority string) int {
	priority = strings.ToLower(strings.TrimSpace(priority))
	if priority == "" {
		return 0 // 0 means no priority set
	}
	switch priority {
	case "low", "1":
		return 1
	case "medium", "2":
		return 2
	case "high", "3":
		return 3
	default:
		return 0 // invalid priority defaults to no priority
	}
}

// findOrCreateTags finds existing tags or creates new ones
func findOrCreateTags(gdb *gorm.DB, tagNames []string) ([]models.Tag, error) {
	var tags []models.Tag

	for _, name := range tagNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		var tag models.Tag
		err := gdb.Where("name = ?", name).First(&tag).Error
		if err != nil {
			tag = models.Tag{Name: name}
			if err := gdb.Create(&tag).Error; err != nil {
				return nil, err
			}
		}

		tags = append(tags, tag)
	}

	return tags, nil
}

// GetTasks retrieves all tasks belonging to a user
func GetTasks(gdb *gorm.DB, userID string) ([]models.Task, error) {
	var tasks []models.Task

	if err := gdb.Preload("Tags").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// FindTaskForUser retrieves a task by ID, scoped to its owner.
func FindTaskForUser(gdb *gorm.DB, taskID uint, userID string) (*models.Task, error) {
	var task models.Task

	err := gdb.Where("user_id = ?", userID).First(&task, taskID).Error
	if err != nil {
		return nil, fmt.Errorf("task #%d not found", taskID)
	}

	return &task, nil
}

// TaskProgress is the progress report written back to a task when a focus
// session completes.
type TaskProgress struct {
	TimeSpentDelta int
	PomodoroDelta  int
	MarkInProgress bool
}

// IncrementTaskProgress applies a progress report atomically via SQL
// expressions so that concurrent sessions never lose increments.
func IncrementTaskProgress(gdb *gorm.DB, taskID uint, p TaskProgress) error {
	updates := map[string]any{
		"time_spent_seconds": gorm.Expr("time_spent_seconds + ?", p.TimeSpentDelta),
	}
	if p.PomodoroDelta > 0 {
		updates["pomodoro_count"] = gorm.Expr("pomodoro_count + ?", p.PomodoroDelta)
	}
	if p.MarkInProgress {
		// Only promote tasks still sitting in todo
		updates["status"] = gorm.Expr(
			"CASE WHEN status = ? THEN ? ELSE status END",
			models.TaskStatusTodo, models.TaskStatusInProgress,
		)
	}

	result := gdb.Model(&models.Task{}).Where("id = ?", taskID)
	if err := result.Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update task #%d progress: %w", taskID, err)
	}

	return nil
}

// MarkTaskDone marks a task as completed
func MarkTaskDone(gdb *gorm.DB, taskID uint, userID string) (*models.Task, error) {
	task, err := FindTaskForUser(gdb, taskID, userID)
	if err != nil {
		return nil, err
	}

	if task.Status == models.TaskStatusDone {
		return nil, fmt.Errorf("task #%d is already completed", taskID)
	}

	now := time.Now()
	task.Status = models.TaskStatusDone
	task.DoneAt = &now

	if err := gdb.Save(task).Error; err != nil {
		return nil, err
	}

	return task, nil
}
