package models

import (
	"time"

	"gorm.io/gorm"
)

// Task statuses. A task is promoted from todo to in-progress automatically
// once enough focus time has been logged against it.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in-progress"
	TaskStatusDone       = "done"
	TaskStatusArchived   = "archived"
)

// Task represents a student work item
type Task struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID   string     `gorm:"index;not null" json:"user_id"`
	Title    string     `gorm:"not null" json:"title"`
	Course   string     `json:"course"` // normalized course code, e.g. INFO-2010
	Status   string     `gorm:"default:todo" json:"status"`
	Priority int        `gorm:"default:0" json:"priority"` // 0=no priority, 1=low, 2=medium, 3=high
	Due      *time.Time `json:"due"`
	DoneAt   *time.Time `json:"done_at"`
	Note     string     `json:"note"`

	// Accumulated focus progress, written back when a session completes
	TimeSpentSeconds int `gorm:"default:0" json:"time_spent_seconds"`
	PomodoroCount    int `gorm:"default:0" json:"pomodoro_count"`

	// Relationships
	Tags     []Tag          `gorm:"many2many:task_tags;" json:"tags"`
	Sessions []FocusSession `gorm:"foreignKey:TaskID" json:"sessions,omitempty"`
}

// Tag represents a task tag
type Tag struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`

	// Relationships
	Tasks []Task `gorm:"many2many:task_tags;" json:"-"`
}

// TaskTag is the join table for the many-to-many relationship
type TaskTag struct {
	TaskID uint `gorm:"primaryKey"`
	TagID  uint `gorm:"primaryKey"`
}
