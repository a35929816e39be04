package model

import (
	"time"
)

// TaskStatus is the lifecycle state of a to-do task.
type TaskStatus string

const (
	TaskActive TaskStatus = "Aktif"
	TaskDone   TaskStatus = "Selesai"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	return s == TaskActive || s == TaskDone
}

// Priority levels shared by parsed to-do items and persisted tasks.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is a persisted to-do entry.
type Task struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Title     string     `json:"title"`
	Desc      string     `json:"desc"`
	Category  string     `json:"category"`
	Prioritas string     `json:"prioritas"`
	Deadline  string     `json:"deadline"` // ISO date, e.g. 2025-01-31.
	Status    TaskStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
