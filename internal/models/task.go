package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned by stores when no task matches an id
var ErrNotFound = errors.New("task not found")

// Task is a single work item on the board
type Task struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Learnings   string `json:"learnings"`
	Status      Status `gorm:"not null;default:TODO" json:"status"`
	Type        Type   `gorm:"not null;default:MONTHLY;index" json:"type"`

	// Position is the task's index inside its bucket. The store keeps it
	// dense: 0..n-1 per bucket.
	Position int `gorm:"not null;default:0" json:"position"`
	// Revision is bumped by the store on every update.
	Revision int `gorm:"not null;default:1" json:"revision"`
}

// BeforeCreate assigns a fresh id
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Revision == 0 {
		t.Revision = 1
	}
	return nil
}

// CreateTaskRequest holds the fields accepted when creating a task
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Learnings   string `json:"learnings"`
	Status      Status `json:"status"`
	Type        Type   `json:"type"`
}

// TaskPatch is a partial update. A nil field means "no change".
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Content     *string `json:"content,omitempty"`
	Learnings   *string `json:"learnings,omitempty"`
	Status      *Status `json:"status,omitempty"`
	Type        *Type   `json:"type,omitempty"`
	Position    *int    `json:"position,omitempty"`
}

// PatchFromTask builds a patch that overwrites every mutable field with the values of t
func PatchFromTask(t Task) TaskPatch {
	return TaskPatch{
		Title:       &t.Title,
		Description: &t.Description,
		Content:     &t.Content,
		Learnings:   &t.Learnings,
		Status:      &t.Status,
		Type:        &t.Type,
		Position:    &t.Position,
	}
}

// Apply copies the set fields of p onto t
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Content != nil {
		t.Content = *p.Content
	}
	if p.Learnings != nil {
		t.Learnings = *p.Learnings
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Position != nil {
		t.Position = *p.Position
	}
}

// IsCompleted reports whether the task is done
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}
