package board

import (
	"fmt"
	"math"
	"strings"

	"github.com/balkashynov/horizon/internal/models"
)

// Counts is the completion tally across all buckets
type Counts struct {
	Total     int
	Completed int
}

// Percent is Completed/Total rounded to the nearest integer, 0 when empty
func (c Counts) Percent() int {
	if c.Total == 0 {
		return 0
	}
	return int(math.Round(float64(c.Completed) * 100 / float64(c.Total)))
}

// Tasks returns a copy of the flat task list in board order
func (b *Board) Tasks() []models.Task {
	return append([]models.Task(nil), b.tasks...)
}

// Column returns the tasks of one bucket in board order
func (b *Board) Column(t models.Type) []models.Task {
	var out []models.Task
	for _, task := range b.tasks {
		if task.Type == t {
			out = append(out, task)
		}
	}
	return out
}

func (b *Board) Task(id string) (models.Task, bool) {
	i := b.indexOf(id)
	if i < 0 {
		return models.Task{}, false
	}
	return b.tasks[i], true
}

// ColumnIndex is the position of id inside its bucket, -1 if unknown
func (b *Board) ColumnIndex(id string) int {
	return b.columnIndex(id)
}

// ResolveID accepts a full id or a unique prefix of one
func (b *Board) ResolveID(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrUnknownTask)
	}
	var match string
	for _, t := range b.tasks {
		if t.ID == prefix {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("ambiguous id %q", prefix)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", ErrUnknownTask, prefix)
	}
	return match, nil
}

func (b *Board) Progress() Counts {
	c := Counts{Total: len(b.tasks)}
	for _, t := range b.tasks {
		if t.IsCompleted() {
			c.Completed++
		}
	}
	return c
}

// BucketProgress is the completion tally of one bucket
func (b *Board) BucketProgress(t models.Type) Counts {
	var c Counts
	for _, task := range b.tasks {
		if task.Type != t {
			continue
		}
		c.Total++
		if task.IsCompleted() {
			c.Completed++
		}
	}
	return c
}

// Form state

func (b *Board) Draft() Draft { return b.draft }

func (b *Board) SetDraft(d Draft) { b.draft = d }

func (b *Board) FormOpen() bool { return b.formOpen }

func (b *Board) OpenForm() { b.formOpen = true }

// CloseForm hides the form and discards the draft
func (b *Board) CloseForm() {
	b.formOpen = false
	b.draft = emptyDraft()
}

func (b *Board) ToggleForm() {
	if b.formOpen {
		b.CloseForm()
		return
	}
	b.OpenForm()
}

// Status

func (b *Board) Loaded() bool { return b.loaded }
func (b *Board) Inflight() int { return b.inflight }
func (b *Board) Failures() int { return b.failures }
func (b *Board) Stale() int { return b.stale }
func (b *Board) Err() error { return b.lastErr }
func (b *Board) ClearErr() { b.lastErr = nil }
