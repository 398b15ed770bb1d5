// Package board holds the client-side task board: the in-memory task list and
// the policy for applying user actions to it before the store confirms them.
//
// Every mutation is split in two. The method on Board changes local state at
// once and returns a Call; the Call performs exactly one store request and
// never touches the board. Its Outcome is folded back with Apply, on whatever
// goroutine owns the board.
package board

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/balkashynov/horizon/internal/models"
)

var (
	ErrTitleRequired = errors.New("task title is required")
	ErrUnknownTask   = errors.New("unknown task")
	ErrInvalidType   = errors.New("invalid task type")
)

// Store is the task store access layer as seen by the board
type Store interface {
	ListAll(ctx context.Context) ([]models.Task, error)
	Create(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error)
	UpdateByID(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
	DeleteByID(ctx context.Context, id string) error
}

// Op identifies the store request behind an Outcome
type Op int

const (
	OpLoad Op = iota
	OpCreate
	OpUpdate
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpLoad:
		return "load"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Outcome is the result of one store request
type Outcome struct {
	Op    Op
	ID    string
	Task  *models.Task
	Tasks []models.Task
	Err   error
}

// Failed reports whether the request failed. Deleting a task the store no
// longer has is not a failure.
func (o Outcome) Failed() bool {
	if o.Op == OpDelete && errors.Is(o.Err, models.ErrNotFound) {
		return false
	}
	return o.Err != nil
}

// Call performs the remote half of a board action
type Call func(ctx context.Context) Outcome

// Draft is the pending new-task form
type Draft struct {
	Title       string
	Description string
	Type        models.Type
}

func emptyDraft() Draft {
	return Draft{Type: models.TypeMonthly}
}

type Board struct {
	store Store

	tasks    []models.Task
	draft    Draft
	formOpen bool
	loaded   bool

	inflight int
	failures int
	stale    int
	lastErr  error
}

func New(store Store) *Board {
	return &Board{store: store, draft: emptyDraft()}
}

// Load fetches the whole collection; Apply replaces local state with it
func (b *Board) Load() Call {
	b.inflight++
	store := b.store
	return func(ctx context.Context) Outcome {
		tasks, err := store.ListAll(ctx)
		return Outcome{Op: OpLoad, Tasks: tasks, Err: err}
	}
}

// CreateTask submits the draft. Nothing changes locally until the store answers.
func (b *Board) CreateTask() (Call, error) {
	if strings.TrimSpace(b.draft.Title) == "" {
		return nil, ErrTitleRequired
	}
	typ := b.draft.Type
	if typ == "" {
		typ = models.TypeMonthly
	}
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, typ)
	}

	req := models.CreateTaskRequest{
		Title:       b.draft.Title,
		Description: b.draft.Description,
		Type:        typ,
		Status:      models.StatusTodo,
	}
	b.inflight++
	store := b.store
	return func(ctx context.Context) Outcome {
		task, err := store.Create(ctx, req)
		return Outcome{Op: OpCreate, Task: task, Err: err}
	}, nil
}

// ToggleStatus flips TODO and COMPLETED locally and sends the full record
func (b *Board) ToggleStatus(id string) (Call, error) {
	i := b.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTask, id)
	}
	b.tasks[i].Status = b.tasks[i].Status.Toggle()
	return b.update(b.tasks[i]), nil
}

// Recategorize moves a task into bucket newType at destIndex within that bucket.
// The flat list is re-spliced so the task lands just before the destIndex-th
// remaining task of the bucket, or after its last one when destIndex is past the
// end. Both affected buckets are renumbered so every Position matches its
// column index, as the store does on its side. Dropping a task back where it
// was is a no-op and returns a nil Call.
func (b *Board) Recategorize(id string, newType models.Type, destIndex int) (Call, error) {
	if !newType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, newType)
	}
	from := b.indexOf(id)
	if from < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTask, id)
	}
	if destIndex < 0 {
		destIndex = 0
	}

	task := b.tasks[from]
	current := b.columnIndex(id)

	rest := make([]models.Task, 0, len(b.tasks))
	rest = append(rest, b.tasks[:from]...)
	rest = append(rest, b.tasks[from+1:]...)

	// Walk the bucket's members in flat-list order. When the bucket is
	// contiguous this is "first member + destIndex".
	insert, pos, last := -1, 0, -1
	for i, t := range rest {
		if t.Type != newType {
			continue
		}
		if pos == destIndex {
			insert = i
			break
		}
		pos++
		last = i
	}
	if insert < 0 {
		insert = len(rest)
		if last >= 0 {
			insert = last + 1
		}
	}

	if task.Type == newType && pos == current {
		return nil, nil
	}

	oldType := task.Type
	task.Type = newType
	task.Position = pos

	out := make([]models.Task, 0, len(b.tasks))
	out = append(out, rest[:insert]...)
	out = append(out, task)
	out = append(out, rest[insert:]...)
	b.tasks = out
	b.renumber(oldType)
	b.renumber(newType)

	return b.update(task), nil
}

// EditLearnings overwrites the reflection text locally and sends the full record
func (b *Board) EditLearnings(id, text string) (Call, error) {
	i := b.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTask, id)
	}
	b.tasks[i].Learnings = text
	return b.update(b.tasks[i]), nil
}

// DeleteTask removes the task locally, then asks the store to delete it.
// The removal is kept whatever the store answers.
func (b *Board) DeleteTask(id string) (Call, error) {
	i := b.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTask, id)
	}
	typ := b.tasks[i].Type
	b.tasks = append(b.tasks[:i:i], b.tasks[i+1:]...)
	b.renumber(typ)

	b.inflight++
	store := b.store
	return func(ctx context.Context) Outcome {
		return Outcome{Op: OpDelete, ID: id, Err: store.DeleteByID(ctx, id)}
	}, nil
}

// update issues UpdateByID with a snapshot of task
func (b *Board) update(task models.Task) Call {
	b.inflight++
	store := b.store
	patch := models.PatchFromTask(task)
	id := task.ID
	return func(ctx context.Context) Outcome {
		updated, err := store.UpdateByID(ctx, id, patch)
		return Outcome{Op: OpUpdate, ID: id, Task: updated, Err: err}
	}
}

// Apply folds a finished Call back into the board
func (b *Board) Apply(o Outcome) {
	if b.inflight > 0 {
		b.inflight--
	}
	if o.Failed() {
		b.failures++
		b.lastErr = fmt.Errorf("%s failed: %w", o.Op, o.Err)
		return
	}

	switch o.Op {
	case OpLoad:
		b.tasks = append([]models.Task(nil), o.Tasks...)
		b.loaded = true

	case OpCreate:
		if o.Task == nil {
			return
		}
		b.tasks = append(b.tasks, *o.Task)
		b.draft = emptyDraft()
		b.formOpen = false

	case OpUpdate:
		// Only the revision is taken from the answer; an older one means a
		// later request already came back.
		i := b.indexOf(o.ID)
		if i < 0 || o.Task == nil {
			return
		}
		if o.Task.Revision <= b.tasks[i].Revision {
			b.stale++
			return
		}
		b.tasks[i].Revision = o.Task.Revision
		b.tasks[i].UpdatedAt = o.Task.UpdatedAt
	}
}

// Run executes call and applies its outcome
func (b *Board) Run(ctx context.Context, call Call) error {
	if call == nil {
		return nil
	}
	o := call(ctx)
	b.Apply(o)
	if !o.Failed() {
		return nil
	}
	return o.Err
}

func (b *Board) indexOf(id string) int {
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// renumber sets Position to the column index for every task of typ
func (b *Board) renumber(typ models.Type) {
	n := 0
	for i := range b.tasks {
		if b.tasks[i].Type == typ {
			b.tasks[i].Position = n
			n++
		}
	}
}

// columnIndex is the position of id among the tasks of its own bucket
func (b *Board) columnIndex(id string) int {
	i := b.indexOf(id)
	if i < 0 {
		return -1
	}
	n := 0
	for _, t := range b.tasks[:i] {
		if t.Type == b.tasks[i].Type {
			n++
		}
	}
	return n
}
