package board

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/horizon/internal/models"
)

var errDown = errors.New("store down")

// memStore keeps tasks in insertion order and bumps revisions like the real store
type memStore struct {
	tasks []models.Task
	seq   int
	fail  bool
}

func (m *memStore) ListAll(context.Context) ([]models.Task, error) {
	if m.fail {
		return nil, errDown
	}
	return append([]models.Task(nil), m.tasks...), nil
}

func (m *memStore) Create(_ context.Context, req models.CreateTaskRequest) (*models.Task, error) {
	if m.fail {
		return nil, errDown
	}
	m.seq++
	t := models.Task{
		ID:          fmt.Sprintf("task-%03d", m.seq),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Type:        req.Type,
		Revision:    1,
	}
	m.tasks = append(m.tasks, t)
	return &t, nil
}

func (m *memStore) UpdateByID(_ context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	if m.fail {
		return nil, errDown
	}
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			patch.Apply(&m.tasks[i])
			m.tasks[i].Revision++
			t := m.tasks[i]
			return &t, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memStore) DeleteByID(_ context.Context, id string) error {
	if m.fail {
		return errDown
	}
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func seeded(t *testing.T, specs ...models.Type) (*Board, *memStore) {
	t.Helper()
	store := &memStore{}
	for i, typ := range specs {
		_, err := store.Create(context.Background(), models.CreateTaskRequest{
			Title: fmt.Sprintf("t%d", i), Type: typ, Status: models.StatusTodo,
		})
		require.NoError(t, err)
	}
	b := New(store)
	require.NoError(t, b.Run(context.Background(), b.Load()))
	return b, store
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestTaskLifecycle(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	b := New(store)
	require.NoError(t, b.Run(ctx, b.Load()))
	assert.True(t, b.Loaded())
	assert.Empty(t, b.Tasks())

	b.OpenForm()
	b.SetDraft(Draft{Title: "Plan Q1", Description: "goals", Type: models.TypeMonthly})
	call, err := b.CreateTask()
	require.NoError(t, err)
	assert.Empty(t, b.Tasks(), "create waits for the store")
	require.NoError(t, b.Run(ctx, call))

	require.Len(t, b.Tasks(), 1)
	task := b.Tasks()[0]
	assert.Equal(t, "Plan Q1", task.Title)
	assert.Equal(t, models.StatusTodo, task.Status)
	assert.False(t, b.FormOpen())
	assert.Equal(t, Draft{Type: models.TypeMonthly}, b.Draft())

	call, err = b.ToggleStatus(task.ID)
	require.NoError(t, err)
	got, _ := b.Task(task.ID)
	assert.Equal(t, models.StatusCompleted, got.Status, "toggle is visible before the store answers")
	require.NoError(t, b.Run(ctx, call))

	call, err = b.EditLearnings(task.ID, "Learned X")
	require.NoError(t, err)
	require.NoError(t, b.Run(ctx, call))

	got, _ = b.Task(task.ID)
	assert.Equal(t, "Learned X", got.Learnings)
	assert.Equal(t, 3, got.Revision)
	assert.Equal(t, "Learned X", store.tasks[0].Learnings)
	assert.Equal(t, models.StatusCompleted, store.tasks[0].Status)
	assert.Equal(t, Counts{Total: 1, Completed: 1}, b.Progress())

	call, err = b.DeleteTask(task.ID)
	require.NoError(t, err)
	assert.Empty(t, b.Tasks())
	require.NoError(t, b.Run(ctx, call))
	assert.Empty(t, store.tasks)
	assert.Zero(t, b.Inflight())
}

func TestCreateValidation(t *testing.T) {
	b := New(&memStore{})

	b.SetDraft(Draft{Title: "   "})
	_, err := b.CreateTask()
	assert.ErrorIs(t, err, ErrTitleRequired)

	b.SetDraft(Draft{Title: "x", Type: "YEARLY"})
	_, err = b.CreateTask()
	assert.ErrorIs(t, err, ErrInvalidType)

	b.SetDraft(Draft{Title: "x"})
	call, err := b.CreateTask()
	require.NoError(t, err)
	require.NoError(t, b.Run(context.Background(), call))
	assert.Equal(t, models.TypeMonthly, b.Tasks()[0].Type)
}

func TestCreateFailureLeavesStateUnchanged(t *testing.T) {
	b, store := seeded(t, models.TypeDaily)
	before := b.Tasks()

	store.fail = true
	b.OpenForm()
	b.SetDraft(Draft{Title: "later", Type: models.TypeWeekly})
	call, err := b.CreateTask()
	require.NoError(t, err)

	err = b.Run(context.Background(), call)
	assert.ErrorIs(t, err, errDown)
	assert.Equal(t, before, b.Tasks())
	assert.True(t, b.FormOpen())
	assert.Equal(t, "later", b.Draft().Title)
	assert.Equal(t, 1, b.Failures())
	assert.ErrorIs(t, b.Err(), errDown)
}

func TestFailedMutationsAreNotRolledBack(t *testing.T) {
	b, store := seeded(t, models.TypeMonthly, models.TypeWeekly)
	ctx := context.Background()
	first := b.Tasks()[0].ID
	second := b.Tasks()[1].ID
	store.fail = true

	call, err := b.ToggleStatus(first)
	require.NoError(t, err)
	assert.Error(t, b.Run(ctx, call))
	got, _ := b.Task(first)
	assert.Equal(t, models.StatusCompleted, got.Status)

	call, err = b.DeleteTask(second)
	require.NoError(t, err)
	assert.Error(t, b.Run(ctx, call))
	_, ok := b.Task(second)
	assert.False(t, ok)
	assert.Len(t, store.tasks, 2)
	assert.Equal(t, 2, b.Failures())

	// a reload reconciles with what the store kept
	store.fail = false
	require.NoError(t, b.Run(ctx, b.Load()))
	assert.Len(t, b.Tasks(), 2)
	got, _ = b.Task(first)
	assert.Equal(t, models.StatusTodo, got.Status)
}

func TestDeletingMissingTaskSucceeds(t *testing.T) {
	b, store := seeded(t, models.TypeMonthly, models.TypeWeekly)
	ctx := context.Background()
	id := b.Tasks()[0].ID
	require.NoError(t, store.DeleteByID(ctx, id))

	call, err := b.DeleteTask(id)
	require.NoError(t, err)
	assert.NoError(t, b.Run(ctx, call))
	assert.Zero(t, b.Failures())
	assert.NoError(t, b.Err())
	assert.Zero(t, b.Inflight())
	_, ok := b.Task(id)
	assert.False(t, ok)

	// a missing update target is still a failure
	other := b.Tasks()[0].ID
	require.NoError(t, store.DeleteByID(ctx, other))
	call, err = b.ToggleStatus(other)
	require.NoError(t, err)
	assert.ErrorIs(t, b.Run(ctx, call), models.ErrNotFound)
	assert.Equal(t, 1, b.Failures())
}

func TestLoadFailureKeepsTasks(t *testing.T) {
	b, store := seeded(t, models.TypeMonthly)
	store.fail = true
	assert.Error(t, b.Run(context.Background(), b.Load()))
	assert.Len(t, b.Tasks(), 1)
}

func TestToggleTwiceRestoresStatus(t *testing.T) {
	b, _ := seeded(t, models.TypeDaily)
	id := b.Tasks()[0].ID
	for i := 0; i < 2; i++ {
		call, err := b.ToggleStatus(id)
		require.NoError(t, err)
		require.NoError(t, b.Run(context.Background(), call))
	}
	got, _ := b.Task(id)
	assert.Equal(t, models.StatusTodo, got.Status)
}

func TestOutOfOrderAnswersAreDiscarded(t *testing.T) {
	b, store := seeded(t, models.TypeDaily)
	ctx := context.Background()
	id := b.Tasks()[0].ID

	c1, err := b.ToggleStatus(id)
	require.NoError(t, err)
	c2, err := b.EditLearnings(id, "second")
	require.NoError(t, err)
	assert.Equal(t, 2, b.Inflight())

	o1 := c1(ctx)
	o2 := c2(ctx)
	b.Apply(o2)
	b.Apply(o1)

	got, _ := b.Task(id)
	assert.Equal(t, 3, got.Revision)
	assert.Equal(t, "second", got.Learnings)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, 1, b.Stale())
	assert.Zero(t, b.Inflight())
	assert.Equal(t, 3, store.tasks[0].Revision)
}

func TestRecategorizeAcrossBuckets(t *testing.T) {
	b, store := seeded(t, models.TypeMonthly, models.TypeMonthly, models.TypeWeekly)
	ctx := context.Background()
	a, bb, c := b.Tasks()[0].ID, b.Tasks()[1].ID, b.Tasks()[2].ID

	call, err := b.Recategorize(a, models.TypeWeekly, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{bb, a, c}, ids(b.Tasks()))
	assert.Equal(t, []string{a, c}, ids(b.Column(models.TypeWeekly)))
	assert.Equal(t, []string{bb}, ids(b.Column(models.TypeMonthly)))
	require.NoError(t, b.Run(ctx, call))
	assert.Equal(t, models.TypeWeekly, store.tasks[0].Type)

	require.NoError(t, b.Run(ctx, b.Load()))
	got, _ := b.Task(a)
	assert.Equal(t, models.TypeWeekly, got.Type)
	assert.Len(t, b.Column(models.TypeWeekly), 2)
	assert.Len(t, b.Column(models.TypeMonthly), 1)
}

func TestRecategorizeWithinBucket(t *testing.T) {
	b, _ := seeded(t, models.TypeMonthly, models.TypeMonthly, models.TypeMonthly)
	a, bb, c := b.Tasks()[0].ID, b.Tasks()[1].ID, b.Tasks()[2].ID

	_, err := b.Recategorize(a, models.TypeMonthly, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{bb, c, a}, ids(b.Tasks()))
	got, _ := b.Task(a)
	assert.Equal(t, 2, got.Position)

	_, err = b.Recategorize(a, models.TypeMonthly, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{bb, a, c}, ids(b.Tasks()))
	assert.Equal(t, 1, b.ColumnIndex(a))
}

func TestRecategorizeSamePlaceIsNoop(t *testing.T) {
	b, _ := seeded(t, models.TypeMonthly, models.TypeMonthly)
	before := b.Tasks()
	id := before[1].ID

	call, err := b.Recategorize(id, models.TypeMonthly, 1)
	require.NoError(t, err)
	assert.Nil(t, call)
	assert.Equal(t, before, b.Tasks())
	assert.Zero(t, b.Inflight())

	call, err = b.Recategorize(id, models.TypeMonthly, 9)
	require.NoError(t, err)
	assert.Nil(t, call, "past the end of its own bucket stays last")
	assert.NoError(t, b.Run(context.Background(), call))
}

func TestRecategorizeIntoEmptyBucket(t *testing.T) {
	b, _ := seeded(t, models.TypeDaily, models.TypeMonthly)
	id := b.Tasks()[0].ID

	_, err := b.Recategorize(id, models.TypeWeekly, 5)
	require.NoError(t, err)
	tasks := b.Tasks()
	assert.Equal(t, id, tasks[len(tasks)-1].ID)
	got, _ := b.Task(id)
	assert.Equal(t, models.TypeWeekly, got.Type)
	assert.Equal(t, 0, got.Position)
	assert.Empty(t, b.Column(models.TypeDaily))
}

func TestRecategorizeConservesTasks(t *testing.T) {
	b, _ := seeded(t,
		models.TypeMonthly, models.TypeWeekly, models.TypeDaily,
		models.TypeMonthly, models.TypeDaily, models.TypeWeekly,
	)
	moves := []struct {
		idx  int
		to   models.Type
		dest int
	}{
		{0, models.TypeDaily, 1},
		{3, models.TypeWeekly, 0},
		{1, models.TypeMonthly, 4},
		{2, models.TypeDaily, 0},
	}
	for _, m := range moves {
		id := b.Tasks()[m.idx].ID
		_, err := b.Recategorize(id, m.to, m.dest)
		require.NoError(t, err)

		total := 0
		for _, typ := range models.Types() {
			total += len(b.Column(typ))
		}
		assert.Equal(t, 6, total)
		assert.Len(t, b.Tasks(), 6)
		got, _ := b.Task(id)
		assert.Equal(t, m.to, got.Type)

		for _, typ := range models.Types() {
			for i, task := range b.Column(typ) {
				assert.Equal(t, i, task.Position, "%s in %s", task.ID, typ)
			}
		}
	}
}

func TestUnknownTaskAndType(t *testing.T) {
	b, _ := seeded(t, models.TypeMonthly)

	_, err := b.ToggleStatus("nope")
	assert.ErrorIs(t, err, ErrUnknownTask)
	_, err = b.EditLearnings("nope", "x")
	assert.ErrorIs(t, err, ErrUnknownTask)
	_, err = b.DeleteTask("nope")
	assert.ErrorIs(t, err, ErrUnknownTask)
	_, err = b.Recategorize("nope", models.TypeDaily, 0)
	assert.ErrorIs(t, err, ErrUnknownTask)
	_, err = b.Recategorize(b.Tasks()[0].ID, "YEARLY", 0)
	assert.ErrorIs(t, err, ErrInvalidType)
	assert.Zero(t, b.Inflight())
}

func TestResolveID(t *testing.T) {
	b, _ := seeded(t, models.TypeMonthly, models.TypeMonthly)

	id, err := b.ResolveID("task-001")
	require.NoError(t, err)
	assert.Equal(t, "task-001", id)

	_, err = b.ResolveID("task-00")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = b.ResolveID("zzz")
	assert.ErrorIs(t, err, ErrUnknownTask)
}

func TestProgressPercent(t *testing.T) {
	assert.Equal(t, 0, Counts{}.Percent())
	assert.Equal(t, 33, Counts{Total: 3, Completed: 1}.Percent())
	assert.Equal(t, 67, Counts{Total: 3, Completed: 2}.Percent())
	assert.Equal(t, 100, Counts{Total: 2, Completed: 2}.Percent())
}

func TestFormToggle(t *testing.T) {
	b := New(&memStore{})
	b.ToggleForm()
	assert.True(t, b.FormOpen())
	b.SetDraft(Draft{Title: "x", Type: models.TypeDaily})
	b.ToggleForm()
	assert.False(t, b.FormOpen())
	assert.Equal(t, "", b.Draft().Title)
}

func TestBucketProgress(t *testing.T) {
	b, _ := seeded(t, models.TypeMonthly, models.TypeMonthly, models.TypeDaily)
	call, err := b.ToggleStatus(b.Tasks()[0].ID)
	require.NoError(t, err)
	require.NoError(t, b.Run(context.Background(), call))

	assert.Equal(t, Counts{Total: 2, Completed: 1}, b.BucketProgress(models.TypeMonthly))
	assert.Equal(t, Counts{}, b.BucketProgress(models.TypeWeekly))
	assert.Equal(t, Counts{Total: 1}, b.BucketProgress(models.TypeDaily))
	assert.Equal(t, 33, b.Progress().Percent())
}
