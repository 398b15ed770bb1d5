package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/horizon/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "horizon.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAssignsIDAndDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for _, title := range []string{"Plan Q1", "Ship release", "Read book"} {
		task, err := s.Create(ctx, models.CreateTaskRequest{Title: title})
		require.NoError(t, err)

		assert.NotEmpty(t, task.ID)
		assert.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true

		assert.Equal(t, models.StatusTodo, task.Status)
		assert.Equal(t, models.TypeMonthly, task.Type)
		assert.Equal(t, 1, task.Revision)
	}

	tasks, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 3)
}

func TestCreateValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, models.CreateTaskRequest{Title: "   "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.Create(ctx, models.CreateTaskRequest{Title: "x", Type: "YEARLY"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.Create(ctx, models.CreateTaskRequest{Title: "x", Status: "ARCHIVED"})
	assert.ErrorIs(t, err, ErrValidation)

	tasks, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestListAllKeepsInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"a", "b", "c", "d"} {
		task, err := s.Create(ctx, models.CreateTaskRequest{Title: title})
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}

	// an update must not move the record
	weekly := models.TypeWeekly
	_, err := s.UpdateByID(ctx, ids[0], models.TaskPatch{Type: &weekly})
	require.NoError(t, err)

	tasks, err := s.ListAll(ctx)
	require.NoError(t, err)
	var got []string
	for _, task := range tasks {
		got = append(got, task.ID)
	}
	assert.Equal(t, ids, got)
}

func TestUpdateLearningsLeavesOtherFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, models.CreateTaskRequest{
		Title:       "Plan Q1",
		Description: "quarter goals",
		Content:     "details",
		Type:        models.TypeWeekly,
	})
	require.NoError(t, err)

	learnings := "Learned X"
	updated, err := s.UpdateByID(ctx, created.ID, models.TaskPatch{Learnings: &learnings})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Revision)

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Learned X", got.Learnings)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Description, got.Description)
	assert.Equal(t, created.Content, got.Content)
	assert.Equal(t, created.Status, got.Status)
	assert.Equal(t, created.Type, got.Type)
	assert.Equal(t, created.Position, got.Position)
}

func TestUpdateErrors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	title := "x"
	_, err := s.UpdateByID(ctx, "missing", models.TaskPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)

	created, err := s.Create(ctx, models.CreateTaskRequest{Title: "x"})
	require.NoError(t, err)

	empty := ""
	_, err = s.UpdateByID(ctx, created.ID, models.TaskPatch{Title: &empty})
	assert.ErrorIs(t, err, ErrValidation)

	bad := models.Status("")
	_, err = s.UpdateByID(ctx, created.ID, models.TaskPatch{Status: &bad})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteThenListExcludes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	keep, err := s.Create(ctx, models.CreateTaskRequest{Title: "keep"})
	require.NoError(t, err)
	gone, err := s.Create(ctx, models.CreateTaskRequest{Title: "gone"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteByID(ctx, gone.ID))

	tasks, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, keep.ID, tasks[0].ID)

	assert.ErrorIs(t, s.DeleteByID(ctx, gone.ID), ErrNotFound)
}

func TestListOrderedGroupsByBucketAndPosition(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mk := func(title string, typ models.Type) string {
		task, err := s.Create(ctx, models.CreateTaskRequest{Title: title, Type: typ})
		require.NoError(t, err)
		return task.ID
	}
	d0 := mk("daily", models.TypeDaily)
	w1 := mk("weekly-1", models.TypeWeekly)
	m0 := mk("monthly", models.TypeMonthly)
	w0 := mk("weekly-0", models.TypeWeekly)

	top := 0
	_, err := s.UpdateByID(ctx, w0, models.TaskPatch{Position: &top})
	require.NoError(t, err)

	tasks, err := s.ListOrdered(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{m0, w0, w1, d0}, taskIDs(tasks))
}

func TestCreateAppendsToBucket(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, typ := range []models.Type{models.TypeWeekly, models.TypeDaily, models.TypeWeekly, models.TypeWeekly} {
		task, err := s.Create(ctx, models.CreateTaskRequest{Title: "t", Type: typ})
		require.NoError(t, err)
		want := map[int]int{0: 0, 1: 0, 2: 1, 3: 2}[i]
		assert.Equal(t, want, task.Position, "task %d", i)
	}
}

func TestMoveKeepsBucketsDense(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, err := s.Create(ctx, models.CreateTaskRequest{Title: "a", Type: models.TypeWeekly})
	require.NoError(t, err)
	b, err := s.Create(ctx, models.CreateTaskRequest{Title: "b", Type: models.TypeWeekly})
	require.NoError(t, err)
	c, err := s.Create(ctx, models.CreateTaskRequest{Title: "c", Type: models.TypeMonthly})
	require.NoError(t, err)
	d, err := s.Create(ctx, models.CreateTaskRequest{Title: "d", Type: models.TypeMonthly})
	require.NoError(t, err)

	weekly, top := models.TypeWeekly, 0
	moved, err := s.UpdateByID(ctx, c.ID, models.TaskPatch{Type: &weekly, Position: &top})
	require.NoError(t, err)
	assert.Equal(t, 0, moved.Position)

	positions := map[string]int{}
	tasks, err := s.ListOrdered(ctx)
	require.NoError(t, err)
	for _, task := range tasks {
		positions[task.ID] = task.Position
	}
	assert.Equal(t, map[string]int{c.ID: 0, a.ID: 1, b.ID: 2, d.ID: 0}, positions)
	assert.Equal(t, []string{d.ID, c.ID, a.ID, b.ID}, taskIDs(tasks))

	// Past the end clamps to the last slot
	far := 10
	moved, err = s.UpdateByID(ctx, c.ID, models.TaskPatch{Position: &far})
	require.NoError(t, err)
	assert.Equal(t, 2, moved.Position)

	require.NoError(t, s.DeleteByID(ctx, a.ID))
	got, err := s.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Position)
	got, err = s.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Position)
}

func taskIDs(tasks []models.Task) []string {
	var ids []string
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}
