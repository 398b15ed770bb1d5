package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusToggleIsInvolution(t *testing.T) {
	for _, s := range []Status{StatusTodo, StatusCompleted} {
		assert.Equal(t, s, s.Toggle().Toggle())
		assert.NotEqual(t, s, s.Toggle())
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, s)

	s, err = ParseStatus(" todo ")
	require.NoError(t, err)
	assert.Equal(t, StatusTodo, s)

	_, err = ParseStatus("archived")
	assert.Error(t, err)
	assert.False(t, Status("archived").Valid())
}

func TestParseType(t *testing.T) {
	cases := map[string]Type{
		"monthly": TypeMonthly,
		"W":       TypeWeekly,
		"day":     TypeDaily,
	}
	for in, want := range cases {
		got, err := ParseType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseType("yearly")
	assert.Error(t, err)
	assert.False(t, Type("YEARLY").Valid())
	assert.Equal(t, -1, Type("YEARLY").Index())
}

func TestTypeNavigationWraps(t *testing.T) {
	assert.Equal(t, TypeWeekly, TypeMonthly.Next())
	assert.Equal(t, TypeMonthly, TypeDaily.Next())
	assert.Equal(t, TypeDaily, TypeMonthly.Prev())
	assert.Equal(t, "Weekly Objectives", TypeWeekly.Label())
	assert.Equal(t, "Daily", TypeDaily.Short())
}

func TestPatchApplyOnlySetFields(t *testing.T) {
	task := Task{Title: "Plan Q1", Description: "desc", Status: StatusTodo, Type: TypeMonthly}
	learnings := "Learned X"
	TaskPatch{Learnings: &learnings}.Apply(&task)

	assert.Equal(t, "Learned X", task.Learnings)
	assert.Equal(t, "Plan Q1", task.Title)
	assert.Equal(t, "desc", task.Description)
	assert.Equal(t, StatusTodo, task.Status)
	assert.Equal(t, TypeMonthly, task.Type)
}

func TestPatchFromTaskCopiesValues(t *testing.T) {
	task := Task{ID: "a", Title: "t", Status: StatusCompleted, Type: TypeDaily, Position: 2}
	p := PatchFromTask(task)
	task.Title = "changed"

	var out Task
	p.Apply(&out)
	assert.Equal(t, "t", out.Title)
	assert.Equal(t, StatusCompleted, out.Status)
	assert.Equal(t, TypeDaily, out.Type)
	assert.Equal(t, 2, out.Position)
	assert.Empty(t, out.ID)
}
