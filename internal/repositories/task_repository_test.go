package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-notebook.com/ai-notebook/internal/constants"
	apperrors "ai-notebook.com/ai-notebook/internal/errors"
	model "ai-notebook.com/ai-notebook/internal/models"
)

func TestTaskRepository_CreateDefaults(t *testing.T) {
	f := newFixture(t, newMemoryStore())
	ctx := context.Background()

	task, err := f.tasks.Create(ctx, "p1", model.TaskPatch{Title: ptr("  Write docs  ")})
	require.NoError(t, err)

	assert.Equal(t, "Write docs", task.Title)
	assert.Equal(t, "p1", task.ProjectID)
	assert.Equal(t, constants.TaskTodo, task.Status)
	assert.Equal(t, constants.PriorityMedium, task.Priority)
	assert.Equal(t, 0, task.Progress)
	assert.Nil(t, task.CompletedAt)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)

	_, err = f.tasks.Create(ctx, "p1", model.TaskPatch{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = f.tasks.Create(ctx, "p1", model.TaskPatch{Title: ptr(" ")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTaskRepository_CreateAsDoneCompletes(t *testing.T) {
	f := newFixture(t, newMemoryStore())

	task, err := f.tasks.Create(context.Background(), "p1", model.TaskPatch{
		Title:    ptr("Already shipped"),
		Status:   ptr(constants.TaskDone),
		Progress: ptr(20),
	})
	require.NoError(t, err)
	assert.Equal(t, 100, task.Progress)
	assert.NotNil(t, task.CompletedAt)
}

func TestTaskRepository_DoneTransitionForcesProgress(t *testing.T) {
	backends(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()

		task, err := f.tasks.Create(ctx, "p1", model.TaskPatch{Title: ptr("Ship")})
		require.NoError(t, err)

		done, err := f.tasks.Update(ctx, task.ID, model.TaskPatch{
			Status:   ptr(constants.TaskDone),
			Progress: ptr(30),
		})
		require.NoError(t, err)
		assert.Equal(t, 100, done.Progress)
		require.NotNil(t, done.CompletedAt)
		assert.True(t, done.UpdatedAt.After(task.UpdatedAt))

		stored, err := f.tasks.Get(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, 100, stored.Progress)
		require.NotNil(t, stored.CompletedAt)
		assert.True(t, stored.CompletedAt.Equal(*done.CompletedAt))

		reopened, err := f.tasks.Update(ctx, task.ID, model.TaskPatch{Status: ptr(constants.TaskReview)})
		require.NoError(t, err)
		assert.Nil(t, reopened.CompletedAt)
		assert.Equal(t, 100, reopened.Progress)
	})
}

func TestTaskRepository_UpdateStaysDoneKeepsCompletion(t *testing.T) {
	f := newFixture(t, newMemoryStore())
	ctx := context.Background()

	task, err := f.tasks.Create(ctx, "p1", model.TaskPatch{Title: ptr("Ship"), Status: ptr(constants.TaskDone)})
	require.NoError(t, err)

	updated, err := f.tasks.Update(ctx, task.ID, model.TaskPatch{Description: ptr("notes")})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.True(t, updated.CompletedAt.Equal(*task.CompletedAt))
}

func TestTaskRepository_UpdateValidation(t *testing.T) {
	f := newFixture(t, newMemoryStore())
	ctx := context.Background()

	task, err := f.tasks.Create(ctx, "p1", model.TaskPatch{Title: ptr("Ship")})
	require.NoError(t, err)

	tests := []struct {
		name  string
		patch model.TaskPatch
	}{
		{name: "blank title", patch: model.TaskPatch{Title: ptr("")}},
		{name: "unknown status", patch: model.TaskPatch{Status: ptr(constants.TaskStatus("blocked"))}},
		{name: "progress out of range", patch: model.TaskPatch{Progress: ptr(150)}},
		{name: "negative hours", patch: model.TaskPatch{ActualHours: ptr(-2.0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.tasks.Update(ctx, task.ID, tt.patch)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}

	stored, err := f.tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, *task, *stored)

	_, err = f.tasks.Update(ctx, "missing", model.TaskPatch{Title: ptr("x")})
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
}

func TestTaskRepository_AssigneeCanBeCleared(t *testing.T) {
	f := newFixture(t, newMemoryStore())
	ctx := context.Background()

	task, err := f.tasks.Create(ctx, "p1", model.TaskPatch{Title: ptr("Ship"), AssigneeID: ptr("m1")})
	require.NoError(t, err)
	require.NotNil(t, task.AssigneeID)
	assert.Equal(t, "m1", *task.AssigneeID)

	cleared, err := f.tasks.Update(ctx, task.ID, model.TaskPatch{AssigneeID: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, cleared.AssigneeID)
}

func TestTaskRepository_DueDateCanBeCleared(t *testing.T) {
	f := newFixture(t, newMemoryStore())
	ctx := context.Background()

	due := baseTime.Add(24 * time.Hour)
	task, err := f.tasks.Create(ctx, "p1", model.TaskPatch{Title: ptr("Ship"), DueDate: &due})
	require.NoError(t, err)
	require.NotNil(t, task.DueDate)

	cleared, err := f.tasks.Update(ctx, task.ID, model.TaskPatch{ClearDueDate: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.DueDate)
}

func TestTaskRepository_DeleteCleansDependencies(t *testing.T) {
	backends(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()

		t2, err := f.tasks.Create(ctx, "p1", model.TaskPatch{Title: ptr("t2")})
		require.NoError(t, err)
		t1, err := f.tasks.Create(ctx, "p1", model.TaskPatch{
			Title:        ptr("t1"),
			Dependencies: &[]string{t2.ID},
		})
		require.NoError(t, err)
		require.Equal(t, []string{t2.ID}, t1.Dependencies)

		require.NoError(t, f.tasks.Delete(ctx, t2.ID))

		remaining, err := f.tasks.Get(ctx, t1.ID)
		require.NoError(t, err)
		assert.Empty(t, remaining.Dependencies)

		assert.ErrorIs(t, f.tasks.Delete(ctx, t2.ID), apperrors.ErrTaskNotFound)
	})
}

func TestTaskRepository_DeleteByProjectTouchesOnlyChangedTasks(t *testing.T) {
	backends(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()

		doomed, err := f.tasks.Create(ctx, "p1", model.TaskPatch{Title: ptr("doomed")})
		require.NoError(t, err)
		dependent, err := f.tasks.Create(ctx, "p2", model.TaskPatch{
			Title:        ptr("dependent"),
			Dependencies: &[]string{doomed.ID, "elsewhere"},
		})
		require.NoError(t, err)
		bystander, err := f.tasks.Create(ctx, "p2", model.TaskPatch{Title: ptr("bystander")})
		require.NoError(t, err)

		removed, err := f.tasks.DeleteByProject(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		got, err := f.tasks.Get(ctx, dependent.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"elsewhere"}, got.Dependencies)
		assert.True(t, got.UpdatedAt.After(dependent.UpdatedAt), "dependency cleanup must refresh UpdatedAt")

		untouched, err := f.tasks.Get(ctx, bystander.ID)
		require.NoError(t, err)
		assert.True(t, untouched.UpdatedAt.Equal(bystander.UpdatedAt))
	})
}

func TestTaskRepository_DependenciesAreDeduplicated(t *testing.T) {
	f := newFixture(t, newMemoryStore())
	ctx := context.Background()

	task, err := f.tasks.Create(ctx, "p1", model.TaskPatch{Title: ptr("t")})
	require.NoError(t, err)

	updated, err := f.tasks.Update(ctx, task.ID, model.TaskPatch{
		Dependencies: &[]string{"a", "b", "a", task.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, updated.Dependencies)
}

func TestTaskRepository_ListByProjectKeepsOtherProjects(t *testing.T) {
	f := newFixture(t, newMemoryStore())
	ctx := context.Background()

	a, err := f.tasks.Create(ctx, "p1", model.TaskPatch{Title: ptr("a")})
	require.NoError(t, err)
	b, err := f.tasks.Create(ctx, "p2", model.TaskPatch{Title: ptr("b")})
	require.NoError(t, err)
	c, err := f.tasks.Create(ctx, "p1", model.TaskPatch{Title: ptr("c")})
	require.NoError(t, err)

	_, err = f.tasks.Update(ctx, a.ID, model.TaskPatch{Progress: ptr(10)})
	require.NoError(t, err)

	scoped, err := f.tasks.ListByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, c.ID}, taskIDs(scoped))

	all, err := f.tasks.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, taskIDs(all))
}

func TestTaskRepository_UnassignMember(t *testing.T) {
	f := newFixture(t, newMemoryStore())
	ctx := context.Background()

	a, err := f.tasks.Create(ctx, "p1", model.TaskPatch{Title: ptr("a"), AssigneeID: ptr("m1")})
	require.NoError(t, err)
	b, err := f.tasks.Create(ctx, "p2", model.TaskPatch{Title: ptr("b"), AssigneeID: ptr("m2")})
	require.NoError(t, err)

	changed, err := f.tasks.UnassignMember(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	got, err := f.tasks.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AssigneeID)

	got, err = f.tasks.Get(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AssigneeID)
	assert.Equal(t, "m2", *got.AssigneeID)
}

func TestFilterAndSortTasks(t *testing.T) {
	due := func(days int) *time.Time {
		d := baseTime.AddDate(0, 0, days)
		return &d
	}

	tasks := []model.Task{
		{ID: "t1", Status: constants.TaskTodo, Priority: constants.PriorityLow, Progress: 0,
			CreatedAt: baseTime, UpdatedAt: baseTime.Add(5 * time.Hour)},
		{ID: "t2", Status: constants.TaskDone, Priority: constants.PriorityUrgent, Progress: 100, DueDate: due(5),
			CreatedAt: baseTime.Add(time.Hour), UpdatedAt: baseTime.Add(time.Hour)},
		{ID: "t3", Status: constants.TaskTodo, Priority: constants.PriorityHigh, Progress: 40, DueDate: due(2),
			CreatedAt: baseTime.Add(2 * time.Hour), UpdatedAt: baseTime.Add(3 * time.Hour)},
	}

	assert.Equal(t, []string{"t1", "t3"}, taskIDs(FilterTasks(tasks, "todo")))
	assert.Equal(t, []string{"t1", "t2", "t3"}, taskIDs(FilterTasks(tasks, "all")))

	tests := []struct {
		key  constants.TaskSort
		want []string
	}{
		{key: constants.TaskSortCreated, want: []string{"t3", "t2", "t1"}},
		{key: constants.TaskSortUpdated, want: []string{"t1", "t3", "t2"}},
		{key: constants.TaskSortPriority, want: []string{"t2", "t3", "t1"}},
		{key: constants.TaskSortDueDate, want: []string{"t3", "t2", "t1"}},
		{key: constants.TaskSortProgress, want: []string{"t2", "t3", "t1"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, taskIDs(SortTasks(tasks, tt.key))); diff != "" {
				t.Errorf("SortTasks(%s) mismatch (-want +got):\n%s", tt.key, diff)
			}
		})
	}
}
