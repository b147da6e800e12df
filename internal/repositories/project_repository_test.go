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

func TestProjectRepository_CreateAppendsPlanningProject(t *testing.T) {
	backends(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()

		before, err := f.projects.List(ctx)
		require.NoError(t, err)

		created, err := f.projects.Create(ctx, model.ProjectPatch{})
		require.NoError(t, err)

		after, err := f.projects.List(ctx)
		require.NoError(t, err)
		require.Len(t, after, len(before)+1)

		stored := after[len(after)-1]
		assert.Equal(t, created.ID, stored.ID)
		assert.Equal(t, constants.ProjectPlanning, stored.Status)
		assert.Equal(t, constants.PriorityMedium, stored.Priority)
		assert.Equal(t, 0, stored.Progress)
		assert.Equal(t, testUserID, stored.OwnerID)
		assert.Equal(t, []string{testUserID}, stored.MemberIDs)
		assert.Equal(t, "New project", stored.Name)
		assert.Empty(t, stored.Tags)
		assert.Empty(t, stored.Milestones)
		assert.False(t, stored.UpdatedAt.Before(stored.CreatedAt))
	})
}

func TestProjectRepository_CreateRejectsInvalidPatch(t *testing.T) {
	start := baseTime
	end := baseTime.Add(-time.Hour)

	tests := []struct {
		name  string
		patch model.ProjectPatch
	}{
		{name: "blank name", patch: model.ProjectPatch{Name: ptr("   ")}},
		{name: "unknown status", patch: model.ProjectPatch{Status: ptr(constants.ProjectStatus("paused"))}},
		{name: "unknown priority", patch: model.ProjectPatch{Priority: ptr(constants.Priority("critical"))}},
		{name: "progress above range", patch: model.ProjectPatch{Progress: ptr(101)}},
		{name: "negative progress", patch: model.ProjectPatch{Progress: ptr(-1)}},
		{name: "end before start", patch: model.ProjectPatch{StartDate: &start, EndDate: &end}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, newMemoryStore())
			ctx := context.Background()

			_, err := f.projects.Create(ctx, tt.patch)
			require.ErrorIs(t, err, apperrors.ErrValidation)

			projects, err := f.projects.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, projects)
		})
	}
}

func TestProjectRepository_UpdateMergesFields(t *testing.T) {
	f := newFixture(t, newMemoryStore())
	ctx := context.Background()

	created, err := f.projects.Create(ctx, model.ProjectPatch{Name: ptr("Launch")})
	require.NoError(t, err)

	updated, err := f.projects.Update(ctx, created.ID, model.ProjectPatch{
		Status:   ptr(constants.ProjectActive),
		Progress: ptr(40),
	})
	require.NoError(t, err)

	assert.Equal(t, "Launch", updated.Name)
	assert.Equal(t, constants.ProjectActive, updated.Status)
	assert.Equal(t, 40, updated.Progress)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	got, err := f.projects.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *updated, *got)
}

func TestProjectRepository_UpdateClearsEndDate(t *testing.T) {
	f := newFixture(t, newMemoryStore())
	ctx := context.Background()

	end := baseTime.Add(72 * time.Hour)
	created, err := f.projects.Create(ctx, model.ProjectPatch{EndDate: &end})
	require.NoError(t, err)
	require.NotNil(t, created.EndDate)

	kept, err := f.projects.Update(ctx, created.ID, model.ProjectPatch{Name: ptr("Renamed")})
	require.NoError(t, err)
	assert.NotNil(t, kept.EndDate, "absent end date leaves it alone")

	cleared, err := f.projects.Update(ctx, created.ID, model.ProjectPatch{ClearEndDate: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.EndDate)

	got, err := f.projects.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.EndDate)
}

func TestProjectRepository_UnknownIDs(t *testing.T) {
	f := newFixture(t, newMemoryStore())
	ctx := context.Background()

	_, err := f.projects.Get(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)

	_, err = f.projects.Update(ctx, "missing", model.ProjectPatch{Name: ptr("x")})
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)

	err = f.projects.Delete(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)
}

func TestProjectRepository_DeleteCascadesTasks(t *testing.T) {
	backends(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()

		doomed, err := f.projects.Create(ctx, model.ProjectPatch{Name: ptr("Doomed")})
		require.NoError(t, err)
		kept, err := f.projects.Create(ctx, model.ProjectPatch{Name: ptr("Kept")})
		require.NoError(t, err)

		_, err = f.tasks.Create(ctx, doomed.ID, model.TaskPatch{Title: ptr("a")})
		require.NoError(t, err)
		_, err = f.tasks.Create(ctx, doomed.ID, model.TaskPatch{Title: ptr("b")})
		require.NoError(t, err)
		survivor, err := f.tasks.Create(ctx, kept.ID, model.TaskPatch{Title: ptr("c")})
		require.NoError(t, err)

		require.NoError(t, f.projects.Delete(ctx, doomed.ID))

		projects, err := f.projects.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{kept.ID}, projectIDs(projects))

		tasks, err := f.tasks.List(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, *survivor, tasks[0])
	})
}

func TestProjectRepository_Milestones(t *testing.T) {
	f := newFixture(t, newMemoryStore())
	ctx := context.Background()

	project, err := f.projects.Create(ctx, model.ProjectPatch{})
	require.NoError(t, err)

	_, err = f.projects.AddMilestone(ctx, project.ID, model.MilestoneInput{DueDate: baseTime})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	milestone, err := f.projects.AddMilestone(ctx, project.ID, model.MilestoneInput{
		Title:   "Beta",
		DueDate: baseTime.Add(72 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.MilestonePending, milestone.Status)
	assert.Equal(t, project.ID, milestone.ProjectID)

	completed, err := f.projects.CompleteMilestone(ctx, project.ID, milestone.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.MilestoneCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)

	_, err = f.projects.CompleteMilestone(ctx, project.ID, "missing")
	assert.ErrorIs(t, err, apperrors.ErrMilestoneNotFound)

	_, err = f.projects.AddMilestone(ctx, "missing", model.MilestoneInput{Title: "x", DueDate: baseTime})
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)

	require.NoError(t, f.projects.RemoveMilestone(ctx, project.ID, milestone.ID))
	got, err := f.projects.Get(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Milestones)

	err = f.projects.RemoveMilestone(ctx, project.ID, milestone.ID)
	assert.ErrorIs(t, err, apperrors.ErrMilestoneNotFound)
}

func TestFilterProjects_KeepsOrder(t *testing.T) {
	projects := []model.Project{
		{ID: "a", Status: constants.ProjectArchived},
		{ID: "b", Status: constants.ProjectActive},
		{ID: "c", Status: constants.ProjectArchived},
		{ID: "d", Status: constants.ProjectPlanning},
		{ID: "e", Status: constants.ProjectArchived},
	}

	assert.Equal(t, []string{"a", "c", "e"}, projectIDs(FilterProjects(projects, "archived")))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, projectIDs(FilterProjects(projects, constants.FilterAll)))
	assert.Empty(t, FilterProjects(projects, "completed"))
}

func TestSortProjects(t *testing.T) {
	day := func(n int) *time.Time {
		d := baseTime.AddDate(0, 0, n)
		return &d
	}

	projects := []model.Project{
		{ID: "a", Name: "Zeta", Priority: constants.PriorityLow, Progress: 10, StartDate: *day(1), EndDate: day(9)},
		{ID: "b", Name: "Alpha", Priority: constants.PriorityUrgent, Progress: 90, StartDate: *day(3)},
		{ID: "c", Name: "Mid", Priority: constants.PriorityMedium, Progress: 50, StartDate: *day(2), EndDate: day(4)},
	}

	tests := []struct {
		key  constants.ProjectSort
		want []string
	}{
		{key: constants.SortByPriority, want: []string{"b", "c", "a"}},
		{key: constants.SortByName, want: []string{"b", "c", "a"}},
		{key: constants.SortByStartDate, want: []string{"b", "c", "a"}},
		{key: constants.SortByEndDate, want: []string{"c", "a", "b"}},
		{key: constants.SortByProgress, want: []string{"b", "c", "a"}},
		{key: "unknown", want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			got := projectIDs(SortProjects(projects, tt.key))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SortProjects(%s) mismatch (-want +got):\n%s", tt.key, diff)
			}
		})
	}

	assert.Equal(t, []string{"a", "b", "c"}, projectIDs(projects), "input must not be reordered")
}
