package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-notebook.com/ai-notebook/internal/constants"
	apperrors "ai-notebook.com/ai-notebook/internal/errors"
	model "ai-notebook.com/ai-notebook/internal/models"
)

func TestCollection_CorruptStateIsSurfaced(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "malformed json", raw: `{"version":1,"items":[`},
		{name: "wrong shape", raw: `"just a string"`},
		{name: "future version", raw: `{"version":99,"items":[]}`},
		{name: "missing version", raw: `{"items":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, newMemoryStore())
			ctx := context.Background()
			require.NoError(t, f.store.Set(ctx, ProjectsKey, tt.raw))

			_, err := f.projects.List(ctx)
			require.ErrorIs(t, err, apperrors.ErrCorruptState)

			_, err = f.projects.Create(ctx, model.ProjectPatch{})
			require.ErrorIs(t, err, apperrors.ErrCorruptState)

			raw, found, err := f.store.Get(ctx, ProjectsKey)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, tt.raw, raw, "corrupt value must not be overwritten")
		})
	}
}

func TestCollection_LegacyArrayIsMigratedOnWrite(t *testing.T) {
	backends(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		legacy := `[{"id":"p1","name":"Old","status":"active","priority":"low","progress":40,` +
			`"startDate":"2024-01-01T00:00:00Z","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}]`
		require.NoError(t, f.store.Set(ctx, ProjectsKey, legacy))

		projects, err := f.projects.List(ctx)
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, "Old", projects[0].Name)
		assert.Equal(t, constants.ProjectActive, projects[0].Status)

		_, err = f.projects.Update(ctx, "p1", model.ProjectPatch{Progress: ptr(50)})
		require.NoError(t, err)

		raw, _, err := f.store.Get(ctx, ProjectsKey)
		require.NoError(t, err)
		assert.Contains(t, raw, `"version":1`)

		items, err := decodeEnvelope[model.Project](raw)
		require.NoError(t, err)
		assert.Equal(t, 50, items[0].Progress)
	})
}

func TestCollection_RoundTripIsIdempotent(t *testing.T) {
	f := newFixture(t, newMemoryStore())
	ctx := context.Background()

	project, err := f.projects.Create(ctx, model.ProjectPatch{Tags: &[]string{"x"}})
	require.NoError(t, err)
	_, err = f.projects.AddMilestone(ctx, project.ID, model.MilestoneInput{Title: "m", DueDate: baseTime})
	require.NoError(t, err)
	_, err = f.projects.Create(ctx, model.ProjectPatch{EndDate: ptr(baseTime.AddDate(0, 1, 0))})
	require.NoError(t, err)

	before, _, err := f.store.Get(ctx, ProjectsKey)
	require.NoError(t, err)

	err = f.projects.items.mutate(ctx, func(items []model.Project) ([]model.Project, error) {
		return items, nil
	})
	require.NoError(t, err)

	after, _, err := f.store.Get(ctx, ProjectsKey)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCollection_EmptyCollectionEncodesAsArray(t *testing.T) {
	raw, err := encodeEnvelope[model.Task](nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"items":[]}`, raw)
}
