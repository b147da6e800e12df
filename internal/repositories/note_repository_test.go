package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ai-notebook.com/ai-notebook/internal/errors"
	model "ai-notebook.com/ai-notebook/internal/models"
)

func TestNoteRepository_CreatePrepends(t *testing.T) {
	f := newFixture(t, newMemoryStore())
	ctx := context.Background()

	older, err := f.notes.Create(ctx, model.NotePatch{Title: ptr("Older")})
	require.NoError(t, err)
	newer, err := f.notes.Create(ctx, model.NotePatch{})
	require.NoError(t, err)
	assert.Equal(t, "", newer.Title)
	assert.Empty(t, newer.Tags)

	notes, err := f.notes.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, newer.ID, notes[0].ID)
	assert.Equal(t, older.ID, notes[1].ID)
}

func TestNoteRepository_Search(t *testing.T) {
	f := newFixture(t, newMemoryStore())
	ctx := context.Background()

	recipe, err := f.notes.Create(ctx, model.NotePatch{Title: ptr("Pasta"), Content: ptr("boil water")})
	require.NoError(t, err)
	meeting, err := f.notes.Create(ctx, model.NotePatch{Title: ptr("Standup"), Tags: &[]string{"Work"}})
	require.NoError(t, err)

	tests := []struct {
		term string
		want []string
	}{
		{term: "pasta", want: []string{recipe.ID}},
		{term: "WATER", want: []string{recipe.ID}},
		{term: "work", want: []string{meeting.ID}},
		{term: "  ", want: []string{meeting.ID, recipe.ID}},
		{term: "nothing", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got, err := f.notes.Search(ctx, tt.term)
			require.NoError(t, err)
			ids := make([]string, 0, len(got))
			for _, n := range got {
				ids = append(ids, n.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestNoteRepository_UpdateAndDelete(t *testing.T) {
	f := newFixture(t, newMemoryStore())
	ctx := context.Background()

	note, err := f.notes.Create(ctx, model.NotePatch{Title: ptr("Draft")})
	require.NoError(t, err)

	updated, err := f.notes.Update(ctx, note.ID, model.NotePatch{Content: ptr("body"), Tags: &[]string{"a"}})
	require.NoError(t, err)
	assert.Equal(t, "Draft", updated.Title)
	assert.Equal(t, "body", updated.Content)
	assert.Equal(t, []string{"a"}, updated.Tags)
	assert.True(t, updated.UpdatedAt.After(note.UpdatedAt))

	_, err = f.notes.Update(ctx, "missing", model.NotePatch{})
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)

	require.NoError(t, f.notes.Delete(ctx, note.ID))
	_, err = f.notes.Get(ctx, note.ID)
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
}
