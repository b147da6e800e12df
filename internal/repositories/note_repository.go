package repository

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	apperrors "ai-notebook.com/ai-notebook/internal/errors"
	"ai-notebook.com/ai-notebook/internal/kv"
	model "ai-notebook.com/ai-notebook/internal/models"
)

const NotesKey = "notes"

type NoteRepository struct {
	base
	items *collection[model.Note]
}

func NewNoteRepository(store kv.Store, logger *zap.Logger, opts ...Option) *NoteRepository {
	b := newBase(logger, opts)
	return &NoteRepository{
		base:  b,
		items: newCollection[model.Note](store, NotesKey, b.logger),
	}
}

// List returns notes newest first, the order they are stored in.
func (r *NoteRepository) List(ctx context.Context) ([]model.Note, error) {
	return r.items.all(ctx)
}

// Search matches term case-insensitively against title, content and tags.
// A blank term returns every note.
func (r *NoteRepository) Search(ctx context.Context, term string) ([]model.Note, error) {
	notes, err := r.items.all(ctx)
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return notes, nil
	}

	out := make([]model.Note, 0, len(notes))
	for _, n := range notes {
		if noteMatches(n, term) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *NoteRepository) Get(ctx context.Context, id string) (*model.Note, error) {
	notes, err := r.items.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range notes {
		if notes[i].ID == id {
			return &notes[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrNoteNotFound, id)
}

// Create prepends a note. Title and content may be empty.
func (r *NoteRepository) Create(ctx context.Context, patch model.NotePatch) (*model.Note, error) {
	now := r.timestamp()
	note := model.Note{
		ID:        r.newID("note"),
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyNotePatch(&note, patch)

	err := r.items.mutate(ctx, func(notes []model.Note) ([]model.Note, error) {
		return append([]model.Note{note}, notes...), nil
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *NoteRepository) Update(ctx context.Context, id string, patch model.NotePatch) (*model.Note, error) {
	var updated model.Note
	err := r.items.mutate(ctx, func(notes []model.Note) ([]model.Note, error) {
		for i := range notes {
			if notes[i].ID != id {
				continue
			}
			applyNotePatch(&notes[i], patch)
			notes[i].UpdatedAt = r.timestamp()
			updated = notes[i]
			return notes, nil
		}
		return nil, fmt.Errorf("%w: %s", apperrors.ErrNoteNotFound, id)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	return r.items.mutate(ctx, func(notes []model.Note) ([]model.Note, error) {
		kept := make([]model.Note, 0, len(notes))
		for _, n := range notes {
			if n.ID != id {
				kept = append(kept, n)
			}
		}
		if len(kept) == len(notes) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNoteNotFound, id)
		}
		return kept, nil
	})
}

func applyNotePatch(n *model.Note, patch model.NotePatch) {
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
	if patch.Tags != nil {
		n.Tags = append([]string{}, *patch.Tags...)
	}
}

func noteMatches(n model.Note, term string) bool {
	if strings.Contains(strings.ToLower(n.Title), term) ||
		strings.Contains(strings.ToLower(n.Content), term) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
