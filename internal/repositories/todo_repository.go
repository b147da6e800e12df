package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"ai-notebook.com/ai-notebook/internal/constants"
	apperrors "ai-notebook.com/ai-notebook/internal/errors"
	"ai-notebook.com/ai-notebook/internal/kv"
	model "ai-notebook.com/ai-notebook/internal/models"
)

const TodosKey = "todos"

type TodoRepository struct {
	base
	items *collection[model.Todo]
}

func NewTodoRepository(store kv.Store, logger *zap.Logger, opts ...Option) *TodoRepository {
	b := newBase(logger, opts)
	return &TodoRepository{
		base:  b,
		items: newCollection[model.Todo](store, TodosKey, b.logger),
	}
}

// List returns todos matching filter, newest first.
func (r *TodoRepository) List(ctx context.Context, filter constants.TodoFilter) ([]model.Todo, error) {
	todos, err := r.items.all(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		switch filter {
		case constants.TodoActive:
			if t.Completed {
				continue
			}
		case constants.TodoCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// All returns every todo in stored order.
func (r *TodoRepository) All(ctx context.Context) ([]model.Todo, error) {
	return r.items.all(ctx)
}

func (r *TodoRepository) Get(ctx context.Context, id string) (*model.Todo, error) {
	todos, err := r.items.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range todos {
		if todos[i].ID == id {
			return &todos[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrTodoNotFound, id)
}

func (r *TodoRepository) Add(ctx context.Context, content string) (*model.Todo, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: todo content is required", apperrors.ErrValidation)
	}

	now := r.timestamp()
	todo := model.Todo{
		ID:        r.newID("todo"),
		Content:   content,
		Priority:  constants.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.items.mutate(ctx, func(todos []model.Todo) ([]model.Todo, error) {
		return append(todos, todo), nil
	})
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *TodoRepository) Toggle(ctx context.Context, id string) (*model.Todo, error) {
	return r.modify(ctx, id, func(t *model.Todo) error {
		t.Completed = !t.Completed
		return nil
	})
}

func (r *TodoRepository) Edit(ctx context.Context, id, content string) (*model.Todo, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: todo content is required", apperrors.ErrValidation)
	}
	return r.modify(ctx, id, func(t *model.Todo) error {
		t.Content = content
		return nil
	})
}

func (r *TodoRepository) SetPriority(ctx context.Context, id string, priority constants.Priority) (*model.Todo, error) {
	if !priority.ValidTodo() {
		return nil, fmt.Errorf("%w: unknown todo priority %q", apperrors.ErrValidation, priority)
	}
	return r.modify(ctx, id, func(t *model.Todo) error {
		t.Priority = priority
		return nil
	})
}

func (r *TodoRepository) Delete(ctx context.Context, id string) error {
	return r.items.mutate(ctx, func(todos []model.Todo) ([]model.Todo, error) {
		kept := make([]model.Todo, 0, len(todos))
		for _, t := range todos {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		if len(kept) == len(todos) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrTodoNotFound, id)
		}
		return kept, nil
	})
}

// ClearCompleted drops every completed todo and returns how many were removed.
func (r *TodoRepository) ClearCompleted(ctx context.Context) (int, error) {
	removed := 0
	err := r.items.mutate(ctx, func(todos []model.Todo) ([]model.Todo, error) {
		kept := make([]model.Todo, 0, len(todos))
		for _, t := range todos {
			if t.Completed {
				continue
			}
			kept = append(kept, t)
		}
		removed = len(todos) - len(kept)
		return kept, nil
	})
	return removed, err
}

func (r *TodoRepository) modify(ctx context.Context, id string, fn func(t *model.Todo) error) (*model.Todo, error) {
	var updated model.Todo
	err := r.items.mutate(ctx, func(todos []model.Todo) ([]model.Todo, error) {
		for i := range todos {
			if todos[i].ID != id {
				continue
			}
			if err := fn(&todos[i]); err != nil {
				return nil, err
			}
			todos[i].UpdatedAt = r.timestamp()
			updated = todos[i]
			return todos, nil
		}
		return nil, fmt.Errorf("%w: %s", apperrors.ErrTodoNotFound, id)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
