package services

import (
	"context"
	"fmt"
	"strings"

	"ai-notebook.com/ai-notebook/internal/constants"
	apperrors "ai-notebook.com/ai-notebook/internal/errors"
	model "ai-notebook.com/ai-notebook/internal/models"
	repository "ai-notebook.com/ai-notebook/internal/repositories"
	"ai-notebook.com/ai-notebook/internal/stats"
)

type TodoListing struct {
	Todos []model.Todo      `json:"todos"`
	Stats stats.TodoSummary `json:"stats"`
}

// TodoUpdate edits content and priority; nil fields are left alone.
type TodoUpdate struct {
	Content  *string             `json:"content,omitempty"`
	Priority *constants.Priority `json:"priority,omitempty"`
}

type TodoService struct {
	todos *repository.TodoRepository
}

func NewTodoService(todos *repository.TodoRepository) *TodoService {
	return &TodoService{todos: todos}
}

// List returns the filtered todos; stats always cover the whole list.
func (s *TodoService) List(ctx context.Context, filter constants.TodoFilter) (*TodoListing, error) {
	all, err := s.todos.All(ctx)
	if err != nil {
		return nil, err
	}
	visible, err := s.todos.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &TodoListing{Todos: visible, Stats: stats.TodoStats(all)}, nil
}

func (s *TodoService) Add(ctx context.Context, content string) (*model.Todo, error) {
	return s.todos.Add(ctx, content)
}

func (s *TodoService) Update(ctx context.Context, id string, update TodoUpdate) (*model.Todo, error) {
	if update.Priority != nil && !update.Priority.ValidTodo() {
		return nil, fmt.Errorf("%w: unknown todo priority %q", apperrors.ErrValidation, *update.Priority)
	}

	var (
		todo *model.Todo
		err  error
	)
	if update.Content != nil {
		if todo, err = s.todos.Edit(ctx, id, *update.Content); err != nil {
			return nil, err
		}
	}
	if update.Priority != nil {
		if todo, err = s.todos.SetPriority(ctx, id, *update.Priority); err != nil {
			return nil, err
		}
	}
	if todo == nil {
		return s.todos.Get(ctx, id)
	}
	return todo, nil
}

func (s *TodoService) Toggle(ctx context.Context, id string) (*model.Todo, error) {
	return s.todos.Toggle(ctx, id)
}

func (s *TodoService) Delete(ctx context.Context, id string) error {
	return s.todos.Delete(ctx, id)
}

func (s *TodoService) ClearCompleted(ctx context.Context) (int, error) {
	return s.todos.ClearCompleted(ctx)
}

type NoteService struct {
	notes *repository.NoteRepository
}

func NewNoteService(notes *repository.NoteRepository) *NoteService {
	return &NoteService{notes: notes}
}

func (s *NoteService) List(ctx context.Context, query string) ([]model.Note, error) {
	if strings.TrimSpace(query) == "" {
		return s.notes.List(ctx)
	}
	return s.notes.Search(ctx, query)
}

func (s *NoteService) Get(ctx context.Context, id string) (*model.Note, error) {
	return s.notes.Get(ctx, id)
}

func (s *NoteService) Create(ctx context.Context, patch model.NotePatch) (*model.Note, error) {
	return s.notes.Create(ctx, patch)
}

func (s *NoteService) Update(ctx context.Context, id string, patch model.NotePatch) (*model.Note, error) {
	return s.notes.Update(ctx, id, patch)
}

func (s *NoteService) Delete(ctx context.Context, id string) error {
	return s.notes.Delete(ctx, id)
}
