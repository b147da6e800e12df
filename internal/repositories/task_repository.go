package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"ai-notebook.com/ai-notebook/internal/constants"
	apperrors "ai-notebook.com/ai-notebook/internal/errors"
	"ai-notebook.com/ai-notebook/internal/kv"
	model "ai-notebook.com/ai-notebook/internal/models"
)

// TasksKey holds the tasks of every project in one collection.
const TasksKey = "project-tasks"

type TaskRepository struct {
	base
	items *collection[model.Task]
}

func NewTaskRepository(store kv.Store, logger *zap.Logger, opts ...Option) *TaskRepository {
	b := newBase(logger, opts)
	return &TaskRepository{
		base:  b,
		items: newCollection[model.Task](store, TasksKey, b.logger),
	}
}

func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	return r.items.all(ctx)
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]model.Task, error) {
	tasks, err := r.items.all(ctx)
	if err != nil {
		return nil, err
	}

	scoped := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ProjectID == projectID {
			scoped = append(scoped, t)
		}
	}
	return scoped, nil
}

func (r *TaskRepository) Get(ctx context.Context, id string) (*model.Task, error) {
	tasks, err := r.items.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrTaskNotFound, id)
}

// Create appends a task to the shared collection. Title is required; a task
// created as done is completed on the spot.
func (r *TaskRepository) Create(ctx context.Context, projectID string, fields model.TaskPatch) (*model.Task, error) {
	if fields.Title == nil || strings.TrimSpace(*fields.Title) == "" {
		return nil, fmt.Errorf("%w: task title is required", apperrors.ErrValidation)
	}

	now := r.timestamp()
	task := model.Task{
		ID:           r.newID("task"),
		ProjectID:    projectID,
		Status:       constants.TaskTodo,
		Priority:     constants.PriorityMedium,
		Tags:         []string{},
		Dependencies: []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := r.applyTaskPatch(&task, fields, now); err != nil {
		return nil, err
	}

	err := r.items.mutate(ctx, func(tasks []model.Task) ([]model.Task, error) {
		return append(tasks, task), nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("task created",
		zap.String("task_id", task.ID),
		zap.String("project_id", projectID),
	)
	return &task, nil
}

// Update merges patch into the task. Moving into done forces progress to 100
// and stamps CompletedAt; moving out of done clears CompletedAt.
func (r *TaskRepository) Update(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error) {
	var updated model.Task
	err := r.items.mutate(ctx, func(tasks []model.Task) ([]model.Task, error) {
		for i := range tasks {
			if tasks[i].ID != id {
				continue
			}
			now := r.timestamp()
			if err := r.applyTaskPatch(&tasks[i], patch, now); err != nil {
				return nil, err
			}
			tasks[i].UpdatedAt = now
			updated = tasks[i]
			return tasks, nil
		}
		return nil, fmt.Errorf("%w: %s", apperrors.ErrTaskNotFound, id)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the task and strips its id from every other task's dependencies.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	return r.items.mutate(ctx, func(tasks []model.Task) ([]model.Task, error) {
		kept := make([]model.Task, 0, len(tasks))
		found := false
		for _, t := range tasks {
			if t.ID == id {
				found = true
				continue
			}
			kept = append(kept, t)
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrTaskNotFound, id)
		}

		now := r.timestamp()
		for i := range kept {
			if slices.Contains(kept[i].Dependencies, id) {
				kept[i].Dependencies = without(kept[i].Dependencies, id)
				kept[i].UpdatedAt = now
			}
		}
		return kept, nil
	})
}

// DeleteByProject removes every task of the project and returns how many went.
func (r *TaskRepository) DeleteByProject(ctx context.Context, projectID string) (int, error) {
	removed := 0
	err := r.items.mutate(ctx, func(tasks []model.Task) ([]model.Task, error) {
		gone := make(map[string]struct{})
		kept := make([]model.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.ProjectID == projectID {
				gone[t.ID] = struct{}{}
				continue
			}
			kept = append(kept, t)
		}
		removed = len(gone)
		if removed == 0 {
			return tasks, nil
		}

		now := r.timestamp()
		for i := range kept {
			deps := make([]string, 0, len(kept[i].Dependencies))
			for _, dep := range kept[i].Dependencies {
				if _, ok := gone[dep]; !ok {
					deps = append(deps, dep)
				}
			}
			if len(deps) != len(kept[i].Dependencies) {
				kept[i].Dependencies = deps
				kept[i].UpdatedAt = now
			}
		}
		return kept, nil
	})
	return removed, err
}

// UnassignMember clears memberID from every task assigned to it.
func (r *TaskRepository) UnassignMember(ctx context.Context, memberID string) (int, error) {
	changed := 0
	err := r.items.mutate(ctx, func(tasks []model.Task) ([]model.Task, error) {
		now := r.timestamp()
		for i := range tasks {
			if tasks[i].AssigneeID != nil && *tasks[i].AssigneeID == memberID {
				tasks[i].AssigneeID = nil
				tasks[i].UpdatedAt = now
				changed++
			}
		}
		return tasks, nil
	})
	return changed, err
}

func (r *TaskRepository) applyTaskPatch(t *model.Task, patch model.TaskPatch, now time.Time) error {
	wasDone := t.Status == constants.TaskDone

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return fmt.Errorf("%w: task title must not be empty", apperrors.ErrValidation)
		}
		t.Title = title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return fmt.Errorf("%w: unknown task status %q", apperrors.ErrValidation, *patch.Status)
		}
		t.Status = *patch.Status
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return fmt.Errorf("%w: unknown priority %q", apperrors.ErrValidation, *patch.Priority)
		}
		t.Priority = *patch.Priority
	}
	if patch.AssigneeID != nil {
		if *patch.AssigneeID == "" {
			t.AssigneeID = nil
		} else {
			assignee := *patch.AssigneeID
			t.AssigneeID = &assignee
		}
	}
	if patch.ClearDueDate {
		t.DueDate = nil
	}
	if patch.DueDate != nil {
		due := patch.DueDate.UTC()
		t.DueDate = &due
	}
	if patch.EstimatedHours != nil {
		if *patch.EstimatedHours < 0 {
			return fmt.Errorf("%w: estimated hours must not be negative", apperrors.ErrValidation)
		}
		hours := *patch.EstimatedHours
		t.EstimatedHours = &hours
	}
	if patch.ActualHours != nil {
		if *patch.ActualHours < 0 {
			return fmt.Errorf("%w: actual hours must not be negative", apperrors.ErrValidation)
		}
		hours := *patch.ActualHours
		t.ActualHours = &hours
	}
	if patch.Progress != nil {
		if *patch.Progress < 0 || *patch.Progress > 100 {
			return fmt.Errorf("%w: progress must be between 0 and 100", apperrors.ErrValidation)
		}
		t.Progress = *patch.Progress
	}
	if patch.Tags != nil {
		t.Tags = append([]string{}, *patch.Tags...)
	}
	if patch.Dependencies != nil {
		deps := make([]string, 0, len(*patch.Dependencies))
		for _, dep := range *patch.Dependencies {
			if dep != t.ID && !slices.Contains(deps, dep) {
				deps = append(deps, dep)
			}
		}
		t.Dependencies = deps
	}

	switch isDone := t.Status == constants.TaskDone; {
	case isDone && !wasDone:
		t.Progress = 100
		completed := now
		t.CompletedAt = &completed
	case !isDone && wasDone:
		t.CompletedAt = nil
	}
	return nil
}
