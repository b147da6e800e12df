package repository

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ai-notebook.com/ai-notebook/internal/constants"
	apperrors "ai-notebook.com/ai-notebook/internal/errors"
	"ai-notebook.com/ai-notebook/internal/kv"
	model "ai-notebook.com/ai-notebook/internal/models"
)

const ProjectsKey = "projects"

const (
	defaultProjectName        = "New project"
	defaultProjectDescription = "Project description"
)

type ProjectRepository struct {
	base
	items        *collection[model.Project]
	tasks        *TaskRepository
	actingUserID string
}

// NewProjectRepository wires the project collection. Deleting a project
// cascades into tasks; actingUserID becomes owner and first member of new projects.
func NewProjectRepository(
	store kv.Store,
	tasks *TaskRepository,
	actingUserID string,
	logger *zap.Logger,
	opts ...Option,
) *ProjectRepository {
	b := newBase(logger, opts)
	return &ProjectRepository{
		base:         b,
		items:        newCollection[model.Project](store, ProjectsKey, b.logger),
		tasks:        tasks,
		actingUserID: actingUserID,
	}
}

func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	return r.items.all(ctx)
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (*model.Project, error) {
	projects, err := r.items.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrProjectNotFound, id)
}

// Create appends a planning project owned by the acting user, with patch
// applied over the defaults.
func (r *ProjectRepository) Create(ctx context.Context, patch model.ProjectPatch) (*model.Project, error) {
	now := r.timestamp()
	project := model.Project{
		ID:          r.newID(""),
		Name:        defaultProjectName,
		Description: defaultProjectDescription,
		Status:      constants.ProjectPlanning,
		Priority:    constants.PriorityMedium,
		StartDate:   now,
		Progress:    0,
		OwnerID:     r.actingUserID,
		MemberIDs:   []string{r.actingUserID},
		Tags:        []string{},
		Milestones:  []model.Milestone{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := applyProjectPatch(&project, patch); err != nil {
		return nil, err
	}

	err := r.items.mutate(ctx, func(projects []model.Project) ([]model.Project, error) {
		return append(projects, project), nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("project created", zap.String("project_id", project.ID))
	return &project, nil
}

// Update merges patch into the project and refreshes UpdatedAt.
func (r *ProjectRepository) Update(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, error) {
	return r.modify(ctx, id, func(p *model.Project) error {
		return applyProjectPatch(p, patch)
	})
}

// Delete removes the project and every task that belongs to it.
// Members and milestones are not touched.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	err := r.items.mutate(ctx, func(projects []model.Project) ([]model.Project, error) {
		kept := projects[:0]
		found := false
		for _, p := range projects {
			if p.ID == id {
				found = true
				continue
			}
			kept = append(kept, p)
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrProjectNotFound, id)
		}
		return kept, nil
	})
	if err != nil {
		return err
	}

	removed, err := r.tasks.DeleteByProject(ctx, id)
	if err != nil {
		r.logger.Error("project deleted but task cascade failed",
			zap.String("project_id", id),
			zap.Error(err),
		)
		return fmt.Errorf("deleting tasks of project %s: %w", id, err)
	}

	r.logger.Debug("project deleted",
		zap.String("project_id", id),
		zap.Int("tasks_removed", removed),
	)
	return nil
}

// AttachMember appends memberID to the project's member list unless it is already there.
func (r *ProjectRepository) AttachMember(ctx context.Context, projectID, memberID string) (*model.Project, error) {
	return r.modify(ctx, projectID, func(p *model.Project) error {
		if !p.HasMember(memberID) {
			p.MemberIDs = append(p.MemberIDs, memberID)
		}
		return nil
	})
}

// DetachMember removes memberID from every project and reports how many changed.
func (r *ProjectRepository) DetachMember(ctx context.Context, memberID string) (int, error) {
	changed := 0
	err := r.items.mutate(ctx, func(projects []model.Project) ([]model.Project, error) {
		now := r.timestamp()
		for i := range projects {
			if !projects[i].HasMember(memberID) {
				continue
			}
			projects[i].MemberIDs = without(projects[i].MemberIDs, memberID)
			projects[i].UpdatedAt = now
			changed++
		}
		return projects, nil
	})
	return changed, err
}

func (r *ProjectRepository) AddMilestone(
	ctx context.Context,
	projectID string,
	input model.MilestoneInput,
) (*model.Milestone, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: milestone title is required", apperrors.ErrValidation)
	}
	if input.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: milestone due date is required", apperrors.ErrValidation)
	}

	milestone := model.Milestone{
		ID:          r.newID("milestone"),
		ProjectID:   projectID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		DueDate:     input.DueDate.UTC(),
		Status:      constants.MilestonePending,
	}

	_, err := r.modify(ctx, projectID, func(p *model.Project) error {
		p.Milestones = append(p.Milestones, milestone)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &milestone, nil
}

func (r *ProjectRepository) CompleteMilestone(ctx context.Context, projectID, milestoneID string) (*model.Milestone, error) {
	var completed model.Milestone
	_, err := r.modify(ctx, projectID, func(p *model.Project) error {
		for i := range p.Milestones {
			if p.Milestones[i].ID != milestoneID {
				continue
			}
			if p.Milestones[i].Status != constants.MilestoneCompleted {
				now := r.timestamp()
				p.Milestones[i].Status = constants.MilestoneCompleted
				p.Milestones[i].CompletedAt = &now
			}
			completed = p.Milestones[i]
			return nil
		}
		return fmt.Errorf("%w: %s", apperrors.ErrMilestoneNotFound, milestoneID)
	})
	if err != nil {
		return nil, err
	}
	return &completed, nil
}

func (r *ProjectRepository) RemoveMilestone(ctx context.Context, projectID, milestoneID string) error {
	_, err := r.modify(ctx, projectID, func(p *model.Project) error {
		for i := range p.Milestones {
			if p.Milestones[i].ID == milestoneID {
				p.Milestones = append(p.Milestones[:i], p.Milestones[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", apperrors.ErrMilestoneNotFound, milestoneID)
	})
	return err
}

// modify applies fn to one project under the collection lock and stamps UpdatedAt.
func (r *ProjectRepository) modify(ctx context.Context, id string, fn func(p *model.Project) error) (*model.Project, error) {
	var updated model.Project
	err := r.items.mutate(ctx, func(projects []model.Project) ([]model.Project, error) {
		for i := range projects {
			if projects[i].ID != id {
				continue
			}
			if err := fn(&projects[i]); err != nil {
				return nil, err
			}
			projects[i].UpdatedAt = r.timestamp()
			updated = projects[i]
			return projects, nil
		}
		return nil, fmt.Errorf("%w: %s", apperrors.ErrProjectNotFound, id)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func applyProjectPatch(p *model.Project, patch model.ProjectPatch) error {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return fmt.Errorf("%w: project name must not be empty", apperrors.ErrValidation)
		}
		p.Name = name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return fmt.Errorf("%w: unknown project status %q", apperrors.ErrValidation, *patch.Status)
		}
		p.Status = *patch.Status
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return fmt.Errorf("%w: unknown priority %q", apperrors.ErrValidation, *patch.Priority)
		}
		p.Priority = *patch.Priority
	}
	if patch.Progress != nil {
		if *patch.Progress < 0 || *patch.Progress > 100 {
			return fmt.Errorf("%w: progress must be between 0 and 100", apperrors.ErrValidation)
		}
		p.Progress = *patch.Progress
	}
	if patch.StartDate != nil {
		p.StartDate = patch.StartDate.UTC()
	}
	if patch.ClearEndDate {
		p.EndDate = nil
	}
	if patch.EndDate != nil {
		end := patch.EndDate.UTC()
		p.EndDate = &end
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("%w: end date is before start date", apperrors.ErrValidation)
	}
	if patch.OwnerID != nil {
		p.OwnerID = *patch.OwnerID
	}
	if patch.MemberIDs != nil {
		p.MemberIDs = append([]string{}, *patch.MemberIDs...)
	}
	if patch.Tags != nil {
		p.Tags = append([]string{}, *patch.Tags...)
	}
	return nil
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
