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

const MembersKey = "project-members"

type MemberRepository struct {
	base
	items    *collection[model.Member]
	projects *ProjectRepository
	tasks    *TaskRepository
}

func NewMemberRepository(
	store kv.Store,
	projects *ProjectRepository,
	tasks *TaskRepository,
	logger *zap.Logger,
	opts ...Option,
) *MemberRepository {
	b := newBase(logger, opts)
	return &MemberRepository{
		base:     b,
		items:    newCollection[model.Member](store, MembersKey, b.logger),
		projects: projects,
		tasks:    tasks,
	}
}

func (r *MemberRepository) List(ctx context.Context) ([]model.Member, error) {
	return r.items.all(ctx)
}

func (r *MemberRepository) Get(ctx context.Context, id string) (*model.Member, error) {
	members, err := r.items.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range members {
		if members[i].ID == id {
			return &members[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrMemberNotFound, id)
}

// ListByProject resolves the project's memberIds in order. Ids with no
// member record are skipped.
func (r *MemberRepository) ListByProject(ctx context.Context, projectID string) ([]model.Member, error) {
	project, err := r.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	members, err := r.items.all(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	out := make([]model.Member, 0, len(project.MemberIDs))
	for _, id := range project.MemberIDs {
		if m, ok := byID[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// Add stores a new member and attaches it to the project. If attaching
// fails the member record is removed again.
func (r *MemberRepository) Add(ctx context.Context, projectID string, input model.MemberInput) (*model.Member, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" {
		return nil, fmt.Errorf("%w: member name is required", apperrors.ErrValidation)
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid member email is required", apperrors.ErrValidation)
	}
	role := input.Role
	if role == "" {
		role = constants.RoleMember
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}

	if _, err := r.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}

	member := model.Member{
		ID:       r.newID("member"),
		Name:     name,
		Email:    email,
		Role:     role,
		Avatar:   input.Avatar,
		JoinedAt: r.timestamp(),
	}

	err := r.items.mutate(ctx, func(members []model.Member) ([]model.Member, error) {
		return append(members, member), nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := r.projects.AttachMember(ctx, projectID, member.ID); err != nil {
		if rbErr := r.deleteRecord(ctx, member.ID); rbErr != nil {
			r.logger.Error("rolling back member failed",
				zap.String("member_id", member.ID),
				zap.Error(rbErr),
			)
		}
		return nil, err
	}

	r.logger.Debug("member added",
		zap.String("member_id", member.ID),
		zap.String("project_id", projectID),
	)
	return &member, nil
}

// Remove deletes the member, detaches it from every project and unassigns
// its tasks. Owners are not protected here.
func (r *MemberRepository) Remove(ctx context.Context, memberID string) error {
	if err := r.deleteRecord(ctx, memberID); err != nil {
		return err
	}

	projectsChanged, err := r.projects.DetachMember(ctx, memberID)
	if err != nil {
		return fmt.Errorf("detaching member %s: %w", memberID, err)
	}
	tasksChanged, err := r.tasks.UnassignMember(ctx, memberID)
	if err != nil {
		return fmt.Errorf("unassigning member %s: %w", memberID, err)
	}

	r.logger.Debug("member removed",
		zap.String("member_id", memberID),
		zap.Int("projects_changed", projectsChanged),
		zap.Int("tasks_changed", tasksChanged),
	)
	return nil
}

// EnsureMember inserts member unless a record with the same id exists.
func (r *MemberRepository) EnsureMember(ctx context.Context, member model.Member) error {
	return r.items.mutate(ctx, func(members []model.Member) ([]model.Member, error) {
		for _, m := range members {
			if m.ID == member.ID {
				return members, nil
			}
		}
		if member.JoinedAt.IsZero() {
			member.JoinedAt = r.timestamp()
		}
		return append(members, member), nil
	})
}

func (r *MemberRepository) deleteRecord(ctx context.Context, id string) error {
	return r.items.mutate(ctx, func(members []model.Member) ([]model.Member, error) {
		kept := make([]model.Member, 0, len(members))
		for _, m := range members {
			if m.ID != id {
				kept = append(kept, m)
			}
		}
		if len(kept) == len(members) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrMemberNotFound, id)
		}
		return kept, nil
	})
}

