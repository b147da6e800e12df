package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ai-notebook.com/ai-notebook/internal/constants"
	apperrors "ai-notebook.com/ai-notebook/internal/errors"
	model "ai-notebook.com/ai-notebook/internal/models"
	repository "ai-notebook.com/ai-notebook/internal/repositories"
	"ai-notebook.com/ai-notebook/internal/stats"
)

type ProjectListing struct {
	Count    int                  `json:"count"`
	Projects []model.Project      `json:"projects"`
	Stats    stats.ProjectSummary `json:"stats"`
}

type ProjectDetail struct {
	Project model.Project     `json:"project"`
	Tasks   []model.Task      `json:"tasks"`
	Members []model.Member    `json:"members"`
	Stats   stats.TaskSummary `json:"stats"`
}

type TaskListing struct {
	Count int               `json:"count"`
	Tasks []model.Task      `json:"tasks"`
	Stats stats.TaskSummary `json:"stats"`
}

// ProjectOverview pairs a project with the stats of its tasks.
type ProjectOverview struct {
	ID     string                  `json:"id"`
	Name   string                  `json:"name"`
	Status constants.ProjectStatus `json:"status"`
	Tasks  stats.TaskSummary       `json:"tasks"`
}

type Overview struct {
	Projects   stats.ProjectSummary `json:"projects"`
	PerProject []ProjectOverview    `json:"perProject"`
}

type ProjectService struct {
	projects *repository.ProjectRepository
	tasks    *repository.TaskRepository
	members  *repository.MemberRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewProjectService(
	projects *repository.ProjectRepository,
	tasks *repository.TaskRepository,
	members *repository.MemberRepository,
	logger *zap.Logger,
) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{
		projects: projects,
		tasks:    tasks,
		members:  members,
		logger:   logger,
		now:      time.Now,
	}
}

// ListProjects filters by status, then sorts. Stats cover every project,
// not just the filtered ones.
func (s *ProjectService) ListProjects(ctx context.Context, status string, sortKey constants.ProjectSort) (*ProjectListing, error) {
	all, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}

	visible := repository.SortProjects(repository.FilterProjects(all, status), sortKey)
	return &ProjectListing{
		Count:    len(visible),
		Projects: visible,
		Stats:    stats.ProjectStats(all, s.now()),
	}, nil
}

func (s *ProjectService) CreateProject(ctx context.Context, patch model.ProjectPatch) (*model.Project, error) {
	return s.projects.Create(ctx, patch)
}

func (s *ProjectService) GetProject(ctx context.Context, id string) (*ProjectDetail, error) {
	project, err := s.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	members, err := s.members.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ProjectDetail{
		Project: *project,
		Tasks:   tasks,
		Members: members,
		Stats:   stats.TaskStats(tasks, s.now()),
	}, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, error) {
	return s.projects.Update(ctx, id, patch)
}

func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("project deleted", zap.String("project_id", id))
	return nil
}

func (s *ProjectService) AddMilestone(ctx context.Context, projectID string, input model.MilestoneInput) (*model.Milestone, error) {
	return s.projects.AddMilestone(ctx, projectID, input)
}

func (s *ProjectService) CompleteMilestone(ctx context.Context, projectID, milestoneID string) (*model.Milestone, error) {
	return s.projects.CompleteMilestone(ctx, projectID, milestoneID)
}

func (s *ProjectService) RemoveMilestone(ctx context.Context, projectID, milestoneID string) error {
	return s.projects.RemoveMilestone(ctx, projectID, milestoneID)
}

func (s *ProjectService) Board(ctx context.Context, projectID string) ([]stats.Column, error) {
	tasks, err := s.projectTasks(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return stats.Board(tasks), nil
}

func (s *ProjectService) Timeline(ctx context.Context, projectID string) ([]stats.Event, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return stats.Timeline(*project, tasks), nil
}

func (s *ProjectService) ListTasks(
	ctx context.Context,
	projectID string,
	status string,
	sortKey constants.TaskSort,
) (*TaskListing, error) {
	tasks, err := s.projectTasks(ctx, projectID)
	if err != nil {
		return nil, err
	}

	visible := repository.SortTasks(repository.FilterTasks(tasks, status), sortKey)
	return &TaskListing{
		Count: len(visible),
		Tasks: visible,
		Stats: stats.TaskStats(tasks, s.now()),
	}, nil
}

// CreateTask adds a task to an existing project. A project deleted while the
// task was being written has already run its cascade, so the task is removed
// again and the caller sees ErrProjectNotFound.
func (s *ProjectService) CreateTask(ctx context.Context, projectID string, fields model.TaskPatch) (*model.Task, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}

	task, err := s.tasks.Create(ctx, projectID, fields)
	if err != nil {
		return nil, err
	}

	if _, err := s.projects.Get(ctx, projectID); err != nil {
		if !errors.Is(err, apperrors.ErrProjectNotFound) {
			return nil, err
		}
		if delErr := s.tasks.Delete(ctx, task.ID); delErr != nil && !errors.Is(delErr, apperrors.ErrTaskNotFound) {
			s.logger.Error("removing task of deleted project failed",
				zap.String("task_id", task.ID),
				zap.String("project_id", projectID),
				zap.Error(delErr),
			)
			return nil, fmt.Errorf("removing task of deleted project %s: %w", projectID, delErr)
		}
		s.logger.Warn("project deleted while task was created",
			zap.String("task_id", task.ID),
			zap.String("project_id", projectID),
		)
		return nil, err
	}
	return task, nil
}

func (s *ProjectService) UpdateTask(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error) {
	return s.tasks.Update(ctx, id, patch)
}

func (s *ProjectService) DeleteTask(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

func (s *ProjectService) ListMembers(ctx context.Context, projectID string) ([]model.Member, error) {
	return s.members.ListByProject(ctx, projectID)
}

func (s *ProjectService) AddMember(ctx context.Context, projectID string, input model.MemberInput) (*model.Member, error) {
	return s.members.Add(ctx, projectID, input)
}

func (s *ProjectService) RemoveMember(ctx context.Context, memberID string) error {
	return s.members.Remove(ctx, memberID)
}

// Overview computes project stats and the task stats of every project
// against a single "now".
func (s *ProjectService) Overview(ctx context.Context) (*Overview, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}

	byProject := make(map[string][]model.Task, len(projects))
	for _, t := range tasks {
		byProject[t.ProjectID] = append(byProject[t.ProjectID], t)
	}

	now := s.now()
	overview := &Overview{
		Projects:   stats.ProjectStats(projects, now),
		PerProject: make([]ProjectOverview, 0, len(projects)),
	}
	for _, p := range projects {
		overview.PerProject = append(overview.PerProject, ProjectOverview{
			ID:     p.ID,
			Name:   p.Name,
			Status: p.Status,
			Tasks:  stats.TaskStats(byProject[p.ID], now),
		})
	}
	return overview, nil
}

func (s *ProjectService) projectTasks(ctx context.Context, projectID string) ([]model.Task, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks of project %s: %w", projectID, err)
	}
	return tasks, nil
}
