package repository

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ai-notebook.com/ai-notebook/internal/constants"
	model "ai-notebook.com/ai-notebook/internal/models"
)

const SampleProjectID = "sample-project"

// SeedResult reports which collections Seed wrote.
type SeedResult struct {
	Projects bool `json:"projects"`
	Tasks    bool `json:"tasks"`
	Members  bool `json:"members"`
}

type Seeder struct {
	base
	projects *ProjectRepository
	tasks    *TaskRepository
	members  *MemberRepository
	user     model.Member
}

// NewSeeder builds a Seeder that records user as owner of the sample project.
func NewSeeder(
	projects *ProjectRepository,
	tasks *TaskRepository,
	members *MemberRepository,
	user model.Member,
	logger *zap.Logger,
	opts ...Option,
) *Seeder {
	return &Seeder{
		base:     newBase(logger, opts),
		projects: projects,
		tasks:    tasks,
		members:  members,
		user:     user,
	}
}

// Seed writes sample data into collections that have never been written.
// Existing keys are left alone, even when they hold an empty list.
func (s *Seeder) Seed(ctx context.Context) (SeedResult, error) {
	var result SeedResult
	now := s.timestamp()

	wrote, err := s.projects.items.initialize(ctx, []model.Project{s.sampleProject(now)})
	if err != nil {
		return result, fmt.Errorf("seeding projects: %w", err)
	}
	result.Projects = wrote

	if _, err := s.projects.Get(ctx, SampleProjectID); err == nil {
		wrote, err = s.tasks.items.initialize(ctx, sampleTasks(now))
		if err != nil {
			return result, fmt.Errorf("seeding tasks: %w", err)
		}
		result.Tasks = wrote
	}

	owner := s.user
	owner.Role = constants.RoleOwner
	owner.JoinedAt = now
	wrote, err = s.members.items.initialize(ctx, []model.Member{owner})
	if err != nil {
		return result, fmt.Errorf("seeding members: %w", err)
	}
	result.Members = wrote

	s.logger.Info("sample data seeded",
		zap.Bool("projects", result.Projects),
		zap.Bool("tasks", result.Tasks),
		zap.Bool("members", result.Members),
	)
	return result, nil
}

func (s *Seeder) sampleProject(now time.Time) model.Project {
	end := now.Add(30 * 24 * time.Hour)
	return model.Project{
		ID:          SampleProjectID,
		Name:        "Sample project",
		Description: "A sample project showing how projects, tasks and members fit together",
		Status:      constants.ProjectActive,
		Priority:    constants.PriorityHigh,
		StartDate:   now,
		EndDate:     &end,
		Progress:    65,
		OwnerID:     s.user.ID,
		MemberIDs:   []string{s.user.ID},
		Tags:        []string{"development", "frontend"},
		Milestones:  []model.Milestone{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func sampleTasks(now time.Time) []model.Task {
	completed := now
	return []model.Task{
		{
			ID:           "sample-task-1",
			ProjectID:    SampleProjectID,
			Title:        "Requirements analysis",
			Description:  "Collect requirements and draw up the delivery plan",
			Status:       constants.TaskDone,
			Priority:     constants.PriorityHigh,
			Progress:     100,
			Tags:         []string{"planning"},
			Dependencies: []string{},
			CreatedAt:    now,
			UpdatedAt:    now,
			CompletedAt:  &completed,
		},
		{
			ID:           "sample-task-2",
			ProjectID:    SampleProjectID,
			Title:        "UI design",
			Description:  "Design the screens and interaction flow",
			Status:       constants.TaskInProgress,
			Priority:     constants.PriorityMedium,
			Progress:     60,
			Tags:         []string{"design"},
			Dependencies: []string{"sample-task-1"},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           "sample-task-3",
			ProjectID:    SampleProjectID,
			Title:        "Frontend development",
			Description:  "Build the interface and wire up interactions",
			Status:       constants.TaskTodo,
			Priority:     constants.PriorityHigh,
			Progress:     0,
			Tags:         []string{"frontend"},
			Dependencies: []string{"sample-task-2"},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
}
