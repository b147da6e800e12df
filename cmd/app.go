package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"ai-notebook.com/ai-notebook/internal/constants"
	config "ai-notebook.com/ai-notebook/internal/configs"
	model "ai-notebook.com/ai-notebook/internal/models"
	repository "ai-notebook.com/ai-notebook/internal/repositories"
)

// app holds what every command needs: configuration, a logger, the opened
// storage and the repositories over it.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	storage *config.Storage

	projects *repository.ProjectRepository
	tasks    *repository.TaskRepository
	members  *repository.MemberRepository
	todos    *repository.TodoRepository
	notes    *repository.NoteRepository
	chats    *repository.ChatRepository

	templates *repository.PromptTemplateRepository
}

func bootstrap(ctx context.Context) (*app, error) {
	dotenvErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if dotenvErr != nil {
		logger.Info(".env file not found, using environment variables")
	}

	storage, err := config.OpenStorage(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	store := storage.Store
	tasks := repository.NewTaskRepository(store, logger)
	projects := repository.NewProjectRepository(store, tasks, cfg.CurrentUser.ID, logger)

	return &app{
		cfg:      cfg,
		logger:   logger,
		storage:  storage,
		projects: projects,
		tasks:    tasks,
		members:  repository.NewMemberRepository(store, projects, tasks, logger),
		todos:    repository.NewTodoRepository(store, logger),
		notes:    repository.NewNoteRepository(store, logger),
		chats:    repository.NewChatRepository(storage.Raw, logger),

		templates: repository.NewPromptTemplateRepository(storage.Raw, logger),
	}, nil
}

func (a *app) currentUser() model.Member {
	return model.Member{
		ID:       a.cfg.CurrentUser.ID,
		Name:     a.cfg.CurrentUser.Name,
		Email:    a.cfg.CurrentUser.Email,
		Role:     constants.RoleOwner,
		JoinedAt: time.Now().UTC(),
	}
}

func (a *app) seed(ctx context.Context) (repository.SeedResult, error) {
	seeder := repository.NewSeeder(a.projects, a.tasks, a.members, a.currentUser(), a.logger)
	return seeder.Seed(ctx)
}

func (a *app) close() {
	if err := a.storage.Close(); err != nil {
		a.logger.Warn("closing storage failed", zap.Error(err))
	}
	_ = a.logger.Sync()
}
