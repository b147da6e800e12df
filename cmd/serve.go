package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ai-notebook.com/ai-notebook/internal/ai"
	apperrors "ai-notebook.com/ai-notebook/internal/errors"
	httpapi "ai-notebook.com/ai-notebook/internal/http"
	"ai-notebook.com/ai-notebook/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the notebook HTTP API over the configured storage backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if a.cfg.SeedSampleData {
			result, err := a.seed(ctx)
			if err != nil {
				return err
			}
			a.logger.Info("sample data checked",
				zap.Bool("projects", result.Projects),
				zap.Bool("tasks", result.Tasks),
				zap.Bool("members", result.Members),
			)
		}
		if err := a.members.EnsureMember(ctx, a.currentUser()); err != nil {
			return err
		}

		var client ai.Client
		openRouter, err := ai.NewOpenRouterClient(a.cfg.AI, a.logger)
		switch {
		case err == nil:
			client = openRouter
		case errors.Is(err, apperrors.ErrAINotConfigured):
			a.logger.Warn("AI assistant disabled", zap.Error(err))
		default:
			return err
		}

		handler := httpapi.NewHandler(
			services.NewProjectService(a.projects, a.tasks, a.members, a.logger),
			services.NewTodoService(a.todos),
			services.NewNoteService(a.notes),
			services.NewTemplateService(a.templates),
			services.NewAssistService(client, a.cfg.AI, a.chats, a.logger),
			a.logger,
		)

		server, err := httpapi.NewServer(handler, a.logger, httpapi.Config{
			Addr:               a.cfg.AppURL,
			RateLimitPerMinute: a.cfg.RateLimit,
		})
		if err != nil {
			return err
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(server.Start)
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(
				context.Background(),
				time.Duration(a.cfg.ShutdownTimeoutSeconds)*time.Second,
			)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})

		if err := g.Wait(); err != nil {
			return err
		}
		a.logger.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
