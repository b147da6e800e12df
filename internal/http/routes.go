package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	middleware "ai-notebook.com/ai-notebook/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute, "/health", "/metrics"))

	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/config/check", h.ConfigCheck)

	e.GET("/projects", h.ListProjects)
	e.POST("/projects", h.CreateProject)
	e.GET("/projects/:id", h.GetProject)
	e.PATCH("/projects/:id", h.UpdateProject)
	e.DELETE("/projects/:id", h.DeleteProject)
	e.POST("/projects/:id/milestones", h.AddMilestone)
	e.POST("/projects/:id/milestones/:milestoneId/complete", h.CompleteMilestone)
	e.DELETE("/projects/:id/milestones/:milestoneId", h.RemoveMilestone)
	e.GET("/projects/:id/board", h.Board)
	e.GET("/projects/:id/timeline", h.Timeline)

	e.GET("/projects/:id/tasks", h.ListTasks)
	e.POST("/projects/:id/tasks", h.CreateTask)
	e.PATCH("/tasks/:id", h.UpdateTask)
	e.DELETE("/tasks/:id", h.DeleteTask)

	e.GET("/projects/:id/members", h.ListMembers)
	e.POST("/projects/:id/members", h.AddMember)
	e.DELETE("/members/:id", h.RemoveMember)

	e.GET("/todos", h.ListTodos)
	e.POST("/todos", h.CreateTodo)
	e.DELETE("/todos/completed", h.ClearCompletedTodos)
	e.PATCH("/todos/:id", h.UpdateTodo)
	e.POST("/todos/:id/toggle", h.ToggleTodo)
	e.DELETE("/todos/:id", h.DeleteTodo)

	e.GET("/notes", h.ListNotes)
	e.POST("/notes", h.CreateNote)
	e.GET("/notes/:id", h.GetNote)
	e.PATCH("/notes/:id", h.UpdateNote)
	e.DELETE("/notes/:id", h.DeleteNote)

	e.GET("/prompt-templates", h.ListTemplates)
	e.POST("/prompt-templates", h.CreateTemplate)
	e.GET("/prompt-templates/:id", h.GetTemplate)
	e.PATCH("/prompt-templates/:id", h.UpdateTemplate)
	e.DELETE("/prompt-templates/:id", h.DeleteTemplate)

	e.POST("/ai", h.Assist)
	e.GET("/ai/chat", h.ChatHistory)
	e.POST("/ai/chat", h.SendChat)
	e.DELETE("/ai/chat", h.ClearChat)
}
