package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "ai-notebook.com/ai-notebook/internal/errors"
	"ai-notebook.com/ai-notebook/internal/services"
)

type Handler struct {
	projectService  *services.ProjectService
	todoService     *services.TodoService
	noteService     *services.NoteService
	templateService *services.TemplateService
	assistService   *services.AssistService
	logger          *zap.Logger
}

func NewHandler(
	projectService *services.ProjectService,
	todoService *services.TodoService,
	noteService *services.NoteService,
	templateService *services.TemplateService,
	assistService *services.AssistService,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		projectService:  projectService,
		todoService:     todoService,
		noteService:     noteService,
		templateService: templateService,
		assistService:   assistService,
		logger:          logger,
	}
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *Handler) ConfigCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, h.assistService.Status())
}

func (h *Handler) bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		h.logger.Debug("invalid request body", zap.String("path", c.Path()), zap.Error(err))
		return echo.NewHTTPError(apperrors.ErrInvalidJSON.StatusCode, apperrors.ErrInvalidJSON.Message)
	}
	return nil
}

// fail converts a service error into the HTTP error echo renders as
// {"message": ...}. Server-side failures are logged with their full chain.
func (h *Handler) fail(c echo.Context, err error) error {
	code := apperrors.StatusCode(err)
	if code >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	return echo.NewHTTPError(code, apperrors.PublicMessage(err))
}
