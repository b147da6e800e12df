package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "ai-notebook.com/ai-notebook/internal/data_models"
)

func ValidateCreateTaskRequest(r *dto.TaskRequestData) error {
	if r.Title == nil || blank(*r.Title) {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	return nil
}

func ValidateMemberRequest(r *dto.MemberRequestData) error {
	if blank(r.Name) {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if blank(r.Email) {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}
	return nil
}

func ValidateMilestoneRequest(r *dto.MilestoneRequestData) error {
	if blank(r.Title) {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if r.DueDate == nil || r.DueDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "dueDate is required")
	}
	return nil
}

func ValidateCreateTemplateRequest(r *dto.TemplateRequestData) error {
	if r.Name == nil || blank(*r.Name) {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if r.Content == nil || blank(*r.Content) {
		return echo.NewHTTPError(http.StatusBadRequest, "content is required")
	}
	return nil
}

func ValidateCreateTodoRequest(r *dto.TodoRequestData) error {
	if r.Content == nil || blank(*r.Content) {
		return echo.NewHTTPError(http.StatusBadRequest, "content is required")
	}
	return nil
}

func ValidateAIRequest(r *dto.AIRequestData) error {
	if blank(r.Action) {
		return echo.NewHTTPError(http.StatusBadRequest, "action is required")
	}
	if blank(r.Text) {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}
	return nil
}

func ValidateChatRequest(r *dto.ChatRequestData) error {
	if blank(r.Content) {
		return echo.NewHTTPError(http.StatusBadRequest, "content is required")
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
