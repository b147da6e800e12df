package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ai-notebook.com/ai-notebook/internal/ai"
	dto "ai-notebook.com/ai-notebook/internal/data_models"
	"ai-notebook.com/ai-notebook/internal/http/validators"
)

func (h *Handler) Assist(c echo.Context) error {
	var req dto.AIRequestData
	if err := h.bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateAIRequest(&req); err != nil {
		return err
	}

	result, err := h.assistService.Process(c.Request().Context(), ai.Action(req.Action), req.Text)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) ChatHistory(c echo.Context) error {
	messages, err := h.assistService.History(c.Request().Context(), c.QueryParam("model"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"messages": messages})
}

func (h *Handler) SendChat(c echo.Context) error {
	var req dto.ChatRequestData
	if err := h.bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateChatRequest(&req); err != nil {
		return err
	}

	messages, err := h.assistService.Send(c.Request().Context(), req.Model, req.Content)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"messages": messages})
}

func (h *Handler) ClearChat(c echo.Context) error {
	if err := h.assistService.ClearHistory(c.Request().Context(), c.QueryParam("model")); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
