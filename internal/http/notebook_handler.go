package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ai-notebook.com/ai-notebook/internal/constants"
	dto "ai-notebook.com/ai-notebook/internal/data_models"
	"ai-notebook.com/ai-notebook/internal/http/validators"
	"ai-notebook.com/ai-notebook/internal/services"
)

func (h *Handler) ListTodos(c echo.Context) error {
	listing, err := h.todoService.List(c.Request().Context(), constants.TodoFilter(c.QueryParam("filter")))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, listing)
}

func (h *Handler) CreateTodo(c echo.Context) error {
	var req dto.TodoRequestData
	if err := h.bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateCreateTodoRequest(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	todo, err := h.todoService.Add(ctx, *req.Content)
	if err != nil {
		return h.fail(c, err)
	}
	if req.Priority != nil {
		priority := constants.Priority(*req.Priority)
		if todo, err = h.todoService.Update(ctx, todo.ID, services.TodoUpdate{Priority: &priority}); err != nil {
			return h.fail(c, err)
		}
	}
	return c.JSON(http.StatusCreated, todo)
}

func (h *Handler) UpdateTodo(c echo.Context) error {
	var req dto.TodoRequestData
	if err := h.bind(c, &req); err != nil {
		return err
	}

	update := services.TodoUpdate{Content: req.Content}
	if req.Priority != nil {
		priority := constants.Priority(*req.Priority)
		update.Priority = &priority
	}

	todo, err := h.todoService.Update(c.Request().Context(), c.Param("id"), update)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, todo)
}

func (h *Handler) ToggleTodo(c echo.Context) error {
	todo, err := h.todoService.Toggle(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, todo)
}

func (h *Handler) DeleteTodo(c echo.Context) error {
	if err := h.todoService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ClearCompletedTodos(c echo.Context) error {
	removed, err := h.todoService.ClearCompleted(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"removed": removed})
}

func (h *Handler) ListNotes(c echo.Context) error {
	notes, err := h.noteService.List(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(notes),
		"notes": notes,
	})
}

func (h *Handler) CreateNote(c echo.Context) error {
	var req dto.NoteRequestData
	if err := h.bind(c, &req); err != nil {
		return err
	}

	note, err := h.noteService.Create(c.Request().Context(), req.ToPatch())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, note)
}

func (h *Handler) GetNote(c echo.Context) error {
	note, err := h.noteService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, note)
}

func (h *Handler) UpdateNote(c echo.Context) error {
	var req dto.NoteRequestData
	if err := h.bind(c, &req); err != nil {
		return err
	}

	note, err := h.noteService.Update(c.Request().Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, note)
}

func (h *Handler) DeleteNote(c echo.Context) error {
	if err := h.noteService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListTemplates(c echo.Context) error {
	listing, err := h.templateService.List(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, listing)
}

func (h *Handler) CreateTemplate(c echo.Context) error {
	var req dto.TemplateRequestData
	if err := h.bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateCreateTemplateRequest(&req); err != nil {
		return err
	}

	template, err := h.templateService.Create(c.Request().Context(), req.ToPatch())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, template)
}

func (h *Handler) GetTemplate(c echo.Context) error {
	template, err := h.templateService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, template)
}

func (h *Handler) UpdateTemplate(c echo.Context) error {
	var req dto.TemplateRequestData
	if err := h.bind(c, &req); err != nil {
		return err
	}

	template, err := h.templateService.Update(c.Request().Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, template)
}

func (h *Handler) DeleteTemplate(c echo.Context) error {
	if err := h.templateService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
