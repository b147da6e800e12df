package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ai-notebook.com/ai-notebook/internal/constants"
	dto "ai-notebook.com/ai-notebook/internal/data_models"
	"ai-notebook.com/ai-notebook/internal/http/validators"
)

func (h *Handler) ListProjects(c echo.Context) error {
	listing, err := h.projectService.ListProjects(
		c.Request().Context(),
		c.QueryParam("status"),
		constants.ProjectSort(c.QueryParam("sort")),
	)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, listing)
}

func (h *Handler) CreateProject(c echo.Context) error {
	var req dto.ProjectRequestData
	if err := h.bind(c, &req); err != nil {
		return err
	}

	project, err := h.projectService.CreateProject(c.Request().Context(), req.ToPatch())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, project)
}

func (h *Handler) GetProject(c echo.Context) error {
	detail, err := h.projectService.GetProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *Handler) UpdateProject(c echo.Context) error {
	var req dto.ProjectRequestData
	if err := h.bind(c, &req); err != nil {
		return err
	}

	project, err := h.projectService.UpdateProject(c.Request().Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

func (h *Handler) DeleteProject(c echo.Context) error {
	if err := h.projectService.DeleteProject(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) AddMilestone(c echo.Context) error {
	var req dto.MilestoneRequestData
	if err := h.bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateMilestoneRequest(&req); err != nil {
		return err
	}

	milestone, err := h.projectService.AddMilestone(c.Request().Context(), c.Param("id"), req.ToInput())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, milestone)
}

func (h *Handler) CompleteMilestone(c echo.Context) error {
	milestone, err := h.projectService.CompleteMilestone(c.Request().Context(), c.Param("id"), c.Param("milestoneId"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, milestone)
}

func (h *Handler) RemoveMilestone(c echo.Context) error {
	if err := h.projectService.RemoveMilestone(c.Request().Context(), c.Param("id"), c.Param("milestoneId")); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Board(c echo.Context) error {
	columns, err := h.projectService.Board(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"columns": columns})
}

func (h *Handler) Timeline(c echo.Context) error {
	events, err := h.projectService.Timeline(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

func (h *Handler) ListTasks(c echo.Context) error {
	listing, err := h.projectService.ListTasks(
		c.Request().Context(),
		c.Param("id"),
		c.QueryParam("status"),
		constants.TaskSort(c.QueryParam("sort")),
	)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, listing)
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.TaskRequestData
	if err := h.bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	task, err := h.projectService.CreateTask(c.Request().Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	var req dto.TaskRequestData
	if err := h.bind(c, &req); err != nil {
		return err
	}

	task, err := h.projectService.UpdateTask(c.Request().Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	if err := h.projectService.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListMembers(c echo.Context) error {
	members, err := h.projectService.ListMembers(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":   len(members),
		"members": members,
	})
}

func (h *Handler) AddMember(c echo.Context) error {
	var req dto.MemberRequestData
	if err := h.bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateMemberRequest(&req); err != nil {
		return err
	}

	member, err := h.projectService.AddMember(c.Request().Context(), c.Param("id"), req.ToInput())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, member)
}

func (h *Handler) RemoveMember(c echo.Context) error {
	if err := h.projectService.RemoveMember(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
