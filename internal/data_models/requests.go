package dto

import (
	"ai-notebook.com/ai-notebook/internal/constants"
	model "ai-notebook.com/ai-notebook/internal/models"
)

type ProjectRequestData struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	StartDate   *Timestamp `json:"startDate"`
	Progress    *int       `json:"progress"`
	OwnerID     *string    `json:"ownerId"`
	Tags        *[]string  `json:"tags"`

	// EndDate is cleared by null or "".
	EndDate ClearableTimestamp `json:"endDate"`
}

func (r *ProjectRequestData) ToPatch() model.ProjectPatch {
	patch := model.ProjectPatch{
		Name:         r.Name,
		Description:  r.Description,
		StartDate:    r.StartDate.TimePtr(),
		EndDate:      r.EndDate.Value,
		ClearEndDate: r.EndDate.Cleared(),
		Progress:     r.Progress,
		OwnerID:      r.OwnerID,
		Tags:         r.Tags,
	}
	if r.Status != nil {
		status := constants.ProjectStatus(*r.Status)
		patch.Status = &status
	}
	if r.Priority != nil {
		priority := constants.Priority(*r.Priority)
		patch.Priority = &priority
	}
	return patch
}

type TaskRequestData struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Status         *string    `json:"status"`
	Priority       *string    `json:"priority"`
	AssigneeID     *string    `json:"assigneeId"`
	EstimatedHours *float64   `json:"estimatedHours"`
	ActualHours    *float64   `json:"actualHours"`
	Progress       *int       `json:"progress"`
	Tags           *[]string  `json:"tags"`
	Dependencies   *[]string  `json:"dependencies"`

	// DueDate is cleared by null or "".
	DueDate ClearableTimestamp `json:"dueDate"`
}

func (r *TaskRequestData) ToPatch() model.TaskPatch {
	patch := model.TaskPatch{
		Title:          r.Title,
		Description:    r.Description,
		AssigneeID:     r.AssigneeID,
		DueDate:        r.DueDate.Value,
		ClearDueDate:   r.DueDate.Cleared(),
		EstimatedHours: r.EstimatedHours,
		ActualHours:    r.ActualHours,
		Progress:       r.Progress,
		Tags:           r.Tags,
		Dependencies:   r.Dependencies,
	}
	if r.Status != nil {
		status := constants.TaskStatus(*r.Status)
		patch.Status = &status
	}
	if r.Priority != nil {
		priority := constants.Priority(*r.Priority)
		patch.Priority = &priority
	}
	return patch
}

type MemberRequestData struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

func (r *MemberRequestData) ToInput() model.MemberInput {
	return model.MemberInput{
		Name:   r.Name,
		Email:  r.Email,
		Role:   constants.MemberRole(r.Role),
		Avatar: r.Avatar,
	}
}

type MilestoneRequestData struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *Timestamp `json:"dueDate"`
}

func (r *MilestoneRequestData) ToInput() model.MilestoneInput {
	input := model.MilestoneInput{Title: r.Title, Description: r.Description}
	if r.DueDate != nil {
		input.DueDate = r.DueDate.Time
	}
	return input
}

type TodoRequestData struct {
	Content  *string `json:"content"`
	Priority *string `json:"priority"`
}

type NoteRequestData struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

func (r *NoteRequestData) ToPatch() model.NotePatch {
	return model.NotePatch{Title: r.Title, Content: r.Content, Tags: r.Tags}
}

type TemplateRequestData struct {
	Name     *string   `json:"name"`
	Content  *string   `json:"content"`
	Category *string   `json:"category"`
	Tags     *[]string `json:"tags"`
}

func (r *TemplateRequestData) ToPatch() model.PromptTemplatePatch {
	return model.PromptTemplatePatch{
		Name:     r.Name,
		Content:  r.Content,
		Category: r.Category,
		Tags:     r.Tags,
	}
}

type AIRequestData struct {
	Action string `json:"action"`
	Text   string `json:"text"`
}

type ChatRequestData struct {
	Model   string `json:"model"`
	Content string `json:"content"`
}
