package model

import (
	"time"

	"ai-notebook.com/ai-notebook/internal/constants"
)

// ProjectPatch carries a partial project update. Nil fields are left unchanged;
// ClearEndDate removes the end date.
type ProjectPatch struct {
	Name        *string                  `json:"name,omitempty"`
	Description *string                  `json:"description,omitempty"`
	Status      *constants.ProjectStatus `json:"status,omitempty"`
	Priority    *constants.Priority      `json:"priority,omitempty"`
	StartDate   *time.Time               `json:"startDate,omitempty"`
	EndDate     *time.Time               `json:"endDate,omitempty"`
	Progress    *int                     `json:"progress,omitempty"`
	OwnerID     *string                  `json:"ownerId,omitempty"`
	MemberIDs   *[]string                `json:"memberIds,omitempty"`
	Tags        *[]string                `json:"tags,omitempty"`

	ClearEndDate bool `json:"clearEndDate,omitempty"`
}

// TaskPatch carries task fields for create and partial update.
// An empty AssigneeID clears the assignee; ClearDueDate removes the due date.
type TaskPatch struct {
	Title          *string               `json:"title,omitempty"`
	Description    *string               `json:"description,omitempty"`
	Status         *constants.TaskStatus `json:"status,omitempty"`
	Priority       *constants.Priority   `json:"priority,omitempty"`
	AssigneeID     *string               `json:"assigneeId,omitempty"`
	DueDate        *time.Time            `json:"dueDate,omitempty"`
	EstimatedHours *float64              `json:"estimatedHours,omitempty"`
	ActualHours    *float64              `json:"actualHours,omitempty"`
	Progress       *int                  `json:"progress,omitempty"`
	Tags           *[]string             `json:"tags,omitempty"`
	Dependencies   *[]string             `json:"dependencies,omitempty"`

	ClearDueDate bool `json:"clearDueDate,omitempty"`
}

type MemberInput struct {
	Name   string               `json:"name"`
	Email  string               `json:"email"`
	Role   constants.MemberRole `json:"role"`
	Avatar string               `json:"avatar,omitempty"`
}

type MilestoneInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
}

type NotePatch struct {
	Title   *string   `json:"title,omitempty"`
	Content *string   `json:"content,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
}
