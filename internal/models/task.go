package model

import (
	"time"

	"ai-notebook.com/ai-notebook/internal/constants"
)

type Task struct {
	ID             string               `json:"id"`
	ProjectID      string               `json:"projectId"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Status         constants.TaskStatus `json:"status"`
	Priority       constants.Priority   `json:"priority"`
	AssigneeID     *string              `json:"assigneeId,omitempty"`
	DueDate        *time.Time           `json:"dueDate,omitempty"`
	EstimatedHours *float64             `json:"estimatedHours,omitempty"`
	ActualHours    *float64             `json:"actualHours,omitempty"`
	Progress       int                  `json:"progress"`
	Tags           []string             `json:"tags"`
	Dependencies   []string             `json:"dependencies"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
	CompletedAt    *time.Time           `json:"completedAt,omitempty"`
}

// IsOverdue reports whether an unfinished task has passed its due date.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.Status != constants.TaskDone && t.DueDate != nil && t.DueDate.Before(now)
}
