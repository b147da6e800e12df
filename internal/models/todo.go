package model

import (
	"time"

	"ai-notebook.com/ai-notebook/internal/constants"
)

// Todo is an item on the standalone to-do list, unrelated to projects.
type Todo struct {
	ID        string             `json:"id"`
	Content   string             `json:"content"`
	Completed bool               `json:"completed"`
	Priority  constants.Priority `json:"priority"`
	Tags      []string           `json:"tags,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
