package model

import (
	"time"

	"ai-notebook.com/ai-notebook/internal/constants"
)

type Member struct {
	ID       string               `json:"id"`
	Name     string               `json:"name"`
	Email    string               `json:"email"`
	Role     constants.MemberRole `json:"role"`
	Avatar   string               `json:"avatar,omitempty"`
	JoinedAt time.Time            `json:"joinedAt"`
}
