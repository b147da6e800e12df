package model

import (
	"time"

	"ai-notebook.com/ai-notebook/internal/constants"
)

type Project struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Status      constants.ProjectStatus `json:"status"`
	Priority    constants.Priority      `json:"priority"`
	StartDate   time.Time               `json:"startDate"`
	EndDate     *time.Time              `json:"endDate,omitempty"`
	Progress    int                     `json:"progress"`
	OwnerID     string                  `json:"ownerId"`
	MemberIDs   []string                `json:"memberIds"`
	Tags        []string                `json:"tags"`
	Milestones  []Milestone             `json:"milestones"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}

// HasMember reports whether memberID is listed on the project.
func (p *Project) HasMember(memberID string) bool {
	for _, id := range p.MemberIDs {
		if id == memberID {
			return true
		}
	}
	return false
}

// IsOverdue reports whether an active project has passed its end date.
func (p *Project) IsOverdue(now time.Time) bool {
	return p.Status == constants.ProjectActive && p.EndDate != nil && p.EndDate.Before(now)
}

type Milestone struct {
	ID          string                    `json:"id"`
	ProjectID   string                    `json:"projectId"`
	Title       string                    `json:"title"`
	Description string                    `json:"description"`
	DueDate     time.Time                 `json:"dueDate"`
	Status      constants.MilestoneStatus `json:"status"`
	CompletedAt *time.Time                `json:"completedAt,omitempty"`
}
