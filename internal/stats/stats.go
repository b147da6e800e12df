// Package stats derives counts and views from repository snapshots. Nothing
// here is cached; callers pass one "now" per computation so overdue checks agree.
package stats

import (
	"math"
	"time"

	"ai-notebook.com/ai-notebook/internal/constants"
	model "ai-notebook.com/ai-notebook/internal/models"
)

type ProjectSummary struct {
	TotalProjects     int `json:"totalProjects"`
	ActiveProjects    int `json:"activeProjects"`
	CompletedProjects int `json:"completedProjects"`
	OverdueProjects   int `json:"overdueProjects"`
	CompletionRate    int `json:"completionRate"`
}

type TaskSummary struct {
	TotalTasks      int     `json:"totalTasks"`
	CompletedTasks  int     `json:"completedTasks"`
	InProgressTasks int     `json:"inProgressTasks"`
	OverdueTasks    int     `json:"overdueTasks"`
	CompletionRate  int     `json:"completionRate"`
	TotalHours      float64 `json:"totalHours"`
	EstimatedHours  float64 `json:"estimatedHours"`
}

type TodoSummary struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Active         int `json:"active"`
	CompletionRate int `json:"completionRate"`
}

func ProjectStats(projects []model.Project, now time.Time) ProjectSummary {
	s := ProjectSummary{TotalProjects: len(projects)}
	for i := range projects {
		switch projects[i].Status {
		case constants.ProjectActive:
			s.ActiveProjects++
		case constants.ProjectCompleted:
			s.CompletedProjects++
		}
		if projects[i].IsOverdue(now) {
			s.OverdueProjects++
		}
	}
	s.CompletionRate = percent(s.CompletedProjects, s.TotalProjects)
	return s
}

func TaskStats(tasks []model.Task, now time.Time) TaskSummary {
	s := TaskSummary{TotalTasks: len(tasks)}
	for i := range tasks {
		t := &tasks[i]
		switch t.Status {
		case constants.TaskDone:
			s.CompletedTasks++
		case constants.TaskInProgress:
			s.InProgressTasks++
		}
		if t.IsOverdue(now) {
			s.OverdueTasks++
		}
		if t.ActualHours != nil {
			s.TotalHours += *t.ActualHours
		}
		if t.EstimatedHours != nil {
			s.EstimatedHours += *t.EstimatedHours
		}
	}
	s.CompletionRate = percent(s.CompletedTasks, s.TotalTasks)
	return s
}

func TodoStats(todos []model.Todo) TodoSummary {
	s := TodoSummary{Total: len(todos)}
	for _, t := range todos {
		if t.Completed {
			s.Completed++
		}
	}
	s.Active = s.Total - s.Completed
	s.CompletionRate = percent(s.Completed, s.Total)
	return s
}

// percent rounds part/total*100 half away from zero; an empty total yields 0.
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
