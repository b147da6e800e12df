package stats

import (
	"sort"
	"time"

	"ai-notebook.com/ai-notebook/internal/constants"
	model "ai-notebook.com/ai-notebook/internal/models"
)

type Column struct {
	Status  constants.TaskStatus `json:"status"`
	TaskIDs []string             `json:"taskIds"`
}

// Board groups task ids into one column per pipeline status, in input order.
// Tasks with an unknown status are left out.
func Board(tasks []model.Task) []Column {
	columns := make([]Column, len(constants.TaskPipeline))
	index := make(map[constants.TaskStatus]int, len(constants.TaskPipeline))
	for i, status := range constants.TaskPipeline {
		columns[i] = Column{Status: status, TaskIDs: []string{}}
		index[status] = i
	}

	for _, t := range tasks {
		if i, ok := index[t.Status]; ok {
			columns[i].TaskIDs = append(columns[i].TaskIDs, t.ID)
		}
	}
	return columns
}

type EventKind string

const (
	EventTask      EventKind = "task"
	EventMilestone EventKind = "milestone"
	EventDeadline  EventKind = "deadline"
)

type Event struct {
	Kind  EventKind `json:"kind"`
	RefID string    `json:"refId"`
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
	Done  bool      `json:"done"`
}

// Timeline lists dated tasks, milestones and the project deadline, oldest first.
// Events on the same instant keep the order task, milestone, deadline.
func Timeline(project model.Project, tasks []model.Task) []Event {
	events := make([]Event, 0, len(tasks)+len(project.Milestones)+1)

	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		events = append(events, Event{
			Kind:  EventTask,
			RefID: t.ID,
			Title: t.Title,
			Date:  *t.DueDate,
			Done:  t.Status == constants.TaskDone,
		})
	}

	for _, m := range project.Milestones {
		events = append(events, Event{
			Kind:  EventMilestone,
			RefID: m.ID,
			Title: m.Title,
			Date:  m.DueDate,
			Done:  m.Status == constants.MilestoneCompleted,
		})
	}

	if project.EndDate != nil {
		events = append(events, Event{
			Kind:  EventDeadline,
			RefID: project.ID,
			Title: project.Name,
			Date:  *project.EndDate,
			Done:  project.Status == constants.ProjectCompleted,
		})
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events
}
