package repository

import (
	"sort"

	"ai-notebook.com/ai-notebook/internal/constants"
	model "ai-notebook.com/ai-notebook/internal/models"
)

func FilterTasks(tasks []model.Task, filter string) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter == "" || filter == constants.FilterAll || string(t.Status) == filter {
			out = append(out, t)
		}
	}
	return out
}

// SortTasks returns a sorted copy. Tasks without a due date go last when
// sorting by dueDate. Unknown keys keep the input order.
func SortTasks(tasks []model.Task, key constants.TaskSort) []model.Task {
	out := append([]model.Task{}, tasks...)

	var less func(a, b *model.Task) bool
	switch key {
	case constants.TaskSortCreated:
		less = func(a, b *model.Task) bool { return a.CreatedAt.After(b.CreatedAt) }
	case constants.TaskSortUpdated:
		less = func(a, b *model.Task) bool { return a.UpdatedAt.After(b.UpdatedAt) }
	case constants.TaskSortPriority:
		less = func(a, b *model.Task) bool { return a.Priority.Rank() > b.Priority.Rank() }
	case constants.TaskSortDueDate:
		less = func(a, b *model.Task) bool {
			switch {
			case a.DueDate == nil:
				return false
			case b.DueDate == nil:
				return true
			default:
				return a.DueDate.Before(*b.DueDate)
			}
		}
	case constants.TaskSortProgress:
		less = func(a, b *model.Task) bool { return a.Progress > b.Progress }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	return out
}
