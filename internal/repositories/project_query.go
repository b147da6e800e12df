package repository

import (
	"sort"
	"strings"

	"ai-notebook.com/ai-notebook/internal/constants"
	model "ai-notebook.com/ai-notebook/internal/models"
)

// FilterProjects keeps projects whose status equals filter, in their original
// order. An empty filter or "all" keeps everything.
func FilterProjects(projects []model.Project, filter string) []model.Project {
	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if filter == "" || filter == constants.FilterAll || string(p.Status) == filter {
			out = append(out, p)
		}
	}
	return out
}

// SortProjects returns a sorted copy. Unknown keys keep the input order.
//
// endDate sorts ascending with undated projects after dated ones.
func SortProjects(projects []model.Project, key constants.ProjectSort) []model.Project {
	out := append([]model.Project{}, projects...)

	var less func(a, b *model.Project) bool
	switch key {
	case constants.SortByName:
		less = func(a, b *model.Project) bool { return strings.Compare(a.Name, b.Name) < 0 }
	case constants.SortByStartDate:
		less = func(a, b *model.Project) bool { return a.StartDate.After(b.StartDate) }
	case constants.SortByEndDate:
		less = func(a, b *model.Project) bool {
			switch {
			case a.EndDate == nil:
				return false
			case b.EndDate == nil:
				return true
			default:
				return a.EndDate.Before(*b.EndDate)
			}
		}
	case constants.SortByPriority:
		less = func(a, b *model.Project) bool { return a.Priority.Rank() > b.Priority.Rank() }
	case constants.SortByProgress:
		less = func(a, b *model.Project) bool { return a.Progress > b.Progress }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	return out
}
