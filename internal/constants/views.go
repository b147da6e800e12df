package constants

// FilterAll disables status filtering for projects and tasks.
const FilterAll = "all"

type ProjectSort string

const (
	SortByName      ProjectSort = "name"
	SortByStartDate ProjectSort = "startDate"
	SortByEndDate   ProjectSort = "endDate"
	SortByPriority  ProjectSort = "priority"
	SortByProgress  ProjectSort = "progress"
)

type TaskSort string

const (
	TaskSortCreated  TaskSort = "created"
	TaskSortUpdated  TaskSort = "updated"
	TaskSortPriority TaskSort = "priority"
	TaskSortDueDate  TaskSort = "dueDate"
	TaskSortProgress TaskSort = "progress"
)

type TodoFilter string

const (
	TodoAll       TodoFilter = "all"
	TodoActive    TodoFilter = "active"
	TodoCompleted TodoFilter = "completed"
)
