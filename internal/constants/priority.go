package constants

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var priorityRank = map[Priority]int{
	PriorityUrgent: 4,
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// Rank orders priorities from low (1) to urgent (4). Unknown values rank 0.
func (p Priority) Rank() int {
	return priorityRank[p]
}

func (p Priority) Valid() bool {
	_, ok := priorityRank[p]
	return ok
}

// ValidTodo reports whether p is usable on a todo item, which has no urgent level.
func (p Priority) ValidTodo() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
