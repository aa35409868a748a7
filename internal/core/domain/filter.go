package domain

import "strings"

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection accepts "asc" and "desc"; everything else sorts newest first.
func ParseSortDirection(s string) SortDirection {
	if strings.TrimSpace(s) == string(SortAsc) {
		return SortAsc
	}
	return SortDesc
}

// TaskFilter is the typed form of the list endpoint query string.
// The zero value matches every task, newest first.
type TaskFilter struct {
	Statuses []TaskStatus
	Search   string
	Sort     SortDirection
}

func NewTaskFilter(statusCSV, search, sort string) TaskFilter {
	return TaskFilter{
		Statuses: ParseStatuses(statusCSV),
		Search:   strings.TrimSpace(search),
		Sort:     ParseSortDirection(sort),
	}
}

// ParseStatuses splits a comma separated list, keeping only known statuses.
// Duplicates are dropped and first-seen order is kept.
func ParseStatuses(csv string) []TaskStatus {
	if strings.TrimSpace(csv) == "" {
		return nil
	}

	var statuses []TaskStatus
	seen := make(map[TaskStatus]struct{}, len(TaskStatuses))
	for _, part := range strings.Split(csv, ",") {
		status := TaskStatus(strings.TrimSpace(part))
		if !status.Valid() {
			continue
		}
		if _, dup := seen[status]; dup {
			continue
		}
		seen[status] = struct{}{}
		statuses = append(statuses, status)
	}
	return statuses
}
