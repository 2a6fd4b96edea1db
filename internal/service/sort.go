package service

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// SortKey selects the field tasks are ordered by.
type SortKey string

const (
	SortByTitle       SortKey = "title"
	SortByDescription SortKey = "description"
	SortByDueDate     SortKey = "due_date"
	SortByStatus      SortKey = "status"
)

// ParseSortKey validates a user-supplied sort key.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortByTitle, SortByDescription, SortByDueDate, SortByStatus:
		return SortKey(s), nil
	default:
		return "", fmt.Errorf("invalid sort key: %s", s)
	}
}

// SortTasks orders tasks in place by a single key. The sort is stable, so
// it can be re-applied after every refetch without reshuffling ties.
// Tasks with an absent value for the key sort last regardless of
// direction; dates compare by calendar value; strings case-insensitively;
// status by derived label.
func SortTasks(tasks []Task, key SortKey, descending bool, now time.Time) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]

		// Absent values lose to present ones in both directions.
		aAbsent, bAbsent := absent(a, key), absent(b, key)
		if aAbsent || bAbsent {
			return !aAbsent && bAbsent
		}

		c := compare(a, b, key, now)
		if descending {
			return c > 0
		}
		return c < 0
	})
}

func absent(t Task, key SortKey) bool {
	switch key {
	case SortByDescription:
		return t.Description == ""
	case SortByDueDate:
		return t.DueDate == nil
	default:
		return false
	}
}

func compare(a, b Task, key SortKey, now time.Time) int {
	switch key {
	case SortByTitle:
		return compareFold(a.Title, b.Title)
	case SortByDescription:
		return compareFold(a.Description, b.Description)
	case SortByDueDate:
		ad, bd := dateOnly(*a.DueDate), dateOnly(*b.DueDate)
		return ad.Compare(bd)
	case SortByStatus:
		return strings.Compare(string(a.StatusAt(now)), string(b.StatusAt(now)))
	default:
		return 0
	}
}

func compareFold(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
