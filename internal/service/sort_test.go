package service

import (
	"testing"
	"time"
)

func titles(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func assertOrder(t *testing.T, tasks []Task, want ...string) {
	t.Helper()
	got := titles(tasks)
	if len(got) != len(want) {
		t.Fatalf("got %d tasks, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}

func TestSortTasks_DueDateAbsentLast(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tasks := []Task{
		{Title: "no due"},
		{Title: "late", DueDate: date(2026, 4, 1)},
		{Title: "early", DueDate: date(2026, 2, 1)},
	}

	SortTasks(tasks, SortByDueDate, false, now)
	assertOrder(t, tasks, "early", "late", "no due")

	// Absent values stay last when the direction flips.
	SortTasks(tasks, SortByDueDate, true, now)
	assertOrder(t, tasks, "late", "early", "no due")
}

func TestSortTasks_TitleCaseInsensitive(t *testing.T) {
	now := time.Now()
	tasks := []Task{
		{Title: "banana"},
		{Title: "Apple"},
		{Title: "cherry"},
	}

	SortTasks(tasks, SortByTitle, false, now)
	assertOrder(t, tasks, "Apple", "banana", "cherry")

	SortTasks(tasks, SortByTitle, true, now)
	assertOrder(t, tasks, "cherry", "banana", "Apple")
}

func TestSortTasks_DescriptionAbsentLast(t *testing.T) {
	now := time.Now()
	tasks := []Task{
		{Title: "blank 1"},
		{Title: "zeta", Description: "z"},
		{Title: "alpha", Description: "a"},
		{Title: "blank 2"},
	}

	SortTasks(tasks, SortByDescription, true, now)
	// Descending by description, but the blanks still trail, in their
	// original relative order (stable sort).
	assertOrder(t, tasks, "zeta", "alpha", "blank 1", "blank 2")
}

func TestSortTasks_Status(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tasks := []Task{
		{Title: "pending", DueDate: date(2026, 4, 1)},
		{Title: "done", Completed: true},
		{Title: "overdue", DueDate: date(2026, 1, 1)},
	}

	// Labels sort Done < Overdue < Pending.
	SortTasks(tasks, SortByStatus, false, now)
	assertOrder(t, tasks, "done", "overdue", "pending")
}

func TestSortTasks_Stable(t *testing.T) {
	now := time.Now()
	tasks := []Task{
		{ID: 1, Title: "same"},
		{ID: 2, Title: "same"},
		{ID: 3, Title: "same"},
	}

	SortTasks(tasks, SortByTitle, false, now)
	for i, want := range []int64{1, 2, 3} {
		if tasks[i].ID != want {
			t.Fatalf("stability broken: got id %d at %d", tasks[i].ID, i)
		}
	}
}

func TestParseSortKey(t *testing.T) {
	for _, valid := range []string{"title", "description", "due_date", "status"} {
		if _, err := ParseSortKey(valid); err != nil {
			t.Errorf("ParseSortKey(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := ParseSortKey("priority"); err == nil {
		t.Error("ParseSortKey(\"priority\") expected error")
	}
}
