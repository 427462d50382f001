package store

import (
	"testing"
	"time"

	"github.com/oakbuilt/renoplan/internal/types"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestSortTasksByDueDate(t *testing.T) {
	tasks := []types.Task{
		{ID: "none-1"},
		{ID: "july", DueDate: day(2025, 7, 1)},
		{ID: "none-2"},
		{ID: "may", DueDate: day(2025, 5, 1)},
		{ID: "june", DueDate: day(2025, 6, 1)},
	}

	SortTasksByDueDate(tasks)

	want := []string{"may", "june", "july", "none-1", "none-2"}
	for i, id := range want {
		if tasks[i].ID != id {
			t.Errorf("tasks[%d] = %q, want %q", i, tasks[i].ID, id)
		}
	}
}

func TestSortTasksByDueDateIsStable(t *testing.T) {
	same := day(2025, 5, 1)
	tasks := []types.Task{
		{ID: "first", DueDate: same},
		{ID: "second", DueDate: same},
		{ID: "third", DueDate: same},
	}

	SortTasksByDueDate(tasks)

	for i, id := range []string{"first", "second", "third"} {
		if tasks[i].ID != id {
			t.Errorf("tasks[%d] = %q, want %q; equal keys must keep input order", i, tasks[i].ID, id)
		}
	}
}

func TestSortTasksByDueDateEmpty(t *testing.T) {
	SortTasksByDueDate(nil)
	SortTasksByDueDate([]types.Task{})
}
