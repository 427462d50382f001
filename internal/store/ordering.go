package store

import (
	"sort"

	"github.com/oakbuilt/renoplan/internal/types"
)

// SortTasksByDueDate orders tasks by ascending due date. Tasks without a
// due date sort last; the sort is stable so ties keep backend order.
// Every adapter applies this after decoding so the ordering contract
// holds regardless of how (or whether) the backend sorted server-side.
func SortTasksByDueDate(tasks []types.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].DueDate, tasks[j].DueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}
