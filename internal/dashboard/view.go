package dashboard

import (
	"scholartrack/internal/query"
	"scholartrack/internal/records"
	"scholartrack/internal/stats"
	"scholartrack/pkg/types"
)

// View is one derived list plus what a client needs to render it.
type View[T any] struct {
	Items       []T                        `json:"items"`
	Count       int                        `json:"count"`
	Total       int                        `json:"total"`
	Sort        query.Sort                 `json:"sort"`
	Selected    []string                   `json:"selected"`
	AllSelected bool                       `json:"allSelected"`
	Summary     stats.Summary              `json:"summary"`
	Sync        map[string]types.SyncState `json:"sync,omitempty"`
}

func newView[T records.Record](items []T, sort query.Sort, c *collection[T]) View[T] {
	return View[T]{
		Items:       items,
		Count:       len(items),
		Total:       c.store.Len(),
		Sort:        sort,
		Selected:    c.tracker.IDs(),
		AllSelected: c.tracker.AllSelected(ids(items)),
	}
}

const (
	BulkDelete   = "delete"
	BulkStatus   = "status"
	BulkPriority = "priority"
)

type BulkRequest struct {
	Action   string `json:"action"`
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
}

func isAll(v string) bool {
	return v == "" || v == query.All
}

func validateBuckets(amount, deadline string) error {
	if !isAll(amount) && !query.AmountBucket(amount).Valid() {
		return types.NewValidationError("amount", "is not an amount range")
	}
	if !isAll(deadline) && !query.DeadlineBucket(deadline).Valid() {
		return types.NewValidationError("deadline", "is not a deadline range")
	}
	return nil
}
