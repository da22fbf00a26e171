// Package selection tracks which records a client has picked for bulk actions.
package selection

import (
	"slices"
	"sync"
)

// Tracker is a set of record ids. Ids outside the current view are kept
// until they are removed explicitly or Prune drops them.
type Tracker struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func New() *Tracker {
	return &Tracker{ids: make(map[string]struct{})}
}

func (t *Tracker) Add(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ids[id] = struct{}{}
}

func (t *Tracker) Remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.ids, id)
}

// Toggle flips id and reports whether it is selected afterwards.
func (t *Tracker) Toggle(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.ids[id]; ok {
		delete(t.ids, id)
		return false
	}
	t.ids[id] = struct{}{}
	return true
}

func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.ids)
}

func (t *Tracker) SelectAll(view []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range view {
		t.ids[id] = struct{}{}
	}
}

// ToggleAll deselects every id in view when all of them are selected and
// selects all of them otherwise. An empty view is a no-op.
func (t *Tracker) ToggleAll(view []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(view) == 0 {
		return
	}

	all := true
	for _, id := range view {
		if _, ok := t.ids[id]; !ok {
			all = false
			break
		}
	}

	for _, id := range view {
		if all {
			delete(t.ids, id)
		} else {
			t.ids[id] = struct{}{}
		}
	}
}

// AllSelected reports whether view is non-empty and fully selected.
func (t *Tracker) AllSelected(view []string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(view) == 0 {
		return false
	}
	for _, id := range view {
		if _, ok := t.ids[id]; !ok {
			return false
		}
	}
	return true
}

func (t *Tracker) Has(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.ids[id]
	return ok
}

// IDs returns the selected ids in sorted order.
func (t *Tracker) IDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.ids))
	for id := range t.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.ids)
}

// Prune drops the given ids, typically after their records were deleted.
func (t *Tracker) Prune(ids ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range ids {
		delete(t.ids, id)
	}
}
