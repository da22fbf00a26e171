// Package bulk applies one mutation to every selected record.
package bulk

import (
	"errors"
	"slices"

	"scholartrack/internal/records"
	"scholartrack/internal/selection"
)

var ErrEmptyMutation = errors.New("bulk: mutation has no update function")

type Action string

const (
	ActionDelete Action = "delete"
	ActionUpdate Action = "update"
)

type Mutation[T any] struct {
	Action Action
	update func(*T)
}

func Delete[T any]() Mutation[T] {
	return Mutation[T]{Action: ActionDelete}
}

// Update builds a mutation that calls fn on each selected record. fn must not
// fail; validate its inputs before building the mutation.
func Update[T any](fn func(*T)) Mutation[T] {
	return Mutation[T]{Action: ActionUpdate, update: fn}
}

type Result[T records.Record] struct {
	Action    Action   `json:"action"`
	Requested int      `json:"requested"`
	Applied   int      `json:"applied"`
	Missing   []string `json:"missing,omitempty"`

	Changes []records.Change[T] `json:"-"`
}

type Mutator[T records.Record] struct {
	store   *records.Store[T]
	tracker *selection.Tracker
}

func New[T records.Record](store *records.Store[T], tracker *selection.Tracker) *Mutator[T] {
	return &Mutator[T]{store: store, tracker: tracker}
}

// Apply runs m over the current selection as one store batch and removes the
// processed ids from the selection. Ids with no matching record are reported in Missing.
func (b *Mutator[T]) Apply(m Mutation[T]) (Result[T], error) {
	if m.Action == ActionUpdate && m.update == nil {
		return Result[T]{}, ErrEmptyMutation
	}
	if m.Action != ActionUpdate && m.Action != ActionDelete {
		return Result[T]{}, errors.New("bulk: unknown action " + string(m.Action))
	}

	ids := b.tracker.IDs()
	res := Result[T]{Action: m.Action, Requested: len(ids)}
	if len(ids) == 0 {
		return res, nil
	}

	switch m.Action {
	case ActionDelete:
		res.Changes = b.store.DeleteMany(ids)
	case ActionUpdate:
		res.Changes = b.store.UpdateMany(ids, m.update)
	}
	res.Applied = len(res.Changes)

	touched := make([]string, 0, len(res.Changes))
	for _, c := range res.Changes {
		touched = append(touched, c.ID())
	}
	for _, id := range ids {
		if !slices.Contains(touched, id) {
			res.Missing = append(res.Missing, id)
		}
	}

	b.tracker.Prune(ids...)

	return res, nil
}
