package selection

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownOp = errors.New("unknown selection op")
	ErrMissingID = errors.New("selection op needs an id")
)

type Op string

const (
	OpToggle    Op = "toggle"
	OpAdd       Op = "add"
	OpRemove    Op = "remove"
	OpToggleAll Op = "toggle-all"
	OpSelectAll Op = "select-all"
	OpClear     Op = "clear"
)

// Apply runs op against the tracker. view holds the ids of the records the
// client is currently looking at and is only read by the *-all ops.
func (t *Tracker) Apply(op Op, id string, view []string) error {
	switch op {
	case OpToggle, OpAdd, OpRemove:
		if id == "" {
			return fmt.Errorf("%s: %w", op, ErrMissingID)
		}
	}

	switch op {
	case OpToggle:
		t.Toggle(id)
	case OpAdd:
		t.Add(id)
	case OpRemove:
		t.Remove(id)
	case OpToggleAll:
		t.ToggleAll(view)
	case OpSelectAll:
		t.SelectAll(view)
	case OpClear:
		t.Clear()
	default:
		return fmt.Errorf("%q: %w", op, ErrUnknownOp)
	}

	return nil
}
