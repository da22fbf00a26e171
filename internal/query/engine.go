// Package query derives filtered and sorted views of record collections.
package query

import (
	"errors"
	"fmt"
	"slices"
)

var ErrUnknownSortKey = errors.New("unknown sort key")

// Predicate reports whether a record belongs in the view. A nil Predicate is
// an inactive filter.
type Predicate[T any] func(T) bool

// Comparator orders two records ascending: negative, zero or positive.
type Comparator[T any] func(a, b T) int

// Engine is built once per record kind and is safe for concurrent use.
type Engine[T any] struct {
	comparators map[string]Comparator[T]
	defaultSort Sort
}

func NewEngine[T any](defaultSort Sort, comparators map[string]Comparator[T]) *Engine[T] {
	return &Engine[T]{
		comparators: comparators,
		defaultSort: defaultSort,
	}
}

func (e *Engine[T]) DefaultSort() Sort {
	return e.defaultSort
}

// Keys lists the sort keys the engine accepts.
func (e *Engine[T]) Keys() []string {
	keys := make([]string, 0, len(e.comparators))
	for k := range e.comparators {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (e *Engine[T]) Supports(key string) bool {
	_, ok := e.comparators[key]
	return ok
}

// Run filters records by every active predicate and sorts the result. The
// input slice is not modified. Ties keep their input order.
func (e *Engine[T]) Run(records []T, predicates []Predicate[T], sort Sort) ([]T, error) {
	if sort.Key == "" {
		sort = e.defaultSort
	}

	cmp, ok := e.comparators[sort.Key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSortKey, sort.Key)
	}

	out := Filter(records, predicates...)
	if sort.Direction == Descending {
		slices.SortStableFunc(out, func(a, b T) int { return cmp(b, a) })
	} else {
		slices.SortStableFunc(out, cmp)
	}

	return out, nil
}

// Filter keeps the records matching every non-nil predicate, in input order.
func Filter[T any](records []T, predicates ...Predicate[T]) []T {
	active := make([]Predicate[T], 0, len(predicates))
	for _, p := range predicates {
		if p != nil {
			active = append(active, p)
		}
	}

	out := make([]T, 0, len(records))
next:
	for _, r := range records {
		for _, p := range active {
			if !p(r) {
				continue next
			}
		}
		out = append(out, r)
	}
	return out
}
