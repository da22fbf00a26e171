// Package records holds an ordered in-memory collection of records with
// change notification.
package records

import (
	"slices"
	"sync"
)

// Record is anything with a stable identifier.
type Record interface {
	RecordID() string
}

type cloner[T any] interface {
	Clone() T
}

type Op string

const (
	OpInserted Op = "inserted"
	OpReplaced Op = "replaced"
	OpDeleted  Op = "deleted"
)

// Change describes one record transition. Before is nil for inserts and
// After is nil for deletes.
type Change[T Record] struct {
	Op     Op
	Before *T
	After  *T
}

func (c Change[T]) ID() string {
	if c.After != nil {
		return (*c.After).RecordID()
	}
	return (*c.Before).RecordID()
}

// Store is safe for concurrent use. Subscribers are called synchronously,
// after the data lock is released, in mutation order. A subscriber must not
// mutate the store that is notifying it.
type Store[T Record] struct {
	mu    sync.RWMutex
	items []T

	notifyMu    sync.Mutex
	subMu       sync.Mutex
	subscribers map[int]func(Change[T])
	nextSub     int
}

func NewStore[T Record](initial ...T) *Store[T] {
	s := &Store[T]{subscribers: make(map[int]func(Change[T]))}
	for _, item := range initial {
		s.items = append(s.items, clone(item))
	}
	return s
}

func clone[T any](v T) T {
	if c, ok := any(v).(cloner[T]); ok {
		return c.Clone()
	}
	return v
}

// Subscribe registers fn for every change and returns a function that removes it.
func (s *Store[T]) Subscribe(fn func(Change[T])) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

// All returns a copy of the collection in store order.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.items))
	for i, item := range s.items {
		out[i] = clone(item)
	}
	return out
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.index(id); i >= 0 {
		return clone(s.items[i]), true
	}
	var zero T
	return zero, false
}

// Insert puts the record at the front, newest first.
func (s *Store[T]) Insert(item T) {
	s.mu.Lock()
	s.items = slices.Insert(s.items, 0, clone(item))
	after := clone(item)
	s.commit([]Change[T]{{Op: OpInserted, After: &after}})
}

// Replace swaps the record with the same identifier. It reports false when
// no such record exists.
func (s *Store[T]) Replace(item T) bool {
	s.mu.Lock()
	i := s.index(item.RecordID())
	if i < 0 {
		s.mu.Unlock()
		return false
	}

	before := s.items[i]
	s.items[i] = clone(item)
	after := clone(item)
	s.commit([]Change[T]{{Op: OpReplaced, Before: &before, After: &after}})
	return true
}

// Update applies fn to the stored record in place.
func (s *Store[T]) Update(id string, fn func(*T)) (T, bool) {
	changes := s.UpdateMany([]string{id}, fn)
	if len(changes) == 0 {
		var zero T
		return zero, false
	}
	return *changes[0].After, true
}

// UpdateMany applies fn to every listed record in one batch. Unknown ids are
// skipped. The applied changes are returned in store order.
func (s *Store[T]) UpdateMany(ids []string, fn func(*T)) []Change[T] {
	want := toSet(ids)

	s.mu.Lock()
	var changes []Change[T]
	for i := range s.items {
		if _, ok := want[s.items[i].RecordID()]; !ok {
			continue
		}
		before := clone(s.items[i])
		fn(&s.items[i])
		after := clone(s.items[i])
		changes = append(changes, Change[T]{Op: OpReplaced, Before: &before, After: &after})
	}
	s.commit(changes)
	return changes
}

func (s *Store[T]) Delete(id string) bool {
	return len(s.DeleteMany([]string{id})) == 1
}

// DeleteMany removes every listed record in one batch. Unknown ids are skipped.
func (s *Store[T]) DeleteMany(ids []string) []Change[T] {
	want := toSet(ids)

	s.mu.Lock()
	var changes []Change[T]
	kept := s.items[:0]
	for _, item := range s.items {
		if _, ok := want[item.RecordID()]; ok {
			before := item
			changes = append(changes, Change[T]{Op: OpDeleted, Before: &before})
			continue
		}
		kept = append(kept, item)
	}
	clear(s.items[len(kept):])
	s.items = kept
	s.commit(changes)
	return changes
}

// Reset replaces the whole collection without notifying subscribers.
func (s *Store[T]) Reset(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]T, 0, len(items))
	for _, item := range items {
		s.items = append(s.items, clone(item))
	}
}

// commit must be called with mu held. It releases mu and then notifies
// subscribers while holding notifyMu so batches are delivered in order.
func (s *Store[T]) commit(changes []Change[T]) {
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	if len(changes) == 0 {
		return
	}

	s.subMu.Lock()
	keys := make([]int, 0, len(s.subscribers))
	for k := range s.subscribers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	subs := make([]func(Change[T]), 0, len(keys))
	for _, k := range keys {
		subs = append(subs, s.subscribers[k])
	}
	s.subMu.Unlock()

	for _, change := range changes {
		for _, fn := range subs {
			fn(change)
		}
	}
}

func (s *Store[T]) index(id string) int {
	return slices.IndexFunc(s.items, func(item T) bool {
		return item.RecordID() == id
	})
}

func toSet(ids []string) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}
