package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string
	Name string
	Tags []string
}

func (i item) RecordID() string { return i.ID }

func (i item) Clone() item {
	out := i
	out.Tags = append([]string(nil), i.Tags...)
	return out
}

func ids(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestStore_InsertPrepends(t *testing.T) {
	s := NewStore(item{ID: "a"}, item{ID: "b"})
	s.Insert(item{ID: "c"})

	assert.Equal(t, []string{"c", "a", "b"}, ids(s.All()))
	assert.Equal(t, 3, s.Len())
}

func TestStore_ReplaceByIdentity(t *testing.T) {
	s := NewStore(item{ID: "a", Name: "old"})

	require.True(t, s.Replace(item{ID: "a", Name: "new"}))
	assert.False(t, s.Replace(item{ID: "missing"}))

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "new", got.Name)
}

func TestStore_DeleteManySkipsUnknown(t *testing.T) {
	s := NewStore(item{ID: "a"}, item{ID: "b"}, item{ID: "c"})

	changes := s.DeleteMany([]string{"a", "zzz", "c"})

	assert.Len(t, changes, 2)
	assert.Equal(t, []string{"b"}, ids(s.All()))
	assert.False(t, s.Delete("a"))
	assert.True(t, s.Delete("b"))
	assert.Zero(t, s.Len())
}

func TestStore_SnapshotsAreIsolated(t *testing.T) {
	s := NewStore(item{ID: "a", Tags: []string{"x"}})

	snap := s.All()
	snap[0].Tags[0] = "mutated"
	snap[0].Name = "mutated"

	got, _ := s.Get("a")
	assert.Equal(t, []string{"x"}, got.Tags)
	assert.Empty(t, got.Name)
}

func TestStore_UpdateMany(t *testing.T) {
	s := NewStore(item{ID: "a"}, item{ID: "b"}, item{ID: "c"})

	changes := s.UpdateMany([]string{"c", "a", "nope"}, func(it *item) {
		it.Name = "done"
	})

	require.Len(t, changes, 2)
	assert.Equal(t, "a", changes[0].ID())
	assert.Equal(t, "c", changes[1].ID())
	assert.Empty(t, changes[0].Before.Name)
	assert.Equal(t, "done", changes[0].After.Name)

	b, _ := s.Get("b")
	assert.Empty(t, b.Name)
}

func TestStore_SubscribeReceivesChangesInOrder(t *testing.T) {
	s := NewStore[item]()

	var seen []Op
	cancel := s.Subscribe(func(c Change[item]) {
		seen = append(seen, c.Op)
	})

	s.Insert(item{ID: "a"})
	s.Replace(item{ID: "a", Name: "n"})
	s.Delete("a")
	s.Delete("a")

	assert.Equal(t, []Op{OpInserted, OpReplaced, OpDeleted}, seen)

	cancel()
	s.Insert(item{ID: "b"})
	assert.Len(t, seen, 3)
}

func TestStore_ResetDoesNotNotify(t *testing.T) {
	s := NewStore[item]()
	called := false
	s.Subscribe(func(Change[item]) { called = true })

	s.Reset([]item{{ID: "x"}, {ID: "y"}})

	assert.False(t, called)
	assert.Equal(t, []string{"x", "y"}, ids(s.All()))
}
