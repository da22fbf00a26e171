package bulk

import (
	"testing"

	"scholartrack/internal/records"
	"scholartrack/internal/selection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id     string
	status string
}

func (i item) RecordID() string { return i.id }

func fixture() (*records.Store[item], *selection.Tracker, *Mutator[item]) {
	store := records.NewStore(
		item{id: "a", status: "pending"},
		item{id: "b", status: "pending"},
		item{id: "c", status: "pending"},
		item{id: "d", status: "pending"},
	)
	tracker := selection.New()
	return store, tracker, New(store, tracker)
}

func TestApply_UpdateChangesOnlySelected(t *testing.T) {
	store, tracker, m := fixture()
	tracker.SelectAll([]string{"b", "d"})

	res, err := m.Apply(Update(func(i *item) { i.status = "applied" }))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Requested)
	assert.Equal(t, 2, res.Applied)
	assert.Empty(t, res.Missing)
	assert.Zero(t, tracker.Len())

	got := map[string]string{}
	for _, it := range store.All() {
		got[it.id] = it.status
	}
	assert.Equal(t, map[string]string{"a": "pending", "b": "applied", "c": "pending", "d": "applied"}, got)
}

func TestApply_DeleteSkipsMissing(t *testing.T) {
	store, tracker, m := fixture()
	tracker.SelectAll([]string{"a", "gone"})

	res, err := m.Apply(Delete[item]())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Requested)
	assert.Equal(t, 1, res.Applied)
	assert.Equal(t, []string{"gone"}, res.Missing)
	assert.Equal(t, 3, store.Len())
	assert.Zero(t, tracker.Len())
}

func TestApply_EmptySelection(t *testing.T) {
	store, _, m := fixture()

	res, err := m.Apply(Delete[item]())
	require.NoError(t, err)

	assert.Zero(t, res.Requested)
	assert.Equal(t, 4, store.Len())
}

func TestApply_OneNotificationBatch(t *testing.T) {
	store, tracker, m := fixture()
	tracker.SelectAll([]string{"a", "b", "c"})

	var seen []string
	store.Subscribe(func(c records.Change[item]) { seen = append(seen, c.ID()) })

	_, err := m.Apply(Update(func(i *item) { i.status = "approved" }))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, seen)
}

func TestApply_InvalidMutation(t *testing.T) {
	store, tracker, m := fixture()
	tracker.Add("a")

	_, err := m.Apply(Update[item](nil))
	assert.ErrorIs(t, err, ErrEmptyMutation)

	_, err = m.Apply(Mutation[item]{Action: "archive"})
	assert.Error(t, err)

	assert.Equal(t, 4, store.Len())
	assert.True(t, tracker.Has("a"))
}

func TestApply_KeepsIDsSelectedDuringBatch(t *testing.T) {
	_, tracker, m := fixture()
	tracker.SelectAll([]string{"a", "b"})

	res, err := m.Apply(Update(func(i *item) {
		i.status = "applied"
		tracker.Add("d")
	}))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Applied)
	assert.False(t, tracker.Has("a"))
	assert.False(t, tracker.Has("b"))
	assert.True(t, tracker.Has("d"))
	assert.Equal(t, 1, tracker.Len())
}
