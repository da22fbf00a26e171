package query

import (
	"testing"
	"time"

	"scholartrack/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	id       string
	name     string
	notes    string
	status   string
	priority string
	amount   float64
	progress int
	deadline types.Date
}

func rowID(r row) string { return r.id }

func rowIDs(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.id
	}
	return out
}

func newRowEngine() *Engine[row] {
	return NewEngine(Sort{Key: "name", Direction: Ascending}, map[string]Comparator[row]{
		"name":     ByString(func(r row) string { return r.name }),
		"amount":   ByNumber(func(r row) float64 { return r.amount }),
		"status":   ByString(func(r row) string { return r.status }),
		"priority": ByRank(Ranks("low", "medium", "high", "urgent"), func(r row) string { return r.priority }),
		"progress": ByNumber(func(r row) int { return r.progress }),
		"deadline": ByTime(func(r row) time.Time { return r.deadline.Time }),
	})
}

func sampleRows() []row {
	return []row{
		{id: "1", name: "Stanford Merit", notes: "essay on leadership", status: "applied", priority: "high", amount: 25000, progress: 40, deadline: types.NewDate(2024, 3, 15)},
		{id: "2", name: "MIT Engineering", notes: "STEM focused", status: "pending", priority: "urgent", amount: 30000, progress: 0, deadline: types.NewDate(2024, 2, 28)},
		{id: "3", name: "harvard undergrad", notes: "FAFSA", status: "approved", priority: "low", amount: 40000, progress: 100, deadline: types.NewDate(2024, 4, 1)},
		{id: "4", name: "Berkeley Chancellor", notes: "community service", status: "rejected", priority: "medium", amount: 15000, progress: 100, deadline: types.NewDate(2024, 1, 31)},
		{id: "5", name: "Yale Excellence", notes: "portfolio", status: "applied", priority: "high", amount: 35000, progress: 60, deadline: types.NewDate(2024, 3, 30)},
	}
}

func TestEngine_RunDoesNotMutateInput(t *testing.T) {
	rows := sampleRows()
	before := rowIDs(rows)

	out, err := newRowEngine().Run(rows, nil, Sort{Key: "amount", Direction: Descending})
	require.NoError(t, err)

	assert.Equal(t, before, rowIDs(rows))
	assert.Equal(t, []string{"3", "5", "2", "1", "4"}, rowIDs(out))
}

func TestEngine_UnknownSortKey(t *testing.T) {
	_, err := newRowEngine().Run(sampleRows(), nil, Sort{Key: "color"})
	assert.ErrorIs(t, err, ErrUnknownSortKey)
}

func TestEngine_DefaultSortWhenKeyEmpty(t *testing.T) {
	out, err := newRowEngine().Run(sampleRows(), nil, Sort{})
	require.NoError(t, err)

	assert.Equal(t, []string{"4", "3", "2", "1", "5"}, rowIDs(out))
}

func TestEngine_SortKeys(t *testing.T) {
	tests := []struct {
		name string
		sort Sort
		want []string
	}{
		{"name is case insensitive", Sort{Key: "name", Direction: Ascending}, []string{"4", "3", "2", "1", "5"}},
		{"priority uses rank table", Sort{Key: "priority", Direction: Ascending}, []string{"3", "4", "1", "5", "2"}},
		{"priority descending keeps ties stable", Sort{Key: "priority", Direction: Descending}, []string{"2", "1", "5", "4", "3"}},
		{"deadline", Sort{Key: "deadline", Direction: Ascending}, []string{"4", "2", "1", "5", "3"}},
		{"progress", Sort{Key: "progress", Direction: Ascending}, []string{"2", "1", "5", "3", "4"}},
		{"status", Sort{Key: "status", Direction: Ascending}, []string{"1", "5", "3", "2", "4"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := newRowEngine().Run(sampleRows(), nil, tc.sort)
			require.NoError(t, err)
			assert.Equal(t, tc.want, rowIDs(out))
		})
	}
}

func TestEngine_ToggleTwiceRestoresOrdering(t *testing.T) {
	engine := newRowEngine()
	rows := sampleRows()

	for _, key := range engine.Keys() {
		start := Sort{Key: key, Direction: Ascending}
		first, err := engine.Run(rows, nil, start)
		require.NoError(t, err)

		toggled := start.Select(key).Select(key)
		assert.Equal(t, start, toggled)

		again, err := engine.Run(rows, nil, toggled)
		require.NoError(t, err)
		assert.Equal(t, rowIDs(first), rowIDs(again), key)
	}
}

func TestSort_Select(t *testing.T) {
	s := Sort{Key: "deadline", Direction: Ascending}

	s = s.Select("deadline")
	assert.Equal(t, Sort{Key: "deadline", Direction: Descending}, s)

	s = s.Select("amount")
	assert.Equal(t, Sort{Key: "amount", Direction: Ascending}, s)
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, Descending, ParseDirection("DESC"))
	assert.Equal(t, Ascending, ParseDirection("asc"))
	assert.Equal(t, Ascending, ParseDirection(""))
}

func TestFilter_NoFalsePositivesOrNegatives(t *testing.T) {
	rows := sampleRows()
	now := time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC)

	searches := []string{"", "e", "ESSAY", "nothing"}
	statuses := []string{All, "applied", "approved"}
	buckets := []AmountBucket{"", AmountUnder20k, Amount20kTo30k, Amount30kTo40k, AmountOver40k}
	deadlines := []DeadlineBucket{All, DeadlineOverdue, DeadlineThisWeek, DeadlineThisMonth, DeadlineFuture}

	for _, search := range searches {
		for _, status := range statuses {
			for _, bucket := range buckets {
				for _, deadline := range deadlines {
					preds := []Predicate[row]{
						TextSearch(search, func(r row) string { return r.name }, func(r row) string { return r.notes }),
						MatchValue(status, func(r row) string { return r.status }),
						AmountIn(bucket, func(r row) float64 { return r.amount }),
						DeadlineIn(deadline, now, func(r row) types.Date { return r.deadline }, rowID, nil),
					}

					got := map[string]bool{}
					for _, r := range Filter(rows, preds...) {
						got[r.id] = true
					}

					for _, r := range rows {
						want := true
						for _, p := range preds {
							if p != nil && !p(r) {
								want = false
							}
						}
						assert.Equal(t, want, got[r.id], "search=%q status=%q amount=%q deadline=%q id=%s", search, status, bucket, deadline, r.id)
					}
				}
			}
		}
	}
}

func TestAmountIn_20kTo30k(t *testing.T) {
	var rows []row
	for i, amount := range []float64{15000, 20000, 29999, 30000, 40000} {
		rows = append(rows, row{id: string(rune('a' + i)), amount: amount})
	}

	out := Filter(rows, AmountIn(Amount20kTo30k, func(r row) float64 { return r.amount }))

	var amounts []float64
	for _, r := range out {
		amounts = append(amounts, r.amount)
	}
	assert.Equal(t, []float64{20000, 29999}, amounts)
}

func TestDeadlineIn_OverdueExcludesToday(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)
	rows := []row{
		{id: "yesterday", deadline: types.NewDate(2024, 3, 14)},
		{id: "today", deadline: types.NewDate(2024, 3, 15)},
		{id: "tomorrow", deadline: types.NewDate(2024, 3, 16)},
	}

	out := Filter(rows, DeadlineIn(DeadlineOverdue, now, func(r row) types.Date { return r.deadline }, rowID, nil))

	assert.Equal(t, []string{"yesterday"}, rowIDs(out))
}

func TestDeadlineIn_TodayInNowsLocation(t *testing.T) {
	// 02:00Z on the 16th is still the evening of the 15th in UTC-4.
	now := time.Date(2024, 3, 15, 22, 0, 0, 0, time.FixedZone("UTC-4", -4*60*60))
	rows := []row{
		{id: "yesterday", deadline: types.NewDate(2024, 3, 14)},
		{id: "today", deadline: types.NewDate(2024, 3, 15)},
	}
	field := func(r row) types.Date { return r.deadline }

	assert.Equal(t, []string{"yesterday"}, rowIDs(Filter(rows, DeadlineIn(DeadlineOverdue, now, field, rowID, nil))))
	assert.Equal(t, []string{"today"}, rowIDs(Filter(rows, DeadlineIn(DeadlineThisWeek, now, field, rowID, nil))))
}

func TestDeadlineIn_Buckets(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	rows := []row{
		{id: "in3", deadline: types.NewDate(2024, 3, 4)},
		{id: "in8", deadline: types.NewDate(2024, 3, 9)},
		{id: "in30", deadline: types.NewDate(2024, 3, 31)},
		{id: "in31", deadline: types.NewDate(2024, 4, 1)},
	}
	field := func(r row) types.Date { return r.deadline }

	assert.Equal(t, []string{"in3", "in8"}, rowIDs(Filter(rows, DeadlineIn(DeadlineThisWeek, now, field, rowID, nil))))
	assert.Equal(t, []string{"in3", "in8", "in30"}, rowIDs(Filter(rows, DeadlineIn(DeadlineThisMonth, now, field, rowID, nil))))
	assert.Equal(t, []string{"in31"}, rowIDs(Filter(rows, DeadlineIn(DeadlineFuture, now, field, rowID, nil))))
}

func TestDeadlineIn_InvalidDateExcludedAndLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := []row{{id: "bad"}, {id: "good", deadline: types.NewDate(2024, 2, 1)}}

	out := Filter(rows, DeadlineIn(DeadlineOverdue, now, func(r row) types.Date { return r.deadline }, rowID, logger))

	assert.Equal(t, []string{"good"}, rowIDs(out))
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "bad", hook.LastEntry().Data["record_id"])
}

func TestProgressIn(t *testing.T) {
	rows := sampleRows()
	field := func(r row) int { return r.progress }

	assert.Equal(t, []string{"2"}, rowIDs(Filter(rows, ProgressIn(ProgressNotStarted, field))))
	assert.Equal(t, []string{"1", "5"}, rowIDs(Filter(rows, ProgressIn(ProgressInProgress, field))))
	assert.Equal(t, []string{"3", "4"}, rowIDs(Filter(rows, ProgressIn(ProgressCompleted, field))))
	assert.Nil(t, ProgressIn(All, field))
}

func TestSentinelsAreInactive(t *testing.T) {
	assert.Nil(t, TextSearch[row]("   "))
	assert.Nil(t, MatchValue(All, func(r row) string { return r.status }))
	assert.Nil(t, MatchValue("", func(r row) string { return r.status }))
	assert.Nil(t, AmountIn(AmountBucket(All), func(r row) float64 { return r.amount }))
}
