package stats

import (
	"math"
	"testing"
	"time"

	"scholartrack/pkg/types"

	"github.com/stretchr/testify/assert"
)

type rec struct {
	status   string
	priority string
	amount   float64
	progress int
	deadline types.Date
	meeting  *time.Time
}

var accessors = Accessors[rec]{
	Status:   func(r rec) string { return r.status },
	Priority: func(r rec) string { return r.priority },
	Amount:   func(r rec) float64 { return r.amount },
	Progress: func(r rec) int { return r.progress },
	Deadline: func(r rec) types.Date { return r.deadline },
}

var now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func opts(window int) Options {
	return Options{Now: now, WindowDays: window, ApprovedStatus: "approved", RejectedStatus: "rejected"}
}

func TestSummarize(t *testing.T) {
	records := []rec{
		{status: "applied", priority: "high", amount: 25000, progress: 50, deadline: types.NewDate(2024, 3, 10)},
		{status: "pending", priority: "low", amount: 30000, progress: 0, deadline: types.NewDate(2024, 2, 1)},
		{status: "approved", priority: "high", amount: 40000, progress: 100, deadline: types.NewDate(2024, 3, 31)},
		{status: "rejected", priority: "medium", amount: 15000, progress: 100},
	}

	s := Summarize(records, accessors, opts(30))

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, map[string]int{"applied": 1, "pending": 1, "approved": 1, "rejected": 1}, s.ByStatus)
	assert.Equal(t, map[string]int{"high": 2, "low": 1, "medium": 1}, s.ByPriority)
	assert.Equal(t, 110000.0, s.TotalAmount)
	assert.Equal(t, 40000.0, s.ApprovedAmount)
	assert.Equal(t, 62.5, s.AverageProgress)
	assert.Equal(t, 2, s.DueWithinWindow)
	assert.Equal(t, 0.5, s.SuccessRate)
}

func TestSummarize_WindowStatuses(t *testing.T) {
	records := []rec{
		{status: "draft", deadline: types.NewDate(2024, 3, 5)},
		{status: "submitted", deadline: types.NewDate(2024, 3, 5)},
	}

	o := opts(14)
	o.WindowStatuses = []string{"draft"}

	assert.Equal(t, 1, Summarize(records, accessors, o).DueWithinWindow)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, accessors, opts(30))

	assert.Zero(t, s.Total)
	assert.Zero(t, s.AverageProgress)
	assert.Zero(t, s.SuccessRate)
	assert.False(t, math.IsNaN(s.SuccessRate))
}

func TestSuccessRate(t *testing.T) {
	tests := []struct {
		approved, rejected int
		want               float64
	}{
		{0, 0, 0},
		{3, 0, 1},
		{0, 2, 0},
		{1, 3, 0.25},
	}

	for _, tc := range tests {
		got := SuccessRate(tc.approved, tc.rejected)
		assert.Equal(t, tc.want, got)
		assert.False(t, math.IsNaN(got) || math.IsInf(got, 0))
	}
}

func TestSuccessRate_NoDecidedRecords(t *testing.T) {
	records := []rec{{status: "applied"}, {status: "pending"}}

	assert.Zero(t, Summarize(records, accessors, opts(30)).SuccessRate)
}

func TestInstantsWithin(t *testing.T) {
	in2 := now.Add(48 * time.Hour)
	past := now.Add(-48 * time.Hour)
	in9 := now.Add(9 * 24 * time.Hour)
	records := []rec{{meeting: &in2}, {meeting: &past}, {meeting: &in9}, {}}

	got := InstantsWithin(records, func(r rec) *time.Time { return r.meeting }, now, 7)

	assert.Equal(t, 1, got)
}

func TestSummarize_Interviews(t *testing.T) {
	soon := now.Add(72 * time.Hour)
	later := now.Add(20 * 24 * time.Hour)
	records := []rec{{meeting: &soon}, {meeting: &later}, {}}

	acc := accessors
	acc.Interview = func(r rec) *time.Time { return r.meeting }
	o := opts(30)
	o.InterviewWindowDays = 7

	assert.Equal(t, 1, Summarize(records, acc, o).InterviewsSoon)
}

func TestSummarize_NoOutcomeStatuses(t *testing.T) {
	records := []rec{{status: ""}, {status: "completed"}}

	s := Summarize(records, accessors, Options{Now: now})

	assert.Zero(t, s.SuccessRate)
	assert.Zero(t, s.ApprovedAmount)
}
