// Package stats computes summary figures over a snapshot of records.
package stats

import (
	"slices"
	"time"

	"scholartrack/pkg/types"
)

// Accessors tell Summarize how to read a record. Nil accessors are skipped.
type Accessors[T any] struct {
	Status   func(T) string
	Priority func(T) string
	Amount   func(T) float64
	Progress func(T) int
	Deadline func(T) types.Date

	// Interview is the next scheduled meeting, if any.
	Interview func(T) *time.Time
}

type Options struct {
	Now        time.Time
	WindowDays int

	// WindowStatuses restricts the deadline window count to these statuses.
	WindowStatuses []string

	InterviewWindowDays int

	// ApprovedStatus and RejectedStatus feed the success rate. Leave them
	// empty for kinds that have no outcome.
	ApprovedStatus string
	RejectedStatus string
}

type Summary struct {
	Total           int                `json:"total"`
	ByStatus        map[string]int     `json:"byStatus"`
	ByPriority      map[string]int     `json:"byPriority,omitempty"`
	TotalAmount     float64            `json:"totalAmount"`
	AmountByStatus  map[string]float64 `json:"amountByStatus"`
	ApprovedAmount  float64            `json:"approvedAmount"`
	AverageProgress float64            `json:"averageProgress"`
	DueWithinWindow int                `json:"dueWithinWindow"`
	WindowDays      int                `json:"windowDays"`
	InterviewsSoon  int                `json:"interviewsSoon,omitempty"`
	SuccessRate     float64            `json:"successRate"`
}

func Summarize[T any](records []T, acc Accessors[T], opts Options) Summary {
	s := Summary{
		Total:          len(records),
		ByStatus:       make(map[string]int),
		AmountByStatus: make(map[string]float64),
		WindowDays:     opts.WindowDays,
	}
	if acc.Priority != nil {
		s.ByPriority = make(map[string]int)
	}

	var progressSum int
	for _, r := range records {
		status := ""
		if acc.Status != nil {
			status = acc.Status(r)
			s.ByStatus[status]++
		}
		if acc.Priority != nil {
			s.ByPriority[acc.Priority(r)]++
		}
		if acc.Amount != nil {
			amount := acc.Amount(r)
			s.TotalAmount += amount
			if status != "" {
				s.AmountByStatus[status] += amount
			}
		}
		if acc.Progress != nil {
			progressSum += acc.Progress(r)
		}
	}

	if acc.Progress != nil && len(records) > 0 {
		s.AverageProgress = float64(progressSum) / float64(len(records))
	}

	if acc.Deadline != nil {
		eligible := records
		if len(opts.WindowStatuses) > 0 && acc.Status != nil {
			eligible = make([]T, 0, len(records))
			for _, r := range records {
				if slices.Contains(opts.WindowStatuses, acc.Status(r)) {
					eligible = append(eligible, r)
				}
			}
		}
		s.DueWithinWindow = DueWithin(eligible, acc.Deadline, opts.Now, opts.WindowDays)
	}

	if acc.Interview != nil {
		s.InterviewsSoon = InstantsWithin(records, acc.Interview, opts.Now, opts.InterviewWindowDays)
	}

	if opts.ApprovedStatus != "" {
		s.ApprovedAmount = s.AmountByStatus[opts.ApprovedStatus]
		s.SuccessRate = SuccessRate(s.ByStatus[opts.ApprovedStatus], s.ByStatus[opts.RejectedStatus])
	}

	return s
}

// DueWithin counts records whose deadline is between today, taken in now's
// location, and days from now, both ends included. Unknown deadlines are not counted.
func DueWithin[T any](records []T, deadline func(T) types.Date, now time.Time, days int) int {
	n := 0
	for _, r := range records {
		d := deadline(r)
		if !d.Valid() {
			continue
		}
		if left := d.DaysFrom(now); left >= 0 && left <= days {
			n++
		}
	}
	return n
}

// SuccessRate is approved / (approved + rejected), or 0 when nothing has
// been decided yet.
func SuccessRate(approved, rejected int) float64 {
	decided := approved + rejected
	if decided <= 0 {
		return 0
	}
	return float64(approved) / float64(decided)
}

// InstantsWithin counts non-nil instants between now and days from now.
func InstantsWithin[T any](records []T, at func(T) *time.Time, now time.Time, days int) int {
	n := 0
	for _, r := range records {
		t := at(r)
		if t == nil {
			continue
		}
		if left := types.DaysUntil(*t, now); left >= 0 && left <= days {
			n++
		}
	}
	return n
}
