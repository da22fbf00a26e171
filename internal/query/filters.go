package query

import (
	"strings"
	"time"

	"scholartrack/pkg/types"

	"github.com/sirupsen/logrus"
)

// All is the sentinel that disables an enum or bucket filter.
const All = "all"

func inactive(v string) bool {
	return v == "" || v == All
}

// TextSearch matches records where any field contains term, ignoring case.
func TextSearch[T any](term string, fields ...func(T) string) Predicate[T] {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	return func(r T) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f(r)), term) {
				return true
			}
		}
		return false
	}
}

// MatchValue matches an enum field exactly.
func MatchValue[T any](value string, field func(T) string) Predicate[T] {
	if inactive(value) {
		return nil
	}

	return func(r T) bool {
		return field(r) == value
	}
}

type AmountBucket string

const (
	AmountUnder20k AmountBucket = "under-20k"
	Amount20kTo30k AmountBucket = "20k-30k"
	Amount30kTo40k AmountBucket = "30k-40k"
	AmountOver40k  AmountBucket = "over-40k"
)

func (b AmountBucket) Valid() bool {
	switch b {
	case AmountUnder20k, Amount20kTo30k, Amount30kTo40k, AmountOver40k:
		return true
	}
	return false
}

func (b AmountBucket) Contains(amount float64) bool {
	switch b {
	case AmountUnder20k:
		return amount < 20000
	case Amount20kTo30k:
		return amount >= 20000 && amount < 30000
	case Amount30kTo40k:
		return amount >= 30000 && amount < 40000
	case AmountOver40k:
		return amount >= 40000
	}
	return true
}

func AmountIn[T any](bucket AmountBucket, field func(T) float64) Predicate[T] {
	if inactive(string(bucket)) {
		return nil
	}

	return func(r T) bool {
		return bucket.Contains(field(r))
	}
}

type DeadlineBucket string

const (
	DeadlineOverdue   DeadlineBucket = "overdue"
	DeadlineThisWeek  DeadlineBucket = "this-week"
	DeadlineThisMonth DeadlineBucket = "this-month"
	DeadlineFuture    DeadlineBucket = "future"
)

func (b DeadlineBucket) Valid() bool {
	switch b {
	case DeadlineOverdue, DeadlineThisWeek, DeadlineThisMonth, DeadlineFuture:
		return true
	}
	return false
}

// ContainsDays classifies a whole-day distance from now.
func (b DeadlineBucket) ContainsDays(days int) bool {
	switch b {
	case DeadlineOverdue:
		return days < 0
	case DeadlineThisWeek:
		return days >= 0 && days <= 7
	case DeadlineThisMonth:
		return days >= 0 && days <= 30
	case DeadlineFuture:
		return days > 30
	}
	return true
}

// DeadlineIn buckets records by how many calendar days their deadline is
// from now's day in now's location. Records with an unknown deadline never
// match and are logged.
func DeadlineIn[T any](bucket DeadlineBucket, now time.Time, field func(T) types.Date, id func(T) string, logger logrus.FieldLogger) Predicate[T] {
	if inactive(string(bucket)) {
		return nil
	}

	return func(r T) bool {
		deadline := field(r)
		if !deadline.Valid() {
			if logger != nil {
				logger.WithField("record_id", id(r)).Warn("excluding record with unparseable deadline from deadline filter")
			}
			return false
		}
		return bucket.ContainsDays(deadline.DaysFrom(now))
	}
}

type ProgressState string

const (
	ProgressNotStarted ProgressState = "not-started"
	ProgressInProgress ProgressState = "in-progress"
	ProgressCompleted  ProgressState = "completed"
)

func (p ProgressState) Valid() bool {
	switch p {
	case ProgressNotStarted, ProgressInProgress, ProgressCompleted:
		return true
	}
	return false
}

func (p ProgressState) Contains(progress int) bool {
	switch p {
	case ProgressNotStarted:
		return progress == 0
	case ProgressInProgress:
		return progress > 0 && progress < 100
	case ProgressCompleted:
		return progress == 100
	}
	return true
}

func ProgressIn[T any](state ProgressState, field func(T) int) Predicate[T] {
	if inactive(string(state)) {
		return nil
	}

	return func(r T) bool {
		return state.Contains(field(r))
	}
}
