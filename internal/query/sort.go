package query

import (
	"cmp"
	"strings"
	"time"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// ParseDirection maps anything but "desc" to ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Descending)) {
		return Descending
	}
	return Ascending
}

type Sort struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// Select returns the sort after the user picks key: the same key flips the
// direction, a new key starts ascending.
func (s Sort) Select(key string) Sort {
	if key == s.Key {
		return Sort{Key: key, Direction: s.Direction.Flip()}
	}
	return Sort{Key: key, Direction: Ascending}
}

// ByString compares case-insensitively.
func ByString[T any](field func(T) string) Comparator[T] {
	return func(a, b T) int {
		return strings.Compare(strings.ToLower(field(a)), strings.ToLower(field(b)))
	}
}

func ByNumber[T any, N cmp.Ordered](field func(T) N) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(field(a), field(b))
	}
}

// ByTime puts zero times first.
func ByTime[T any](field func(T) time.Time) Comparator[T] {
	return func(a, b T) int {
		return field(a).Compare(field(b))
	}
}

// RankTable maps enum values to their order; values missing from the table
// rank below every listed value.
type RankTable map[string]int

// Ranks builds a table from values listed lowest first.
func Ranks[S ~string](order ...S) RankTable {
	t := make(RankTable, len(order))
	for i, v := range order {
		t[string(v)] = i + 1
	}
	return t
}

func (t RankTable) Rank(v string) int {
	return t[v]
}

func ByRank[T any](table RankTable, field func(T) string) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(table.Rank(field(a)), table.Rank(field(b)))
	}
}

// Reverse turns an ascending comparator into a descending one.
func Reverse[T any](c Comparator[T]) Comparator[T] {
	return func(a, b T) int { return c(b, a) }
}
