package dashboard

import (
	"time"

	"scholartrack/internal/query"
	"scholartrack/pkg/types"
)

func scholarshipEngine() *query.Engine[types.Scholarship] {
	return query.NewEngine(
		query.Sort{Key: "deadline", Direction: query.Ascending},
		map[string]query.Comparator[types.Scholarship]{
			"institutionName": query.ByString(func(s types.Scholarship) string { return s.InstitutionName }),
			"amount":          query.ByNumber(func(s types.Scholarship) float64 { return s.Amount }),
			"deadline":        query.ByTime(func(s types.Scholarship) time.Time { return s.Deadline.Time }),
			"status":          query.ByString(func(s types.Scholarship) string { return string(s.Status) }),
			"createdAt":       query.ByTime(func(s types.Scholarship) time.Time { return s.CreatedAt }),
		},
	)
}

var applicationPriorityRanks = query.Ranks(types.ApplicationPriorities...)

func applicationEngine() *query.Engine[types.Application] {
	return query.NewEngine(
		query.Sort{Key: "deadline", Direction: query.Ascending},
		map[string]query.Comparator[types.Application]{
			"scholarshipName": query.ByString(func(a types.Application) string { return a.ScholarshipName }),
			"amount":          query.ByNumber(func(a types.Application) float64 { return a.Amount }),
			"deadline":        query.ByTime(func(a types.Application) time.Time { return a.Deadline.Time }),
			"status":          query.ByString(func(a types.Application) string { return string(a.Status) }),
			"priority":        query.ByRank(applicationPriorityRanks, func(a types.Application) string { return string(a.Priority) }),
			"progress":        query.ByNumber(func(a types.Application) int { return a.Progress }),
			"createdAt":       query.ByTime(func(a types.Application) time.Time { return a.CreatedAt }),
		},
	)
}

var activityPriorityRanks = query.Ranks(types.ActivityPriorities...)

// activityPriority treats a missing priority as low.
func activityPriority(e types.ActivityEntry) string {
	if e.Priority == "" {
		return string(types.PriorityLow)
	}
	return string(e.Priority)
}

func activityEngine() *query.Engine[types.ActivityEntry] {
	byTime := query.ByTime(func(e types.ActivityEntry) time.Time { return e.Timestamp })
	return query.NewEngine(
		query.Sort{Key: "newest", Direction: query.Ascending},
		map[string]query.Comparator[types.ActivityEntry]{
			"newest":   query.Reverse(byTime),
			"oldest":   byTime,
			"priority": query.Reverse(query.ByRank(activityPriorityRanks, activityPriority)),
			"type":     query.ByString(func(e types.ActivityEntry) string { return string(e.Type) }),
		},
	)
}
