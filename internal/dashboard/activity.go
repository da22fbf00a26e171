package dashboard

import (
	"slices"

	"scholartrack/internal/query"
	"scholartrack/internal/stats"
	"scholartrack/pkg/types"
)

type ActivityFilter struct {
	Search   string `form:"search" json:"search"`
	Type     string `form:"type" json:"type"`
	State    string `form:"state" json:"state"`
	Priority string `form:"priority" json:"priority"`
}

func (f ActivityFilter) Validate() error {
	if !isAll(f.Type) && !slices.Contains(types.ActivityTypes, types.ActivityType(f.Type)) {
		return types.NewValidationError("type", "is not an activity type")
	}
	switch types.ActivityState(f.State) {
	case "", query.All, types.ActivityCompleted, types.ActivityPending, types.ActivityOverdue:
	default:
		return types.NewValidationError("state", "is not an activity state")
	}
	if !isAll(f.Priority) && !slices.Contains(types.ActivityPriorities, types.Priority(f.Priority)) {
		return types.NewValidationError("priority", "is not an activity priority")
	}
	return nil
}

func activityPredicates(f ActivityFilter) []query.Predicate[types.ActivityEntry] {
	return []query.Predicate[types.ActivityEntry]{
		query.TextSearch(f.Search,
			func(e types.ActivityEntry) string { return e.Action },
			func(e types.ActivityEntry) string { return e.Details },
			func(e types.ActivityEntry) string { return e.ScholarshipName },
		),
		query.MatchValue(f.Type, func(e types.ActivityEntry) string { return string(e.Type) }),
		query.MatchValue(f.State, func(e types.ActivityEntry) string { return string(e.State) }),
		query.MatchValue(f.Priority, func(e types.ActivityEntry) string { return string(e.Priority) }),
	}
}

func (d *Dashboard) ActivityView(f ActivityFilter, sort query.Sort) ([]types.ActivityEntry, query.Sort, error) {
	if err := f.Validate(); err != nil {
		return nil, sort, err
	}
	return d.activity.view(activityPredicates(f), sort)
}

func (d *Dashboard) Activity(f ActivityFilter, sort query.Sort) (View[types.ActivityEntry], error) {
	items, sort, err := d.ActivityView(f, sort)
	if err != nil {
		return View[types.ActivityEntry]{}, err
	}

	v := newView(items, sort, d.activity)
	v.Summary = ActivityStats(items)
	return v, nil
}

// ActivityStats counts entries per state and per priority.
func ActivityStats(items []types.ActivityEntry) stats.Summary {
	return stats.Summarize(items, stats.Accessors[types.ActivityEntry]{
		Status:   func(e types.ActivityEntry) string { return string(e.State) },
		Priority: func(e types.ActivityEntry) string { return string(e.Priority) },
	}, stats.Options{})
}

// RecentActivity returns up to n entries, newest first.
func (d *Dashboard) RecentActivity(n int) []types.ActivityEntry {
	items, _, err := d.activity.view(nil, query.Sort{Key: "newest", Direction: query.Ascending})
	if err != nil {
		return nil
	}
	if len(items) > n {
		items = items[:n]
	}
	return items
}

func (d *Dashboard) RecordActivity(in types.ActivityInput) (types.ActivityEntry, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return types.ActivityEntry{}, err
	}

	entry := types.ActivityEntry{
		ScholarshipID:   in.ScholarshipID,
		ScholarshipName: in.ScholarshipName,
		Action:          in.Action,
		Timestamp:       d.now(),
		Details:         in.Details,
		Type:            in.Type,
		State:           in.State,
		Priority:        in.Priority,
		Tags:            slices.Clone(in.Tags),
	}
	return d.appendActivity(entry), nil
}

func (d *Dashboard) appendActivity(entry types.ActivityEntry) types.ActivityEntry {
	entry.ID = activityID()
	d.activity.store.Insert(entry)
	return entry
}
