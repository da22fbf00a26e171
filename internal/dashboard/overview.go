package dashboard

import (
	"scholartrack/internal/stats"
	"scholartrack/pkg/types"
)

const recentActivityLimit = 10

type Overview struct {
	Scholarships   stats.Summary         `json:"scholarships"`
	Applications   stats.Summary         `json:"applications"`
	Activity       stats.Summary         `json:"activity"`
	RecentActivity []types.ActivityEntry `json:"recentActivity"`
}

// Overview summarises every collection, unfiltered.
func (d *Dashboard) Overview() Overview {
	return Overview{
		Scholarships:   d.ScholarshipStats(d.scholarships.store.All()),
		Applications:   d.ApplicationStats(d.applications.store.All()),
		Activity:       ActivityStats(d.activity.store.All()),
		RecentActivity: d.RecentActivity(recentActivityLimit),
	}
}
