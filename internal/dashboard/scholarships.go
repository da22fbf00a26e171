package dashboard

import (
	"context"
	"fmt"

	"scholartrack/internal/bulk"
	"scholartrack/internal/query"
	"scholartrack/internal/records"
	"scholartrack/internal/selection"
	"scholartrack/internal/stats"
	"scholartrack/pkg/types"
)

type ScholarshipFilter struct {
	Search   string `form:"search" json:"search"`
	Status   string `form:"status" json:"status"`
	Amount   string `form:"amount" json:"amount"`
	Deadline string `form:"deadline" json:"deadline"`
}

func (f ScholarshipFilter) Validate() error {
	if !isAll(f.Status) && !types.ScholarshipStatus(f.Status).Valid() {
		return types.NewValidationError("status", "is not a scholarship status")
	}
	return validateBuckets(f.Amount, f.Deadline)
}

func (d *Dashboard) scholarshipPredicates(f ScholarshipFilter) []query.Predicate[types.Scholarship] {
	return []query.Predicate[types.Scholarship]{
		query.TextSearch(f.Search,
			func(s types.Scholarship) string { return s.InstitutionName },
			func(s types.Scholarship) string { return s.Notes },
		),
		query.MatchValue(f.Status, func(s types.Scholarship) string { return string(s.Status) }),
		query.AmountIn(query.AmountBucket(f.Amount), func(s types.Scholarship) float64 { return s.Amount }),
		query.DeadlineIn(query.DeadlineBucket(f.Deadline), d.Now(),
			func(s types.Scholarship) types.Date { return s.Deadline },
			func(s types.Scholarship) string { return s.ID },
			d.logger,
		),
	}
}

// ScholarshipView returns the filtered and sorted scholarships.
func (d *Dashboard) ScholarshipView(f ScholarshipFilter, sort query.Sort) ([]types.Scholarship, query.Sort, error) {
	if err := f.Validate(); err != nil {
		return nil, sort, err
	}
	return d.scholarships.view(d.scholarshipPredicates(f), sort)
}

func (d *Dashboard) Scholarships(f ScholarshipFilter, sort query.Sort) (View[types.Scholarship], error) {
	items, sort, err := d.ScholarshipView(f, sort)
	if err != nil {
		return View[types.Scholarship]{}, err
	}

	v := newView(items, sort, d.scholarships)
	v.Summary = d.ScholarshipStats(items)
	v.Sync = d.syncStates(items)
	return v, nil
}

func (d *Dashboard) ScholarshipStats(items []types.Scholarship) stats.Summary {
	return stats.Summarize(items, stats.Accessors[types.Scholarship]{
		Status:   func(s types.Scholarship) string { return string(s.Status) },
		Amount:   func(s types.Scholarship) float64 { return s.Amount },
		Deadline: func(s types.Scholarship) types.Date { return s.Deadline },
	}, stats.Options{
		Now:            d.Now(),
		WindowDays:     d.windowDays,
		ApprovedStatus: string(types.ScholarshipStatusApproved),
		RejectedStatus: string(types.ScholarshipStatusRejected),
	})
}

func (d *Dashboard) Scholarship(id string) (types.Scholarship, error) {
	s, ok := d.scholarships.store.Get(id)
	if !ok {
		return s, fmt.Errorf("scholarship %s: %w", id, types.ErrNotFound)
	}
	return s, nil
}

// AddScholarship inserts the scholarship locally and then pushes it to the
// backend. If the backend rejects it the local copy is removed again and
// the returned error wraps types.ErrSyncRejected.
func (d *Dashboard) AddScholarship(ctx context.Context, in types.ScholarshipInput) (types.Scholarship, types.SyncState, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return types.Scholarship{}, "", err
	}

	now := d.now()
	s := types.Scholarship{ID: d.newID(), CreatedAt: now, UpdatedAt: now}
	in.Apply(&s)

	if d.backend == nil {
		d.setSync(s.ID, types.SyncLocal)
		d.scholarships.store.Insert(s)
		return s, types.SyncLocal, nil
	}

	d.setSync(s.ID, types.SyncPending)
	d.scholarships.store.Insert(s)

	ctx, cancel := context.WithTimeout(ctx, d.remoteTimeout)
	defer cancel()

	if err := d.backend.InsertScholarship(ctx, s); err != nil {
		d.logger.WithError(err).WithField("scholarship_id", s.ID).Error("backend rejected scholarship, rolling back")
		d.rollback(s.ID)
		return s, types.SyncFailed, fmt.Errorf("insert scholarship %s: %w: %w", s.ID, types.ErrSyncRejected, err)
	}

	d.setSync(s.ID, types.SyncCommitted)
	return s, types.SyncCommitted, nil
}

func (d *Dashboard) rollback(id string) {
	d.syncMu.Lock()
	d.rollbacks[id] = struct{}{}
	d.syncMu.Unlock()

	d.scholarships.store.Delete(id)

	d.syncMu.Lock()
	delete(d.rollbacks, id)
	d.syncState[id] = types.SyncFailed
	d.syncMu.Unlock()
}

func (d *Dashboard) UpdateScholarship(id string, in types.ScholarshipInput) (types.Scholarship, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return types.Scholarship{}, err
	}

	now := d.now()
	s, ok := d.scholarships.store.Update(id, func(s *types.Scholarship) {
		in.Apply(s)
		s.Touch(now)
	})
	if !ok {
		return s, fmt.Errorf("scholarship %s: %w", id, types.ErrNotFound)
	}
	return s, nil
}

func (d *Dashboard) DeleteScholarship(id string) error {
	if !d.scholarships.store.Delete(id) {
		return fmt.Errorf("scholarship %s: %w", id, types.ErrNotFound)
	}
	return nil
}

// SelectScholarships applies a selection op relative to the view described
// by f and sort and returns the selected ids.
func (d *Dashboard) SelectScholarships(op selection.Op, id string, f ScholarshipFilter, sort query.Sort) ([]string, error) {
	items, _, err := d.ScholarshipView(f, sort)
	if err != nil {
		return nil, err
	}
	if err := d.scholarships.tracker.Apply(op, id, ids(items)); err != nil {
		return nil, types.NewValidationError("op", err.Error())
	}
	return d.scholarships.tracker.IDs(), nil
}

func (d *Dashboard) BulkScholarships(req BulkRequest) (bulk.Result[types.Scholarship], error) {
	var m bulk.Mutation[types.Scholarship]
	switch req.Action {
	case BulkDelete:
		m = bulk.Delete[types.Scholarship]()
	case BulkStatus:
		status := types.ScholarshipStatus(req.Status)
		if !status.Valid() {
			return bulk.Result[types.Scholarship]{}, types.NewValidationError("status", "is not a scholarship status")
		}
		now := d.now()
		m = bulk.Update(func(s *types.Scholarship) {
			s.Status = status
			s.Touch(now)
		})
	default:
		return bulk.Result[types.Scholarship]{}, types.NewValidationError("action", "must be delete or status")
	}

	res, err := d.scholarships.bulk.Apply(m)
	if err != nil {
		return res, err
	}

	d.logger.WithField("action", req.Action).WithField("applied", res.Applied).Info("bulk scholarship update")
	return res, nil
}

func (d *Dashboard) onScholarshipChange(c records.Change[types.Scholarship]) {
	now := d.now()

	switch c.Op {
	case records.OpInserted:
		s := *c.After
		status := s.Status
		d.appendActivity(types.ActivityEntry{
			ScholarshipID:   s.ID,
			ScholarshipName: s.InstitutionName,
			Action:          types.ActionScholarshipAdded,
			NewStatus:       &status,
			Timestamp:       now,
			Details:         "Added new scholarship application",
			Type:            types.ActivityApplication,
			State:           types.ActivityCompleted,
		})

	case records.OpReplaced:
		before, after := *c.Before, *c.After
		if before.Status == after.Status {
			return
		}
		oldStatus, newStatus := before.Status, after.Status
		d.appendActivity(types.ActivityEntry{
			ScholarshipID:   after.ID,
			ScholarshipName: after.InstitutionName,
			Action:          types.ActionStatusUpdated,
			OldStatus:       &oldStatus,
			NewStatus:       &newStatus,
			Timestamp:       now,
			Details:         fmt.Sprintf("Status changed from %s to %s", oldStatus, newStatus),
			Type:            types.ActivityApplication,
			State:           types.ActivityCompleted,
		})

	case records.OpDeleted:
		s := *c.Before
		d.scholarships.tracker.Prune(s.ID)

		d.syncMu.Lock()
		_, rolledBack := d.rollbacks[s.ID]
		if !rolledBack {
			delete(d.syncState, s.ID)
		}
		d.syncMu.Unlock()

		entry := types.ActivityEntry{
			ScholarshipID:   s.ID,
			ScholarshipName: s.InstitutionName,
			Action:          types.ActionScholarshipDeleted,
			Timestamp:       now,
			Details:         "Removed scholarship application",
			Type:            types.ActivityApplication,
			State:           types.ActivityCompleted,
		}
		if rolledBack {
			entry.Action = types.ActionSyncFailed
			entry.Details = "Backend rejected the scholarship, local copy removed"
			entry.State = types.ActivityOverdue
			entry.Priority = types.PriorityHigh
		}
		d.appendActivity(entry)
	}
}
