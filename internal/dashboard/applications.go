package dashboard

import (
	"fmt"
	"slices"
	"time"

	"scholartrack/internal/bulk"
	"scholartrack/internal/query"
	"scholartrack/internal/selection"
	"scholartrack/internal/stats"
	"scholartrack/pkg/types"
)

type ApplicationFilter struct {
	Search   string `form:"search" json:"search"`
	Status   string `form:"status" json:"status"`
	Priority string `form:"priority" json:"priority"`
	Amount   string `form:"amount" json:"amount"`
	Deadline string `form:"deadline" json:"deadline"`
	Progress string `form:"progress" json:"progress"`
}

func (f ApplicationFilter) Validate() error {
	if !isAll(f.Status) && !types.ApplicationStatus(f.Status).Valid() {
		return types.NewValidationError("status", "is not an application status")
	}
	if !isAll(f.Priority) && !types.Priority(f.Priority).ValidForApplication() {
		return types.NewValidationError("priority", "is not an application priority")
	}
	if !isAll(f.Progress) && !query.ProgressState(f.Progress).Valid() {
		return types.NewValidationError("progress", "is not a progress state")
	}
	return validateBuckets(f.Amount, f.Deadline)
}

func (d *Dashboard) applicationPredicates(f ApplicationFilter) []query.Predicate[types.Application] {
	return []query.Predicate[types.Application]{
		query.TextSearch(f.Search,
			func(a types.Application) string { return a.ScholarshipName },
			func(a types.Application) string { return a.InstitutionName },
			func(a types.Application) string { return a.Notes },
		),
		query.MatchValue(f.Status, func(a types.Application) string { return string(a.Status) }),
		query.MatchValue(f.Priority, func(a types.Application) string { return string(a.Priority) }),
		query.AmountIn(query.AmountBucket(f.Amount), func(a types.Application) float64 { return a.Amount }),
		query.DeadlineIn(query.DeadlineBucket(f.Deadline), d.Now(),
			func(a types.Application) types.Date { return a.Deadline },
			func(a types.Application) string { return a.ID },
			d.logger,
		),
		query.ProgressIn(query.ProgressState(f.Progress), func(a types.Application) int { return a.Progress }),
	}
}

func (d *Dashboard) ApplicationView(f ApplicationFilter, sort query.Sort) ([]types.Application, query.Sort, error) {
	if err := f.Validate(); err != nil {
		return nil, sort, err
	}
	return d.applications.view(d.applicationPredicates(f), sort)
}

func (d *Dashboard) Applications(f ApplicationFilter, sort query.Sort) (View[types.Application], error) {
	items, sort, err := d.ApplicationView(f, sort)
	if err != nil {
		return View[types.Application]{}, err
	}

	v := newView(items, sort, d.applications)
	v.Summary = d.ApplicationStats(items)
	return v, nil
}

// ApplicationStats counts drafts due within two weeks and interviews within
// a week on top of the usual totals.
func (d *Dashboard) ApplicationStats(items []types.Application) stats.Summary {
	return stats.Summarize(items, stats.Accessors[types.Application]{
		Status:    func(a types.Application) string { return string(a.Status) },
		Priority:  func(a types.Application) string { return string(a.Priority) },
		Amount:    func(a types.Application) float64 { return a.Amount },
		Progress:  func(a types.Application) int { return a.Progress },
		Deadline:  func(a types.Application) types.Date { return a.Deadline },
		Interview: func(a types.Application) *time.Time { return a.InterviewDate },
	}, stats.Options{
		Now:                 d.Now(),
		WindowDays:          applicationWindow,
		WindowStatuses:      []string{string(types.ApplicationStatusDraft)},
		InterviewWindowDays: interviewWindow,
		ApprovedStatus:      string(types.ApplicationStatusApproved),
		RejectedStatus:      string(types.ApplicationStatusRejected),
	})
}

func (d *Dashboard) Application(id string) (types.Application, error) {
	a, ok := d.applications.store.Get(id)
	if !ok {
		return a, fmt.Errorf("application %s: %w", id, types.ErrNotFound)
	}
	return a, nil
}

func (d *Dashboard) AddApplication(in types.ApplicationInput) (types.Application, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return types.Application{}, err
	}

	now := d.now()
	a := types.Application{ID: d.newID(), CreatedAt: now, UpdatedAt: now}
	in.Apply(&a)

	d.applications.store.Insert(a)
	return a, nil
}

func (d *Dashboard) UpdateApplication(id string, in types.ApplicationInput) (types.Application, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return types.Application{}, err
	}

	return d.updateApplication(id, func(a *types.Application) {
		in.Apply(a)
	})
}

func (d *Dashboard) DeleteApplication(id string) error {
	if !d.applications.store.Delete(id) {
		return fmt.Errorf("application %s: %w", id, types.ErrNotFound)
	}
	return nil
}

func (d *Dashboard) updateApplication(id string, fn func(*types.Application)) (types.Application, error) {
	now := d.now()
	a, ok := d.applications.store.Update(id, func(a *types.Application) {
		fn(a)
		a.Touch(now)
	})
	if !ok {
		return a, fmt.Errorf("application %s: %w", id, types.ErrNotFound)
	}
	return a, nil
}

// AddDocument records document metadata on an application. The file itself
// lives wherever URL points.
func (d *Dashboard) AddDocument(applicationID string, in types.DocumentInput) (types.Document, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return types.Document{}, err
	}

	doc := types.Document{
		ID:         d.newID(),
		Name:       in.Name,
		Type:       in.Type,
		UploadedAt: d.now(),
		Size:       in.Size,
		URL:        in.URL,
	}

	a, err := d.updateApplication(applicationID, func(a *types.Application) {
		a.Documents = append(a.Documents, doc)
		a.SyncProgress()
	})
	if err != nil {
		return types.Document{}, err
	}

	d.appendActivity(types.ActivityEntry{
		ScholarshipID:   a.ID,
		ScholarshipName: a.ScholarshipName,
		Action:          types.ActionDocumentUploaded,
		Timestamp:       doc.UploadedAt,
		Details:         fmt.Sprintf("%s (%s)", doc.Name, doc.Type),
		Type:            types.ActivityDocument,
		State:           types.ActivityCompleted,
	})

	return doc, nil
}

func (d *Dashboard) RemoveDocument(applicationID, documentID string) error {
	current, err := d.Application(applicationID)
	if err != nil {
		return err
	}
	if !slices.ContainsFunc(current.Documents, func(doc types.Document) bool { return doc.ID == documentID }) {
		return fmt.Errorf("document %s: %w", documentID, types.ErrNotFound)
	}

	var removed *types.Document
	a, err := d.updateApplication(applicationID, func(a *types.Application) {
		i := slices.IndexFunc(a.Documents, func(doc types.Document) bool { return doc.ID == documentID })
		if i < 0 {
			return
		}
		doc := a.Documents[i]
		removed = &doc
		a.Documents = slices.Delete(a.Documents, i, i+1)
		a.SyncProgress()
	})
	if err != nil {
		return err
	}
	if removed == nil {
		return fmt.Errorf("document %s: %w", documentID, types.ErrNotFound)
	}

	d.appendActivity(types.ActivityEntry{
		ScholarshipID:   a.ID,
		ScholarshipName: a.ScholarshipName,
		Action:          types.ActionDocumentRemoved,
		Timestamp:       d.now(),
		Details:         removed.Name,
		Type:            types.ActivityDocument,
		State:           types.ActivityCompleted,
	})

	return nil
}

// ScheduleInterview sets the interview and moves the application to
// interview-scheduled.
func (d *Dashboard) ScheduleInterview(applicationID string, in types.InterviewInput) (types.Application, error) {
	if err := in.Validate(); err != nil {
		return types.Application{}, err
	}

	at := in.Date
	a, err := d.updateApplication(applicationID, func(a *types.Application) {
		a.InterviewDate = &at
		a.InterviewType = in.Type
		a.Status = types.ApplicationStatusInterviewScheduled
	})
	if err != nil {
		return a, err
	}

	state := types.ActivityPending
	if at.Before(d.now()) {
		state = types.ActivityOverdue
	}
	d.appendActivity(types.ActivityEntry{
		ScholarshipID:   a.ID,
		ScholarshipName: a.ScholarshipName,
		Action:          types.ActionInterviewScheduled,
		Timestamp:       d.now(),
		Details:         fmt.Sprintf("%s interview on %s", in.Type, at.In(d.loc).Format("Jan 2, 2006 3:04 PM")),
		Type:            types.ActivityInterview,
		State:           state,
		Priority:        types.PriorityHigh,
	})

	return a, nil
}

func (d *Dashboard) SelectApplications(op selection.Op, id string, f ApplicationFilter, sort query.Sort) ([]string, error) {
	items, _, err := d.ApplicationView(f, sort)
	if err != nil {
		return nil, err
	}
	if err := d.applications.tracker.Apply(op, id, ids(items)); err != nil {
		return nil, types.NewValidationError("op", err.Error())
	}
	return d.applications.tracker.IDs(), nil
}

func (d *Dashboard) BulkApplications(req BulkRequest) (bulk.Result[types.Application], error) {
	now := d.now()

	var m bulk.Mutation[types.Application]
	switch req.Action {
	case BulkDelete:
		m = bulk.Delete[types.Application]()
	case BulkStatus:
		status := types.ApplicationStatus(req.Status)
		if !status.Valid() {
			return bulk.Result[types.Application]{}, types.NewValidationError("status", "is not an application status")
		}
		m = bulk.Update(func(a *types.Application) {
			a.Status = status
			a.Touch(now)
		})
	case BulkPriority:
		priority := types.Priority(req.Priority)
		if !priority.ValidForApplication() {
			return bulk.Result[types.Application]{}, types.NewValidationError("priority", "is not an application priority")
		}
		m = bulk.Update(func(a *types.Application) {
			a.Priority = priority
			a.Touch(now)
		})
	default:
		return bulk.Result[types.Application]{}, types.NewValidationError("action", "must be delete, status or priority")
	}

	res, err := d.applications.bulk.Apply(m)
	if err != nil {
		return res, err
	}

	d.logger.WithField("action", req.Action).WithField("applied", res.Applied).Info("bulk application update")
	return res, nil
}
