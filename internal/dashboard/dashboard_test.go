package dashboard

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholartrack/internal/query"
	"scholartrack/internal/selection"
	"scholartrack/pkg/types"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type fakeBackend struct {
	fetched   []types.Scholarship
	fetchErr  error
	insertErr error
	inserted  []types.Scholarship
}

func (f *fakeBackend) FetchScholarships(ctx context.Context) ([]types.Scholarship, error) {
	return f.fetched, f.fetchErr
}

func (f *fakeBackend) InsertScholarship(ctx context.Context, s types.Scholarship) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, s)
	return nil
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%02d", n)
	}
}

func newTestDashboard(t *testing.T, opts ...Option) (*Dashboard, *test.Hook) {
	t.Helper()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	opts = append([]Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDs(sequentialIDs()),
		WithLocation(time.UTC),
	}, opts...)

	d := New(logger, opts...)
	d.Load(context.Background(), Sample{})
	return d, hook
}

func addScholarship(t *testing.T, d *Dashboard, name string, amount float64, status types.ScholarshipStatus) types.Scholarship {
	t.Helper()

	s, _, err := d.AddScholarship(context.Background(), types.ScholarshipInput{
		InstitutionName: name,
		Amount:          amount,
		Deadline:        types.NewDate(2024, 3, 20),
		Status:          status,
	})
	require.NoError(t, err)
	return s
}

func TestScholarships_FilterSortAndTotals(t *testing.T) {
	d, _ := newTestDashboard(t)
	addScholarship(t, d, "Stanford", 25000, types.ScholarshipStatusApplied)
	addScholarship(t, d, "MIT", 30000, types.ScholarshipStatusPending)
	harvard := addScholarship(t, d, "Harvard", 40000, types.ScholarshipStatusApproved)

	view, err := d.Scholarships(
		ScholarshipFilter{Status: string(types.ScholarshipStatusApproved)},
		query.Sort{Key: "amount", Direction: query.Descending},
	)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, harvard.ID, view.Items[0].ID)
	assert.Equal(t, 3, view.Total)

	all, err := d.Scholarships(ScholarshipFilter{}, query.Sort{Key: "amount", Direction: query.Descending})
	require.NoError(t, err)
	assert.Equal(t, 95000.0, all.Summary.TotalAmount)
	assert.Equal(t, 40000.0, all.Summary.ApprovedAmount)
	assert.Equal(t, 1.0, all.Summary.SuccessRate)
	assert.Equal(t, []float64{40000, 30000, 25000}, []float64{all.Items[0].Amount, all.Items[1].Amount, all.Items[2].Amount})
}

func TestScholarships_DefaultSortAndValidation(t *testing.T) {
	d, _ := newTestDashboard(t)

	view, err := d.Scholarships(ScholarshipFilter{}, query.Sort{})
	require.NoError(t, err)
	assert.Equal(t, query.Sort{Key: "deadline", Direction: query.Ascending}, view.Sort)

	_, err = d.Scholarships(ScholarshipFilter{Amount: "lots"}, query.Sort{})
	assert.ErrorIs(t, err, types.ErrInvalidRecord)

	_, err = d.Scholarships(ScholarshipFilter{Status: "archived"}, query.Sort{})
	assert.ErrorIs(t, err, types.ErrInvalidRecord)

	_, err = d.Scholarships(ScholarshipFilter{}, query.Sort{Key: "color"})
	assert.ErrorIs(t, err, query.ErrUnknownSortKey)
}

func TestAddThenDeleteRestoresStoreAndKeepsActivity(t *testing.T) {
	d, _ := newTestDashboard(t)
	addScholarship(t, d, "Stanford", 25000, types.ScholarshipStatusApplied)
	before := d.scholarships.store.All()

	s := addScholarship(t, d, "Yale", 35000, types.ScholarshipStatusPending)
	require.NoError(t, d.DeleteScholarship(s.ID))

	assert.Equal(t, before, d.scholarships.store.All())

	activity := d.RecentActivity(10)
	require.Len(t, activity, 3)
	assert.Equal(t, types.ActionScholarshipDeleted, activity[0].Action)
	assert.Equal(t, "Yale", activity[0].ScholarshipName)
	assert.Equal(t, types.ActionScholarshipAdded, activity[1].Action)
	assert.Equal(t, s.ID, activity[1].ScholarshipID)

	assert.ErrorIs(t, d.DeleteScholarship(s.ID), types.ErrNotFound)
}

func TestUpdateScholarship_LogsStatusChangeOnly(t *testing.T) {
	d, _ := newTestDashboard(t)
	s := addScholarship(t, d, "Stanford", 25000, types.ScholarshipStatusApplied)

	in := types.ScholarshipInput{InstitutionName: "Stanford", Amount: 26000, Deadline: s.Deadline, Status: types.ScholarshipStatusApplied}
	_, err := d.UpdateScholarship(s.ID, in)
	require.NoError(t, err)
	assert.Len(t, d.RecentActivity(10), 1)

	in.Status = types.ScholarshipStatusApproved
	updated, err := d.UpdateScholarship(s.ID, in)
	require.NoError(t, err)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	latest := d.RecentActivity(1)[0]
	assert.Equal(t, types.ActionStatusUpdated, latest.Action)
	require.NotNil(t, latest.OldStatus)
	assert.Equal(t, types.ScholarshipStatusApplied, *latest.OldStatus)
	assert.Equal(t, types.ScholarshipStatusApproved, *latest.NewStatus)
	assert.Equal(t, "Status changed from applied to approved", latest.Details)

	_, err = d.UpdateScholarship("missing", in)
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = d.UpdateScholarship(s.ID, types.ScholarshipInput{})
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "institutionName", verr.Field)
}

func TestSelection_SelectAllThenToggleAll(t *testing.T) {
	d, _ := newTestDashboard(t)
	a := addScholarship(t, d, "Stanford", 25000, types.ScholarshipStatusApplied)
	addScholarship(t, d, "MIT", 30000, types.ScholarshipStatusPending)

	f := ScholarshipFilter{Status: string(types.ScholarshipStatusApplied)}

	selected, err := d.SelectScholarships(selection.OpSelectAll, "", f, query.Sort{})
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, selected)

	selected, err = d.SelectScholarships(selection.OpToggleAll, "", f, query.Sort{})
	require.NoError(t, err)
	assert.Empty(t, selected)

	_, err = d.SelectScholarships("shuffle", "", f, query.Sort{})
	assert.ErrorIs(t, err, types.ErrInvalidRecord)
}

func TestSelection_FilterChangeKeepsDeletePrunes(t *testing.T) {
	d, _ := newTestDashboard(t)
	a := addScholarship(t, d, "Stanford", 25000, types.ScholarshipStatusApplied)
	b := addScholarship(t, d, "MIT", 30000, types.ScholarshipStatusPending)

	_, err := d.SelectScholarships(selection.OpSelectAll, "", ScholarshipFilter{}, query.Sort{})
	require.NoError(t, err)

	view, err := d.Scholarships(ScholarshipFilter{Search: "stanford"}, query.Sort{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, view.Selected)
	assert.True(t, view.AllSelected)

	require.NoError(t, d.DeleteScholarship(a.ID))
	assert.Equal(t, []string{b.ID}, d.scholarships.tracker.IDs())
}

func TestBulkScholarships_StatusUpdate(t *testing.T) {
	d, _ := newTestDashboard(t)
	a := addScholarship(t, d, "Stanford", 25000, types.ScholarshipStatusPending)
	b := addScholarship(t, d, "MIT", 30000, types.ScholarshipStatusPending)
	c := addScholarship(t, d, "Harvard", 40000, types.ScholarshipStatusPending)

	for _, id := range []string{a.ID, c.ID} {
		_, err := d.SelectScholarships(selection.OpToggle, id, ScholarshipFilter{}, query.Sort{})
		require.NoError(t, err)
	}

	res, err := d.BulkScholarships(BulkRequest{Action: BulkStatus, Status: string(types.ScholarshipStatusApplied)})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Applied)
	assert.Zero(t, d.scholarships.tracker.Len())

	for _, s := range d.scholarships.store.All() {
		if s.ID == b.ID {
			assert.Equal(t, types.ScholarshipStatusPending, s.Status)
			continue
		}
		assert.Equal(t, types.ScholarshipStatusApplied, s.Status)
	}

	_, err = d.BulkScholarships(BulkRequest{Action: BulkStatus, Status: "won"})
	assert.ErrorIs(t, err, types.ErrInvalidRecord)
	_, err = d.BulkScholarships(BulkRequest{Action: "archive"})
	assert.ErrorIs(t, err, types.ErrInvalidRecord)
}

func TestBulkScholarships_DeleteReportsMissing(t *testing.T) {
	d, _ := newTestDashboard(t)
	a := addScholarship(t, d, "Stanford", 25000, types.ScholarshipStatusPending)
	d.scholarships.tracker.SelectAll([]string{a.ID, "ghost"})

	res, err := d.BulkScholarships(BulkRequest{Action: BulkDelete})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Applied)
	assert.Equal(t, []string{"ghost"}, res.Missing)
	assert.Zero(t, d.scholarships.store.Len())
}

func TestAddScholarship_Sync(t *testing.T) {
	backend := &fakeBackend{}
	d, _ := newTestDashboard(t, WithBackend(backend))

	s, state, err := d.AddScholarship(context.Background(), types.ScholarshipInput{
		InstitutionName: "Stanford", Amount: 25000, Deadline: types.NewDate(2024, 3, 15),
	})
	require.NoError(t, err)

	assert.Equal(t, types.SyncCommitted, state)
	assert.Equal(t, types.SyncCommitted, d.SyncState(s.ID))
	assert.Equal(t, types.ScholarshipStatusPending, s.Status)
	require.Len(t, backend.inserted, 1)
	assert.Equal(t, s.ID, backend.inserted[0].ID)
}

func TestAddScholarship_RejectedRollsBack(t *testing.T) {
	backend := &fakeBackend{insertErr: errors.New("duplicate key")}
	d, hook := newTestDashboard(t, WithBackend(backend))

	s, state, err := d.AddScholarship(context.Background(), types.ScholarshipInput{
		InstitutionName: "Stanford", Amount: 25000, Deadline: types.NewDate(2024, 3, 15),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrSyncRejected)

	assert.Equal(t, types.SyncFailed, state)
	assert.Equal(t, types.SyncFailed, d.SyncState(s.ID))
	assert.Zero(t, d.scholarships.store.Len())

	activity := d.RecentActivity(10)
	require.Len(t, activity, 2)
	assert.Equal(t, types.ActionSyncFailed, activity[0].Action)
	assert.Equal(t, types.ActionScholarshipAdded, activity[1].Action)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestLoad(t *testing.T) {
	t.Run("backend failure starts empty", func(t *testing.T) {
		backend := &fakeBackend{fetchErr: errors.New("connection refused")}
		d, hook := newTestDashboard(t, WithBackend(backend))

		assert.Zero(t, d.scholarships.store.Len())
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	})

	t.Run("backend records are committed", func(t *testing.T) {
		backend := &fakeBackend{fetched: []types.Scholarship{{ID: "remote", InstitutionName: "Yale", Amount: 1, Status: types.ScholarshipStatusPending}}}
		d, _ := newTestDashboard(t, WithBackend(backend))

		assert.Equal(t, 1, d.scholarships.store.Len())
		assert.Equal(t, types.SyncCommitted, d.SyncState("remote"))
		assert.Empty(t, d.RecentActivity(10))
	})

	t.Run("sample without backend", func(t *testing.T) {
		logger, _ := test.NewNullLogger()
		d := New(logger, WithClock(func() time.Time { return fixedNow }))
		d.Load(context.Background(), Sample{
			Scholarships: []types.Scholarship{{ID: "s1", InstitutionName: "MIT"}},
			Activity:     []types.ActivityEntry{{ID: "a1", Action: "Imported"}},
		})

		assert.Equal(t, types.SyncLocal, d.SyncState("s1"))
		assert.Len(t, d.RecentActivity(10), 1)
	})
}

func TestApplications_DocumentsAndInterview(t *testing.T) {
	d, _ := newTestDashboard(t)

	a, err := d.AddApplication(types.ApplicationInput{
		ScholarshipName: "Merit Award",
		InstitutionName: "Stanford",
		Amount:          25000,
		Deadline:        types.NewDate(2024, 3, 10),
		Requirements:    []string{"Transcript", "Essay", " "},
	})
	require.NoError(t, err)
	assert.Equal(t, types.ApplicationStatusDraft, a.Status)
	assert.Equal(t, types.PriorityMedium, a.Priority)
	assert.Zero(t, a.Progress)

	doc, err := d.AddDocument(a.ID, types.DocumentInput{Name: "transcript.pdf", Type: types.DocTypeTranscript, Size: 2048})
	require.NoError(t, err)

	got, err := d.Application(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.Progress)

	require.NoError(t, d.RemoveDocument(a.ID, doc.ID))
	assert.ErrorIs(t, d.RemoveDocument(a.ID, doc.ID), types.ErrNotFound)

	got, err = d.Application(a.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Progress)

	at := fixedNow.Add(48 * time.Hour)
	got, err = d.ScheduleInterview(a.ID, types.InterviewInput{Date: at, Type: types.InterviewVideo})
	require.NoError(t, err)
	assert.Equal(t, types.ApplicationStatusInterviewScheduled, got.Status)

	view, err := d.Applications(ApplicationFilter{}, query.Sort{})
	require.NoError(t, err)
	assert.Equal(t, 1, view.Summary.InterviewsSoon)

	latest := d.RecentActivity(1)[0]
	assert.Equal(t, types.ActionInterviewScheduled, latest.Action)
	assert.Equal(t, types.ActivityPending, latest.State)
}

func TestApplications_FiltersAndBulkPriority(t *testing.T) {
	d, _ := newTestDashboard(t)

	for i, p := range []types.Priority{types.PriorityLow, types.PriorityUrgent, types.PriorityHigh} {
		_, err := d.AddApplication(types.ApplicationInput{
			ScholarshipName: fmt.Sprintf("Award %d", i),
			InstitutionName: "Yale",
			Amount:          float64(10000 * (i + 1)),
			Deadline:        types.NewDate(2024, 3, 5),
			Priority:        p,
			Progress:        i * 50,
		})
		require.NoError(t, err)
	}

	view, err := d.Applications(ApplicationFilter{}, query.Sort{Key: "priority", Direction: query.Descending})
	require.NoError(t, err)
	assert.Equal(t, types.PriorityUrgent, view.Items[0].Priority)
	assert.Equal(t, types.PriorityLow, view.Items[2].Priority)
	assert.Equal(t, 3, view.Summary.DueWithinWindow)

	inProgress, err := d.Applications(ApplicationFilter{Progress: "in-progress"}, query.Sort{})
	require.NoError(t, err)
	require.Len(t, inProgress.Items, 1)
	assert.Equal(t, 50, inProgress.Items[0].Progress)

	_, err = d.Applications(ApplicationFilter{Progress: "halfway"}, query.Sort{})
	assert.ErrorIs(t, err, types.ErrInvalidRecord)

	_, err = d.SelectApplications(selection.OpSelectAll, "", ApplicationFilter{}, query.Sort{})
	require.NoError(t, err)

	res, err := d.BulkApplications(BulkRequest{Action: BulkPriority, Priority: string(types.PriorityHigh)})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Applied)

	for _, a := range d.applications.store.All() {
		assert.Equal(t, types.PriorityHigh, a.Priority)
	}
}

func TestActivity_RecordFilterAndSort(t *testing.T) {
	d, _ := newTestDashboard(t)

	_, err := d.RecordActivity(types.ActivityInput{
		ScholarshipName: "Gates",
		Action:          "Essay draft",
		Type:            types.ActivityDocument,
		State:           types.ActivityPending,
		Priority:        types.PriorityLow,
	})
	require.NoError(t, err)
	_, err = d.RecordActivity(types.ActivityInput{
		ScholarshipName: "Rhodes",
		Action:          "Follow up call",
		Type:            types.ActivityFollowUp,
		State:           types.ActivityOverdue,
		Priority:        types.PriorityHigh,
	})
	require.NoError(t, err)
	_, err = d.RecordActivity(types.ActivityInput{ScholarshipName: "Fulbright", Action: "Reminder"})
	require.NoError(t, err)

	_, err = d.RecordActivity(types.ActivityInput{ScholarshipName: "x"})
	assert.ErrorIs(t, err, types.ErrInvalidRecord)

	view, err := d.Activity(ActivityFilter{}, query.Sort{Key: "priority"})
	require.NoError(t, err)
	require.Len(t, view.Items, 3)
	assert.Equal(t, "Rhodes", view.Items[0].ScholarshipName)
	assert.Equal(t, 1, view.Summary.ByStatus[string(types.ActivityOverdue)])

	pending, err := d.Activity(ActivityFilter{State: string(types.ActivityPending)}, query.Sort{})
	require.NoError(t, err)
	require.Len(t, pending.Items, 1)
	assert.Equal(t, "Gates", pending.Items[0].ScholarshipName)
}

func TestExports(t *testing.T) {
	d, _ := newTestDashboard(t)
	addScholarship(t, d, "Stanford", 25000, types.ScholarshipStatusApplied)

	xlsx, err := d.ExportScholarships(FormatWorkbook, ScholarshipFilter{}, query.Sort{})
	require.NoError(t, err)
	assert.Equal(t, "scholarships-2024-03-01.xlsx", xlsx.Name)
	assert.Equal(t, 1, xlsx.Rows)
	assert.NotEmpty(t, xlsx.Body)

	pdf, err := d.ExportActivity(FormatReport, ActivityFilter{}, query.Sort{})
	require.NoError(t, err)
	assert.Equal(t, "activity-report-2024-03-01.pdf", pdf.Name)
	assert.Equal(t, "application/pdf", pdf.ContentType)

	_, err = d.ExportActivity(FormatWorkbook, ActivityFilter{}, query.Sort{})
	assert.ErrorIs(t, err, types.ErrInvalidRecord)

	apps, err := d.ExportApplications(FormatReport, ApplicationFilter{}, query.Sort{})
	require.NoError(t, err)
	assert.Equal(t, "applications-2024-03-01.pdf", apps.Name)
}

func TestOverview(t *testing.T) {
	d, _ := newTestDashboard(t)
	for i := 0; i < 12; i++ {
		addScholarship(t, d, fmt.Sprintf("School %d", i), 1000, types.ScholarshipStatusPending)
	}

	o := d.Overview()
	assert.Equal(t, 12, o.Scholarships.Total)
	assert.Len(t, o.RecentActivity, recentActivityLimit)
}

func TestDeadlineBucketsUseLocalCalendarDay(t *testing.T) {
	eastern := time.FixedZone("EDT", -4*60*60)
	lateEvening := time.Date(2024, 3, 15, 22, 0, 0, 0, eastern)
	d, _ := newTestDashboard(t,
		WithClock(func() time.Time { return lateEvening }),
		WithLocation(eastern),
	)

	_, _, err := d.AddScholarship(context.Background(), types.ScholarshipInput{
		InstitutionName: "Due Today",
		Amount:          10000,
		Deadline:        types.NewDate(2024, 3, 15),
	})
	require.NoError(t, err)

	overdue, err := d.Scholarships(ScholarshipFilter{Deadline: string(query.DeadlineOverdue)}, query.Sort{})
	require.NoError(t, err)
	assert.Empty(t, overdue.Items)

	week, err := d.Scholarships(ScholarshipFilter{Deadline: string(query.DeadlineThisWeek)}, query.Sort{})
	require.NoError(t, err)
	require.Len(t, week.Items, 1)
	assert.Equal(t, "Due Today", week.Items[0].InstitutionName)
	assert.Equal(t, 1, week.Summary.DueWithinWindow)

	file, err := d.ExportScholarships(FormatWorkbook, ScholarshipFilter{}, query.Sort{})
	require.NoError(t, err)
	assert.Equal(t, "scholarships-2024-03-15.xlsx", file.Name)
}

func TestSupportsSort(t *testing.T) {
	d, _ := newTestDashboard(t)

	assert.True(t, d.SupportsSort(types.KindScholarships, "amount"))
	assert.False(t, d.SupportsSort(types.KindScholarships, "priority"))
	assert.True(t, d.SupportsSort(types.KindApplications, "progress"))
	assert.True(t, d.SupportsSort(types.KindActivity, "newest"))
	assert.False(t, d.SupportsSort(types.Kind("needs"), "amount"))
}
