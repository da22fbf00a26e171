// Package dashboard owns the record collections and the side effects that tie
// them together: the activity log, selection pruning and scholarship sync.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"scholartrack/internal/bulk"
	"scholartrack/internal/query"
	"scholartrack/internal/records"
	"scholartrack/internal/selection"
	"scholartrack/internal/utils"
	"scholartrack/pkg/types"
)

// ScholarshipBackend is the remote table scholarships are synced to.
type ScholarshipBackend interface {
	FetchScholarships(ctx context.Context) ([]types.Scholarship, error)
	InsertScholarship(ctx context.Context, s types.Scholarship) error
}

// Sample is the data a dashboard starts with when nothing is fetched.
type Sample struct {
	Scholarships []types.Scholarship
	Applications []types.Application
	Activity     []types.ActivityEntry
}

const (
	defaultWindowDays    = 30
	applicationWindow    = 14
	interviewWindow      = 7
	defaultRemoteTimeout = 10 * time.Second
)

type Option func(*Dashboard)

func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) { d.now = now }
}

// WithIDs replaces the record id generator.
func WithIDs(next func() string) Option {
	return func(d *Dashboard) { d.newID = next }
}

func WithBackend(b ScholarshipBackend) Option {
	return func(d *Dashboard) { d.backend = b }
}

func WithWindowDays(days int) Option {
	return func(d *Dashboard) {
		if days > 0 {
			d.windowDays = days
		}
	}
}

func WithRemoteTimeout(timeout time.Duration) Option {
	return func(d *Dashboard) { d.remoteTimeout = timeout }
}

// WithLocation sets the zone used for export file names and report dates.
func WithLocation(loc *time.Location) Option {
	return func(d *Dashboard) { d.loc = loc }
}

type collection[T records.Record] struct {
	store   *records.Store[T]
	tracker *selection.Tracker
	engine  *query.Engine[T]
	bulk    *bulk.Mutator[T]
}

func newCollection[T records.Record](engine *query.Engine[T]) *collection[T] {
	store := records.NewStore[T]()
	tracker := selection.New()
	return &collection[T]{
		store:   store,
		tracker: tracker,
		engine:  engine,
		bulk:    bulk.New(store, tracker),
	}
}

// view runs the engine, falling back to the default sort for an empty key.
func (c *collection[T]) view(preds []query.Predicate[T], sort query.Sort) ([]T, query.Sort, error) {
	if sort.Key == "" {
		sort = c.engine.DefaultSort()
	}
	if sort.Direction == "" {
		sort.Direction = query.Ascending
	}

	items, err := c.engine.Run(c.store.All(), preds, sort)
	if err != nil {
		return nil, sort, err
	}

	return items, sort, nil
}

type Dashboard struct {
	logger        logrus.FieldLogger
	now           func() time.Time
	newID         func() string
	backend       ScholarshipBackend
	windowDays    int
	remoteTimeout time.Duration
	loc           *time.Location

	scholarships *collection[types.Scholarship]
	applications *collection[types.Application]
	activity     *collection[types.ActivityEntry]

	syncMu    sync.Mutex
	syncState map[string]types.SyncState
	rollbacks map[string]struct{}
}

func New(logger logrus.FieldLogger, opts ...Option) *Dashboard {
	d := &Dashboard{
		logger:        logger,
		now:           time.Now,
		newID:         newRecordID,
		windowDays:    defaultWindowDays,
		remoteTimeout: defaultRemoteTimeout,
		loc:           time.Local,

		syncState: make(map[string]types.SyncState),
		rollbacks: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.scholarships = newCollection(scholarshipEngine())
	d.applications = newCollection(applicationEngine())
	d.activity = newCollection(activityEngine())

	d.scholarships.store.Subscribe(d.onScholarshipChange)
	d.applications.store.Subscribe(func(c records.Change[types.Application]) {
		if c.Op == records.OpDeleted {
			d.applications.tracker.Prune(c.ID())
		}
	})

	return d
}

func newRecordID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Load fills the collections. Scholarships come from the backend when one is
// configured; a failed fetch is logged and leaves the list empty.
func (d *Dashboard) Load(ctx context.Context, sample Sample) {
	d.applications.store.Reset(sample.Applications)
	d.activity.store.Reset(sample.Activity)

	if d.backend == nil {
		d.scholarships.store.Reset(sample.Scholarships)
		d.markAll(sample.Scholarships, types.SyncLocal)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, d.remoteTimeout)
	defer cancel()

	items, err := d.backend.FetchScholarships(ctx)
	if err != nil {
		d.logger.WithError(err).Error("failed to fetch scholarships, starting with an empty list")
		d.scholarships.store.Reset(nil)
		return
	}

	d.scholarships.store.Reset(items)
	d.markAll(items, types.SyncCommitted)
	d.logger.WithField("count", len(items)).Info("scholarships loaded from backend")
}

func (d *Dashboard) Now() time.Time {
	return d.now().In(d.loc)
}

func (d *Dashboard) WindowDays() int {
	return d.windowDays
}

// SupportsSort reports whether key sorts the list of the given kind.
func (d *Dashboard) SupportsSort(kind types.Kind, key string) bool {
	switch kind {
	case types.KindScholarships:
		return d.scholarships.engine.Supports(key)
	case types.KindApplications:
		return d.applications.engine.Supports(key)
	case types.KindActivity:
		return d.activity.engine.Supports(key)
	}
	return false
}

func (d *Dashboard) markAll(items []types.Scholarship, state types.SyncState) {
	d.syncMu.Lock()
	defer d.syncMu.Unlock()
	clear(d.syncState)
	for _, s := range items {
		d.syncState[s.ID] = state
	}
}

func (d *Dashboard) setSync(id string, state types.SyncState) {
	d.syncMu.Lock()
	defer d.syncMu.Unlock()
	d.syncState[id] = state
}

// SyncState reports the persistence status of a scholarship.
func (d *Dashboard) SyncState(id string) types.SyncState {
	d.syncMu.Lock()
	defer d.syncMu.Unlock()
	if state, ok := d.syncState[id]; ok {
		return state
	}
	return types.SyncLocal
}

func (d *Dashboard) syncStates(items []types.Scholarship) map[string]types.SyncState {
	d.syncMu.Lock()
	defer d.syncMu.Unlock()
	out := make(map[string]types.SyncState, len(items))
	for _, s := range items {
		state, ok := d.syncState[s.ID]
		if !ok {
			state = types.SyncLocal
		}
		out[s.ID] = state
	}
	return out
}

func ids[T records.Record](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.RecordID()
	}
	return out
}

func activityID() string {
	return utils.NanoIDSize(utils.ActivityIDSize)
}
