package types

// Kind names a record collection.
type Kind string

const (
	KindScholarships Kind = "scholarships"
	KindApplications Kind = "applications"
	KindActivity     Kind = "activity"
)

// SyncState is the persistence status of one record.
type SyncState string

const (
	SyncLocal     SyncState = "local"
	SyncPending   SyncState = "pending"
	SyncCommitted SyncState = "committed"
	SyncFailed    SyncState = "failed"
)
