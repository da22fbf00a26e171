package types

import (
	"slices"
	"strings"
	"time"
)

type ActivityType string

const (
	ActivityApplication ActivityType = "application"
	ActivityDeadline    ActivityType = "deadline"
	ActivityDocument    ActivityType = "document"
	ActivityInterview   ActivityType = "interview"
	ActivityFollowUp    ActivityType = "follow-up"
	ActivityNote        ActivityType = "note"
)

var ActivityTypes = []ActivityType{
	ActivityApplication,
	ActivityDeadline,
	ActivityDocument,
	ActivityInterview,
	ActivityFollowUp,
	ActivityNote,
}

type ActivityState string

const (
	ActivityCompleted ActivityState = "completed"
	ActivityPending   ActivityState = "pending"
	ActivityOverdue   ActivityState = "overdue"
)

// ActivityPriorities is ordered from least to most pressing.
var ActivityPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Action labels written by the dashboard as side effects.
const (
	ActionScholarshipAdded   = "Scholarship Added"
	ActionStatusUpdated      = "Status Updated"
	ActionScholarshipDeleted = "Scholarship Deleted"
	ActionSyncFailed         = "Sync Failed"
	ActionDocumentUploaded   = "Document Uploaded"
	ActionDocumentRemoved    = "Document Removed"
	ActionInterviewScheduled = "Interview Scheduled"
)

type ActivityEntry struct {
	ID              string             `json:"id"`
	ScholarshipID   string             `json:"scholarshipId"`
	ScholarshipName string             `json:"scholarshipName"`
	Action          string             `json:"action"`
	OldStatus       *ScholarshipStatus `json:"oldStatus,omitempty"`
	NewStatus       *ScholarshipStatus `json:"newStatus,omitempty"`
	Timestamp       time.Time          `json:"timestamp"`
	Details         string             `json:"details,omitempty"`

	Type     ActivityType  `json:"type,omitempty"`
	State    ActivityState `json:"state,omitempty"`
	Priority Priority      `json:"priority,omitempty"`
	Tags     []string      `json:"tags,omitempty"`
}

func (e ActivityEntry) RecordID() string {
	return e.ID
}

func (e ActivityEntry) Clone() ActivityEntry {
	out := e
	out.Tags = slices.Clone(e.Tags)
	if e.OldStatus != nil {
		s := *e.OldStatus
		out.OldStatus = &s
	}
	if e.NewStatus != nil {
		s := *e.NewStatus
		out.NewStatus = &s
	}
	return out
}

// ActivityInput is a manually recorded activity.
type ActivityInput struct {
	ScholarshipID   string        `json:"scholarshipId"`
	ScholarshipName string        `json:"scholarshipName"`
	Action          string        `json:"action"`
	Details         string        `json:"details"`
	Type            ActivityType  `json:"type"`
	State           ActivityState `json:"state"`
	Priority        Priority      `json:"priority"`
	Tags            []string      `json:"tags"`
}

func (in *ActivityInput) Normalize() {
	in.ScholarshipName = strings.TrimSpace(in.ScholarshipName)
	in.Action = strings.TrimSpace(in.Action)
	in.Details = strings.TrimSpace(in.Details)
	if in.Type == "" {
		in.Type = ActivityNote
	}
}

func (in ActivityInput) Validate() error {
	if in.Action == "" {
		return invalid("action", "is required")
	}
	if in.ScholarshipName == "" {
		return invalid("scholarshipName", "is required")
	}
	if !slices.Contains(ActivityTypes, in.Type) {
		return invalid("type", "is not an activity type")
	}
	switch in.State {
	case "", ActivityCompleted, ActivityPending, ActivityOverdue:
	default:
		return invalid("state", "is not an activity state")
	}
	if in.Priority != "" && !slices.Contains(ActivityPriorities, in.Priority) {
		return invalid("priority", "is not an activity priority")
	}
	return nil
}
