package types

import (
	"math"
	"net/mail"
	"slices"
	"strings"
	"time"
)

type ApplicationStatus string

const (
	ApplicationStatusDraft              ApplicationStatus = "draft"
	ApplicationStatusSubmitted          ApplicationStatus = "submitted"
	ApplicationStatusUnderReview        ApplicationStatus = "under-review"
	ApplicationStatusInterviewScheduled ApplicationStatus = "interview-scheduled"
	ApplicationStatusApproved           ApplicationStatus = "approved"
	ApplicationStatusRejected           ApplicationStatus = "rejected"
	ApplicationStatusWaitlisted         ApplicationStatus = "waitlisted"
)

var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusDraft,
	ApplicationStatusSubmitted,
	ApplicationStatusUnderReview,
	ApplicationStatusInterviewScheduled,
	ApplicationStatusApproved,
	ApplicationStatusRejected,
	ApplicationStatusWaitlisted,
}

func (s ApplicationStatus) Valid() bool {
	return slices.Contains(ApplicationStatuses, s)
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ApplicationPriorities is ordered from least to most pressing.
var ApplicationPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func (p Priority) ValidForApplication() bool {
	return slices.Contains(ApplicationPriorities, p)
}

type InterviewType string

const (
	InterviewInPerson InterviewType = "in-person"
	InterviewVideo    InterviewType = "video"
	InterviewPhone    InterviewType = "phone"
)

func (t InterviewType) Valid() bool {
	return t == InterviewInPerson || t == InterviewVideo || t == InterviewPhone
}

type Application struct {
	ID              string            `json:"id"`
	ScholarshipName string            `json:"scholarshipName"`
	InstitutionName string            `json:"institutionName"`
	Amount          float64           `json:"amount"`
	Deadline        Date              `json:"deadline"`
	SubmissionDate  *Date             `json:"submissionDate,omitempty"`
	Status          ApplicationStatus `json:"status"`
	Priority        Priority          `json:"priority"`
	ApplicationLink string            `json:"applicationLink"`
	Notes           string            `json:"notes"`
	Documents       []Document        `json:"documents"`
	InterviewDate   *time.Time        `json:"interviewDate,omitempty"`
	InterviewType   InterviewType     `json:"interviewType,omitempty"`
	FollowUpDate    *Date             `json:"followUpDate,omitempty"`
	ContactEmail    string            `json:"contactEmail,omitempty"`
	ContactPhone    string            `json:"contactPhone,omitempty"`
	Requirements    []string          `json:"requirements"`
	Progress        int               `json:"progress"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

func (a Application) RecordID() string {
	return a.ID
}

// Clone copies the slices and pointers so the copy can be mutated freely.
func (a Application) Clone() Application {
	out := a
	out.Documents = slices.Clone(a.Documents)
	out.Requirements = slices.Clone(a.Requirements)
	if a.SubmissionDate != nil {
		d := *a.SubmissionDate
		out.SubmissionDate = &d
	}
	if a.InterviewDate != nil {
		t := *a.InterviewDate
		out.InterviewDate = &t
	}
	if a.FollowUpDate != nil {
		d := *a.FollowUpDate
		out.FollowUpDate = &d
	}
	return out
}

func (a *Application) Touch(now time.Time) {
	if now.Before(a.CreatedAt) {
		now = a.CreatedAt
	}
	a.UpdatedAt = now
}

// SyncProgress recomputes Progress. With requirements listed, progress is the
// share of requirements covered by uploaded documents. Without requirements
// the stored value is kept, clamped to 0..100.
func (a *Application) SyncProgress() {
	if len(a.Requirements) == 0 {
		a.Progress = min(max(a.Progress, 0), 100)
		return
	}

	pct := math.Round(float64(len(a.Documents)) / float64(len(a.Requirements)) * 100)
	a.Progress = min(int(pct), 100)
}

type ApplicationInput struct {
	ScholarshipName string            `json:"scholarshipName"`
	InstitutionName string            `json:"institutionName"`
	Amount          float64           `json:"amount"`
	Deadline        Date              `json:"deadline"`
	SubmissionDate  *Date             `json:"submissionDate,omitempty"`
	Status          ApplicationStatus `json:"status"`
	Priority        Priority          `json:"priority"`
	ApplicationLink string            `json:"applicationLink"`
	Notes           string            `json:"notes"`
	FollowUpDate    *Date             `json:"followUpDate,omitempty"`
	ContactEmail    string            `json:"contactEmail,omitempty"`
	ContactPhone    string            `json:"contactPhone,omitempty"`
	Requirements    []string          `json:"requirements"`
	Progress        int               `json:"progress"`
}

func (in *ApplicationInput) Normalize() {
	in.ScholarshipName = strings.TrimSpace(in.ScholarshipName)
	in.InstitutionName = strings.TrimSpace(in.InstitutionName)
	in.ApplicationLink = strings.TrimSpace(in.ApplicationLink)
	in.Notes = strings.TrimSpace(in.Notes)
	in.ContactEmail = strings.TrimSpace(in.ContactEmail)
	in.ContactPhone = strings.TrimSpace(in.ContactPhone)
	if in.Status == "" {
		in.Status = ApplicationStatusDraft
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}

	reqs := make([]string, 0, len(in.Requirements))
	for _, r := range in.Requirements {
		if r = strings.TrimSpace(r); r != "" {
			reqs = append(reqs, r)
		}
	}
	in.Requirements = reqs
}

func (in ApplicationInput) Validate() error {
	if in.ScholarshipName == "" {
		return invalid("scholarshipName", "is required")
	}
	if in.InstitutionName == "" {
		return invalid("institutionName", "is required")
	}
	if in.Amount <= 0 {
		return invalid("amount", "must be a positive number")
	}
	if !in.Deadline.Valid() {
		return invalid("deadline", "must be a date (YYYY-MM-DD)")
	}
	if !in.Status.Valid() {
		return invalid("status", "is not an application status")
	}
	if !in.Priority.ValidForApplication() {
		return invalid("priority", "is not an application priority")
	}
	if in.Progress < 0 || in.Progress > 100 {
		return invalid("progress", "must be between 0 and 100")
	}
	if err := validateLink("applicationLink", in.ApplicationLink); err != nil {
		return err
	}
	if in.ContactEmail != "" {
		if _, err := mail.ParseAddress(in.ContactEmail); err != nil {
			return invalid("contactEmail", "is not an email address")
		}
	}
	return nil
}

// Apply copies the input onto a. Documents, interview details and timestamps
// are left alone.
func (in ApplicationInput) Apply(a *Application) {
	a.ScholarshipName = in.ScholarshipName
	a.InstitutionName = in.InstitutionName
	a.Amount = in.Amount
	a.Deadline = in.Deadline
	a.SubmissionDate = in.SubmissionDate
	a.Status = in.Status
	a.Priority = in.Priority
	a.ApplicationLink = in.ApplicationLink
	a.Notes = in.Notes
	a.FollowUpDate = in.FollowUpDate
	a.ContactEmail = in.ContactEmail
	a.ContactPhone = in.ContactPhone
	a.Requirements = slices.Clone(in.Requirements)
	a.Progress = in.Progress
	a.SyncProgress()
}

type InterviewInput struct {
	Date time.Time     `json:"date"`
	Type InterviewType `json:"type"`
}

func (in InterviewInput) Validate() error {
	if in.Date.IsZero() {
		return invalid("date", "is required")
	}
	if !in.Type.Valid() {
		return invalid("type", "is not an interview type")
	}
	return nil
}
