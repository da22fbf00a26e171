package types

import (
	"net/url"
	"strings"
	"time"
)

type ScholarshipStatus string

const (
	ScholarshipStatusPending  ScholarshipStatus = "pending"
	ScholarshipStatusApplied  ScholarshipStatus = "applied"
	ScholarshipStatusApproved ScholarshipStatus = "approved"
	ScholarshipStatusRejected ScholarshipStatus = "rejected"
)

var ScholarshipStatuses = []ScholarshipStatus{
	ScholarshipStatusPending,
	ScholarshipStatusApplied,
	ScholarshipStatusApproved,
	ScholarshipStatusRejected,
}

func (s ScholarshipStatus) Valid() bool {
	for _, v := range ScholarshipStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Scholarship struct {
	ID              string            `db:"id" json:"id"`
	InstitutionName string            `db:"institution_name" json:"institutionName"`
	Amount          float64           `db:"amount" json:"amount"`
	Deadline        Date              `db:"deadline" json:"deadline"`
	ApplicationLink string            `db:"application_link" json:"applicationLink"`
	Notes           string            `db:"notes" json:"notes"`
	Status          ScholarshipStatus `db:"status" json:"status"`
	CreatedAt       time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time         `db:"updated_at" json:"updatedAt"`
}

func (s Scholarship) RecordID() string {
	return s.ID
}

// Touch sets UpdatedAt, never moving it before CreatedAt.
func (s *Scholarship) Touch(now time.Time) {
	if now.Before(s.CreatedAt) {
		now = s.CreatedAt
	}
	s.UpdatedAt = now
}

// ScholarshipInput is the writable part of a scholarship.
type ScholarshipInput struct {
	InstitutionName string            `json:"institutionName"`
	Amount          float64           `json:"amount"`
	Deadline        Date              `json:"deadline"`
	ApplicationLink string            `json:"applicationLink"`
	Notes           string            `json:"notes"`
	Status          ScholarshipStatus `json:"status"`
}

func (in *ScholarshipInput) Normalize() {
	in.InstitutionName = strings.TrimSpace(in.InstitutionName)
	in.ApplicationLink = strings.TrimSpace(in.ApplicationLink)
	in.Notes = strings.TrimSpace(in.Notes)
	if in.Status == "" {
		in.Status = ScholarshipStatusPending
	}
}

func (in ScholarshipInput) Validate() error {
	if in.InstitutionName == "" {
		return invalid("institutionName", "is required")
	}
	if in.Amount <= 0 {
		return invalid("amount", "must be a positive number")
	}
	if !in.Deadline.Valid() {
		return invalid("deadline", "must be a date (YYYY-MM-DD)")
	}
	if err := validateLink("applicationLink", in.ApplicationLink); err != nil {
		return err
	}
	if !in.Status.Valid() {
		return invalid("status", "is not a scholarship status")
	}
	return nil
}

// Apply copies the input onto s without touching identity or timestamps.
func (in ScholarshipInput) Apply(s *Scholarship) {
	s.InstitutionName = in.InstitutionName
	s.Amount = in.Amount
	s.Deadline = in.Deadline
	s.ApplicationLink = in.ApplicationLink
	s.Notes = in.Notes
	s.Status = in.Status
}

func validateLink(field, link string) error {
	if link == "" {
		return nil
	}
	u, err := url.Parse(link)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return invalid(field, "must be an absolute URL")
	}
	return nil
}
