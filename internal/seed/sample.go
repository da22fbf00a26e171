package seed

import (
	"time"

	"scholartrack/internal/dashboard"
	"scholartrack/pkg/types"
)

// Fixed ids keep repeated seeding idempotent.
// To generate new IDs: `go run ./cmd/scholartrack nanoid`
const (
	stanfordID = "Wd3qY8kPz1LmN4rT6vB9cX2hJ5sF7gAe"
	mitID      = "Hk7pR2mQ9wE4tY6uI1oP3aS5dF8gJ0lZ"
	harvardID  = "Nb4vC7xZ1qW3eR5tY8uI0oP2aS6dF9gH"
	berkeleyID = "Tj2kL5mN8bV1cX4zQ7wE0rT3yU6iO9pA"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *types.Date {
	d := types.MustParseDate(s)
	return &d
}

func timePtr(s string) *time.Time {
	t := ts(s)
	return &t
}

func statusPtr(s types.ScholarshipStatus) *types.ScholarshipStatus {
	return &s
}

// Scholarships is the sample scholarship list.
func Scholarships() []types.Scholarship {
	return []types.Scholarship{
		{
			ID:              stanfordID,
			InstitutionName: "Stanford University Merit Scholarship",
			Amount:          25000,
			Deadline:        types.MustParseDate("2024-03-15"),
			ApplicationLink: "https://stanford.edu/scholarships/merit",
			Notes:           "Requires 3.8 GPA minimum, essay on leadership experience",
			Status:          types.ScholarshipStatusApplied,
			CreatedAt:       ts("2024-01-15T10:00:00Z"),
			UpdatedAt:       ts("2024-01-20T14:30:00Z"),
		},
		{
			ID:              mitID,
			InstitutionName: "MIT Engineering Excellence Award",
			Amount:          30000,
			Deadline:        types.MustParseDate("2024-02-28"),
			ApplicationLink: "https://mit.edu/scholarships/engineering",
			Notes:           "STEM focused, need recommendation letters from 2 professors",
			Status:          types.ScholarshipStatusPending,
			CreatedAt:       ts("2024-01-10T09:15:00Z"),
			UpdatedAt:       ts("2024-01-10T09:15:00Z"),
		},
		{
			ID:              harvardID,
			InstitutionName: "Harvard Undergraduate Scholarship",
			Amount:          40000,
			Deadline:        types.MustParseDate("2024-04-01"),
			ApplicationLink: "https://harvard.edu/financial-aid",
			Notes:           "Need-based scholarship, requires FAFSA completion",
			Status:          types.ScholarshipStatusApproved,
			CreatedAt:       ts("2024-01-05T16:20:00Z"),
			UpdatedAt:       ts("2024-01-25T11:45:00Z"),
		},
		{
			ID:              berkeleyID,
			InstitutionName: "UC Berkeley Chancellor's Scholarship",
			Amount:          15000,
			Deadline:        types.MustParseDate("2024-01-31"),
			ApplicationLink: "https://berkeley.edu/scholarships/chancellor",
			Notes:           "California residents only, community service requirement",
			Status:          types.ScholarshipStatusRejected,
			CreatedAt:       ts("2024-01-01T12:00:00Z"),
			UpdatedAt:       ts("2024-01-28T09:30:00Z"),
		},
	}
}

// Applications is the sample application list. Progress is derived from the
// documents on file.
func Applications() []types.Application {
	apps := []types.Application{
		{
			ID:              "Qz8xW2cV5bN7mL1kJ4hG6fD9sA3pO0iU",
			ScholarshipName: "Stanford University Merit Scholarship",
			InstitutionName: "Stanford University",
			Amount:          25000,
			Deadline:        types.MustParseDate("2024-03-15"),
			SubmissionDate:  datePtr("2024-01-20"),
			Status:          types.ApplicationStatusUnderReview,
			Priority:        types.PriorityHigh,
			ApplicationLink: "https://stanford.edu/scholarships/merit",
			Notes:           "Submitted all required documents. Waiting for review committee decision.",
			Documents: []types.Document{
				{ID: "doc1", Name: "Personal Statement.pdf", Type: types.DocTypeEssay, UploadedAt: ts("2024-01-15T10:00:00Z"), Size: 245760},
				{ID: "doc2", Name: "Official Transcript.pdf", Type: types.DocTypeTranscript, UploadedAt: ts("2024-01-16T14:30:00Z"), Size: 512000},
			},
			Requirements: []string{"Personal Statement", "Official Transcript", "Two Recommendation Letters", "Resume"},
			CreatedAt:    ts("2024-01-15T10:00:00Z"),
			UpdatedAt:    ts("2024-01-20T14:30:00Z"),
		},
		{
			ID:              "Ex5rT8yU1iO4pA7sD0fG3hJ6kL9zX2cV",
			ScholarshipName: "MIT Engineering Excellence Award",
			InstitutionName: "MIT",
			Amount:          30000,
			Deadline:        types.MustParseDate("2024-02-28"),
			Status:          types.ApplicationStatusDraft,
			Priority:        types.PriorityUrgent,
			ApplicationLink: "https://mit.edu/scholarships/engineering",
			Notes:           "Need to complete portfolio submission and get final recommendation letter.",
			Documents: []types.Document{
				{ID: "doc3", Name: "Resume.pdf", Type: types.DocTypeResume, UploadedAt: ts("2024-01-10T09:15:00Z"), Size: 156000},
			},
			Requirements: []string{"Portfolio", "Resume", "Two Recommendation Letters", "Technical Essay"},
			CreatedAt:    ts("2024-01-10T09:15:00Z"),
			UpdatedAt:    ts("2024-01-10T09:15:00Z"),
		},
		{
			ID:              "Mv3nB6cX9zL2kJ5hG8fD1sA4pO7iU0yT",
			ScholarshipName: "Harvard Undergraduate Scholarship",
			InstitutionName: "Harvard University",
			Amount:          40000,
			Deadline:        types.MustParseDate("2024-04-01"),
			SubmissionDate:  datePtr("2024-01-25"),
			Status:          types.ApplicationStatusInterviewScheduled,
			Priority:        types.PriorityHigh,
			ApplicationLink: "https://harvard.edu/financial-aid",
			Notes:           "Interview scheduled for next week. Prepare for questions about leadership experience.",
			Documents: []types.Document{
				{ID: "doc4", Name: "Leadership Essay.pdf", Type: types.DocTypeEssay, UploadedAt: ts("2024-01-20T16:20:00Z"), Size: 298000},
			},
			InterviewDate: timePtr("2024-02-05T14:00:00Z"),
			InterviewType: types.InterviewVideo,
			ContactEmail:  "admissions@harvard.edu",
			Requirements:  []string{"Leadership Essay", "FAFSA", "Interview"},
			CreatedAt:     ts("2024-01-05T16:20:00Z"),
			UpdatedAt:     ts("2024-01-25T11:45:00Z"),
		},
		{
			ID:              "Rw6eQ9tY2uI5oP8aS1dF4gH7jK0lZ3xC",
			ScholarshipName: "UC Berkeley Chancellor's Scholarship",
			InstitutionName: "UC Berkeley",
			Amount:          15000,
			Deadline:        types.MustParseDate("2024-01-31"),
			SubmissionDate:  datePtr("2024-01-28"),
			Status:          types.ApplicationStatusRejected,
			Priority:        types.PriorityMedium,
			ApplicationLink: "https://berkeley.edu/scholarships/chancellor",
			Notes:           "Application was rejected due to late submission of community service documentation.",
			Requirements:    []string{"Community Service Documentation", "Academic Transcript", "Personal Statement"},
			CreatedAt:       ts("2024-01-01T12:00:00Z"),
			UpdatedAt:       ts("2024-01-30T09:30:00Z"),
		},
		{
			ID:              "Yp1oI4uY7tR0eW3qA6sD9fG2hJ5kL8zX",
			ScholarshipName: "Yale Academic Excellence Grant",
			InstitutionName: "Yale University",
			Amount:          35000,
			Deadline:        types.MustParseDate("2024-03-30"),
			SubmissionDate:  datePtr("2024-01-22"),
			Status:          types.ApplicationStatusSubmitted,
			Priority:        types.PriorityHigh,
			ApplicationLink: "https://yale.edu/scholarships/academic",
			Notes:           "All documents submitted successfully. Awaiting initial review.",
			Documents: []types.Document{
				{ID: "doc5", Name: "Academic Portfolio.pdf", Type: types.DocTypePortfolio, UploadedAt: ts("2024-01-20T14:00:00Z"), Size: 1024000},
			},
			FollowUpDate: datePtr("2024-02-15"),
			ContactEmail: "scholarships@yale.edu",
			Requirements: []string{"Academic Portfolio", "Personal Statement", "Recommendation Letters"},
			CreatedAt:    ts("2024-01-12T14:00:00Z"),
			UpdatedAt:    ts("2024-01-22T16:15:00Z"),
		},
	}

	for i := range apps {
		apps[i].SyncProgress()
	}
	return apps
}

// Activity is the sample history, newest first.
func Activity() []types.ActivityEntry {
	return []types.ActivityEntry{
		{
			ID:              "act-berkeley-rejected",
			ScholarshipID:   berkeleyID,
			ScholarshipName: "UC Berkeley Chancellor's Scholarship",
			Action:          types.ActionStatusUpdated,
			OldStatus:       statusPtr(types.ScholarshipStatusApplied),
			NewStatus:       statusPtr(types.ScholarshipStatusRejected),
			Timestamp:       ts("2024-01-28T09:30:00Z"),
			Details:         "Did not meet GPA requirements",
			Type:            types.ActivityApplication,
			State:           types.ActivityCompleted,
			Priority:        types.PriorityMedium,
		},
		{
			ID:              "act-harvard-approved",
			ScholarshipID:   harvardID,
			ScholarshipName: "Harvard Undergraduate Scholarship",
			Action:          types.ActionStatusUpdated,
			OldStatus:       statusPtr(types.ScholarshipStatusApplied),
			NewStatus:       statusPtr(types.ScholarshipStatusApproved),
			Timestamp:       ts("2024-01-25T11:45:00Z"),
			Details:         "Received approval notification via email",
			Type:            types.ActivityApplication,
			State:           types.ActivityCompleted,
			Priority:        types.PriorityHigh,
		},
		{
			ID:              "act-mit-deadline",
			ScholarshipID:   mitID,
			ScholarshipName: "MIT Engineering Excellence Award",
			Action:          "Deadline Reminder",
			Timestamp:       ts("2024-01-25T09:00:00Z"),
			Details:         "MIT Engineering Excellence Award application deadline in 3 days",
			Type:            types.ActivityDeadline,
			State:           types.ActivityPending,
			Priority:        types.PriorityHigh,
			Tags:            []string{"deadline", "urgent"},
		},
		{
			ID:              "act-stanford-submitted",
			ScholarshipID:   stanfordID,
			ScholarshipName: "Stanford University Merit Scholarship",
			Action:          "Application Submitted",
			NewStatus:       statusPtr(types.ScholarshipStatusApplied),
			Timestamp:       ts("2024-01-20T14:30:00Z"),
			Details:         "Submitted application with all required documents",
			Type:            types.ActivityApplication,
			State:           types.ActivityCompleted,
			Priority:        types.PriorityHigh,
			Tags:            []string{"application", "submitted"},
		},
		{
			ID:              "act-yale-follow-up",
			ScholarshipName: "Yale Academic Excellence Grant",
			Action:          "Follow-up Required",
			Timestamp:       ts("2024-01-19T13:20:00Z"),
			Details:         "Need to follow up on application status",
			Type:            types.ActivityFollowUp,
			State:           types.ActivityPending,
			Priority:        types.PriorityMedium,
			Tags:            []string{"follow-up", "status"},
		},
		{
			ID:              "act-harvard-documents",
			ScholarshipID:   harvardID,
			ScholarshipName: "Harvard Undergraduate Scholarship",
			Action:          "Documents Uploaded",
			Timestamp:       ts("2024-01-18T16:45:00Z"),
			Details:         "Uploaded transcripts and recommendation letters",
			Type:            types.ActivityDocument,
			State:           types.ActivityCompleted,
			Priority:        types.PriorityMedium,
			Tags:            []string{"documents", "transcripts"},
		},
		{
			ID:              "act-columbia-note",
			ScholarshipName: "Columbia Journalism Fellowship",
			Action:          "Personal Note",
			Timestamp:       ts("2024-01-17T10:15:00Z"),
			Details:         "Remember to prepare portfolio for Columbia Journalism Fellowship",
			Type:            types.ActivityNote,
			State:           types.ActivityPending,
			Priority:        types.PriorityLow,
			Tags:            []string{"note", "portfolio"},
		},
	}
}

// Sample bundles everything a fresh dashboard starts with.
func Sample() dashboard.Sample {
	return dashboard.Sample{
		Scholarships: Scholarships(),
		Applications: Applications(),
		Activity:     Activity(),
	}
}
