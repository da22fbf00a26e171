package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"scholartrack/pkg/types"
)

// Column describes one exported field. Width is only used by the report and
// is measured in millimetres.
type Column[T any] struct {
	Label    string
	Width    float64
	Truncate bool
	Value    func(T) string
}

func ScholarshipWorkbookColumns(loc *time.Location) []Column[types.Scholarship] {
	return []Column[types.Scholarship]{
		{Label: "Institution Name", Value: func(s types.Scholarship) string { return s.InstitutionName }},
		{Label: "Amount", Value: func(s types.Scholarship) string { return Money(s.Amount) }},
		{Label: "Deadline", Value: func(s types.Scholarship) string { return FormatDate(s.Deadline) }},
		{Label: "Status", Value: func(s types.Scholarship) string { return Label(s.Status) }},
		{Label: "Application Link", Value: func(s types.Scholarship) string { return s.ApplicationLink }},
		{Label: "Notes", Value: func(s types.Scholarship) string { return s.Notes }},
		{Label: "Created", Value: func(s types.Scholarship) string { return FormatDay(s.CreatedAt, loc) }},
		{Label: "Updated", Value: func(s types.Scholarship) string { return FormatDay(s.UpdatedAt, loc) }},
	}
}

func ScholarshipReportColumns() []Column[types.Scholarship] {
	return []Column[types.Scholarship]{
		{Label: "Institution", Width: 40, Value: func(s types.Scholarship) string { return s.InstitutionName }},
		{Label: "Amount", Width: 25, Value: func(s types.Scholarship) string { return Money(s.Amount) }},
		{Label: "Deadline", Width: 25, Value: func(s types.Scholarship) string { return FormatDate(s.Deadline) }},
		{Label: "Status", Width: 20, Value: func(s types.Scholarship) string { return Label(s.Status) }},
		{Label: "Notes", Width: 60, Truncate: true, Value: func(s types.Scholarship) string { return s.Notes }},
	}
}

func ApplicationWorkbookColumns(loc *time.Location) []Column[types.Application] {
	return []Column[types.Application]{
		{Label: "Scholarship Name", Value: func(a types.Application) string { return a.ScholarshipName }},
		{Label: "Institution", Value: func(a types.Application) string { return a.InstitutionName }},
		{Label: "Amount", Value: func(a types.Application) string { return Money(a.Amount) }},
		{Label: "Deadline", Value: func(a types.Application) string { return FormatDate(a.Deadline) }},
		{Label: "Submitted", Value: func(a types.Application) string { return FormatDatePtr(a.SubmissionDate) }},
		{Label: "Status", Value: func(a types.Application) string { return Label(a.Status) }},
		{Label: "Priority", Value: func(a types.Application) string { return Label(a.Priority) }},
		{Label: "Progress", Value: func(a types.Application) string { return fmt.Sprintf("%d%%", a.Progress) }},
		{Label: "Documents", Value: documentSummary},
		{Label: "Requirements", Value: func(a types.Application) string { return strings.Join(a.Requirements, "; ") }},
		{Label: "Interview", Value: func(a types.Application) string {
			if a.InterviewDate == nil {
				return ""
			}
			return FormatDay(*a.InterviewDate, loc) + " " + FormatClock(*a.InterviewDate, loc) + " (" + Label(a.InterviewType) + ")"
		}},
		{Label: "Follow Up", Value: func(a types.Application) string { return FormatDatePtr(a.FollowUpDate) }},
		{Label: "Contact Email", Value: func(a types.Application) string { return a.ContactEmail }},
		{Label: "Contact Phone", Value: func(a types.Application) string { return a.ContactPhone }},
		{Label: "Application Link", Value: func(a types.Application) string { return a.ApplicationLink }},
		{Label: "Notes", Value: func(a types.Application) string { return a.Notes }},
		{Label: "Created", Value: func(a types.Application) string { return FormatDay(a.CreatedAt, loc) }},
		{Label: "Updated", Value: func(a types.Application) string { return FormatDay(a.UpdatedAt, loc) }},
	}
}

func ApplicationReportColumns() []Column[types.Application] {
	return []Column[types.Application]{
		{Label: "Scholarship", Width: 40, Value: func(a types.Application) string { return a.ScholarshipName }},
		{Label: "Amount", Width: 22, Value: func(a types.Application) string { return Money(a.Amount) }},
		{Label: "Deadline", Width: 22, Value: func(a types.Application) string { return FormatDate(a.Deadline) }},
		{Label: "Status", Width: 30, Value: func(a types.Application) string { return Label(a.Status) }},
		{Label: "Priority", Width: 18, Value: func(a types.Application) string { return Label(a.Priority) }},
		{Label: "Progress", Width: 18, Value: func(a types.Application) string { return fmt.Sprintf("%d%%", a.Progress) }},
		{Label: "Notes", Width: 40, Truncate: true, Value: func(a types.Application) string { return a.Notes }},
	}
}

func ActivityReportColumns(loc *time.Location) []Column[types.ActivityEntry] {
	return []Column[types.ActivityEntry]{
		{Label: "Date", Width: 22, Value: func(e types.ActivityEntry) string { return FormatDay(e.Timestamp, loc) }},
		{Label: "Time", Width: 18, Value: func(e types.ActivityEntry) string { return FormatClock(e.Timestamp, loc) }},
		{Label: "Type", Width: 20, Value: func(e types.ActivityEntry) string { return Label(e.Type) }},
		{Label: "Title", Width: 35, Truncate: true, Value: func(e types.ActivityEntry) string { return e.Action }},
		{Label: "Scholarship", Width: 40, Truncate: true, Value: func(e types.ActivityEntry) string { return e.ScholarshipName }},
		{Label: "Status", Width: 20, Value: func(e types.ActivityEntry) string { return Label(e.State) }},
		{Label: "Priority", Width: 18, Value: func(e types.ActivityEntry) string { return Label(e.Priority) }},
		{Label: "Description", Width: 45, Truncate: true, Value: activityDescription},
	}
}

func activityDescription(e types.ActivityEntry) string {
	if e.Details != "" {
		return e.Details
	}
	if e.OldStatus != nil && e.NewStatus != nil {
		return fmt.Sprintf("%s -> %s", Label(*e.OldStatus), Label(*e.NewStatus))
	}
	return ""
}

func documentSummary(a types.Application) string {
	if len(a.Documents) == 0 {
		return "0"
	}
	var total int64
	for _, d := range a.Documents {
		total += d.Size
	}
	return fmt.Sprintf("%d (%s)", len(a.Documents), humanize.Bytes(uint64(total)))
}
