package dashboard

import (
	"bytes"
	"fmt"
	"time"

	"scholartrack/internal/export"
	"scholartrack/internal/query"
	"scholartrack/pkg/types"
)

type Format string

const (
	FormatWorkbook Format = export.ExtWorkbook
	FormatReport   Format = export.ExtReport
)

// File is a rendered export ready to be downloaded or archived.
type File struct {
	Name        string
	ContentType string
	Body        []byte
	Rows        int
}

func (d *Dashboard) ExportScholarships(format Format, f ScholarshipFilter, sort query.Sort) (File, error) {
	items, _, err := d.ScholarshipView(f, sort)
	if err != nil {
		return File{}, err
	}

	now := d.Now()
	var buf bytes.Buffer
	switch format {
	case FormatWorkbook:
		err = export.WriteWorkbook(&buf, "Scholarships", export.ScholarshipWorkbookColumns(d.loc), items)
	case FormatReport:
		_, err = export.WriteReport(&buf, export.Report{
			Title:       "Scholarship Applications Report",
			Noun:        "Scholarships",
			GeneratedOn: now,
		}, export.ScholarshipReportColumns(), items)
	default:
		return File{}, unsupportedFormat(format)
	}
	if err != nil {
		return File{}, err
	}

	return newFile(export.SubjectScholarships, format, now, buf.Bytes(), len(items)), nil
}

func (d *Dashboard) ExportApplications(format Format, f ApplicationFilter, sort query.Sort) (File, error) {
	items, _, err := d.ApplicationView(f, sort)
	if err != nil {
		return File{}, err
	}

	now := d.Now()
	var buf bytes.Buffer
	switch format {
	case FormatWorkbook:
		err = export.WriteWorkbook(&buf, "Applications", export.ApplicationWorkbookColumns(d.loc), items)
	case FormatReport:
		summary := d.ApplicationStats(items)
		_, err = export.WriteReport(&buf, export.Report{
			Title:       "Application Tracker Report",
			Noun:        "Applications",
			GeneratedOn: now,
			Summary: fmt.Sprintf("Total Value: %s | Approved: %s | Average Progress: %.0f%%",
				export.Money(summary.TotalAmount), export.Money(summary.ApprovedAmount), summary.AverageProgress),
		}, export.ApplicationReportColumns(), items)
	default:
		return File{}, unsupportedFormat(format)
	}
	if err != nil {
		return File{}, err
	}

	return newFile(export.SubjectApplications, format, now, buf.Bytes(), len(items)), nil
}

// ExportActivity only renders the PDF report.
func (d *Dashboard) ExportActivity(format Format, f ActivityFilter, sort query.Sort) (File, error) {
	if format != FormatReport {
		return File{}, unsupportedFormat(format)
	}

	items, _, err := d.ActivityView(f, sort)
	if err != nil {
		return File{}, err
	}

	summary := ActivityStats(items)
	now := d.Now()

	var buf bytes.Buffer
	_, err = export.WriteReport(&buf, export.Report{
		Title:       "Activity Report",
		Noun:        "Activities",
		GeneratedOn: now,
		Summary: fmt.Sprintf("Completed: %d | Pending: %d | Overdue: %d",
			summary.ByStatus[string(types.ActivityCompleted)],
			summary.ByStatus[string(types.ActivityPending)],
			summary.ByStatus[string(types.ActivityOverdue)]),
	}, export.ActivityReportColumns(d.loc), items)
	if err != nil {
		return File{}, err
	}

	return newFile(export.SubjectActivity, format, now, buf.Bytes(), len(items)), nil
}

func newFile(subject export.Subject, format Format, now time.Time, body []byte, rows int) File {
	contentType := export.ContentTypeReport
	if format == FormatWorkbook {
		contentType = export.ContentTypeWorkbook
	}
	return File{
		Name:        export.FileName(subject, now, string(format)),
		ContentType: contentType,
		Body:        body,
		Rows:        rows,
	}
}

func unsupportedFormat(format Format) error {
	return types.NewValidationError("format", fmt.Sprintf("%q is not supported here", format))
}
