package export

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"scholartrack/pkg/types"
)

type Subject string

const (
	SubjectScholarships Subject = "scholarships"
	SubjectApplications Subject = "applications"
	SubjectActivity     Subject = "activity-report"
)

const (
	ExtWorkbook = "xlsx"
	ExtReport   = "pdf"

	ContentTypeWorkbook = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeReport   = "application/pdf"
)

// TruncateAt is the number of characters of free text kept in a report cell.
const TruncateAt = 50

// FileName builds "<subject>-<YYYY-MM-DD>.<ext>" from the calendar day of now
// in now's location.
func FileName(subject Subject, now time.Time, ext string) string {
	return fmt.Sprintf("%s-%s.%s", subject, now.Format(types.DateLayout), ext)
}

// Money renders an amount with a dollar sign and thousands grouping.
func Money(amount float64) string {
	return "$" + humanize.CommafWithDigits(amount, 2)
}

func FormatDate(d types.Date) string {
	if !d.Valid() {
		return ""
	}
	return d.Format("1/2/2006")
}

func FormatDatePtr(d *types.Date) string {
	if d == nil {
		return ""
	}
	return FormatDate(*d)
}

func FormatDay(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format("1/2/2006")
}

func FormatClock(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format("03:04 PM")
}

// Label turns an enum value like "under-review" into "Under Review".
func Label[S ~string](v S) string {
	if v == "" {
		return "N/A"
	}
	words := strings.FieldsFunc(string(v), func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Truncate shortens s to n characters followed by "..." when it is longer.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
