package seed

import (
	"context"
	"fmt"
	"io"

	"scholartrack/internal/dashboard"
)

// SeedScholarships inserts every sample scholarship the backend does not
// have yet. Rows are matched by id; existing rows are left alone.
func SeedScholarships(ctx context.Context, backend dashboard.ScholarshipBackend, out io.Writer) (int, error) {
	scholarships := Scholarships()

	fmt.Fprintln(out, "Starting scholarship seed...")
	fmt.Fprintf(out, "  Seed file contains %d scholarships\n", len(scholarships))

	existing, err := backend.FetchScholarships(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch existing scholarships: %w", err)
	}
	fmt.Fprintf(out, "  Backend contains %d scholarships\n", len(existing))

	known := make(map[string]bool, len(existing))
	for _, s := range existing {
		known[s.ID] = true
	}

	inserted := 0
	for _, s := range scholarships {
		if known[s.ID] {
			fmt.Fprintf(out, "  Skipping scholarship: %s (id: %s)\n", s.InstitutionName, s.ID)
			continue
		}

		fmt.Fprintf(out, "  Inserting scholarship: %s (id: %s)\n", s.InstitutionName, s.ID)
		if err := backend.InsertScholarship(ctx, s); err != nil {
			return inserted, fmt.Errorf("failed to insert scholarship %s: %w", s.ID, err)
		}
		inserted++
	}

	fmt.Fprintf(out, "\nSeed complete: %d inserted, %d already present\n", inserted, len(scholarships)-inserted)
	return inserted, nil
}
