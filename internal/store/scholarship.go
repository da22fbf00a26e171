package store

import (
	"context"
	"fmt"

	"scholartrack/internal/utils"
	"scholartrack/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
)

const scholarshipTableName = "scholarships"

var scholarshipColumns = utils.StructTagValues(types.Scholarship{})

type ScholarshipRepository struct {
	db Querier
}

func NewScholarshipRepository(db Querier) *ScholarshipRepository {
	return &ScholarshipRepository{db: db}
}

func fetchScholarshipsQuery() (string, []any, error) {
	return psql().
		Select(scholarshipColumns...).
		From(scholarshipTableName).
		OrderBy("created_at DESC").
		ToSql()
}

// FetchScholarships returns every scholarship, newest first
func (r *ScholarshipRepository) FetchScholarships(ctx context.Context) ([]types.Scholarship, error) {
	query, args, err := fetchScholarshipsQuery()
	if err != nil {
		return nil, fmt.Errorf("failed to generate scholarships query: %w", err)
	}

	var scholarships []types.Scholarship
	err = pgxscan.Select(ctx, r.db, &scholarships, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scholarships: %w", err)
	}

	return scholarships, nil
}

func insertScholarshipQuery(s types.Scholarship) (string, []any, error) {
	return psql().
		Insert(scholarshipTableName).
		SetMap(utils.StructToMap(s)).
		ToSql()
}

// InsertScholarship writes s as given. Ids and timestamps are assigned by the caller.
func (r *ScholarshipRepository) InsertScholarship(ctx context.Context, s types.Scholarship) error {
	query, args, err := insertScholarshipQuery(s)
	if err != nil {
		return fmt.Errorf("failed to generate insert query: %w", err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to insert scholarship")
}
