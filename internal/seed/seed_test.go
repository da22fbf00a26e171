package seed

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"scholartrack/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryBackend struct {
	rows      []types.Scholarship
	insertErr error
}

func (m *memoryBackend) FetchScholarships(ctx context.Context) ([]types.Scholarship, error) {
	return m.rows, nil
}

func (m *memoryBackend) InsertScholarship(ctx context.Context, s types.Scholarship) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.rows = append(m.rows, s)
	return nil
}

func TestSeedScholarships_Idempotent(t *testing.T) {
	backend := &memoryBackend{rows: []types.Scholarship{{ID: mitID}}}
	var out bytes.Buffer

	n, err := SeedScholarships(context.Background(), backend, &out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Len(t, backend.rows, 4)
	assert.Contains(t, out.String(), "Skipping scholarship: MIT Engineering Excellence Award")

	n, err = SeedScholarships(context.Background(), backend, &out)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSeedScholarships_InsertError(t *testing.T) {
	backend := &memoryBackend{insertErr: errors.New("read only")}
	var out bytes.Buffer

	_, err := SeedScholarships(context.Background(), backend, &out)
	assert.ErrorContains(t, err, "read only")
}

func TestSampleIsValid(t *testing.T) {
	for _, s := range Scholarships() {
		in := types.ScholarshipInput{
			InstitutionName: s.InstitutionName,
			Amount:          s.Amount,
			Deadline:        s.Deadline,
			ApplicationLink: s.ApplicationLink,
			Notes:           s.Notes,
			Status:          s.Status,
		}
		assert.NoError(t, in.Validate(), s.InstitutionName)
		assert.False(t, s.UpdatedAt.Before(s.CreatedAt), s.InstitutionName)
	}

	apps := Applications()
	require.Len(t, apps, 5)
	assert.Equal(t, 50, apps[0].Progress)
	assert.Equal(t, 0, apps[3].Progress)

	activity := Activity()
	for i := 1; i < len(activity); i++ {
		assert.False(t, activity[i].Timestamp.After(activity[i-1].Timestamp))
	}
}
