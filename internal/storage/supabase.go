package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"scholartrack/pkg/types"
)

// SupabaseTable reads and writes scholarships through the PostgREST API
// that Supabase exposes for a table
type SupabaseTable struct {
	baseURL    string
	apiKey     string
	table      string
	httpClient *http.Client
}

// NewSupabaseTable creates a client for https://<project>.supabase.co style URLs
func NewSupabaseTable(baseURL, apiKey, table string) *SupabaseTable {
	return &SupabaseTable{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		table:      table,
		httpClient: &http.Client{},
	}
}

// scholarshipRow mirrors the table columns
type scholarshipRow struct {
	ID              string                  `json:"id"`
	InstitutionName string                  `json:"institution_name"`
	Amount          float64                 `json:"amount"`
	Deadline        types.Date              `json:"deadline"`
	ApplicationLink string                  `json:"application_link"`
	Notes           string                  `json:"notes"`
	Status          types.ScholarshipStatus `json:"status"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

func toRow(s types.Scholarship) scholarshipRow {
	return scholarshipRow(s)
}

func (r scholarshipRow) scholarship() types.Scholarship {
	return types.Scholarship(r)
}

func (s *SupabaseTable) tableURL(query url.Values) string {
	u := fmt.Sprintf("%s/rest/v1/%s", s.baseURL, url.PathEscape(s.table))
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (s *SupabaseTable) authorize(req *http.Request) {
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))
}

// FetchScholarships returns every row, newest first
func (s *SupabaseTable) FetchScholarships(ctx context.Context) ([]types.Scholarship, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "created_at.desc")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.tableURL(query), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	s.authorize(req)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scholarships: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch failed with status %d: %s", resp.StatusCode, string(body))
	}

	var rows []scholarshipRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode scholarships: %w", err)
	}

	out := make([]types.Scholarship, len(rows))
	for i, row := range rows {
		out[i] = row.scholarship()
	}

	return out, nil
}

// InsertScholarship adds one row
func (s *SupabaseTable) InsertScholarship(ctx context.Context, scholarship types.Scholarship) error {
	payload, err := json.Marshal(toRow(scholarship))
	if err != nil {
		return fmt.Errorf("failed to encode scholarship: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tableURL(nil), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	s.authorize(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to insert scholarship: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("insert failed with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
