package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const analysisColumns = `id, user_id, document_id, source, profile, job_description, overall_score, rating, result, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// Create inserts a new analysis; the full result is stored as JSONB.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (
	id, user_id, document_id, source, profile, job_description, overall_score, rating, result, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	payload, err := json.Marshal(analysis.Result)
	if err != nil {
		return fmt.Errorf("marshal analysis result: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.UserID,
		nullString(analysis.DocumentID),
		analysis.Source,
		analysis.Profile,
		nullString(analysis.JobDescription),
		analysis.OverallScore,
		analysis.Rating,
		payload,
		analysis.CreatedAt,
	)
	return err
}

// GetByID returns an analysis scoped to its owner.
func (r *PGRepo) GetByID(ctx context.Context, userID, analysisID string) (Analysis, error) {
	query := `SELECT ` + analysisColumns + `
FROM analyses
WHERE id = $1 AND user_id = $2`
	return scanAnalysis(r.DB.QueryRowContext(ctx, query, analysisID, userID))
}

// ListByUser returns analyses newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	query := `SELECT ` + analysisColumns + `
FROM analyses
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var (
		a          Analysis
		documentID sql.NullString
		jobDesc    sql.NullString
		payload    []byte
	)
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&documentID,
		&a.Source,
		&a.Profile,
		&jobDesc,
		&a.OverallScore,
		&a.Rating,
		&payload,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	a.DocumentID = documentID.String
	a.JobDescription = jobDesc.String
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &a.Result); err != nil {
			return Analysis{}, fmt.Errorf("decode analysis result %s: %w", a.ID, err)
		}
	}
	return a, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
