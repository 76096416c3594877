package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"regscope/internal/profile"
	regmodels "regscope/internal/regulation/models"
	"regscope/internal/scan/models"
	dErrors "regscope/pkg/domain-errors"
)

// Postgres persists scans in a single table with JSONB profile and result
// columns. The profile column is canonical; results are stored for listing
// convenience and can always be re-derived by replay.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate creates the scans table if it does not exist yet.
func (s *Postgres) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS scans (
			id UUID PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL,
			catalog_version TEXT NOT NULL,
			profile JSONB NOT NULL,
			results JSONB NOT NULL,
			score INT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("migrate scans table: %w", err)
	}
	return nil
}

func (s *Postgres) Save(ctx context.Context, scan *models.Scan) error {
	if scan == nil {
		return dErrors.New(dErrors.CodeBadRequest, "scan is required")
	}
	profileJSON, err := json.Marshal(scan.Profile)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode profile")
	}
	resultsJSON, err := json.Marshal(scan.Results)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode results")
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO scans (id, created_at, catalog_version, profile, results, score)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		scan.ID, scan.CreatedAt, scan.CatalogVersion, profileJSON, resultsJSON, scan.Score)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "insert scan")
	}
	return nil
}

func (s *Postgres) Get(ctx context.Context, id uuid.UUID) (*models.Scan, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, created_at, catalog_version, profile, results, score
		FROM scans WHERE id = $1`, id)

	scan, err := scanRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, dErrors.New(dErrors.CodeNotFound, "scan not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "query scan")
	}
	return scan, nil
}

func (s *Postgres) List(ctx context.Context, limit int) ([]*models.Scan, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, created_at, catalog_version, profile, results, score
		FROM scans ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list scans")
	}
	defer rows.Close()

	var out []*models.Scan
	for rows.Next() {
		scan, err := scanRow(rows)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "decode scan row")
		}
		out = append(out, scan)
	}
	if err := rows.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "iterate scans")
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRow(row rowScanner) (*models.Scan, error) {
	var (
		scan        models.Scan
		profileJSON []byte
		resultsJSON []byte
	)
	if err := row.Scan(&scan.ID, &scan.CreatedAt, &scan.CatalogVersion,
		&profileJSON, &resultsJSON, &scan.Score); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(profileJSON, &scan.Profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if scan.Profile == nil {
		scan.Profile = profile.Profile{}
	}
	if err := json.Unmarshal(resultsJSON, &scan.Results); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	if scan.Results == nil {
		scan.Results = []regmodels.MatchedRegulation{}
	}
	return &scan, nil
}
