// Package store persists scan history. Two implementations share the Store
// interface: an in-memory store for development and tests, and a Postgres
// store for deployments.
package store

import (
	"context"

	"github.com/google/uuid"

	"regscope/internal/scan/models"
)

// Store is the scan-history persistence contract.
type Store interface {
	Save(ctx context.Context, s *models.Scan) error
	Get(ctx context.Context, id uuid.UUID) (*models.Scan, error)
	List(ctx context.Context, limit int) ([]*models.Scan, error)
}
