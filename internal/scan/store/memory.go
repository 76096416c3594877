package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"regscope/internal/scan/models"
	dErrors "regscope/pkg/domain-errors"
)

// InMemory keeps scans in process memory, newest first. Safe for concurrent
// use.
type InMemory struct {
	mu    sync.RWMutex
	scans []*models.Scan
	byID  map[uuid.UUID]*models.Scan
}

func NewInMemory() *InMemory {
	return &InMemory{byID: make(map[uuid.UUID]*models.Scan)}
}

func (s *InMemory) Save(_ context.Context, scan *models.Scan) error {
	if scan == nil {
		return dErrors.New(dErrors.CodeBadRequest, "scan is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[scan.ID]; exists {
		return dErrors.New(dErrors.CodeInvariantViolation, "scan id already stored")
	}
	s.scans = append([]*models.Scan{scan}, s.scans...)
	s.byID[scan.ID] = scan
	return nil
}

func (s *InMemory) Get(_ context.Context, id uuid.UUID) (*models.Scan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scan, ok := s.byID[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "scan not found")
	}
	return scan, nil
}

func (s *InMemory) List(_ context.Context, limit int) ([]*models.Scan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.scans)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*models.Scan, n)
	copy(out, s.scans[:n])
	return out, nil
}
