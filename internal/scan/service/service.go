// Package service orchestrates scan evaluation: applicability matching,
// status resolution, explanation rendering, scoring, persistence, and the
// optional result cache. The pipeline itself stays pure; everything with a
// side effect lives here.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"regscope/internal/compliance"
	"regscope/internal/profile"
	"regscope/internal/questionnaire"
	"regscope/internal/regulation/catalog"
	"regscope/internal/regulation/matcher"
	regmodels "regscope/internal/regulation/models"
	"regscope/internal/scan/metrics"
	"regscope/internal/scan/models"
	"regscope/internal/scan/store"
	dErrors "regscope/pkg/domain-errors"
)

// Cache is the optional result cache. Get returns (nil, nil) on a miss;
// any error is advisory and never fails an evaluation.
type Cache interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type Service struct {
	catalog  *catalog.Catalog
	store    store.Store
	cache    Cache
	cacheTTL time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithCache enables the evaluation result cache. Keys include the catalog
// version, so a catalog upgrade naturally invalidates old entries.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// WithClock overrides time.Now, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(cat *catalog.Catalog, st store.Store, opts ...Option) (*Service, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if st == nil {
		return nil, fmt.Errorf("scan store is required")
	}

	svc := &Service{
		catalog: cat,
		store:   st,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc, nil
}

// evaluation is the cached wire form of one evaluation result.
type evaluation struct {
	Results []regmodels.MatchedRegulation `json:"results"`
	Score   int                           `json:"score"`
}

// Evaluate runs the pure pipeline for a profile without persisting anything.
// The result is fully derived from the profile and the catalog, so equal
// inputs always produce identical output, cached or not.
func (s *Service) Evaluate(ctx context.Context, p profile.Profile) ([]regmodels.MatchedRegulation, int) {
	key := s.cacheKey(p)
	if cached, ok := s.cacheGet(ctx, key); ok {
		return cached.Results, cached.Score
	}

	results := matcher.MatchAndExplain(p, s.catalog.Regulations, s.catalog.Checks)
	score := compliance.Score(results)

	s.cachePut(ctx, key, evaluation{Results: results, Score: score})
	return results, score
}

// Run evaluates a profile and persists the outcome as a new scan.
func (s *Service) Run(ctx context.Context, p profile.Profile) (*models.Scan, error) {
	start := s.now()
	snapshot := p.Clone()
	results, score := s.Evaluate(ctx, snapshot)

	scan := &models.Scan{
		ID:             uuid.New(),
		CreatedAt:      s.now(),
		CatalogVersion: s.catalog.Version,
		Profile:        snapshot,
		Results:        results,
		Score:          score,
	}
	if err := s.store.Save(ctx, scan); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "persist scan")
	}

	s.metrics.ObserveScan(len(results), score, s.now().Sub(start))
	s.logger.InfoContext(ctx, "scan completed",
		"scan_id", scan.ID,
		"matched", len(results),
		"score", score,
	)
	return scan, nil
}

// Get returns a stored scan.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Scan, error) {
	return s.store.Get(ctx, id)
}

// List returns stored scans, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]*models.Scan, error) {
	return s.store.List(ctx, limit)
}

// Replay re-runs a stored profile against the current catalog and returns
// the freshly derived scan without persisting it. Profiles saved under
// older catalog versions may carry retired fields; those degrade per
// operator and never fail the replay.
func (s *Service) Replay(ctx context.Context, id uuid.UUID) (*models.Scan, error) {
	stored, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	results, score := s.Evaluate(ctx, stored.Profile)
	return &models.Scan{
		ID:             stored.ID,
		CreatedAt:      stored.CreatedAt,
		CatalogVersion: s.catalog.Version,
		Profile:        stored.Profile,
		Results:        results,
		Score:          score,
	}, nil
}

// ValidateLayer checks the visible required fields of one questionnaire
// layer against the answers collected so far. The returned map is user
// input feedback, not an error condition.
func (s *Service) ValidateLayer(layerID string, p profile.Profile) (map[string]questionnaire.ErrorKind, error) {
	layer, ok := s.catalog.Layer(layerID)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "questionnaire layer not found")
	}
	return questionnaire.ValidateLayer(layer, p), nil
}

// Regulations exposes the catalog entries for listing endpoints.
func (s *Service) Regulations() []regmodels.Regulation {
	return s.catalog.Regulations
}

// Questionnaire exposes the layer definitions for the UI collaborator.
func (s *Service) Questionnaire() []questionnaire.Layer {
	return s.catalog.Questionnaire
}

func (s *Service) cacheKey(p profile.Profile) string {
	return fmt.Sprintf("regscope:eval:%s:%s", s.catalog.Version, p.Fingerprint())
}

func (s *Service) cacheGet(ctx context.Context, key string) (evaluation, bool) {
	if s.cache == nil {
		return evaluation{}, false
	}
	data, err := s.cache.GetBytes(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "result cache read failed", "error", err)
		return evaluation{}, false
	}
	if data == nil {
		s.metrics.IncrementCacheMiss()
		return evaluation{}, false
	}
	var ev evaluation
	if err := json.Unmarshal(data, &ev); err != nil {
		s.logger.WarnContext(ctx, "result cache entry corrupt", "error", err)
		return evaluation{}, false
	}
	s.metrics.IncrementCacheHit()
	return ev, true
}

func (s *Service) cachePut(ctx context.Context, key string, ev evaluation) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := s.cache.SetBytes(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "result cache write failed", "error", err)
	}
}
