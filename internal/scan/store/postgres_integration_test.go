//go:build integration

package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"regscope/internal/profile"
	regmodels "regscope/internal/regulation/models"
	"regscope/internal/scan/models"
	dErrors "regscope/pkg/domain-errors"
)

type PostgresStoreSuite struct {
	suite.Suite
	pool  *pgxpool.Pool
	store *Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	dsn := os.Getenv("REGSCOPE_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("REGSCOPE_TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect test database: %v", err)
	}
	s := &PostgresStoreSuite{pool: pool, store: NewPostgres(pool)}
	suite.Run(t, s)
	pool.Close()
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.Require().NoError(s.store.Migrate(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), "TRUNCATE scans")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) newScan() *models.Scan {
	return &models.Scan{
		ID:             uuid.New(),
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
		CatalogVersion: "test",
		Profile: profile.Profile{
			"industry":        profile.Choice("tischlerei"),
			"workshopPresent": profile.Toggle(true),
			"dataCategories":  profile.Multi("kundendaten"),
		},
		Results: []regmodels.MatchedRegulation{
			{
				Regulation:  regmodels.Regulation{ID: "gobd", RiskLevel: regmodels.RiskMedium},
				Status:      regmodels.StatusNeedsReview,
				Explanation: "Die GoBD gilt für jeden Betrieb.",
			},
		},
		Score: 0,
	}
}

func (s *PostgresStoreSuite) TestSaveAndGetRoundTrip() {
	ctx := context.Background()
	scan := s.newScan()
	s.Require().NoError(s.store.Save(ctx, scan))

	found, err := s.store.Get(ctx, scan.ID)
	s.Require().NoError(err)
	s.Equal(scan.ID, found.ID)
	s.Equal(scan.CatalogVersion, found.CatalogVersion)
	s.Equal(scan.Profile.Fingerprint(), found.Profile.Fingerprint(),
		"JSONB round trip must preserve the profile byte for byte")
	s.Equal(scan.Results, found.Results)
}

func (s *PostgresStoreSuite) TestGetUnknownID() {
	_, err := s.store.Get(context.Background(), uuid.New())
	s.Error(err)
	s.Equal(dErrors.CodeNotFound, dErrors.Code(err))
}

func (s *PostgresStoreSuite) TestListOrdersByCreatedAtDesc() {
	ctx := context.Background()
	older := s.newScan()
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)
	newer := s.newScan()
	s.Require().NoError(s.store.Save(ctx, older))
	s.Require().NoError(s.store.Save(ctx, newer))

	scans, err := s.store.List(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(scans, 2)
	s.Equal(newer.ID, scans[0].ID)
}
