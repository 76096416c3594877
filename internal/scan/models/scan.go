// Package models defines the scan record: one completed evaluation of a
// business profile against the catalog.
package models

import (
	"time"

	"github.com/google/uuid"

	"regscope/internal/profile"
	regmodels "regscope/internal/regulation/models"
)

// Scan is a persisted evaluation. The profile snapshot plus the catalog
// version is canonical: Results and Score are derived data and replaying
// the profile through the engine must reproduce them. Older scans whose
// profiles carry retired fields still replay without error.
type Scan struct {
	ID             uuid.UUID                     `json:"id"`
	CreatedAt      time.Time                     `json:"created_at"`
	CatalogVersion string                        `json:"catalog_version"`
	Profile        profile.Profile               `json:"profile"`
	Results        []regmodels.MatchedRegulation `json:"results"`
	Score          int                           `json:"score"`
}
