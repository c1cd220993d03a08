// Package ingestion converts the upstream hazard feeds into normalized
// hazard points. Each source is an isolated failure domain: a fetch error
// costs that source's contribution for the cycle and nothing else.
package ingestion

import (
	"context"

	"github.com/sumatra-gis/hazard-sentinel/internal/models"
)

// Source converts one upstream feed into zero or more hazard points.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.HazardPoint, error)
}
