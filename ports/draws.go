package ports

import (
	"context"

	"golotto/domain/draw"
)

// DrawSource loads draw data from wherever it lives (CSV, XLSX). Historical
// draws come back ordered earliest first.
type DrawSource interface {
	// LoadHistorical returns the full historical record
	LoadHistorical(ctx context.Context) ([]draw.Draw, error)

	// LoadUpcoming returns upcoming draws, empty when none are configured
	LoadUpcoming(ctx context.Context) ([]draw.Draw, error)

	// LoadLatest returns the most recent confirmed draw, nil when unavailable
	LoadLatest(ctx context.Context) (*draw.Draw, error)
}
