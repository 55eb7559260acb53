package domain

import (
	"context"

	"lotgate/internal/core/auction"
)

// ServicePort defines the service contract for filters
type ServicePort interface {
	All(ctx context.Context) (AllFiltersOut, error)
	MakesByVehicleType(ctx context.Context, vehicleTypeSlug string) ([]Filter, error)
	ModelsByMake(ctx context.Context, vehicleTypeSlug, makeSlug string) ([]Filter, error)
	TitleIndicator(ctx context.Context, site auction.Site, title string) (TitleIndicatorOut, error)
}

// SlugResolver maps a filter slug back to its display name for upstream
// search requests. A miss or lookup failure reports ok=false and callers
// pass the raw value through unchanged
type SlugResolver interface {
	Resolve(ctx context.Context, category, slug string) (name string, ok bool)
}
