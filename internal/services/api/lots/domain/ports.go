// Package domain holds contracts for the lots service
package domain

import (
	"context"

	"lotgate/internal/core/auction"
)

// ServicePort defines the service contract for lots
type ServicePort interface {
	// ByVinOrLot routes a mixed identifier: all digits means lot id,
	// anything else is treated as a VIN
	ByVinOrLot(ctx context.Context, site auction.Site, vinOrLot string) (auction.Result, error)

	// CurrentBid fetches the live pre-bid for a lot
	CurrentBid(ctx context.Context, site auction.Site, lotID int64) (*auction.CurrentBid, error)

	// Search lists live lots matching the filter set
	Search(ctx context.Context, in auction.CurrentSearchParams) (auction.Result, error)
}
