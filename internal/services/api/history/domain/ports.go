package domain

import (
	"context"

	"lotgate/internal/core/auction"
)

// ServicePort defines the service contract for history
type ServicePort interface {
	ByVIN(ctx context.Context, site auction.Site, vin string) (auction.Result, error)
	ByLotID(ctx context.Context, site auction.Site, lotID int64) (auction.Result, error)
	Search(ctx context.Context, in auction.HistorySearchParams) (auction.Result, error)
	Sales(ctx context.Context, site auction.Site, lotID int64) ([]SaleHistoryOut, error)
	Similar(ctx context.Context, in SimilarSalesIn) (auction.Result, error)
	SimilarPrices(ctx context.Context, in SimilarSalesIn) (SimilarPricesOut, error)
}
