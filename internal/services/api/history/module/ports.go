package module

import (
	"context"

	"lotgate/internal/core/auction"
	historydom "lotgate/internal/services/api/history/domain"
	historysvc "lotgate/internal/services/api/history/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptHistoryPort adapts the history service to the domain port interface
type adaptHistoryPort struct{ svc historysvc.Service }

var _ historydom.ServicePort = adaptHistoryPort{}

// ByVIN implements the domain ServicePort interface
func (a adaptHistoryPort) ByVIN(ctx context.Context, site auction.Site, vin string) (auction.Result, error) {
	return a.svc.ByVIN(ctx, site, vin)
}

// ByLotID implements the domain ServicePort interface
func (a adaptHistoryPort) ByLotID(ctx context.Context, site auction.Site, lotID int64) (auction.Result, error) {
	return a.svc.ByLotID(ctx, site, lotID)
}

// Search implements the domain ServicePort interface
func (a adaptHistoryPort) Search(ctx context.Context, in auction.HistorySearchParams) (auction.Result, error) {
	return a.svc.Search(ctx, in)
}

// Sales implements the domain ServicePort interface
func (a adaptHistoryPort) Sales(ctx context.Context, site auction.Site, lotID int64) ([]historydom.SaleHistoryOut, error) {
	return a.svc.Sales(ctx, site, lotID)
}

// Similar implements the domain ServicePort interface
func (a adaptHistoryPort) Similar(ctx context.Context, in historydom.SimilarSalesIn) (auction.Result, error) {
	return a.svc.Similar(ctx, in)
}

// SimilarPrices implements the domain ServicePort interface
func (a adaptHistoryPort) SimilarPrices(ctx context.Context, in historydom.SimilarSalesIn) (historydom.SimilarPricesOut, error) {
	return a.svc.SimilarPrices(ctx, in)
}
