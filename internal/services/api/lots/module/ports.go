package module

import (
	"context"

	"lotgate/internal/core/auction"
	lotsdom "lotgate/internal/services/api/lots/domain"
	lotssvc "lotgate/internal/services/api/lots/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptLotsPort adapts the lots service to the domain port interface
type adaptLotsPort struct{ svc lotssvc.Service }

var _ lotsdom.ServicePort = adaptLotsPort{}

// ByVinOrLot implements the domain ServicePort interface
func (a adaptLotsPort) ByVinOrLot(ctx context.Context, site auction.Site, vinOrLot string) (auction.Result, error) {
	return a.svc.ByVinOrLot(ctx, site, vinOrLot)
}

// CurrentBid implements the domain ServicePort interface
func (a adaptLotsPort) CurrentBid(ctx context.Context, site auction.Site, lotID int64) (*auction.CurrentBid, error) {
	return a.svc.CurrentBid(ctx, site, lotID)
}

// Search implements the domain ServicePort interface
func (a adaptLotsPort) Search(ctx context.Context, in auction.CurrentSearchParams) (auction.Result, error) {
	return a.svc.Search(ctx, in)
}
