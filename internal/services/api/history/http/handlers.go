// Package http provides http transport for history
package http

import (
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"lotgate/internal/core/auction"
	"lotgate/internal/modkit/httpkit"
	perr "lotgate/internal/platform/errors"
	"lotgate/internal/services/api/history/domain"
	svc "lotgate/internal/services/api/history/service"
)

// Register mounts history endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[auction.HistorySearchParams](r, "/search", h.search)
	httpkit.PostJSON[domain.SimilarSalesIn](r, "/similar", h.similar)
	httpkit.PostJSON[domain.SimilarSalesIn](r, "/similar/prices", h.similarPrices)
	httpkit.Get(r, "/vin/{vin}", h.byVIN)
	httpkit.Get(r, "/lot/{lotID}", h.byLotID)
	httpkit.Get(r, "/lot/{lotID}/sales", h.sales)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /history/vin/{vin} History historyByVIN
// @Summary Completed-sale record by VIN
// @Tags History
// @Produce json
// @Param vin path string true "VIN"
// @Param site query string false "Auction site name or code"
// @Success 200 {object} auction.HistoryLot "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /history/vin/{vin} [get]
func (h *handlers) byVIN(r *stdhttp.Request) (any, error) {
	site, err := auction.ParseSite(r.URL.Query().Get("site"))
	if err != nil {
		return nil, err
	}
	return h.svc.ByVIN(r.Context(), site, chi.URLParam(r, "vin"))
}

// swagger:route GET /history/lot/{lotID} History historyByLotID
// @Summary Completed-sale record by lot id
// @Tags History
// @Produce json
// @Param lotID path int true "Lot id"
// @Param site query string false "Auction site name or code"
// @Success 200 {object} auction.HistoryLot "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /history/lot/{lotID} [get]
func (h *handlers) byLotID(r *stdhttp.Request) (any, error) {
	site, lotID, err := siteAndLot(r)
	if err != nil {
		return nil, err
	}
	return h.svc.ByLotID(r.Context(), site, lotID)
}

// swagger:route GET /history/lot/{lotID}/sales History historySales
// @Summary Flattened sale-history rows for a lot
// @Tags History
// @Produce json
// @Param lotID path int true "Lot id"
// @Param site query string false "Auction site name or code"
// @Success 200 {array} domain.SaleHistoryOut "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /history/lot/{lotID}/sales [get]
func (h *handlers) sales(r *stdhttp.Request) (any, error) {
	site, lotID, err := siteAndLot(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Sales(r.Context(), site, lotID)
}

// swagger:route POST /history/search History historySearch
// @Summary Search archived sales
// @Tags History
// @Accept json
// @Produce json
// @Param payload body auction.HistorySearchParams true "Search filters"
// @Success 200 {object} auction.Page "ok"
// @Router /history/search [post]
func (h *handlers) search(r *stdhttp.Request, in auction.HistorySearchParams) (any, error) {
	return h.svc.Search(r.Context(), in)
}

// swagger:route POST /history/similar History historySimilar
// @Summary Archived sales of similar vehicles
// @Tags History
// @Accept json
// @Produce json
// @Param payload body domain.SimilarSalesIn true "Vehicle to match"
// @Success 200 {object} auction.Page "ok"
// @Router /history/similar [post]
func (h *handlers) similar(r *stdhttp.Request, in domain.SimilarSalesIn) (any, error) {
	return h.svc.Similar(r.Context(), in)
}

// swagger:route POST /history/similar/prices History historySimilarPrices
// @Summary Price aggregate over similar archived sales
// @Tags History
// @Accept json
// @Produce json
// @Param payload body domain.SimilarSalesIn true "Vehicle to match"
// @Success 200 {object} domain.SimilarPricesOut "ok"
// @Router /history/similar/prices [post]
func (h *handlers) similarPrices(r *stdhttp.Request, in domain.SimilarSalesIn) (any, error) {
	return h.svc.SimilarPrices(r.Context(), in)
}

func siteAndLot(r *stdhttp.Request) (auction.Site, int64, error) {
	site, err := auction.ParseSite(r.URL.Query().Get("site"))
	if err != nil {
		return auction.SiteNone, 0, err
	}
	lotID, err := strconv.ParseInt(chi.URLParam(r, "lotID"), 10, 64)
	if err != nil {
		return auction.SiteNone, 0, perr.InvalidArgf("lot id must be numeric")
	}
	return site, lotID, nil
}
