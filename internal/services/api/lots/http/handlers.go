// Package http provides http transport for lots
package http

import (
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"lotgate/internal/core/auction"
	"lotgate/internal/modkit/httpkit"
	perr "lotgate/internal/platform/errors"
	svc "lotgate/internal/services/api/lots/service"
)

// Register mounts lots endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[auction.CurrentSearchParams](r, "/search", h.search)
	httpkit.Get(r, "/{vinOrLot}", h.byVinOrLot)
	httpkit.Get(r, "/{lotID}/current-bid", h.currentBid)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /lots/{vinOrLot} Lots lotsByVinOrLot
// @Summary Lot by VIN or lot id across current and archived auctions
// @Tags Lots
// @Produce json
// @Param vinOrLot path string true "VIN or numeric lot id"
// @Param site query string false "Auction site name or code"
// @Success 200 {object} auction.Result "ok"
// @Failure 404 {object} httpkit.Envelope "lot not found"
// @Router /lots/{vinOrLot} [get]
func (h *handlers) byVinOrLot(r *stdhttp.Request) (any, error) {
	site, err := auction.ParseSite(r.URL.Query().Get("site"))
	if err != nil {
		return nil, err
	}
	return h.svc.ByVinOrLot(r.Context(), site, chi.URLParam(r, "vinOrLot"))
}

// swagger:route GET /lots/{lotID}/current-bid Lots lotsCurrentBid
// @Summary Live pre-bid for a lot
// @Tags Lots
// @Produce json
// @Param lotID path int true "Lot id"
// @Param site query string false "Auction site name or code"
// @Success 200 {object} auction.CurrentBid "ok"
// @Failure 404 {object} httpkit.Envelope "lot not found"
// @Router /lots/{lotID}/current-bid [get]
func (h *handlers) currentBid(r *stdhttp.Request) (any, error) {
	site, err := auction.ParseSite(r.URL.Query().Get("site"))
	if err != nil {
		return nil, err
	}
	lotID, err := strconv.ParseInt(chi.URLParam(r, "lotID"), 10, 64)
	if err != nil {
		return nil, perr.InvalidArgf("lot id must be numeric")
	}
	return h.svc.CurrentBid(r.Context(), site, lotID)
}

// swagger:route POST /lots/search Lots lotsSearch
// @Summary Search live lots
// @Tags Lots
// @Accept json
// @Produce json
// @Param payload body auction.CurrentSearchParams true "Search filters"
// @Success 200 {object} auction.Page "ok"
// @Router /lots/search [post]
func (h *handlers) search(r *stdhttp.Request, in auction.CurrentSearchParams) (any, error) {
	return h.svc.Search(r.Context(), in)
}
