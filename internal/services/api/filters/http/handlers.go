// Package http provides http transport for filters
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"lotgate/internal/core/auction"
	"lotgate/internal/modkit/httpkit"
	perr "lotgate/internal/platform/errors"
	svc "lotgate/internal/services/api/filters/service"
)

// Register mounts filters endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/all", h.all)
	httpkit.Get(r, "/title-indicator", h.titleIndicator)
	httpkit.Get(r, "/{vehicleType}/makes", h.makes)
	httpkit.Get(r, "/{vehicleType}/makes/{make}/models", h.models)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /filters/all Filters filtersAll
// @Summary All static filter tables
// @Tags Filters
// @Produce json
// @Success 200 {object} domain.AllFiltersOut "ok"
// @Router /filters/all [get]
func (h *handlers) all(r *stdhttp.Request) (any, error) {
	return h.svc.All(r.Context())
}

// swagger:route GET /filters/{vehicleType}/makes Filters filtersMakes
// @Summary Makes for a vehicle type
// @Tags Filters
// @Produce json
// @Param vehicleType path string true "Vehicle type slug"
// @Success 200 {array} domain.Filter "ok"
// @Failure 404 {object} httpkit.Envelope "vehicle type not found"
// @Router /filters/{vehicleType}/makes [get]
func (h *handlers) makes(r *stdhttp.Request) (any, error) {
	return h.svc.MakesByVehicleType(r.Context(), chi.URLParam(r, "vehicleType"))
}

// swagger:route GET /filters/{vehicleType}/makes/{make}/models Filters filtersModels
// @Summary Models for a make within a vehicle type
// @Tags Filters
// @Produce json
// @Param vehicleType path string true "Vehicle type slug"
// @Param make path string true "Make slug"
// @Success 200 {array} domain.Filter "ok"
// @Failure 404 {object} httpkit.Envelope "vehicle type or make not found"
// @Router /filters/{vehicleType}/makes/{make}/models [get]
func (h *handlers) models(r *stdhttp.Request) (any, error) {
	return h.svc.ModelsByMake(r.Context(), chi.URLParam(r, "vehicleType"), chi.URLParam(r, "make"))
}

// swagger:route GET /filters/title-indicator Filters filtersTitleIndicator
// @Summary Title indicator color for a site and title name
// @Tags Filters
// @Produce json
// @Param site query string true "Auction site name or code"
// @Param title query string true "Title name"
// @Success 200 {object} domain.TitleIndicatorOut "ok"
// @Router /filters/title-indicator [get]
func (h *handlers) titleIndicator(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()

	site, err := auction.ParseSite(q.Get("site"))
	if err != nil {
		return nil, err
	}
	if site.IsNone() || site == auction.SiteAll {
		return nil, perr.InvalidArgf("site must name one auction")
	}
	title := q.Get("title")
	if title == "" {
		return nil, perr.InvalidArgf("title is required")
	}
	return h.svc.TitleIndicator(r.Context(), site, title)
}
