// Package service contains lot lookup and search workflows
package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"lotgate/internal/adapters/cache"
	"lotgate/internal/adapters/upstream"
	"lotgate/internal/core/auction"
	perr "lotgate/internal/platform/errors"
	"lotgate/internal/platform/logger"
	filtersdom "lotgate/internal/services/api/filters/domain"
	"lotgate/internal/services/api/lots/domain"
)

// Service defines the service contract for lots
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	up    upstream.Fetcher
	cache cache.Cache
	slugs filtersdom.SlugResolver
	log   *logger.Logger
	now   func() time.Time
}

// Option tweaks service construction
type Option func(*Svc)

// WithNow overrides the clock, used by tests
func WithNow(now func() time.Time) Option {
	return func(s *Svc) { s.now = now }
}

// New creates a new lots service
func New(up upstream.Fetcher, c cache.Cache, slugs filtersdom.SlugResolver, log *logger.Logger, opts ...Option) *Svc {
	if up == nil {
		panic("lots.Service requires a non nil upstream Fetcher")
	}
	if c == nil {
		c = cache.Nop{}
	}
	if log == nil {
		log = logger.Named("lots")
	}
	s := &Svc{up: up, cache: c, slugs: slugs, log: log, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ByVinOrLot resolves a lot by lot id or VIN. Numeric ids search all-time
// records first and fall back to the live-only endpoint when nothing matched
func (s *Svc) ByVinOrLot(ctx context.Context, site auction.Site, vinOrLot string) (auction.Result, error) {
	v := strings.ToUpper(strings.ReplaceAll(vinOrLot, " ", ""))
	if v == "" {
		return auction.Result{}, perr.InvalidArgf("vin or lot id is required")
	}

	key := cache.LotKey(v, siteKey(site))
	if b, ok := s.cache.Get(ctx, key); ok {
		if res, err := cache.DecodeResult(b); err == nil {
			return res, nil
		}
	}

	var res auction.Result
	var err error
	if isDigits(v) {
		lotID, convErr := strconv.ParseInt(v, 10, 64)
		if convErr != nil {
			return auction.Result{}, perr.InvalidArgf("lot id %q out of range", v)
		}
		q := auction.LotByIDQuery{Site: site.Code(), LotID: lotID}

		s.log.Debug().Int64("lot_id", lotID).Stringer("site", site).Msg("routing lookup by lot id")
		res, err = s.up.Do(ctx, auction.GetLotByIDAllTime, q, nil)
		if err != nil && !perr.IsCode(err, perr.ErrorCodeNotFound) {
			return auction.Result{}, err
		}
		if err != nil || emptyResult(res) {
			res, err = s.up.Do(ctx, auction.GetLotByIDCurrent, q, map[string]string{"lot_id": v})
			if err != nil {
				return auction.Result{}, err
			}
		}
	} else {
		if err := validVIN(v); err != nil {
			return auction.Result{}, err
		}
		s.log.Debug().Str("vin", v).Stringer("site", site).Msg("routing lookup by vin")
		res, err = s.up.Do(ctx, auction.GetLotByVINAllTime, auction.LotByVINQuery{Site: site.Code(), VIN: v}, nil)
		if err != nil {
			return auction.Result{}, err
		}
	}

	if b, encErr := cache.EncodeResult(res); encErr == nil {
		s.cache.Set(ctx, key, b, cache.TTLVinOrLot)
	}
	return res, nil
}

// CurrentBid fetches the live pre-bid for a lot
func (s *Svc) CurrentBid(ctx context.Context, site auction.Site, lotID int64) (*auction.CurrentBid, error) {
	if lotID <= 0 {
		return nil, perr.InvalidArgf("lot id must be positive")
	}

	key := cache.BidKey(lotID, siteKey(site))
	if b, ok := s.cache.Get(ctx, key); ok {
		var bid auction.CurrentBid
		if err := json.Unmarshal(b, &bid); err == nil {
			return &bid, nil
		}
	}

	res, err := s.up.Do(ctx, auction.GetCurrentBid, auction.LotByIDQuery{Site: site.Code(), LotID: lotID}, nil)
	if err != nil {
		return nil, err
	}
	if res.Kind != auction.KindCurrentBid || res.Bid == nil {
		return nil, perr.UpstreamValidationf("upstream current-bid returned %s", res.Kind)
	}

	if b, encErr := json.Marshal(res.Bid); encErr == nil {
		s.cache.Set(ctx, key, b, cache.TTLCurrentBid)
	}
	return res.Bid, nil
}

// Search lists live lots matching the filter set. Slug-valued fields are
// rewritten to upstream display names before the request leaves
func (s *Svc) Search(ctx context.Context, in auction.CurrentSearchParams) (auction.Result, error) {
	if err := in.Normalize(s.now().UTC()); err != nil {
		return auction.Result{}, err
	}
	filtersdom.ResolveSearchSlugs(ctx, s.slugs, &in.SearchParams)

	key := cache.SearchKey("lots:current", paramsMap(in))
	if b, ok := s.cache.Get(ctx, key); ok {
		if res, err := cache.DecodeResult(b); err == nil {
			return res, nil
		}
	}

	res, err := s.up.Do(ctx, auction.SearchCurrentLots, in, nil)
	if err != nil {
		return auction.Result{}, err
	}

	if b, encErr := cache.EncodeResult(res); encErr == nil {
		s.cache.Set(ctx, key, b, cache.TTLSearch)
	}
	return res, nil
}

// paramsMap flattens a params struct for key fingerprinting
func paramsMap(v any) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	m := map[string]any{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m
}

func siteKey(site auction.Site) string {
	if site.IsNone() {
		return ""
	}
	return strconv.Itoa(site.Code())
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func validVIN(v string) error {
	if len(v) < 11 || len(v) > 17 {
		return perr.InvalidArgf("vin must be 11 to 17 characters")
	}
	for _, r := range v {
		alnum := (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z')
		if !alnum {
			return perr.InvalidArgf("vin contains invalid characters")
		}
	}
	return nil
}

func emptyResult(res auction.Result) bool {
	switch res.Kind {
	case auction.KindList:
		return len(res.Items) == 0
	case auction.KindPage:
		return res.Page == nil || len(res.Page.Data) == 0
	default:
		return false
	}
}
