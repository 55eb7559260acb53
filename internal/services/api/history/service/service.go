// Package service contains archived-sale lookup workflows
package service

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"lotgate/internal/adapters/cache"
	"lotgate/internal/adapters/upstream"
	"lotgate/internal/core/auction"
	perr "lotgate/internal/platform/errors"
	"lotgate/internal/platform/logger"
	filtersdom "lotgate/internal/services/api/filters/domain"
	"lotgate/internal/services/api/history/domain"
)

// Service defines the service contract for history
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

// New creates a new history service
func New(up upstream.Fetcher, c cache.Cache, slugs filtersdom.SlugResolver, log *logger.Logger, opts ...Option) *Svc {
	if up == nil {
		panic("history.Service requires a non nil upstream Fetcher")
	}
	if c == nil {
		c = cache.Nop{}
	}
	if log == nil {
		log = logger.Named("history")
	}
	s := &Svc{up: up, cache: c, slugs: slugs, log: log, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ByVIN fetches the completed-sale record for a VIN
func (s *Svc) ByVIN(ctx context.Context, site auction.Site, vin string) (auction.Result, error) {
	v := strings.ToUpper(strings.ReplaceAll(vin, " ", ""))
	if v == "" {
		return auction.Result{}, perr.InvalidArgf("vin is required")
	}
	return s.cached(ctx, cache.HistoryKey(v, siteKey(site)), func() (auction.Result, error) {
		return s.up.Do(ctx, auction.GetHistoryByVIN, auction.LotByVINQuery{Site: site.Code(), VIN: v}, nil)
	})
}

// ByLotID fetches the completed-sale record for a lot id
func (s *Svc) ByLotID(ctx context.Context, site auction.Site, lotID int64) (auction.Result, error) {
	if lotID <= 0 {
		return auction.Result{}, perr.InvalidArgf("lot id must be positive")
	}
	key := cache.HistoryKey(strconv.FormatInt(lotID, 10), siteKey(site))
	return s.cached(ctx, key, func() (auction.Result, error) {
		return s.up.Do(ctx, auction.GetHistoryByID, auction.LotByIDQuery{Site: site.Code(), LotID: lotID}, nil)
	})
}

// Search lists archived sales matching the filter set
func (s *Svc) Search(ctx context.Context, in auction.HistorySearchParams) (auction.Result, error) {
	if err := in.Normalize(s.now().UTC()); err != nil {
		return auction.Result{}, err
	}
	filtersdom.ResolveSearchSlugs(ctx, s.slugs, &in.SearchParams)
	return s.up.Do(ctx, auction.SearchHistoryLots, in, nil)
}

// Sales flattens the sale-history rows attached to a lot's archive record
func (s *Svc) Sales(ctx context.Context, site auction.Site, lotID int64) ([]domain.SaleHistoryOut, error) {
	res, err := s.ByLotID(ctx, site, lotID)
	if err != nil {
		return nil, err
	}
	if res.Kind != auction.KindHistoryLot || res.History == nil {
		return []domain.SaleHistoryOut{}, nil
	}

	out := make([]domain.SaleHistoryOut, 0, len(res.History.SaleHistory))
	for _, e := range res.History.SaleHistory {
		out = append(out, domain.SaleHistoryOut{
			Auction:      auctionName(e.Site, e.BaseSite),
			BuyerState:   e.BuyerState,
			BuyerCountry: e.BuyerCountry,
			Date:         e.SaleDate,
			FinalBid:     e.PurchasePrice,
			LotID:        e.LotID,
			Status:       e.SaleStatus,
			IsBuyNow:     e.IsBuyNow,
			VIN:          e.VIN,
		})
	}
	return out, nil
}

// Similar lists archived sales of vehicles like the given one
func (s *Svc) Similar(ctx context.Context, in domain.SimilarSalesIn) (auction.Result, error) {
	params := in.SearchParams()
	s.log.Debug().Any("params", params).Msg("searching similar archived sales")
	return s.Search(ctx, params)
}

// SimilarPrices aggregates purchase prices over similar archived sales.
// The aggregate is cached under its own fingerprint since the underlying
// history search is not
func (s *Svc) SimilarPrices(ctx context.Context, in domain.SimilarSalesIn) (domain.SimilarPricesOut, error) {
	key := cache.PriceKey(paramsMap(in))
	if b, ok := s.cache.Get(ctx, key); ok {
		var out domain.SimilarPricesOut
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
	}

	res, err := s.Similar(ctx, in)
	if err != nil {
		return domain.SimilarPricesOut{}, err
	}

	out := aggregatePrices(res)
	if b, encErr := json.Marshal(out); encErr == nil {
		s.cache.Set(ctx, key, b, cache.TTLPrices)
	}
	return out, nil
}

func aggregatePrices(res auction.Result) domain.SimilarPricesOut {
	if res.Kind != auction.KindPage || res.Page == nil {
		return domain.SimilarPricesOut{}
	}

	var prices []int64
	for _, item := range res.Page.Data {
		if item.History == nil || item.History.PurchasePrice == nil {
			continue
		}
		if p := *item.History.PurchasePrice; p > 0 {
			prices = append(prices, p)
		}
	}
	if len(prices) == 0 {
		return domain.SimilarPricesOut{}
	}

	minP, maxP, sum := prices[0], prices[0], int64(0)
	for _, p := range prices {
		if p < minP {
			minP = p
		}
		if p > maxP {
			maxP = p
		}
		sum += p
	}
	avg := math.Round(float64(sum)/float64(len(prices))*100) / 100

	return domain.SimilarPricesOut{
		MinPrice:      &minP,
		AvgPrice:      &avg,
		MaxPrice:      &maxP,
		ProcessedLots: len(prices),
	}
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

func (s *Svc) cached(ctx context.Context, key string, fetch func() (auction.Result, error)) (auction.Result, error) {
	if b, ok := s.cache.Get(ctx, key); ok {
		if res, err := cache.DecodeResult(b); err == nil {
			return res, nil
		}
	}
	res, err := fetch()
	if err != nil {
		return auction.Result{}, err
	}
	if b, encErr := cache.EncodeResult(res); encErr == nil {
		s.cache.Set(ctx, key, b, cache.TTLHistory)
	}
	return res, nil
}

// auctionName renders the uppercased auction name for a sale row
func auctionName(code *int, base *string) *string {
	if code != nil {
		if site, err := auction.SiteFromCode(*code); err == nil {
			if name, err := site.Name(); err == nil {
				upper := strings.ToUpper(name)
				return &upper
			}
		}
	}
	if base != nil {
		upper := strings.ToUpper(*base)
		return &upper
	}
	return nil
}

func siteKey(site auction.Site) string {
	if site.IsNone() {
		return ""
	}
	return strconv.Itoa(site.Code())
}
