package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"lotgate/internal/adapters/cache"
	"lotgate/internal/core/auction"
	perr "lotgate/internal/platform/errors"
	"lotgate/internal/platform/logger"
	"lotgate/internal/services/api/history/domain"
)

var testNow = time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)

type upstreamCall struct {
	contract *auction.Contract
	params   any
}

type fakeFetcher struct {
	mu      sync.Mutex
	calls   []upstreamCall
	replies []func() (auction.Result, error)
}

func (f *fakeFetcher) Do(
	_ context.Context, c *auction.Contract, params any, _ map[string]string,
) (auction.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, upstreamCall{contract: c, params: params})
	if len(f.replies) == 0 {
		return auction.Result{}, perr.Unavailablef("fakeFetcher has no scripted reply")
	}
	next := f.replies[0]
	f.replies = f.replies[1:]
	return next()
}

func reply(res auction.Result) func() (auction.Result, error) {
	return func() (auction.Result, error) { return res, nil }
}

func newSvc(f *fakeFetcher) *Svc {
	return New(f, cache.Nop{}, nil, logger.Named("test"), WithNow(func() time.Time { return testNow }))
}

type memCache struct {
	mu sync.Mutex
	m  map[string][]byte
}

func newMemCache() *memCache { return &memCache{m: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.m[key]
	return b, ok
}

func (c *memCache) Set(_ context.Context, key string, payload []byte, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = payload
}

func (c *memCache) Delete(_ context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.m, k)
	}
}

func (c *memCache) DeletePattern(context.Context, string) {}

func ptr[T any](v T) *T { return &v }

func historyResult(entries ...auction.SaleHistoryEntry) auction.Result {
	return auction.Result{
		Kind:    auction.KindHistoryLot,
		History: &auction.HistoryLot{SaleHistory: entries},
	}
}

func TestByVIN_RoutesToHistoryContract(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{replies: []func() (auction.Result, error){reply(historyResult())}}
	s := newSvc(f)

	if _, err := s.ByVIN(context.Background(), auction.SiteCopart, " 1hgcm82633a004352 "); err != nil {
		t.Fatalf("ByVIN returned error: %v", err)
	}
	if f.calls[0].contract != auction.GetHistoryByVIN {
		t.Fatalf("contract = %s want %s", f.calls[0].contract.Name, auction.GetHistoryByVIN.Name)
	}
	q := f.calls[0].params.(auction.LotByVINQuery)
	if q.VIN != "1HGCM82633A004352" || q.Site != auction.SiteCopart.Code() {
		t.Fatalf("unexpected params: %#v", q)
	}

	if _, err := s.ByVIN(context.Background(), auction.SiteCopart, "  "); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("blank vin: want InvalidArgument, got %v", err)
	}
}

func TestByLotID_Validates(t *testing.T) {
	t.Parallel()

	s := newSvc(&fakeFetcher{})
	if _, err := s.ByLotID(context.Background(), auction.SiteCopart, 0); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want InvalidArgument, got %v", err)
	}
}

func TestSales_FlattensHistoryRows(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{replies: []func() (auction.Result, error){reply(historyResult(
		auction.SaleHistoryEntry{
			LotID:         ptr(int64(41858721)),
			Site:          ptr(auction.SiteCopart.Code()),
			VIN:           ptr("1HGCM82633A004352"),
			SaleStatus:    ptr("Sold"),
			PurchasePrice: ptr(int64(7200)),
			IsBuyNow:      ptr(false),
			BuyerState:    ptr("TX"),
			BuyerCountry:  ptr("USA"),
		},
		auction.SaleHistoryEntry{
			BaseSite:   ptr("iaai"),
			SaleStatus: ptr("Not sold"),
		},
	))}}
	s := newSvc(f)

	out, err := s.Sales(context.Background(), auction.SiteCopart, 41858721)
	if err != nil {
		t.Fatalf("Sales returned error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("rows = %d want 2", len(out))
	}

	first := out[0]
	if first.Auction == nil || *first.Auction != "COPART" {
		t.Fatalf("auction = %v want COPART", first.Auction)
	}
	if first.FinalBid == nil || *first.FinalBid != 7200 {
		t.Fatalf("final_bid = %v want 7200", first.FinalBid)
	}
	if first.Status == nil || *first.Status != "Sold" {
		t.Fatalf("status = %v want Sold", first.Status)
	}
	if first.BuyerState == nil || *first.BuyerState != "TX" || first.BuyerCountry == nil || *first.BuyerCountry != "USA" {
		t.Fatalf("buyer fields not mapped: %+v", first)
	}

	// site code missing: the symbolic base_site carries the name
	second := out[1]
	if second.Auction == nil || *second.Auction != "IAAI" {
		t.Fatalf("auction = %v want IAAI", second.Auction)
	}
}

func TestSales_EmptyWhenNoHistoryRecord(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{replies: []func() (auction.Result, error){
		reply(auction.Result{Kind: auction.KindList}),
	}}
	s := newSvc(f)

	out, err := s.Sales(context.Background(), auction.SiteCopart, 5)
	if err != nil {
		t.Fatalf("Sales returned error: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", out)
	}
}

func TestSimilar_BuildsSearchWindow(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{replies: []func() (auction.Result, error){
		reply(auction.Result{Kind: auction.KindPage, Page: &auction.Page{}}),
	}}
	s := newSvc(f)

	in := domain.SimilarSalesIn{Site: "copart", Make: "Toyota", Model: "Camry", Year: 2018}
	if _, err := s.Similar(context.Background(), in); err != nil {
		t.Fatalf("Similar returned error: %v", err)
	}

	sent := f.calls[0].params.(auction.HistorySearchParams)
	if f.calls[0].contract != auction.SearchHistoryLots {
		t.Fatalf("contract = %s", f.calls[0].contract.Name)
	}
	if sent.YearFrom != 2013 || sent.YearTo != 2023 {
		t.Fatalf("year window = %d..%d want 2013..2023", sent.YearFrom, sent.YearTo)
	}
	if sent.VehicleType != "Automobile" {
		t.Fatalf("vehicle_type = %q want the Automobile default", sent.VehicleType)
	}
	if sent.SiteCode != auction.SiteCopart.Code() || sent.Make != "Toyota" || sent.Model != "Camry" {
		t.Fatalf("unexpected search params: %+v", sent)
	}
	if sent.AuctionDateFrom != "2025-08-18" {
		t.Fatalf("auction_date_from = %q", sent.AuctionDateFrom)
	}
}

func TestSimilar_KeepsExplicitVehicleType(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{replies: []func() (auction.Result, error){
		reply(auction.Result{Kind: auction.KindPage, Page: &auction.Page{}}),
	}}
	s := newSvc(f)

	in := domain.SimilarSalesIn{Site: "iaai", Make: "Harley-Davidson", VehicleType: "Motorcycle"}
	if _, err := s.Similar(context.Background(), in); err != nil {
		t.Fatalf("Similar returned error: %v", err)
	}
	sent := f.calls[0].params.(auction.HistorySearchParams)
	if sent.VehicleType != "Motorcycle" {
		t.Fatalf("vehicle_type = %q want Motorcycle", sent.VehicleType)
	}
	if sent.YearFrom != 0 || sent.YearTo != 0 {
		t.Fatalf("no year given, window must stay open: %d..%d", sent.YearFrom, sent.YearTo)
	}
}

func TestSimilarPrices_Aggregates(t *testing.T) {
	t.Parallel()

	page := &auction.Page{Data: []auction.Item{
		{History: &auction.HistoryLot{PurchasePrice: ptr(int64(4000))}},
		{History: &auction.HistoryLot{PurchasePrice: ptr(int64(9000))}},
		{History: &auction.HistoryLot{PurchasePrice: ptr(int64(0))}},  // unsold, excluded
		{History: &auction.HistoryLot{}},                              // no price, excluded
		{Lot: &auction.Lot{}},                                         // live row, excluded
		{History: &auction.HistoryLot{PurchasePrice: ptr(int64(5000))}},
	}}
	f := &fakeFetcher{replies: []func() (auction.Result, error){
		reply(auction.Result{Kind: auction.KindPage, Page: page}),
	}}
	s := newSvc(f)

	out, err := s.SimilarPrices(context.Background(), domain.SimilarSalesIn{Site: "copart", Make: "Toyota"})
	if err != nil {
		t.Fatalf("SimilarPrices returned error: %v", err)
	}
	if out.ProcessedLots != 3 {
		t.Fatalf("processed_lots = %d want 3", out.ProcessedLots)
	}
	if out.MinPrice == nil || *out.MinPrice != 4000 {
		t.Fatalf("min_price = %v want 4000", out.MinPrice)
	}
	if out.MaxPrice == nil || *out.MaxPrice != 9000 {
		t.Fatalf("max_price = %v want 9000", out.MaxPrice)
	}
	if out.AvgPrice == nil || *out.AvgPrice != 6000 {
		t.Fatalf("avg_price = %v want 6000", out.AvgPrice)
	}
}

func TestSimilarPrices_CachesAggregate(t *testing.T) {
	t.Parallel()

	page := &auction.Page{Data: []auction.Item{
		{History: &auction.HistoryLot{PurchasePrice: ptr(int64(3000))}},
	}}
	f := &fakeFetcher{replies: []func() (auction.Result, error){
		reply(auction.Result{Kind: auction.KindPage, Page: page}),
		reply(auction.Result{Kind: auction.KindPage, Page: &auction.Page{}}),
	}}
	s := New(f, newMemCache(), nil, logger.Named("test"), WithNow(func() time.Time { return testNow }))

	in := domain.SimilarSalesIn{Site: "copart", Make: "Toyota", Year: 2018}
	if _, err := s.SimilarPrices(context.Background(), in); err != nil {
		t.Fatalf("first SimilarPrices: %v", err)
	}
	out, err := s.SimilarPrices(context.Background(), in)
	if err != nil {
		t.Fatalf("second SimilarPrices: %v", err)
	}
	if len(f.calls) != 1 {
		t.Fatalf("identical aggregate hit upstream twice, calls=%d", len(f.calls))
	}
	if out.ProcessedLots != 1 || out.MinPrice == nil || *out.MinPrice != 3000 {
		t.Fatalf("cached aggregate mismatch: %+v", out)
	}

	// a different vehicle fingerprints to a different key
	if _, err := s.SimilarPrices(context.Background(), domain.SimilarSalesIn{Site: "copart", Make: "Honda"}); err != nil {
		t.Fatalf("third SimilarPrices: %v", err)
	}
	if len(f.calls) != 2 {
		t.Fatalf("distinct aggregate should miss the cache, calls=%d", len(f.calls))
	}
}

func TestSimilarPrices_NoSales(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{replies: []func() (auction.Result, error){
		reply(auction.Result{Kind: auction.KindPage, Page: &auction.Page{}}),
	}}
	s := newSvc(f)

	out, err := s.SimilarPrices(context.Background(), domain.SimilarSalesIn{Site: "copart", Make: "Yugo"})
	if err != nil {
		t.Fatalf("SimilarPrices returned error: %v", err)
	}
	if out.ProcessedLots != 0 || out.MinPrice != nil || out.AvgPrice != nil || out.MaxPrice != nil {
		t.Fatalf("want zero aggregate, got %+v", out)
	}
}
