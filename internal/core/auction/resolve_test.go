package auction

import (
	"encoding/json"
	"fmt"
	"testing"

	perr "lotgate/internal/platform/errors"
	"lotgate/internal/platform/logger"
)

func testResolver() *Resolver {
	return NewResolver(logger.Named("test"), testClassifier())
}

func TestResolve_EmptyBody(t *testing.T) {
	t.Parallel()
	r := testResolver()

	for _, body := range [][]byte{nil, {}, []byte("null"), []byte("  null  ")} {
		_, err := r.Resolve(body, GetLotByIDAllTime)
		if !perr.IsCode(err, perr.ErrorCodeEmptyUpstream) {
			t.Fatalf("Resolve(%q) err = %v, want empty upstream", body, err)
		}
	}
}

func TestResolve_PaginatedDefaults(t *testing.T) {
	t.Parallel()
	r := testResolver()

	items := make([]string, 5)
	for i := range items {
		items[i] = fmt.Sprintf(`{"lot_id": %d, "form_get_type": "active"}`, i+1)
	}
	body := []byte(fmt.Sprintf(`{"size": 10, "page": 1, "data": [%s,%s,%s,%s,%s]}`,
		items[0], items[1], items[2], items[3], items[4]))

	res, err := r.Resolve(body, SearchCurrentLots)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if res.Kind != KindPage {
		t.Fatalf("Kind = %v, want page", res.Kind)
	}
	p := res.Page
	if p.Size != 10 || p.Page != 1 {
		t.Fatalf("size/page = %d/%d", p.Size, p.Page)
	}
	if p.Pages != 1000 {
		t.Fatalf("pages = %d, want default 1000", p.Pages)
	}
	if p.Count != 1_000_000 {
		t.Fatalf("count = %d, want default 1000000", p.Count)
	}
	if len(p.Data) != 5 {
		t.Fatalf("data len = %d", len(p.Data))
	}
	for i, item := range p.Data {
		if item.Lot == nil {
			t.Fatalf("item %d not resolved as lot", i)
		}
		if got := *item.Lot.LotID; got != int64(i+1) {
			t.Fatalf("item %d lot_id = %d, order not preserved", i, got)
		}
		if item.Lot.FormGetType != "active" {
			t.Fatalf("item %d form_get_type = %q", i, item.Lot.FormGetType)
		}
	}
}

func TestResolve_PaginatedEnvelopeOverrides(t *testing.T) {
	t.Parallel()
	r := testResolver()

	body := []byte(`{"size": 30, "page": 2, "pages": 7, "count": 199, "data": []}`)
	res, err := r.Resolve(body, SearchHistoryLots)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if res.Page.Pages != 7 || res.Page.Count != 199 {
		t.Fatalf("pages/count = %d/%d, want 7/199", res.Page.Pages, res.Page.Count)
	}
	if len(res.Page.Data) != 0 {
		t.Fatalf("data should be empty")
	}
}

func TestResolve_PaginatedMissingSizeFails(t *testing.T) {
	t.Parallel()
	r := testResolver()

	_, err := r.Resolve([]byte(`{"page": 1, "data": []}`), SearchCurrentLots)
	if !perr.IsCode(err, perr.ErrorCodeUpstreamValidation) {
		t.Fatalf("err = %v, want upstream validation", err)
	}
}

func TestResolve_PaginatedBadItemAbortsWholePage(t *testing.T) {
	t.Parallel()
	r := testResolver()

	body := []byte(`{"size": 10, "page": 1, "data": [{"lot_id": 1}, {"lot_id": "not-a-number"}]}`)
	_, err := r.Resolve(body, SearchCurrentLots)
	if !perr.IsCode(err, perr.ErrorCodeUpstreamValidation) {
		t.Fatalf("err = %v, want upstream validation for the whole page", err)
	}
}

func TestResolve_PaginatedHistorySearch(t *testing.T) {
	t.Parallel()
	r := testResolver()

	body := []byte(`{"size": 10, "page": 1, "data": [
		{"lot_id": 7, "sale_date": "2025-01-10T00:00:00Z", "purchase_price": 4200}
	]}`)
	res, err := r.Resolve(body, SearchHistoryLots)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	item := res.Page.Data[0]
	if item.History == nil {
		t.Fatalf("history search items should resolve as history lots")
	}
	if *item.History.PurchasePrice != 4200 {
		t.Fatalf("purchase_price = %d", *item.History.PurchasePrice)
	}
	if item.History.FormGetType != "history" {
		t.Fatalf("form_get_type = %q", item.History.FormGetType)
	}
}

func TestResolve_PaginatedContractWithoutEnvelopeFallsThrough(t *testing.T) {
	t.Parallel()
	r := testResolver()

	// no "data" key: not an envelope, resolve as a single default record
	res, err := r.Resolve([]byte(`{"lot_id": 9, "make": "BMW"}`), SearchCurrentLots)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if res.Kind != KindLot || *res.Lot.LotID != 9 {
		t.Fatalf("fall-through result = %+v", res)
	}
}

func TestResolve_SingletonListUnwraps(t *testing.T) {
	t.Parallel()
	r := testResolver()

	body := []byte(`[{"vin": "WBA12345678901234", "sale_date": "2025-02-01T00:00:00Z"}]`)
	res, err := r.Resolve(body, GetLotByVINAllTime)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if res.Kind != KindHistoryLot {
		t.Fatalf("singleton should unwrap to the bare record, got %v", res.Kind)
	}
	if *res.History.VIN != "WBA12345678901234" {
		t.Fatalf("vin = %q", *res.History.VIN)
	}
}

func TestResolve_TwoElementListStaysAList(t *testing.T) {
	t.Parallel()
	r := testResolver()

	body := []byte(`[
		{"vin": "A", "sale_date": "2025-02-01T00:00:00Z"},
		{"vin": "B", "auction_date": "2999-01-01T00:00:00Z"}
	]`)
	res, err := r.Resolve(body, GetLotByVINAllTime)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if res.Kind != KindList || len(res.Items) != 2 {
		t.Fatalf("result = %+v", res)
	}
	if res.Items[0].History == nil {
		t.Fatalf("first item should classify as history")
	}
	if res.Items[1].Lot == nil {
		t.Fatalf("second item (future auction) should classify as active")
	}
}

func TestResolve_LotIDObjectBypassesClassification(t *testing.T) {
	t.Parallel()
	r := testResolver()

	// lot_id-keyed objects are history-shaped even when the auction looks upcoming
	body := []byte(`{"lot_id": 5, "auction_date": "2999-01-01T00:00:00Z"}`)
	res, err := r.Resolve(body, GetLotByIDAllTime)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if res.Kind != KindHistoryLot {
		t.Fatalf("lot_id object should bypass classification, got %v", res.Kind)
	}
}

func TestResolve_FutureAuctionResolvesActive(t *testing.T) {
	t.Parallel()
	r := testResolver()

	body := []byte(`{"vin": "WBA12345678901234", "auction_date": "2025-06-15T13:00:00Z", "make": "BMW"}`)
	res, err := r.Resolve(body, GetLotByVINAllTime)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if res.Kind != KindLot {
		t.Fatalf("future auction should resolve active, got %v", res.Kind)
	}
	if res.History != nil {
		t.Fatalf("active result must not carry a history record")
	}
	// wire form has no sale_history field
	out, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var wire map[string]json.RawMessage
	if err := json.Unmarshal(out, &wire); err != nil {
		t.Fatalf("unmarshal wire: %v", err)
	}
	if _, ok := wire["sale_history"]; ok {
		t.Fatalf("active wire output should not contain sale_history")
	}
	if string(wire["form_get_type"]) != `"active"` {
		t.Fatalf("form_get_type = %s", wire["form_get_type"])
	}
}

func TestResolve_HistoryDataUnwrap(t *testing.T) {
	t.Parallel()
	r := testResolver()

	body := []byte(`{"data": {
		"lot_id": 3,
		"sale_date": "2025-03-01T00:00:00Z",
		"sale_history": [{"site": 1, "vin": "X", "purchase_price": 100}]
	}}`)
	res, err := r.Resolve(body, GetHistoryByID)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if res.Kind != KindHistoryLot {
		t.Fatalf("Kind = %v", res.Kind)
	}
	entry := res.History.SaleHistory[0]
	if entry.BaseSite == nil || *entry.BaseSite != "copart" {
		t.Fatalf("base_site should backfill from the site code, got %v", entry.BaseSite)
	}
}

func TestResolve_CurrentBid(t *testing.T) {
	t.Parallel()
	r := testResolver()

	res, err := r.Resolve([]byte(`{"pre_bid": 550}`), GetCurrentBid)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if res.Kind != KindCurrentBid || res.Bid.PreBid != 550 {
		t.Fatalf("result = %+v", res)
	}
}

func TestResolve_ShapeMismatchIsUniform(t *testing.T) {
	t.Parallel()
	r := testResolver()

	// parses as JSON but cannot validate into the bid shape
	_, err := r.Resolve([]byte(`{"pre_bid": "lots"}`), GetCurrentBid)
	if !perr.IsCode(err, perr.ErrorCodeUpstreamValidation) {
		t.Fatalf("err = %v, want upstream validation", err)
	}
}

func TestResolve_NaiveTimestampsDecodeAsUTC(t *testing.T) {
	t.Parallel()
	r := testResolver()

	res, err := r.Resolve([]byte(`{"sale_date": "2025-03-01T10:30:00"}`), GetHistoryByVIN)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	got := res.History.SaleDate
	if got == nil || got.UTC().Hour() != 10 {
		t.Fatalf("sale_date = %v", got)
	}
}
