package auction

import (
	"encoding/json"
	"strings"
	"time"
)

// RawItem is one untyped upstream record before classification
// any field may be missing; it is the classifier's input
type RawItem map[string]any

// upstream timestamp layouts, most specific first
// a trailing Z is RFC3339; naive timestamps are taken as UTC
var upstreamLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses an upstream timestamp string
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range upstreamLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Time is a tolerant timestamp wrapper for upstream payloads
type Time struct{ time.Time }

// UnmarshalJSON accepts null, RFC3339 and naive timestamps
func (t *Time) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalJSON renders RFC3339 or null for the zero value
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// Lot is the current/active vehicle shape
type Lot struct {
	LotID             *int64   `json:"lot_id,omitempty"`
	Site              *int     `json:"site,omitempty"`
	BaseSite          *string  `json:"base_site,omitempty"`
	SalvageID         *int64   `json:"salvage_id,omitempty"`
	Odometer          *int64   `json:"odometer,omitempty"`
	PriceNew          *int64   `json:"price_new,omitempty"`
	PriceFuture       *int64   `json:"price_future,omitempty"`
	PriceReserve      *int64   `json:"price_reserve,omitempty"`
	CurrentBid        *int64   `json:"current_bid,omitempty"`
	AuctionDate       *Time    `json:"auction_date,omitempty"`
	CostPriced        *int64   `json:"cost_priced,omitempty"`
	CostRepair        *int64   `json:"cost_repair,omitempty"`
	Year              *int     `json:"year,omitempty"`
	Cylinders         *int     `json:"cylinders,omitempty"`
	State             *string  `json:"state,omitempty"`
	VehicleType       *string  `json:"vehicle_type,omitempty"`
	AuctionType       *string  `json:"auction_type,omitempty"`
	Make              *string  `json:"make,omitempty"`
	Model             *string  `json:"model,omitempty"`
	Series            *string  `json:"series,omitempty"`
	DamagePrimary     *string  `json:"damage_pr,omitempty"`
	DamageSecondary   *string  `json:"damage_sec,omitempty"`
	Keys              *string  `json:"keys,omitempty"`
	OdoBrand          *string  `json:"odobrand,omitempty"`
	Fuel              *string  `json:"fuel,omitempty"`
	Drive             *string  `json:"drive,omitempty"`
	Transmission      *string  `json:"transmission,omitempty"`
	Color             *string  `json:"color,omitempty"`
	Status            *string  `json:"status,omitempty"`
	Title             *string  `json:"title,omitempty"`
	VIN               *string  `json:"vin,omitempty"`
	Engine            *string  `json:"engine,omitempty"`
	EngineSize        *float64 `json:"engine_size,omitempty"`
	Location          *string  `json:"location,omitempty"`
	LocationOld       *string  `json:"location_old,omitempty"`
	LocationID        *int64   `json:"location_id,omitempty"`
	Country           *string  `json:"country,omitempty"`
	Document          *string  `json:"document,omitempty"`
	DocumentOld       *string  `json:"document_old,omitempty"`
	Currency          *string  `json:"currency,omitempty"`
	Seller            *string  `json:"seller,omitempty"`
	IsBuyNow          *bool    `json:"is_buynow,omitempty"`
	IAAI360           *string  `json:"iaai_360,omitempty"`
	CopartExterior360 []string `json:"copart_exterior_360,omitempty"`
	CopartInterior360 *string  `json:"copart_interior_360,omitempty"`
	Video             *string  `json:"video,omitempty"`
	LinkImgHD         []string `json:"link_img_hd,omitempty"`
	LinkImgSmall      []string `json:"link_img_small,omitempty"`
	IsOffsite         *bool    `json:"is_offsite,omitempty"`
	LocationOffsite   *string  `json:"location_offsite,omitempty"`
	Link              *string  `json:"link,omitempty"`
	BodyType          *string  `json:"body_type,omitempty"`
	SellerType        *string  `json:"seller_type,omitempty"`
	VehicleScore      *string  `json:"vehicle_score,omitempty"`

	// FormGetType tags the classification outcome on the way out
	FormGetType string `json:"form_get_type"`
}

// SaleHistoryEntry is one completed-sale row attached to a history lot
type SaleHistoryEntry struct {
	LotID         *int64  `json:"lot_id,omitempty"`
	Site          *int    `json:"site,omitempty"`
	BaseSite      *string `json:"base_site,omitempty"`
	VIN           *string `json:"vin,omitempty"`
	SaleStatus    *string `json:"sale_status,omitempty"`
	SaleDate      *Time   `json:"sale_date,omitempty"`
	PurchasePrice *int64  `json:"purchase_price,omitempty"`
	IsBuyNow      *bool   `json:"is_buynow,omitempty"`
	BuyerState    *string `json:"buyer_state,omitempty"`
	BuyerCountry  *string `json:"buyer_country,omitempty"`
	VehicleType   *string `json:"vehicle_type,omitempty"`
}

// fillBaseSite backfills the symbolic site name when upstream sent only the code
func (e *SaleHistoryEntry) fillBaseSite() {
	if e.BaseSite != nil && *e.BaseSite != "" {
		return
	}
	if e.Site == nil {
		return
	}
	site, err := SiteFromCode(*e.Site)
	if err != nil {
		return
	}
	if name, err := site.Name(); err == nil {
		e.BaseSite = &name
	}
}

// HistoryLot is the completed-sale shape: a Lot plus its sale outcome
type HistoryLot struct {
	Lot

	SaleHistory   []SaleHistoryEntry `json:"sale_history,omitempty"`
	SaleDate      *Time              `json:"sale_date,omitempty"`
	SaleStatus    *string            `json:"sale_status,omitempty"`
	PurchasePrice *int64             `json:"purchase_price,omitempty"`
}

// CurrentBid is the live pre-bid amount for a lot
type CurrentBid struct {
	PreBid int64 `json:"pre_bid"`
}

// Item is one classified list member: exactly one side is set
type Item struct {
	Lot     *Lot        `json:"lot,omitempty"`
	History *HistoryLot `json:"history,omitempty"`
}

// IsHistory reports which side of the union is populated
func (i Item) IsHistory() bool { return i.History != nil }

// MarshalJSON flattens the populated side so wire output matches upstream rows
func (i Item) MarshalJSON() ([]byte, error) {
	if i.History != nil {
		return json.Marshal(i.History)
	}
	return json.Marshal(i.Lot)
}

// UnmarshalJSON rebuilds the union from a flattened row using the
// form_get_type tag stamped at resolution time
func (i *Item) UnmarshalJSON(b []byte) error {
	var probe struct {
		FormGetType string `json:"form_get_type"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return err
	}
	if probe.FormGetType == formTypeHistory {
		h := &HistoryLot{}
		if err := json.Unmarshal(b, h); err != nil {
			return err
		}
		*i = Item{History: h}
		return nil
	}
	l := &Lot{}
	if err := json.Unmarshal(b, l); err != nil {
		return err
	}
	*i = Item{Lot: l}
	return nil
}

// Page is the pagination envelope around classified items
type Page struct {
	Size  int    `json:"size"`
	Page  int    `json:"page"`
	Pages int    `json:"pages"`
	Count int64  `json:"count"`
	Data  []Item `json:"data"`
}

// ResultKind tags the shape a resolve produced
type ResultKind uint8

const (
	// KindLot is a single active lot
	KindLot ResultKind = iota + 1

	// KindHistoryLot is a single completed-sale lot
	KindHistoryLot

	// KindCurrentBid is a live bid amount
	KindCurrentBid

	// KindList is a heterogeneous list of classified items
	KindList

	// KindPage is a pagination envelope
	KindPage
)

// String names the kind for logs
func (k ResultKind) String() string {
	switch k {
	case KindLot:
		return "lot"
	case KindHistoryLot:
		return "history_lot"
	case KindCurrentBid:
		return "current_bid"
	case KindList:
		return "list"
	case KindPage:
		return "page"
	default:
		return "unknown"
	}
}

// Result is the tagged union a resolve returns
// exactly the field matching Kind is populated; callers switch on Kind
type Result struct {
	Kind ResultKind

	Lot     *Lot
	History *HistoryLot
	Bid     *CurrentBid
	Items   []Item
	Page    *Page
}

// MarshalJSON renders the populated variant bare, matching the upstream wire shapes
func (r Result) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case KindLot:
		return json.Marshal(r.Lot)
	case KindHistoryLot:
		return json.Marshal(r.History)
	case KindCurrentBid:
		return json.Marshal(r.Bid)
	case KindList:
		return json.Marshal(r.Items)
	case KindPage:
		return json.Marshal(r.Page)
	default:
		return []byte("null"), nil
	}
}
