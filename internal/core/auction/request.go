package auction

import "time"

// Search defaults mirror the upstream provider's documented behavior
const (
	defaultSort      = "auction_date"
	defaultDirection = "DESC"
	defaultPageNum   = 1
	defaultPageSize  = 10
)

// LotByIDQuery identifies a lot by its numeric id
type LotByIDQuery struct {
	Site  int   `json:"site,omitempty" url:"site,omitempty"`
	LotID int64 `json:"lot_id" url:"lot_id" validate:"required,gt=0"`
}

// LotByVINQuery identifies a lot by VIN
type LotByVINQuery struct {
	Site int    `json:"site,omitempty" url:"site,omitempty"`
	VIN  string `json:"vin" url:"vin" validate:"required,min=11,max=17,alphanum"`
}

// SearchParams are the common search fields shared by current and history
// lot searches. Site arrives as a name or code string and is resolved to
// SiteCode before the request goes upstream
type SearchParams struct {
	Site     string `json:"site,omitempty" url:"-" example:"copart"`
	SiteCode int    `json:"-" url:"site,omitempty"`

	Make        string `json:"make,omitempty" url:"make,omitempty" example:"toyota"`
	Model       string `json:"model,omitempty" url:"model,omitempty" example:"camry"`
	VehicleType string `json:"vehicle_type,omitempty" url:"vehicle_type,omitempty" example:"automobile"`

	YearFrom int `json:"year_from,omitempty" url:"year_from,omitempty" validate:"omitempty,min=1900,max=2030"`
	YearTo   int `json:"year_to,omitempty" url:"year_to,omitempty" validate:"omitempty,min=1900,max=2030"`

	AuctionDateFrom string `json:"auction_date_from,omitempty" url:"auction_date_from,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2025-08-18"`
	AuctionDateTo   string `json:"auction_date_to,omitempty" url:"auction_date_to,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2025-08-18"`

	Transmission []string `json:"transmission,omitempty" url:"transmission,omitempty"`
	Status       []string `json:"status,omitempty" url:"status,omitempty"`
	Drive        []string `json:"drive,omitempty" url:"drive,omitempty"`
	DamagePr     []string `json:"damage_pr,omitempty" url:"damage_pr,omitempty"`
	Document     []string `json:"document,omitempty" url:"document,omitempty"`

	OdometerMin *int `json:"odometer_min,omitempty" url:"odometer_min,omitempty" validate:"omitempty,min=0"`
	OdometerMax *int `json:"odometer_max,omitempty" url:"odometer_max,omitempty" validate:"omitempty,min=0"`

	SellerType string `json:"seller_type,omitempty" url:"seller_type,omitempty" validate:"omitempty,oneof=insurance dealer"`
	Sort       string `json:"sort,omitempty" url:"sort,omitempty" validate:"omitempty,oneof=auction_date created_at"`
	Direction  string `json:"direction,omitempty" url:"direction,omitempty" validate:"omitempty,oneof=ASC DESC"`

	Page int `json:"page,omitempty" url:"page,omitempty" validate:"omitempty,min=1"`
	Size int `json:"size,omitempty" url:"size,omitempty" validate:"omitempty,min=1,max=30"`
}

// Normalize resolves the site field and applies the search defaults.
// auction_date_from defaults to the current date so searches look forward
func (p *SearchParams) Normalize(now time.Time) error {
	site, err := ParseSite(p.Site)
	if err != nil {
		return err
	}
	p.SiteCode = site.Code()

	if p.AuctionDateFrom == "" {
		p.AuctionDateFrom = now.Format("2006-01-02")
	}
	if p.Sort == "" {
		p.Sort = defaultSort
	}
	if p.Direction == "" {
		p.Direction = defaultDirection
	}
	if p.Page == 0 {
		p.Page = defaultPageNum
	}
	if p.Size == 0 {
		p.Size = defaultPageSize
	}
	return nil
}

// CurrentSearchParams extends SearchParams with live-auction-only fields
type CurrentSearchParams struct {
	SearchParams

	BuyNow *bool    `json:"buy_now,omitempty" url:"buy_now,omitempty"`
	Fuel   []string `json:"fuel,omitempty" url:"fuel,omitempty"`
}

// HistorySearchParams searches completed sales
type HistorySearchParams struct {
	SearchParams
}
