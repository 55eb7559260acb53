// Package domain holds DTOs for history http and service contracts
package domain

import "lotgate/internal/core/auction"

// defaultSimilarVehicleType is assumed when a similar-sales request
// does not narrow the vehicle type
const defaultSimilarVehicleType = "Automobile"

// similarYearSpread widens a single year into a from/to window
const similarYearSpread = 5

// SaleHistoryOut is one flattened completed-sale row
type SaleHistoryOut struct {
	Auction      *string       `json:"auction"`
	BuyerState   *string       `json:"buyer_state"`
	BuyerCountry *string       `json:"buyer_country"`
	Date         *auction.Time `json:"date"`
	FinalBid     *int64        `json:"final_bid"`
	LotID        *int64        `json:"lot_id"`
	Status       *string       `json:"status"`
	IsBuyNow     *bool         `json:"is_buy_now"`
	VIN          *string       `json:"vin"`
}

// SimilarSalesIn narrows archived sales to vehicles like the given one
type SimilarSalesIn struct {
	Site        string `json:"site" validate:"required" example:"copart"`
	Make        string `json:"make" validate:"required" example:"toyota"`
	Model       string `json:"model,omitempty" example:"camry"`
	Year        int    `json:"year,omitempty" validate:"omitempty,min=1900,max=2030"`
	VehicleType string `json:"vehicle_type,omitempty" example:"Automobile"`
}

// SearchParams builds the archived-sales search window for this request
func (in SimilarSalesIn) SearchParams() auction.HistorySearchParams {
	var p auction.HistorySearchParams
	p.Site = in.Site
	p.Make = in.Make
	p.Model = in.Model
	p.VehicleType = in.VehicleType
	if p.VehicleType == "" {
		p.VehicleType = defaultSimilarVehicleType
	}
	if in.Year > 0 {
		p.YearFrom = in.Year - similarYearSpread
		p.YearTo = in.Year + similarYearSpread
	}
	return p
}

// SimilarPricesOut aggregates purchase prices over similar archived sales
type SimilarPricesOut struct {
	MinPrice      *int64   `json:"min_price"`
	AvgPrice      *float64 `json:"avg_price"`
	MaxPrice      *int64   `json:"max_price"`
	ProcessedLots int      `json:"processed_lots"`
}
