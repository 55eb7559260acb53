package auction

import "net/http"

// Shape names a typed output schema a contract can resolve into
type Shape uint8

const (
	// ShapeLot validates against the active lot schema
	ShapeLot Shape = iota + 1

	// ShapeHistoryLot validates against the completed-sale schema
	ShapeHistoryLot

	// ShapeCurrentBid validates against the live bid schema
	ShapeCurrentBid
)

// String names the shape for diagnostics
func (s Shape) String() string {
	switch s {
	case ShapeLot:
		return "lot"
	case ShapeHistoryLot:
		return "history_lot"
	case ShapeCurrentBid:
		return "current_bid"
	default:
		return "unknown"
	}
}

// Contract is the immutable descriptor for one logical upstream operation.
// Values are built once at init and only ever passed by reference;
// call sites pair input and output shapes by contract identity, not by string key
type Contract struct {
	// Name labels the operation in logs and cache keys
	Name string

	// Method is the upstream HTTP method
	Method string

	// Path is the upstream path template; {placeholders} are
	// substituted from request fields by the executor
	Path string

	// Default is the output schema when an item is not history
	Default Shape

	// History enables per-item classification against the
	// completed-sale schema; false means Default applies unconditionally
	History bool

	// Paginated marks responses wrapped in the {data, size, page, pages, count} envelope
	Paginated bool

	// UnwrapData unwraps a non-paginated {"data": ...} envelope before resolution
	UnwrapData bool
}

// The contract registry. One package-level value per logical operation,
// mirroring the upstream provider's endpoint set
var (
	// GetLotByIDAllTime finds a lot by id across current and archived auctions
	GetLotByIDAllTime = &Contract{
		Name:    "lot-by-id-alltime",
		Method:  http.MethodGet,
		Path:    "cars/lot-id/all/",
		Default: ShapeLot,
		History: true,
	}

	// GetLotByVINAllTime finds a lot by VIN across current and archived auctions
	GetLotByVINAllTime = &Contract{
		Name:    "lot-by-vin-alltime",
		Method:  http.MethodGet,
		Path:    "cars/vin/all/",
		Default: ShapeLot,
		History: true,
	}

	// GetLotByIDCurrent finds a lot by id among live auctions only
	GetLotByIDCurrent = &Contract{
		Name:    "lot-by-id-current",
		Method:  http.MethodGet,
		Path:    "cars/{lot_id}/",
		Default: ShapeLot,
	}

	// GetCurrentBid fetches the live pre-bid for a lot
	GetCurrentBid = &Contract{
		Name:    "current-bid",
		Method:  http.MethodGet,
		Path:    "cars/current-bid/",
		Default: ShapeCurrentBid,
	}

	// GetHistoryByID fetches the completed-sale record for a lot id
	GetHistoryByID = &Contract{
		Name:       "history-by-id",
		Method:     http.MethodGet,
		Path:       "sale-histories/lot-id/",
		Default:    ShapeHistoryLot,
		UnwrapData: true,
	}

	// GetHistoryByVIN fetches the completed-sale record for a VIN
	GetHistoryByVIN = &Contract{
		Name:       "history-by-vin",
		Method:     http.MethodGet,
		Path:       "sale-histories/vin/",
		Default:    ShapeHistoryLot,
		UnwrapData: true,
	}

	// SearchCurrentLots lists live auctions, paginated
	SearchCurrentLots = &Contract{
		Name:      "search-current",
		Method:    http.MethodGet,
		Path:      "cars/",
		Default:   ShapeLot,
		Paginated: true,
	}

	// SearchHistoryLots lists archived sales, paginated
	SearchHistoryLots = &Contract{
		Name:      "search-history",
		Method:    http.MethodGet,
		Path:      "history-cars/",
		Default:   ShapeHistoryLot,
		Paginated: true,
	}

	// AveragePrice reuses the archived-sale search to feed the price aggregate
	AveragePrice = &Contract{
		Name:      "average-price",
		Method:    http.MethodGet,
		Path:      "history-cars/",
		Default:   ShapeHistoryLot,
		Paginated: true,
	}
)
