package cache

import (
	"encoding/json"

	"lotgate/internal/core/auction"
	perr "lotgate/internal/platform/errors"
)

// cachedResult stores a resolved result with its kind tag so the variant
// can be rebuilt on a cache hit; the bare wire form is not self-describing
type cachedResult struct {
	Kind    auction.ResultKind `json:"kind"`
	Payload json.RawMessage    `json:"payload"`
}

// EncodeResult serializes a resolved result for caching
func EncodeResult(res auction.Result) ([]byte, error) {
	payload, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	return json.Marshal(cachedResult{Kind: res.Kind, Payload: payload})
}

// DecodeResult rebuilds a cached result
func DecodeResult(b []byte) (auction.Result, error) {
	var c cachedResult
	if err := json.Unmarshal(b, &c); err != nil {
		return auction.Result{}, perr.Wrap(err, perr.ErrorCodeJSON, "decode cached result")
	}

	res := auction.Result{Kind: c.Kind}
	var err error
	switch c.Kind {
	case auction.KindLot:
		res.Lot = &auction.Lot{}
		err = json.Unmarshal(c.Payload, res.Lot)
	case auction.KindHistoryLot:
		res.History = &auction.HistoryLot{}
		err = json.Unmarshal(c.Payload, res.History)
	case auction.KindCurrentBid:
		res.Bid = &auction.CurrentBid{}
		err = json.Unmarshal(c.Payload, res.Bid)
	case auction.KindList:
		err = json.Unmarshal(c.Payload, &res.Items)
	case auction.KindPage:
		res.Page = &auction.Page{}
		err = json.Unmarshal(c.Payload, res.Page)
	default:
		return auction.Result{}, perr.JSONErrf("cached result has unknown kind %d", c.Kind)
	}
	if err != nil {
		return auction.Result{}, perr.Wrap(err, perr.ErrorCodeJSON, "decode cached result payload")
	}
	return res, nil
}
