package auction

import (
	"bytes"
	"encoding/json"

	perr "lotgate/internal/platform/errors"
	"lotgate/internal/platform/logger"
)

// envelope defaults applied when the upstream omits totals
const (
	defaultPages = 1000
	defaultCount = 1_000_000
)

// Resolver turns a raw upstream body into the typed result a contract declares,
// classifying individual items along the way. Pure transformation, no I/O
type Resolver struct {
	log *logger.Logger
	cls *Classifier
}

// NewResolver builds a Resolver sharing the given classifier.
// Nil arguments fall back to sane defaults
func NewResolver(log *logger.Logger, cls *Classifier) *Resolver {
	if log == nil {
		log = logger.Named("auction")
	}
	if cls == nil {
		cls = NewClassifier(log)
	}
	return &Resolver{log: log, cls: cls}
}

// Classifier exposes the classifier seam for callers that classify directly
func (r *Resolver) Classifier() *Classifier { return r.cls }

// Resolve validates body against the contract's declared shapes.
// Empty or null bodies fail with the empty-upstream code; any schema mismatch
// fails with the uniform upstream-validation code, never a raw decode error
func (r *Resolver) Resolve(body []byte, c *Contract) (Result, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return Result{}, perr.EmptyUpstreamf("empty upstream response for %s", c.Name)
	}

	if c.Paginated {
		if res, ok, err := r.resolvePage(body, c); ok {
			return res, err
		}
	}

	if c.UnwrapData {
		body = unwrapData(body)
	}

	if c.History {
		return r.resolveClassified(body, c)
	}

	return r.resolveDefault(body, c)
}

// resolvePage handles the {data, size, page, pages, count} envelope.
// ok=false means the body is not an envelope and resolution should continue
func (r *Resolver) resolvePage(body []byte, c *Contract) (Result, bool, error) {
	if len(body) == 0 || body[0] != '{' {
		return Result{}, false, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return Result{}, true, r.fail(c, "pagination envelope", body, err)
	}
	rawData, ok := fields["data"]
	if !ok {
		return Result{}, false, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(rawData, &elems); err != nil {
		return Result{}, true, r.fail(c, "pagination envelope", body, err)
	}

	page := Page{Pages: defaultPages, Count: defaultCount, Data: make([]Item, 0, len(elems))}
	if err := requireInt(fields, "size", &page.Size); err != nil {
		return Result{}, true, r.fail(c, "pagination envelope", body, err)
	}
	if err := requireInt(fields, "page", &page.Page); err != nil {
		return Result{}, true, r.fail(c, "pagination envelope", body, err)
	}
	if raw, ok := fields["pages"]; ok {
		if err := json.Unmarshal(raw, &page.Pages); err != nil {
			return Result{}, true, r.fail(c, "pagination envelope", body, err)
		}
	}
	if raw, ok := fields["count"]; ok {
		if err := json.Unmarshal(raw, &page.Count); err != nil {
			return Result{}, true, r.fail(c, "pagination envelope", body, err)
		}
	}

	// whole-page abort on any bad item; partial pages are never returned
	for _, elem := range elems {
		item, err := r.decodeItem(elem, c)
		if err != nil {
			return Result{}, true, r.fail(c, c.Default.String(), elem, err)
		}
		page.Data = append(page.Data, item)
	}

	return Result{Kind: KindPage, Page: &page}, true, nil
}

// resolveClassified handles contracts that declare a history shape:
// bare lists, identifier-keyed objects, and single classified records
func (r *Resolver) resolveClassified(body []byte, c *Contract) (Result, error) {
	if body[0] == '[' {
		var elems []json.RawMessage
		if err := json.Unmarshal(body, &elems); err != nil {
			return Result{}, r.fail(c, "list", body, err)
		}
		items := make([]Item, 0, len(elems))
		for _, elem := range elems {
			item, err := r.decodeItem(elem, c)
			if err != nil {
				return Result{}, r.fail(c, c.Default.String(), elem, err)
			}
			items = append(items, item)
		}
		// singleton lists unwrap to the bare record, an upstream quirk we preserve
		if len(items) == 1 {
			return itemResult(items[0]), nil
		}
		return Result{Kind: KindList, Items: items}, nil
	}

	var ri RawItem
	if err := json.Unmarshal(body, &ri); err != nil {
		return Result{}, r.fail(c, c.Default.String(), body, err)
	}

	// objects carrying the lot identifier are already history-shaped upstream
	if _, hasLotID := ri["lot_id"]; hasLotID {
		h, err := r.decodeHistory(body)
		if err != nil {
			return Result{}, r.fail(c, ShapeHistoryLot.String(), body, err)
		}
		return Result{Kind: KindHistoryLot, History: h}, nil
	}

	if len(ri) > 0 && r.cls.IsHistory(ri) {
		h, err := r.decodeHistory(body)
		if err != nil {
			return Result{}, r.fail(c, ShapeHistoryLot.String(), body, err)
		}
		return Result{Kind: KindHistoryLot, History: h}, nil
	}

	return r.resolveDefault(body, c)
}

// resolveDefault validates the whole body against the contract's default shape
func (r *Resolver) resolveDefault(body []byte, c *Contract) (Result, error) {
	switch c.Default {
	case ShapeHistoryLot:
		h, err := r.decodeHistory(body)
		if err != nil {
			return Result{}, r.fail(c, ShapeHistoryLot.String(), body, err)
		}
		return Result{Kind: KindHistoryLot, History: h}, nil

	case ShapeCurrentBid:
		var bid CurrentBid
		if err := json.Unmarshal(body, &bid); err != nil {
			return Result{}, r.fail(c, ShapeCurrentBid.String(), body, err)
		}
		return Result{Kind: KindCurrentBid, Bid: &bid}, nil

	default:
		l, err := decodeLot(body)
		if err != nil {
			return Result{}, r.fail(c, ShapeLot.String(), body, err)
		}
		return Result{Kind: KindLot, Lot: l}, nil
	}
}

// decodeItem validates one list element, classifying when the contract allows it
func (r *Resolver) decodeItem(raw json.RawMessage, c *Contract) (Item, error) {
	history := c.Default == ShapeHistoryLot
	if c.History {
		var ri RawItem
		if err := json.Unmarshal(raw, &ri); err != nil {
			return Item{}, err
		}
		history = r.cls.IsHistory(ri)
	}
	if history {
		h, err := r.decodeHistory(raw)
		if err != nil {
			return Item{}, err
		}
		return Item{History: h}, nil
	}
	l, err := decodeLot(raw)
	if err != nil {
		return Item{}, err
	}
	return Item{Lot: l}, nil
}

func decodeLot(raw []byte) (*Lot, error) {
	var l Lot
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, err
	}
	l.FormGetType = formTypeActive
	return &l, nil
}

func (r *Resolver) decodeHistory(raw []byte) (*HistoryLot, error) {
	var h HistoryLot
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, err
	}
	h.FormGetType = formTypeHistory
	for i := range h.SaleHistory {
		h.SaleHistory[i].fillBaseSite()
	}
	return &h, nil
}

// unwrapData strips a non-paginated {"data": ...} envelope; anything else passes through
func unwrapData(body []byte) []byte {
	if len(body) == 0 || body[0] != '{' {
		return body
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return body
	}
	if inner, ok := fields["data"]; ok {
		return bytes.TrimSpace(inner)
	}
	return body
}

func requireInt(fields map[string]json.RawMessage, key string, dst *int) error {
	raw, ok := fields[key]
	if !ok {
		return perr.Newf(perr.ErrorCodeUpstreamValidation, "missing %q in pagination envelope", key)
	}
	return json.Unmarshal(raw, dst)
}

func itemResult(it Item) Result {
	if it.History != nil {
		return Result{Kind: KindHistoryLot, History: it.History}
	}
	return Result{Kind: KindLot, Lot: it.Lot}
}

// fail logs the offending body once and returns the uniform validation error
func (r *Resolver) fail(c *Contract, shape string, body []byte, err error) error {
	const maxLogged = 2048
	snippet := body
	if len(snippet) > maxLogged {
		snippet = snippet[:maxLogged]
	}
	r.log.Error().
		Str("contract", c.Name).
		Str("shape", shape).
		Bytes("body", snippet).
		Err(err).
		Msg("upstream payload failed validation")
	return perr.Wrapf(err, perr.ErrorCodeUpstreamValidation,
		"upstream %s payload failed %s validation", c.Name, shape)
}
