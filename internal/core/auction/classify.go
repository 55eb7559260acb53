package auction

import (
	"time"

	"lotgate/internal/platform/logger"
)

// form_get_type discriminator values sent by upstream
const (
	formTypeActive  = "active"
	formTypeHistory = "history"
)

// Classifier decides whether one raw upstream item is a completed sale
// it is stateless apart from its clock seam
type Classifier struct {
	log *logger.Logger
	now func() time.Time
}

// ClassifierOption mutates a Classifier during construction
type ClassifierOption func(*Classifier)

// WithNow overrides the clock, used by tests
func WithNow(now func() time.Time) ClassifierOption {
	return func(c *Classifier) { c.now = now }
}

// NewClassifier builds a Classifier. A nil log falls back to the named root logger
func NewClassifier(log *logger.Logger, opts ...ClassifierOption) *Classifier {
	if log == nil {
		log = logger.Named("auction")
	}
	c := &Classifier{log: log, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

// IsHistory classifies one raw item, in strict priority order:
// explicit discriminator, then sale_date presence, then auction_date vs now,
// then a conservative history default. It never fails; a malformed
// auction_date logs and takes the default so one bad item cannot sink a batch
func (c *Classifier) IsHistory(item RawItem) bool {
	switch item["form_get_type"] {
	case formTypeActive:
		return false
	case formTypeHistory:
		return true
	}

	// a sale date only exists once an auction has concluded
	if truthy(item["sale_date"]) {
		return true
	}

	raw, ok := item["auction_date"]
	if !ok || raw == nil {
		return true
	}
	s, ok := raw.(string)
	if !ok {
		c.log.Warn().Interface("auction_date", raw).Msg("non-string auction_date, defaulting to history")
		return true
	}
	at, err := ParseTime(s)
	if err != nil {
		c.log.Warn().Str("auction_date", s).Err(err).Msg("unparsable auction_date, defaulting to history")
		return true
	}
	return !at.After(c.now().UTC())
}

// truthy mirrors the loose upstream presence check: nil and "" are absent
func truthy(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}
