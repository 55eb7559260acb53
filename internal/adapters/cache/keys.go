package cache

import (
	"crypto/md5" // nolint:gosec // key fingerprint, not security
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Key builders. Id-scoped operations use fixed segments so related entries can
// be pattern-deleted; filter sets hash to a stable fingerprint so identical
// logical requests collide on the same key

// LotKey keys a vin-or-lot lookup
func LotKey(vinOrLot, site string) string {
	return withSite("lot:vin_or_id:"+vinOrLot, site)
}

// BidKey keys a current-bid lookup
func BidKey(lotID int64, site string) string {
	return withSite(fmt.Sprintf("bid:current:%d", lotID), site)
}

// HistoryKey keys a sale-history lookup
func HistoryKey(ref, site string) string {
	return withSite("history:sale:"+ref, site)
}

// SearchKey keys a filtered search under op ("lots:current", "lots:history")
func SearchKey(op string, filters map[string]any) string {
	if len(filters) == 0 {
		return op + ":all"
	}
	return op + ":" + Fingerprint(filters)
}

// PriceKey keys the average-price aggregate
func PriceKey(filters map[string]any) string {
	if len(filters) == 0 {
		return "average_price:without_filter"
	}
	return "average_price:" + Fingerprint(filters)
}

// FiltersKey keys the static filter tables
func FiltersKey(parts ...string) string {
	if len(parts) == 0 {
		return "filters:all"
	}
	return "filters:" + strings.Join(parts, ":")
}

// Fingerprint hashes a parameter set into a stable hex digest.
// Keys are sorted so field order never changes the fingerprint
func Fingerprint(filters map[string]any) string {
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kj, _ := json.Marshal(k)         // nolint:errcheck
		vj, _ := json.Marshal(filters[k]) // nolint:errcheck
		b.Write(kj)
		b.WriteByte(':')
		b.Write(vj)
	}
	b.WriteByte('}')

	sum := md5.Sum([]byte(b.String())) // nolint:gosec
	return hex.EncodeToString(sum[:])
}

func withSite(key, site string) string {
	if site == "" {
		return key
	}
	return key + ":" + site
}
