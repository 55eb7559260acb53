// Package auction holds the response classification and schema resolution
// core for the upstream vehicle-auction provider
package auction

import (
	"strconv"
	"strings"

	perr "lotgate/internal/platform/errors"
)

// Site identifies an upstream auction site by its numeric code
// the zero value means "no site filter"
type Site uint8

const (
	// SiteNone is the absent filter value
	SiteNone Site = 0

	// SiteCopart is the Copart auction
	SiteCopart Site = 1

	// SiteIAAI is the IAAI auction
	SiteIAAI Site = 2

	// SiteAll is the wildcard covering both concrete sites
	// it has no single name; callers expand it before building requests
	SiteAll Site = 3
)

// siteNames is the canonical code -> name table
var siteNames = map[Site]string{
	SiteCopart: "copart",
	SiteIAAI:   "iaai",
	SiteAll:    "all",
}

// ParseSite normalizes a site given as a name or a numeric code string.
// Matching is case-insensitive; the wildcard "all"/"3" passes through.
// An empty string returns SiteNone (absence is a valid filter state)
func ParseSite(s string) (Site, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SiteNone, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return SiteFromCode(n)
	}
	lower := strings.ToLower(s)
	for code, name := range siteNames {
		if name == lower {
			return code, nil
		}
	}
	return SiteNone, perr.InvalidSitef("unknown auction site %q", s)
}

// SiteFromCode validates a numeric site code
func SiteFromCode(n int) (Site, error) {
	switch Site(n) {
	case SiteCopart, SiteIAAI, SiteAll:
		return Site(n), nil
	}
	return SiteNone, perr.InvalidSitef("unknown auction site code %d", n)
}

// Name returns the symbolic name for a concrete site.
// The wildcard has no single name and is rejected
func (s Site) Name() (string, error) {
	if s == SiteAll {
		return "", perr.InvalidSitef("wildcard site has no name")
	}
	if n, ok := siteNames[s]; ok {
		return n, nil
	}
	return "", perr.InvalidSitef("unknown auction site code %d", int(s))
}

// Code returns the numeric code
func (s Site) Code() int { return int(s) }

// String renders the name when known, otherwise the numeric code
// intended for logs only; use Name for the strict mapping
func (s Site) String() string {
	if n, ok := siteNames[s]; ok {
		return n
	}
	return strconv.Itoa(int(s))
}

// IsNone reports whether the site filter is absent
func (s Site) IsNone() bool { return s == SiteNone }

// Expand resolves the wildcard into the concrete site list.
// Concrete sites expand to themselves; SiteNone expands to nothing
func (s Site) Expand() []Site {
	switch s {
	case SiteAll:
		return []Site{SiteCopart, SiteIAAI}
	case SiteNone:
		return nil
	default:
		return []Site{s}
	}
}
