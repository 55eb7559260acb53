package domain

import (
	"context"

	"lotgate/internal/core/auction"
)

// ResolveSearchSlugs rewrites slug-valued search fields to the display names
// the upstream provider expects. Unresolved values stay as sent
func ResolveSearchSlugs(ctx context.Context, r SlugResolver, p *auction.SearchParams) {
	if r == nil {
		return
	}

	resolve := func(category, v string) string {
		if v == "" {
			return v
		}
		if name, ok := r.Resolve(ctx, category, v); ok {
			return name
		}
		return v
	}
	resolveAll := func(category string, vs []string) {
		for i, v := range vs {
			vs[i] = resolve(category, v)
		}
	}

	p.Make = resolve("make", p.Make)
	p.Model = resolve("model", p.Model)
	p.VehicleType = resolve("vehicle_type", p.VehicleType)
	resolveAll("transmission", p.Transmission)
	resolveAll("status", p.Status)
	resolveAll("drive", p.Drive)
	resolveAll("damage_pr", p.DamagePr)
	resolveAll("document", p.Document)
}
