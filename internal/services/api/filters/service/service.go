// Package service contains filter lookup workflows
package service

import (
	"context"
	"encoding/json"

	"lotgate/internal/adapters/cache"
	"lotgate/internal/core/auction"
	"lotgate/internal/modkit/repokit"
	perr "lotgate/internal/platform/errors"
	"lotgate/internal/platform/logger"
	"lotgate/internal/services/api/filters/domain"
	"lotgate/internal/services/api/filters/repo"
)

// defaultTitleColor is returned when no indicator row matches
const defaultTitleColor = "grey"

// Service defines the service contract for filters
type Service interface {
	domain.ServicePort
	domain.SlugResolver
}

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	cache  cache.Cache
	log    *logger.Logger
}

// New creates a new filters service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], c cache.Cache, log *logger.Logger) *Svc {
	if db == nil {
		panic("filters.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("filters.Service requires a non nil Repo binder")
	}
	if c == nil {
		c = cache.Nop{}
	}
	if log == nil {
		log = logger.Named("filters")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, cache: c, log: log}
}

// All returns every static filter table, cached under one key
func (s *Svc) All(ctx context.Context) (domain.AllFiltersOut, error) {
	key := cache.FiltersKey()
	if raw, ok := s.cache.Get(ctx, key); ok {
		var out domain.AllFiltersOut
		if err := json.Unmarshal(raw, &out); err == nil {
			return out, nil
		}
		s.log.Warn().Str("key", key).Msg("stale filters cache entry, refetching")
	}

	var out domain.AllFiltersOut
	for _, c := range []struct {
		category string
		dst      *[]domain.Filter
	}{
		{"damage_pr", &out.Damage},
		{"document", &out.Document},
		{"drive", &out.Drive},
		{"status", &out.Status},
		{"transmission", &out.Transmission},
		{"vehicle_type", &out.VehicleType},
	} {
		rows, err := s.Repo.AllByCategory(ctx, c.category)
		if err != nil {
			return domain.AllFiltersOut{}, err
		}
		*c.dst = toFilters(rows)
	}

	if payload, err := json.Marshal(out); err == nil {
		s.cache.Set(ctx, key, payload, cache.TTLFilters)
	}
	return out, nil
}

// MakesByVehicleType lists makes for the vehicle type slug
func (s *Svc) MakesByVehicleType(ctx context.Context, vehicleTypeSlug string) ([]domain.Filter, error) {
	vt, err := s.Repo.VehicleTypeBySlug(ctx, vehicleTypeSlug)
	if err != nil {
		return nil, err
	}
	rows, err := s.Repo.MakesByVehicleType(ctx, vt.ID)
	if err != nil {
		return nil, err
	}
	return toFilters(rows), nil
}

// ModelsByMake lists models for the make slug scoped to the vehicle type
func (s *Svc) ModelsByMake(ctx context.Context, vehicleTypeSlug, makeSlug string) ([]domain.Filter, error) {
	vt, err := s.Repo.VehicleTypeBySlug(ctx, vehicleTypeSlug)
	if err != nil {
		return nil, err
	}
	mk, err := s.Repo.MakeBySlug(ctx, makeSlug, vt.ID)
	if err != nil {
		return nil, err
	}
	rows, err := s.Repo.ModelsByMake(ctx, mk.ID)
	if err != nil {
		return nil, err
	}
	return toFilters(rows), nil
}

// TitleIndicator maps a site and title name to an indicator color,
// defaulting to grey when no row matches
func (s *Svc) TitleIndicator(ctx context.Context, site auction.Site, title string) (domain.TitleIndicatorOut, error) {
	name, err := site.Name()
	if err != nil {
		return domain.TitleIndicatorOut{}, err
	}
	status, err := s.Repo.TitleStatus(ctx, name, title)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.TitleIndicatorOut{Color: defaultTitleColor}, nil
		}
		return domain.TitleIndicatorOut{}, err
	}
	if status == "" {
		return domain.TitleIndicatorOut{Color: defaultTitleColor}, nil
	}
	return domain.TitleIndicatorOut{Color: status}, nil
}

// Resolve maps a filter slug to its display name.
// Lookup misses and database failures are logged and reported as ok=false
// so search requests can pass the raw value through
func (s *Svc) Resolve(ctx context.Context, category, slug string) (string, bool) {
	if slug == "" {
		return "", false
	}
	name, err := s.Repo.NameBySlug(ctx, category, slug)
	if err != nil {
		s.log.Warn().
			Str("category", category).
			Str("slug", slug).
			Err(err).
			Msg("slug resolution failed, passing raw value through")
		return "", false
	}
	return name, true
}

func toFilters(rows []repo.RowFilter) []domain.Filter {
	out := make([]domain.Filter, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Filter{ID: r.ID, Name: r.Name, Slug: r.Slug})
	}
	return out
}
