// Package repo provides postgres access for the static filter tables
package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"lotgate/internal/modkit/repokit"
	perr "lotgate/internal/platform/errors"
)

// Repo defines the repository contract for filters
type Repo interface {
	AllByCategory(ctx context.Context, category string) ([]RowFilter, error)
	NameBySlug(ctx context.Context, category, slug string) (string, error)
	VehicleTypeBySlug(ctx context.Context, slug string) (RowFilter, error)
	MakesByVehicleType(ctx context.Context, vehicleTypeID int64) ([]RowFilter, error)
	MakeBySlug(ctx context.Context, slug string, vehicleTypeID int64) (RowFilter, error)
	ModelsByMake(ctx context.Context, makeID int64) ([]RowFilter, error)
	TitleStatus(ctx context.Context, site, title string) (string, error)
}

// RowFilter represents a filter row from the database
type RowFilter struct {
	ID   int64
	Name string
	Slug string
}

// categoryTables whitelists search-field categories onto their tables
// damage_pr is the upstream field name for the damage table
var categoryTables = map[string]string{
	"make":         "make",
	"model":        "model",
	"vehicle_type": "vehicle_type",
	"transmission": "transmission",
	"status":       "status",
	"drive":        "drive",
	"damage_pr":    "damage",
	"document":     "document",
}

// TableFor resolves a category to its table name
func TableFor(category string) (string, bool) {
	t, ok := categoryTables[category]
	return t, ok
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) AllByCategory(ctx context.Context, category string) ([]RowFilter, error) {
	table, ok := TableFor(category)
	if !ok {
		return nil, perr.InvalidArgf("unknown filter category %q", category)
	}
	rows, err := r.q.Query(ctx, `select id, name, slug from `+table+` order by name`)
	if err != nil {
		return nil, perr.FromPostgres(err, "query "+table)
	}
	defer rows.Close()
	return collect(rows)
}

func (r *queries) NameBySlug(ctx context.Context, category, slug string) (string, error) {
	table, ok := TableFor(category)
	if !ok {
		return "", perr.InvalidArgf("unknown filter category %q", category)
	}
	var name string
	err := r.q.QueryRow(ctx, `select name from `+table+` where slug = $1`, slug).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", perr.NotFoundf("%s %q not found", category, slug)
		}
		return "", perr.FromPostgres(err, "lookup "+table)
	}
	return name, nil
}

func (r *queries) VehicleTypeBySlug(ctx context.Context, slug string) (RowFilter, error) {
	var row RowFilter
	err := r.q.QueryRow(ctx,
		`select id, name, slug from vehicle_type where slug = $1`, slug,
	).Scan(&row.ID, &row.Name, &row.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return RowFilter{}, perr.NotFoundf("vehicle type not found")
		}
		return RowFilter{}, perr.FromPostgres(err, "lookup vehicle_type")
	}
	return row, nil
}

func (r *queries) MakesByVehicleType(ctx context.Context, vehicleTypeID int64) ([]RowFilter, error) {
	rows, err := r.q.Query(ctx,
		`select id, name, slug from make where vehicle_type_id = $1 order by name`, vehicleTypeID)
	if err != nil {
		return nil, perr.FromPostgres(err, "query make")
	}
	defer rows.Close()
	return collect(rows)
}

func (r *queries) MakeBySlug(ctx context.Context, slug string, vehicleTypeID int64) (RowFilter, error) {
	var row RowFilter
	err := r.q.QueryRow(ctx,
		`select id, name, slug from make where slug = $1 and vehicle_type_id = $2`, slug, vehicleTypeID,
	).Scan(&row.ID, &row.Name, &row.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return RowFilter{}, perr.NotFoundf("make not found")
		}
		return RowFilter{}, perr.FromPostgres(err, "lookup make")
	}
	return row, nil
}

func (r *queries) ModelsByMake(ctx context.Context, makeID int64) ([]RowFilter, error) {
	rows, err := r.q.Query(ctx,
		`select id, name, slug from model where make_id = $1 order by name`, makeID)
	if err != nil {
		return nil, perr.FromPostgres(err, "query model")
	}
	defer rows.Close()
	return collect(rows)
}

func (r *queries) TitleStatus(ctx context.Context, site, title string) (string, error) {
	var status *string
	err := r.q.QueryRow(ctx,
		`select status from title_indicators where site = $1 and title_name = $2 limit 1`, site, title,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", perr.NotFoundf("title indicator not found")
		}
		return "", perr.FromPostgres(err, "lookup title_indicators")
	}
	if status == nil {
		return "", nil
	}
	return *status, nil
}

func collect(rows repokit.Rows) ([]RowFilter, error) {
	var out []RowFilter
	for rows.Next() {
		var rr RowFilter
		if err := rows.Scan(&rr.ID, &rr.Name, &rr.Slug); err != nil {
			return nil, perr.FromPostgres(err, "scan filter row")
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}
