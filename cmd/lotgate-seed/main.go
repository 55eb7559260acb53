// Command lotgate-seed creates the filter tables and loads their canonical
// values. It is idempotent: existing rows are cleared before reseeding
package main

import (
	"context"

	"lotgate/internal/platform/config"
	"lotgate/internal/platform/logger"
	"lotgate/internal/platform/store"
	str "lotgate/internal/platform/strings"
)

// schema mirrors the API's read paths: simple id/name/slug tables with
// make scoped to a vehicle type and model scoped to a make
var schema = []string{
	`create table if not exists vehicle_type (
		id bigserial primary key,
		name text not null,
		slug text not null unique
	)`,
	`create table if not exists make (
		id bigserial primary key,
		name text not null,
		slug text not null,
		vehicle_type_id bigint not null references vehicle_type(id)
	)`,
	`create index if not exists make_slug_idx on make (slug)`,
	`create table if not exists model (
		id bigserial primary key,
		name text not null,
		slug text not null,
		make_id bigint not null references make(id) on delete cascade
	)`,
	`create index if not exists model_slug_idx on model (slug)`,
	`create table if not exists damage (
		id bigserial primary key,
		name text not null,
		slug text not null unique
	)`,
	`create table if not exists transmission (
		id bigserial primary key,
		name text not null,
		slug text not null unique
	)`,
	`create table if not exists drive (
		id bigserial primary key,
		name text not null,
		slug text not null unique
	)`,
	`create table if not exists document (
		id bigserial primary key,
		name text not null,
		slug text not null unique
	)`,
	`create table if not exists status (
		id bigserial primary key,
		name text not null,
		slug text not null unique
	)`,
	`create table if not exists title_indicators (
		id bigserial primary key,
		site varchar(16) not null,
		title_name text not null,
		status text
	)`,
}

// canonical filter values as the upstream provider spells them
var (
	vehicleTypes = []string{
		"Automobile", "Truck", "Trailers", "Motorcycle", "Boat", "ATV",
		"Watercraft", "Bus", "Industrial Equipment", "Jet Sky", "Other",
	}

	transmissions = []string{"Automatic", "Manual"}

	drives = []string{
		"Front-wheel drive", "Rear-wheel drive", "All wheel drive", "4x4 w/Rear Wheel Drv",
	}

	damages = []string{
		"Front End", "Rear End", "Side", "Minor Dent/Scratches", "Normal Wear",
		"All Over", "Undercarriage", "Water/Flood", "Burn", "Hail",
		"Mechanical", "Vandalism", "Rollover", "Stripped", "Biohazard/Chemical",
	}

	documents = []string{
		"Clean Title", "Salvage Title", "Non-repairable", "Certificate Of Destruction",
		"Bill Of Sale", "Parts Only", "Rebuilt Title",
	}

	statuses = []string{
		"Run and Drive", "Starts", "Stationary", "Engine Start Program", "Enhanced Vehicles",
	}

	// a starter make/model set per vehicle type; real deployments extend this
	makesByVehicleType = map[string]map[string][]string{
		"Automobile": {
			"Toyota":    {"Camry", "Corolla", "RAV4", "Highlander"},
			"Honda":     {"Accord", "Civic", "CR-V"},
			"Ford":      {"F-150", "Escape", "Explorer", "Fusion"},
			"Chevrolet": {"Silverado", "Malibu", "Equinox"},
			"Nissan":    {"Altima", "Rogue", "Sentra"},
			"BMW":       {"3 Series", "5 Series", "X5"},
		},
		"Motorcycle": {
			"Harley-Davidson": {"Sportster", "Softail"},
			"Yamaha":          {"YZF-R6", "MT-07"},
		},
	}

	// title indicator colors per site and title name
	titleIndicators = map[string]map[string]string{
		"copart": {
			"Clean Title":                "green",
			"Salvage Title":              "yellow",
			"Non-repairable":             "red",
			"Certificate Of Destruction": "red red",
			"Parts Only":                 "black",
		},
		"iaai": {
			"Clean Title":    "green",
			"Salvage Title":  "yellow",
			"Non-repairable": "red",
			"Bill Of Sale":   "black",
		},
	}
)

// clearOrder deletes children before parents to satisfy the FKs
var clearOrder = []string{
	"model", "make", "vehicle_type", "transmission", "drive", "status",
	"document", "damage", "title_indicators",
}

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Named("seed")
	ctx := context.Background()

	st, err := store.Open(ctx, store.Config{
		AppName: "lotgate-seed",
		PG: store.PGConfig{
			Enabled: true,
			URL:     pgCfg.MustString("DBURL"),
		},
	}, store.WithLogger(*logger.Get()))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(ctx); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	for _, stmt := range schema {
		if _, err := st.PG.Exec(ctx, stmt); err != nil {
			l.Panic().Err(err).Msg("schema create failed")
		}
	}

	err = store.RunTxRetry(ctx, st.PG, 3, func(ctx context.Context, q store.RowQuerier) error {
		for _, table := range clearOrder {
			if _, err := q.Exec(ctx, `delete from `+table); err != nil {
				return err
			}
		}

		for table, names := range map[string][]string{
			"transmission": transmissions,
			"drive":        drives,
			"damage":       damages,
			"document":     documents,
			"status":       statuses,
		} {
			for _, name := range names {
				if _, err := q.Exec(ctx,
					`insert into `+table+` (name, slug) values ($1, $2)`,
					name, str.Slugify(name),
				); err != nil {
					return err
				}
			}
		}

		for _, vt := range vehicleTypes {
			var vtID int64
			if err := q.QueryRow(ctx,
				`insert into vehicle_type (name, slug) values ($1, $2) returning id`,
				vt, str.Slugify(vt),
			).Scan(&vtID); err != nil {
				return err
			}

			for mk, models := range makesByVehicleType[vt] {
				var mkID int64
				if err := q.QueryRow(ctx,
					`insert into make (name, slug, vehicle_type_id) values ($1, $2, $3) returning id`,
					mk, str.Slugify(mk), vtID,
				).Scan(&mkID); err != nil {
					return err
				}
				for _, mdl := range models {
					if _, err := q.Exec(ctx,
						`insert into model (name, slug, make_id) values ($1, $2, $3)`,
						mdl, str.Slugify(mdl), mkID,
					); err != nil {
						return err
					}
				}
			}
		}

		for site, titles := range titleIndicators {
			for title, color := range titles {
				if _, err := q.Exec(ctx,
					`insert into title_indicators (site, title_name, status) values ($1, $2, $3)`,
					site, title, color,
				); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		l.Panic().Err(err).Msg("seed failed")
	}

	l.Info().Msg("filter tables seeded")
}
