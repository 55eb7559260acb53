// @title         Lotgate API
// @version       0.1.0
// @description   Normalized access to vehicle auction lots, archived sales and filters

package main

import (
	"context"

	"lotgate/internal/adapters/cache"
	"lotgate/internal/adapters/upstream"
	"lotgate/internal/core/auction"
	"lotgate/internal/platform/config"
	"lotgate/internal/platform/logger"
	phttp "lotgate/internal/platform/net/http"
	"lotgate/internal/platform/store"

	"lotgate/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")  // pgCfg lives under SERVICE_PGSQL_*
	rdsCfg := root.Prefix("SERVICE_REDIS_") // rdsCfg lives under SERVICE_REDIS_*
	upCfg := root.Prefix("UPSTREAM_")       // upstream provider credentials

	// bring up logging early
	l := logger.Get()

	// open the platform store (postgres)
	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "lotgate-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// response cache is a soft dependency; requests survive without it
	var c cache.Cache = cache.Nop{}
	if rdsCfg.MayBool("ENABLED", true) {
		rds := cache.NewRedis(store.RedisConfig{
			Enabled:  true,
			Addr:     rdsCfg.MayString("ADDR", "localhost:6379"),
			Password: rdsCfg.MayString("PASSWORD", ""),
			DB:       rdsCfg.MayInt("DB", 0),
		}, logger.Named("cache"))
		if err := rds.Ping(context.Background()); err != nil {
			l.Warn().Err(err).Msg("redis unavailable, running without response cache")
		} else {
			c = rds
			defer func() {
				if err := rds.Close(); err != nil {
					l.Error().Err(err).Msg("failed to close redis")
				}
			}()
		}
	}

	// upstream auction data provider
	resolver := auction.NewResolver(logger.Named("resolver"), auction.NewClassifier(logger.Named("classifier")))
	up := upstream.New(upstream.Options{
		BaseURL: upCfg.MayString("BASE_URL", "https://api.apicar.store/api"),
		APIKey:  upCfg.MustString("API_KEY"),
		Timeout: upCfg.MayDuration("TIMEOUT", 0),
	}, logger.Named("upstream"), resolver)

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Cache:          c,
			Upstream:       up,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
