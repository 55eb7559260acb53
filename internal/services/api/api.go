// Package api provides the HTTP API for the application
package api

import (
	"lotgate/internal/adapters/cache"
	"lotgate/internal/adapters/upstream"
	"lotgate/internal/platform/config"
	"lotgate/internal/platform/logger"
	phttp "lotgate/internal/platform/net/http"
	"lotgate/internal/platform/store"

	"lotgate/internal/modkit"
	"lotgate/internal/modkit/httpkit"
	"lotgate/internal/modkit/module"
	"lotgate/internal/modkit/swaggerkit"

	filtersmod "lotgate/internal/services/api/filters/module"
	historymod "lotgate/internal/services/api/history/module"
	lotsmod "lotgate/internal/services/api/lots/module"
	metamod "lotgate/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Cache          cache.Cache
	Upstream       upstream.Fetcher
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	log := opt.Logger
	if log == nil {
		log = logger.Get()
	}

	// shared deps for modules
	deps := modkit.Deps{
		Log:      *log,
		Cfg:      opt.Config,
		PG:       opt.Store.PG,
		Cache:    opt.Cache,
		Upstream: opt.Upstream,
	}

	// Construct filters first and hand its slug resolver to the search modules
	filters := filtersmod.New(deps)
	slugs := module.MustPortsOf[filtersmod.Ports](filters).Slugs

	mods := []module.Module{
		metamod.New(deps),
		filters,
		lotsmod.New(deps, modkit.WithPorts(lotsmod.Ports{Slugs: slugs})),
		historymod.New(deps, modkit.WithPorts(historymod.Ports{Slugs: slugs})),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
