// Package module wires lots into the API using modkit
package module

import (
	"net/http"

	modkit "lotgate/internal/modkit"
	"lotgate/internal/modkit/httpkit"
	str "lotgate/internal/platform/strings"
	filtersdom "lotgate/internal/services/api/filters/domain"
	lotshttp "lotgate/internal/services/api/lots/http"
	lotssvc "lotgate/internal/services/api/lots/service"
)

// Ports names the collaborators injected into the lots module
type Ports struct {
	Slugs filtersdom.SlugResolver
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc lotssvc.Service
}

// New constructs a lots module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("lots"), modkit.WithPrefix("/lots")}, opts...)...)

	var slugs filtersdom.SlugResolver
	if p, ok := b.Ports.(Ports); ok {
		slugs = p.Slugs
	}
	svc := lotssvc.New(deps.Upstream, deps.Cache, slugs, &deps.Log)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptLotsPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		lotshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
