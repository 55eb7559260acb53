package module

import (
	filtersdom "lotgate/internal/services/api/filters/domain"
)

// Ports exposes the filters surface other modules consume
type Ports struct {
	Slugs filtersdom.SlugResolver
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
