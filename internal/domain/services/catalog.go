// Package services contains domain services for the stackforge domain model.
package services

import (
	"github.com/stackforge-dev/stackforge/internal/domain/entities"
	"github.com/stackforge-dev/stackforge/internal/domain/values"
)

// Catalog is the read-only component catalog surface the domain services
// need. internal/registry provides the production implementation; tests use
// small fakes.
type Catalog interface {
	Lookup(id string) (*entities.Component, bool)
	Ordinal(id string) int
	Profile(name string) (*entities.Profile, bool)
	DefaultRuntime(eco values.Ecosystem) (string, bool)
	DependencyTemplate(id string) ([]entities.Dependency, bool)
}
