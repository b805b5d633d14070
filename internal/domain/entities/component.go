// Package entities contains domain entities for the stackforge domain model.
// These are pure domain types with no infrastructure dependencies; they are
// loaded once from the registry at startup and never mutated.
package entities

import (
	"github.com/stackforge-dev/stackforge/internal/domain/values"
)

// Component is a selectable unit of functionality: a runtime, framework,
// database, cache, or vector store. Components declare the other components
// they imply, the ones they cannot co-exist with, and the ecosystem packages
// they need.
type Component struct {
	ID          string           `toml:"id"`
	Name        string           `toml:"name"`
	Description string           `toml:"description,omitempty"`
	Category    values.Category  `toml:"category"`
	Ecosystem   values.Ecosystem `toml:"ecosystem,omitempty"`

	// VersionKey names the version-override variable this component reads
	// (e.g. "python_version"). Empty for components pinned by their
	// dependency manifest alone.
	VersionKey string `toml:"version_key,omitempty"`

	// DefaultVersion is the hard-coded builtin default for VersionKey, the
	// lowest rung of the version precedence chain.
	DefaultVersion string `toml:"default_version,omitempty"`

	Implies   []string `toml:"implies,omitempty"`
	Conflicts []string `toml:"conflicts,omitempty"`

	// Dependencies is the ordered per-ecosystem package manifest. Order is
	// significant: it determines first-seen ordering in merged manifests.
	Dependencies []Dependency `toml:"dependencies,omitempty"`

	// Service describes the orchestration-file entry for components that
	// run as a container. Nil for library-only components.
	Service *ServiceSpec `toml:"service,omitempty"`

	// Devcontainer carries the editor-integration hints this component
	// contributes to the container descriptor.
	Devcontainer DevcontainerHints `toml:"devcontainer,omitempty"`
}

// ServiceSpec describes one service entry in the orchestration file.
// Exactly one of Image or Build is set: infrastructure components pull an
// image, application components build from their generated skeleton.
type ServiceSpec struct {
	Image string `toml:"image,omitempty"`
	Build string `toml:"build,omitempty"`

	// DefaultPort is the host port the service asks for. On collision the
	// tree generator assigns the first free port at or above it.
	DefaultPort int `toml:"default_port"`

	// ContainerPort is the port inside the container. Defaults to
	// DefaultPort when zero.
	ContainerPort int `toml:"container_port,omitempty"`

	Command     string            `toml:"command,omitempty"`
	Environment map[string]string `toml:"environment,omitempty"`
	Volumes     []string          `toml:"volumes,omitempty"`
}

// DevcontainerHints are the per-component contributions to the container
// descriptor: forwarded ports come from the service spec, the rest from here.
type DevcontainerHints struct {
	Extensions []string `toml:"extensions,omitempty"`
	Mounts     []string `toml:"mounts,omitempty"`
}

// HasVersionKey reports whether this component reads a version override.
func (c *Component) HasVersionKey() bool {
	return c.VersionKey != ""
}

// IsRunnable reports whether this component contributes a service entry.
func (c *Component) IsRunnable() bool {
	return c.Service != nil
}

// ContainerPortOrDefault returns the in-container port for the service.
func (s *ServiceSpec) ContainerPortOrDefault() int {
	if s.ContainerPort != 0 {
		return s.ContainerPort
	}
	return s.DefaultPort
}
