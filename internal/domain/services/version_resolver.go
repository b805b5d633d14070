package services

import (
	"fmt"
)

// VersionInputs carries the already-loaded configuration values the version
// precedence chain reads. The resolver performs no I/O itself; callers load
// config and pass values in.
type VersionInputs struct {
	// CLIOverrides are explicit per-invocation overrides (highest
	// precedence).
	CLIOverrides map[string]string

	// ProjectVersions come from the target project's local configuration.
	// Callers leave this nil outside add-to-existing mode.
	ProjectVersions map[string]string

	// GlobalVersions come from the user's global configuration.
	GlobalVersions map[string]string
}

// VersionResolver resolves each version key to a concrete version string
// using a fixed precedence chain: CLI override, project config, global
// config, builtin default.
type VersionResolver struct {
	builtins map[string]string
}

// NewVersionResolver creates a version resolver over the catalog's builtin
// defaults.
func NewVersionResolver(builtins map[string]string) *VersionResolver {
	return &VersionResolver{builtins: builtins}
}

// Resolve returns the version for a key. The function is pure given its
// inputs. An unknown key is a programming error (the resolver is only ever
// called with keys taken from the loaded catalog), so it panics rather than
// returning a runtime error.
func (r *VersionResolver) Resolve(key string, in VersionInputs) string {
	if _, known := r.builtins[key]; !known {
		panic(fmt.Sprintf("version resolver: unknown version key %q", key))
	}

	if v, ok := in.CLIOverrides[key]; ok && v != "" {
		return v
	}
	if v, ok := in.ProjectVersions[key]; ok && v != "" {
		return v
	}
	if v, ok := in.GlobalVersions[key]; ok && v != "" {
		return v
	}
	return r.builtins[key]
}

// Known reports whether a version key exists in the catalog.
func (r *VersionResolver) Known(key string) bool {
	_, ok := r.builtins[key]
	return ok
}
