package entities

// Profile is a named, fixed bundle of components. Selecting a profile is
// equivalent to selecting its component list plus any explicit extra flags.
// Profiles are pure data; they carry no resolution logic.
type Profile struct {
	Name        string   `toml:"name"`
	Description string   `toml:"description,omitempty"`
	Components  []string `toml:"components"`

	// DependencyTemplate optionally names the dependency-manifest template
	// the generated project starts from. Empty means the ecosystem default.
	DependencyTemplate string `toml:"dependency_template,omitempty"`
}
