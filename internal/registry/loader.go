package registry

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/stackforge-dev/stackforge/internal/domain/entities"
	"github.com/stackforge-dev/stackforge/internal/domain/values"
)

//go:embed catalog/*.toml profiles/*.toml deptemplates/*.toml schema/*.json
var catalogFS embed.FS

// componentDoc mirrors a component TOML document:
// [component], [implies], [conflicts], [dependencies.<ecosystem>].
type componentDoc struct {
	Component entities.Component           `toml:"component"`
	Implies   refsSection                  `toml:"implies"`
	Conflicts refsSection                  `toml:"conflicts"`
	Deps      map[string][]dependencyEntry `toml:"dependencies"`
}

// profileDoc mirrors a profile TOML document: [profile], [components].
type profileDoc struct {
	Profile    entities.Profile `toml:"profile"`
	Components refsSection      `toml:"components"`
}

// templateDoc mirrors a dependency template TOML document.
type templateDoc struct {
	Template struct {
		ID          string `toml:"id"`
		Description string `toml:"description"`
	} `toml:"template"`
	Deps map[string][]dependencyEntry `toml:"dependencies"`
}

type refsSection struct {
	Components []string `toml:"components"`
	IDs        []string `toml:"ids"`
}

type dependencyEntry struct {
	Package    string `toml:"package"`
	Constraint string `toml:"constraint"`
	Kind       string `toml:"kind"`
}

// Load parses, schema-checks and cross-validates the embedded catalog.
// Errors here mean the binary ships a broken catalog and the process cannot
// proceed.
func Load() (*Registry, error) {
	schemas, err := compileSchemas()
	if err != nil {
		return nil, fmt.Errorf("compiling catalog schemas: %w", err)
	}

	reg := &Registry{
		byID:      make(map[string]*entities.Component),
		ordinal:   make(map[string]int),
		profiles:  make(map[string]*entities.Profile),
		templates: make(map[string][]entities.Dependency),
	}

	if err := loadDir("catalog", func(name string, data []byte) error {
		return reg.addComponent(name, data, schemas)
	}); err != nil {
		return nil, err
	}
	if err := loadDir("deptemplates", func(name string, data []byte) error {
		return reg.addTemplate(name, data, schemas)
	}); err != nil {
		return nil, err
	}
	if err := loadDir("profiles", func(name string, data []byte) error {
		return reg.addProfile(name, data, schemas)
	}); err != nil {
		return nil, err
	}

	if err := reg.validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

// MustLoad loads the catalog or panics. The catalog is embedded, so a load
// failure is a build defect, not a runtime condition.
func MustLoad() *Registry {
	reg, err := Load()
	if err != nil {
		panic(err)
	}
	return reg
}

// loadDir feeds every TOML file in an embedded directory to fn, in
// lexicographic filename order (which is the catalog order).
func loadDir(dir string, fn func(name string, data []byte) error) error {
	names, err := fs.Glob(catalogFS, path.Join(dir, "*.toml"))
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := catalogFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		if err := fn(name, data); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) addComponent(name string, data []byte, schemas *schemaSet) error {
	if err := schemas.validateComponent(name, data); err != nil {
		return err
	}

	var doc componentDoc
	if err := decodeStrict(data, &doc); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}

	c := doc.Component
	if err := values.ValidateComponentID(c.ID); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if _, exists := r.byID[c.ID]; exists {
		return fmt.Errorf("%s: duplicate component ID %q", name, c.ID)
	}
	c.Implies = doc.Implies.Components
	c.Conflicts = doc.Conflicts.Components

	deps, err := buildManifest(doc.Deps)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	c.Dependencies = deps

	component := &c
	r.ordinal[c.ID] = len(r.components)
	r.components = append(r.components, component)
	r.byID[c.ID] = component
	return nil
}

func (r *Registry) addProfile(name string, data []byte, schemas *schemaSet) error {
	if err := schemas.validateProfile(name, data); err != nil {
		return err
	}

	var doc profileDoc
	if err := decodeStrict(data, &doc); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}

	p := doc.Profile
	p.Components = doc.Components.IDs
	if _, exists := r.profiles[p.Name]; exists {
		return fmt.Errorf("%s: duplicate profile %q", name, p.Name)
	}
	r.profiles[p.Name] = &p
	r.profileOrder = append(r.profileOrder, p.Name)
	return nil
}

func (r *Registry) addTemplate(name string, data []byte, schemas *schemaSet) error {
	if err := schemas.validateTemplate(name, data); err != nil {
		return err
	}

	var doc templateDoc
	if err := decodeStrict(data, &doc); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	if _, exists := r.templates[doc.Template.ID]; exists {
		return fmt.Errorf("%s: duplicate dependency template %q", name, doc.Template.ID)
	}

	deps, err := buildManifest(doc.Deps)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	r.templates[doc.Template.ID] = deps
	return nil
}

// buildManifest flattens the [dependencies.<ecosystem>] sections into one
// ordered manifest, python entries before node, section order preserved.
func buildManifest(sections map[string][]dependencyEntry) ([]entities.Dependency, error) {
	var out []entities.Dependency
	for _, key := range []string{"python", "node"} {
		eco, err := values.NewEcosystem(key)
		if err != nil {
			return nil, err
		}
		for _, entry := range sections[key] {
			dep := entities.Dependency{
				Ecosystem:  eco,
				Package:    entry.Package,
				Constraint: entry.Constraint,
				Kind:       entities.DependencyKind(entry.Kind),
			}
			if _, err := dep.MinimumVersion(); err != nil {
				return nil, err
			}
			out = append(out, dep)
		}
	}
	return out, nil
}

// decodeStrict parses TOML rejecting unknown fields, so schema and struct
// cannot drift apart silently.
func decodeStrict(data []byte, v any) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// tomlToJSONValue converts a TOML document to the generic JSON value shape
// the schema validator expects.
func tomlToJSONValue(data []byte) (any, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(buf, &v); err != nil {
		return nil, err
	}
	return v, nil
}
