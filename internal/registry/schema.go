package registry

import (
	"bytes"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// schemaSet holds the compiled JSON Schemas for the three catalog document
// kinds. TOML documents are converted to generic JSON values before
// validation.
type schemaSet struct {
	component *jsonschema.Schema
	profile   *jsonschema.Schema
	template  *jsonschema.Schema
}

func compileSchemas() (*schemaSet, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	for _, name := range []string{"component.json", "profile.json", "deptemplate.json"} {
		data, err := catalogFS.ReadFile("schema/" + name)
		if err != nil {
			return nil, fmt.Errorf("reading schema %s: %w", name, err)
		}
		if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("adding schema %s: %w", name, err)
		}
	}

	set := &schemaSet{}
	var err error
	if set.component, err = compiler.Compile("component.json"); err != nil {
		return nil, err
	}
	if set.profile, err = compiler.Compile("profile.json"); err != nil {
		return nil, err
	}
	if set.template, err = compiler.Compile("deptemplate.json"); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *schemaSet) validateComponent(name string, data []byte) error {
	return validateDocument(s.component, name, data)
}

func (s *schemaSet) validateProfile(name string, data []byte) error {
	return validateDocument(s.profile, name, data)
}

func (s *schemaSet) validateTemplate(name string, data []byte) error {
	return validateDocument(s.template, name, data)
}

func validateDocument(schema *jsonschema.Schema, name string, data []byte) error {
	v, err := tomlToJSONValue(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	if err := schema.Validate(v); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return fmt.Errorf("%s: %w", name, formatSchemaError(validationErr))
		}
		return fmt.Errorf("%s: schema validation failed: %w", name, err)
	}
	return nil
}

// formatSchemaError flattens the validator's error tree into one readable
// message per failing location.
func formatSchemaError(err *jsonschema.ValidationError) error {
	var messages []string

	var collect func(*jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if e.Message != "" {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(err)

	if len(messages) == 0 {
		return fmt.Errorf("schema validation failed")
	}
	return fmt.Errorf("schema validation failed:\n    - %s", strings.Join(messages, "\n    - "))
}
