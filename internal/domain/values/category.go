package values

import (
	"fmt"
	"strings"
)

// Category classifies a component within the catalog.
type Category struct {
	value string
}

// Predefined categories
var (
	CategoryBaseRuntime = Category{"base-runtime"}
	CategoryFramework   = Category{"framework"}
	CategoryDatabase    = Category{"database"}
	CategoryCache       = Category{"cache"}
	CategoryVectorStore = Category{"vector-store"}
)

// NewCategory creates a Category from string
func NewCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "base-runtime":
		return CategoryBaseRuntime, nil
	case "framework":
		return CategoryFramework, nil
	case "database":
		return CategoryDatabase, nil
	case "cache":
		return CategoryCache, nil
	case "vector-store":
		return CategoryVectorStore, nil
	default:
		return Category{}, fmt.Errorf("invalid category: %s", s)
	}
}

// MustNewCategory creates a Category or panics (for tests/constants)
func MustNewCategory(s string) Category {
	c, err := NewCategory(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the string representation
func (c Category) String() string {
	return c.value
}

// IsBaseRuntime reports whether the component provides a language runtime.
func (c Category) IsBaseRuntime() bool {
	return c.value == CategoryBaseRuntime.value
}

// Equals checks if two categories are equal
func (c Category) Equals(other Category) bool {
	return c.value == other.value
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (c *Category) UnmarshalText(data []byte) error {
	cat, err := NewCategory(string(data))
	if err != nil {
		return err
	}
	*c = cat
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.value), nil
}
