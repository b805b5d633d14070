package values

import (
	"fmt"
	"strings"
)

// Ecosystem identifies the language ecosystem a component's dependency
// manifest targets. Components without packages (pure services) use
// EcosystemNone.
type Ecosystem struct {
	value string
}

// Predefined ecosystems
var (
	EcosystemNone   = Ecosystem{""}
	EcosystemPython = Ecosystem{"python"}
	EcosystemNode   = Ecosystem{"node"}
)

// NewEcosystem creates an Ecosystem from string
func NewEcosystem(s string) (Ecosystem, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return EcosystemNone, nil
	case "python":
		return EcosystemPython, nil
	case "node":
		return EcosystemNode, nil
	default:
		return Ecosystem{}, fmt.Errorf("invalid ecosystem: %s", s)
	}
}

// MustNewEcosystem creates an Ecosystem or panics (for tests/constants)
func MustNewEcosystem(s string) Ecosystem {
	e, err := NewEcosystem(s)
	if err != nil {
		panic(err)
	}
	return e
}

// String returns the string representation
func (e Ecosystem) String() string {
	return e.value
}

// IsNone returns true if the component carries no package manifest.
func (e Ecosystem) IsNone() bool {
	return e.value == ""
}

// Equals checks if two ecosystems are equal
func (e Ecosystem) Equals(other Ecosystem) bool {
	return e.value == other.value
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (e *Ecosystem) UnmarshalText(data []byte) error {
	eco, err := NewEcosystem(string(data))
	if err != nil {
		return err
	}
	*e = eco
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (e Ecosystem) MarshalText() ([]byte, error) {
	return []byte(e.value), nil
}
