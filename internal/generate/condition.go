package generate

import (
	"fmt"
	"slices"

	"github.com/expr-lang/expr"
)

// conditionEnv is the expression environment for example gating clauses.
// Clauses are small boolean expressions over the resolved spec, e.g.
// `Has("redis")` or `Has("chroma") and Flag("deps")`.
type conditionEnv struct {
	Components []string `expr:"components"`
	Flags      []string `expr:"flags"`
	Mode       string   `expr:"mode"`
}

// Has reports whether a component id is part of the resolved set.
func (e conditionEnv) Has(id string) bool {
	return slices.Contains(e.Components, id)
}

// Flag reports whether a feature flag is active.
func (e conditionEnv) Flag(name string) bool {
	return slices.Contains(e.Flags, name)
}

// evalCondition evaluates a gating clause. The empty clause holds
// unconditionally.
func evalCondition(src string, env conditionEnv) (bool, error) {
	if src == "" {
		return true, nil
	}

	program, err := expr.Compile(src, expr.Env(conditionEnv{}), expr.AsBool())
	if err != nil {
		return false, fmt.Errorf("compiling clause %q: %w", src, err)
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("evaluating clause %q: %w", src, err)
	}
	return out.(bool), nil
}
