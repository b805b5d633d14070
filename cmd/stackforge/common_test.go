package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stackforge-dev/stackforge/internal/domain/entities"
)

func TestScaffoldFlags_FeatureFlags(t *testing.T) {
	tests := []struct {
		name     string
		flags    scaffoldFlags
		expected []string
	}{
		{
			name:     "none set",
			flags:    scaffoldFlags{},
			expected: nil,
		},
		{
			name:     "deps only",
			flags:    scaffoldFlags{deps: true},
			expected: []string{entities.FlagDeps},
		},
		{
			name:     "all set",
			flags:    scaffoldFlags{examples: true, deps: true, skipGit: true},
			expected: []string{entities.FlagExamples, entities.FlagDeps, entities.FlagSkipGit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.flags.featureFlags())
		})
	}
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}

	for _, expected := range []string{"new", "add", "components", "profiles", "version"} {
		assert.Contains(t, names, expected)
	}
}
