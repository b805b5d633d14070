package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stackforge-dev/stackforge/internal/application/services"
	"github.com/stackforge-dev/stackforge/internal/config"
	"github.com/stackforge-dev/stackforge/internal/domain/entities"
	"github.com/stackforge-dev/stackforge/internal/registry"
)

// scaffoldFlags are the selection flags shared by the new and add commands.
type scaffoldFlags struct {
	components []string
	profile    string
	overrides  map[string]string
	examples   bool
	deps       bool
	skipGit    bool
}

func (f *scaffoldFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.components, "components", "c", nil, "Components to include (e.g. fastapi,postgresql)")
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", "Named profile to start from")
	cmd.Flags().StringToStringVar(&f.overrides, "set", nil, "Version overrides (e.g. python_version=3.13)")
	cmd.Flags().BoolVar(&f.examples, "examples", false, "Include per-component example code")
	cmd.Flags().BoolVar(&f.deps, "deps", false, "Include dependency manifests")
	cmd.Flags().BoolVar(&f.skipGit, "skip-git", false, "Skip version-control bootstrap files")
}

func (f *scaffoldFlags) featureFlags() []string {
	var flags []string
	if f.examples {
		flags = append(flags, entities.FlagExamples)
	}
	if f.deps {
		flags = append(flags, entities.FlagDeps)
	}
	if f.skipGit {
		flags = append(flags, entities.FlagSkipGit)
	}
	return flags
}

// newScaffoldUseCase loads the catalog and global config and wires the
// scaffold workflow. A malformed catalog is a fatal error here, never a
// per-invocation one.
func newScaffoldUseCase() (*services.ScaffoldUseCase, *registry.Registry, error) {
	reg, err := registry.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading component catalog: %w", err)
	}
	global, err := config.LoadGlobal()
	if err != nil {
		return nil, nil, err
	}
	return services.NewScaffoldUseCase(reg, global, slog.Default()), reg, nil
}

// reportResult prints what the run did.
func reportResult(result *services.Result) {
	fmt.Printf("Scaffolded %s\n", result.Commit.TargetDir)
	fmt.Printf("  components: %s\n", strings.Join(result.Spec.Components, ", "))
	if flags := result.Spec.FlagNames(); len(flags) > 0 {
		fmt.Printf("  flags:      %s\n", strings.Join(flags, ", "))
	}
	for _, p := range result.Commit.Merged {
		fmt.Printf("  merged:     %s\n", p)
	}
	for _, p := range result.Commit.Preserved {
		fmt.Printf("  preserved:  %s\n", p)
	}
}
