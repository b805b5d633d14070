package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/stackforge-dev/stackforge/internal/domain/entities"
	"github.com/stackforge-dev/stackforge/internal/domain/values"
	"github.com/stackforge-dev/stackforge/internal/registry"
)

func newNewCmd() *cobra.Command {
	flags := &scaffoldFlags{}
	var noInteractive bool

	cmd := &cobra.Command{
		Use:   "new <directory>",
		Short: "Create a new project",
		Long: `Create a new project in a fresh directory. The directory must not exist
yet (or must be empty); the tree is staged next to it and published with a
single atomic rename, so an interrupted run leaves nothing behind.

Examples:
  # A backend with PostgreSQL, with manifests and example code
  stackforge new myapp -c fastapi,postgresql --deps --examples

  # Start from a profile and pin the Python version
  stackforge new myapp -p ai-llm --set python_version=3.13

  # Pick components interactively
  stackforge new myapp`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			uc, reg, err := newScaffoldUseCase()
			if err != nil {
				return err
			}

			if len(flags.components) == 0 && flags.profile == "" && !noInteractive {
				if err := promptSelection(reg, flags); err != nil {
					return err
				}
			}

			result, err := uc.Execute(entities.Selection{
				TargetDir:        args[0],
				Mode:             values.ModeCreate,
				Components:       flags.components,
				Profile:          flags.profile,
				VersionOverrides: flags.overrides,
				Flags:            flags.featureFlags(),
			})
			if err != nil {
				return err
			}
			reportResult(result)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&noInteractive, "no-interactive", false, "Fail instead of prompting when nothing is selected")
	return cmd
}

// promptSelection asks for components when the command line names none.
func promptSelection(reg *registry.Registry, flags *scaffoldFlags) error {
	var options []huh.Option[string]
	for _, c := range reg.All() {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", c.Name, c.Description), c.ID))
	}

	err := huh.NewMultiSelect[string]().
		Title("Select components").
		Options(options...).
		Value(&flags.components).
		Run()
	if err != nil {
		return err
	}

	err = huh.NewConfirm().
		Title("Include dependency manifests?").
		Value(&flags.deps).
		Run()
	if err != nil {
		return err
	}

	return huh.NewConfirm().
		Title("Include example code?").
		Value(&flags.examples).
		Run()
}

func init() {
	rootCmd.AddCommand(newNewCmd())
}
