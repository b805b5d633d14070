package main

import (
	"github.com/spf13/cobra"

	"github.com/stackforge-dev/stackforge/internal/domain/entities"
	"github.com/stackforge-dev/stackforge/internal/domain/values"
)

func newAddCmd() *cobra.Command {
	flags := &scaffoldFlags{}
	var targetDir string

	cmd := &cobra.Command{
		Use:   "add <component>...",
		Short: "Add components to an existing project",
		Long: `Add components to a project created by stackforge. Files that already
exist are preserved; the compose file and devcontainer are merged with the
new services. Previously recorded components, versions and port assignments
stay exactly as they are.

Examples:
  # Add a cache to the current project
  stackforge add redis --deps

  # Add a vector store to a project elsewhere
  stackforge add chroma --dir ./myapp`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			uc, _, err := newScaffoldUseCase()
			if err != nil {
				return err
			}

			result, err := uc.Execute(entities.Selection{
				TargetDir:        targetDir,
				Mode:             values.ModeAdd,
				Components:       append(args, flags.components...),
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
	cmd.Flags().StringVarP(&targetDir, "dir", "d", ".", "Project directory")
	return cmd
}

func init() {
	rootCmd.AddCommand(newAddCmd())
}
