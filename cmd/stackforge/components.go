package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stackforge-dev/stackforge/internal/registry"
)

func newComponentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "List the available components",
		RunE: func(_ *cobra.Command, _ []string) error {
			reg, err := registry.Load()
			if err != nil {
				return fmt.Errorf("loading component catalog: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCATEGORY\tVERSION\tDESCRIPTION")
			for _, c := range reg.All() {
				version := "-"
				if c.HasVersionKey() {
					version = c.DefaultVersion
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Category.String(), version, c.Description)
			}
			return w.Flush()
		},
	}
}

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the available profiles",
		RunE: func(_ *cobra.Command, _ []string) error {
			reg, err := registry.Load()
			if err != nil {
				return fmt.Errorf("loading component catalog: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCOMPONENTS\tDESCRIPTION")
			for _, p := range reg.Profiles() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, strings.Join(p.Components, ","), p.Description)
			}
			return w.Flush()
		},
	}
}

func init() {
	rootCmd.AddCommand(newComponentsCmd())
	rootCmd.AddCommand(newProfilesCmd())
}
