package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/nattd/pkg/catalog"
	"github.com/jaspreet-dot-casa/nattd/pkg/tui"
)

// newCatalogCmd creates the catalog subcommand
func newCatalogCmd(a *app) *cobra.Command {
	var (
		distro   string
		category string
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List available entries",
		Long:  `List every category, group and entry in the catalog with the paths used to select them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCatalog(cmd, a, distro, category)
		},
	}

	cmd.Flags().StringVar(&distro, "distro", "", "Catalog distribution (defaults to the configured distro)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only list one category")

	return cmd
}

// runCatalog lists all entries of the catalog.
func runCatalog(cmd *cobra.Command, a *app, distro, category string) error {
	out := cmd.OutOrStdout()
	cat := a.loadCatalog(distro)

	if cat.IsEmpty() {
		return fmt.Errorf("catalog for %q is empty or unavailable", cat.Distro)
	}

	categories := cat.Categories
	if category != "" {
		c := cat.Category(category)
		if c == nil {
			return fmt.Errorf("unknown category %q (available: %s)", category, strings.Join(cat.Keys(), ", "))
		}
		categories = []catalog.Category{*c}
	}

	fmt.Fprintf(out, "Found %d entries in the %s catalog:\n\n", cat.EntryCount(), cat.Distro)

	for _, c := range categories {
		fmt.Fprintf(out, "%s (%s):\n", tui.TitleStyle.Render(c.Name), c.Key)
		for _, sub := range c.Subcategories {
			indent := "  "
			if len(c.Subcategories) > 1 || sub.Key != c.Key {
				fmt.Fprintf(out, "  %s:\n", sub.Name)
				indent = "    "
			}
			for _, e := range sub.Entries {
				path := c.Key + "/" + sub.Key + "/" + e.Key
				desc := e.Description
				if desc == "" {
					desc = "(no description)"
				}
				fmt.Fprintf(out, "%s- %s: %s\n", indent, e.Name, desc)
				fmt.Fprintf(out, "%s  %s\n", indent, tui.CodeStyle.Render(path))
				if e.HasInstallationTypes() {
					fmt.Fprintf(out, "%s  types: %s\n", indent, strings.Join(e.InstallationTypeKeys(), ", "))
				}
			}
		}
		fmt.Fprintln(out)
	}

	return nil
}
