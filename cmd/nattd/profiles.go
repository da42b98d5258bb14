package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jaspreet-dot-casa/nattd/pkg/config"
	"github.com/jaspreet-dot-casa/nattd/pkg/tui"
	"github.com/jaspreet-dot-casa/nattd/pkg/utils"
)

// newProfilesCmd creates the profiles command group
func newProfilesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profiles",
		Aliases: []string{"profile"},
		Short:   "Manage saved selection profiles",
		Long: `Profiles are named sets of selections that can be reused with
"nattd build --profile" or "nattd generate --profile". Built-in profiles
ship with nattd and cannot be changed.`,
	}

	cmd.AddCommand(
		newProfilesListCmd(a),
		newProfilesShowCmd(a),
		newProfilesSaveCmd(a),
		newProfilesDeleteCmd(a),
	)

	return cmd
}

func newProfilesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			list, err := a.profileStore().List()
			if err != nil {
				return err
			}

			for _, p := range list {
				kind := fmt.Sprintf("used %s", utils.FormatTimeAgo(p.LastUsedAt))
				if p.IsBuiltIn {
					kind = "built-in"
				}
				fmt.Fprintf(out, "%s  %d selections, %s\n", tui.TitleStyle.Render(p.Name), len(p.Selections), kind)
				if p.Description != "" {
					fmt.Fprintf(out, "  %s\n", p.Description)
				}
			}
			return nil
		},
	}
}

func newProfilesShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Print a profile as a build file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.profileStore().Get(args[0])
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(config.FromProfile(p))
			if err != nil {
				return fmt.Errorf("failed to marshal profile: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newProfilesSaveCmd(a *app) *cobra.Command {
	var (
		source      sourceFlags
		description string
	)

	cmd := &cobra.Command{
		Use:   "save NAME [selection...]",
		Short: "Save selections as a profile",
		Long: `Save selections given as arguments, a build file or another profile under
NAME. An existing profile with the same name is replaced.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := source.load(a, args[1:])
			if err != nil {
				return err
			}

			// Reject selections the catalog does not know
			if _, err := a.prepare(cfg); err != nil {
				return fmt.Errorf("invalid selections: %w", err)
			}

			p, err := a.profileStore().Put(cfg.ToProfile(args[0], description))
			if err != nil {
				return fmt.Errorf("failed to save profile: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Profile %q saved with %d selections\n",
				tui.SuccessStyle.Render("✓"), p.Name, len(p.Selections))
			return nil
		},
	}

	source.register(cmd)
	cmd.Flags().StringVarP(&description, "description", "d", "", "Profile description")

	return cmd
}

func newProfilesDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete NAME",
		Aliases: []string{"rm"},
		Short:   "Delete a saved profile",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.profileStore().Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Profile %q deleted\n", tui.SuccessStyle.Render("✓"), args[0])
			return nil
		},
	}
}
