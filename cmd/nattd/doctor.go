package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/nattd/pkg/doctor"
	"github.com/jaspreet-dot-casa/nattd/pkg/tui"
)

// newDoctorCmd creates the doctor subcommand
func newDoctorCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check this machine can run generated scripts",
		Long: `Check for the tools generated scripts rely on (bash, sudo, dnf, flatpak)
and for a clipboard helper used by the preview. With --fix, missing tools
that have a fix command are installed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			checker := doctor.NewChecker()

			var groups []doctor.CheckGroup
			check := func() { groups = checker.CheckAll() }
			if isTerminal(out) {
				if err := spinner.New().Title("Checking tools...").Action(check).Run(); err != nil {
					return fmt.Errorf("spinner error: %w", err)
				}
			} else {
				check()
			}

			return runDoctor(out, groups, doctor.NewFixer(), fix)
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Run fix commands for missing tools")

	return cmd
}

func statusIcon(s doctor.CheckStatus) string {
	switch s {
	case doctor.StatusOK:
		return tui.SuccessStyle.Render("✓")
	case doctor.StatusWarning:
		return tui.WarningStyle.Render("!")
	default:
		return tui.ErrorStyle.Render("✗")
	}
}

// runDoctor prints every check and optionally runs fixes.
func runDoctor(out io.Writer, groups []doctor.CheckGroup, fixer *doctor.Fixer, fix bool) error {
	for _, group := range groups {
		fmt.Fprintf(out, "%s - %s\n", tui.TitleStyle.Render(group.Name), group.Description)
		for _, check := range group.Checks {
			fmt.Fprintf(out, "  %s %-10s %s\n", statusIcon(check.Status), check.Name, check.Message)
			if check.Status == doctor.StatusOK || check.FixCommand == nil {
				continue
			}
			if !fix {
				fmt.Fprintf(out, "      fix: %s\n", tui.CodeStyle.Render(check.FixCommand.Command))
				continue
			}
			fmt.Fprintf(out, "      running: %s\n", check.FixCommand.Command)
			if err := fixer.RunFix(check.FixCommand); err != nil {
				fmt.Fprintf(out, "      %s %v\n", tui.ErrorStyle.Render("✗"), err)
			}
		}
		fmt.Fprintln(out)
	}

	summary := doctor.GetSummary(groups)
	fmt.Fprintf(out, "%d/%d checks passed", summary.OK, summary.Total)
	if summary.Warnings > 0 {
		fmt.Fprintf(out, ", %d warning(s)", summary.Warnings)
	}
	fmt.Fprintln(out)

	if doctor.HasIssues(groups) && !fix {
		return fmt.Errorf("%d required tool(s) missing", summary.Missing+summary.Errors)
	}
	return nil
}
