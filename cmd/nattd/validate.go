package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/nattd/pkg/globalconfig"
	"github.com/jaspreet-dot-casa/nattd/pkg/validation"
)

// newValidateCmd creates the validate subcommand
func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the catalog and script template",
		Long:  `Check that every catalog entry has a usable command and that the script template carries every section placeholder.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, a)
		},
	}
}

// runValidate validates the configured catalog and template.
func runValidate(cmd *cobra.Command, a *app) error {
	out := cmd.OutOrStdout()

	source := a.cfg.CatalogPath
	if source == "" {
		source = "embedded " + a.cfg.Distro + " catalog"
	}
	templatePath, err := globalconfig.ExpandPath(a.cfg.TemplatePath)
	if err != nil {
		return err
	}

	validator := validation.NewValidator(source)
	result := validator.ValidateAll(a.loadCatalog(""), templatePath)

	// Print issues
	for _, issue := range result.Issues {
		prefix := "WARNING"
		if issue.Severity == validation.SeverityError {
			prefix = "ERROR"
		}

		if issue.Field != "" {
			fmt.Fprintf(out, "[%s] %s: %s (%s)\n", prefix, issue.File, issue.Message, issue.Field)
		} else {
			fmt.Fprintf(out, "[%s] %s: %s\n", prefix, issue.File, issue.Message)
		}
	}

	if result.HasErrors() {
		return fmt.Errorf("validation failed with %d error(s)", result.ErrorCount())
	}

	if len(result.Issues) == 0 {
		fmt.Fprintln(out, "Catalog and template are valid.")
	} else {
		fmt.Fprintf(out, "\nValidation passed with %d warning(s).\n", result.WarningCount())
	}

	return nil
}
