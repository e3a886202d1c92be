package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/innogames/vmseed/pkg/validation"
)

// newValidateCmd creates the validate subcommand
func newValidateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the bindings file",
		Long:  `Check the bindings file for missing or malformed values without rendering.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runValidate(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Bindings file (defaults to vmseed.yaml in the project root)")

	return cmd
}

func runValidate(configPath string) error {
	bindings, err := loadBindings(configPath)
	if err != nil {
		return err
	}

	result := validation.Validate(bindings)
	printIssues(result)

	if result.HasErrors() {
		return fmt.Errorf("validation failed with %d error(s)", result.ErrorCount())
	}

	if len(result.Issues) == 0 {
		fmt.Println("Bindings are valid.")
	} else {
		fmt.Printf("\nValidation passed with %d warning(s).\n", result.WarningCount())
	}

	return nil
}

// printIssues prints every issue with a severity prefix.
func printIssues(result *validation.Result) {
	for _, issue := range result.Issues {
		prefix := "WARNING"
		if issue.Severity == validation.SeverityError {
			prefix = "ERROR"
		}

		if issue.Field != "" {
			fmt.Printf("[%s] %s: %s\n", prefix, issue.Field, issue.Message)
		} else {
			fmt.Printf("[%s] %s\n", prefix, issue.Message)
		}
	}
}
