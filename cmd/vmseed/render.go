package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/innogames/vmseed/pkg/validation"
)

// newRenderCmd creates the render subcommand
func newRenderCmd() *cobra.Command {
	var configPath, outputPath string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render cloud-init user-data from the bindings file",
		Long: `Validate the bindings file and render the cloud-init user-data
document. The document is written to stdout unless --output is given.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runRender(configPath, outputPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Bindings file (defaults to vmseed.yaml in the project root)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (defaults to stdout)")

	return cmd
}

func runRender(configPath, outputPath string) error {
	bindings, err := loadBindings(configPath)
	if err != nil {
		return err
	}

	result := validation.Validate(bindings)
	printIssues(result)
	if result.HasErrors() {
		return fmt.Errorf("bindings invalid with %d error(s)", result.ErrorCount())
	}

	logrus.Debugf("rendering user-data for %s", bindings.FQDN)
	out, err := bindings.BuildUserData().Render()
	if err != nil {
		return err
	}

	if outputPath == "" {
		fmt.Print(string(out))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Printf("Wrote user-data for %s to %s\n", bindings.FQDN, outputPath)
	return nil
}
