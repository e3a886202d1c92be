package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/innogames/vmseed/pkg/config"
	"github.com/innogames/vmseed/pkg/tui"
)

// newCreateCmd creates the create subcommand
func newCreateCmd() *cobra.Command {
	var configPath, outputPath string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Interactive bindings wizard",
		Long: `Launch the interactive wizard to configure host identity and the
Puppet servers, then write the bindings file and render the user-data.

An existing bindings file pre-fills the wizard; its APT repositories are
kept as-is.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runCreate(configPath, outputPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Bindings file (defaults to vmseed.yaml in the project root)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Also render user-data to this file")

	return cmd
}

func runCreate(configPath, outputPath string) error {
	path, err := resolveBindingsPath(configPath)
	if err != nil {
		// No project root yet; fall back to a fresh file in the working
		// directory.
		path = config.DefaultFileName
	}

	var defaults *config.Bindings
	if _, statErr := os.Stat(path); statErr == nil {
		defaults, err = config.Read(path)
		if err != nil {
			return err
		}
	}

	bindings, err := tui.Run(defaults)
	if err != nil {
		return err
	}

	if err := config.Write(path, bindings); err != nil {
		return err
	}

	fmt.Println("\nConfiguration Summary:")
	fmt.Printf("  Hostname:       %s\n", bindings.Hostname)
	fmt.Printf("  FQDN:           %s\n", bindings.FQDN)
	fmt.Printf("  Puppet master:  %s\n", bindings.PuppetMaster)
	fmt.Printf("  Puppet CA:      %s\n", bindings.PuppetCA)
	fmt.Printf("  APT repos:      %d configured\n", len(bindings.AptRepos))
	fmt.Printf("\nWrote bindings to %s\n", path)

	if outputPath != "" {
		return runRender(path, outputPath)
	}

	fmt.Println("\nTo render the user-data, run:")
	fmt.Printf("  vmseed render -c %s\n", path)
	return nil
}
