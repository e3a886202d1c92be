package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/innogames/vmseed/pkg/config"
)

// newInitCmd creates the init subcommand
func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Scaffold a bindings file",
		Long:  `Write an example bindings file to the given path (default vmseed.yaml).`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := config.DefaultFileName
			if len(args) > 0 {
				path = args[0]
			}
			return runInit(path)
		},
	}
}

func runInit(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists, refusing to overwrite", path)
	}

	if err := os.WriteFile(path, []byte(config.Example), 0644); err != nil {
		return fmt.Errorf("failed to write bindings file: %w", err)
	}

	fmt.Printf("Wrote example bindings to %s\n", path)
	fmt.Println("Edit the host identity, repositories, and Puppet servers, then run:")
	fmt.Printf("  vmseed render -c %s\n", path)
	return nil
}
