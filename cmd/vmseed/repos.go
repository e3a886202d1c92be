package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newReposCmd creates the repos subcommand
func newReposCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "repos",
		Short: "List configured APT repositories",
		Long:  `List the APT repositories the rendered user-data will configure.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runRepos(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Bindings file (defaults to vmseed.yaml in the project root)")

	return cmd
}

func runRepos(configPath string) error {
	bindings, err := loadBindings(configPath)
	if err != nil {
		return err
	}

	if len(bindings.AptRepos) == 0 {
		fmt.Println("No APT repositories configured.")
		return nil
	}

	fmt.Printf("%d APT repositories:\n\n", len(bindings.AptRepos))
	for _, repo := range bindings.AptRepos {
		fmt.Printf("  %s\n", repo.Filename)
		fmt.Printf("    source: %s\n", repo.Source)
		fmt.Printf("    key:    %d lines\n", len(repo.Key))
	}

	return nil
}
