package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/innogames/vmseed/pkg/seed"
	"github.com/innogames/vmseed/pkg/validation"
)

// newSeedCmd creates the seed subcommand
func newSeedCmd() *cobra.Command {
	var configPath, dir, instanceID string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a NoCloud seed directory",
		Long: `Render the user-data and write it together with a meta-data file into
a NoCloud seed directory, ready to be packed into a seed image and
attached to a VM.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSeed(configPath, dir, instanceID)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Bindings file (defaults to vmseed.yaml in the project root)")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Seed output directory (required)")
	cmd.Flags().StringVar(&instanceID, "instance-id", "", "Fixed instance id (defaults to a generated one)")
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}

func runSeed(configPath, dir, instanceID string) error {
	bindings, err := loadBindings(configPath)
	if err != nil {
		return err
	}

	result := validation.Validate(bindings)
	printIssues(result)
	if result.HasErrors() {
		return fmt.Errorf("bindings invalid with %d error(s)", result.ErrorCount())
	}

	id, err := seed.Write(dir, bindings, seed.Options{InstanceID: instanceID})
	if err != nil {
		return err
	}

	fmt.Printf("Seed for %s written to %s (instance-id %s)\n", bindings.FQDN, dir, id)
	return nil
}
