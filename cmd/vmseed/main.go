// Package main provides the vmseed CLI for generating cloud-init user-data
// that bootstraps VMs into a Puppet-managed fleet.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/innogames/vmseed/pkg/config"
	"github.com/innogames/vmseed/pkg/project"
)

// version is set via -ldflags during build
var version = "dev"

var debug bool

func main() {
	rootCmd := newRootCmd()

	// Cobra handles error printing
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command for vmseed
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vmseed",
		Short: "Cloud-init user-data generator for Puppet-managed VMs",
		Long: `vmseed generates the cloud-init user-data used to bootstrap virtual
machines on first boot: hostname and fqdn, extra APT repositories with
their signing keys, the Puppet agent packages, and the first-boot agent
run against the configured master and CA servers.

Bindings live in a vmseed.yaml file; see 'vmseed init'.`,
		Version: version,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newRenderCmd(),
		newValidateCmd(),
		newSeedCmd(),
		newReposCmd(),
		newInitCmd(),
		newCreateCmd(),
	)

	return rootCmd
}

// resolveBindingsPath returns the bindings file to use: the explicit flag
// value if given, otherwise the default file in the project root.
func resolveBindingsPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	projectRoot, err := project.FindRoot()
	if err != nil {
		return "", fmt.Errorf("could not find project root: %w", err)
	}

	path := filepath.Join(projectRoot, config.DefaultFileName)
	logrus.Debugf("using bindings file %s", path)
	return path, nil
}

// loadBindings resolves and reads the bindings file.
func loadBindings(flagValue string) (*config.Bindings, error) {
	path, err := resolveBindingsPath(flagValue)
	if err != nil {
		return nil, err
	}
	return config.Read(path)
}
