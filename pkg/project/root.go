// Package project provides utilities for working with the project structure.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/innogames/vmseed/pkg/config"
)

// FindRoot finds the project root by walking up from the current working
// directory, looking for a bindings file or go.mod.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findRootFrom(cwd)
}

func findRootFrom(start string) (string, error) {
	dir := start
	for {
		bindings := filepath.Join(dir, config.DefaultFileName)
		if _, err := os.Stat(bindings); err == nil {
			return dir, nil
		}

		goMod := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goMod); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("could not find project root (looked for %s or go.mod)", config.DefaultFileName)
}
