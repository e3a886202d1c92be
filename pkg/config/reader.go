package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Read loads bindings from a YAML file. Missing or empty fields are left
// at their zero values; completeness is checked by pkg/validation, not
// here.
func Read(path string) (*Bindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bindings file: %w", err)
	}

	var b Bindings
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &b, nil
}
