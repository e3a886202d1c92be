// Package seed writes NoCloud seed directories: the rendered user-data
// next to a minimal meta-data file, ready to be attached to a VM as a
// cloud-init datasource.
package seed

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/innogames/vmseed/pkg/config"
)

const (
	// UserDataFileName is the NoCloud user-data file name.
	UserDataFileName = "user-data"
	// MetaDataFileName is the NoCloud meta-data file name.
	MetaDataFileName = "meta-data"
)

// Options control seed generation.
type Options struct {
	// InstanceID overrides the generated instance id. cloud-init re-runs
	// first-boot modules whenever the instance id changes, so a fixed id
	// gives reproducible seeds.
	InstanceID string
}

type metaData struct {
	InstanceID    string `yaml:"instance-id"`
	LocalHostname string `yaml:"local-hostname"`
}

// Write renders the bindings and writes user-data and meta-data into dir,
// creating it if needed. It returns the instance id used.
func Write(dir string, b *config.Bindings, opts Options) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create seed directory: %w", err)
	}

	userData, err := b.BuildUserData().Render()
	if err != nil {
		return "", err
	}

	instanceID := opts.InstanceID
	if instanceID == "" {
		instanceID = fmt.Sprintf("vmseed-%s", uuid.New().String())
	}

	meta, err := yaml.Marshal(metaData{
		InstanceID:    instanceID,
		LocalHostname: b.Hostname,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal meta-data: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, UserDataFileName), userData, 0644); err != nil {
		return "", fmt.Errorf("failed to write user-data: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, MetaDataFileName), meta, 0644); err != nil {
		return "", fmt.Errorf("failed to write meta-data: %w", err)
	}

	return instanceID, nil
}
