// Package config handles the bindings file that feeds user-data generation.
package config

import (
	"github.com/innogames/vmseed/pkg/userdata"
)

// DefaultFileName is the bindings file vmseed looks for in the project root.
const DefaultFileName = "vmseed.yaml"

// Bindings holds every input the user-data document is rendered from.
type Bindings struct {
	// Host identity
	Hostname string `yaml:"hostname"`
	FQDN     string `yaml:"fqdn"`

	// APT repositories configured before package installation
	AptRepos []userdata.AptSource `yaml:"apt_repos"`

	// Configuration management servers the agent reports to
	PuppetMaster string `yaml:"puppet_master"`
	PuppetCA     string `yaml:"puppet_ca"`
}

// BuildUserData assembles the user-data document from the bindings.
func (b *Bindings) BuildUserData() *userdata.UserData {
	u := userdata.New(b.Hostname, b.FQDN)
	for _, repo := range b.AptRepos {
		u.AddAptSource(repo)
	}
	u.SetPuppetAgent(b.PuppetMaster, b.PuppetCA)
	return u
}
