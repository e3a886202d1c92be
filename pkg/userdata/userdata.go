// Package userdata builds cloud-init user-data documents for bootstrapping
// VMs into a Puppet-managed fleet.
package userdata

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Header is the first line of every rendered document. cloud-init uses it
// to recognize user-data as cloud-config.
const Header = "#cloud-config"

// DefaultFinalMessage is written by cloud-init once the first boot has
// finished. $UPTIME is interpolated by cloud-init itself, not by vmseed.
const DefaultFinalMessage = "The system is finally up, after $UPTIME seconds"

// Packages installed on every bootstrapped VM.
var defaultPackages = []string{"puppet-agent", "puppet-msgpack"}

// Modules cloud-init runs during the config stage.
var configModules = []string{"apt-configure", "runcmd"}

// AptSource describes one APT repository: the filename it is stored under
// in /etc/apt/sources.list.d, the source line, and the lines of the armored
// GPG public key block that signs the repository.
type AptSource struct {
	Filename string   `yaml:"filename"`
	Source   string   `yaml:"source"`
	Key      []string `yaml:"key"`
}

// UserData is a cloud-init user-data document. The zero value is not
// usable; construct it with New.
type UserData struct {
	hostname     string
	fqdn         string
	sources      []AptSource
	packages     []string
	runCmds      []string
	finalMessage string
}

// New returns a user-data document for the given host with the fixed
// bootstrap skeleton filled in: apt-configure and runcmd modules, package
// update/upgrade on first boot, and the Puppet agent packages.
func New(hostname, fqdn string) *UserData {
	u := &UserData{
		hostname:     hostname,
		fqdn:         fqdn,
		finalMessage: DefaultFinalMessage,
	}
	u.packages = append(u.packages, defaultPackages...)
	return u
}

// Hostname returns the short host name.
func (u *UserData) Hostname() string { return u.hostname }

// FQDN returns the fully-qualified domain name.
func (u *UserData) FQDN() string { return u.fqdn }

// AddAptSource adds an APT repository. Adding a source with a filename
// that is already present replaces the earlier entry in place, so the
// rendered mapping has exactly one entry per filename and keeps the
// position of the first addition.
func (u *UserData) AddAptSource(src AptSource) {
	for i, existing := range u.sources {
		if existing.Filename == src.Filename {
			u.sources[i] = src
			return
		}
	}
	u.sources = append(u.sources, src)
}

// AptSources returns the configured repositories in insertion order.
func (u *UserData) AptSources() []AptSource {
	out := make([]AptSource, len(u.sources))
	copy(out, u.sources)
	return out
}

// AddPackage adds a package to be installed on first boot. Duplicates are
// ignored.
func (u *UserData) AddPackage(name string) {
	for _, p := range u.packages {
		if p == name {
			return
		}
	}
	u.packages = append(u.packages, name)
}

// Packages returns all packages that will be installed.
func (u *UserData) Packages() []string {
	out := make([]string, len(u.packages))
	copy(out, u.packages)
	return out
}

// AddRunCmd adds a command to be executed on first boot. Multiple
// arguments are joined into a single command line; metacharacters are not
// escaped.
func (u *UserData) AddRunCmd(args ...string) {
	u.runCmds = append(u.runCmds, strings.Join(args, " "))
}

// RunCmds returns all commands added with AddRunCmd.
func (u *UserData) RunCmds() []string {
	out := make([]string, len(u.runCmds))
	copy(out, u.runCmds)
	return out
}

// SetFinalMessage overrides the message cloud-init writes once the first
// boot has finished.
func (u *UserData) SetFinalMessage(msg string) {
	u.finalMessage = msg
}

// FinalMessage returns the configured final message.
func (u *UserData) FinalMessage() string { return u.finalMessage }

// document is the wire shape of the rendered YAML. Field order here is the
// order of the top-level keys in the output.
type document struct {
	CloudConfigModules []string   `yaml:"cloud_config_modules"`
	ManageEtcHosts     string     `yaml:"manage_etc_hosts"`
	Hostname           string     `yaml:"hostname"`
	FQDN               string     `yaml:"fqdn"`
	Apt                *aptConfig `yaml:"apt,omitempty"`
	PackageUpdate      bool       `yaml:"package_update"`
	PackageUpgrade     bool       `yaml:"package_upgrade"`
	Packages           []string   `yaml:"packages,omitempty"`
	RunCmd             []string   `yaml:"runcmd,omitempty"`
	FinalMessage       string     `yaml:"final_message,omitempty"`
}

type aptConfig struct {
	Sources sourceMap `yaml:"sources"`
}

// sourceMap marshals as a YAML mapping keyed by filename, preserving
// insertion order. yaml.v3 sorts plain map keys, so the node is built by
// hand.
type sourceMap []AptSource

func (m sourceMap) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, src := range m {
		entry := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		entry.Content = append(entry.Content,
			strNode("source"), strNode(src.Source),
			strNode("key"), keyBlockNode(src.Key),
		)
		node.Content = append(node.Content, strNode(src.Filename), entry)
	}
	return node, nil
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// keyBlockNode joins the key lines and forces the literal block style so
// the armored key survives as one block with consistent indentation.
func keyBlockNode(lines []string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Style: yaml.LiteralStyle,
		Value: strings.Join(lines, "\n"),
	}
}

// Render produces the cloud-init user-data document. Identical input
// produces byte-identical output.
func (u *UserData) Render() ([]byte, error) {
	doc := document{
		CloudConfigModules: configModules,
		ManageEtcHosts:     "localhost",
		Hostname:           u.hostname,
		FQDN:               u.fqdn,
		PackageUpdate:      true,
		PackageUpgrade:     true,
		Packages:           u.packages,
		RunCmd:             u.runCmds,
		FinalMessage:       u.finalMessage,
	}
	if len(u.sources) > 0 {
		doc.Apt = &aptConfig{Sources: sourceMap(u.sources)}
	}

	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n")

	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to marshal user-data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize user-data: %w", err)
	}

	return []byte(b.String()), nil
}
