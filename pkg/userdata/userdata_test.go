package userdata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var testKey = []string{
	"-----BEGIN PGP PUBLIC KEY BLOCK-----",
	"Version: GnuPG v1",
	"",
	"mQINBFe2Iz4BEADqbv/nWmR26bsivTDOLqrfBEvRu9kSfDMzYh9Bmik1A8Z036Eg",
	"-----END PGP PUBLIC KEY BLOCK-----",
}

func testUserData() *UserData {
	u := New("aw-reserved", "aw-reserved.ig.local")
	u.AddAptSource(AptSource{
		Filename: "puppet",
		Source:   "deb https://apt.puppet.com stable main",
		Key:      testKey,
	})
	u.SetPuppetAgent("puppet-master.ig.local", "puppet-ca.ig.local")
	return u
}

func TestRender(t *testing.T) {
	t.Run("starts with cloud-config header", func(t *testing.T) {
		out, err := testUserData().Render()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(out), "#cloud-config\n"))
	})

	t.Run("is deterministic", func(t *testing.T) {
		first, err := testUserData().Render()
		require.NoError(t, err)
		second, err := testUserData().Render()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("includes fixed skeleton", func(t *testing.T) {
		out, err := testUserData().Render()
		require.NoError(t, err)

		var doc struct {
			CloudConfigModules []string `yaml:"cloud_config_modules"`
			ManageEtcHosts     string   `yaml:"manage_etc_hosts"`
			Hostname           string   `yaml:"hostname"`
			FQDN               string   `yaml:"fqdn"`
			PackageUpdate      bool     `yaml:"package_update"`
			PackageUpgrade     bool     `yaml:"package_upgrade"`
			Packages           []string `yaml:"packages"`
			FinalMessage       string   `yaml:"final_message"`
		}
		require.NoError(t, yaml.Unmarshal(out, &doc))

		assert.Equal(t, []string{"apt-configure", "runcmd"}, doc.CloudConfigModules)
		assert.Equal(t, "localhost", doc.ManageEtcHosts)
		assert.Equal(t, "aw-reserved", doc.Hostname)
		assert.Equal(t, "aw-reserved.ig.local", doc.FQDN)
		assert.True(t, doc.PackageUpdate)
		assert.True(t, doc.PackageUpgrade)
		assert.Equal(t, []string{"puppet-agent", "puppet-msgpack"}, doc.Packages)
		assert.Contains(t, doc.FinalMessage, "$UPTIME")
	})

	t.Run("keeps top-level key order", func(t *testing.T) {
		out, err := testUserData().Render()
		require.NoError(t, err)

		keys := []string{
			"cloud_config_modules:",
			"manage_etc_hosts:",
			"hostname:",
			"fqdn:",
			"apt:",
			"package_update:",
			"package_upgrade:",
			"packages:",
			"runcmd:",
			"final_message:",
		}
		last := -1
		for _, key := range keys {
			idx := strings.Index(string(out), "\n"+key)
			require.NotEqual(t, -1, idx, "missing top-level key %s", key)
			assert.Greater(t, idx, last, "key %s out of order", key)
			last = idx
		}
	})
}

func TestAptSources(t *testing.T) {
	t.Run("one mapping entry per repo keyed by filename", func(t *testing.T) {
		u := New("host", "host.example.com")
		u.AddAptSource(AptSource{Filename: "base", Source: "deb https://mirror/apt stable main", Key: testKey})
		u.AddAptSource(AptSource{Filename: "puppet", Source: "deb https://apt.puppet.com stable main", Key: testKey})

		out, err := u.Render()
		require.NoError(t, err)

		var doc struct {
			Apt struct {
				Sources map[string]struct {
					Source string `yaml:"source"`
					Key    string `yaml:"key"`
				} `yaml:"sources"`
			} `yaml:"apt"`
		}
		require.NoError(t, yaml.Unmarshal(out, &doc))

		require.Len(t, doc.Apt.Sources, 2)
		assert.Equal(t, "deb https://mirror/apt stable main", doc.Apt.Sources["base"].Source)
		assert.Equal(t, "deb https://apt.puppet.com stable main", doc.Apt.Sources["puppet"].Source)
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		u := New("host", "host.example.com")
		u.AddAptSource(AptSource{Filename: "zz-extra", Source: "deb https://mirror/extra stable main", Key: testKey})
		u.AddAptSource(AptSource{Filename: "aa-base", Source: "deb https://mirror/base stable main", Key: testKey})

		out, err := u.Render()
		require.NoError(t, err)

		// yaml.v3 would sort a plain map; zz-extra must still come first.
		assert.Less(t,
			strings.Index(string(out), "zz-extra:"),
			strings.Index(string(out), "aa-base:"),
		)
	})

	t.Run("same filename replaces in place", func(t *testing.T) {
		u := New("host", "host.example.com")
		u.AddAptSource(AptSource{Filename: "puppet", Source: "deb https://old/apt stable main", Key: testKey})
		u.AddAptSource(AptSource{Filename: "other", Source: "deb https://mirror/apt stable main", Key: testKey})
		u.AddAptSource(AptSource{Filename: "puppet", Source: "deb https://new/apt stable main", Key: testKey})

		sources := u.AptSources()
		require.Len(t, sources, 2)
		assert.Equal(t, "puppet", sources[0].Filename)
		assert.Equal(t, "deb https://new/apt stable main", sources[0].Source)
		assert.Equal(t, "other", sources[1].Filename)
	})

	t.Run("key renders as literal block and round-trips", func(t *testing.T) {
		out, err := testUserData().Render()
		require.NoError(t, err)

		assert.Contains(t, string(out), "key: |")

		var doc struct {
			Apt struct {
				Sources map[string]struct {
					Key string `yaml:"key"`
				} `yaml:"sources"`
			} `yaml:"apt"`
		}
		require.NoError(t, yaml.Unmarshal(out, &doc))

		block := doc.Apt.Sources["puppet"].Key
		lines := strings.Split(strings.TrimSuffix(block, "\n"), "\n")
		assert.Equal(t, testKey, lines)
	})
}

func TestSetPuppetAgent(t *testing.T) {
	u := New("web-01", "web-01.example.com")
	u.SetPuppetAgent("puppet.example.com", "puppet-ca.example.com")

	cmds := u.RunCmds()
	require.Len(t, cmds, 1)
	cmd := cmds[0]

	assert.True(t, strings.HasPrefix(cmd, "puppet agent "))
	for _, flag := range []string{
		"--detailed-exitcodes",
		"--no-report",
		"--waitforcert=60",
		"--onetime",
		"--no-daemonize",
		"--verbose",
		"--fqdn=web-01.example.com",
		"--server=puppet.example.com",
		"--ca_server=puppet-ca.example.com",
	} {
		assert.Contains(t, cmd, flag)
	}
}

func TestAddPackage(t *testing.T) {
	u := New("host", "host.example.com")
	u.AddPackage("htop")
	u.AddPackage("htop")

	assert.Equal(t, []string{"puppet-agent", "puppet-msgpack", "htop"}, u.Packages())
}
