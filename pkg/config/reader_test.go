package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innogames/vmseed/pkg/userdata"
)

func TestRead(t *testing.T) {
	t.Run("parses a complete bindings file", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, DefaultFileName)

		content := `hostname: db-03
fqdn: db-03.ig.local
apt_repos:
  - filename: puppet
    source: deb https://apt.puppet.com focal puppet7
    key:
      - "-----BEGIN PGP PUBLIC KEY BLOCK-----"
      - "-----END PGP PUBLIC KEY BLOCK-----"
puppet_master: puppet.ig.local
puppet_ca: puppet-ca.ig.local
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		b, err := Read(path)
		require.NoError(t, err)

		assert.Equal(t, "db-03", b.Hostname)
		assert.Equal(t, "db-03.ig.local", b.FQDN)
		assert.Equal(t, "puppet.ig.local", b.PuppetMaster)
		assert.Equal(t, "puppet-ca.ig.local", b.PuppetCA)
		require.Len(t, b.AptRepos, 1)
		assert.Equal(t, "puppet", b.AptRepos[0].Filename)
		assert.Len(t, b.AptRepos[0].Key, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Read(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultFileName)
		require.NoError(t, os.WriteFile(path, []byte("hostname: [broken"), 0644))

		_, err := Read(path)
		assert.Error(t, err)
	})

	t.Run("embedded example parses", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultFileName)
		require.NoError(t, os.WriteFile(path, []byte(Example), 0644))

		b, err := Read(path)
		require.NoError(t, err)
		assert.NotEmpty(t, b.Hostname)
		assert.NotEmpty(t, b.FQDN)
		assert.NotEmpty(t, b.PuppetMaster)
		assert.NotEmpty(t, b.PuppetCA)
		assert.NotEmpty(t, b.AptRepos)
	})
}

func TestWrite(t *testing.T) {
	t.Run("round-trips through Read", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", DefaultFileName)

		in := &Bindings{
			Hostname: "web-01",
			FQDN:     "web-01.example.com",
			AptRepos: []userdata.AptSource{{
				Filename: "base",
				Source:   "deb https://mirror/apt stable main",
				Key:      []string{"-----BEGIN PGP PUBLIC KEY BLOCK-----", "-----END PGP PUBLIC KEY BLOCK-----"},
			}},
			PuppetMaster: "puppet.example.com",
			PuppetCA:     "puppet-ca.example.com",
		}
		require.NoError(t, Write(path, in))

		out, err := Read(path)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})
}

func TestBuildUserData(t *testing.T) {
	b := &Bindings{
		Hostname: "web-01",
		FQDN:     "web-01.example.com",
		AptRepos: []userdata.AptSource{
			{Filename: "base", Source: "deb https://mirror/apt stable main"},
			{Filename: "puppet", Source: "deb https://apt.puppet.com focal puppet7"},
		},
		PuppetMaster: "puppet.example.com",
		PuppetCA:     "puppet-ca.example.com",
	}

	u := b.BuildUserData()

	assert.Equal(t, "web-01", u.Hostname())
	assert.Equal(t, "web-01.example.com", u.FQDN())
	assert.Len(t, u.AptSources(), 2)

	cmds := u.RunCmds()
	require.Len(t, cmds, 1)
	assert.Contains(t, cmds[0], "--server=puppet.example.com")
	assert.Contains(t, cmds[0], "--ca_server=puppet-ca.example.com")
}
