package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/kmacinski/pocket/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "pocket dev\n", out.String())
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pocket", "config.yml")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"config", "init", "--config", path})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Menu, cfg.Menu)

	// A second init refuses to clobber the file
	root = newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"config", "init", "--config", path})
	assert.Error(t, root.Execute())

	root = newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"config", "init", "--config", path, "--force"})
	assert.NoError(t, root.Execute())
}

func TestRootRejectsArgs(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"https://example.com"})
	assert.Error(t, root.Execute())
}

func TestRootRejectsNegativeSeed(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "config.yml"), "--seed=-1"})

	err := root.Execute()
	assert.ErrorContains(t, err, "seed must not be negative")
}
