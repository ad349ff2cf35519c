package cli

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVList(t *testing.T) {
	var l KVList
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	fs.Var(&l, "set", "override")
	require.NoError(t, fs.Parse([]string{"-set", "n=32", "-set", " t_mean = 2.5 ", "-set", "n=48"}))
	assert.Equal(t, map[string]string{"n": "48", "t_mean": "2.5"}, l.Map())
	assert.Equal(t, "n=32, t_mean = 2.5 ,n=48", l.String())

	require.Error(t, fs.Parse([]string{"-set", "broken"}))
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("", "", map[string]string{"n": "12"})
	require.NoError(t, err)
	assert.Equal(t, "ising", cfg.Model)
	assert.Equal(t, 12, cfg.Size)

	cfg, err = LoadConfig("", "twostate", nil)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Size)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: twostate\nsize: 10\n"), 0o644))

	cfg, err := LoadConfig(path, "", map[string]string{"mc_steps": "50"})
	require.NoError(t, err)
	assert.Equal(t, "twostate", cfg.Model)
	assert.Equal(t, 10, cfg.Size)
	assert.Equal(t, 50, cfg.MCSteps)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), "", nil)
	require.Error(t, err)
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())
	NewLogger(&buf, true).Debug("shown", "k", 1)
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "k=1")
}
