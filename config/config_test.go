package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/coreos/pkg/capnslog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingFileMeansDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, []string{"main", "add", "sub"}, cfg.KnownFunctions)
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	want := Config{KnownFunctions: []string{"main"}, Probe: "total", LogLevel: "DEBUG"}
	require.NoError(t, Write(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.Error(t, Write(path, want), "existing file must not be overwritten")
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, ioutil.WriteFile(path, []byte("Probe: x\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "x", cfg.Probe)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, Default().KnownFunctions, cfg.KnownFunctions)
}

func TestMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, ioutil.WriteFile(path, []byte("KnownFunctions: [main\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLevel(t *testing.T) {
	l, err := Config{LogLevel: "DEBUG"}.Level()
	require.NoError(t, err)
	assert.Equal(t, capnslog.DEBUG, l)

	_, err = Config{LogLevel: "LOUD"}.Level()
	assert.Error(t, err)
}
