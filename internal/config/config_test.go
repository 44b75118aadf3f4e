package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pelicanchess/pelican/internal/engine"
)

func TestLoadAndApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pelican.toml")
	content := `
net = "weights.bin"

[options]
Threads = 4
Hash = 128
RfpMargin = 50
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "weights.bin", f.Net)

	options := engine.DefaultOptions()
	require.NoError(t, f.Apply(&options))
	require.Equal(t, 4, options.Threads)
	require.Equal(t, 128, options.Hash)
	require.Equal(t, 50, options.RfpMargin)
}

func TestApplyRejectsOutOfRange(t *testing.T) {
	f := &File{Options: map[string]int64{"Threads": 10000}}
	options := engine.DefaultOptions()
	require.Error(t, f.Apply(&options))
}

func TestApplyRejectsUnknownOption(t *testing.T) {
	f := &File{Options: map[string]int64{"NoSuchOption": 1}}
	options := engine.DefaultOptions()
	require.Error(t, f.Apply(&options))
}

func TestLoadMissingDefaultIsEmpty(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, os.Chdir(t.TempDir()))

	f, err := Load(DefaultPath)
	require.NoError(t, err)
	require.Empty(t, f.Options)
}
