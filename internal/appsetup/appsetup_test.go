package appsetup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MWATelescope/mwaxstats"
	"github.com/pbnjay/memory"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeFileExist(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	name, err := MakeFileExist(dir, "config.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), name)
	assert.FileExists(t, name)

	// An existing file is left alone.
	require.NoError(t, os.WriteFile(name, []byte("workers: 3\n"), 0644))
	_, err = MakeFileExist(dir, "config.yaml")
	require.NoError(t, err)
	data, _ := os.ReadFile(name)
	assert.Equal(t, "workers: 3\n", string(data))

	t.Setenv("HOME", t.TempDir())
	name, err = MakeFileExist("$HOME/.mwaxstats/logs", "updates.log")
	require.NoError(t, err)
	assert.FileExists(t, name)
}

func TestSetupViper(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	// Run from a directory without a config.yaml so only $HOME's is found.
	wd, _ := os.Getwd()
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	require.NoError(t, os.MkdirAll(filepath.Join(home, ConfigDirName), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ConfigDirName, "config.yaml"),
		[]byte("workers: 3\nverbose: true\nfringes:\n  calibrator_only: false\n"), 0644))

	v := viper.New()
	require.NoError(t, SetupViper(v))
	assert.Equal(t, 3, v.GetInt("workers"))
	assert.False(t, v.GetBool("fringes.calibrator_only"))
	assert.Equal(t, "localhost:9000", v.GetString("database.addr"))
	assert.Equal(t, mwaxstats.LevelDebug, Verbosity(v))

	v.Set("trace", true)
	assert.Equal(t, mwaxstats.LevelTrace, Verbosity(v))
}

func TestMemoryLimit(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	assert.LessOrEqual(t, MemoryLimitBytes(v), memory.TotalMemory())
	v.Set("memory_limit_gb", 2.5)
	assert.Equal(t, uint64(2_500_000_000), MemoryLimitBytes(v))
}

func TestHostname(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	h, err := Hostname(v)
	require.NoError(t, err)
	assert.NotEmpty(t, h)
	v.Set("hostname", "mwax01")
	h, _ = Hostname(v)
	assert.Equal(t, "mwax01", h)
}

func TestOpenSinksDisabled(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	s, err := OpenSinks(v, nil)
	require.NoError(t, err)
	assert.Empty(t, s.Observers())
	assert.NotNil(t, s.Metrics)
	s.Close(1, 0)
}
