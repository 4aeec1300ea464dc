package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/getpkg/pkg/paths"
	"github.com/stretchr/testify/assert"
)

func TestEnvOverrides(t *testing.T) {
	t.Setenv(paths.EnvConfigDir, "/tmp/getpkg-config")
	t.Setenv(paths.EnvCacheDir, "/tmp/getpkg-cache")
	t.Setenv(paths.EnvStateDir, "/tmp/getpkg-state")

	assert.Equal(t, "/tmp/getpkg-config", paths.ConfigDir())
	assert.Equal(t, filepath.Join("/tmp/getpkg-config", "config.toml"), paths.ConfigFile())
	assert.Equal(t, "/tmp/getpkg-cache", paths.CacheDir())
	assert.Equal(t, filepath.Join("/tmp/getpkg-cache", "installers"), paths.InstallerCacheDir())
	assert.Equal(t, filepath.Join("/tmp/getpkg-state", "getpkg.log"), paths.LogFile())
}

func TestXDGDefaultsContainAppDir(t *testing.T) {
	t.Setenv(paths.EnvConfigDir, "")
	t.Setenv(paths.EnvCacheDir, "")
	t.Setenv(paths.EnvStateDir, "")

	assert.Contains(t, paths.ConfigDir(), paths.AppDirName)
	assert.Contains(t, paths.CacheDir(), paths.AppDirName)
	assert.Contains(t, paths.StateDir(), paths.AppDirName)
	assert.Contains(t, paths.DefaultManifestDir(), "manifests")
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	assert.NoError(t, paths.EnsureDir(dir))
	assert.DirExists(t, dir)
}
