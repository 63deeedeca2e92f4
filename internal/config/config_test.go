package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "api_url: https://agri.example.org/api\ntimeout: 3s\nitems_per_page: 2\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://agri.example.org/api", cfg.APIURL)
	require.Equal(t, 3*time.Second, cfg.Timeout)
	require.Equal(t, 2, cfg.ItemsPerPage)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsNegativePageSize(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items_per_page: -1\n"), 0o600))

	_, err := Load(path)
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "items_per_page", verr.Field)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Offline = true
	cfg.ItemsPerPage = 8
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestDirHonoursXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := Dir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, appName), got)
}

func TestSaveSessionKeepsOtherSettings(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items_per_page: 3\n"), 0o600))

	require.NoError(t, SaveSession(path, " tok-1 ", "vendor"))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3, cfg.ItemsPerPage)
	require.Equal(t, "tok-1", cfg.Token)
	require.Equal(t, "vendor", cfg.Role)
	require.True(t, cfg.Authenticated())

	require.NoError(t, SaveSession(path, "", "vendor"))
	cfg, err = Load(path)
	require.NoError(t, err)
	require.False(t, cfg.Authenticated())
	require.Empty(t, cfg.Role)
	require.Equal(t, 3, cfg.ItemsPerPage)
}

func TestLogPathUnderConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := LogPath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, appName, logFile), got)
}
