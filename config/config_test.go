package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 11, cfg.Readings.HeaderLines)
	assert.Equal(t, "2024-09-15", cfg.Readings.Cutoff)
	assert.Equal(t, 0.61, cfg.Pricing.DefaultPrice)
	assert.Equal(t, 2*time.Hour, cfg.Sessions.TTL)
	assert.True(t, cfg.Sessions.AutoCreate)
	assert.False(t, cfg.Storage.Enabled)
	assert.Empty(t, cfg.Server.APIKey)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "meter.yaml")
	content := `
server:
  port: 8080
readings:
  header_lines: 3
  cutoff: ""
pricing:
  default_price: 0.45
sessions:
  ttl: 30m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("PORT", "9090")
	t.Setenv("API_KEY", "secret")
	t.Setenv("METER_SERVICE_SESSIONS_MAX_SESSIONS", "5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port, "env wins over file")
	assert.Equal(t, "secret", cfg.Server.APIKey)
	assert.Equal(t, 3, cfg.Readings.HeaderLines)
	assert.Equal(t, 0.45, cfg.Pricing.DefaultPrice)
	assert.Equal(t, 30*time.Minute, cfg.Sessions.TTL)
	assert.Equal(t, 5, cfg.Sessions.MaxSessions)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("readings:\n  cutoff: 15/09/2024\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "readings.cutoff")
}

func TestLoad_DefaultPriceMustBePositive(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	for name, value := range map[string]string{"zero": "0", "negative": "-0.2", "nan": ".nan"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte("pricing:\n  default_price: "+value+"\n"), 0o644))

			_, err := Load(path)
			assert.ErrorContains(t, err, "pricing.default_price")
		})
	}
}

func TestReadingsConfig_Times(t *testing.T) {
	rc := ReadingsConfig{Cutoff: "2024-09-15", Timezone: "Europe/Zagreb"}
	loc, err := rc.Location()
	require.NoError(t, err)

	cutoff, err := rc.CutoffTime(loc)
	require.NoError(t, err)
	assert.Equal(t, 15, cutoff.Day())
	assert.Equal(t, "Europe/Zagreb", cutoff.Location().String())

	empty, err := ReadingsConfig{}.CutoffTime(time.UTC)
	require.NoError(t, err)
	assert.True(t, empty.IsZero())
}

func TestLoadDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nexport METER_TEST_A=\"one\"\nMETER_TEST_B=two\n"), 0o644))
	t.Setenv("METER_TEST_B", "preset")
	os.Unsetenv("METER_TEST_A")
	t.Cleanup(func() { os.Unsetenv("METER_TEST_A") })

	require.NoError(t, loadDotEnvFile(path))
	assert.Equal(t, "one", os.Getenv("METER_TEST_A"))
	assert.Equal(t, "preset", os.Getenv("METER_TEST_B"))
}
