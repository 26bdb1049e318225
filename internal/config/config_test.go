package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TRACKER_AUTH_SECRET", "s3cret")
	t.Setenv("TRACKER_DATABASE_DRIVER", "sqlite")
	t.Setenv("TRACKER_DATABASE_DSN", "tracker.db")
	t.Setenv("TRACKER_PORT", "8080")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Auth.Secret)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "tracker.db", cfg.Database.DSN)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 60*time.Minute, cfg.Auth.VerificationTTL)
	assert.Equal(t, "log", cfg.Mail.Driver)
	assert.Equal(t, 4, cfg.Mail.Workers)
}

func TestLoad_ReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "tracker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
auth:
  secret: from-file
  verification_ttl: 15m
mail:
  driver: smtp
  host: mail.internal
  port: 2525
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Auth.Secret)
	assert.Equal(t, 15*time.Minute, cfg.Auth.VerificationTTL)
	assert.Equal(t, "smtp", cfg.Mail.Driver)
	assert.Equal(t, "mail.internal", cfg.Mail.Host)
	assert.Equal(t, 2525, cfg.Mail.Port)
}

func TestLoad_RequiresSecret(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TRACKER_AUTH_SECRET", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRACKER_AUTH_SECRET")
}

func TestValidate_RejectsUnknownDrivers(t *testing.T) {
	cfg := Config{
		Database: DatabaseConfig{Driver: "mysql"},
		Auth:     AuthConfig{Secret: "x", VerificationTTL: time.Minute},
		Mail:     MailConfig{Driver: "log"},
	}
	assert.Error(t, cfg.Validate())

	cfg.Database.Driver = "sqlite"
	cfg.Mail.Driver = "pigeon"
	assert.Error(t, cfg.Validate())

	cfg.Mail.Driver = "smtp"
	assert.NoError(t, cfg.Validate())
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
