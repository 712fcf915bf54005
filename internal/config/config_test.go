package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.json"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 10, cfg.OTPExpiryMinutes)
	assert.Equal(t, 10*time.Minute, cfg.OTPExpiry())
	assert.True(t, cfg.MailSimulate, "missing mail credentials must force simulate mode")
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"PORT": "8000", "OTP_EXPIRY_MINUTES": 5}`), 0644))

	t.Setenv("CONFIG_FILE", file)
	t.Setenv("PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port, "environment must win over the file")
	assert.Equal(t, 5, cfg.OTPExpiryMinutes, "file must win over defaults")
}

func TestMailSimulateOnlyWithCredentials(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.json"))
	t.Setenv("MAIL_USERNAME", "bot@example.com")
	t.Setenv("MAIL_PASSWORD", "app-password")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.MailSimulate)
}

func TestMailSimulateExplicit(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.json"))
	t.Setenv("MAIL_USERNAME", "bot@example.com")
	t.Setenv("MAIL_PASSWORD", "app-password")
	t.Setenv("MAIL_SIMULATE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.MailSimulate)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.json"))
	t.Setenv("OTP_EXPIRY_MINUTES", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(file, []byte("{not json"), 0644))
	t.Setenv("CONFIG_FILE", file)

	_, err := Load()
	assert.Error(t, err)
}
