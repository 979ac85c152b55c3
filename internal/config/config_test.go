package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Environment: "development",
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		Database: DatabaseConfig{
			Path: "/some/path/devflow.db",
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	err := validConfig().Validate()
	assert.NoError(t, err)
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"DEBUG", true},  // case insensitive
		{"INFO", true},   // case insensitive
		{"trace", false}, // not supported
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_EmptyDatabasePath(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Path = ""

	err := cfg.Validate()
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/data/devflow.db", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data", "devflow.db"), got)

	got, err = expandPath("", "/fallback/devflow.db")
	require.NoError(t, err)
	assert.Equal(t, "/fallback/devflow.db", got)

	got, err = expandPath("/abs/path.db", "/fallback")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path.db", got)
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, splitOrigins("*"))
	assert.Equal(t, []string{"https://a.example", "https://b.example"},
		splitOrigins("https://a.example, https://b.example"))
	assert.Equal(t, []string{"*"}, splitOrigins(" , "))
}

func TestGetConfigValuePrecedence(t *testing.T) {
	t.Setenv("DEVFLOW_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "DEVFLOW_TEST_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "DEVFLOW_TEST_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "DEVFLOW_TEST_MISSING", "default"))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nDEVFLOW_ENVFILE_A=hello\nDEVFLOW_ENVFILE_B=\"quoted\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("DEVFLOW_ENVFILE_A", "")
	t.Setenv("DEVFLOW_ENVFILE_B", "")
	os.Unsetenv("DEVFLOW_ENVFILE_A")
	os.Unsetenv("DEVFLOW_ENVFILE_B")

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "hello", os.Getenv("DEVFLOW_ENVFILE_A"))
	assert.Equal(t, "quoted", os.Getenv("DEVFLOW_ENVFILE_B"))
}
