package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		API: APIConfig{
			Key:        "valid-api-key",
			BaseURL:    "https://api.mnotify.com/api",
			Timeout:    10 * time.Second,
			MaxRetries: 3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing api key",
			mutate:  func(c *Config) { c.API.Key = "" },
			wantErr: "api.key must be set",
		},
		{
			name:    "placeholder api key",
			mutate:  func(c *Config) { c.API.Key = "your-api-key-here" },
			wantErr: "api.key must be set",
		},
		{
			name:    "relative base url",
			mutate:  func(c *Config) { c.API.BaseURL = "/api" },
			wantErr: "invalid api.base_url",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.API.Timeout = 0 },
			wantErr: "api.timeout must be positive",
		},
		{
			name:    "negative retries",
			mutate:  func(c *Config) { c.API.MaxRetries = -1 },
			wantErr: "api.max_retries must not be negative",
		},
		{
			name:   "zero retries",
			mutate: func(c *Config) { c.API.MaxRetries = 0 },
		},
		{
			name:    "empty preset",
			mutate:  func(c *Config) { c.Filter.Presets = map[string]string{"vip": " "} },
			wantErr: `filter preset "vip" is empty`,
		},
		{
			name:    "invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: "invalid logging level: trace",
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := writeFile(t, dir, "config.yaml", `
api:
  key: file-key
  base_url: http://localhost:8080/api
  timeout: 3s
sms:
  default_sender: Shop
filter:
  presets:
    pending: status == "pending"
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.API.Key)
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 3, cfg.API.MaxRetries)
	assert.Equal(t, "Shop", cfg.SMS.DefaultSender)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)

	expr, ok := cfg.Filter.Preset("pending")
	assert.True(t, ok)
	assert.Equal(t, `status == "pending"`, expr)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := writeFile(t, dir, "config.yaml", "api:\n  key: file-key\n")
	t.Setenv("BULKSMS_API_KEY", "env-key")
	t.Setenv("BULKSMS_API_MAX_RETRIES", "0")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.API.Key)
	assert.Equal(t, 0, cfg.API.MaxRetries)
}

func TestLoadWithoutConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	writeFile(t, dir, ".env", "BULKSMS_API_KEY=dotenv-key\nBULKSMS_SMS_DEFAULT_SENDER=Alerts\n")
	t.Cleanup(func() {
		os.Unsetenv("BULKSMS_API_KEY")
		os.Unsetenv("BULKSMS_SMS_DEFAULT_SENDER")
	})

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", cfg.API.Key)
	assert.Equal(t, "Alerts", cfg.SMS.DefaultSender)
	assert.Equal(t, "https://api.mnotify.com/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config")
}

func TestLoadRequiresKey(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.key must be set")
}

func TestLoadTimeoutForms(t *testing.T) {
	tests := []struct {
		name    string
		timeout string
		env     string
		want    time.Duration
	}{
		{name: "duration string", timeout: "3s", want: 3 * time.Second},
		{name: "bare integer is milliseconds", timeout: "10000", want: 10 * time.Second},
		{name: "quoted integer is milliseconds", timeout: `"2500"`, want: 2500 * time.Millisecond},
		{name: "environment integer is milliseconds", env: "5000", want: 5 * time.Second},
		{name: "environment duration", env: "1m", want: time.Minute},
		{name: "default", want: 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)

			content := "api:\n  key: file-key\n"
			if tt.timeout != "" {
				content += "  timeout: " + tt.timeout + "\n"
			}
			path := writeFile(t, dir, "config.yaml", content)
			if tt.env != "" {
				t.Setenv("BULKSMS_API_TIMEOUT", tt.env)
			}

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.API.Timeout)
		})
	}
}

func TestMillisecondsHook(t *testing.T) {
	from := reflect.TypeOf(0)

	got, err := millisecondsHook(from, durationType, 1500)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, got)

	got, err = millisecondsHook(reflect.TypeOf(""), durationType, "10s")
	require.NoError(t, err)
	assert.Equal(t, "10s", got)

	got, err = millisecondsHook(durationType, durationType, 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, got)

	got, err = millisecondsHook(from, reflect.TypeOf(0), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}
