package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
default_timeout: 10s
log:
  level: debug
  format: console
http:
  addr: "127.0.0.1:9100"
  token: "s3cret"
fields:
  - "name=env,title=Environment,value=production"
attachments:
  - "name=deploy,color=good,fields=env"
hooks:
  - "webhook_url=https://hooks.slack.test/T/B/X,text=notifier started"
alarms:
  - name: ops
    options: "webhook_url=https://hooks.slack.test/T/B/X,channel=#ops,attachments=deploy"
    schedule: "@every 1h"
    message: "heartbeat"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notifier.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 4*time.Second, cfg.DefaultTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.HTTP.Addr)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Empty(t, cfg.Fields)
	assert.Empty(t, cfg.Alarms)
}

func TestLoadFile(t *testing.T) {
	cfg, err := Load([]string{"--config", writeConfig(t, sampleYAML)})
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.DefaultTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "127.0.0.1:9100", cfg.HTTP.Addr)
	assert.Equal(t, "s3cret", cfg.HTTP.Token)
	assert.Equal(t, []string{"name=env,title=Environment,value=production"}, cfg.Fields)
	assert.Equal(t, []string{"name=deploy,color=good,fields=env"}, cfg.Attachments)
	require.Len(t, cfg.Hooks, 1)
	require.Len(t, cfg.Alarms, 1)
	assert.Equal(t, AlarmConfig{
		Name:     "ops",
		Options:  "webhook_url=https://hooks.slack.test/T/B/X,channel=#ops,attachments=deploy",
		Schedule: "@every 1h",
		Message:  "heartbeat",
	}, cfg.Alarms[0])
}

func TestLoadFlagsAppendAfterFile(t *testing.T) {
	cfg, err := Load([]string{
		"-c", writeConfig(t, sampleYAML),
		"--slack-field", "name=host,title=Host,value=web-1,short=1",
		"--slack-attachment", "name=host,fields=host;env",
		"--hook", "webhook_url=https://hooks.slack.test/x,text=second",
		"--log.level", "warn",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"name=env,title=Environment,value=production",
		"name=host,title=Host,value=web-1,short=1",
	}, cfg.Fields)
	assert.Equal(t, "name=host,fields=host;env", cfg.Attachments[1])
	assert.Len(t, cfg.Hooks, 2)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("SLACK_NOTIFIER_DEFAULT_TIMEOUT", "2s")
	t.Setenv("SLACK_NOTIFIER_HTTP_ADDR", "127.0.0.1:8080")
	t.Setenv("SLACK_NOTIFIER_HTTP_TOKEN", "from-env")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.DefaultTimeout)
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTP.Addr)
	assert.Equal(t, "from-env", cfg.HTTP.Token)
}

func TestLoadValidation(t *testing.T) {
	tests := map[string][]string{
		"bad log level":     {"--log.level", "loud"},
		"bad http addr":     {"--http.addr", "nowhere"},
		"listener no token": {"--http.addr", "127.0.0.1:9100"},
		"zero timeout":      {"--default_timeout", "0s"},
		"oneshot no hooks":  {"--oneshot"},
		"unknown flag":      {"--nope"},
		"missing file":      {"--config", "/does/not/exist.yaml"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(args)
			require.Error(t, err)
		})
	}
}

func TestValidateAlarms(t *testing.T) {
	base := func() *Config {
		return &Config{
			DefaultTimeout: time.Second,
			Log:            LogConfig{Level: "info", Format: "json"},
		}
	}

	cfg := base()
	cfg.Alarms = []AlarmConfig{{Name: "a", Options: "webhook_url=x", Schedule: "@hourly"}}
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig, "schedule without message")

	cfg = base()
	cfg.Alarms = []AlarmConfig{{Name: "a", Options: "webhook_url=x"}, {Name: "a", Options: "webhook_url=y"}}
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig, "duplicate names")

	cfg = base()
	cfg.Alarms = []AlarmConfig{{Name: "a", Options: "webhook_url=x"}}
	require.NoError(t, cfg.Validate())
}
