package message

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slack-notifier/internal/registry"
)

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	require.NoError(t, r.Populate(
		[]string{"name=env,title=Env,value=prod"},
		[]string{"name=welcome,text=hi", "name=farewell,text=bye,fields=env"},
	))
	return r
}

func TestParseScalars(t *testing.T) {
	cfg, err := Parse("webhook_url=https://example.test/hook,text=hello,channel=#ops,"+
		"username=bot,icon_emoji=:fire:,icon_url=https://i.test/x.png,ssl_no_verify=1,timeout=7", nil)
	require.NoError(t, err)

	assert.Equal(t, "https://example.test/hook", cfg.WebhookURL)
	assert.Equal(t, "hello", cfg.Text)
	assert.Equal(t, "#ops", cfg.Channel)
	assert.Equal(t, "bot", cfg.Username)
	assert.Equal(t, ":fire:", cfg.IconEmoji)
	assert.Equal(t, "https://i.test/x.png", cfg.IconURL)
	assert.True(t, cfg.SSLNoVerify)
	assert.Equal(t, 7*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.Attachments)
}

func TestParseRequiresWebhookURL(t *testing.T) {
	_, err := Parse("text=hello", nil)
	require.ErrorIs(t, err, registry.ErrMissingRequiredKey)
}

func TestParseDoesNotRequireText(t *testing.T) {
	cfg, err := Parse("webhook_url=https://example.test/hook", nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Text)
}

func TestParseTimeout(t *testing.T) {
	tests := map[string]time.Duration{
		"timeout=30":  30 * time.Second,
		"timeout=abc": 0,
		"timeout=5s":  0,
		"timeout=0":   0,
		"timeout=-3":  0,
		"timeout=":    0,
	}
	for opt, want := range tests {
		cfg, err := Parse("webhook_url=https://example.test/hook,"+opt, nil)
		require.NoError(t, err, opt)
		assert.Equal(t, want, cfg.Timeout, opt)
	}
}

func TestParseResolvesAttachmentsInOrder(t *testing.T) {
	r := newRegistry(t)

	cfg, err := Parse("webhook_url=https://example.test/hook,attachments=farewell;welcome", r)
	require.NoError(t, err)
	require.Len(t, cfg.Attachments, 2)

	farewell, _ := r.FindAttachment("farewell")
	welcome, _ := r.FindAttachment("welcome")
	assert.Same(t, farewell, cfg.Attachments[0])
	assert.Same(t, welcome, cfg.Attachments[1])
}

func TestParseUnresolvedAttachment(t *testing.T) {
	r := newRegistry(t)

	_, err := Parse("webhook_url=https://example.test/hook,attachments=welcome;missing", r)
	require.ErrorIs(t, err, registry.ErrUnresolvedReference)

	_, err = Parse("webhook_url=https://example.test/hook,attachments=welcome", nil)
	require.ErrorIs(t, err, registry.ErrUnresolvedReference)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse("webhook_url", nil)
	require.Error(t, err)
}
