// Package message turns a message option string into a model.MessageConfig.
package message

import (
	"fmt"
	"strconv"
	"time"

	"slack-notifier/internal/domain/model"
	"slack-notifier/internal/kvlist"
	"slack-notifier/internal/registry"
)

var keys = []string{
	"webhook_url",
	"text",
	"channel",
	"username",
	"icon_emoji",
	"icon_url",
	"attachments",
	"ssl_no_verify",
	"timeout",
}

// AttachmentFinder resolves attachment names. *registry.Registry satisfies it.
type AttachmentFinder interface {
	FindAttachment(name string) (*model.Attachment, bool)
}

// Parse builds a message configuration. It does not require text; hooks check
// that themselves because alarms receive their text at fire time.
func Parse(raw string, attachments AttachmentFinder) (*model.MessageConfig, error) {
	kv, err := kvlist.Parse(raw, keys...)
	if err != nil {
		return nil, fmt.Errorf("parse message options: %w", err)
	}

	if kv["webhook_url"] == "" {
		return nil, &registry.MissingKeyError{Kind: "message", Key: "webhook_url"}
	}

	cfg := &model.MessageConfig{
		WebhookURL:  kv["webhook_url"],
		Text:        kv["text"],
		Channel:     kv["channel"],
		Username:    kv["username"],
		IconEmoji:   kv["icon_emoji"],
		IconURL:     kv["icon_url"],
		SSLNoVerify: kv["ssl_no_verify"] != "",
		Timeout:     parseTimeout(kv["timeout"]),
	}

	if list, ok := kv["attachments"]; ok {
		if attachments == nil {
			return nil, &registry.UnresolvedError{Kind: registry.KindAttachment, Name: list}
		}
		resolved, err := registry.Resolve(list, registry.KindAttachment, attachments.FindAttachment)
		if err != nil {
			return nil, err
		}
		cfg.Attachments = resolved
	}

	return cfg, nil
}

// parseTimeout accepts whole seconds. Anything else leaves the client default in place.
func parseTimeout(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
