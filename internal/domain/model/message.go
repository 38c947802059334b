package model

import "time"

// MessageConfig holds everything needed to deliver one Slack message.
// Empty strings mean "not set".
type MessageConfig struct {
	WebhookURL string

	Text string

	Channel string

	Username  string
	IconEmoji string
	IconURL   string

	// SSLNoVerify disables certificate and hostname checks for this destination.
	SSLNoVerify bool
	// Timeout is zero when the client default applies.
	Timeout time.Duration

	// Attachments are borrowed from the registry.
	Attachments []*Attachment
}
