// Package slack delivers payloads to Slack incoming webhooks.
package slack

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"

	"slack-notifier/internal/domain/model"
	"slack-notifier/internal/domain/ports"
)

// maxDrain bounds how much of a response body is read to keep the connection reusable.
const maxDrain = 64 << 10

// Client posts payloads with one attempt per call.
type Client struct {
	defaultTimeout time.Duration
	secure         *http.Client
	insecure       *http.Client
}

var _ ports.Deliverer = (*Client)(nil)

// NewClient creates a client. defaultTimeout applies to messages without their own timeout.
func NewClient(defaultTimeout time.Duration) *Client {
	return &Client{
		defaultTimeout: defaultTimeout,
		secure:         &http.Client{Transport: newTransport(false)},
		insecure:       &http.Client{Transport: newTransport(true)},
	}
}

// newTransport leaves connect and handshake deadlines to the request context,
// which carries the per-message timeout.
func newTransport(skipVerify bool) *http.Transport {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: skipVerify, //nolint:gosec // explicit ssl_no_verify opt-in
		},
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
	}
	// A custom TLSClientConfig turns off net/http's automatic HTTP/2.
	_ = http2.ConfigureTransport(t)
	return t
}

// Send posts the encoded body to cfg.WebhookURL.
func (c *Client) Send(ctx context.Context, cfg *model.MessageConfig, body []byte) error {
	if cfg == nil || cfg.WebhookURL == "" {
		return fmt.Errorf("%w: webhook URL is empty", ports.ErrTransport)
	}

	timeout := c.defaultTimeout
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ports.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.secure
	if cfg.SSLNoVerify {
		httpClient = c.insecure
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ports.ErrTransport, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))

	if resp.StatusCode != http.StatusOK {
		return &ports.StatusError{Code: resp.StatusCode}
	}
	return nil
}

// CloseIdleConnections releases pooled connections of both transports.
func (c *Client) CloseIdleConnections() {
	c.secure.CloseIdleConnections()
	c.insecure.CloseIdleConnections()
}
