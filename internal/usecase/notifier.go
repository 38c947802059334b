package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"slack-notifier/internal/domain/model"
	"slack-notifier/internal/domain/ports"
	"slack-notifier/internal/message"
	"slack-notifier/internal/payload"
)

// Trigger names used in logs and metrics.
const (
	TriggerHook  = "hook"
	TriggerAlarm = "alarm"
)

// Outcomes recorded per invocation.
const (
	OutcomeOK               = "ok"
	OutcomeConfigError      = "config_error"
	OutcomeBuildError       = "build_error"
	OutcomeTransportError   = "transport_error"
	OutcomeUnexpectedStatus = "unexpected_status"
)

// ErrTextRequired is returned by hooks whose configuration has no text.
var ErrTextRequired = errors.New("message text is required for hooks")

// Notifier implements the hook and alarm entry points over a shared registry.
type Notifier struct {
	attachments message.AttachmentFinder
	deliverer   ports.Deliverer
	metrics     ports.Metrics
	logger      ports.Logger
}

// NewNotifier constructs a Notifier. metrics may be nil.
func NewNotifier(
	attachments message.AttachmentFinder,
	deliverer ports.Deliverer,
	metrics ports.Metrics,
	logger ports.Logger,
) *Notifier {
	return &Notifier{
		attachments: attachments,
		deliverer:   deliverer,
		metrics:     metrics,
		logger:      logger,
	}
}

// Hook parses raw, checks that it carries text, then builds and sends one message.
// Nothing is sent if any step before delivery fails.
func (n *Notifier) Hook(ctx context.Context, raw string) error {
	start := time.Now()
	id := uuid.NewString()

	cfg, err := message.Parse(raw, n.attachments)
	if err != nil {
		n.logger.Error(ctx, "unable to parse slack hook options", "invocation_id", id, "error", err)
		n.observe(TriggerHook, OutcomeConfigError, start)
		return err
	}

	if cfg.Text == "" {
		n.logger.Error(ctx, "slack hook has no text", "invocation_id", id)
		n.observe(TriggerHook, OutcomeConfigError, start)
		return ErrTextRequired
	}

	return n.deliver(ctx, TriggerHook, id, cfg, nil, start)
}

func (n *Notifier) deliver(ctx context.Context, trigger, id string, cfg *model.MessageConfig, text *string, start time.Time) error {
	body, err := encode(cfg, text)
	if err != nil {
		n.logger.Error(ctx, "failed to build slack payload", "trigger", trigger, "invocation_id", id, "error", err)
		n.observe(trigger, OutcomeBuildError, start)
		return err
	}

	if err := n.deliverer.Send(ctx, cfg, body); err != nil {
		n.logger.Error(ctx, "failed to send slack notification",
			"trigger", trigger, "invocation_id", id, "error", err)
		n.observe(trigger, classify(err), start)
		return err
	}

	n.logger.Info(ctx, "slack notification delivered",
		"trigger", trigger, "invocation_id", id, "bytes", len(body), "duration", time.Since(start))
	n.observe(trigger, OutcomeOK, start)
	return nil
}

func encode(cfg *model.MessageConfig, text *string) ([]byte, error) {
	p, err := payload.Build(cfg, text)
	if err != nil {
		return nil, err
	}
	return payload.Encode(p)
}

func (n *Notifier) observe(trigger, outcome string, start time.Time) {
	if n.metrics == nil {
		return
	}
	n.metrics.ObserveDelivery(trigger, outcome, time.Since(start))
}

func classify(err error) string {
	switch {
	case errors.Is(err, ports.ErrUnexpectedStatus):
		return OutcomeUnexpectedStatus
	case errors.Is(err, payload.ErrBuild):
		return OutcomeBuildError
	default:
		return OutcomeTransportError
	}
}
