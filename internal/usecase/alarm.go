package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"slack-notifier/internal/domain/model"
	"slack-notifier/internal/message"
)

// Alarm is one configured alarm instance. Its configuration is parsed once and
// never modified, so Fire may be called from several goroutines.
type Alarm struct {
	name     string
	cfg      *model.MessageConfig
	notifier *Notifier
}

// SetupAlarm parses the static configuration of an alarm instance.
// An error here should stop alarm registration.
func (n *Notifier) SetupAlarm(name, raw string) (*Alarm, error) {
	cfg, err := message.Parse(raw, n.attachments)
	if err != nil {
		return nil, fmt.Errorf("setup alarm %q: %w", name, err)
	}
	return &Alarm{name: name, cfg: cfg, notifier: n}, nil
}

// Name returns the alarm's name.
func (a *Alarm) Name() string {
	return a.name
}

// Fire sends msg using the alarm's configuration. The text always replaces any
// configured text. Failures are logged and returned; they do not affect later firings.
func (a *Alarm) Fire(ctx context.Context, msg []byte) error {
	text := string(msg)
	id := uuid.NewString()
	a.notifier.logger.Info(ctx, "slack alarm fired", "alarm", a.name, "invocation_id", id)
	return a.notifier.deliver(ctx, TriggerAlarm, id, a.cfg, &text, time.Now())
}
