package ports

import (
	"context"
	"errors"
	"fmt"

	"slack-notifier/internal/domain/model"
)

var (
	// ErrTransport covers DNS, connect, TLS and timeout failures.
	ErrTransport = errors.New("delivery transport failure")

	// ErrUnexpectedStatus is matched by every *StatusError.
	ErrUnexpectedStatus = errors.New("unexpected http status")
)

// StatusError is returned when the endpoint answered with something other than 200.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook returned status %d", e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// Deliverer posts an encoded JSON body to the destination described by cfg.
// It makes exactly one attempt and reports ErrTransport or a *StatusError.
type Deliverer interface {
	Send(ctx context.Context, cfg *model.MessageConfig, body []byte) error
}
