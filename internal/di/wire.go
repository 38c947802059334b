//go:build wireinject

package di

import (
	"github.com/google/wire"

	"slack-notifier/internal/adapter/logging"
	"slack-notifier/internal/adapter/metrics"
	"slack-notifier/internal/app"
	"slack-notifier/internal/config"
	"slack-notifier/internal/domain/ports"
	"slack-notifier/internal/message"
	"slack-notifier/internal/registry"
	"slack-notifier/internal/usecase"
)

// InitializeApp wires the application components together.
// The registry is populated here, so a broken definition fails initialization.
func InitializeApp(args []string) (*app.App, func(), error) {
	wire.Build(
		config.Load,
		provideZapLogger,
		logging.New,
		wire.Bind(new(ports.Logger), new(*logging.ZapLogger)),
		provideRegistry,
		wire.Bind(new(message.AttachmentFinder), new(*registry.Registry)),
		metrics.NewPrometheus,
		wire.Bind(new(ports.Metrics), new(*metrics.Prometheus)),
		provideMetricsHandler,
		provideDeliverer,
		usecase.NewNotifier,
		provideSettings,
		app.New,
	)
	return nil, nil, nil
}
