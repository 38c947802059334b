package di

import (
	"net/http"

	"go.uber.org/zap"

	"slack-notifier/internal/adapter/logging"
	"slack-notifier/internal/adapter/metrics"
	"slack-notifier/internal/adapter/slack"
	"slack-notifier/internal/app"
	"slack-notifier/internal/config"
	"slack-notifier/internal/domain/ports"
	"slack-notifier/internal/registry"
)

func provideZapLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	logger, err := logging.NewZap(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func provideRegistry(cfg *config.Config) (*registry.Registry, error) {
	r := registry.New()
	if err := r.Populate(cfg.Fields, cfg.Attachments); err != nil {
		return nil, err
	}
	return r, nil
}

func provideMetricsHandler(p *metrics.Prometheus) http.Handler {
	return p.Handler()
}

func provideDeliverer(cfg *config.Config) ports.Deliverer {
	return slack.NewClient(cfg.DefaultTimeout)
}

func provideSettings(cfg *config.Config) app.Settings {
	return app.Settings{
		Hooks:           cfg.Hooks,
		Alarms:          cfg.Alarms,
		HTTPAddr:        cfg.HTTP.Addr,
		HTTPToken:       cfg.HTTP.Token,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
		Oneshot:         cfg.Oneshot,
	}
}
