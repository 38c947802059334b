package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"slack-notifier/internal/config"
	"slack-notifier/internal/domain/ports"
	"slack-notifier/internal/usecase"
)

// ErrUnknownAlarm is returned when firing an alarm name that was never set up.
var ErrUnknownAlarm = errors.New("unknown alarm")

// Settings is the host-level part of the configuration.
type Settings struct {
	Hooks    []string
	Alarms   []config.AlarmConfig
	HTTPAddr string
	// HTTPToken is the bearer token trigger routes require.
	HTTPToken       string
	ShutdownTimeout time.Duration
	// Oneshot makes Run send the hooks and return without serving.
	Oneshot bool
}

// App manages startup hooks, alarm schedules and the trigger listener.
type App struct {
	cron     *cron.Cron
	notifier *usecase.Notifier
	logger   ports.Logger
	hooks    []string
	alarms   map[string]*usecase.Alarm
	server   *http.Server
	metrics  http.Handler
	token    string
	shutdown time.Duration
	oneshot  bool
}

// New sets up every alarm instance and its schedule. Any alarm that cannot be
// set up aborts construction.
func New(notifier *usecase.Notifier, logger ports.Logger, settings Settings, metrics http.Handler) (*App, error) {
	a := &App{
		cron:     cron.New(),
		notifier: notifier,
		logger:   logger,
		hooks:    settings.Hooks,
		alarms:   make(map[string]*usecase.Alarm, len(settings.Alarms)),
		metrics:  metrics,
		token:    settings.HTTPToken,
		shutdown: settings.ShutdownTimeout,
		oneshot:  settings.Oneshot,
	}

	for _, ac := range settings.Alarms {
		if _, exists := a.alarms[ac.Name]; exists {
			return nil, fmt.Errorf("setup alarm %q: duplicate name", ac.Name)
		}
		alarm, err := notifier.SetupAlarm(ac.Name, ac.Options)
		if err != nil {
			return nil, err
		}
		a.alarms[ac.Name] = alarm

		if ac.Schedule != "" {
			if err := a.scheduleAlarm(alarm, ac.Schedule, ac.Message); err != nil {
				return nil, err
			}
		}
	}

	if settings.HTTPAddr != "" {
		a.server = &http.Server{
			Addr:              settings.HTTPAddr,
			Handler:           a.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	return a, nil
}

// Run sends the startup hooks, starts the alarm scheduler and the trigger
// listener, then blocks until ctx is cancelled. In oneshot mode it only sends
// the hooks and returns their failures.
func (a *App) Run(ctx context.Context) error {
	if a.oneshot {
		return a.RunHooks(ctx)
	}

	if err := a.RunHooks(ctx); err != nil {
		a.logger.Error(ctx, "startup hooks failed", "error", err)
	}

	a.logger.Info(ctx, "starting alarm scheduler", "alarms", len(a.alarms), "scheduled", len(a.cron.Entries()))
	a.cron.Start()

	serverErr := make(chan error, 1)
	if a.server != nil {
		go func() {
			a.logger.Info(ctx, "trigger listener started", "addr", a.server.Addr)
			if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		runErr = fmt.Errorf("trigger listener: %w", err)
	}

	if a.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout())
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.logger.Error(shutdownCtx, "trigger listener shutdown failed", "error", err)
		}
		cancel()
	}

	stopCtx := a.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(a.shutdownTimeout()):
	}
	a.logger.Info(context.Background(), "scheduler stopped")
	return runErr
}

// RunHooks sends every configured hook once and returns all failures joined.
func (a *App) RunHooks(ctx context.Context) error {
	var errs []error
	for i, raw := range a.hooks {
		if err := a.notifier.Hook(ctx, raw); err != nil {
			errs = append(errs, fmt.Errorf("hook %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Fire triggers the named alarm with msg.
func (a *App) Fire(ctx context.Context, name string, msg []byte) error {
	alarm, ok := a.alarms[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAlarm, name)
	}
	return alarm.Fire(ctx, msg)
}

func (a *App) scheduleAlarm(alarm *usecase.Alarm, schedule, msg string) error {
	_, err := a.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := alarm.Fire(ctx, []byte(msg)); err != nil {
			a.logger.Error(ctx, "scheduled alarm failed", "alarm", alarm.Name(), "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule alarm %q: %w", alarm.Name(), err)
	}
	return nil
}

func (a *App) shutdownTimeout() time.Duration {
	if a.shutdown <= 0 {
		return 5 * time.Second
	}
	return a.shutdown
}
