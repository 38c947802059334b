package app

import (
	"crypto/subtle"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"slack-notifier/internal/domain/ports"
	"slack-notifier/internal/kvlist"
	"slack-notifier/internal/payload"
	"slack-notifier/internal/registry"
	"slack-notifier/internal/usecase"
)

const maxTriggerBody = 64 << 10

// Router exposes hooks and alarms over HTTP:
//
//	POST /hooks           body: message option string
//	POST /alarms/{name}   body: alarm text
//	GET  /healthz
//	GET  /metrics
//
// Trigger routes require "Authorization: Bearer <token>". Without a configured
// token they reject every request.
func (a *App) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok\n")
	}).Methods(http.MethodGet)
	if a.metrics != nil {
		r.Handle("/metrics", a.metrics).Methods(http.MethodGet)
	}

	triggers := r.NewRoute().Subrouter()
	triggers.Use(a.requireToken)
	triggers.HandleFunc("/hooks", a.handleHook).Methods(http.MethodPost)
	triggers.HandleFunc("/alarms/{name}", a.handleAlarm).Methods(http.MethodPost)
	return r
}

func (a *App) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const prefix = "Bearer "
		got := r.Header.Get("Authorization")
		if a.token == "" || !strings.HasPrefix(got, prefix) ||
			subtle.ConstantTimeCompare([]byte(strings.TrimPrefix(got, prefix)), []byte(a.token)) != 1 {
			w.Header().Set("WWW-Authenticate", "Bearer")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *App) handleHook(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	// Disabling certificate checks is only honoured for locally configured hooks.
	opts, err := kvlist.Parse(string(body), "ssl_no_verify")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if opts["ssl_no_verify"] != "" {
		http.Error(w, "ssl_no_verify is not accepted over http", http.StatusForbidden)
		return
	}

	if err := a.notifier.Hook(r.Context(), string(body)); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleAlarm(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	if err := a.Fire(r.Context(), mux.Vars(r)["name"], body); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readBody reads at most maxTriggerBody bytes and answers 413 past that.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxTriggerBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		http.Error(w, "read body", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnknownAlarm):
		return http.StatusNotFound
	case errors.Is(err, registry.ErrMissingRequiredKey),
		errors.Is(err, registry.ErrUnresolvedReference),
		errors.Is(err, kvlist.ErrMalformed),
		errors.Is(err, usecase.ErrTextRequired):
		return http.StatusBadRequest
	case errors.Is(err, payload.ErrBuild):
		return http.StatusInternalServerError
	case errors.Is(err, ports.ErrTransport), errors.Is(err, ports.ErrUnexpectedStatus):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
