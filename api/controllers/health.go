package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/devesh457/nea-website/api/responses"
	"github.com/devesh457/nea-website/pkg/config"
	pkgerrors "github.com/devesh457/nea-website/pkg/errors"
	"github.com/devesh457/nea-website/pkg/logger"
	"go.uber.org/multierr"
)

const readinessTimeout = 2 * time.Second

// Pinger is implemented by backing stores that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-NEA-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every backing store and aggregates failures.
func HealthReady(cfg *config.Config, logg *logger.Logger, stores map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-NEA-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		var combined error
		for name, store := range stores {
			if store == nil {
				continue
			}
			if err := store.Ping(ctx); err != nil {
				combined = multierr.Append(combined, err)
				if logg != nil {
					logCtx := logg.WithField(ctx, "store", name)
					logg.Warn(logCtx, "readiness check failed")
				}
			}
		}
		if combined != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "not ready"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
