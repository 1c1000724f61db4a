package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/urbanthreads-backend/api/responses"
	"github.com/angelmondragon/urbanthreads-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/urbanthreads-backend/pkg/errors"
	"github.com/angelmondragon/urbanthreads-backend/pkg/logger"
)

// Pinger is a dependency probed by the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	DB      string `json:"db"`
	Redis   string `json:"redis"`
}

// Health reports database and Redis reachability. Only a database failure
// fails the check; a missing or unreachable Redis degrades it.
func Health(cfg *config.Config, logg *logger.Logger, database, redis Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-UrbanThreads-Env", cfg.App.Env)
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		out := healthStatus{Status: "ok", Service: cfg.App.Name, DB: "up", Redis: "up"}
		if database == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "database not configured"))
			return
		}
		if err := database.Ping(ctx); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
			return
		}

		switch {
		case redis == nil:
			out.Redis = "disabled"
		default:
			if err := redis.Ping(ctx); err != nil {
				out.Redis = "down"
				out.Status = "degraded"
				if logg != nil {
					logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "health.redis_unreachable")
				}
			}
		}
		responses.WriteSuccess(w, out)
	}
}
