package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/urbanthreads-backend/api/middleware"
	"github.com/angelmondragon/urbanthreads-backend/api/responses"
	pkgerrors "github.com/angelmondragon/urbanthreads-backend/pkg/errors"
	"github.com/angelmondragon/urbanthreads-backend/pkg/logger"
)

// requireUser writes a 401 and returns false when the request carries no identity.
func requireUser(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (int64, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
		return 0, false
	}
	return userID, true
}

func serviceUnavailable(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, name string) {
	responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, name+" service unavailable"))
}
