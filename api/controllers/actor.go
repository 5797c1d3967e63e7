package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/devesh457/nea-website/api/middleware"
	pkgerrors "github.com/devesh457/nea-website/pkg/errors"
)

// actorFromRequest resolves the authenticated user's identity and role from
// the request context seeded by the auth middleware.
func actorFromRequest(r *http.Request) (uuid.UUID, string, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, "", pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user identity")
	}
	return userID, middleware.RoleFromContext(r.Context()), nil
}
