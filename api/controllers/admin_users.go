package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/devesh457/nea-website/api/responses"
	"github.com/devesh457/nea-website/api/validators"
	"github.com/devesh457/nea-website/internal/members"
	pkgerrors "github.com/devesh457/nea-website/pkg/errors"
	"github.com/devesh457/nea-website/pkg/logger"
)

type registrationDecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
}

// AdminPendingUsers lists registrations awaiting a decision.
func AdminPendingUsers(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "members service unavailable"))
			return
		}

		views, err := svc.ListPending(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, views)
	}
}

// AdminUserDecision approves or rejects a pending registration.
func AdminUserDecision(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "members service unavailable"))
			return
		}

		actorID, actorRole, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		raw := strings.TrimSpace(chi.URLParam(r, "userId"))
		userID, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		var body registrationDecisionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.DecideRegistration(r.Context(), members.RegistrationDecisionInput{
			UserID:      userID,
			Decision:    members.RegistrationDecision(body.Decision),
			ActorUserID: actorID,
			ActorRole:   actorRole,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}
