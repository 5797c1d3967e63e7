package controllers

import (
	"net/http"

	"github.com/devesh457/nea-website/api/responses"
	"github.com/devesh457/nea-website/api/validators"
	"github.com/devesh457/nea-website/internal/bookings"
	"github.com/devesh457/nea-website/pkg/enums"
	pkgerrors "github.com/devesh457/nea-website/pkg/errors"
	"github.com/devesh457/nea-website/pkg/logger"
)

type bookingDecisionRequest struct {
	Decision       string  `json:"decision" validate:"required,oneof=approve reject"`
	RejectedReason *string `json:"rejected_reason,omitempty"`
	TotalAmount    *string `json:"total_amount,omitempty"`
}

// AdminBookingList returns every booking with owner details, optionally
// filtered by ?status=.
func AdminBookingList(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		var filter bookings.ListFilter
		if raw := validators.QueryString(r, "status"); raw != "" {
			status, err := enums.ParseBookingStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid booking status"))
				return
			}
			filter.Status = &status
		}

		views, err := svc.ListAll(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, views)
	}
}

// AdminBookingDecision approves or rejects a pending booking.
func AdminBookingDecision(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		actorID, actorRole, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bookingID, err := bookingIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body bookingDecisionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := bookings.DecisionInput{
			BookingID:      bookingID,
			Decision:       bookings.Decision(body.Decision),
			RejectedReason: body.RejectedReason,
			ActorUserID:    actorID,
			ActorRole:      actorRole,
		}
		if body.TotalAmount != nil {
			amount, err := parsePrice(*body.TotalAmount)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.TotalAmount = &amount
		}

		view, err := svc.Decide(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}
