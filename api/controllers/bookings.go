package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/devesh457/nea-website/api/responses"
	"github.com/devesh457/nea-website/api/validators"
	"github.com/devesh457/nea-website/internal/bookings"
	"github.com/devesh457/nea-website/pkg/enums"
	pkgerrors "github.com/devesh457/nea-website/pkg/errors"
	"github.com/devesh457/nea-website/pkg/logger"
)

type createBookingRequest struct {
	GuestHouse      string  `json:"guest_house" validate:"required"`
	Location        string  `json:"location"`
	RoomType        string  `json:"room_type" validate:"required"`
	CheckIn         string  `json:"check_in" validate:"required"`
	CheckOut        string  `json:"check_out" validate:"required"`
	Guests          int     `json:"guests" validate:"required,min=1,max=10"`
	Purpose         string  `json:"purpose" validate:"required"`
	SpecialRequests *string `json:"special_requests,omitempty"`
}

func parseBookingDate(raw, field string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date").
			WithDetails(map[string]any{"field": field})
	}
	return t, nil
}

// BookingCreate submits a stay request on behalf of the authenticated member.
func BookingCreate(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		userID, _, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createBookingRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		checkIn, err := parseBookingDate(body.CheckIn, "check_in")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		checkOut, err := parseBookingDate(body.CheckOut, "check_out")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		purpose, err := enums.ParseBookingPurpose(body.Purpose)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid booking purpose"))
			return
		}

		view, err := svc.Create(r.Context(), bookings.CreateInput{
			OwnerID:         userID,
			GuestHouse:      body.GuestHouse,
			Location:        body.Location,
			RoomType:        body.RoomType,
			CheckIn:         checkIn,
			CheckOut:        checkOut,
			Guests:          body.Guests,
			Purpose:         purpose,
			SpecialRequests: body.SpecialRequests,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// BookingListMine returns the caller's own bookings, newest first.
func BookingListMine(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		userID, _, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views, err := svc.ListMine(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, views)
	}
}

func bookingIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "bookingId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "booking id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid booking id")
	}
	return id, nil
}

// BookingCancel lets the booking owner withdraw a pending or approved request.
func BookingCancel(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		userID, _, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bookingID, err := bookingIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Cancel(r.Context(), bookings.CancelInput{
			BookingID:   bookingID,
			ActorUserID: userID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// BookingDeleteRejected removes the owner's rejected booking from their list.
func BookingDeleteRejected(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		userID, _, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bookingID, err := bookingIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteRejected(r.Context(), bookings.DeleteRejectedInput{
			BookingID:   bookingID,
			ActorUserID: userID,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
