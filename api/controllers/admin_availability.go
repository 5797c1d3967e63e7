package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/devesh457/nea-website/api/responses"
	"github.com/devesh457/nea-website/api/validators"
	"github.com/devesh457/nea-website/internal/availability"
	pkgerrors "github.com/devesh457/nea-website/pkg/errors"
	"github.com/devesh457/nea-website/pkg/logger"
)

type upsertAvailabilityRequest struct {
	GuestHouse     string  `json:"guest_house" validate:"required"`
	RoomType       string  `json:"room_type" validate:"required"`
	Location       string  `json:"location"`
	TotalRooms     int     `json:"total_rooms" validate:"min=0"`
	AvailableRooms *int    `json:"available_rooms,omitempty"`
	PricePerNight  string  `json:"price_per_night" validate:"required"`
	Amenities      *string `json:"amenities,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

type updateAvailabilityRequest struct {
	TotalRooms     *int    `json:"total_rooms,omitempty"`
	AvailableRooms *int    `json:"available_rooms,omitempty"`
	PricePerNight  *string `json:"price_per_night,omitempty"`
	Location       *string `json:"location,omitempty"`
	Amenities      *string `json:"amenities,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}
	if price.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	return price, nil
}

// AdminAvailabilityList returns every room record including inactive ones.
func AdminAvailabilityList(svc availability.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "availability service unavailable"))
			return
		}

		views, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, views)
	}
}

// AdminAvailabilityUpsert creates or replaces the record for a
// (guest house, room type) pair.
func AdminAvailabilityUpsert(svc availability.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "availability service unavailable"))
			return
		}

		var body upsertAvailabilityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		price, err := parsePrice(body.PricePerNight)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Upsert(r.Context(), availability.UpsertInput{
			GuestHouse:     body.GuestHouse,
			RoomType:       body.RoomType,
			Location:       body.Location,
			TotalRooms:     body.TotalRooms,
			AvailableRooms: body.AvailableRooms,
			PricePerNight:  price,
			Amenities:      body.Amenities,
			IsActive:       body.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// AdminAvailabilityUpdate patches an existing record by id.
func AdminAvailabilityUpdate(svc availability.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "availability service unavailable"))
			return
		}

		raw := strings.TrimSpace(chi.URLParam(r, "availabilityId"))
		id, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid availability id"))
			return
		}

		var body updateAvailabilityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := availability.UpdateInput{
			ID:             id,
			TotalRooms:     body.TotalRooms,
			AvailableRooms: body.AvailableRooms,
			Location:       body.Location,
			Amenities:      body.Amenities,
			IsActive:       body.IsActive,
		}
		if body.PricePerNight != nil {
			price, err := parsePrice(*body.PricePerNight)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.PricePerNight = &price
		}

		view, err := svc.UpdateByID(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}
