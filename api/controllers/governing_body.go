package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/devesh457/nea-website/api/responses"
	"github.com/devesh457/nea-website/api/validators"
	"github.com/devesh457/nea-website/internal/governingbody"
	pkgerrors "github.com/devesh457/nea-website/pkg/errors"
	"github.com/devesh457/nea-website/pkg/logger"
)

type upsertRosterRequest struct {
	ID           *string `json:"id,omitempty"`
	Name         string  `json:"name" validate:"required"`
	Position     string  `json:"position" validate:"required"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string `json:"phone,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	ImageURL     *string `json:"image_url,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

// GoverningBodyList returns the active roster in display order.
func GoverningBodyList(svc governingbody.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "governing body service unavailable"))
			return
		}

		views, err := svc.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, views)
	}
}

// AdminGoverningBodyList returns the full roster including hidden entries.
func AdminGoverningBodyList(svc governingbody.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "governing body service unavailable"))
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

// AdminGoverningBodyUpsert creates a roster entry or patches an existing one
// when the payload carries an id.
func AdminGoverningBodyUpsert(svc governingbody.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "governing body service unavailable"))
			return
		}

		var body upsertRosterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := governingbody.UpsertInput{
			Name:         body.Name,
			Position:     body.Position,
			Email:        body.Email,
			Phone:        body.Phone,
			Bio:          body.Bio,
			ImageURL:     body.ImageURL,
			DisplayOrder: body.DisplayOrder,
			IsActive:     body.IsActive,
		}
		if body.ID != nil {
			id, err := uuid.Parse(strings.TrimSpace(*body.ID))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid member id"))
				return
			}
			input.ID = &id
		}

		view, err := svc.Upsert(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}
