package controllers

import (
	"net/http"

	"github.com/devesh457/nea-website/api/responses"
	"github.com/devesh457/nea-website/api/validators"
	"github.com/devesh457/nea-website/internal/availability"
	pkgerrors "github.com/devesh457/nea-website/pkg/errors"
	"github.com/devesh457/nea-website/pkg/logger"
)

// AvailabilityList returns active rooms for members, optionally filtered by
// ?guest_house= and ?room_type=.
func AvailabilityList(svc availability.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "availability service unavailable"))
			return
		}

		filter := availability.ListFilter{
			GuestHouse: validators.QueryString(r, "guest_house"),
			RoomType:   validators.QueryString(r, "room_type"),
		}

		views, err := svc.ListActive(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, views)
	}
}
