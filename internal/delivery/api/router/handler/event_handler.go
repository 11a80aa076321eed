package handler

import (
	"net/http"

	"aliascore/internal/delivery/api/response"
	"aliascore/internal/domain/entity"
	"aliascore/internal/usecase"
	"aliascore/internal/util"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// EventHandler serves location-based event discovery.
type EventHandler struct {
	eventUC usecase.EventUsecase
}

// NewEventHandler is the constructor for EventHandler.
func NewEventHandler(eventUC usecase.EventUsecase) *EventHandler {
	return &EventHandler{eventUC: eventUC}
}

// NearbyEventView is an event with its distance from the search point.
type NearbyEventView struct {
	*entity.Event
	DistanceMiles float64 `json:"distanceMiles"`
	Distance      string  `json:"distance"`
	When          string  `json:"when"`
}

// NearbyEvents answers GET /api/events?latitude&longitude&radius&limit.
// radius is in miles.
func (h *EventHandler) NearbyEvents(c echo.Context) error {
	var input usecase.NearbyEventsInput
	err := echo.QueryParamsBinder(c).
		MustFloat64("latitude", &input.Latitude).
		MustFloat64("longitude", &input.Longitude).
		Float64("radius", &input.RadiusMiles).
		Int("limit", &input.Limit).
		BindError()
	if err != nil {
		return response.BindingError(c, "latitude and longitude are required numbers")
	}
	if input.RadiusMiles < 0 || input.Limit < 0 {
		return response.BindingError(c, "radius and limit must not be negative")
	}

	nearby, err := h.eventUC.EventsNearLocation(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]NearbyEventView, 0, len(nearby))
	for _, n := range nearby {
		views = append(views, NearbyEventView{
			Event:         n.Event,
			DistanceMiles: n.DistanceMiles,
			Distance:      util.FormatDistance(n.DistanceMiles),
			When:          util.FormatDateTime(n.Event.DateTime),
		})
	}

	return response.Success(c, http.StatusOK, EventsResponse{Events: views, Count: len(views)})
}
