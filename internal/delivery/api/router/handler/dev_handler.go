package handler

import (
	"net/http"

	"aliascore/internal/delivery/api/response"
	"aliascore/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DevHandler exposes fixture maintenance for local development.
type DevHandler struct {
	fixtureUC usecase.FixtureUsecase
}

// NewDevHandler is the constructor for DevHandler.
func NewDevHandler(fixtureUC usecase.FixtureUsecase) *DevHandler {
	return &DevHandler{fixtureUC: fixtureUC}
}

// FixtureStatusResponse mirrors usecase.FixtureStatus.
type FixtureStatusResponse struct {
	State       string `json:"state"`
	UserID      string `json:"userId,omitempty"`
	DomainCount int    `json:"domainCount"`
	EventCount  int    `json:"eventCount"`
}

// Status returns the fixture state and counts.
func (h *DevHandler) Status(c echo.Context) error {
	status, err := h.fixtureUC.Status(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, statusResponse(status))
}

// ResetFixtures regenerates the fixtures.
func (h *DevHandler) ResetFixtures(c echo.Context) error {
	status, err := h.fixtureUC.Reset(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, statusResponse(status))
}

// ClearFixtures drops the fixtures.
func (h *DevHandler) ClearFixtures(c echo.Context) error {
	if err := h.fixtureUC.Clear(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Fixtures cleared")
}

func statusResponse(s *usecase.FixtureStatus) FixtureStatusResponse {
	return FixtureStatusResponse{
		State:       s.State,
		UserID:      s.UserID,
		DomainCount: s.DomainCount,
		EventCount:  s.EventCount,
	}
}
