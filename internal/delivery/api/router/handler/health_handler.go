// Package handler contains the HTTP handlers of the mock API.
package handler

import (
	"net/http"

	"aliascore/internal/delivery/api/response"
	"aliascore/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HealthHandler reports liveness and the fixture state.
type HealthHandler struct {
	fixtureUC usecase.FixtureUsecase
}

// NewHealthHandler is the constructor for HealthHandler.
func NewHealthHandler(fixtureUC usecase.FixtureUsecase) *HealthHandler {
	return &HealthHandler{fixtureUC: fixtureUC}
}

// HealthCheck answers GET /health.
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	status, err := h.fixtureUC.Status(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"status":   "ok",
		"fixtures": status.State,
	})
}
