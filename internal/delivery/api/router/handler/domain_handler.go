package handler

import (
	"log/slog"
	"net/http"

	"aliascore/internal/delivery/api/middleware"
	"aliascore/internal/delivery/api/response"
	"aliascore/internal/domain/catalog"
	"aliascore/internal/domain/entity"
	"aliascore/internal/usecase"
	"aliascore/internal/util"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// DomainHandlerParams holds dependencies for DomainHandler, injected by Fx.
type DomainHandlerParams struct {
	fx.In

	DomainUC usecase.DomainUsecase
	EventUC  usecase.EventUsecase
	ShareUC  usecase.ShareUsecase
	Logger   *slog.Logger
}

// DomainHandler serves the signed-in user's domain profiles, their events and share data.
type DomainHandler struct {
	domainUC usecase.DomainUsecase
	eventUC  usecase.EventUsecase
	shareUC  usecase.ShareUsecase
	logger   *slog.Logger
}

// NewDomainHandler is the constructor for DomainHandler.
func NewDomainHandler(params DomainHandlerParams) *DomainHandler {
	return &DomainHandler{
		domainUC: params.DomainUC,
		eventUC:  params.EventUC,
		shareUC:  params.ShareUC,
		logger:   params.Logger,
	}
}

// DomainDisplay holds ready-to-render strings for a profile card.
type DomainDisplay struct {
	CurrentRating string `json:"currentRating"`
	PeakRating    string `json:"peakRating"`
	GamesPlayed   string `json:"gamesPlayed"`
	LastUpdated   string `json:"lastUpdated"`
}

// DomainView is a profile plus its card colors and display strings.
type DomainView struct {
	*entity.DomainProfile
	Colors  catalog.ColorScheme `json:"colors"`
	Display DomainDisplay       `json:"display"`
}

// DomainsResponse wraps a list of profiles.
type DomainsResponse struct {
	Domains []DomainView `json:"domains"`
}

// DomainResponse wraps a single profile.
type DomainResponse struct {
	Domain DomainView `json:"domain"`
}

// EventsResponse wraps a list of events.
type EventsResponse struct {
	Events any `json:"events"`
	Count  int `json:"count"`
}

// ListDomains returns every profile of the signed-in user.
func (h *DomainHandler) ListDomains(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	domains, err := h.domainUC.ListDomains(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]DomainView, 0, len(domains))
	for _, d := range domains {
		views = append(views, h.view(d))
	}

	return response.Success(c, http.StatusOK, DomainsResponse{Domains: views})
}

// GetDomain returns one profile of the signed-in user.
func (h *DomainHandler) GetDomain(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	domain, err := h.domainUC.GetDomain(c.Request().Context(), userID, c.Param("domainId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, DomainResponse{Domain: h.view(domain)})
}

// GetDomainEvents returns the upcoming events of one profile.
func (h *DomainHandler) GetDomainEvents(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	events, err := h.eventUC.EventsForDomain(c.Request().Context(), userID, c.Param("domainId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, EventsResponse{Events: events, Count: len(events)})
}

// GetSharePayload returns the public share payload of one profile.
func (h *DomainHandler) GetSharePayload(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	payload, err := h.shareUC.SharePayload(c.Request().Context(), userID, c.Param("domainId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, payload)
}

// GetShareQR returns the share payload as a PNG QR code.
func (h *DomainHandler) GetShareQR(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	png, err := h.shareUC.ShareQR(c.Request().Context(), userID, c.Param("domainId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

func (h *DomainHandler) view(d *entity.DomainProfile) DomainView {
	colors := catalog.DefaultColors
	for _, def := range h.domainUC.Catalog() {
		if def.Key == d.DomainKey {
			colors = def.Colors

			break
		}
	}

	return DomainView{
		DomainProfile: d,
		Colors:        colors,
		Display: DomainDisplay{
			CurrentRating: util.FormatRating(d.CurrentRating),
			PeakRating:    util.FormatRating(d.PeakRating),
			GamesPlayed:   util.FormatGamesPlayed(d.GamesPlayed),
			LastUpdated:   util.FormatDate(d.LastUpdated),
		},
	}
}
