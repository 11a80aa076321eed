package handler

import (
	"net/http"

	"aliascore/internal/delivery/api/response"
	"aliascore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// CatalogHandler lists the supported domains.
type CatalogHandler struct {
	domainUC usecase.DomainUsecase
}

// NewCatalogHandler is the constructor for CatalogHandler.
func NewCatalogHandler(domainUC usecase.DomainUsecase) *CatalogHandler {
	return &CatalogHandler{domainUC: domainUC}
}

// ListCatalog answers GET /api/catalog.
func (h *CatalogHandler) ListCatalog(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]any{
		"domains": h.domainUC.Catalog(),
	})
}
