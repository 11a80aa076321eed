// Package router registers the mock API routes on echo.
package router

import (
	"aliascore/config"
	"aliascore/internal/delivery/api/middleware"
	"aliascore/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	HealthHandler  *handler.HealthHandler
	AuthHandler    *handler.AuthHandler
	ProfileHandler *handler.ProfileHandler
	DomainHandler  *handler.DomainHandler
	EventHandler   *handler.EventHandler
	CatalogHandler *handler.CatalogHandler
	DevHandler     *handler.DevHandler
	AuthMiddleware *middleware.AuthMiddleware
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	healthHandler  *handler.HealthHandler
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	domainHandler  *handler.DomainHandler
	eventHandler   *handler.EventHandler
	catalogHandler *handler.CatalogHandler
	devHandler     *handler.DevHandler
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		healthHandler:  params.HealthHandler,
		authHandler:    params.AuthHandler,
		profileHandler: params.ProfileHandler,
		domainHandler:  params.DomainHandler,
		eventHandler:   params.EventHandler,
		catalogHandler: params.CatalogHandler,
		devHandler:     params.DevHandler,
		authMiddleware: params.AuthMiddleware,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.healthHandler.HealthCheck)

	api := e.Group("/api")
	api.GET("/catalog", r.catalogHandler.ListCatalog)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/google", r.authHandler.GoogleSignIn)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
		authGroup.POST("/signout", r.authHandler.SignOut, r.authMiddleware.Authenticate)
	}

	api.PUT("/profile", r.profileHandler.UpdateProfile, r.authMiddleware.Authenticate)
	api.GET("/events", r.eventHandler.NearbyEvents, r.authMiddleware.Authenticate)

	domainsGroup := api.Group("/domains", r.authMiddleware.Authenticate)
	{
		domainsGroup.GET("", r.domainHandler.ListDomains)
		domainsGroup.GET("/:domainId", r.domainHandler.GetDomain)
		domainsGroup.GET("/:domainId/events", r.domainHandler.GetDomainEvents)
		domainsGroup.GET("/:domainId/share", r.domainHandler.GetSharePayload)
		domainsGroup.GET("/:domainId/share/qr", r.domainHandler.GetShareQR)
	}
}

// RegisterDevRoutes adds fixture maintenance routes when mock.devRoutes is set.
func (r *router) RegisterDevRoutes(e *echo.Echo) {
	if r.config.Mock == nil || !r.config.Mock.DevRoutes {
		return
	}

	devGroup := e.Group("/api/dev/fixtures")
	{
		devGroup.GET("", r.devHandler.Status)
		devGroup.POST("/reset", r.devHandler.ResetFixtures)
		devGroup.DELETE("", r.devHandler.ClearFixtures)
	}
}
