package router

import (
	"net/http"

	"github.com/devkingori/alika/handler"
	"github.com/devkingori/alika/model"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// NewRouter wires every route of the API. Route protection is composed from
// the middleware: RequireAuth for authenticated routes, RequireRole stacked on
// top for privileged ones, OptionalAuth where anonymous access is valid.
func NewRouter(
	authMW *handler.AuthMiddleware,
	authHandler *handler.AuthHandler,
	campaignHandler *handler.CampaignHandler,
	categoryHandler *handler.CategoryHandler,
	bannerHandler *handler.BannerHandler,
	userHandler *handler.UserHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /swagger/", httpSwagger.Handler())

	// Authentication.
	mux.Handle("POST /api/auth/register", handler.ErrorHandlingMiddleware(authHandler.Register))
	mux.Handle("POST /api/auth/login", handler.ErrorHandlingMiddleware(authHandler.Login))
	mux.Handle("POST /api/auth/refresh", handler.ErrorHandlingMiddleware(authHandler.Refresh))
	mux.Handle("POST /api/auth/logout",
		authMW.RequireAuth(handler.ErrorHandlingMiddleware(authHandler.Logout)))
	mux.Handle("GET /api/auth/me",
		authMW.RequireAuth(handler.ErrorHandlingMiddleware(authHandler.Me)))
	mux.Handle("PUT /api/auth/profile-image",
		authMW.RequireAuth(handler.ErrorHandlingMiddleware(userHandler.UpdateProfileImage)))

	// Categories.
	mux.Handle("GET /api/categories", handler.ErrorHandlingMiddleware(categoryHandler.List))
	mux.Handle("POST /api/categories",
		authMW.RequireAuth(authMW.RequireRole(model.RoleAdmin, model.RoleModerator)(
			handler.ErrorHandlingMiddleware(categoryHandler.Create))))

	// Campaigns.
	mux.Handle("GET /api/campaigns", handler.ErrorHandlingMiddleware(campaignHandler.List))
	mux.Handle("GET /api/campaigns/trending", handler.ErrorHandlingMiddleware(campaignHandler.Trending))
	mux.Handle("GET /api/campaigns/latest", handler.ErrorHandlingMiddleware(campaignHandler.Latest))
	mux.Handle("GET /api/campaigns/category/{categoryId}", handler.ErrorHandlingMiddleware(campaignHandler.ByCategory))
	mux.Handle("GET /api/campaigns/{id}", handler.ErrorHandlingMiddleware(campaignHandler.Get))
	mux.Handle("POST /api/campaigns/{id}/view", handler.ErrorHandlingMiddleware(campaignHandler.RecordView))
	mux.Handle("POST /api/campaigns",
		authMW.RequireAuth(authMW.RequireRole(model.RoleAdmin, model.RoleModerator)(
			handler.ErrorHandlingMiddleware(campaignHandler.Create))))

	// Banner generation works for anonymous visitors as well.
	mux.Handle("POST /api/campaigns/{id}/generate",
		authMW.OptionalAuth(handler.ErrorHandlingMiddleware(bannerHandler.Generate)))
	mux.Handle("GET /api/banners/public", handler.ErrorHandlingMiddleware(bannerHandler.PublicBanners))

	// Admin.
	mux.Handle("GET /api/admin/users",
		authMW.RequireAuth(authMW.RequireRole(model.RoleAdmin)(
			handler.ErrorHandlingMiddleware(userHandler.ListUsers))))
	mux.Handle("PUT /api/admin/users/{id}/role",
		authMW.RequireAuth(authMW.RequireRole(model.RoleAdmin)(
			handler.ErrorHandlingMiddleware(userHandler.UpdateUserRole))))

	return mux
}
