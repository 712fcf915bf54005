// Package handlers implements the HTTP handlers for pages and the JSON API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamflix/streamflix/internal/config"
	"github.com/streamflix/streamflix/internal/constants"
	"github.com/streamflix/streamflix/internal/middleware"
	"github.com/streamflix/streamflix/internal/services"
	"github.com/streamflix/streamflix/pkg/ratelimiter"
)

// Handler handles HTTP requests for the application.
type Handler struct {
	services *services.Container
	config   *config.Config
}

// New creates a new Handler with the provided services and configuration.
func New(services *services.Container, config *config.Config) *Handler {
	return &Handler{
		services: services,
		config:   config,
	}
}

// RegisterRoutes registers all page and API routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	resetBuckets := ratelimiter.NewKeyedBuckets(constants.ResetRateBurst, constants.ResetRateLimit)

	// Pages
	r.GET("/", middleware.RequireAuth(), h.handleIndex)
	r.GET("/login", h.showLogin)
	r.POST("/login", h.handleLogin)
	r.GET("/register", h.showRegister)
	r.POST("/register", h.handleRegister)
	r.GET("/logout", middleware.RequireAuth(), h.handleLogout)

	// Password reset flow
	r.GET("/forgot-password", h.showForgotPassword)
	r.POST("/forgot-password", middleware.RateLimit(resetBuckets), h.handleForgotPassword)
	r.GET("/verify-otp", h.showVerifyOTP)
	r.POST("/verify-otp", h.handleVerifyOTP)
	r.GET("/reset-password", h.showResetPassword)
	r.POST("/reset-password", h.handleResetPassword)

	// Account pages
	r.GET("/profile", middleware.RequireAuth(), h.handleProfile)
	r.GET("/settings", middleware.RequireAuth(), h.showSettings)
	r.POST("/settings", middleware.RequireAuth(), h.handleSettings)

	// JSON API
	api := r.Group("/api", middleware.RequireAuthJSON())
	api.GET("/movies", h.apiMovies)
	api.GET("/webseries", h.apiWebseries)
	api.GET("/carousel", h.apiCarousel)
	api.GET("/continue-watching", h.apiContinueWatching)
	api.PUT("/progress", h.apiSaveProgress)
	api.DELETE("/progress/:id", h.apiDeleteProgress)

	r.NoRoute(h.handleNotFound)
}

// handleIndex renders the home page with the catalog rows.
func (h *Handler) handleIndex(c *gin.Context) {
	user := h.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	catalog := h.services.Catalog
	movies := catalog.Movies()

	c.HTML(http.StatusOK, "index.html", gin.H{
		"user":             user,
		"flashes":          h.flashes(c),
		"movies":           movies,
		"carousel":         catalog.Carousel(),
		"webseries":        catalog.Webseries(),
		"top_ten":          catalog.MoviesByCategory(constants.CategoryTopTen),
		"upcoming":         catalog.MoviesByCategory(constants.CategoryUpcoming),
		"trending":         catalog.MoviesByCategory(constants.CategoryTrending),
		"continueWatching": h.continueWatching(user.ID),
	})
}

func (h *Handler) handleNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{})
}

// HandleInternalError renders the 500 page; wired as the recovery handler.
func (h *Handler) HandleInternalError(c *gin.Context, err interface{}) {
	h.services.Logger.Errorf("[Handler] panic recovered: %v", err)
	c.HTML(http.StatusInternalServerError, "500.html", gin.H{})
	c.Abort()
}
