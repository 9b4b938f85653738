package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/eventum-app/eventum/internal/app"
)

// NewRouter builds the gin engine and mounts every route. Auth is out of
// scope here; callers identify themselves by user_id in the request.
func NewRouter(application *app.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	health := NewHealthHandler(application)
	users := NewUserHandler(application)
	events := NewEventHandler(application)
	bookings := NewBookingHandler(application)
	reviews := NewReviewHandler(application)
	catalog := NewCatalogHandler(application)
	search := NewSearchHandler(application)

	engine.GET("/health", health.HandleLive)
	engine.GET("/health/ready", health.HandleReady)
	engine.GET("/health/stats", health.HandleStats)

	api := engine.Group("/api")
	{
		api.POST("/users", users.HandleRegister)
		api.GET("/users/:id", users.HandleGet)
		api.DELETE("/users/:id", users.HandleDeactivate)
		api.GET("/users/:id/bookings", users.HandleBookings)
		api.GET("/users/:id/reviews", users.HandleReviews)
		api.GET("/users/:id/favorites", users.HandleFavorites)
		api.GET("/users/:id/events", users.HandleHostedEvents)

		api.POST("/cities", catalog.HandleCreateCity)
		api.GET("/cities", catalog.HandleListCities)
		api.GET("/cities/featured", catalog.HandleFeaturedCities)
		api.GET("/cities/:slug/events", catalog.HandleCityEvents)

		api.GET("/search", search.HandleSearch)
		api.GET("/search/autocomplete", search.HandleAutocomplete)

		api.POST("/events", events.HandleCreate)
		api.GET("/events/featured", events.HandleFeatured)
		api.GET("/events/popular", events.HandlePopular)
		api.GET("/events/:slug", events.HandleDetail)
		api.PUT("/events/:slug", events.HandleUpdate)
		api.DELETE("/events/:slug", events.HandleDeactivate)
		api.GET("/events/:slug/availability", events.HandleAvailability)
		api.POST("/events/:slug/images", events.HandleAddImage)
		api.GET("/events/:slug/reviews", reviews.HandleList)
		api.POST("/events/:slug/reviews", reviews.HandleAdd)
		api.POST("/events/:slug/favorite", reviews.HandleToggleFavorite)

		api.POST("/bookings", bookings.HandleCreate)
		api.GET("/bookings/:id", bookings.HandleGet)
		api.POST("/bookings/:id/confirm", bookings.HandleConfirm)
		api.POST("/bookings/:id/cancel", bookings.HandleCancel)
		api.POST("/bookings/:id/complete", bookings.HandleComplete)
	}

	return engine
}
