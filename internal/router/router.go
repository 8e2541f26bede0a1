// Package router registers the HTTP routes of the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/webinar-booking/internal/config"
	"github.com/iliyamo/webinar-booking/internal/handler"
	"github.com/iliyamo/webinar-booking/internal/middleware"
)

// Register wires all routes onto the Echo instance. Unauthenticated
// operations live under /v1/auth; everything else requires a valid
// access token. The rate limiter applies to the whole API and degrades
// to a no-op when rdb is nil.
func Register(e *echo.Echo, cfg config.Config, rdb *redis.Client,
	auth *handler.AuthHandler, webinars *handler.WebinarHandler, bookings *handler.BookingHandler) {

	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	e.GET("/healthz", handler.Health)

	g := e.Group("/v1/auth")
	g.POST("/register", auth.Register)
	g.POST("/login", auth.Login)

	v1 := e.Group("/v1")
	v1.Use(middleware.JWTAuth(cfg.JWTSecret))
	v1.POST("/webinars", webinars.Create)
	v1.GET("/webinars", webinars.ListMine)
	v1.GET("/webinars/:id", webinars.Get)
	v1.GET("/webinars/:id/registrations", webinars.Registrations)
	v1.POST("/webinars/:id/bookings", bookings.Book)
}
