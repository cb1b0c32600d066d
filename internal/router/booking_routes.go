package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seminar-hall-booking/internal/handler"
	"github.com/iliyamo/seminar-hall-booking/internal/middleware"
	"github.com/iliyamo/seminar-hall-booking/internal/model"
)

// RegisterBooking registers the requester-facing endpoints under /v1. All
// routes require a valid JWT; both faculty and admin users may browse halls,
// request bookings, list their own bookings and read availability. The
// availability and hall reads additionally go through the response cache
// when one is configured.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, halls *handler.HallHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleFaculty, model.RoleAdmin),
	)

	g.POST("/bookings", b.Create)
	g.GET("/bookings/me", b.Mine)
	g.GET("/bookings/availability", b.Availability, cache)

	g.GET("/halls", halls.List, cache)
	g.GET("/halls/:id", halls.Get, cache)
}
