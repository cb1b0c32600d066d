package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seminar-hall-booking/internal/handler"
	"github.com/iliyamo/seminar-hall-booking/internal/middleware"
	"github.com/iliyamo/seminar-hall-booking/internal/model"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1: the full
// booking list, approval decisions and hall catalog maintenance. The role
// gate lives here so the engine and handlers never re-check roles.
func RegisterAdmin(e *echo.Echo, ab *handler.AdminBookingHandler, halls *handler.HallHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	// ---- Bookings ----
	g.GET("/bookings", ab.ListAll)
	g.PUT("/bookings/:id/approve", ab.Approve)
	g.PUT("/bookings/:id/reject", ab.Reject)

	// ---- Halls ----
	g.POST("/halls", halls.Create)
	g.PUT("/halls/:id", halls.Update)
	g.DELETE("/halls/:id", halls.Delete)
}
