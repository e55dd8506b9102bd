// Package router defines how HTTP routes are registered for the API.
package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/restaurant-table-reservation/internal/handler"
)

// RegisterRoutes registers routes that carry no middleware on the provided
// Echo instance. Currently it exposes only a health check for load
// balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterReservations registers the reservation endpoints under /v1 and
// applies the given middleware (rate limiting) to the group. The booking
// and cancellation bodies carry the user identity; listing takes the user id
// from the path, mirroring the original API shape.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, mw ...echo.MiddlewareFunc) {
    g := e.Group("/v1", mw...)
    // Book a table for a slot.
    g.POST("/reservations", h.Create)
    // Cancel the reservation identified by (user, instant).
    g.DELETE("/reservations", h.Cancel)
    // List a user's reservations from now onward.
    g.GET("/users/:id/reservations", h.ListUpcoming)
}
