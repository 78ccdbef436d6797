package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/hotel-booking/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/hotel-booking/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session: register, login
	// and the two refresh variants.  Each of these handlers is responsible
	// for generating or exchanging tokens.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotating refresh: invalidates the old refresh token and returns a new pair.
	g.POST("/refresh", a.Refresh)
	// Non-rotating refresh: issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts a JSON body containing a `refresh_token` and invalidates
	// it; with a bearer token and no body it revokes all sessions.
	g.POST("/logout", a.Logout)

	// Protected endpoints require a valid access token.  Both roles are
	// accepted here; role-specific groups narrow this further.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("VENDOR", "CUSTOMER"))
	auth.GET("/me", a.Me)

	// Top-level logout alias so clients can call either /v1/auth/logout or
	// /v1/logout with a valid refresh token in the body.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers unauthenticated browse endpoints on the provided
// Echo instance.  The PublicHandler returns sanitized hotel and room data
// for guests; no JWT or role middleware applies here.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler) {
	// Expose the list of bookable hotels, optionally filtered by ?city=
	e.GET("/v1/hotels", p.GetHotels)
	// Hotel details by id, including its check-in/check-out clock times
	e.GET("/v1/hotels/:id", p.GetHotel)
	// Active room categories of a hotel with nightly rates, so guests can
	// browse prices before registering.
	e.GET("/v1/hotels/:id/rooms", p.GetHotelRooms)
	// Single room category by id.
	e.GET("/v1/rooms/:id", p.GetRoom)
}
