package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/handler"
	"github.com/iliyamo/hotel-booking/internal/middleware"
)

// RegisterVendor registers vendor-scoped endpoints under /v1/vendor.
// All routes require a valid JWT and the VENDOR role.  Vendors manage
// the coupons the pricing engine reads; hotel and room administration
// live in a separate back-office service.
func RegisterVendor(e *echo.Echo, cp *handler.CouponHandler, jwtSecret string) {
	g := e.Group(
		"/v1/vendor",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("VENDOR"),
	)
	g.POST("/coupons", cp.Create)
	g.GET("/coupons", cp.ListMine)
	g.PATCH("/coupons/:id/block", cp.SetBlocked)
}
