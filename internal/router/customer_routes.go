package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/handler"
	"github.com/iliyamo/hotel-booking/internal/middleware"
)

// RegisterCustomer registers customer-scoped endpoints under /v1.  All
// routes require a valid JWT and the CUSTOMER role.  Customers can quote
// a stay, check out with wallet or online payment, complete online
// payments, list and cancel their bookings and fetch invoices.
func RegisterCustomer(e *echo.Echo, h *handler.BookingHandler, cp *handler.CouponHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER"),
	)
	// Price preview: validates the stay and returns the full breakdown
	// (nights, subtotal, discount, GST) without creating anything.
	g.POST("/bookings/quote", h.Quote)
	// Checkout: wallet pays and confirms in one step, online returns a
	// payment intent for the client to complete.
	g.POST("/bookings", h.Checkout)
	// Thin payment-intent endpoint consumed by clients that embed the
	// provider's payment element directly.
	g.POST("/payments/intent", h.CreateIntent)
	// Online completion: creates the booking once the provider reports
	// the intent as succeeded.  Safe to retry per intent.
	g.POST("/payments/:intentId/complete", h.CompletePayment)
	// Coupons a customer may apply at the given subtotal, pre-filtered
	// by eligibility.
	g.GET("/coupons", cp.ListEligible)

	g.GET("/my-bookings", h.ListBookings)
	g.GET("/bookings/:id", h.GetBooking)
	// Advisory refund quote; the percentage actually applied is
	// recomputed server-side at cancellation time.
	g.GET("/bookings/:id/refund-quote", h.RefundQuote)
	// Cancellation is idempotent: repeating it on an already-cancelled
	// booking returns the recorded refund instead of an error.
	g.DELETE("/bookings/:id", h.CancelBooking)
	g.GET("/bookings/:id/invoice", h.Invoice)
	g.GET("/wallet", h.Wallet)
}
