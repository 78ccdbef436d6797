package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// CouponHandler serves the coupon offer list for customers and the
// coupon management surface for vendors.
type CouponHandler struct {
	CouponRepo *repository.CouponRepo
}

// NewCouponHandler constructs a CouponHandler.
func NewCouponHandler(couponRepo *repository.CouponRepo) *CouponHandler {
	if couponRepo == nil {
		panic("nil repository passed to NewCouponHandler")
	}
	return &CouponHandler{CouponRepo: couponRepo}
}

// couponResp is the shape returned to clients when listing coupons.
type couponResp struct {
	ID       uint64  `json:"id"`
	Code     string  `json:"code"`
	Type     string  `json:"type"`
	Value    float64 `json:"value"`
	MinPrice int64   `json:"min_price"`
	MaxPrice int64   `json:"max_price"`
	EndDate  string  `json:"end_date"`
}

// ListEligible handles GET /v1/coupons?vendorId=&minPrice=.  It
// returns only the coupons a customer may actually apply at the
// given subtotal: expired, blocked and under-floor coupons are
// filtered out silently instead of producing errors.
func (h *CouponHandler) ListEligible(c echo.Context) error {
	vendorID, err := strconv.ParseUint(c.QueryParam("vendorId"), 10, 64)
	if err != nil || vendorID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vendorId is required"})
	}
	price, err := strconv.ParseInt(c.QueryParam("minPrice"), 10, 64)
	if err != nil || price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "minPrice is required"})
	}
	coupons, err := h.CouponRepo.ListEligible(c.Request().Context(), vendorID, price, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]couponResp, 0, len(coupons))
	for _, cp := range coupons {
		out = append(out, couponResp{ID: cp.ID, Code: cp.Code, Type: cp.Type, Value: cp.Value,
			MinPrice: cp.MinPrice, MaxPrice: cp.MaxPrice, EndDate: cp.EndDate.Format("2006-01-02")})
	}
	return c.JSON(http.StatusOK, out)
}

// createCouponReq is the vendor request body for creating a coupon.
type createCouponReq struct {
	Code      string  `json:"code"`
	Type      string  `json:"type"` // FLAT | PERCENT
	Value     float64 `json:"value"`
	MinPrice  int64   `json:"min_price"`
	MaxPrice  int64   `json:"max_price"`
	StartDate string  `json:"start_date"` // "2006-01-02"
	EndDate   string  `json:"end_date"`
}

// Create handles POST /v1/vendor/coupons.  Vendors may only create
// coupons under their own account.
func (h *CouponHandler) Create(c echo.Context) error {
	vendorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createCouponReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	if req.Code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code is required"})
	}
	typ := strings.ToUpper(strings.TrimSpace(req.Type))
	if typ != model.CouponTypeFlat && typ != model.CouponTypePercent {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type must be FLAT or PERCENT"})
	}
	if req.Value < 0 || req.MinPrice < 0 || req.MaxPrice < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amounts must not be negative"})
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_date"})
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil || end.Before(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_date"})
	}
	coupon := &model.Coupon{
		VendorID:  vendorID,
		Code:      req.Code,
		Type:      typ,
		Value:     req.Value,
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
		StartDate: start,
		EndDate:   end,
	}
	if err := h.CouponRepo.Create(c.Request().Context(), coupon); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "coupon code already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create coupon failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": coupon.ID, "code": coupon.Code})
}

// ListMine handles GET /v1/vendor/coupons.
func (h *CouponHandler) ListMine(c echo.Context) error {
	vendorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	coupons, err := h.CouponRepo.ListByVendor(c.Request().Context(), vendorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, coupons)
}

// SetBlocked handles PATCH /v1/vendor/coupons/:id/block with body
// {"blocked": bool}.  Blocked coupons stop being offered immediately.
func (h *CouponHandler) SetBlocked(c echo.Context) error {
	vendorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid coupon id"})
	}
	var body struct {
		Blocked bool `json:"blocked"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.CouponRepo.SetBlocked(c.Request().Context(), id, vendorID, body.Blocked); err != nil {
		switch err {
		case repository.ErrCouponNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "coupon not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "blocked": body.Blocked})
}
