package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"storage-valuation/internal/api/models"
	"storage-valuation/internal/metrics"
	"storage-valuation/internal/pricing"
)

// PricingHandler serves price estimates
type PricingHandler struct {
	estimator *pricing.Estimator
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(estimator *pricing.Estimator) *PricingHandler {
	return &PricingHandler{estimator: estimator}
}

// GetPrice handles GET /api/v1/prices?date=YYYY-MM-DD
func (h *PricingHandler) GetPrice(c *gin.Context) {
	if h.estimator == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NO_PRICE_HISTORY",
				Message: "no price history configured; set pricing.series_csv",
			},
		})
		return
	}

	var req models.PriceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "date must be YYYY-MM-DD",
			},
		})
		return
	}

	est, err := h.estimator.Estimate(date)
	if err != nil {
		code := "ESTIMATE_ERROR"
		if errors.Is(err, pricing.ErrBeforeHistory) || errors.Is(err, pricing.ErrBeyondHorizon) {
			code = "DATE_OUT_OF_RANGE"
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    code,
				Message: err.Error(),
			},
		})
		return
	}
	metrics.PriceEstimatesTotal.WithLabelValues(string(est.Kind)).Inc()

	c.JSON(http.StatusOK, toPriceResponse(est))
}

// GetCurve handles GET /api/v1/prices/curve?months=N
// Returns the forecast curve starting the month after the last observation.
func (h *PricingHandler) GetCurve(c *gin.Context) {
	if h.estimator == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NO_PRICE_HISTORY",
				Message: "no price history configured; set pricing.series_csv",
			},
		})
		return
	}

	months := 12
	if raw := c.Query("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 12 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "INVALID_REQUEST",
					Message: "months must be between 1 and 12",
				},
			})
			return
		}
		months = n
	}

	points := make([]models.PriceResponse, 0, months)
	last := h.estimator.Last()
	for i := 1; i <= months; i++ {
		est, err := h.estimator.Estimate(last.AddDate(0, i, 0))
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "ESTIMATE_ERROR",
					Message: err.Error(),
				},
			})
			return
		}
		metrics.PriceEstimatesTotal.WithLabelValues(string(est.Kind)).Inc()
		points = append(points, toPriceResponse(est))
	}

	c.JSON(http.StatusOK, models.CurveResponse{Points: points})
}

func toPriceResponse(est pricing.Estimate) models.PriceResponse {
	return models.PriceResponse{
		Date:    est.Date.Format("2006-01-02"),
		Price:   est.Price,
		Kind:    string(est.Kind),
		Lower95: est.Lower95,
		Upper95: est.Upper95,
	}
}
