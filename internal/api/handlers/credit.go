package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storage-valuation/internal/api/models"
	"storage-valuation/internal/credit"
	"storage-valuation/internal/metrics"
)

// CreditHandler scores counterparty loans
type CreditHandler struct {
	scorecard    *credit.Scorecard
	recoveryRate float64
}

// NewCreditHandler creates a new credit handler
func NewCreditHandler(scorecard *credit.Scorecard, recoveryRate float64) *CreditHandler {
	return &CreditHandler{scorecard: scorecard, recoveryRate: recoveryRate}
}

// ExpectedLoss handles POST /api/v1/credit/expected-loss
func (h *CreditHandler) ExpectedLoss(c *gin.Context) {
	var req models.ExpectedLossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	if req.Exposure < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "exposure must be non-negative",
			},
		})
		return
	}

	recovery := h.recoveryRate
	if req.RecoveryRate != nil {
		recovery = *req.RecoveryRate
		if recovery < 0 || recovery >= 1 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "INVALID_REQUEST",
					Message: "recovery_rate must be in [0, 1)",
				},
			})
			return
		}
	}

	pd, err := h.scorecard.ProbabilityOfDefault(credit.BorrowerFeatures{
		CreditLinesOutstanding: req.CreditLinesOutstanding,
		LoanAmtOutstanding:     req.LoanAmtOutstanding,
		TotalDebtOutstanding:   req.TotalDebtOutstanding,
		Income:                 req.Income,
		YearsEmployed:          req.YearsEmployed,
		FicoScore:              req.FicoScore,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SCORECARD_ERROR",
				Message: err.Error(),
			},
		})
		return
	}
	metrics.ExpectedLossTotal.Inc()

	c.JSON(http.StatusOK, models.ExpectedLossResponse{
		ProbabilityOfDefault: pd,
		RecoveryRate:         recovery,
		Exposure:             req.Exposure,
		ExpectedLoss:         credit.ExpectedLoss(pd, req.Exposure, recovery),
	})
}
