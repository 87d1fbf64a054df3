package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storage-valuation/internal/analysis"
	"storage-valuation/internal/api/models"
	"storage-valuation/internal/config"
	"storage-valuation/internal/metrics"
	"storage-valuation/internal/model"
	"storage-valuation/internal/pricing"
	"storage-valuation/internal/store"
	"storage-valuation/internal/valuation"
)

// ValuationHandler handles contract valuation requests
type ValuationHandler struct {
	engine    *valuation.Engine
	estimator *pricing.Estimator
	store     store.Store
	log       zerolog.Logger
}

// NewValuationHandler creates a new valuation handler. The estimator may be
// nil when no price history is configured; resolve_prices then fails cleanly.
func NewValuationHandler(estimator *pricing.Estimator, st store.Store, log zerolog.Logger) *ValuationHandler {
	return &ValuationHandler{
		engine:    valuation.New(),
		estimator: estimator,
		store:     st,
		log:       log,
	}
}

// RunValuation handles POST /api/v1/valuations
func (h *ValuationHandler) RunValuation(c *gin.Context) {
	var req models.ValuationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	params, contractName, err := buildParams(req.Contract)
	if err != nil {
		metrics.ValuationsTotal.WithLabelValues("validation_error").Inc()
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	events, err := buildEvents(req.Schedule)
	if err != nil {
		metrics.ValuationsTotal.WithLabelValues("validation_error").Inc()
		respondValuationError(c, err)
		return
	}

	if req.Options.ResolvePrices {
		events, err = h.resolvePrices(events)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "PRICE_RESOLUTION_ERROR",
					Message: err.Error(),
				},
			})
			return
		}
	}

	start := time.Now()
	result, err := h.engine.Run(events, params)
	metrics.ValuationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ValuationsTotal.WithLabelValues(outcomeLabel(err)).Inc()
		respondValuationError(c, err)
		return
	}
	metrics.ValuationsTotal.WithLabelValues("ok").Inc()

	rec := store.NewRecord(contractName, len(events), result)
	if err := h.store.SaveRun(c.Request.Context(), rec); err != nil {
		// A lost record should not fail the quote.
		h.log.Error().Err(err).Str("run_id", rec.ID.String()).Msg("save valuation run")
	}

	c.JSON(http.StatusOK, buildResponse(rec.ID.String(), result, req.Options.IncludeLedger))
}

// SweepContracts handles POST /api/v1/valuations/sweep
func (h *ValuationHandler) SweepContracts(c *gin.Context) {
	var req models.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	events, err := buildEvents(req.Schedule)
	if err != nil {
		respondValuationError(c, err)
		return
	}
	if req.Options.ResolvePrices {
		events, err = h.resolvePrices(events)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "PRICE_RESOLUTION_ERROR",
					Message: err.Error(),
				},
			})
			return
		}
	}

	scenarios := make([]analysis.Scenario, 0, len(req.Variations))
	for _, v := range req.Variations {
		merged := config.MergeContract(toContractConfig(req.BaseContract), toContractConfig(v.Contract))
		params, err := merged.ToParams()
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "VALIDATION_ERROR",
					Message: err.Error(),
					Details: map[string]interface{}{"variation": v.Name},
				},
			})
			return
		}
		scenarios = append(scenarios, analysis.Scenario{
			Name:   v.Name,
			Events: events,
			Params: params,
		})
	}

	ranked := analysis.Rank(analysis.Sweep(scenarios))
	outcomes := make([]models.SweepOutcome, 0, len(ranked))
	for _, o := range ranked {
		out := models.SweepOutcome{Name: o.Name, FinalVolume: o.FinalVolume}
		if o.Err != nil {
			out.Error = o.Err.Error()
		} else {
			out.TotalValue = o.TotalValue.String()
		}
		outcomes = append(outcomes, out)
	}

	c.JSON(http.StatusOK, models.SweepResponse{Outcomes: outcomes})
}

// Helper methods

func (h *ValuationHandler) resolvePrices(events []model.Event) ([]model.Event, error) {
	if h.estimator == nil {
		return nil, errors.New("no price history configured; set pricing.series_csv")
	}
	return h.estimator.ResolvePrices(events)
}

// buildParams converts a request contract into engine parameters. If
// contract_file names a preset under examples/contracts/, it is loaded first
// and request fields override it.
func buildParams(spec models.ContractSpec) (model.ContractParams, string, error) {
	cc := toContractConfig(spec)

	if spec.ContractFile != "" {
		contractDir := os.Getenv("CONTRACT_DIR")
		if contractDir == "" {
			contractDir = filepath.Join("examples", "contracts")
		}
		path := filepath.Join(contractDir, spec.ContractFile+".yaml")
		loaded, err := config.LoadContractUnchecked(path)
		if err != nil {
			return model.ContractParams{}, "", err
		}
		cc = config.MergeContract(loaded.Contract, cc)
	}

	params, err := cc.ToParams()
	return params, cc.Name, err
}

func toContractConfig(spec models.ContractSpec) config.ContractConfig {
	return config.ContractConfig{
		Name:                spec.Name,
		MaxStorageCapacity:  spec.MaxStorageCapacity,
		InjectionRateLimit:  spec.InjectionRateLimit,
		WithdrawalRateLimit: spec.WithdrawalRateLimit,
		StorageCostMode:     spec.StorageCostMode,
		StorageCostRate:     spec.StorageCostRate,
		StorageCostProrate:  spec.StorageCostProrate,
		OperationFeeBasis:   spec.OperationFeeBasis,
		OperationFeeAmount:  spec.OperationFeeAmount,
		TransportFee:        spec.TransportFee,
		AllowPartialFill:    spec.AllowPartialFill,
	}
}

func buildEvents(items []models.ScheduleItem) ([]model.Event, error) {
	entries := make([]config.ScheduleEntry, len(items))
	for i, it := range items {
		entries[i] = config.ScheduleEntry{
			Date:   it.Date,
			Kind:   it.Kind,
			Volume: it.Volume,
			Price:  it.Price,
		}
	}
	return config.BuildSchedule(entries)
}

// respondValuationError maps engine error types to HTTP status codes.
func respondValuationError(c *gin.Context, err error) {
	var verr *valuation.ValidationError
	var cerr *valuation.CapacityExceededError
	var rerr *valuation.RateLimitExceededError

	switch {
	case errors.As(err, &verr):
		detail := models.ErrorDetail{Code: "VALIDATION_ERROR", Message: verr.Error()}
		if verr.Index >= 0 {
			detail.Details = map[string]interface{}{"event_index": verr.Index}
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: detail})
	case errors.As(err, &cerr):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "CAPACITY_EXCEEDED",
				Message: cerr.Error(),
				Details: map[string]interface{}{
					"date":      cerr.Date.Format("2006-01-02"),
					"requested": cerr.Requested,
					"headroom":  cerr.Headroom,
				},
			},
		})
	case errors.As(err, &rerr):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "RATE_LIMIT_EXCEEDED",
				Message: rerr.Error(),
				Details: map[string]interface{}{
					"date":      rerr.Date.Format("2006-01-02"),
					"kind":      string(rerr.Kind),
					"requested": rerr.Requested,
					"limit":     rerr.Limit,
				},
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "VALUATION_ERROR",
				Message: err.Error(),
			},
		})
	}
}

func outcomeLabel(err error) string {
	var verr *valuation.ValidationError
	var cerr *valuation.CapacityExceededError
	var rerr *valuation.RateLimitExceededError
	switch {
	case errors.As(err, &verr):
		return "validation_error"
	case errors.As(err, &cerr):
		return "capacity_exceeded"
	case errors.As(err, &rerr):
		return "rate_limit_exceeded"
	default:
		return "error"
	}
}

func buildResponse(id string, result *valuation.Result, includeLedger bool) models.ValuationResponse {
	resp := models.ValuationResponse{
		ID:      id,
		Status:  "completed",
		Summary: buildSummary(result),
	}
	if includeLedger {
		resp.Ledger = convertLedger(result.Ledger)
	}
	return resp
}

func buildSummary(result *valuation.Result) models.ValuationSummary {
	summary := models.ValuationSummary{
		TotalValue: result.TotalValue.String(),
		Breakdown: models.Breakdown{
			PurchaseCost:  result.Breakdown.PurchaseCost.String(),
			SaleProceeds:  result.Breakdown.SaleProceeds.String(),
			StorageFees:   result.Breakdown.StorageFees.String(),
			OperationFees: result.Breakdown.OperationFees.String(),
			TransportFees: result.Breakdown.TransportFees.String(),
		},
		FinalVolume: result.FinalVolume,
		EventCount:  len(result.Ledger),
	}
	if len(result.Ledger) > 0 {
		summary.Window = models.TimeWindow{
			Start: result.Ledger[0].Date,
			End:   result.Ledger[len(result.Ledger)-1].Date,
		}
	}
	return summary
}

func convertLedger(ledger []valuation.LedgerRow) []models.LedgerRow {
	out := make([]models.LedgerRow, len(ledger))
	for i, row := range ledger {
		out[i] = models.LedgerRow{
			Index:           row.Index,
			Date:            row.Date,
			Kind:            string(row.Kind),
			Price:           row.Price,
			RequestedVolume: row.RequestedVolume,
			MovedVolume:     row.MovedVolume,
			VolumeStart:     row.VolumeStart,
			VolumeEnd:       row.VolumeEnd,
			TradeCashFlow:   row.TradeCashFlow.String(),
			OperationFee:    row.OperationFee.String(),
			TransportFee:    row.TransportFee.String(),
			StorageFee:      row.StorageFee.String(),
			CashFlow:        row.CashFlow.String(),
			CumulativeValue: row.CumulativeValue.String(),
		}
	}
	return out
}
