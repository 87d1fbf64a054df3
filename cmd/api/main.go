package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"storage-valuation/internal/api/handlers"
	"storage-valuation/internal/api/middleware"
	"storage-valuation/internal/config"
	"storage-valuation/internal/credit"
	"storage-valuation/internal/logging"
	"storage-valuation/internal/metrics"
	"storage-valuation/internal/pricing"
	"storage-valuation/internal/store"
	"storage-valuation/internal/version"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logging.New(cfg.Logging)
	log.Info().Str("version", version.Version).Str("commit", version.Commit).Msg("starting api")

	ctx := context.Background()

	st, err := buildStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("store init")
	}

	estimator := buildEstimator(cfg, log)
	scorecard, err := buildScorecard(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("scorecard init")
	}

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	valuationHandler := handlers.NewValuationHandler(estimator, st, log)
	runsHandler := handlers.NewRunsHandler(st)
	pricingHandler := handlers.NewPricingHandler(estimator)
	creditHandler := handlers.NewCreditHandler(scorecard, cfg.Credit.RecoveryRate)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": version.Version})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api/v1")
	{
		api.POST("/valuations", valuationHandler.RunValuation)
		api.POST("/valuations/sweep", valuationHandler.SweepContracts)

		api.GET("/runs", runsHandler.ListRuns)
		api.GET("/runs/:id", runsHandler.GetRun)

		api.GET("/prices", pricingHandler.GetPrice)
		api.GET("/prices/curve", pricingHandler.GetCurve)

		api.POST("/credit/expected-loss", creditHandler.ExpectedLoss)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("listening")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// buildStore selects PostgreSQL when a DSN is configured, otherwise the
// in-memory store.
func buildStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, error) {
	if cfg.Database.DSN == "" {
		log.Info().Msg("no database configured, using in-memory run store")
		return store.NewMemoryStore(), nil
	}
	pool, err := pgxpool.New(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	pg := store.NewPostgresStore(pool)
	if err := pg.Init(ctx); err != nil {
		return nil, err
	}
	log.Info().Msg("using postgres run store")
	return pg, nil
}

// buildEstimator loads the price history; a missing or bad file degrades the
// service (no price resolution) rather than failing startup.
func buildEstimator(cfg *config.Config, log zerolog.Logger) *pricing.Estimator {
	if cfg.Pricing.SeriesCSV == "" {
		return nil
	}
	series, err := pricing.LoadCSV(cfg.Pricing.SeriesCSV)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.Pricing.SeriesCSV).Msg("price history unavailable")
		return nil
	}
	estimator, err := pricing.NewEstimator(series)
	if err != nil {
		log.Warn().Err(err).Msg("price estimator unavailable")
		return nil
	}
	log.Info().
		Str("first", series.First().Format("2006-01-02")).
		Str("last", series.Last().Format("2006-01-02")).
		Int("observations", len(series.Dates)).
		Msg("price history loaded")
	return estimator
}

func buildScorecard(cfg *config.Config, log zerolog.Logger) (*credit.Scorecard, error) {
	if cfg.Credit.LoanCSV == "" {
		return credit.DefaultScorecard(), nil
	}
	features, labels, err := credit.LoadLoanCSV(cfg.Credit.LoanCSV)
	if err != nil {
		return nil, err
	}
	log.Info().Int("rows", len(features)).Msg("retraining scorecard from loan book")
	return credit.Fit(features, labels, credit.FitOptions{})
}
