package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"stocksim/internal/client/yahoo"
	"stocksim/internal/config"
	cronrunner "stocksim/internal/cron"
	"stocksim/internal/db"
	"stocksim/internal/handler"
	"stocksim/internal/logger"
	gormrepository "stocksim/internal/repository/gorm"
	"stocksim/internal/series"
	"stocksim/internal/service"

	_ "stocksim/docs"
)

// @title Stock Simulation Tracker API
// @version 1.0
// @description Investment-hypothesis journaling and paper-trading tracker.
// @BasePath /
func main() {
	cfgPath := os.Getenv("ST_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("ST_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	quoteHTTP := &http.Client{Timeout: cfg.Quote.Timeout}
	quoteClient := yahoo.NewClient(quoteHTTP, cfg.Quote.BaseURL)
	store := gormrepository.New(dbConn.Gorm)
	gapFill := series.ParseGapFill(cfg.Indicators.GapFill)

	priceSvc := &service.PriceService{
		Repo:    store,
		Quotes:  quoteClient,
		Logger:  logger,
		Quote:   cfg.Quote,
		Cache:   cfg.PriceCache,
		GapFill: gapFill,
	}
	simSvc := &service.SimulationService{
		Repo:    store,
		Prices:  priceSvc,
		Logger:  logger,
		GapFill: gapFill,
	}
	checkpointSvc := &service.CheckpointService{Repo: store}
	conditionSvc := &service.ConditionService{Repo: store}
	hypothesisSvc := &service.HypothesisService{Repo: store}
	journalSvc := &service.JournalService{Repo: store}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	handler.RegisterDocs(engine)

	stockHandler := &handler.StockHandler{Prices: priceSvc}
	stockHandler.Register(engine)
	simHandler := &handler.SimulationHandler{Sims: simSvc}
	simHandler.Register(engine)
	checkpointHandler := &handler.CheckpointHandler{Checkpoints: checkpointSvc}
	checkpointHandler.Register(engine)
	conditionHandler := &handler.ConditionHandler{Conditions: conditionSvc}
	conditionHandler.Register(engine)
	hypothesisHandler := &handler.HypothesisHandler{Hypotheses: hypothesisSvc}
	hypothesisHandler.Register(engine)
	journalHandler := &handler.JournalHandler{Journals: journalSvc}
	journalHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.PriceCache.RefreshPolicy == "interval" {
		_, err := cronRunner.Add(cfg.PriceCache.RefreshInterval, func(ctx context.Context) {
			if err := priceSvc.RefreshStale(ctx); err != nil {
				logger.Warn("stale price refresh failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register price refresh failed", zap.Error(err))
		}
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
