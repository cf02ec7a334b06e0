package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/loan-score-service/internal/config"
	"github.com/Dan9191/loan-score-service/internal/engine"
	"github.com/Dan9191/loan-score-service/internal/handler"
	"github.com/Dan9191/loan-score-service/internal/metrics"
	"github.com/Dan9191/loan-score-service/internal/middleware"
	"github.com/Dan9191/loan-score-service/internal/ratelimit"
	"github.com/Dan9191/loan-score-service/internal/regulations"
	"github.com/Dan9191/loan-score-service/internal/repository"
	"github.com/Dan9191/loan-score-service/internal/service"
	"github.com/Dan9191/loan-score-service/internal/utils"
	"github.com/Dan9191/loan-score-service/internal/utils/email"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	regs := engine.DefaultRegulations()
	if cfg.RegulationsFile != "" {
		regs, err = regulations.Load(cfg.RegulationsFile)
		if err != nil {
			logger.Fatalf("Failed to load regulations: %v", err)
		}
		logger.Infof("Loaded regulations version %q from %s", regs.Version, cfg.RegulationsFile)
	}

	catalog, err := loadCatalog(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to load bank catalog: %v", err)
	}
	logger.Infof("Bank catalog ready with %d banks (source: %s)", catalog.Len(), cfg.CatalogSource)

	evaluator, err := engine.NewEvaluator(regs, catalog, engine.DefaultScoreWeights())
	if err != nil {
		logger.Fatalf("Failed to build evaluator: %v", err)
	}

	pseudo, err := utils.NewPseudonymizer(cfg.PseudonymKey)
	if err != nil {
		logger.Fatalf("Failed to initialize pseudonymizer: %v", err)
	}

	var notifier service.Notifier
	if cfg.NotificationsEnabled() {
		notifier = email.NewSender(cfg, logger)
	}

	// Initialize layers
	m := metrics.New()
	svc := service.NewService(evaluator, catalog, logger, m, pseudo, notifier)
	h := handler.NewHandler(svc, logger)

	limiter, scheduler, closeLimiter := newLimiter(cfg, logger)
	scheduler.Start()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestID(), middleware.Logging(logger))
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	api := r.PathPrefix("/").Subrouter()
	api.Use(middleware.RateLimit(limiter, logger))
	h.Register(api)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Errorf("Server failed: %v", err)
	case <-quit:
		logger.Info("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}
	<-scheduler.Stop().Done()
	svc.Close()
	closeLimiter()
	logger.Info("Server exited")
}

func loadCatalog(cfg *config.Config, logger *logrus.Logger) (*engine.Catalog, error) {
	if cfg.CatalogSource != config.CatalogSourcePostgres {
		return engine.DefaultCatalog(), nil
	}

	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	// the catalog is read once; the connection is not kept
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	policies, err := repository.NewRepository(db).ListBankPolicies(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Read %d bank policies from database", len(policies))
	return engine.NewCatalog(policies)
}

func newLimiter(cfg *config.Config, logger *logrus.Logger) (ratelimit.Limiter, *cron.Cron, func()) {
	scheduler := cron.New()

	if cfg.RedisAddr != "" {
		rl := ratelimit.NewRedisLimiter(cfg.RedisAddr, cfg.RateLimitCapacity, cfg.RateLimitWindow)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rl.Ping(ctx); err != nil {
			logger.Warnf("Redis at %s unreachable, rate limiting will fail open: %v", cfg.RedisAddr, err)
		}
		return rl, scheduler, func() {
			if err := rl.Close(); err != nil {
				logger.Warnf("Failed to close redis client: %v", err)
			}
		}
	}

	ml := ratelimit.NewMemoryLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow)
	if _, err := scheduler.AddFunc(cfg.LimiterCleanupSchedule, func() {
		if n := ml.Cleanup(); n > 0 {
			logger.Debugf("Removed %d idle rate limit buckets", n)
		}
	}); err != nil {
		logger.Fatalf("Invalid LIMITER_CLEANUP_SCHEDULE %q: %v", cfg.LimiterCleanupSchedule, err)
	}
	return ml, scheduler, func() {}
}
