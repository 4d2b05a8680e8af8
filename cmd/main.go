package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carrental/user-service/internal/bootstrap"
	accountcmd "github.com/carrental/user-service/internal/command"
	"github.com/carrental/user-service/internal/config"
	"github.com/carrental/user-service/internal/currency"
	"github.com/carrental/user-service/internal/handler"
	"github.com/carrental/user-service/internal/logging"
	"github.com/carrental/user-service/internal/metrics"
	accountqry "github.com/carrental/user-service/internal/query"
	"github.com/carrental/user-service/internal/repository"
	"github.com/carrental/user-service/shared/events"
	"github.com/carrental/user-service/shared/middleware"
	redisClient "github.com/carrental/user-service/shared/redis"
	"github.com/carrental/user-service/shared/utils"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.NewJSON(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "user service stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logging.SlogLogger) error {
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// Redis carries account events and the bootstrap lock; both are optional.
	var publisher accountcmd.EventPublisher = events.NopPublisher{}
	var redis *redisClient.Client
	if cfg.EventsEnabled() {
		redis, err = redisClient.NewClient(ctx, redisClient.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redis.Close()
		publisher = events.NewPublisher(redis.Client)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	hasher := utils.BcryptHasher{Cost: cfg.BcryptCost}

	enforcer := bootstrap.NewEnforcer(store, hasher, m, logger)
	if redis != nil {
		enforcer = enforcer.WithLock(redis, cfg.BootstrapLockTTL)
	}
	if _, err := enforcer.EnsureAdmin(ctx); err != nil {
		return fmt.Errorf("bootstrap admin account: %w", err)
	}

	// --- CQRS wiring ---
	commandSvc := accountcmd.NewAccountCommandService(store, currency.Default(), hasher, publisher, m, logger)
	querySvc := accountqry.NewAccountQueryService(store)
	accountHandler := handler.NewAccountHandler(commandSvc, querySvc)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.LoggingMiddleware(logger), m.GinMiddleware())

	limiter := middleware.NewClientLimiter(cfg.RegisterRateLimit, cfg.RegisterRateBurst, 0)
	accountHandler.Routes(router,
		middleware.AuthMiddleware([]byte(cfg.JWTSecret)),
		middleware.RateLimitMiddleware(limiter),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "user service starting", "port", cfg.Port, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config) (repository.AccountStore, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		return repository.NewMemoryRepository(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	closeDB := func() { _ = db.Close() }

	if err := db.PingContext(ctx); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	if err := repository.Migrate(ctx, db); err != nil {
		closeDB()
		return nil, nil, err
	}
	return repository.NewAccountRepository(db), closeDB, nil
}
