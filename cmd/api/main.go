package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/printfleet/supply-service/config"
	"github.com/printfleet/supply-service/internal/pkg/broker"
	"github.com/printfleet/supply-service/internal/pkg/cache"
	"github.com/printfleet/supply-service/internal/pkg/database/postgres"
	"github.com/printfleet/supply-service/internal/pkg/logger"
	"github.com/printfleet/supply-service/internal/pkg/middleware"
	"github.com/printfleet/supply-service/internal/pkg/search"
	"github.com/printfleet/supply-service/internal/server"

	alertH "github.com/printfleet/supply-service/internal/alert/handler"
	alertRepoPkg "github.com/printfleet/supply-service/internal/alert/repository"

	companyRepoPkg "github.com/printfleet/supply-service/internal/company/repository"

	invH "github.com/printfleet/supply-service/internal/inventory/handler"
	invRepoPkg "github.com/printfleet/supply-service/internal/inventory/repository"
	invUCPkg "github.com/printfleet/supply-service/internal/inventory/usecase"

	printerH "github.com/printfleet/supply-service/internal/printer/handler"
	printerRepoPkg "github.com/printfleet/supply-service/internal/printer/repository"
	printerUCPkg "github.com/printfleet/supply-service/internal/printer/usecase"

	jobH "github.com/printfleet/supply-service/internal/printjob/handler"
	jobListenerPkg "github.com/printfleet/supply-service/internal/printjob/listener"
	jobRepoPkg "github.com/printfleet/supply-service/internal/printjob/repository"
	jobUCPkg "github.com/printfleet/supply-service/internal/printjob/usecase"

	maintH "github.com/printfleet/supply-service/internal/maintenance/handler"
	maintRepoPkg "github.com/printfleet/supply-service/internal/maintenance/repository"

	supplyH "github.com/printfleet/supply-service/internal/supply/handler"
	supplySweeperPkg "github.com/printfleet/supply-service/internal/supply/sweeper"
	supplyUCPkg "github.com/printfleet/supply-service/internal/supply/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.Config{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     false,
		DisableStacktrace: false,
	}
	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	companyRepo := companyRepoPkg.NewPGRepository(db)
	printerRepo := printerRepoPkg.NewPGRepository(db)
	jobRepo := jobRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	maintRepo := maintRepoPkg.NewPGRepository(db)
	alertRepo := alertRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5.5 Initialize Kafka Consumer
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 5.8 Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (fleet search degrades to listing)", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 6. Initialize UseCases
	invUC := invUCPkg.NewInventoryUseCase(invRepo, redisClient, appLogger)
	printerUC := printerUCPkg.NewPrinterUseCase(printerRepo, esClient, appLogger)
	jobUC := jobUCPkg.NewPrintJobUseCase(jobRepo, invUC, appLogger)
	supplyUC := supplyUCPkg.NewSupplyUseCase(jobRepo, invRepo, alertRepo, companyRepo, redisClient, appLogger, supplyUCPkg.Options{
		QueryTimeout:       cfg.Alerting.QueryTimeout,
		ProjectionCacheTTL: cfg.Alerting.ProjectionCacheTTL,
	})

	// 6.5 Background work
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jobListener := jobListenerPkg.NewPrintJobListener(kafkaConsumer, jobUC, appLogger)
	go jobListener.Start(ctx)

	sweeper := supplySweeperPkg.NewSweeper(supplyUC, cfg.Alerting.SweepInterval, appLogger)
	go sweeper.Start(ctx)

	// 7. HTTP Server
	limiter := middleware.NewTenantLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	stopSweeper := limiter.StartSweeper(time.Minute)
	defer stopSweeper()

	router := server.NewRouter(appLogger, limiter,
		supplyH.NewSupplyHandler(supplyUC, appLogger),
		alertH.NewAlertHandler(alertRepo, appLogger),
		printerH.NewPrinterHandler(printerUC, appLogger),
		jobH.NewPrintJobHandler(jobUC, appLogger),
		invH.NewInventoryHandler(invUC, appLogger),
		maintH.NewMaintenanceHandler(maintRepo, appLogger),
	)

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	appLogger.Info("Server stopped")
}
