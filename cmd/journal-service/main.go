package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-trade-journal/internal/journal/config"
	delivery "golang-trade-journal/internal/journal/delivery/http"
	_ "golang-trade-journal/internal/journal/docs"
	"golang-trade-journal/internal/journal/repository"
	"golang-trade-journal/internal/journal/service"
	"golang-trade-journal/internal/journal/workspace"
	"golang-trade-journal/pkg/cache"
	"golang-trade-journal/pkg/logger"
	"golang-trade-journal/pkg/postgres"
	"golang-trade-journal/pkg/redis"
	"golang-trade-journal/pkg/telegram"
	"golang-trade-journal/pkg/utils"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the trade journal service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env file: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Trade Journal Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	db, err := postgres.NewDB(postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize cache
	var store cache.Cache
	switch cfg.Cache.Driver {
	case "redis":
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		defer redisClient.Close()
		store = cache.NewRedis(redisClient.Client)
	case "memory":
		store = cache.NewMemory(cfg.Cache.CleanupInterval)
	default:
		appLogger.Fatal("Unknown cache driver", logger.StringField("driver", cfg.Cache.Driver))
	}

	registry, err := workspace.Builtin(cfg.Journal.Workspaces...)
	if err != nil {
		appLogger.Fatal("Invalid workspace configuration", logger.ErrorField(err))
	}
	loc, err := utils.LoadLocation(cfg.Journal.TimeZone)
	if err != nil {
		appLogger.Fatal("Invalid journal time zone", logger.ErrorField(err))
	}

	var notifier telegram.Notifier
	if cfg.Telegram.Enabled {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.MaxMessagePerMinute)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram client", logger.ErrorField(err))
		}
	}

	// Initialize repositories
	dataStore := repository.NewCachedStore(repository.NewStore(db.DB), store, cfg.Journal.CacheTTL, appLogger)
	tradeRepo := repository.NewTradeRepository(dataStore)
	balanceRepo := repository.NewBalanceRepository(dataStore)
	checklistRepo := repository.NewChecklistRepository(dataStore)
	missedRepo := repository.NewMissedTradeRepository(dataStore)
	planRepo := repository.NewPlanRepository(dataStore)

	// Initialize services
	workspaceSvc := service.NewWorkspaceService(registry)
	checklistSvc := service.NewChecklistService(registry, checklistRepo, store, service.ChecklistOptions{
		ApprovalTTL: cfg.Journal.ApprovalTTL,
		StatsLimit:  cfg.Journal.ChecklistStatsLimit,
	}, appLogger)
	tradeSvc := service.NewTradeService(registry, tradeRepo, balanceRepo, checklistRepo, checklistSvc, notifier, appLogger)
	historySvc := service.NewHistoryService(registry, tradeRepo, balanceRepo, checklistRepo, loc, cfg.Journal.RecentBalanceLimit, appLogger)
	balanceSvc := service.NewBalanceService(registry, balanceRepo, cfg.Journal.RecentBalanceLimit, appLogger)
	missedSvc := service.NewMissedTradeService(registry, missedRepo, loc, appLogger)
	planSvc := service.NewPlanService(registry, planRepo, appLogger)

	if cfg.Digest.Enabled {
		if notifier == nil {
			appLogger.Warn("Digest enabled without Telegram, skipping")
		} else {
			digestSvc := service.NewDigestService(registry, tradeRepo, balanceRepo, notifier, cfg.Digest.Cron, loc, appLogger)
			go func() {
				if err := digestSvc.Start(ctx); err != nil {
					appLogger.Error("Digest scheduler stopped", logger.ErrorField(err))
				}
			}()
		}
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Validator = delivery.NewValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())
	e.Use(delivery.RequestLogger(appLogger))

	delivery.Handlers{
		Workspace:   delivery.NewWorkspaceHandler(workspaceSvc, appLogger),
		Checklist:   delivery.NewChecklistHandler(checklistSvc, appLogger),
		Trade:       delivery.NewTradeHandler(tradeSvc, historySvc, appLogger),
		Balance:     delivery.NewBalanceHandler(balanceSvc, appLogger),
		MissedTrade: delivery.NewMissedTradeHandler(missedSvc, appLogger),
		Plan:        delivery.NewPlanHandler(planSvc, appLogger),
	}.RegisterRoutes(e)

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Trade Journal API
// @version 1.0
// @description Multi-workspace trade journal with a pre-trade checklist gate, balance ledger and analytics.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "journal-service"}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-journal.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing CLI: %s\n", err)
		os.Exit(1)
	}
}
