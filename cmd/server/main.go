package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edgebook/internal/api"
	"edgebook/internal/config"
	"edgebook/internal/repository"
	"edgebook/internal/service"
	"edgebook/internal/websocket"
	"edgebook/pkg/utils"

	"go.uber.org/zap"

	_ "github.com/lib/pq"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	logger := utils.InitLogger(utils.LogConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	defer logger.Sync()

	// Инициализация базы данных
	db, err := initDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database",
			zap.String("dsn", cfg.Database.DSNWithoutPassword()),
			zap.Error(err),
		)
	}
	defer db.Close()

	logger.Info("Connected to database", zap.String("dsn", cfg.Database.DSNWithoutPassword()))

	// Инициализация репозиториев
	bankrollRepo := repository.NewBankrollRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	// WebSocket hub для real-time обновлений
	hub := websocket.NewHub()
	go hub.Run()

	// Инициализация сервисов
	locks := service.NewUserLocks()

	bankrollService := service.NewBankrollService(
		db,
		bankrollRepo,
		tradeRepo,
		historyRepo,
		locks,
		cfg.Ledger.StartingBalance,
	)
	bankrollService.SetWebSocketHub(hub)

	settlementService := service.NewSettlementService(
		db,
		bankrollRepo,
		tradeRepo,
		historyRepo,
		locks,
	)
	settlementService.SetWebSocketHub(hub)

	statsService := service.NewStatsService(tradeRepo)
	performanceService := service.NewPerformanceService(tradeRepo, bankrollRepo)

	// Настройка зависимостей для API
	deps := &api.Dependencies{
		BankrollService:    bankrollService,
		SettlementService:  settlementService,
		StatsService:       statsService,
		PerformanceService: performanceService,
		Hub:                hub,
		Logger:             logger,
		MetricsTokenHash:   cfg.Security.APITokenHash,
		AllowedOrigin:      cfg.Security.AllowedOrigin,
	}

	// Настройка HTTP роутера
	router := api.SetupRoutes(deps)

	// HTTP сервер
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Запуск сервера в отдельной горутине
	go func() {
		logger.Info("Starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Останавливаем hub, новые broadcast после этого теряются
	hub.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// initDatabase создает подключение к базе данных с настроенным пулом
func initDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настройка пула соединений
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Проверка подключения
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
