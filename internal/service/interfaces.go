package service

import (
	"edgebook/internal/models"
	"edgebook/internal/repository"
)

// TradeAnalyticsRepository определяет read-only срез репозитория ставок,
// достаточный для статистики и отчетов
type TradeAnalyticsRepository interface {
	GetSettled(userID, sport string) ([]*models.Trade, error)
	GetFactorSamples(userID, factor string) ([]models.FactorSample, error)
	GetPerformanceBySport(userID string) ([]*models.PerformanceBreakdown, error)
	GetPerformanceByBetType(userID string) ([]*models.PerformanceBreakdown, error)
}

// BankrollReader определяет read-only доступ к банкроллу
type BankrollReader interface {
	GetByUserID(userID string) (*models.Bankroll, error)
}

// Проверяем, что реальные репозитории реализуют интерфейсы
var _ TradeAnalyticsRepository = (*repository.TradeRepository)(nil)
var _ BankrollReader = (*repository.BankrollRepository)(nil)

// ============ Интерфейсы сервисов для Dependency Injection ============

// BankrollServiceInterface определяет интерфейс сервиса банкролла
type BankrollServiceInterface interface {
	GetOrCreate(userID string) (*models.Bankroll, error)
	PlaceBet(userID string, req *PlaceBetRequest) (*models.Trade, *models.Bankroll, error)
	CancelBet(userID string, tradeID int) (*models.Trade, *models.Bankroll, error)
	Reset(userID string) (*models.Bankroll, error)
	GetOpenBets(userID string, limit int) ([]*models.Trade, error)
	GetBetHistory(userID, sport, status string, limit int) ([]*models.Trade, error)
	GetChartData(userID string, days int) ([]*models.HistorySnapshot, error)
}

// SettlementServiceInterface определяет интерфейс сервиса расчетов
type SettlementServiceInterface interface {
	SettleBet(userID string, tradeID int, req *SettleBetRequest) (*models.SettlementResult, error)
}

// StatsServiceInterface определяет интерфейс статистического сервиса
type StatsServiceInterface interface {
	GetEdgeReport(userID, sport string) (*models.EdgeReport, error)
	GetFactorCorrelation(userID, factor string) (*models.FactorCorrelation, error)
}

// PerformanceServiceInterface определяет интерфейс сервиса отчетов
type PerformanceServiceInterface interface {
	GetBySport(userID string) ([]*models.PerformanceBreakdown, error)
	GetByBetType(userID string) ([]*models.PerformanceBreakdown, error)
	GetConfidenceTiers(userID string) ([]models.ConfidenceTier, error)
	GetStreakReport(userID string) (*models.StreakReport, error)
}

// Проверяем, что реальные сервисы реализуют интерфейсы
var _ BankrollServiceInterface = (*BankrollService)(nil)
var _ SettlementServiceInterface = (*SettlementService)(nil)
var _ StatsServiceInterface = (*StatsService)(nil)
var _ PerformanceServiceInterface = (*PerformanceService)(nil)
