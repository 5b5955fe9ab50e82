package service

import (
	"sync"

	"edgebook/internal/models"
	"edgebook/internal/repository"
)

// ============ Mock TradeAnalyticsRepository ============

type MockTradeAnalyticsRepository struct {
	settled    []*models.Trade
	samples    []models.FactorSample
	bySport    []*models.PerformanceBreakdown
	byBetType  []*models.PerformanceBreakdown
	settledErr error
	samplesErr error
	perfErr    error

	// Последние запрошенные фильтры
	lastSport  string
	lastFactor string
}

func NewMockTradeAnalyticsRepository() *MockTradeAnalyticsRepository {
	return &MockTradeAnalyticsRepository{}
}

func (m *MockTradeAnalyticsRepository) GetSettled(userID, sport string) ([]*models.Trade, error) {
	if m.settledErr != nil {
		return nil, m.settledErr
	}
	m.lastSport = sport
	if sport == "" {
		return m.settled, nil
	}
	var filtered []*models.Trade
	for _, t := range m.settled {
		if t.Sport == sport {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (m *MockTradeAnalyticsRepository) GetFactorSamples(userID, factor string) ([]models.FactorSample, error) {
	if m.samplesErr != nil {
		return nil, m.samplesErr
	}
	m.lastFactor = factor
	return m.samples, nil
}

func (m *MockTradeAnalyticsRepository) GetPerformanceBySport(userID string) ([]*models.PerformanceBreakdown, error) {
	if m.perfErr != nil {
		return nil, m.perfErr
	}
	return m.bySport, nil
}

func (m *MockTradeAnalyticsRepository) GetPerformanceByBetType(userID string) ([]*models.PerformanceBreakdown, error) {
	if m.perfErr != nil {
		return nil, m.perfErr
	}
	return m.byBetType, nil
}

// ============ Mock BankrollReader ============

type MockBankrollReader struct {
	bankrolls map[string]*models.Bankroll
	getErr    error
}

func NewMockBankrollReader() *MockBankrollReader {
	return &MockBankrollReader{bankrolls: make(map[string]*models.Bankroll)}
}

func (m *MockBankrollReader) GetByUserID(userID string) (*models.Bankroll, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if b, ok := m.bankrolls[userID]; ok {
		return b, nil
	}
	return nil, repository.ErrBankrollNotFound
}

// ============ Mock LedgerBroadcaster ============

type MockLedgerBroadcaster struct {
	mu              sync.Mutex
	bankrollUpdates []*models.BankrollResponse
	tradeUpdates    []*models.Trade
}

func NewMockLedgerBroadcaster() *MockLedgerBroadcaster {
	return &MockLedgerBroadcaster{}
}

func (m *MockLedgerBroadcaster) BroadcastBankrollUpdate(b *models.BankrollResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bankrollUpdates = append(m.bankrollUpdates, b)
}

func (m *MockLedgerBroadcaster) BroadcastTradeUpdate(t *models.Trade) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tradeUpdates = append(m.tradeUpdates, t)
}

func (m *MockLedgerBroadcaster) BankrollUpdateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bankrollUpdates)
}

func (m *MockLedgerBroadcaster) TradeUpdateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tradeUpdates)
}

// ============ Хелперы для сборки ставок ============

func settledTrade(sport, betType, status string, stake float64, odds int, profitLoss float64) *models.Trade {
	return &models.Trade{
		UserID:     "default",
		Sport:      sport,
		BetType:    betType,
		Status:     status,
		Stake:      stake,
		Odds:       odds,
		ProfitLoss: profitLoss,
	}
}

func withConfidence(t *models.Trade, confidence float64) *models.Trade {
	t.Confidence = &confidence
	return t
}
