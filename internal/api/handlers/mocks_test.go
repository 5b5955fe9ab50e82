package handlers

import (
	"errors"
	"sync"
	"time"

	"edgebook/internal/models"
	"edgebook/internal/service"
)

// ErrMockDatabase имитирует сбой хранилища в тестах
var ErrMockDatabase = errors.New("mock database error")

// ============ Mock Bankroll Service ============

// MockBankrollService мок для BankrollServiceInterface
type MockBankrollService struct {
	bankroll *models.Bankroll
	trades   map[int]*models.Trade
	history  []*models.HistorySnapshot
	nextID   int

	placeErr  error
	cancelErr error
	resetErr  error
	getErr    error
	mu        sync.Mutex
}

// NewMockBankrollService создает мок с банкроллом на 10000
func NewMockBankrollService() *MockBankrollService {
	return &MockBankrollService{
		bankroll: models.NewBankroll("default", 10000),
		trades:   make(map[int]*models.Trade),
		nextID:   1,
	}
}

func (m *MockBankrollService) GetOrCreate(userID string) (*models.Bankroll, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.bankroll, nil
}

func (m *MockBankrollService) PlaceBet(userID string, req *service.PlaceBetRequest) (*models.Trade, *models.Bankroll, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.placeErr != nil {
		return nil, nil, m.placeErr
	}

	trade := &models.Trade{
		ID:        m.nextID,
		UserID:    userID,
		Sport:     req.Sport,
		BetType:   req.BetType,
		Selection: req.Selection,
		Odds:      req.Odds,
		Stake:     req.Stake,
		Status:    models.TradeStatusPending,
		PlacedAt:  time.Now(),
	}
	m.nextID++
	m.trades[trade.ID] = trade
	return trade, m.bankroll, nil
}

func (m *MockBankrollService) CancelBet(userID string, tradeID int) (*models.Trade, *models.Bankroll, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancelErr != nil {
		return nil, nil, m.cancelErr
	}

	trade, ok := m.trades[tradeID]
	if !ok {
		return nil, nil, service.ErrTradeNotFound
	}
	trade.Status = models.TradeStatusCancelled
	return trade, m.bankroll, nil
}

func (m *MockBankrollService) Reset(userID string) (*models.Bankroll, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.resetErr != nil {
		return nil, m.resetErr
	}

	m.bankroll = models.NewBankroll(userID, m.bankroll.StartingBalance)
	m.trades = make(map[int]*models.Trade)
	m.history = nil
	return m.bankroll, nil
}

func (m *MockBankrollService) GetOpenBets(userID string, limit int) ([]*models.Trade, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getErr != nil {
		return nil, m.getErr
	}

	var open []*models.Trade
	for _, t := range m.trades {
		if t.IsPending() {
			open = append(open, t)
		}
	}
	return open, nil
}

func (m *MockBankrollService) GetBetHistory(userID, sport, status string, limit int) ([]*models.Trade, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getErr != nil {
		return nil, m.getErr
	}

	var result []*models.Trade
	for _, t := range m.trades {
		if sport != "" && t.Sport != sport {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

func (m *MockBankrollService) GetChartData(userID string, days int) ([]*models.HistorySnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.history, nil
}

// ============ Mock Settlement Service ============

// MockSettlementService мок для SettlementServiceInterface
type MockSettlementService struct {
	result    *models.SettlementResult
	settleErr error
	lastID    int
	mu        sync.Mutex
}

// NewMockSettlementService создает мок с заранее заданным итогом расчета
func NewMockSettlementService() *MockSettlementService {
	now := time.Now()
	return &MockSettlementService{
		result: &models.SettlementResult{
			Trade: &models.Trade{
				ID:         1,
				UserID:     "default",
				Sport:      "nba",
				BetType:    models.BetTypeSpread,
				Selection:  "Lakers",
				Odds:       -110,
				Stake:      100,
				Status:     models.TradeStatusWon,
				ProfitLoss: 90.91,
				SettledAt:  &now,
			},
			ProfitLoss:    90.91,
			UnitsWon:      0.91,
			NewBalance:    10090.91,
			CurrentStreak: 1,
		},
	}
}

func (m *MockSettlementService) SettleBet(userID string, tradeID int, req *service.SettleBetRequest) (*models.SettlementResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.settleErr != nil {
		return nil, m.settleErr
	}
	m.lastID = tradeID
	return m.result, nil
}

// ============ Mock Stats Service ============

// MockStatsService мок для StatsServiceInterface
type MockStatsService struct {
	report      *models.EdgeReport
	correlation *models.FactorCorrelation
	getErr      error
}

// NewMockStatsService создает мок с нейтральным отчетом
func NewMockStatsService() *MockStatsService {
	return &MockStatsService{
		report: &models.EdgeReport{
			TotalBets:    100,
			Wins:         60,
			Losses:       40,
			WinRate:      60.0,
			ExpectedRate: 52.38,
			Edge:         7.62,
			PValue:       0.128,
		},
		correlation: &models.FactorCorrelation{
			Factor:      "rest_advantage",
			Correlation: 0.42,
			SampleSize:  18,
		},
	}
}

func (m *MockStatsService) GetEdgeReport(userID, sport string) (*models.EdgeReport, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.report, nil
}

func (m *MockStatsService) GetFactorCorrelation(userID, factor string) (*models.FactorCorrelation, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.correlation, nil
}

// ============ Mock Performance Service ============

// MockPerformanceService мок для PerformanceServiceInterface
type MockPerformanceService struct {
	bySport   []*models.PerformanceBreakdown
	byBetType []*models.PerformanceBreakdown
	tiers     []models.ConfidenceTier
	streaks   *models.StreakReport
	getErr    error
}

// NewMockPerformanceService создает мок с одной строкой в каждой разбивке
func NewMockPerformanceService() *MockPerformanceService {
	return &MockPerformanceService{
		bySport: []*models.PerformanceBreakdown{
			{Key: "nba", Bets: 10, Wins: 6, Losses: 4, ProfitLoss: 145.46},
		},
		byBetType: []*models.PerformanceBreakdown{
			{Key: "spread", Bets: 10, Wins: 6, Losses: 4, ProfitLoss: 145.46},
		},
		tiers: []models.ConfidenceTier{
			{Label: "0-59", Lower: 0, Upper: 60},
			{Label: "60-74", Lower: 60, Upper: 75},
			{Label: "75-89", Lower: 75, Upper: 90},
			{Label: "90-100", Lower: 90, Upper: 101},
		},
		streaks: &models.StreakReport{
			CurrentStreak:    2,
			LongestWinStreak: 4,
			PeakBalance:      10450,
			TroughBalance:    9890,
			SettledBets:      42,
		},
	}
}

func (m *MockPerformanceService) GetBySport(userID string) ([]*models.PerformanceBreakdown, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.bySport, nil
}

func (m *MockPerformanceService) GetByBetType(userID string) ([]*models.PerformanceBreakdown, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.byBetType, nil
}

func (m *MockPerformanceService) GetConfidenceTiers(userID string) ([]models.ConfidenceTier, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.tiers, nil
}

func (m *MockPerformanceService) GetStreakReport(userID string) (*models.StreakReport, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.streaks, nil
}
