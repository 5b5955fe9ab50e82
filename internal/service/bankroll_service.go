package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"edgebook/internal/models"
	"edgebook/internal/repository"
	"edgebook/pkg/utils"
)

// Ошибки леджера
var (
	ErrInvalidStake        = errors.New("stake must be greater than 0")
	ErrInvalidOdds         = errors.New("american odds cannot be zero")
	ErrInsufficientBalance = errors.New("stake exceeds current balance")
	ErrTradeNotFound       = errors.New("trade not found")
	ErrAlreadySettled      = errors.New("trade is already settled or cancelled")
	ErrNotAuthorized       = errors.New("trade does not belong to this user")
	ErrInvalidResult       = errors.New("result must be one of: won, lost, push")
	ErrInvalidBetType      = errors.New("bet type must be one of: spread, moneyline, total")
	ErrEmptySelection      = errors.New("selection is required")
	ErrEmptySport          = errors.New("sport is required")
)

// DefaultBetLimit - лимит выборки ставок по умолчанию
const DefaultBetLimit = 50

// DefaultChartDays - окно графика банкролла по умолчанию
const DefaultChartDays = 30

// LedgerBroadcaster - интерфейс для отправки обновлений леджера через WebSocket
type LedgerBroadcaster interface {
	BroadcastBankrollUpdate(bankroll *models.BankrollResponse)
	BroadcastTradeUpdate(trade *models.Trade)
}

// PlaceBetRequest - параметры размещения ставки
type PlaceBetRequest struct {
	Sport           string             `json:"sport"`
	Game            string             `json:"game"`
	BetType         string             `json:"bet_type"`
	Selection       string             `json:"selection"`
	Line            *float64           `json:"line,omitempty"`
	Odds            int                `json:"odds"`
	Stake           float64            `json:"stake"`
	Confidence      *float64           `json:"confidence,omitempty"`
	EdgeAtPlacement *float64           `json:"edge_at_placement,omitempty"`
	Notes           string             `json:"notes,omitempty"`
	Factors         map[string]float64 `json:"factors,omitempty"`
}

// BankrollService - бизнес-логика банкролла и жизненного цикла ставок
// до расчета: создание банкролла, размещение, отмена, сброс, выборки.
//
// Все мутации банкролла сериализованы через UserLocks и выполняются
// в одной транзакции БД.
type BankrollService struct {
	db           *sql.DB
	bankrollRepo *repository.BankrollRepository
	tradeRepo    *repository.TradeRepository
	historyRepo  *repository.HistoryRepository
	locks        *UserLocks

	// Стартовый баланс для новых банкроллов (из конфигурации)
	startingBalance float64

	// WebSocket hub для real-time обновлений (может быть nil)
	wsHub LedgerBroadcaster
}

// NewBankrollService создает новый экземпляр сервиса банкролла
func NewBankrollService(
	db *sql.DB,
	bankrollRepo *repository.BankrollRepository,
	tradeRepo *repository.TradeRepository,
	historyRepo *repository.HistoryRepository,
	locks *UserLocks,
	startingBalance float64,
) *BankrollService {
	if startingBalance <= 0 {
		startingBalance = models.DefaultStartingBalance
	}
	return &BankrollService{
		db:              db,
		bankrollRepo:    bankrollRepo,
		tradeRepo:       tradeRepo,
		historyRepo:     historyRepo,
		locks:           locks,
		startingBalance: startingBalance,
	}
}

// SetWebSocketHub устанавливает WebSocket hub для broadcast обновлений.
// Вызывается после инициализации Hub в main.go.
func (s *BankrollService) SetWebSocketHub(hub LedgerBroadcaster) {
	s.wsHub = hub
}

// GetOrCreate возвращает банкролл пользователя, создавая его со стартовым
// балансом при первом обращении. Вместе с новым банкроллом пишется
// первая точка истории.
func (s *BankrollService) GetOrCreate(userID string) (*models.Bankroll, error) {
	lock := s.locks.Get(userID)
	lock.Lock()
	defer lock.Unlock()

	return s.getOrCreateLocked(userID)
}

// getOrCreateLocked - версия GetOrCreate для вызова под уже взятой блокировкой
func (s *BankrollService) getOrCreateLocked(userID string) (*models.Bankroll, error) {
	bankroll, err := s.bankrollRepo.GetByUserID(userID)
	if err == nil {
		return bankroll, nil
	}
	if !errors.Is(err, repository.ErrBankrollNotFound) {
		return nil, fmt.Errorf("failed to load bankroll: %w", err)
	}

	bankroll = models.NewBankroll(userID, s.startingBalance)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.bankrollRepo.WithTx(tx).Create(bankroll); err != nil {
		return nil, fmt.Errorf("failed to create bankroll: %w", err)
	}
	if err := s.appendSnapshot(tx, bankroll); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return bankroll, nil
}

// PlaceBet размещает новую ставку.
// Выполняет:
// 1. Валидацию параметров (stake, odds, bet_type, selection, sport)
// 2. Проверку достаточности баланса (stake == balance допустим)
// 3. Расчет потенциальной выплаты по американским коэффициентам
// 4. Списание ставки с баланса и обновление счетчиков в одной транзакции
func (s *BankrollService) PlaceBet(userID string, req *PlaceBetRequest) (*models.Trade, *models.Bankroll, error) {
	if err := s.validatePlaceBet(req); err != nil {
		return nil, nil, err
	}

	lock := s.locks.Get(userID)
	lock.Lock()
	defer lock.Unlock()

	bankroll, err := s.getOrCreateLocked(userID)
	if err != nil {
		return nil, nil, err
	}

	if req.Stake > bankroll.CurrentBalance {
		return nil, nil, ErrInsufficientBalance
	}

	payout, err := utils.Payout(req.Stake, req.Odds)
	if err != nil {
		return nil, nil, ErrInvalidOdds
	}

	trade := &models.Trade{
		UserID:          userID,
		Sport:           req.Sport,
		Game:            req.Game,
		BetType:         req.BetType,
		Selection:       req.Selection,
		Line:            req.Line,
		Odds:            req.Odds,
		Stake:           utils.RoundToCents(req.Stake),
		PotentialPayout: payout,
		Status:          models.TradeStatusPending,
		Confidence:      req.Confidence,
		EdgeAtPlacement: req.EdgeAtPlacement,
		Notes:           req.Notes,
		PlacedAt:        time.Now(),
	}

	bankroll.CurrentBalance = utils.RoundToCents(bankroll.CurrentBalance - trade.Stake)
	bankroll.TotalWagered = utils.RoundToCents(bankroll.TotalWagered + trade.Stake)
	bankroll.TotalBets++
	bankroll.PendingBets++
	if bankroll.CurrentBalance < bankroll.LowWaterMark {
		bankroll.LowWaterMark = bankroll.CurrentBalance
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.tradeRepo.WithTx(tx).Create(trade); err != nil {
		return nil, nil, fmt.Errorf("failed to create trade: %w", err)
	}
	if len(req.Factors) > 0 {
		if err := s.tradeRepo.WithTx(tx).CreateFactors(trade.ID, userID, req.Factors); err != nil {
			return nil, nil, fmt.Errorf("failed to save trade factors: %w", err)
		}
	}
	if err := s.bankrollRepo.WithTx(tx).Save(bankroll); err != nil {
		return nil, nil, fmt.Errorf("failed to save bankroll: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	RecordBetPlaced(trade.Sport, trade.BetType)

	if s.wsHub != nil {
		s.wsHub.BroadcastTradeUpdate(trade)
		s.wsHub.BroadcastBankrollUpdate(bankroll.Snapshot())
	}

	return trade, bankroll, nil
}

// CancelBet отменяет нерассчитанную ставку с полным возвратом ставки.
// Отмена откатывает счетчики размещения: total_bets и total_wagered
// уменьшаются, как будто ставки не было. Low-water mark не пересчитывается.
func (s *BankrollService) CancelBet(userID string, tradeID int) (*models.Trade, *models.Bankroll, error) {
	lock := s.locks.Get(userID)
	lock.Lock()
	defer lock.Unlock()

	trade, err := s.tradeRepo.GetByID(tradeID)
	if err != nil {
		if errors.Is(err, repository.ErrTradeNotFound) {
			return nil, nil, ErrTradeNotFound
		}
		return nil, nil, fmt.Errorf("failed to load trade: %w", err)
	}
	if trade.UserID != userID {
		return nil, nil, ErrNotAuthorized
	}
	if !trade.IsPending() {
		return nil, nil, ErrAlreadySettled
	}

	bankroll, err := s.bankrollRepo.GetByUserID(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load bankroll: %w", err)
	}

	now := time.Now()
	trade.Status = models.TradeStatusCancelled
	trade.ProfitLoss = 0
	trade.SettledAt = &now

	bankroll.CurrentBalance = utils.RoundToCents(bankroll.CurrentBalance + trade.Stake)
	bankroll.TotalWagered = utils.RoundToCents(bankroll.TotalWagered - trade.Stake)
	bankroll.TotalBets--
	bankroll.PendingBets--

	tx, err := s.db.Begin()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.tradeRepo.WithTx(tx).UpdateSettlement(trade); err != nil {
		if errors.Is(err, repository.ErrTradeNotPending) {
			return nil, nil, ErrAlreadySettled
		}
		return nil, nil, fmt.Errorf("failed to cancel trade: %w", err)
	}
	if err := s.bankrollRepo.WithTx(tx).Save(bankroll); err != nil {
		return nil, nil, fmt.Errorf("failed to save bankroll: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	RecordBetCancelled()

	if s.wsHub != nil {
		s.wsHub.BroadcastTradeUpdate(trade)
		s.wsHub.BroadcastBankrollUpdate(bankroll.Snapshot())
	}

	return trade, bankroll, nil
}

// Reset сбрасывает банкролл к стартовому состоянию.
// Удаляет все ставки, факторы и историю пользователя, обнуляет счетчики
// и пишет новую стартовую точку истории. Необратимая операция.
func (s *BankrollService) Reset(userID string) (*models.Bankroll, error) {
	lock := s.locks.Get(userID)
	lock.Lock()
	defer lock.Unlock()

	bankroll, err := s.getOrCreateLocked(userID)
	if err != nil {
		return nil, err
	}

	fresh := models.NewBankroll(userID, bankroll.StartingBalance)
	fresh.CreatedAt = bankroll.CreatedAt

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	txTrades := s.tradeRepo.WithTx(tx)
	if err := txTrades.DeleteFactorsByUser(userID); err != nil {
		return nil, fmt.Errorf("failed to delete trade factors: %w", err)
	}
	if _, err := txTrades.DeleteByUser(userID); err != nil {
		return nil, fmt.Errorf("failed to delete trades: %w", err)
	}
	if err := s.historyRepo.WithTx(tx).DeleteByUser(userID); err != nil {
		return nil, fmt.Errorf("failed to delete history: %w", err)
	}
	if err := s.bankrollRepo.WithTx(tx).Save(fresh); err != nil {
		return nil, fmt.Errorf("failed to save bankroll: %w", err)
	}
	if err := s.appendSnapshot(tx, fresh); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	RecordBankrollReset(bankroll.PendingBets)

	if s.wsHub != nil {
		s.wsHub.BroadcastBankrollUpdate(fresh.Snapshot())
	}

	return fresh, nil
}

// GetOpenBets возвращает нерассчитанные ставки пользователя,
// отсортированные от новых к старым
func (s *BankrollService) GetOpenBets(userID string, limit int) ([]*models.Trade, error) {
	if limit <= 0 {
		limit = DefaultBetLimit
	}
	return s.tradeRepo.GetPending(userID, limit)
}

// GetBetHistory возвращает ставки пользователя с опциональными фильтрами
// по виду спорта и статусу
func (s *BankrollService) GetBetHistory(userID, sport, status string, limit int) ([]*models.Trade, error) {
	if limit <= 0 {
		limit = DefaultBetLimit
	}
	return s.tradeRepo.GetByUser(userID, sport, status, limit)
}

// GetChartData возвращает точки истории банкролла за последние days дней
func (s *BankrollService) GetChartData(userID string, days int) ([]*models.HistorySnapshot, error) {
	if days <= 0 {
		days = DefaultChartDays
	}
	return s.historyRepo.GetSince(userID, utils.DaysAgo(days))
}

// appendSnapshot пишет текущее состояние банкролла в историю внутри транзакции
func (s *BankrollService) appendSnapshot(tx *sql.Tx, bankroll *models.Bankroll) error {
	snapshot := &models.HistorySnapshot{
		UserID:     bankroll.UserID,
		Balance:    bankroll.CurrentBalance,
		ProfitLoss: bankroll.TotalProfitLoss(),
		TotalBets:  bankroll.TotalBets,
		RecordedAt: time.Now(),
	}
	if err := s.historyRepo.WithTx(tx).Append(snapshot); err != nil {
		return fmt.Errorf("failed to append bankroll history: %w", err)
	}
	return nil
}

// validatePlaceBet проверяет параметры ставки до каких-либо обращений к БД
func (s *BankrollService) validatePlaceBet(req *PlaceBetRequest) error {
	if err := utils.ValidateStake(req.Stake); err != nil {
		return ErrInvalidStake
	}
	if err := utils.ValidateOdds(req.Odds); err != nil {
		return ErrInvalidOdds
	}
	if err := utils.ValidateBetType(req.BetType); err != nil {
		return ErrInvalidBetType
	}
	if err := utils.ValidateSelection(req.Selection); err != nil {
		return ErrEmptySelection
	}
	if err := utils.ValidateSport(req.Sport); err != nil {
		return ErrEmptySport
	}
	return nil
}
