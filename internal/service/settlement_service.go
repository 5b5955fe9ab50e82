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

// SettleBetRequest - параметры расчета ставки
type SettleBetRequest struct {
	Result           string   `json:"result"`
	ResultScore      string   `json:"result_score,omitempty"`
	ClosingLineValue *float64 `json:"closing_line_value,omitempty"`
}

// SettlementService - расчет ставок и проводка результата по банкроллу.
//
// Машина состояний ставки: pending -> won | lost | push | cancelled.
// Рассчитанная ставка терминальна, повторный расчет возвращает
// ErrAlreadySettled и не меняет банкролл. Гонка двух расчетов одной
// ставки дополнительно отсекается на уровне БД условием status = pending.
type SettlementService struct {
	db           *sql.DB
	bankrollRepo *repository.BankrollRepository
	tradeRepo    *repository.TradeRepository
	historyRepo  *repository.HistoryRepository
	locks        *UserLocks

	// WebSocket hub для real-time обновлений (может быть nil)
	wsHub LedgerBroadcaster
}

// NewSettlementService создает новый экземпляр сервиса расчетов
func NewSettlementService(
	db *sql.DB,
	bankrollRepo *repository.BankrollRepository,
	tradeRepo *repository.TradeRepository,
	historyRepo *repository.HistoryRepository,
	locks *UserLocks,
) *SettlementService {
	return &SettlementService{
		db:           db,
		bankrollRepo: bankrollRepo,
		tradeRepo:    tradeRepo,
		historyRepo:  historyRepo,
		locks:        locks,
	}
}

// SetWebSocketHub устанавливает WebSocket hub для broadcast обновлений
func (s *SettlementService) SetWebSocketHub(hub LedgerBroadcaster) {
	s.wsHub = hub
}

// SettleBet рассчитывает ставку с указанным исходом.
// Выполняет:
// 1. Валидацию исхода (won/lost/push)
// 2. Проверку принадлежности ставки пользователю
// 3. Проводку денег: won возвращает полную выплату, push возвращает
//    ставку, lost не меняет баланс (ставка списана при размещении)
// 4. Обновление счетчиков, серий и high-water mark
// 5. Запись точки истории банкролла
// Ставка, счетчики и история пишутся в одной транзакции.
func (s *SettlementService) SettleBet(userID string, tradeID int, req *SettleBetRequest) (*models.SettlementResult, error) {
	start := time.Now()

	if err := utils.ValidateResult(req.Result); err != nil {
		return nil, ErrInvalidResult
	}

	lock := s.locks.Get(userID)
	lock.Lock()
	defer lock.Unlock()

	trade, err := s.tradeRepo.GetByID(tradeID)
	if err != nil {
		if errors.Is(err, repository.ErrTradeNotFound) {
			return nil, ErrTradeNotFound
		}
		return nil, fmt.Errorf("failed to load trade: %w", err)
	}
	if trade.UserID != userID {
		return nil, ErrNotAuthorized
	}
	if !trade.IsPending() {
		return nil, ErrAlreadySettled
	}

	bankroll, err := s.bankrollRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bankroll: %w", err)
	}

	now := time.Now()
	trade.Status = req.Result
	trade.ResultScore = req.ResultScore
	trade.ClosingLineValue = req.ClosingLineValue
	trade.SettledAt = &now

	s.applyResult(bankroll, trade)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.tradeRepo.WithTx(tx).UpdateSettlement(trade); err != nil {
		if errors.Is(err, repository.ErrTradeNotPending) {
			return nil, ErrAlreadySettled
		}
		return nil, fmt.Errorf("failed to settle trade: %w", err)
	}
	if err := s.bankrollRepo.WithTx(tx).Save(bankroll); err != nil {
		return nil, fmt.Errorf("failed to save bankroll: %w", err)
	}

	snapshot := &models.HistorySnapshot{
		UserID:     userID,
		Balance:    bankroll.CurrentBalance,
		ProfitLoss: bankroll.TotalProfitLoss(),
		TotalBets:  bankroll.TotalBets,
		RecordedAt: now,
	}
	if err := s.historyRepo.WithTx(tx).Append(snapshot); err != nil {
		return nil, fmt.Errorf("failed to append bankroll history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	RecordBetSettled(trade.Status, float64(time.Since(start).Milliseconds()))

	if s.wsHub != nil {
		s.wsHub.BroadcastTradeUpdate(trade)
		s.wsHub.BroadcastBankrollUpdate(bankroll.Snapshot())
	}

	unitSize := bankroll.UnitSize()
	result := &models.SettlementResult{
		Trade:         trade,
		ProfitLoss:    trade.ProfitLoss,
		NewBalance:    bankroll.CurrentBalance,
		CurrentStreak: bankroll.CurrentStreak,
		ROIPercentage: bankroll.ROIPercentage(),
		WinPercentage: bankroll.WinPercentage(),
	}
	if unitSize > 0 {
		result.UnitsWon = trade.ProfitLoss / unitSize
	}
	return result, nil
}

// applyResult проводит исход ставки по банкроллу: деньги, счетчики, серии
func (s *SettlementService) applyResult(b *models.Bankroll, t *models.Trade) {
	switch t.Status {
	case models.TradeStatusWon:
		t.ProfitLoss = utils.RoundToCents(t.PotentialPayout - t.Stake)
		b.CurrentBalance = utils.RoundToCents(b.CurrentBalance + t.PotentialPayout)
		b.TotalWon = utils.RoundToCents(b.TotalWon + t.ProfitLoss)
		b.WinningBets++
		if b.CurrentStreak >= 0 {
			b.CurrentStreak++
		} else {
			b.CurrentStreak = 1
		}
		if b.CurrentStreak > b.LongestWinStreak {
			b.LongestWinStreak = b.CurrentStreak
		}
	case models.TradeStatusLost:
		t.ProfitLoss = utils.RoundToCents(-t.Stake)
		b.TotalLost = utils.RoundToCents(b.TotalLost + t.Stake)
		b.LosingBets++
		if b.CurrentStreak <= 0 {
			b.CurrentStreak--
		} else {
			b.CurrentStreak = -1
		}
		if -b.CurrentStreak > b.LongestLoseStreak {
			b.LongestLoseStreak = -b.CurrentStreak
		}
	case models.TradeStatusPush:
		t.ProfitLoss = 0
		b.CurrentBalance = utils.RoundToCents(b.CurrentBalance + t.Stake)
		b.Pushes++
		b.CurrentStreak = 0
	}

	b.PendingBets--
	if b.CurrentBalance > b.HighWaterMark {
		b.HighWaterMark = b.CurrentBalance
	}
	b.UpdatedAt = time.Now()
}
