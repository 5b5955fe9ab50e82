package service

import (
	"errors"
	"fmt"

	"edgebook/internal/models"
	"edgebook/internal/repository"
	"edgebook/pkg/utils"
)

// confidenceTierBounds - границы корзин уверенности в процентах.
// Верхняя граница не включается, последняя корзина закрыта сверху на 100.
var confidenceTierBounds = []struct {
	label string
	lower float64
	upper float64
}{
	{"0-59", 0, 60},
	{"60-74", 60, 75},
	{"75-89", 75, 90},
	{"90-100", 90, 101},
}

// PerformanceService - отчетные срезы по рассчитанным ставкам:
// разбивки по виду спорта и типу ставки, корзины уверенности,
// серии и максимальная просадка.
type PerformanceService struct {
	tradeRepo    TradeAnalyticsRepository
	bankrollRepo BankrollReader
}

// NewPerformanceService создает новый экземпляр сервиса отчетов
func NewPerformanceService(tradeRepo TradeAnalyticsRepository, bankrollRepo BankrollReader) *PerformanceService {
	return &PerformanceService{
		tradeRepo:    tradeRepo,
		bankrollRepo: bankrollRepo,
	}
}

// GetBySport возвращает разбивку результатов по видам спорта
func (s *PerformanceService) GetBySport(userID string) ([]*models.PerformanceBreakdown, error) {
	rows, err := s.tradeRepo.GetPerformanceBySport(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sport breakdown: %w", err)
	}
	return rows, nil
}

// GetByBetType возвращает разбивку результатов по типам ставок
func (s *PerformanceService) GetByBetType(userID string) ([]*models.PerformanceBreakdown, error) {
	rows, err := s.tradeRepo.GetPerformanceByBetType(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bet type breakdown: %w", err)
	}
	return rows, nil
}

// GetConfidenceTiers раскладывает рассчитанные ставки по корзинам
// уверенности, указанной при размещении. Ставки без оценки уверенности
// пропускаются. Винрейт корзины считается только по won/lost.
func (s *PerformanceService) GetConfidenceTiers(userID string) ([]models.ConfidenceTier, error) {
	trades, err := s.tradeRepo.GetSettled(userID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load settled trades: %w", err)
	}

	tiers := make([]models.ConfidenceTier, len(confidenceTierBounds))
	for i, b := range confidenceTierBounds {
		tiers[i] = models.ConfidenceTier{Label: b.label, Lower: b.lower, Upper: b.upper}
	}

	for _, t := range trades {
		if t.Confidence == nil {
			continue
		}
		for i, b := range confidenceTierBounds {
			if *t.Confidence < b.lower || *t.Confidence >= b.upper {
				continue
			}
			tiers[i].Bets++
			switch t.Status {
			case models.TradeStatusWon:
				tiers[i].Wins++
			case models.TradeStatusLost:
				tiers[i].Losses++
			}
			break
		}
	}

	for i := range tiers {
		decided := tiers[i].Wins + tiers[i].Losses
		if decided > 0 {
			tiers[i].WinRate = float64(tiers[i].Wins) / float64(decided) * 100
		}
	}

	return tiers, nil
}

// GetStreakReport восстанавливает серии и максимальную просадку,
// проигрывая рассчитанные ставки в порядке расчета.
//
// Просадка измеряется от пикового баланса в процентах. Отмененные и
// нерассчитанные ставки в проигрывании не участвуют, поэтому кривая
// баланса здесь - кривая реализованного профита, а не кассовый остаток.
func (s *PerformanceService) GetStreakReport(userID string) (*models.StreakReport, error) {
	startingBalance := models.DefaultStartingBalance
	bankroll, err := s.bankrollRepo.GetByUserID(userID)
	if err == nil {
		startingBalance = bankroll.StartingBalance
	} else if !errors.Is(err, repository.ErrBankrollNotFound) {
		return nil, fmt.Errorf("failed to load bankroll: %w", err)
	}

	trades, err := s.tradeRepo.GetSettled(userID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load settled trades: %w", err)
	}

	report := &models.StreakReport{
		PeakBalance:   startingBalance,
		TroughBalance: startingBalance,
		SettledBets:   len(trades),
	}

	balance := startingBalance
	peak := startingBalance
	current := 0

	for _, t := range trades {
		switch t.Status {
		case models.TradeStatusWon:
			if current >= 0 {
				current++
			} else {
				current = 1
			}
			if current > report.LongestWinStreak {
				report.LongestWinStreak = current
			}
		case models.TradeStatusLost:
			if current <= 0 {
				current--
			} else {
				current = -1
			}
			if -current > report.LongestLoseStreak {
				report.LongestLoseStreak = -current
			}
		case models.TradeStatusPush:
			current = 0
		}

		balance = utils.RoundToCents(balance + t.ProfitLoss)
		if balance > peak {
			peak = balance
		}
		if peak > 0 {
			drawdown := (peak - balance) / peak * 100
			if drawdown > report.MaxDrawdownPct {
				report.MaxDrawdownPct = drawdown
				report.PeakBalance = peak
				report.TroughBalance = balance
			}
		}
	}

	report.CurrentStreak = current
	return report, nil
}
