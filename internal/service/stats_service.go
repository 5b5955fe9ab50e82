package service

import (
	"fmt"

	"edgebook/internal/models"
	"edgebook/pkg/utils"
)

// MinFactorSamples - минимальная выборка для расчета корреляции фактора.
// Корреляция Пирсона на меньшей выборке статистически бессмысленна.
const MinFactorSamples = 5

// SignificanceLevel - порог значимости для двустороннего теста
const SignificanceLevel = 0.05

// MaxConfidence - потолок шкалы уверенности в процентах
const MaxConfidence = 95.0

// StatsService - статистическая валидация преимущества беттора.
//
// Отвечает на главный вопрос леджера: превышает ли наблюдаемый винрейт
// ставку безубыточности, подразумеваемую коэффициентами, и достаточна
// ли выборка, чтобы отличить преимущество от удачи.
type StatsService struct {
	tradeRepo TradeAnalyticsRepository
}

// NewStatsService создает новый экземпляр статистического сервиса
func NewStatsService(tradeRepo TradeAnalyticsRepository) *StatsService {
	return &StatsService{tradeRepo: tradeRepo}
}

// GetEdgeReport строит отчет о преимуществе по рассчитанным ставкам
// пользователя, опционально отфильтрованным по виду спорта.
//
// Ожидаемый винрейт - средняя подразумеваемая вероятность по
// коэффициентам рассчитанных ставок. Push не участвует в винрейте,
// но участвует в ожидаемой вероятности. На пустой выборке отчет
// нейтрален: edge = 0, p-value = 1.0.
func (s *StatsService) GetEdgeReport(userID, sport string) (*models.EdgeReport, error) {
	trades, err := s.tradeRepo.GetSettled(userID, sport)
	if err != nil {
		return nil, fmt.Errorf("failed to load settled trades: %w", err)
	}

	report := &models.EdgeReport{
		ExpectedRate: utils.BreakevenRate,
		PValue:       1.0,
	}

	var impliedSum float64
	for _, t := range trades {
		switch t.Status {
		case models.TradeStatusWon:
			report.Wins++
		case models.TradeStatusLost:
			report.Losses++
		case models.TradeStatusPush:
			report.Pushes++
		}
		if p, err := utils.ImpliedProbability(t.Odds); err == nil {
			impliedSum += p
		}
	}
	report.TotalBets = len(trades)

	if report.TotalBets > 0 {
		report.ExpectedRate = impliedSum / float64(report.TotalBets) * 100
	}

	decided := report.Wins + report.Losses
	if decided > 0 {
		report.WinRate = float64(report.Wins) / float64(decided) * 100
		report.Edge = report.WinRate - report.ExpectedRate
	}

	z, p := utils.BinomialPValue(report.WinRate/100, report.ExpectedRate/100, decided)
	report.ZScore = z
	report.PValue = p
	report.IsSignificant = decided > 0 && p < SignificanceLevel

	report.WilsonLower, report.WilsonUpper = utils.WilsonInterval(report.Wins, decided, utils.DefaultZ)

	report.RequiredSampleSize = utils.RequiredSampleSize(report.WinRate/100, 0.05, utils.DefaultZ)
	if report.RequiredSampleSize > 0 {
		confidence := float64(decided) / float64(report.RequiredSampleSize) * MaxConfidence
		if confidence > MaxConfidence {
			confidence = MaxConfidence
		}
		report.CurrentConfidence = confidence
	}

	return report, nil
}

// GetFactorCorrelation возвращает корреляцию Пирсона между оценкой
// фактора и бинарным исходом ставки (1 выигрыш, 0 проигрыш).
// Выборка меньше MinFactorSamples дает корреляцию 0.
func (s *StatsService) GetFactorCorrelation(userID, factor string) (*models.FactorCorrelation, error) {
	samples, err := s.tradeRepo.GetFactorSamples(userID, factor)
	if err != nil {
		return nil, fmt.Errorf("failed to load factor samples: %w", err)
	}

	result := &models.FactorCorrelation{
		Factor:     factor,
		SampleSize: len(samples),
	}
	if len(samples) < MinFactorSamples {
		return result, nil
	}

	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, sample := range samples {
		xs[i] = sample.Score
		if sample.Won {
			ys[i] = 1
		}
	}
	result.Correlation = utils.PearsonCorrelation(xs, ys)

	return result, nil
}
