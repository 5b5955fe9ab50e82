package models

// EdgeReport представляет результат проверки статистической значимости
// наблюдаемого win rate относительно подразумеваемой вероятности.
type EdgeReport struct {
	TotalBets    int     `json:"total_bets"`    // все рассчитанные ставки, включая push
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Pushes       int     `json:"pushes"`
	WinRate      float64 `json:"win_rate"`      // в процентах
	ExpectedRate float64 `json:"expected_rate"` // средняя подразумеваемая вероятность, %
	Edge         float64 `json:"edge"`          // win_rate - expected_rate

	ZScore        float64 `json:"z_score"`
	PValue        float64 `json:"p_value"`
	IsSignificant bool    `json:"is_significant"` // p < 0.05

	WilsonLower float64 `json:"wilson_lower"` // в процентах
	WilsonUpper float64 `json:"wilson_upper"`

	RequiredSampleSize int     `json:"required_sample_size"`
	CurrentConfidence  float64 `json:"current_confidence"` // 0-95
}

// FactorCorrelation - корреляция именованного фактора с исходом ставок
type FactorCorrelation struct {
	Factor      string  `json:"factor"`
	Correlation float64 `json:"correlation"` // Пирсон, [-1, 1]; 0 если < 5 точек
	SampleSize  int     `json:"sample_size"`
}
