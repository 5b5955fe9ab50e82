package models

// PerformanceBreakdown - агрегат результатов по одному ключу группировки
// (спорт или тип ставки). Считается по trade store на каждый запрос.
type PerformanceBreakdown struct {
	Key           string  `json:"key"` // например "nba" или "spread"
	Bets          int     `json:"bets"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Pushes        int     `json:"pushes"`
	TotalWagered  float64 `json:"total_wagered"`
	ProfitLoss    float64 `json:"profit_loss"`
	WinPercentage float64 `json:"win_percentage"`
	ROIPercentage float64 `json:"roi_percentage"`
}

// ConfidenceTier - результаты в одной полосе заявленной уверенности.
// Используется для проверки, коррелирует ли заявленная уверенность
// с фактическими исходами.
type ConfidenceTier struct {
	Label   string  `json:"label"` // например "60-74"
	Lower   float64 `json:"lower"` // включительно
	Upper   float64 `json:"upper"` // исключительно
	Bets    int     `json:"bets"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	WinRate float64 `json:"win_rate"`
}

// StreakReport - анализ серий и просадки по хронологии рассчитанных ставок
type StreakReport struct {
	CurrentStreak     int     `json:"current_streak"`
	LongestWinStreak  int     `json:"longest_win_streak"`
	LongestLoseStreak int     `json:"longest_lose_streak"`
	MaxDrawdownPct    float64 `json:"max_drawdown_pct"` // крупнейшее падение пик-дно, %
	PeakBalance       float64 `json:"peak_balance"`
	TroughBalance     float64 `json:"trough_balance"`
	SettledBets       int     `json:"settled_bets"`
}
