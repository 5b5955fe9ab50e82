package models

import "time"

// DefaultStartingBalance - стартовый виртуальный банкролл в долларах
const DefaultStartingBalance = 10000.0

// Bankroll представляет виртуальный банкролл пользователя.
//
// Баланс изменяется только через операции размещения, расчета и отмены
// ставок. При отсутствии нерассчитанных ставок выполняется инвариант
// CurrentBalance = StartingBalance + TotalWon - TotalLost.
type Bankroll struct {
	UserID          string  `json:"user_id" db:"user_id"`
	StartingBalance float64 `json:"starting_balance" db:"starting_balance"`
	CurrentBalance  float64 `json:"current_balance" db:"current_balance"`
	HighWaterMark   float64 `json:"high_water_mark" db:"high_water_mark"`
	LowWaterMark    float64 `json:"low_water_mark" db:"low_water_mark"`

	TotalBets   int `json:"total_bets" db:"total_bets"`
	PendingBets int `json:"pending_bets" db:"pending_bets"`
	WinningBets int `json:"winning_bets" db:"winning_bets"`
	LosingBets  int `json:"losing_bets" db:"losing_bets"`
	Pushes      int `json:"pushes" db:"pushes"`

	TotalWagered float64 `json:"total_wagered" db:"total_wagered"`
	TotalWon     float64 `json:"total_won" db:"total_won"`
	TotalLost    float64 `json:"total_lost" db:"total_lost"`

	// Серии: положительное значение - серия выигрышей, отрицательное - проигрышей.
	// Push обнуляет текущую серию.
	CurrentStreak     int `json:"current_streak" db:"current_streak"`
	LongestWinStreak  int `json:"longest_win_streak" db:"longest_win_streak"`
	LongestLoseStreak int `json:"longest_lose_streak" db:"longest_lose_streak"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewBankroll создает банкролл с указанным стартовым балансом.
// Неположительный баланс заменяется дефолтным.
func NewBankroll(userID string, startingBalance float64) *Bankroll {
	if startingBalance <= 0 {
		startingBalance = DefaultStartingBalance
	}
	now := time.Now().UTC()
	return &Bankroll{
		UserID:          userID,
		StartingBalance: startingBalance,
		CurrentBalance:  startingBalance,
		HighWaterMark:   startingBalance,
		LowWaterMark:    startingBalance,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// TotalProfitLoss возвращает суммарный профит/лосс по рассчитанным ставкам
func (b *Bankroll) TotalProfitLoss() float64 {
	return b.TotalWon - b.TotalLost
}

// ROIPercentage возвращает ROI в процентах от всего поставленного объема.
// 0 если ставок не было (деление на ноль недопустимо).
func (b *Bankroll) ROIPercentage() float64 {
	if b.TotalWagered == 0 {
		return 0
	}
	return b.TotalProfitLoss() / b.TotalWagered * 100
}

// WinPercentage возвращает процент выигрышей среди решенных ставок.
// Пуши и отмены не входят в знаменатель.
func (b *Bankroll) WinPercentage() float64 {
	decided := b.WinningBets + b.LosingBets
	if decided == 0 {
		return 0
	}
	return float64(b.WinningBets) / float64(decided) * 100
}

// UnitSize возвращает размер юнита: 1% стартового банкролла.
// Привязан к стартовому (а не текущему) балансу, чтобы серия units_won
// оставалась сравнимой на всей истории банкролла.
func (b *Bankroll) UnitSize() float64 {
	return b.StartingBalance / 100
}

// UnitsWon возвращает профит/лосс, выраженный в юнитах
func (b *Bankroll) UnitsWon() float64 {
	unit := b.UnitSize()
	if unit == 0 {
		return 0
	}
	return b.TotalProfitLoss() / unit
}

// SettledCount возвращает количество рассчитанных ставок (won+lost+push)
func (b *Bankroll) SettledCount() int {
	return b.WinningBets + b.LosingBets + b.Pushes
}

// BankrollResponse - снапшот банкролла с производными метриками для API
type BankrollResponse struct {
	*Bankroll
	TotalProfitLossAmount float64 `json:"total_profit_loss"`
	ROIPercentageValue    float64 `json:"roi_percentage"`
	WinPercentageValue    float64 `json:"win_percentage"`
	UnitsWonValue         float64 `json:"units_won"`
}

// Snapshot собирает полный снапшот банкролла с производными полями
func (b *Bankroll) Snapshot() *BankrollResponse {
	return &BankrollResponse{
		Bankroll:              b,
		TotalProfitLossAmount: b.TotalProfitLoss(),
		ROIPercentageValue:    b.ROIPercentage(),
		WinPercentageValue:    b.WinPercentage(),
		UnitsWonValue:         b.UnitsWon(),
	}
}
