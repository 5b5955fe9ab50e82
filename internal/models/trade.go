package models

import "time"

// Trade представляет одну бумажную ставку
type Trade struct {
	ID     int    `json:"id" db:"id"`
	UserID string `json:"user_id" db:"user_id"`

	// Неизменяемые поля (задаются при размещении)
	Sport           string   `json:"sport" db:"sport"`
	BetType         string   `json:"bet_type" db:"bet_type"` // spread, moneyline, total
	Selection       string   `json:"selection" db:"selection"`
	Line            *float64 `json:"line,omitempty" db:"line"`
	Odds            int      `json:"odds" db:"odds"` // американский формат, не ноль
	Stake           float64  `json:"stake" db:"stake"`
	PotentialPayout float64  `json:"potential_payout" db:"potential_payout"`
	Confidence      *float64 `json:"confidence,omitempty" db:"confidence"`             // 0-100
	EdgeAtPlacement *float64 `json:"edge_at_placement,omitempty" db:"edge_at_placement"`
	Game            string   `json:"game,omitempty" db:"game"`
	Notes           string   `json:"notes,omitempty" db:"notes"`

	// Изменяемые при расчете
	Status           string     `json:"status" db:"status"` // pending, won, lost, push, cancelled
	ProfitLoss       float64    `json:"profit_loss" db:"profit_loss"`
	ResultScore      string     `json:"result_score,omitempty" db:"result_score"`
	ClosingLineValue *float64   `json:"closing_line_value,omitempty" db:"closing_line_value"`
	PlacedAt         time.Time  `json:"placed_at" db:"placed_at"`
	SettledAt        *time.Time `json:"settled_at,omitempty" db:"settled_at"`
}

// Статусы ставки. Переходы односторонние: pending -> терминальный статус.
const (
	TradeStatusPending   = "pending"
	TradeStatusWon       = "won"
	TradeStatusLost      = "lost"
	TradeStatusPush      = "push"
	TradeStatusCancelled = "cancelled"
)

// Типы ставок
const (
	BetTypeSpread    = "spread"
	BetTypeMoneyline = "moneyline"
	BetTypeTotal     = "total"
)

// IsPending возвращает true, пока ставка не рассчитана и не отменена
func (t *Trade) IsPending() bool {
	return t.Status == TradeStatusPending
}

// IsDecided возвращает true для ставок, учитываемых в win rate (won/lost)
func (t *Trade) IsDecided() bool {
	return t.Status == TradeStatusWon || t.Status == TradeStatusLost
}

// IsSettled возвращает true для рассчитанных ставок (won/lost/push)
func (t *Trade) IsSettled() bool {
	return t.Status == TradeStatusWon || t.Status == TradeStatusLost || t.Status == TradeStatusPush
}

// TradeFactor - именованный числовой фактор, записанный при размещении ставки.
// Хранится отдельной таблицей, а не JSON-колонкой, чтобы корреляционные
// запросы работали по индексу.
type TradeFactor struct {
	ID      int     `json:"id" db:"id"`
	TradeID int     `json:"trade_id" db:"trade_id"`
	UserID  string  `json:"user_id" db:"user_id"`
	Name    string  `json:"name" db:"name"`
	Score   float64 `json:"score" db:"score"`
}

// FactorSample - точка данных для корреляции фактора с исходом ставки
type FactorSample struct {
	Score float64 `json:"score" db:"score"`
	Won   bool    `json:"won" db:"won"`
}

// SettlementResult - итог расчета ставки, возвращаемый Settlement Engine
type SettlementResult struct {
	Trade          *Trade  `json:"trade"`
	ProfitLoss     float64 `json:"profit_loss"`
	UnitsWon       float64 `json:"units_won"`
	NewBalance     float64 `json:"new_balance"`
	CurrentStreak  int     `json:"current_streak"`
	ROIPercentage  float64 `json:"roi_percentage"`
	WinPercentage  float64 `json:"win_percentage"`
}
