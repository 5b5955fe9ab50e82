package models

import "time"

// HistorySnapshot - неизменяемая точка истории банкролла.
//
// Добавляется при создании/сбросе банкролла и после каждого расчета ставки.
// Используется только для построения графика, не является авторитетным
// состоянием.
type HistorySnapshot struct {
	ID         int       `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	Balance    float64   `json:"balance" db:"balance"`
	ProfitLoss float64   `json:"profit_loss" db:"profit_loss"`
	TotalBets  int       `json:"total_bets" db:"total_bets"`
	RecordedAt time.Time `json:"recorded_at" db:"recorded_at"`
}
