package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"edgebook/internal/models"
)

// Ошибки репозитория сделок
var (
	ErrTradeNotFound   = errors.New("trade not found")
	ErrTradeNotPending = errors.New("trade is not pending")
)

// TradeRepository - работа с таблицами trades и trade_factors
type TradeRepository struct {
	db DBTX
}

// NewTradeRepository создает новый экземпляр репозитория
func NewTradeRepository(db *sql.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// WithTx возвращает копию репозитория, привязанную к транзакции
func (r *TradeRepository) WithTx(tx *sql.Tx) *TradeRepository {
	return &TradeRepository{db: tx}
}

const tradeColumns = `id, user_id, sport, bet_type, selection, line, odds, stake, potential_payout,
		confidence, edge_at_placement, game, notes,
		status, profit_loss, result_score, closing_line_value, placed_at, settled_at`

// Create создает запись о ставке в статусе pending
func (r *TradeRepository) Create(t *models.Trade) error {
	query := `
		INSERT INTO trades (user_id, sport, bet_type, selection, line, odds, stake, potential_payout,
			confidence, edge_at_placement, game, notes, status, profit_loss, result_score, placed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`

	if t.PlacedAt.IsZero() {
		t.PlacedAt = time.Now().UTC()
	}
	if t.Status == "" {
		t.Status = models.TradeStatusPending
	}

	err := r.db.QueryRow(
		query,
		t.UserID,
		t.Sport,
		t.BetType,
		t.Selection,
		t.Line,
		t.Odds,
		t.Stake,
		t.PotentialPayout,
		t.Confidence,
		t.EdgeAtPlacement,
		t.Game,
		t.Notes,
		t.Status,
		t.ProfitLoss,
		t.ResultScore,
		t.PlacedAt,
	).Scan(&t.ID)

	return err
}

// GetByID возвращает ставку по ID
func (r *TradeRepository) GetByID(id int) (*models.Trade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM trades
		WHERE id = $1`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByUser возвращает историю ставок пользователя с фильтрами.
//
// Параметры:
//   - sport: фильтр по спорту ("" = все)
//   - status: фильтр по статусу ("" = все)
//   - limit: максимальное количество записей
func (r *TradeRepository) GetByUser(userID, sport, status string, limit int) ([]*models.Trade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM trades
		WHERE user_id = $1`

	args := []interface{}{userID}
	if sport != "" {
		args = append(args, sport)
		query += fmt.Sprintf(" AND sport = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY placed_at DESC LIMIT $%d", len(args))

	return r.queryMany(query, args...)
}

// GetPending возвращает открытые (pending) ставки пользователя
func (r *TradeRepository) GetPending(userID string, limit int) ([]*models.Trade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM trades
		WHERE user_id = $1 AND status = $2
		ORDER BY placed_at DESC
		LIMIT $3`

	return r.queryMany(query, userID, models.TradeStatusPending, limit)
}

// GetSettled возвращает рассчитанные ставки (won/lost/push) в хронологическом
// порядке расчета. Используется статистикой и отчетами.
//
// sport = "" означает все виды спорта.
func (r *TradeRepository) GetSettled(userID, sport string) ([]*models.Trade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM trades
		WHERE user_id = $1 AND status IN ('won', 'lost', 'push')`

	args := []interface{}{userID}
	if sport != "" {
		args = append(args, sport)
		query += fmt.Sprintf(" AND sport = $%d", len(args))
	}
	query += " ORDER BY settled_at ASC"

	return r.queryMany(query, args...)
}

// UpdateSettlement переводит pending ставку в терминальный статус.
//
// Условие status = 'pending' в WHERE дает идемпотентность на уровне строки:
// повторный расчет не затронет ни одной строки и вернет ErrTradeNotPending.
func (r *TradeRepository) UpdateSettlement(t *models.Trade) error {
	query := `
		UPDATE trades
		SET status = $1, profit_loss = $2, result_score = $3, closing_line_value = $4, settled_at = $5
		WHERE id = $6 AND status = $7`

	result, err := r.db.Exec(query,
		t.Status,
		t.ProfitLoss,
		t.ResultScore,
		t.ClosingLineValue,
		t.SettledAt,
		t.ID,
		models.TradeStatusPending,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrTradeNotPending
	}

	return nil
}

// DeleteByUser удаляет все ставки пользователя (сброс банкролла)
func (r *TradeRepository) DeleteByUser(userID string) (int64, error) {
	query := `DELETE FROM trades WHERE user_id = $1`

	result, err := r.db.Exec(query, userID)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// CreateFactors записывает именованные факторы ставки.
// Факторы вставляются в отсортированном порядке имен для детерминизма.
func (r *TradeRepository) CreateFactors(tradeID int, userID string, factors map[string]float64) error {
	if len(factors) == 0 {
		return nil
	}

	names := make([]string, 0, len(factors))
	for name := range factors {
		names = append(names, name)
	}
	sort.Strings(names)

	query := `
		INSERT INTO trade_factors (trade_id, user_id, name, score)
		VALUES ($1, $2, $3, $4)`

	for _, name := range names {
		if _, err := r.db.Exec(query, tradeID, userID, name, factors[name]); err != nil {
			return err
		}
	}

	return nil
}

// GetFactorSamples возвращает точки (score, won) для корреляции фактора
// с исходами ставок. Учитываются только решенные ставки (won/lost).
func (r *TradeRepository) GetFactorSamples(userID, name string) ([]models.FactorSample, error) {
	query := `
		SELECT f.score, t.status = 'won'
		FROM trade_factors f
		JOIN trades t ON t.id = f.trade_id
		WHERE f.user_id = $1 AND f.name = $2 AND t.status IN ('won', 'lost')
		ORDER BY f.trade_id`

	rows, err := r.db.Query(query, userID, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []models.FactorSample
	for rows.Next() {
		var s models.FactorSample
		if err := rows.Scan(&s.Score, &s.Won); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}

// DeleteFactorsByUser удаляет все факторы пользователя (сброс банкролла)
func (r *TradeRepository) DeleteFactorsByUser(userID string) error {
	query := `DELETE FROM trade_factors WHERE user_id = $1`

	_, err := r.db.Exec(query, userID)
	return err
}

// GetPerformanceBySport возвращает агрегаты по видам спорта
func (r *TradeRepository) GetPerformanceBySport(userID string) ([]*models.PerformanceBreakdown, error) {
	return r.queryBreakdown("sport", userID)
}

// GetPerformanceByBetType возвращает агрегаты по типам ставок
func (r *TradeRepository) GetPerformanceByBetType(userID string) ([]*models.PerformanceBreakdown, error) {
	return r.queryBreakdown("bet_type", userID)
}

// queryBreakdown агрегирует рассчитанные ставки по колонке группировки.
// groupCol подставляется только из белого списка вызывающих методов.
func (r *TradeRepository) queryBreakdown(groupCol, userID string) ([]*models.PerformanceBreakdown, error) {
	query := fmt.Sprintf(`
		SELECT %[1]s,
			COUNT(*),
			SUM(CASE WHEN status = 'won' THEN 1 ELSE 0 END),
			SUM(CASE WHEN status = 'lost' THEN 1 ELSE 0 END),
			SUM(CASE WHEN status = 'push' THEN 1 ELSE 0 END),
			SUM(stake),
			SUM(profit_loss)
		FROM trades
		WHERE user_id = $1 AND status IN ('won', 'lost', 'push')
		GROUP BY %[1]s
		ORDER BY %[1]s`, groupCol)

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var breakdowns []*models.PerformanceBreakdown
	for rows.Next() {
		b := &models.PerformanceBreakdown{}
		err := rows.Scan(
			&b.Key,
			&b.Bets,
			&b.Wins,
			&b.Losses,
			&b.Pushes,
			&b.TotalWagered,
			&b.ProfitLoss,
		)
		if err != nil {
			return nil, err
		}

		decided := b.Wins + b.Losses
		if decided > 0 {
			b.WinPercentage = float64(b.Wins) / float64(decided) * 100
		}
		if b.TotalWagered > 0 {
			b.ROIPercentage = b.ProfitLoss / b.TotalWagered * 100
		}

		breakdowns = append(breakdowns, b)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return breakdowns, nil
}

// scanOne сканирует одну строку trades
func (r *TradeRepository) scanOne(row *sql.Row) (*models.Trade, error) {
	t := &models.Trade{}
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Sport,
		&t.BetType,
		&t.Selection,
		&t.Line,
		&t.Odds,
		&t.Stake,
		&t.PotentialPayout,
		&t.Confidence,
		&t.EdgeAtPlacement,
		&t.Game,
		&t.Notes,
		&t.Status,
		&t.ProfitLoss,
		&t.ResultScore,
		&t.ClosingLineValue,
		&t.PlacedAt,
		&t.SettledAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTradeNotFound
		}
		return nil, err
	}

	return t, nil
}

// queryMany выполняет запрос и сканирует все строки trades
func (r *TradeRepository) queryMany(query string, args ...interface{}) ([]*models.Trade, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []*models.Trade
	for rows.Next() {
		t := &models.Trade{}
		err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Sport,
			&t.BetType,
			&t.Selection,
			&t.Line,
			&t.Odds,
			&t.Stake,
			&t.PotentialPayout,
			&t.Confidence,
			&t.EdgeAtPlacement,
			&t.Game,
			&t.Notes,
			&t.Status,
			&t.ProfitLoss,
			&t.ResultScore,
			&t.ClosingLineValue,
			&t.PlacedAt,
			&t.SettledAt,
		)
		if err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return trades, nil
}
