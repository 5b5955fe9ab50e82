package repository

import (
	"database/sql"
	"time"

	"edgebook/internal/models"
)

// HistoryRepository - работа с таблицей bankroll_history (append-only)
type HistoryRepository struct {
	db DBTX
}

// NewHistoryRepository создает новый экземпляр репозитория
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// WithTx возвращает копию репозитория, привязанную к транзакции
func (r *HistoryRepository) WithTx(tx *sql.Tx) *HistoryRepository {
	return &HistoryRepository{db: tx}
}

// Append добавляет снапшот истории. Снапшоты неизменяемы.
func (r *HistoryRepository) Append(s *models.HistorySnapshot) error {
	query := `
		INSERT INTO bankroll_history (user_id, balance, profit_loss, total_bets, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	if s.RecordedAt.IsZero() {
		s.RecordedAt = time.Now().UTC()
	}

	return r.db.QueryRow(
		query,
		s.UserID,
		s.Balance,
		s.ProfitLoss,
		s.TotalBets,
		s.RecordedAt,
	).Scan(&s.ID)
}

// GetSince возвращает снапшоты пользователя начиная с указанного момента,
// в хронологическом порядке (для графика)
func (r *HistoryRepository) GetSince(userID string, since time.Time) ([]*models.HistorySnapshot, error) {
	query := `
		SELECT id, user_id, balance, profit_loss, total_bets, recorded_at
		FROM bankroll_history
		WHERE user_id = $1 AND recorded_at >= $2
		ORDER BY recorded_at ASC`

	rows, err := r.db.Query(query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*models.HistorySnapshot
	for rows.Next() {
		s := &models.HistorySnapshot{}
		err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.Balance,
			&s.ProfitLoss,
			&s.TotalBets,
			&s.RecordedAt,
		)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return snapshots, nil
}

// DeleteByUser удаляет историю пользователя (сброс банкролла)
func (r *HistoryRepository) DeleteByUser(userID string) error {
	query := `DELETE FROM bankroll_history WHERE user_id = $1`

	_, err := r.db.Exec(query, userID)
	return err
}
