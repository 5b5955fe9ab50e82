package repository

import (
	"database/sql"
	"errors"
	"time"

	"edgebook/internal/models"
)

// Ошибки репозитория банкроллов
var (
	ErrBankrollNotFound = errors.New("bankroll not found")
)

// BankrollRepository - работа с таблицей bankrolls (одна строка на пользователя)
type BankrollRepository struct {
	db DBTX
}

// NewBankrollRepository создает новый экземпляр репозитория
func NewBankrollRepository(db *sql.DB) *BankrollRepository {
	return &BankrollRepository{db: db}
}

// WithTx возвращает копию репозитория, привязанную к транзакции
func (r *BankrollRepository) WithTx(tx *sql.Tx) *BankrollRepository {
	return &BankrollRepository{db: tx}
}

const bankrollColumns = `user_id, starting_balance, current_balance, high_water_mark, low_water_mark,
		total_bets, pending_bets, winning_bets, losing_bets, pushes,
		total_wagered, total_won, total_lost,
		current_streak, longest_win_streak, longest_lose_streak,
		created_at, updated_at`

// GetByUserID возвращает банкролл пользователя
func (r *BankrollRepository) GetByUserID(userID string) (*models.Bankroll, error) {
	query := `
		SELECT ` + bankrollColumns + `
		FROM bankrolls
		WHERE user_id = $1`

	b := &models.Bankroll{}
	err := r.db.QueryRow(query, userID).Scan(
		&b.UserID,
		&b.StartingBalance,
		&b.CurrentBalance,
		&b.HighWaterMark,
		&b.LowWaterMark,
		&b.TotalBets,
		&b.PendingBets,
		&b.WinningBets,
		&b.LosingBets,
		&b.Pushes,
		&b.TotalWagered,
		&b.TotalWon,
		&b.TotalLost,
		&b.CurrentStreak,
		&b.LongestWinStreak,
		&b.LongestLoseStreak,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBankrollNotFound
		}
		return nil, err
	}

	return b, nil
}

// Create вставляет новый банкролл
func (r *BankrollRepository) Create(b *models.Bankroll) error {
	query := `
		INSERT INTO bankrolls (` + bankrollColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now

	_, err := r.db.Exec(query,
		b.UserID,
		b.StartingBalance,
		b.CurrentBalance,
		b.HighWaterMark,
		b.LowWaterMark,
		b.TotalBets,
		b.PendingBets,
		b.WinningBets,
		b.LosingBets,
		b.Pushes,
		b.TotalWagered,
		b.TotalWon,
		b.TotalLost,
		b.CurrentStreak,
		b.LongestWinStreak,
		b.LongestLoseStreak,
		b.CreatedAt,
		b.UpdatedAt,
	)

	return err
}

// Save обновляет все изменяемые поля банкролла
func (r *BankrollRepository) Save(b *models.Bankroll) error {
	query := `
		UPDATE bankrolls
		SET starting_balance = $1, current_balance = $2, high_water_mark = $3, low_water_mark = $4,
		    total_bets = $5, pending_bets = $6, winning_bets = $7, losing_bets = $8, pushes = $9,
		    total_wagered = $10, total_won = $11, total_lost = $12,
		    current_streak = $13, longest_win_streak = $14, longest_lose_streak = $15,
		    updated_at = $16
		WHERE user_id = $17`

	b.UpdatedAt = time.Now().UTC()

	result, err := r.db.Exec(query,
		b.StartingBalance,
		b.CurrentBalance,
		b.HighWaterMark,
		b.LowWaterMark,
		b.TotalBets,
		b.PendingBets,
		b.WinningBets,
		b.LosingBets,
		b.Pushes,
		b.TotalWagered,
		b.TotalWon,
		b.TotalLost,
		b.CurrentStreak,
		b.LongestWinStreak,
		b.LongestLoseStreak,
		b.UpdatedAt,
		b.UserID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBankrollNotFound
	}

	return nil
}
