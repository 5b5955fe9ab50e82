package handlers

import (
	"net/http"
	"strconv"

	"edgebook/internal/models"
	"edgebook/internal/service"
)

// BankrollHandler отвечает за состояние виртуального банкролла
//
// Endpoints:
// - GET /api/v1/bankroll         - текущее состояние банкролла с метриками
// - POST /api/v1/bankroll/reset  - сброс банкролла к стартовому балансу
// - GET /api/v1/bankroll/chart   - точки истории баланса для графика
type BankrollHandler struct {
	bankrollService service.BankrollServiceInterface
}

// NewBankrollHandler создает новый BankrollHandler с внедрением зависимостей
func NewBankrollHandler(bankrollService service.BankrollServiceInterface) *BankrollHandler {
	return &BankrollHandler{
		bankrollService: bankrollService,
	}
}

// GetBankroll возвращает текущее состояние банкролла.
// Банкролл создается лениво при первом обращении.
//
// GET /api/v1/bankroll
//
// Response 200 OK:
//
//	{
//	  "user_id": "default",
//	  "starting_balance": 10000,
//	  "current_balance": 10190.91,
//	  "total_bets": 12,
//	  "winning_bets": 7,
//	  "losing_bets": 4,
//	  "pushes": 1,
//	  "total_profit_loss": 190.91,
//	  "roi_percentage": 15.9,
//	  "win_percentage": 63.6,
//	  "units_won": 1.91
//	}
func (h *BankrollHandler) GetBankroll(w http.ResponseWriter, r *http.Request) {
	bankroll, err := h.bankrollService.GetOrCreate(userIDFromRequest(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, bankroll.Snapshot())
}

// ResetBankroll сбрасывает банкролл к стартовому балансу.
// Удаляет все ставки, факторы и историю пользователя.
//
// POST /api/v1/bankroll/reset
//
// Response:
// - 200 OK: свежий банкролл
// - 500 Internal Server Error: ошибка транзакции
func (h *BankrollHandler) ResetBankroll(w http.ResponseWriter, r *http.Request) {
	bankroll, err := h.bankrollService.Reset(userIDFromRequest(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, bankroll.Snapshot())
}

// GetChart возвращает точки истории баланса за запрошенное окно.
//
// GET /api/v1/bankroll/chart?days=30
//
// Query Parameters:
// - days (optional): глубина окна в днях, по умолчанию 30
//
// Response 200 OK: массив точек {balance, profit_loss, total_bets, recorded_at}
func (h *BankrollHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "invalid_days", "Days must be a positive number", "")
			return
		}
		days = parsed
	}

	points, err := h.bankrollService.GetChartData(userIDFromRequest(r), days)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// Пустая история должна сериализоваться как [], а не null
	if points == nil {
		points = []*models.HistorySnapshot{}
	}

	respondWithJSON(w, http.StatusOK, points)
}
