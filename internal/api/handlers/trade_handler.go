package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"edgebook/internal/models"
	"edgebook/internal/service"

	"github.com/gorilla/mux"
)

// TradeHandler отвечает за жизненный цикл бумажных ставок
//
// Endpoints:
// - POST /api/v1/bets              - размещение новой ставки
// - GET /api/v1/bets               - история ставок с фильтрами
// - GET /api/v1/bets/open          - все нерассчитанные ставки
// - POST /api/v1/bets/{id}/settle  - расчет ставки (won/lost/push)
// - POST /api/v1/bets/{id}/cancel  - отмена нерассчитанной ставки
type TradeHandler struct {
	bankrollService   service.BankrollServiceInterface
	settlementService service.SettlementServiceInterface
}

// NewTradeHandler создает новый TradeHandler с внедрением зависимостей
func NewTradeHandler(bankrollService service.BankrollServiceInterface, settlementService service.SettlementServiceInterface) *TradeHandler {
	return &TradeHandler{
		bankrollService:   bankrollService,
		settlementService: settlementService,
	}
}

// PlaceBetResponse - созданная ставка вместе с обновленным банкроллом
type PlaceBetResponse struct {
	Trade    *models.Trade            `json:"trade"`
	Bankroll *models.BankrollResponse `json:"bankroll"`
}

// PlaceBet размещает новую бумажную ставку.
// Ставка немедленно списывается с баланса банкролла.
//
// POST /api/v1/bets
//
// Request Body:
//
//	{
//	  "sport": "nba",
//	  "game": "Lakers @ Celtics",
//	  "bet_type": "spread",
//	  "selection": "Lakers",
//	  "line": -3.5,
//	  "odds": -110,
//	  "stake": 100,
//	  "confidence": 75,
//	  "factors": {"rest_advantage": 0.8}
//	}
//
// Response:
// - 201 Created: ставка и обновленный банкролл
// - 400 Bad Request: невалидные параметры или недостаточный баланс
func (h *TradeHandler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	var req service.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body", err.Error())
		return
	}

	trade, bankroll, err := h.bankrollService.PlaceBet(userIDFromRequest(r), &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, PlaceBetResponse{
		Trade:    trade,
		Bankroll: bankroll.Snapshot(),
	})
}

// GetBets возвращает историю ставок с фильтрами.
//
// GET /api/v1/bets?sport=nba&status=won&limit=50
//
// Query Parameters:
// - sport (optional): фильтр по виду спорта
// - status (optional): pending, won, lost, push, cancelled
// - limit (optional): максимум записей, по умолчанию 50
//
// Response 200 OK: массив ставок, новые первыми
func (h *TradeHandler) GetBets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "invalid_limit", "Limit must be a positive number", "")
			return
		}
		limit = parsed
	}

	trades, err := h.bankrollService.GetBetHistory(userIDFromRequest(r), query.Get("sport"), query.Get("status"), limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if trades == nil {
		trades = []*models.Trade{}
	}

	respondWithJSON(w, http.StatusOK, trades)
}

// GetOpenBets возвращает все нерассчитанные ставки пользователя.
//
// GET /api/v1/bets/open?limit=50
//
// Response 200 OK: массив ставок со статусом pending
func (h *TradeHandler) GetOpenBets(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "invalid_limit", "Limit must be a positive number", "")
			return
		}
		limit = parsed
	}

	trades, err := h.bankrollService.GetOpenBets(userIDFromRequest(r), limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if trades == nil {
		trades = []*models.Trade{}
	}

	respondWithJSON(w, http.StatusOK, trades)
}

// SettleBet рассчитывает нерассчитанную ставку.
// Повторный расчет той же ставки возвращает 409.
//
// POST /api/v1/bets/{id}/settle
//
// Request Body:
//
//	{
//	  "result": "won",
//	  "result_score": "110-104",
//	  "closing_line_value": 1.5
//	}
//
// Response:
// - 200 OK: итог расчета с обновленными метриками
// - 400 Bad Request: невалидный результат
// - 403 Forbidden: чужая ставка
// - 404 Not Found: ставка не существует
// - 409 Conflict: ставка уже рассчитана или отменена
func (h *TradeHandler) SettleBet(w http.ResponseWriter, r *http.Request) {
	tradeID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_id", "Invalid bet ID", "ID must be a number")
		return
	}

	var req service.SettleBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body", err.Error())
		return
	}

	result, err := h.settlementService.SettleBet(userIDFromRequest(r), tradeID, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// CancelBet отменяет нерассчитанную ставку с возвратом ставки на баланс.
//
// POST /api/v1/bets/{id}/cancel
//
// Response:
// - 200 OK: отмененная ставка и обновленный банкролл
// - 403 Forbidden: чужая ставка
// - 404 Not Found: ставка не существует
// - 409 Conflict: ставка уже рассчитана
func (h *TradeHandler) CancelBet(w http.ResponseWriter, r *http.Request) {
	tradeID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_id", "Invalid bet ID", "ID must be a number")
		return
	}

	trade, bankroll, err := h.bankrollService.CancelBet(userIDFromRequest(r), tradeID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, PlaceBetResponse{
		Trade:    trade,
		Bankroll: bankroll.Snapshot(),
	})
}
