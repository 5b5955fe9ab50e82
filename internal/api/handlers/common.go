package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"edgebook/internal/service"
)

// ErrorResponse стандартный формат ответа об ошибке для всех API endpoints
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse стандартный формат успешного ответа
type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// userIDHeader - заголовок с идентификатором пользователя.
// При отсутствии используется профиль по умолчанию (single-user режим).
const userIDHeader = "X-User-ID"

// defaultUserID применяется, когда заголовок X-User-ID не передан
const defaultUserID = "default"

// userIDFromRequest извлекает идентификатор пользователя из запроса
func userIDFromRequest(r *http.Request) string {
	if id := r.Header.Get(userIDHeader); id != "" {
		return id
	}
	return defaultUserID
}

// respondWithJSON сериализует data в тело ответа с указанным статусом
func respondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondWithError отправляет структурированный ответ об ошибке
func respondWithError(w http.ResponseWriter, statusCode int, code, message, details string) {
	respondWithJSON(w, statusCode, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// handleServiceError отображает ошибки сервисного слоя на HTTP статусы.
//
// Валидационные ошибки -> 400, нарушение владения -> 403,
// отсутствующая ставка -> 404, повторный расчет -> 409,
// все остальное -> 500 с деталями.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidStake):
		respondWithError(w, http.StatusBadRequest, "invalid_stake", "Stake must be greater than 0", "")

	case errors.Is(err, service.ErrInvalidOdds):
		respondWithError(w, http.StatusBadRequest, "invalid_odds", "Odds must be a non-zero American price", "")

	case errors.Is(err, service.ErrInvalidBetType):
		respondWithError(w, http.StatusBadRequest, "invalid_bet_type", "Bet type must be spread, moneyline or total", "")

	case errors.Is(err, service.ErrEmptySelection):
		respondWithError(w, http.StatusBadRequest, "empty_selection", "Selection is required", "")

	case errors.Is(err, service.ErrEmptySport):
		respondWithError(w, http.StatusBadRequest, "empty_sport", "Sport is required", "")

	case errors.Is(err, service.ErrInvalidResult):
		respondWithError(w, http.StatusBadRequest, "invalid_result", "Result must be won, lost or push", "")

	case errors.Is(err, service.ErrInsufficientBalance):
		respondWithError(w, http.StatusBadRequest, "insufficient_balance", "Stake exceeds current balance", "")

	case errors.Is(err, service.ErrNotAuthorized):
		respondWithError(w, http.StatusForbidden, "not_authorized", "Bet belongs to another user", "")

	case errors.Is(err, service.ErrTradeNotFound):
		respondWithError(w, http.StatusNotFound, "bet_not_found", "Bet not found", "")

	case errors.Is(err, service.ErrAlreadySettled):
		respondWithError(w, http.StatusConflict, "already_settled", "Bet is already settled or cancelled", "")

	default:
		respondWithError(w, http.StatusInternalServerError, "internal_error", "Internal server error", err.Error())
	}
}
