package handlers

import (
	"net/http"

	"edgebook/internal/models"
	"edgebook/internal/service"
)

// PerformanceHandler отвечает за аналитические отчеты по результатам
//
// Endpoints:
// - GET /api/v1/performance/by-sport     - разбивка по видам спорта
// - GET /api/v1/performance/by-bet-type  - разбивка по типам ставок
// - GET /api/v1/performance/confidence   - результаты по полосам уверенности
// - GET /api/v1/performance/streaks      - серии и максимальная просадка
type PerformanceHandler struct {
	performanceService service.PerformanceServiceInterface
}

// NewPerformanceHandler создает новый PerformanceHandler с внедрением зависимостей
func NewPerformanceHandler(performanceService service.PerformanceServiceInterface) *PerformanceHandler {
	return &PerformanceHandler{
		performanceService: performanceService,
	}
}

// GetBySport возвращает разбивку результатов по видам спорта.
//
// GET /api/v1/performance/by-sport
//
// Response 200 OK: массив агрегатов, отсортированный по profit_loss
func (h *PerformanceHandler) GetBySport(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.performanceService.GetBySport(userIDFromRequest(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if breakdown == nil {
		breakdown = []*models.PerformanceBreakdown{}
	}

	respondWithJSON(w, http.StatusOK, breakdown)
}

// GetByBetType возвращает разбивку результатов по типам ставок.
//
// GET /api/v1/performance/by-bet-type
func (h *PerformanceHandler) GetByBetType(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.performanceService.GetByBetType(userIDFromRequest(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if breakdown == nil {
		breakdown = []*models.PerformanceBreakdown{}
	}

	respondWithJSON(w, http.StatusOK, breakdown)
}

// GetConfidenceTiers возвращает результаты по полосам заявленной уверенности.
// Ставки без указанной уверенности в отчет не попадают.
//
// GET /api/v1/performance/confidence
//
// Response 200 OK: четыре полосы (0-59, 60-74, 75-89, 90-100)
func (h *PerformanceHandler) GetConfidenceTiers(w http.ResponseWriter, r *http.Request) {
	tiers, err := h.performanceService.GetConfidenceTiers(userIDFromRequest(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, tiers)
}

// GetStreaks возвращает отчет о сериях и просадке.
//
// GET /api/v1/performance/streaks
//
// Response 200 OK:
//
//	{
//	  "current_streak": 3,
//	  "longest_win_streak": 5,
//	  "longest_lose_streak": 2,
//	  "max_drawdown_pct": 4.2,
//	  "peak_balance": 10450.0,
//	  "trough_balance": 9890.0,
//	  "settled_bets": 42
//	}
func (h *PerformanceHandler) GetStreaks(w http.ResponseWriter, r *http.Request) {
	report, err := h.performanceService.GetStreakReport(userIDFromRequest(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}
