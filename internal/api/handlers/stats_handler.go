package handlers

import (
	"net/http"

	"edgebook/internal/service"
)

// StatsHandler отвечает за статистическую валидацию преимущества
//
// Endpoints:
// - GET /api/v1/stats/edge     - тест значимости наблюдаемого win rate
// - GET /api/v1/stats/factors  - корреляция именованного фактора с исходами
type StatsHandler struct {
	statsService service.StatsServiceInterface
}

// NewStatsHandler создает новый StatsHandler с внедрением зависимостей
func NewStatsHandler(statsService service.StatsServiceInterface) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetEdgeReport возвращает отчет о статистической значимости результатов.
//
// GET /api/v1/stats/edge?sport=nba
//
// Query Parameters:
// - sport (optional): ограничить выборку одним видом спорта
//
// Response 200 OK:
//
//	{
//	  "total_bets": 100,
//	  "wins": 60,
//	  "losses": 40,
//	  "pushes": 0,
//	  "win_rate": 60.0,
//	  "expected_rate": 52.38,
//	  "edge": 7.62,
//	  "z_score": 1.53,
//	  "p_value": 0.128,
//	  "is_significant": false,
//	  "wilson_lower": 50.2,
//	  "wilson_upper": 69.07,
//	  "required_sample_size": 369,
//	  "current_confidence": 25.7
//	}
func (h *StatsHandler) GetEdgeReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.statsService.GetEdgeReport(userIDFromRequest(r), r.URL.Query().Get("sport"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}

// GetFactorCorrelation возвращает корреляцию Пирсона между оценками
// фактора и бинарными исходами ставок.
//
// GET /api/v1/stats/factors?name=rest_advantage
//
// Query Parameters:
// - name (required): имя фактора
//
// Response:
// - 200 OK: {"factor": "rest_advantage", "correlation": 0.42, "sample_size": 18}
// - 400 Bad Request: имя фактора не передано
func (h *StatsHandler) GetFactorCorrelation(w http.ResponseWriter, r *http.Request) {
	factor := r.URL.Query().Get("name")
	if factor == "" {
		respondWithError(w, http.StatusBadRequest, "missing_factor", "Factor name is required", "")
		return
	}

	correlation, err := h.statsService.GetFactorCorrelation(userIDFromRequest(r), factor)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, correlation)
}
