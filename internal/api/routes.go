package api

import (
	"net/http"

	"edgebook/internal/api/handlers"
	"edgebook/internal/api/middleware"
	"edgebook/internal/service"
	"edgebook/internal/websocket"
	"edgebook/pkg/utils"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies содержит все зависимости для API handlers
type Dependencies struct {
	BankrollService    service.BankrollServiceInterface
	SettlementService  service.SettlementServiceInterface
	StatsService       service.StatsServiceInterface
	PerformanceService service.PerformanceServiceInterface

	Hub    *websocket.Hub
	Logger *utils.Logger

	// bcrypt хеш токена для служебных endpoints; пусто = без auth
	MetricsTokenHash string

	// список разрешенных CORS origins; "" или "*" = все
	AllowedOrigin string
}

// SetupRoutes настраивает все HTTP маршруты приложения
//
// Структура маршрутов:
//
// /api/v1/
//
//	├── /bankroll/
//	│   ├── GET / - состояние банкролла
//	│   ├── POST /reset - сброс к стартовому балансу
//	│   └── GET /chart - история баланса для графика
//	├── /bets/
//	│   ├── POST / - размещение ставки
//	│   ├── GET / - история ставок с фильтрами
//	│   ├── GET /open - нерассчитанные ставки
//	│   ├── POST /{id}/settle - расчет ставки
//	│   └── POST /{id}/cancel - отмена ставки
//	├── /stats/
//	│   ├── GET /edge - тест значимости win rate
//	│   └── GET /factors - корреляция фактора с исходами
//	└── /performance/
//	    ├── GET /by-sport - разбивка по видам спорта
//	    ├── GET /by-bet-type - разбивка по типам ставок
//	    ├── GET /confidence - результаты по полосам уверенности
//	    └── GET /streaks - серии и просадка
//
// /ws/stream - WebSocket для real-time обновлений
// /metrics  - Prometheus метрики (за token auth)
// /health   - health check
//
// Middleware применяется в следующем порядке:
// 1. Recovery (для всех маршрутов)
// 2. Logging (для всех маршрутов)
// 3. CORS (для всех маршрутов)
func SetupRoutes(deps *Dependencies) *mux.Router {
	router := mux.NewRouter()

	// Глобальные middleware (применяются ко всем маршрутам)
	if deps != nil && deps.Logger != nil {
		router.Use(middleware.Recovery(deps.Logger))
		router.Use(middleware.Logging(deps.Logger))
	}
	allowedOrigin := ""
	if deps != nil {
		allowedOrigin = deps.AllowedOrigin
	}
	router.Use(middleware.CORS(allowedOrigin))

	// Создание handlers с внедрением зависимостей
	var bankrollHandler *handlers.BankrollHandler
	if deps != nil && deps.BankrollService != nil {
		bankrollHandler = handlers.NewBankrollHandler(deps.BankrollService)
	}

	var tradeHandler *handlers.TradeHandler
	if deps != nil && deps.BankrollService != nil && deps.SettlementService != nil {
		tradeHandler = handlers.NewTradeHandler(deps.BankrollService, deps.SettlementService)
	}

	var statsHandler *handlers.StatsHandler
	if deps != nil && deps.StatsService != nil {
		statsHandler = handlers.NewStatsHandler(deps.StatsService)
	}

	var performanceHandler *handlers.PerformanceHandler
	if deps != nil && deps.PerformanceService != nil {
		performanceHandler = handlers.NewPerformanceHandler(deps.PerformanceService)
	}

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Bankroll routes
	if bankrollHandler != nil {
		api.HandleFunc("/bankroll", bankrollHandler.GetBankroll).Methods("GET")
		api.HandleFunc("/bankroll/reset", bankrollHandler.ResetBankroll).Methods("POST")
		api.HandleFunc("/bankroll/chart", bankrollHandler.GetChart).Methods("GET")
	}

	// Bet routes
	if tradeHandler != nil {
		api.HandleFunc("/bets", tradeHandler.PlaceBet).Methods("POST")
		api.HandleFunc("/bets", tradeHandler.GetBets).Methods("GET")
		api.HandleFunc("/bets/open", tradeHandler.GetOpenBets).Methods("GET")
		api.HandleFunc("/bets/{id}/settle", tradeHandler.SettleBet).Methods("POST")
		api.HandleFunc("/bets/{id}/cancel", tradeHandler.CancelBet).Methods("POST")
	}

	// Stats routes
	if statsHandler != nil {
		api.HandleFunc("/stats/edge", statsHandler.GetEdgeReport).Methods("GET")
		api.HandleFunc("/stats/factors", statsHandler.GetFactorCorrelation).Methods("GET")
	}

	// Performance routes
	if performanceHandler != nil {
		api.HandleFunc("/performance/by-sport", performanceHandler.GetBySport).Methods("GET")
		api.HandleFunc("/performance/by-bet-type", performanceHandler.GetByBetType).Methods("GET")
		api.HandleFunc("/performance/confidence", performanceHandler.GetConfidenceTiers).Methods("GET")
		api.HandleFunc("/performance/streaks", performanceHandler.GetStreaks).Methods("GET")
	}

	// WebSocket route
	if deps != nil && deps.Hub != nil {
		hub := deps.Hub
		router.HandleFunc("/ws/stream", func(w http.ResponseWriter, r *http.Request) {
			websocket.ServeWS(hub, w, r)
		})
	}

	// Prometheus метрики за token auth
	tokenHash := ""
	if deps != nil {
		tokenHash = deps.MetricsTokenHash
	}
	router.Handle("/metrics", middleware.TokenAuth(tokenHash)(promhttp.Handler())).Methods("GET")

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	return router
}
