package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ============================================================
// Prometheus метрики леджера
// ============================================================
//
// Использование:
// - Grafana дашборды для визуализации активности леджера
// - Анализ распределения исходов и латентности расчетов

// ============ Счётчики операций ============

// BetsPlaced - количество размещенных ставок по видам спорта
var BetsPlaced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "edgebook",
		Subsystem: "ledger",
		Name:      "bets_placed_total",
		Help:      "Total number of bets placed",
	},
	[]string{"sport", "bet_type"},
)

// BetsSettled - количество рассчитанных ставок по исходам
var BetsSettled = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "edgebook",
		Subsystem: "ledger",
		Name:      "bets_settled_total",
		Help:      "Total number of settled bets by result",
	},
	[]string{"result"}, // won, lost, push
)

// BetsCancelled - количество отмененных ставок
var BetsCancelled = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "edgebook",
		Subsystem: "ledger",
		Name:      "bets_cancelled_total",
		Help:      "Total number of cancelled bets",
	},
)

// BankrollResets - количество сбросов банкроллов
var BankrollResets = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "edgebook",
		Subsystem: "ledger",
		Name:      "bankroll_resets_total",
		Help:      "Total number of bankroll resets",
	},
)

// ============ Метрики латентности ============

// SettlementLatency - время полного цикла расчета ставки
var SettlementLatency = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: "edgebook",
		Subsystem: "ledger",
		Name:      "settlement_latency_ms",
		Help:      "Time to settle a bet in milliseconds",
		Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500},
	},
)

// ============ Метрики состояния ============

// PendingBetsGauge - текущее количество нерассчитанных ставок
var PendingBetsGauge = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: "edgebook",
		Subsystem: "ledger",
		Name:      "pending_bets",
		Help:      "Current number of pending bets across all bankrolls",
	},
)

// ============ Вспомогательные функции ============

// RecordBetPlaced записывает размещение ставки
func RecordBetPlaced(sport, betType string) {
	BetsPlaced.WithLabelValues(sport, betType).Inc()
	PendingBetsGauge.Inc()
}

// RecordBetSettled записывает расчет ставки и его латентность
func RecordBetSettled(result string, latencyMs float64) {
	BetsSettled.WithLabelValues(result).Inc()
	SettlementLatency.Observe(latencyMs)
	PendingBetsGauge.Dec()
}

// RecordBetCancelled записывает отмену ставки
func RecordBetCancelled() {
	BetsCancelled.Inc()
	PendingBetsGauge.Dec()
}

// RecordBankrollReset записывает сброс банкролла.
// pendingCleared - количество нерассчитанных ставок, удаленных сбросом;
// они уже не будут рассчитаны или отменены, поэтому gauge уменьшается здесь.
func RecordBankrollReset(pendingCleared int) {
	BankrollResets.Inc()
	PendingBetsGauge.Sub(float64(pendingCleared))
}
