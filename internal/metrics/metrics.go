package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Исходы попытки удаления фона
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
)

// Metrics счётчики конвейера на собственном реестре.
type Metrics struct {
	Registry *prometheus.Registry

	Attempts        prometheus.Counter
	Outcomes        *prometheus.CounterVec
	StaleReplies    prometheus.Counter
	RequestDuration prometheus.Histogram
	Ingests         *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bgremove_attempts_total",
			Help: "Запущенные запросы на удаление фона",
		}),
		Outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bgremove_outcomes_total",
			Help: "Применённые результаты запросов",
		}, []string{"outcome", "kind"}),
		StaleReplies: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bgremove_stale_replies_total",
			Help: "Ответы, отброшенные после сброса или новой загрузки",
		}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bgremove_request_duration_seconds",
			Help:    "Время вызова модели (секунды)",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80, 160},
		}),
		Ingests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bgremove_ingests_total",
			Help: "Загрузки файлов по результату",
		}, []string{"result"}),
	}
	m.Registry.MustRegister(m.Attempts, m.Outcomes, m.StaleReplies, m.RequestDuration, m.Ingests)
	return m
}

func (m *Metrics) ObserveIngest(ok bool) {
	if m == nil {
		return
	}
	result := "accepted"
	if !ok {
		result = "rejected"
	}
	m.Ingests.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveAttempt() {
	if m == nil {
		return
	}
	m.Attempts.Inc()
}

// ObserveReply учитывает вернувшийся вызов. kind пустой для успеха.
func (m *Metrics) ObserveReply(outcome, kind string, took time.Duration, stale bool) {
	if m == nil {
		return
	}
	m.RequestDuration.Observe(took.Seconds())
	if stale {
		m.StaleReplies.Inc()
		return
	}
	m.Outcomes.WithLabelValues(outcome, kind).Inc()
}

// Handler отдаёт метрики в формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
