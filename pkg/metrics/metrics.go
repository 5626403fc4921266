package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Причины неудачного получения обновлений
const (
	ReasonNullBody  = "null_body"
	ReasonAPIError  = "api_error"
	ReasonTransport = "transport"
)

// Metrics метрики цикла опроса Bot API
// Методы безопасны для nil-получателя: при выключенных метриках передаётся nil
type Metrics struct {
	cyclesTotal   prometheus.Counter
	updatesTotal  prometheus.Counter
	fetchFailures *prometheus.CounterVec
	handlerPanics prometheus.Counter
	offset        prometheus.Gauge
	cycleDuration prometheus.Histogram
}

// New регистрирует метрики в переданном registerer
// Для production используется prometheus.DefaultRegisterer
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		cyclesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name:        "polling_cycles_total",
			Help:        "Total number of completed polling cycles",
			ConstLabels: labels,
		}),
		updatesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name:        "updates_received_total",
			Help:        "Total number of updates received from Bot API",
			ConstLabels: labels,
		}),
		fetchFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "fetch_failures_total",
			Help:        "Total number of failed getUpdates calls by reason",
			ConstLabels: labels,
		}, []string{"reason"}),
		handlerPanics: factory.NewCounter(prometheus.CounterOpts{
			Name:        "update_handler_panics_total",
			Help:        "Total number of recovered update handler panics",
			ConstLabels: labels,
		}),
		offset: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "polling_offset",
			Help:        "Offset requested on the next getUpdates call",
			ConstLabels: labels,
		}),
		cycleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:        "polling_cycle_duration_seconds",
			Help:        "Duration of a polling cycle including dispatch",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}),
	}
}

// ObserveCycle фиксирует завершённый цикл опроса
func (m *Metrics) ObserveCycle(duration time.Duration, updates int, offset int64) {
	if m == nil {
		return
	}
	m.cyclesTotal.Inc()
	m.updatesTotal.Add(float64(updates))
	m.offset.Set(float64(offset))
	m.cycleDuration.Observe(duration.Seconds())
}

// IncFetchFailure увеличивает счётчик неудачных запросов getUpdates
func (m *Metrics) IncFetchFailure(reason string) {
	if m == nil {
		return
	}
	m.fetchFailures.WithLabelValues(reason).Inc()
}

// IncHandlerPanic увеличивает счётчик паник в обработчиках
func (m *Metrics) IncHandlerPanic() {
	if m == nil {
		return
	}
	m.handlerPanics.Inc()
}
