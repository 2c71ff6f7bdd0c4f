package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbOpenConns     *prometheus.GaugeVec
	dbIdleConns     *prometheus.GaugeVec
	dbInUseConns    *prometheus.GaugeVec

	cacheRequestsTotal *prometheus.CounterVec
	slotSourceTotal    *prometheus.CounterVec
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	return &Metrics{
		serviceName: serviceName,

		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "operation"}),

		dbOpenConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_open",
			Help: "Number of open database connections",
		}, []string{"service"}),

		dbIdleConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		}, []string{"service"}),

		dbInUseConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_in_use",
			Help: "Number of database connections in use",
		}, []string{"service"}),

		cacheRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_cache_requests_total",
			Help: "Availability cache lookups by result (hit, miss, expired)",
		}, []string{"service", "result"}),

		slotSourceTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_slot_source_total",
			Help: "Slot resolutions by source (remote, local) and outcome (success, failure)",
		}, []string{"service", "source", "outcome"}),
	}
}

// ObserveHTTPRequest фиксирует завершённый HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность SQL-запроса
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет gauge-метрики connection pool
func (m *Metrics) SetDBPoolStats(open, idle, inUse int) {
	m.dbOpenConns.WithLabelValues(m.serviceName).Set(float64(open))
	m.dbIdleConns.WithLabelValues(m.serviceName).Set(float64(idle))
	m.dbInUseConns.WithLabelValues(m.serviceName).Set(float64(inUse))
}

// IncCacheHit фиксирует попадание в кеш доступности
func (m *Metrics) IncCacheHit() {
	m.cacheRequestsTotal.WithLabelValues(m.serviceName, "hit").Inc()
}

// IncCacheMiss фиксирует промах кеша доступности
func (m *Metrics) IncCacheMiss() {
	m.cacheRequestsTotal.WithLabelValues(m.serviceName, "miss").Inc()
}

// IncSourceSuccess фиксирует успешное вычисление слотов источником
func (m *Metrics) IncSourceSuccess(source string) {
	m.slotSourceTotal.WithLabelValues(m.serviceName, source, "success").Inc()
}

// IncSourceFailure фиксирует отказ источника слотов
func (m *Metrics) IncSourceFailure(source string) {
	m.slotSourceTotal.WithLabelValues(m.serviceName, source, "failure").Inc()
}

// NopRecorder заглушка для случая, когда метрики выключены в конфигурации
type NopRecorder struct{}

func (NopRecorder) IncCacheHit()            {}
func (NopRecorder) IncCacheMiss()           {}
func (NopRecorder) IncSourceSuccess(string) {}
func (NopRecorder) IncSourceFailure(string) {}
