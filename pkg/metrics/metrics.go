package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор prometheus-метрик сервиса
// Использует собственный registry, чтобы несколько экземпляров не конфликтовали (тесты)
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbConnections   *prometheus.GaugeVec

	reservationsCreated   *prometheus.CounterVec
	reservationRejections *prometheus.CounterVec
	feedFetches           *prometheus.CounterVec
	primeTimeUsed         *prometheus.GaugeVec
	pendingReservations   prometheus.Gauge
	notificationsSent     prometheus.Counter
}

// New создает и регистрирует метрики с константной меткой service
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),
		reservationsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservations_created_total",
			Help:        "Reservations persisted to the ledger",
			ConstLabels: constLabels,
		}, []string{"team", "kind", "prime_time"}),
		reservationRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_rejections_total",
			Help:        "Booking requests rejected, by reason",
			ConstLabels: constLabels,
		}, []string{"reason"}),
		feedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "feed_fetches_total",
			Help:        "External feed fetches, by endpoint and result",
			ConstLabels: constLabels,
		}, []string{"endpoint", "result"}),
		primeTimeUsed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "prime_time_reservations_week",
			Help:        "Prime-time reservations per team in the current week",
			ConstLabels: constLabels,
		}, []string{"team"}),
		pendingReservations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "pending_reservations",
			Help:        "Reservations not yet reflected in the system of record",
			ConstLabels: constLabels,
		}),
		notificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "operator_notifications_total",
			Help:        "Pending-reservation notifications published to operators",
			ConstLabels: constLabels,
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbConnections,
		m.reservationsCreated,
		m.reservationRejections,
		m.feedFetches,
		m.primeTimeUsed,
		m.pendingReservations,
		m.notificationsSent,
	)

	return m
}

// Handler возвращает HTTP-обработчик для /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTPRequest записывает метрики HTTP-запроса
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBConnections обновляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues("open").Set(float64(open))
	m.dbConnections.WithLabelValues("in_use").Set(float64(inUse))
	m.dbConnections.WithLabelValues("idle").Set(float64(idle))
}

func (m *Metrics) ReservationCreated(team, kind string, primeTime bool) {
	if m == nil {
		return
	}
	m.reservationsCreated.WithLabelValues(team, kind, strconv.FormatBool(primeTime)).Inc()
}

func (m *Metrics) ReservationRejected(reason string) {
	if m == nil {
		return
	}
	m.reservationRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) FeedFetched(endpoint, result string) {
	if m == nil {
		return
	}
	m.feedFetches.WithLabelValues(endpoint, result).Inc()
}

func (m *Metrics) SetPrimeTimeUsed(team string, used int) {
	if m == nil {
		return
	}
	m.primeTimeUsed.WithLabelValues(team).Set(float64(used))
}

func (m *Metrics) SetPendingReservations(count int) {
	if m == nil {
		return
	}
	m.pendingReservations.Set(float64(count))
}

func (m *Metrics) NotificationSent() {
	if m == nil {
		return
	}
	m.notificationsSent.Inc()
}
