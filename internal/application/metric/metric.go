package metric

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP метрики - количество запросов
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Общее количество HTTP запросов",
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTP метрики - время обработки запросов
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Время обработки HTTP запросов в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTP метрики - количество ошибок
	httpErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Общее количество HTTP ошибок",
		},
		[]string{"method", "endpoint", "status"},
	)

	roomsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "signaling_rooms_active",
			Help: "Количество комнат в реестре",
		},
	)

	roomsReapedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "signaling_rooms_reaped_total",
			Help: "Количество комнат, удаленных по таймауту heartbeat",
		},
	)

	// op: posted | drained
	candidatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signaling_candidates_total",
			Help: "Количество ICE кандидатов, прошедших через почтовый ящик",
		},
		[]string{"party", "op"},
	)

	// kind: offer | answer
	descriptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signaling_descriptions_total",
			Help: "Количество сохраненных SDP",
		},
		[]string{"kind"},
	)

	connectionsConfirmedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "signaling_connections_confirmed_total",
			Help: "Количество подтвержденных p2p соединений",
		},
	)
)

// RecordHTTPMetrics записывает метрики HTTP запроса
func RecordHTTPMetrics(method, endpoint string, status int, duration time.Duration) {
	strStatus := strconv.Itoa(status)

	httpRequestsTotal.WithLabelValues(method, endpoint, strStatus).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, strStatus).Observe(duration.Seconds())

	// Записываем ошибки (статус >= 400)
	if status >= 400 {
		httpErrorsTotal.WithLabelValues(method, endpoint, strStatus).Inc()
	}
}

// последнее значение гауги, отдается в /health
var roomsActiveCount atomic.Int64

func SetRoomsActive(count int) {
	roomsActiveCount.Store(int64(count))
	roomsActive.Set(float64(count))
}

func RoomsActive() int {
	return int(roomsActiveCount.Load())
}

func AddRoomsReaped(count int) {
	roomsReapedTotal.Add(float64(count))
}

func AddCandidatesPosted(party string, count int) {
	candidatesTotal.WithLabelValues(party, "posted").Add(float64(count))
}

func AddCandidatesDrained(party string, count int) {
	candidatesTotal.WithLabelValues(party, "drained").Add(float64(count))
}

func IncrementDescriptions(kind string) {
	descriptionsTotal.WithLabelValues(kind).Inc()
}

func IncrementConnectionsConfirmed() {
	connectionsConfirmedTotal.Inc()
}
