package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// KV metrics: the five counters the original instance exposed
	// (kvget, kvset, kvlist, log, requests), one IntCounterVec each,
	// kept as CounterVec here since the client_golang API doesn't
	// distinguish int vs float counters.
	KVGetTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baliusd_kvget_total",
			Help: "Amount of gets to KV",
		},
		[]string{"worker"},
	)

	KVSetTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baliusd_kvset_total",
			Help: "Amount of sets to KV",
		},
		[]string{"worker"},
	)

	KVListTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baliusd_kvlist_total",
			Help: "Amount of lists to KV",
		},
		[]string{"worker"},
	)

	LogWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baliusd_log_total",
			Help: "Amount of log writes",
		},
		[]string{"worker", "level"},
	)

	RPCRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baliusd_requests_total",
			Help: "Amount of requests to the json-rpc server",
		},
		[]string{"worker", "method", "code"},
	)

	// Shard/reconciler metrics.
	ShardIsLeader = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "baliusd_shard_is_leader",
			Help: "Whether this pod holds the shard's leader lease (1 = leader, 0 = follower)",
		},
	)

	WorkersActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "baliusd_workers_active",
			Help: "Total number of workers currently registered in the runtime",
		},
	)

	WorkersFailed = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "baliusd_workers_failed",
			Help: "Total number of workers that failed registration",
		},
	)

	ReconcileCyclesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "baliusd_reconcile_cycles_total",
			Help: "Total number of worker reconcile events handled",
		},
	)

	ReconcileFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baliusd_reconcile_failures_total",
			Help: "Total number of worker registration failures by worker",
		},
		[]string{"worker"},
	)

	// Operator metrics (C9): one counter per custom resource that failed
	// reconciliation, mirroring ctx.metrics.reconcile_failure.
	OperatorReconcileFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baliusd_operator_reconcile_failures_total",
			Help: "Total number of operator reconcile failures by custom resource name",
		},
		[]string{"resource"},
	)

	// Edge proxy metrics (C8).
	ProxyRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baliusd_proxy_requests_total",
			Help: "Total number of proxied requests by consumer, namespace, upstream and status",
		},
		[]string{"consumer", "namespace", "upstream", "status"},
	)

	ProxyRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "baliusd_proxy_request_duration_seconds",
			Help:    "Proxied request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"network"},
	)

	RateLimitExceededTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baliusd_rate_limit_exceeded_total",
			Help: "Total number of requests rejected for exceeding their consumer's tier",
		},
		[]string{"tier"},
	)
)

func init() {
	prometheus.MustRegister(KVGetTotal)
	prometheus.MustRegister(KVSetTotal)
	prometheus.MustRegister(KVListTotal)
	prometheus.MustRegister(LogWritesTotal)
	prometheus.MustRegister(RPCRequestsTotal)

	prometheus.MustRegister(ShardIsLeader)
	prometheus.MustRegister(WorkersActive)
	prometheus.MustRegister(WorkersFailed)
	prometheus.MustRegister(ReconcileCyclesTotal)
	prometheus.MustRegister(ReconcileFailuresTotal)

	prometheus.MustRegister(OperatorReconcileFailuresTotal)

	prometheus.MustRegister(ProxyRequestsTotal)
	prometheus.MustRegister(ProxyRequestDuration)
	prometheus.MustRegister(RateLimitExceededTotal)
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	histogram.Observe(time.Since(t.start).Seconds())
}

// ObserveDurationVec records the duration to a histogram vec with labels.
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	histogram.WithLabelValues(labels...).Observe(time.Since(t.start).Seconds())
}

// Duration returns the elapsed time since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
