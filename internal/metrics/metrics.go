package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics 服务指标集合，注册在独立的 Registry 上
type Metrics struct {
	Registry *prometheus.Registry

	httpDuration    *prometheus.HistogramVec
	graphOps        *prometheus.CounterVec
	activityQueue   prometheus.Gauge
	activityLanding *prometheus.HistogramVec
	activityDropped prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "microblog_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		graphOps: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "microblog_graph_operations_total",
				Help: "Graph operations by name and outcome",
			},
			[]string{"op", "outcome"},
		),
		activityQueue: f.NewGauge(prometheus.GaugeOpts{
			Name: "microblog_activity_queue_length",
			Help: "Activities waiting to be delivered",
		}),
		activityLanding: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "microblog_activity_landing_seconds",
				Help:    "Time from enqueue to delivery on all sinks",
				Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"outcome"},
		),
		activityDropped: f.NewCounter(prometheus.CounterOpts{
			Name: "microblog_activity_dropped_total",
			Help: "Activities dropped because the queue was full",
		}),
	}
}

func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}

// GraphOp 记录一次图操作；err 非空记为 rejected
func (m *Metrics) GraphOp(op string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	m.graphOps.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) SetActivityQueue(n int) {
	if m == nil {
		return
	}
	m.activityQueue.Set(float64(n))
}

func (m *Metrics) ObserveActivity(d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.activityLanding.WithLabelValues(outcome).Observe(d.Seconds())
}

func (m *Metrics) ActivityDropped() {
	if m == nil {
		return
	}
	m.activityDropped.Inc()
}
