package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns a private registry with the HTTP and domain collectors.
// A nil *Recorder records nothing.
type Recorder struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	likeToggles      *prometheus.CounterVec
	chapterMutations *prometheus.CounterVec
	commentsCreated  *prometheus.CounterVec
}

// New creates a recorder with every collector registered
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uwrite_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "uwrite_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		likeToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uwrite_like_toggles_total",
			Help: "Like toggles by target kind and resulting state",
		}, []string{"target", "liked"}),
		chapterMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uwrite_chapter_mutations_total",
			Help: "Chapter create, update, reorder and delete operations by outcome",
		}, []string{"operation", "outcome"}),
		commentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uwrite_comments_created_total",
			Help: "Comments created by target kind",
		}, []string{"target"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.httpRequests,
		r.httpDuration,
		r.likeToggles,
		r.chapterMutations,
		r.commentsCreated,
	)
	return r
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// ObserveRequest records one served HTTP request
func (r *Recorder) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// LikeToggled records the outcome of a like toggle
func (r *Recorder) LikeToggled(target string, liked bool) {
	if r == nil {
		return
	}
	r.likeToggles.WithLabelValues(target, strconv.FormatBool(liked)).Inc()
}

// ChapterMutation records a chapter operation; outcome is "ok" or "rejected"
func (r *Recorder) ChapterMutation(operation, outcome string) {
	if r == nil {
		return
	}
	r.chapterMutations.WithLabelValues(operation, outcome).Inc()
}

// CommentCreated records a new comment
func (r *Recorder) CommentCreated(target string) {
	if r == nil {
		return
	}
	r.commentsCreated.WithLabelValues(target).Inc()
}
