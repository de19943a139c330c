package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	resumesFinalizedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resumes_finalized_total",
		Help: "Number of resumes rendered and persisted.",
	})
	resumesDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resumes_deleted_total",
		Help: "Number of resumes removed from the ledger.",
	})
	archivesStreamedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "archives_streamed_total",
		Help: "Number of bucket zip downloads streamed to completion.",
	})
	renderDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "resume_render_duration_seconds",
		Help:    "Template render latency.",
		Buckets: prometheus.DefBuckets,
	})
)

// IncResumeFinalized increments the finalize counter.
func IncResumeFinalized() {
	resumesFinalizedTotal.Inc()
}

// IncResumeDeleted increments the delete counter.
func IncResumeDeleted() {
	resumesDeletedTotal.Inc()
}

// IncArchiveStreamed increments the bucket download counter.
func IncArchiveStreamed() {
	archivesStreamedTotal.Inc()
}

// ObserveRenderDuration records a template render duration.
func ObserveRenderDuration(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	renderDurationSeconds.Observe(seconds)
}

// Handler exposes the default prometheus registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
