package handler

import (
	"fmt"
	"net/http"

	"github.com/fitlog/fitlog/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "fitlog_user_cache_hits_total %d\n", snap.UserCacheHits)
	writeMetric(w, "fitlog_user_cache_misses_total %d\n", snap.UserCacheMisses)

	writeMetric(w, "fitlog_users_created_total %d\n", snap.UsersCreated)
	writeMetric(w, "fitlog_exercises_created_total %d\n", snap.ExercisesCreated)

	writeMetric(w, "fitlog_logs_query_duration_seconds_count %d\n", snap.LogsQueryDurationCount)
	writeMetric(w, "fitlog_logs_query_duration_seconds_sum %.6f\n", float64(snap.LogsQueryDurationTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
