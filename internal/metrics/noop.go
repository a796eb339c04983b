package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserCacheHit is a no-op.
func (n *NoopRecorder) IncUserCacheHit() {}

// IncUserCacheMiss is a no-op.
func (n *NoopRecorder) IncUserCacheMiss() {}

// IncUserCreated is a no-op.
func (n *NoopRecorder) IncUserCreated() {}

// IncExerciseCreated is a no-op.
func (n *NoopRecorder) IncExerciseCreated() {}

// ObserveLogsQueryDuration is a no-op.
func (n *NoopRecorder) ObserveLogsQueryDuration(duration time.Duration) {}
