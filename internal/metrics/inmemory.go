package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UserCacheHits            uint64
	UserCacheMisses          uint64
	UsersCreated             uint64
	ExercisesCreated         uint64
	LogsQueryDurationCount   uint64
	LogsQueryDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	userCacheHits            uint64
	userCacheMisses          uint64
	usersCreated             uint64
	exercisesCreated         uint64
	logsQueryDurationCount   uint64
	logsQueryDurationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UserCacheHits:            atomic.LoadUint64(&m.userCacheHits),
		UserCacheMisses:          atomic.LoadUint64(&m.userCacheMisses),
		UsersCreated:             atomic.LoadUint64(&m.usersCreated),
		ExercisesCreated:         atomic.LoadUint64(&m.exercisesCreated),
		LogsQueryDurationCount:   atomic.LoadUint64(&m.logsQueryDurationCount),
		LogsQueryDurationTotalNs: atomic.LoadInt64(&m.logsQueryDurationTotalNs),
	}
}

// IncUserCacheHit increments the cache hit counter.
func (m *InMemoryRecorder) IncUserCacheHit() {
	atomic.AddUint64(&m.userCacheHits, 1)
}

// IncUserCacheMiss increments the cache miss counter.
func (m *InMemoryRecorder) IncUserCacheMiss() {
	atomic.AddUint64(&m.userCacheMisses, 1)
}

// IncUserCreated increments the user created counter.
func (m *InMemoryRecorder) IncUserCreated() {
	atomic.AddUint64(&m.usersCreated, 1)
}

// IncExerciseCreated increments the exercise created counter.
func (m *InMemoryRecorder) IncExerciseCreated() {
	atomic.AddUint64(&m.exercisesCreated, 1)
}

// ObserveLogsQueryDuration records the duration of a logs query.
func (m *InMemoryRecorder) ObserveLogsQueryDuration(duration time.Duration) {
	atomic.AddUint64(&m.logsQueryDurationCount, 1)
	atomic.AddInt64(&m.logsQueryDurationTotalNs, duration.Nanoseconds())
}
