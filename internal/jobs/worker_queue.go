package jobs

import (
	"sync"
	"time"

	"github.com/lucasmr/learnpulse/internal/cache"
	"github.com/lucasmr/learnpulse/internal/logger"
	"github.com/lucasmr/learnpulse/internal/worker"
)

// WorkerQueue implements JobQueue on a worker pool with a per-user trailing
// debounce. The first write opens a window and schedules one recompute for
// when the window closes; every further write inside the window folds into
// that pending run, so the run reads the whole burst.
// The debounce is best-effort and non-durable: if the process restarts the
// state is lost and an extra recomputation may run, which is harmless
// because recomputation is idempotent.
type WorkerQueue struct {
	pool         *worker.Pool
	analytics    worker.AnalyticsRecomputer
	achievements worker.AchievementEvaluator
	debounce     cache.TTLStore
	debounceTTL  time.Duration
	log          *logger.Logger

	mu       sync.Mutex
	timers   map[string]*time.Timer
	inflight sync.WaitGroup
	closed   bool
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(
	pool *worker.Pool,
	analytics worker.AnalyticsRecomputer,
	achievements worker.AchievementEvaluator,
	debounce cache.TTLStore,
	debounceTTL time.Duration,
) *WorkerQueue {
	return &WorkerQueue{
		pool:         pool,
		analytics:    analytics,
		achievements: achievements,
		debounce:     debounce,
		debounceTTL:  debounceTTL,
		log:          logger.Default().WithPrefix("job-queue"),
		timers:       make(map[string]*time.Timer),
	}
}

func (q *WorkerQueue) EnqueueRecompute(userID string) error {
	if !q.debounce.SetIfAbsent(userID, q.debounceTTL) {
		q.log.Debug("recompute coalesced into pending run: user_id=%s", userID)
		return nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	q.timers[userID] = time.AfterFunc(q.debounceTTL, func() { q.flush(userID) })
	q.log.Debug("recompute scheduled in %v: user_id=%s", q.debounceTTL, userID)
	return nil
}

// flush submits the pending recompute once the debounce window closes.
// The debounce entry is cleared before the submit so a write racing the
// flush opens a fresh window; at worst that costs one extra idempotent
// recomputation, never a missed one.
func (q *WorkerQueue) flush(userID string) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	delete(q.timers, userID)
	q.inflight.Add(1)
	q.mu.Unlock()
	defer q.inflight.Done()

	q.debounce.Delete(userID)
	q.pool.Submit(&worker.RecomputeAnalyticsJob{
		Analytics:    q.analytics,
		Achievements: q.achievements,
		UserID:       userID,
	})
}

// Stop cancels pending debounce timers and waits for in-flight flushes.
// Call before stopping the pool so no timer submits to a stopped queue.
func (q *WorkerQueue) Stop() {
	q.mu.Lock()
	q.closed = true
	timers := q.timers
	q.timers = make(map[string]*time.Timer)
	q.mu.Unlock()

	for _, t := range timers {
		t.Stop()
	}
	q.inflight.Wait()
}
