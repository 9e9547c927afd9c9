package workers

import (
	"context"
	"errors"
	"sync"

	"github.com/MKhiriev/group-vault/internal/logger"
)

// ErrQueueClosed is returned by [Queue.Submit] after [Queue.Stop].
var ErrQueueClosed = errors.New("work queue is closed")

// Job is one unit of queued work.
type Job func()

type queuedJob struct {
	job  Job
	done chan struct{}
}

// Queue executes submitted jobs one at a time in submission order on a
// single goroutine.
type Queue struct {
	jobs chan queuedJob

	mu       sync.Mutex
	closed   bool
	stopping chan struct{}
	senders  sync.WaitGroup

	start   sync.Once
	stop    sync.Once
	stopped chan struct{}

	logger *logger.Logger
}

var _ Worker = (*Queue)(nil)

// NewQueue creates a queue accepting up to backlog jobs before Submit
// blocks.
func NewQueue(backlog int, log *logger.Logger) *Queue {
	if backlog < 0 {
		backlog = 0
	}
	return &Queue{
		jobs:     make(chan queuedJob, backlog),
		stopping: make(chan struct{}),
		stopped:  make(chan struct{}),
		logger:   log,
	}
}

// Run starts the worker goroutine. Calling it again has no effect.
func (q *Queue) Run() {
	q.start.Do(func() {
		go q.loop()
	})
}

func (q *Queue) loop() {
	defer close(q.stopped)
	for j := range q.jobs {
		q.execute(j)
	}
}

func (q *Queue) execute(j queuedJob) {
	defer close(j.done)
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error().
				Str("func", "Queue.execute").
				Interface("panic", r).
				Msg("queued job panicked")
		}
	}()
	j.job()
}

// Submit enqueues job and returns a channel closed once it has run. It
// blocks while the backlog is full, until ctx is done or the queue stops.
func (q *Queue) Submit(ctx context.Context, job Job) (<-chan struct{}, error) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil, ErrQueueClosed
	}
	q.senders.Add(1)
	q.mu.Unlock()
	defer q.senders.Done()

	j := queuedJob{job: job, done: make(chan struct{})}
	// free backlog wins even over a done ctx
	select {
	case q.jobs <- j:
		return j.done, nil
	default:
	}
	select {
	case q.jobs <- j:
		return j.done, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-q.stopping:
		return nil, ErrQueueClosed
	}
}

// Stop rejects further submissions and releases submitters still waiting
// for room. Accepted jobs finish before it returns. A queue that was never
// run is only closed.
func (q *Queue) Stop() {
	q.stop.Do(func() {
		q.mu.Lock()
		q.closed = true
		close(q.stopping)
		q.mu.Unlock()

		// jobs is closed only once no sender can still write to it
		q.senders.Wait()
		close(q.jobs)
	})

	// a queue that never ran has no goroutine to close stopped
	q.start.Do(func() { close(q.stopped) })
	<-q.stopped
}
