package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/docoutline/internal/config"
)

// ErrQueueFull is returned by Submit when no queue slot is free.
var ErrQueueFull = errors.New("job queue is full")

// Orchestrator runs submitted outline jobs on a fixed pool of workers and
// keeps their state in a TTL-bounded JobStore.
type Orchestrator struct {
	jobs   *JobStore
	queue  chan *Job
	worker *Worker
	log    *slog.Logger

	workers int
	ttl     time.Duration

	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewOrchestrator creates the pool. Call Start to launch workers.
func NewOrchestrator(cfg config.Config, worker *Worker, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	workers := cfg.WorkerCount
	if workers <= 0 {
		workers = 1
	}
	return &Orchestrator{
		jobs:    NewJobStore(cfg.JobTTL),
		queue:   make(chan *Job, max(cfg.MaxQueueSize, 1)),
		worker:  worker,
		log:     log,
		workers: workers,
		ttl:     cfg.JobTTL,
	}
}

// Start launches the workers and the job store janitor.
func (o *Orchestrator) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for id := range o.workers {
		o.wg.Add(1)
		go o.run(ctx, o.log.With("worker", id))
	}

	o.wg.Add(1)
	go o.janitor(ctx)
}

func (o *Orchestrator) run(ctx context.Context, log *slog.Logger) {
	defer o.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-o.queue:
			if !ok {
				return
			}
			log.Debug("job picked up", "job_id", job.ID)
			o.worker.Process(ctx, job)
		}
	}
}

// janitor evicts finished jobs older than the TTL.
func (o *Orchestrator) janitor(ctx context.Context) {
	defer o.wg.Done()
	interval := 5 * time.Minute
	if o.ttl > 0 && o.ttl/2 < interval {
		interval = max(o.ttl/2, time.Second)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			before := o.jobs.Len()
			o.jobs.Cleanup()
			if n := before - o.jobs.Len(); n > 0 {
				o.log.Debug("expired jobs evicted", "count", n)
			}
		}
	}
}

// Stop cancels in-flight work and waits for the workers. Safe to call twice.
func (o *Orchestrator) Stop() {
	o.stopOnce.Do(func() {
		if o.cancel != nil {
			o.cancel()
		}
		close(o.queue)
		o.wg.Wait()
	})
}

// Submit stores the job and queues it. A job that cannot be queued stays in
// the store marked failed so its status can still be polled.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		o.log.Warn("job rejected", "job_id", job.ID, "queue_size", cap(o.queue))
		return fmt.Errorf("%w (%d)", ErrQueueFull, cap(o.queue))
	}
}

// GetJob returns a job by ID, or nil.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns the number of jobs waiting for a worker.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Worker returns the worker shared by the pool, for synchronous requests.
func (o *Orchestrator) Worker() *Worker {
	return o.worker
}
