// Package trigger runs downstream action dispatches in the background on a
// bounded pool of goroutines.
package trigger

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"docmap/internal/port"
)

var (
	// ErrWorkerStopped is returned by Submit once the worker is shutting down.
	ErrWorkerStopped = errors.New("trigger worker stopped")
	// ErrQueueFull is returned by Submit when no queue slot is free.
	ErrQueueFull = errors.New("trigger queue is full")
)

// Job is one dispatch. Done is invoked exactly once with the dispatch outcome.
type Job struct {
	Request port.TriggerRequest
	Done    func(receipt *port.TriggerReceipt, err error)
}

// WorkerConfig holds settings for the dispatch worker.
type WorkerConfig struct {
	Concurrency int
	Timeout     time.Duration
	QueueSize   int
}

// Worker drains submitted jobs and dispatches at most Concurrency of them at a time.
type Worker struct {
	dispatcher port.TriggerDispatcher
	cfg        WorkerConfig
	logger     *zap.Logger

	jobs    chan Job
	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewWorker creates a new Worker.
func NewWorker(dispatcher port.TriggerDispatcher, cfg WorkerConfig, logger *zap.Logger) *Worker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	return &Worker{
		dispatcher: dispatcher,
		cfg:        cfg,
		logger:     logger.Named("trigger"),
		jobs:       make(chan Job, cfg.QueueSize),
	}
}

// Submit queues a job without blocking.
func (w *Worker) Submit(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return ErrWorkerStopped
	}
	select {
	case w.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start runs the dispatch loop until ctx is canceled. It blocks until all
// queued and in-flight dispatches have finished.
func (w *Worker) Start(ctx context.Context) {
	sem := make(chan struct{}, w.cfg.Concurrency)

	w.logger.Info("trigger worker started",
		zap.Int("concurrency", w.cfg.Concurrency),
		zap.Duration("timeout", w.cfg.Timeout))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("trigger worker shutting down, draining queue")
			w.mu.Lock()
			w.stopped = true
			close(w.jobs)
			w.mu.Unlock()
			for job := range w.jobs {
				sem <- struct{}{}
				w.run(sem, job)
			}
			w.wg.Wait()
			w.logger.Info("trigger worker shutdown complete")
			return
		case job := <-w.jobs:
			sem <- struct{}{} // acquire
			w.run(sem, job)
		}
	}
}

func (w *Worker) run(sem chan struct{}, job Job) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() { <-sem }() // release

		// Dispatches get a fresh context so they complete during shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), w.cfg.Timeout)
		defer cancel()

		receipt, err := w.dispatcher.Dispatch(ctx, job.Request)
		if err != nil {
			w.logger.Warn("trigger dispatch failed",
				zap.String("trigger_id", job.Request.ID.String()),
				zap.String("action", job.Request.ActionName),
				zap.Error(err))
		}
		if job.Done != nil {
			job.Done(receipt, err)
		}
	}()
}
