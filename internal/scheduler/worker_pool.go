package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/centsible/centsible_backend/internal/apperrors"
	"github.com/centsible/centsible_backend/internal/middleware"
)

const jobTimeout = 5 * time.Minute

// WorkerPool runs submitted jobs on a fixed set of goroutines.
type WorkerPool struct {
	workerCount int
	jobs        chan Job
	logger      *slog.Logger
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewWorkerPool creates a pool with workerCount goroutines and a buffered queue.
func NewWorkerPool(workerCount, queueSize int, logger *slog.Logger) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		workerCount: workerCount,
		jobs:        make(chan Job, queueSize),
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start() {
	wp.logger.Info("starting worker pool", slog.Int("workers", wp.workerCount))

	for i := 1; i <= wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for {
		select {
		case <-wp.ctx.Done():
			wp.logger.Debug("worker shutting down", slog.Int("worker_id", id))
			return

		case job, ok := <-wp.jobs:
			if !ok {
				return
			}
			wp.processJob(id, job)
		}
	}
}

// processJob runs a job with a timeout and a single retry for transient failures.
func (wp *WorkerPool) processJob(workerID int, job Job) {
	logger := wp.logger.With(slog.Int("worker_id", workerID), slog.String("job", job.Name()))

	ctx, cancel := context.WithTimeout(wp.ctx, jobTimeout)
	defer cancel()
	ctx = middleware.WithLogger(ctx, logger)

	start := time.Now()
	err := job.Execute(ctx)
	if err != nil && apperrors.IsTransient(err) {
		logger.Warn("job failed with transient error, retrying once", slog.String("error", err.Error()))
		err = job.Execute(ctx)
	}
	if err != nil {
		logger.Error("job failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		return
	}

	logger.Info("job completed", slog.Duration("duration", time.Since(start)))
}

// Submit queues a job without blocking. A full queue drops the job.
func (wp *WorkerPool) Submit(job Job) error {
	select {
	case <-wp.ctx.Done():
		return wp.ctx.Err()
	case wp.jobs <- job:
		return nil
	default:
		wp.logger.Warn("job queue full, dropping job", slog.String("job", job.Name()))
		return fmt.Errorf("job queue full, dropping job %s", job.Name())
	}
}

// SubmitBatch queues multiple jobs, skipping any the queue cannot take.
func (wp *WorkerPool) SubmitBatch(jobs []Job) {
	submitted := 0
	for _, job := range jobs {
		if err := wp.Submit(job); err != nil {
			continue
		}
		submitted++
	}
	wp.logger.Info("submitted jobs to worker pool", slog.Int("submitted", submitted), slog.Int("total", len(jobs)))
}

// ShutdownWithTimeout closes the queue and waits for workers, forcing cancellation after timeout.
func (wp *WorkerPool) ShutdownWithTimeout(timeout time.Duration) {
	close(wp.jobs)

	done := make(chan struct{})
	go func() {
		wp.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		wp.logger.Info("worker pool drained")
	case <-time.After(timeout):
		wp.logger.Warn("worker pool shutdown timed out, cancelling in-flight jobs")
		wp.cancel()
	}
}
