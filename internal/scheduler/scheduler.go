package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ScheduleTime is a time of day at which the scheduler fires.
type ScheduleTime struct {
	Hour   int
	Minute int
}

// String returns the time in HH:MM format.
func (st ScheduleTime) String() string {
	return fmt.Sprintf("%02d:%02d", st.Hour, st.Minute)
}

// ParseScheduleTime parses a time string in HH:MM format.
func ParseScheduleTime(s string) (ScheduleTime, error) {
	var hour, minute int
	_, err := fmt.Sscanf(s, "%d:%d", &hour, &minute)
	if err != nil {
		return ScheduleTime{}, fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}

	if hour < 0 || hour > 23 {
		return ScheduleTime{}, fmt.Errorf("invalid hour: %d (must be 0-23)", hour)
	}
	if minute < 0 || minute > 59 {
		return ScheduleTime{}, fmt.Errorf("invalid minute: %d (must be 0-59)", minute)
	}

	return ScheduleTime{Hour: hour, Minute: minute}, nil
}

// Scheduler fires a fixed set of jobs at configured times of day.
type Scheduler struct {
	workerPool    *WorkerPool
	scheduleTimes []ScheduleTime
	runOnStartup  bool
	jobs          []Job
	logger        *slog.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	lastRun string
	mu      sync.Mutex
}

// Config holds scheduler configuration.
type Config struct {
	ScheduleTimes []string
	WorkerCount   int
	QueueSize     int
	RunOnStartup  bool
	Jobs          []Job
	Logger        *slog.Logger
}

// New creates a scheduler from the given configuration.
func New(cfg Config) (*Scheduler, error) {
	scheduleTimes := make([]ScheduleTime, 0, len(cfg.ScheduleTimes))
	for _, timeStr := range cfg.ScheduleTimes {
		st, err := ParseScheduleTime(timeStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse schedule time %q: %w", timeStr, err)
		}
		scheduleTimes = append(scheduleTimes, st)
	}

	if len(scheduleTimes) == 0 {
		return nil, fmt.Errorf("at least one schedule time is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "scheduler"))

	queueSize := cfg.QueueSize
	if queueSize == 0 {
		queueSize = len(cfg.Jobs) * 2
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		workerPool:    NewWorkerPool(cfg.WorkerCount, queueSize, logger),
		scheduleTimes: scheduleTimes,
		runOnStartup:  cfg.RunOnStartup,
		jobs:          cfg.Jobs,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

// Start launches the worker pool and the scheduling loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", slog.Any("schedule_times", s.scheduleTimes))

	s.workerPool.Start()

	if s.runOnStartup {
		s.logger.Info("running job batch on startup")
		s.workerPool.SubmitBatch(s.jobs)
	}

	s.wg.Add(1)
	go s.scheduleLoop()
}

func (s *Scheduler) scheduleLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return

		case now := <-ticker.C:
			if s.shouldRun(now) {
				s.logger.Info("schedule triggered", slog.String("at", now.Format("15:04")))
				s.workerPool.SubmitBatch(s.jobs)
			}
		}
	}
}

// shouldRun reports whether now matches a configured time that has not fired yet.
func (s *Scheduler) shouldRun(now time.Time) bool {
	currentKey := now.Format("2006-01-02 15:04")

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastRun == currentKey {
		return false
	}

	for _, st := range s.scheduleTimes {
		if now.Hour() == st.Hour && now.Minute() == st.Minute {
			s.lastRun = currentKey
			return true
		}
	}

	return false
}

// TriggerNow submits the job batch immediately, outside the schedule.
func (s *Scheduler) TriggerNow() {
	s.logger.Info("manual trigger")
	s.workerPool.SubmitBatch(s.jobs)
}

// NextScheduledTime returns the next time the scheduler will fire.
func (s *Scheduler) NextScheduledTime(now time.Time) time.Time {
	var next time.Time
	for _, st := range s.scheduleTimes {
		candidate := time.Date(now.Year(), now.Month(), now.Day(), st.Hour, st.Minute, 0, 0, now.Location())
		if !candidate.After(now) {
			candidate = candidate.AddDate(0, 0, 1)
		}
		if next.IsZero() || candidate.Before(next) {
			next = candidate
		}
	}
	return next
}

// Shutdown stops the scheduling loop and drains the worker pool.
func (s *Scheduler) Shutdown(timeout time.Duration) {
	s.logger.Info("scheduler shutting down")

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		s.logger.Warn("timeout waiting for scheduler loop to stop")
	}

	s.workerPool.ShutdownWithTimeout(timeout)

	s.logger.Info("scheduler stopped")
}
