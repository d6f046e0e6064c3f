package scheduler

import "context"

// Job is a unit of scheduled work.
type Job interface {
	Execute(ctx context.Context) error
	Name() string
}

type funcJob struct {
	name string
	fn   func(ctx context.Context) error
}

// NewJob wraps a plain function as a Job.
func NewJob(name string, fn func(ctx context.Context) error) Job {
	return &funcJob{name: name, fn: fn}
}

func (j *funcJob) Execute(ctx context.Context) error {
	return j.fn(ctx)
}

func (j *funcJob) Name() string {
	return j.name
}
