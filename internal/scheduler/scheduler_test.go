package scheduler

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScheduleTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ScheduleTime
		wantErr bool
	}{
		{name: "morning", input: "06:00", want: ScheduleTime{Hour: 6, Minute: 0}},
		{name: "midnight", input: "00:00", want: ScheduleTime{Hour: 0, Minute: 0}},
		{name: "end of day", input: "23:59", want: ScheduleTime{Hour: 23, Minute: 59}},
		{name: "missing colon", input: "0600", wantErr: true},
		{name: "not a time", input: "soon", wantErr: true},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScheduleTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestNew_RequiresScheduleTime(t *testing.T) {
	_, err := New(Config{ScheduleTimes: nil})
	assert.Error(t, err)

	_, err = New(Config{ScheduleTimes: []string{"25:00"}})
	assert.Error(t, err)
}

func TestShouldRun(t *testing.T) {
	sched, err := New(Config{ScheduleTimes: []string{"06:00"}, WorkerCount: 1})
	require.NoError(t, err)

	at := time.Date(2025, 6, 10, 6, 0, 30, 0, time.UTC)

	assert.True(t, sched.shouldRun(at), "configured minute fires")
	assert.False(t, sched.shouldRun(at.Add(10*time.Second)), "same minute fires only once")
	assert.False(t, sched.shouldRun(at.Add(time.Minute)), "other minutes do not fire")
	assert.True(t, sched.shouldRun(at.AddDate(0, 0, 1)), "the same minute on the next day fires again")
}

func TestNextScheduledTime(t *testing.T) {
	sched, err := New(Config{ScheduleTimes: []string{"06:00", "18:30"}, WorkerCount: 1})
	require.NoError(t, err)

	morning := time.Date(2025, 6, 10, 5, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 10, 6, 0, 0, 0, time.UTC), sched.NextScheduledTime(morning))

	afternoon := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 10, 18, 30, 0, 0, time.UTC), sched.NextScheduledTime(afternoon))

	night := time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 11, 6, 0, 0, 0, time.UTC), sched.NextScheduledTime(night))
}

func TestTriggerNow_RunsAllJobs(t *testing.T) {
	var ran atomic.Int32
	done := make(chan struct{}, 2)

	job := NewJob("count", func(ctx context.Context) error {
		ran.Add(1)
		done <- struct{}{}
		return nil
	})

	sched, err := New(Config{
		ScheduleTimes: []string{"06:00"},
		WorkerCount:   1,
		QueueSize:     4,
		Jobs:          []Job{job, job},
		Logger:        slog.Default(),
	})
	require.NoError(t, err)

	sched.Start()
	defer sched.Shutdown(time.Second)

	sched.TriggerNow()

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("job did not run")
		}
	}
	assert.Equal(t, int32(2), ran.Load())
}

func TestWorkerPool_SubmitDropsWhenQueueFull(t *testing.T) {
	pool := NewWorkerPool(1, 1, slog.Default())

	block := make(chan struct{})
	blocking := NewJob("blocking", func(ctx context.Context) error {
		<-block
		return nil
	})

	// One job fills the queue; the pool has not started, so nothing drains it.
	require.NoError(t, pool.Submit(blocking))
	assert.Error(t, pool.Submit(blocking))

	close(block)
	pool.Start()
	pool.ShutdownWithTimeout(time.Second)
}
