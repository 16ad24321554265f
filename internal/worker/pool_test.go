package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/guanwo/internal/config"
	"github.com/at-ishikawa/guanwo/internal/testutil"
)

type fakeJob struct {
	name      string
	run       func(ctx context.Context) error
	ran       atomic.Bool
	abandoned atomic.Bool
}

func (j *fakeJob) Name() string { return j.name }

func (j *fakeJob) Run(ctx context.Context) error {
	j.ran.Store(true)
	if j.run != nil {
		return j.run(ctx)
	}
	return nil
}

func (j *fakeJob) Abandon(ctx context.Context) {
	j.abandoned.Store(true)
}

func TestPool_RunsJobs(t *testing.T) {
	pool := NewPool(config.WorkerConfig{Concurrency: 3, QueueSize: 10}, testutil.Logger())
	pool.Start(context.Background())

	var wg sync.WaitGroup
	jobs := make([]*fakeJob, 10)
	for i := range jobs {
		wg.Add(1)
		jobs[i] = &fakeJob{name: "job", run: func(ctx context.Context) error {
			defer wg.Done()
			return nil
		}}
		require.NoError(t, pool.Submit(jobs[i]))
	}
	wg.Wait()
	require.NoError(t, pool.Shutdown(context.Background()))

	for _, job := range jobs {
		assert.True(t, job.ran.Load())
		assert.False(t, job.abandoned.Load())
	}
}

func TestPool_RecoversFromPanic(t *testing.T) {
	pool := NewPool(config.WorkerConfig{Concurrency: 1, QueueSize: 2}, testutil.Logger())
	pool.Start(context.Background())

	done := make(chan struct{})
	require.NoError(t, pool.Submit(&fakeJob{name: "panics", run: func(ctx context.Context) error {
		panic("boom")
	}}))
	require.NoError(t, pool.Submit(&fakeJob{name: "after", run: func(ctx context.Context) error {
		close(done)
		return errors.New("ignored")
	}}))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not survive the panic")
	}
	require.NoError(t, pool.Shutdown(context.Background()))
}

func TestPool_Submit_QueueFull(t *testing.T) {
	pool := NewPool(config.WorkerConfig{Concurrency: 1, QueueSize: 1}, testutil.Logger())

	require.NoError(t, pool.Submit(&fakeJob{name: "first"}))
	err := pool.Submit(&fakeJob{name: "second"})
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestPool_Shutdown_AbandonsQueuedJobs(t *testing.T) {
	pool := NewPool(config.WorkerConfig{Concurrency: 1, QueueSize: 5}, testutil.Logger())
	pool.Start(context.Background())

	started := make(chan struct{})
	release := make(chan struct{})
	blocking := &fakeJob{name: "blocking", run: func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	}}
	require.NoError(t, pool.Submit(blocking))
	<-started

	queued := []*fakeJob{{name: "queued-1"}, {name: "queued-2"}}
	for _, job := range queued {
		require.NoError(t, pool.Submit(job))
	}

	shutdownErr := make(chan error, 1)
	go func() {
		shutdownErr <- pool.Shutdown(context.Background())
	}()
	// Give Shutdown time to stop intake before the running job returns.
	require.Eventually(t, func() bool {
		return errors.Is(pool.Submit(&fakeJob{name: "late"}), ErrClosed)
	}, 5*time.Second, 10*time.Millisecond)
	close(release)

	require.NoError(t, <-shutdownErr)
	assert.True(t, blocking.ran.Load())
	for _, job := range queued {
		assert.False(t, job.ran.Load(), job.name)
		assert.True(t, job.abandoned.Load(), job.name)
	}
}

func TestPool_Shutdown_CancelsRunningJobsAfterDeadline(t *testing.T) {
	pool := NewPool(config.WorkerConfig{Concurrency: 1, QueueSize: 1}, testutil.Logger())
	pool.Start(context.Background())

	started := make(chan struct{})
	var cancelled atomic.Bool
	require.NoError(t, pool.Submit(&fakeJob{name: "slow", run: func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	}}))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := pool.Shutdown(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, cancelled.Load())
}

func TestPool_Shutdown_NotStarted(t *testing.T) {
	pool := NewPool(config.WorkerConfig{Concurrency: 1, QueueSize: 2}, testutil.Logger())
	job := &fakeJob{name: "queued"}
	require.NoError(t, pool.Submit(job))

	require.NoError(t, pool.Shutdown(context.Background()))
	require.NoError(t, pool.Shutdown(context.Background()))
	assert.True(t, job.abandoned.Load())
	assert.ErrorIs(t, pool.Submit(&fakeJob{name: "late"}), ErrClosed)
}
