package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodbooks/goodbooks/internal/config"
	"github.com/goodbooks/goodbooks/internal/etl"
)

func testPipeline() *etl.Pipeline {
	return etl.NewPipeline(&config.Config{}, nil)
}

func TestScheduler_InvalidScheduleFailsStart(t *testing.T) {
	sched := NewPipelineScheduler(testPipeline(), etl.Options{}, "not a cron expression")

	err := sched.Start(context.Background())

	require.Error(t, err)
	assert.False(t, sched.IsRunning())
}

func TestScheduler_StartStop(t *testing.T) {
	sched := NewPipelineScheduler(testPipeline(), etl.Options{}, "0 3 * * *")

	require.NoError(t, sched.Start(context.Background()))
	assert.True(t, sched.IsRunning())

	next := sched.NextRunTime()
	require.NotNil(t, next)
	assert.False(t, next.IsZero())

	sched.Stop()
	assert.False(t, sched.IsRunning())
	assert.Nil(t, sched.NextRunTime())
}

func TestScheduler_StartTwiceIsNoop(t *testing.T) {
	sched := NewPipelineScheduler(testPipeline(), etl.Options{}, "* * * * *")

	require.NoError(t, sched.Start(context.Background()))
	require.NoError(t, sched.Start(context.Background()))
	sched.Stop()
}

type blockingRunner struct {
	started chan struct{}
	release chan struct{}
}

func (r *blockingRunner) Run(etl.Options) (etl.Result, error) {
	r.started <- struct{}{}
	<-r.release
	return etl.Result{}, nil
}

func TestScheduler_StopDuringInFlightRun(t *testing.T) {
	runner := &blockingRunner{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	sched := NewPipelineScheduler(runner, etl.Options{}, "* * * * * *")
	// Second-resolution cron so a run fires within the test.
	sched.cron = cron.New(cron.WithSeconds())

	require.NoError(t, sched.Start(context.Background()))

	select {
	case <-runner.started:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduled run never started")
	}

	stopped := make(chan struct{})
	go func() {
		sched.Stop()
		close(stopped)
	}()

	// Stop waits for the in-flight run rather than returning early.
	select {
	case <-stopped:
		t.Fatal("Stop returned while a run was still in flight")
	case <-time.After(100 * time.Millisecond):
	}

	close(runner.release)

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return after the in-flight run finished")
	}
	assert.False(t, sched.IsRunning())
}

func TestScheduler_ContextCancellationStops(t *testing.T) {
	sched := NewPipelineScheduler(testPipeline(), etl.Options{}, "0 3 * * *")

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, sched.Start(ctx))

	cancel()

	// Stop is asynchronous on cancellation; it must at least be safe to
	// call again directly.
	sched.Stop()
	assert.False(t, sched.IsRunning())
}
