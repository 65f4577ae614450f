// Package scheduler runs the ETL pipeline on a recurring cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/goodbooks/goodbooks/internal/etl"
)

// Runner executes one pipeline pass. *etl.Pipeline satisfies it.
type Runner interface {
	Run(opts etl.Options) (etl.Result, error)
}

// PipelineScheduler triggers pipeline runs on a cron schedule. Overlapping
// runs are skipped: at most one pipeline invocation executes at a time
// against the storage target, since concurrent full-replace loads
// interleave undefined.
type PipelineScheduler struct {
	pipeline Runner
	opts     etl.Options
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc

	// runActive has its own lock: Stop waits on the in-flight job while
	// holding mu, so the job must never need mu to finish.
	runMu     sync.Mutex
	runActive bool
}

// NewPipelineScheduler creates a scheduler for the given pipeline and sink
// options. Schedule uses the standard 5-field cron format.
func NewPipelineScheduler(pipeline Runner, opts etl.Options, schedule string) *PipelineScheduler {
	return &PipelineScheduler{
		pipeline: pipeline,
		opts:     opts,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins scheduling pipeline runs.
func (s *PipelineScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runPipeline()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Pipeline scheduler: started with schedule '%s'. Next run: %v",
		s.schedule, s.nextRunLocked())

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops accepting new runs and waits for an in-flight run to finish.
func (s *PipelineScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Pipeline scheduler: stopped")
}

// IsRunning returns whether the scheduler is active.
func (s *PipelineScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// NextRunTime returns when the next pipeline run will fire.
func (s *PipelineScheduler) NextRunTime() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}
	return s.nextRunLocked()
}

func (s *PipelineScheduler) nextRunLocked() *time.Time {
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *PipelineScheduler) runPipeline() {
	s.runMu.Lock()
	if s.runActive {
		s.runMu.Unlock()
		log.Printf("Pipeline scheduler: previous run still active, skipping")
		return
	}
	s.runActive = true
	s.runMu.Unlock()

	defer func() {
		s.runMu.Lock()
		s.runActive = false
		s.runMu.Unlock()
	}()

	if _, err := s.pipeline.Run(s.opts); err != nil {
		log.Printf("Pipeline scheduler: run failed: %v", err)
	}
}
