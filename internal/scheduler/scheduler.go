package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hudsonmp/project-finder/internal/domain"
)

// ErrAlreadyScheduled is returned when a refresh job is already registered
var ErrAlreadyScheduled = errors.New("refresh already scheduled")

// RefreshFunc runs one data refresh cycle
type RefreshFunc func(ctx context.Context) error

// Scheduler runs a single periodic refresh job. At most one job can be
// registered at a time.
type Scheduler struct {
	interval time.Duration
	refresh  RefreshFunc
	logger   *slog.Logger

	mu     sync.Mutex
	job    *domain.RefreshJob
	cancel context.CancelFunc
	done   chan struct{}
}

func New(interval time.Duration, refresh RefreshFunc, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{interval: interval, refresh: refresh, logger: logger}
}

// Schedule registers the periodic refresh and starts the ticker loop. It
// returns a job descriptor with the generated job ID, the next run time,
// and a human-readable interval.
func (s *Scheduler) Schedule(ctx context.Context) (domain.RefreshJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.job != nil {
		return domain.RefreshJob{}, ErrAlreadyScheduled
	}

	job := &domain.RefreshJob{
		JobID:    uuid.NewString(),
		NextRun:  time.Now().Add(s.interval).UTC(),
		Interval: fmt.Sprintf("every %s", s.interval),
	}
	s.job = job

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(runCtx)

	s.logger.Info("refresh scheduled",
		"job_id", job.JobID, "next_run", job.NextRun.Format(time.RFC3339), "interval", job.Interval)
	return *job, nil
}

func (s *Scheduler) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// the loop owns the job registration: whether torn down by Stop or by
	// the parent context, exiting clears it so Schedule works again
	defer func() {
		s.mu.Lock()
		done := s.done
		s.job = nil
		s.cancel = nil
		s.done = nil
		s.mu.Unlock()
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.refresh(ctx); err != nil {
				s.logger.Error("scheduled refresh failed", "err", err)
			}
			s.mu.Lock()
			s.job.NextRun = time.Now().Add(s.interval).UTC()
			s.mu.Unlock()
		}
	}
}

// Job returns the current job descriptor, if one is registered
func (s *Scheduler) Job() (domain.RefreshJob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.job == nil {
		return domain.RefreshJob{}, false
	}
	return *s.job, true
}

// Stop cancels the ticker loop and waits for it to exit. The scheduler
// can be scheduled again afterwards.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
