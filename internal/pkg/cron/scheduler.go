// Package cron runs the periodic maintenance jobs of the attendance engine,
// chiefly the reconciliation sweep that re-enqueues last month for every
// active employee.
package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type jobFunc func(ctx context.Context) error

type job struct {
	name  string
	every time.Duration
	fn    jobFunc

	// kick triggers an immediate run outside the interval, used by tests
	// and operational tooling.
	kick chan struct{}
}

// Scheduler drives interval jobs on their own goroutines. Each job runs once
// at startup and then on every tick; a failing run is logged and the ticker
// keeps going.
type Scheduler struct {
	mu      sync.Mutex
	jobs    []*job
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

func New() *Scheduler {
	return &Scheduler{}
}

// Every registers fn to run on the given interval. Must be called before Start.
func (s *Scheduler) Every(interval time.Duration, name string, fn jobFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, &job{
		name:  name,
		every: interval,
		fn:    fn,
		kick:  make(chan struct{}, 1),
	})
	slog.Info("maintenance job registered", "name", name, "interval", interval)
}

// Kick schedules an immediate out-of-band run of the named job.
func (s *Scheduler) Kick(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jobs {
		if j.name == name {
			select {
			case j.kick <- struct{}{}:
			default:
			}
			return
		}
	}
}

// Start launches one goroutine per registered job.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(ctx, j)
	}
	slog.Info("maintenance scheduler started", "jobs", len(s.jobs))
}

// Stop cancels the job contexts and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	slog.Info("maintenance scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, j *job) {
	defer s.wg.Done()

	ticker := time.NewTicker(j.every)
	defer ticker.Stop()

	s.runOne(ctx, j)
	for {
		select {
		case <-ctx.Done():
			return
		case <-j.kick:
			s.runOne(ctx, j)
		case <-ticker.C:
			s.runOne(ctx, j)
		}
	}
}

func (s *Scheduler) runOne(ctx context.Context, j *job) {
	start := time.Now()
	if err := j.fn(ctx); err != nil {
		slog.Error("maintenance job failed", "name", j.name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("maintenance job completed", "name", j.name, "duration", time.Since(start))
}
