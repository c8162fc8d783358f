// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the site's background maintenance jobs on cron
// schedules: refreshing the content cache and pruning the event log.
package scheduler

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/mirror-creative/internal/model"
)

// DefaultTimeout bounds a job run when the job sets no Timeout.
const DefaultTimeout = 5 * time.Minute

// Job is a named unit of scheduled work.
type Job struct {
	Name        string
	Description string
	Schedule    string
	Timeout     time.Duration
	Run         func(ctx context.Context) error
}

// JobInfo is the public view of a registered job. LastError stays out of
// the JSON form because job status is served on a public endpoint.
type JobInfo struct {
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Schedule     string        `json:"schedule"`
	Runs         int           `json:"runs"`
	Failures     int           `json:"failures"`
	LastRun      time.Time     `json:"lastRun,omitzero"`
	LastDuration time.Duration `json:"lastDurationNs,omitempty"`
	NextRun      time.Time     `json:"nextRun,omitzero"`
	LastError    string        `json:"-"`
}

type registeredJob struct {
	job      Job
	entryID  cron.EntryID
	runs     int
	failures int
	lastRun  time.Time
	lastDur  time.Duration
	lastErr  error
}

// Scheduler runs registered jobs. Jobs never overlap with themselves.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.RWMutex
	jobs map[string]*registeredJob
}

// New creates a new scheduler instance.
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{logger}),
			cron.SkipIfStillRunning(cronLogger{logger}),
		)),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		jobs:   make(map[string]*registeredJob),
	}
}

// Add registers a job. The schedule uses the standard five-field cron syntax.
func (s *Scheduler) Add(job Job) error {
	if job.Name == "" || job.Run == nil {
		return errors.New("job needs a name and a run function")
	}
	if job.Timeout <= 0 {
		job.Timeout = DefaultTimeout
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.Name]; exists {
		return fmt.Errorf("job %q already registered", job.Name)
	}

	rj := &registeredJob{job: job}
	id, err := s.cron.AddFunc(job.Schedule, func() { s.run(rj) })
	if err != nil {
		return fmt.Errorf("scheduling %q with %q: %w", job.Name, job.Schedule, err)
	}
	rj.entryID = id
	s.jobs[job.Name] = rj
	return nil
}

// RunNow runs the named job immediately on the calling goroutine.
func (s *Scheduler) RunNow(name string) error {
	s.mu.RLock()
	rj, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("job %q not found", name)
	}
	return s.run(rj)
}

// run executes one run of rj under its timeout and records the outcome.
func (s *Scheduler) run(rj *registeredJob) error {
	ctx, cancel := context.WithTimeout(s.ctx, rj.job.Timeout)
	defer cancel()

	start := time.Now()
	err := rj.job.Run(ctx)
	if err == nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("timed out after %s", rj.job.Timeout)
	}
	elapsed := time.Since(start)

	s.mu.Lock()
	rj.runs++
	rj.lastRun, rj.lastDur, rj.lastErr = start, elapsed, err
	if err != nil {
		rj.failures++
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("scheduled job failed", "job", rj.job.Name, "error", err,
			"duration", elapsed, "category", model.EventCategorySystem)
		return err
	}
	s.logger.Debug("scheduled job finished", "job", rj.job.Name, "duration", elapsed)
	return nil
}

// Jobs lists registered jobs sorted by name.
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]JobInfo, 0, len(s.jobs))
	for _, rj := range s.jobs {
		info := JobInfo{
			Name:         rj.job.Name,
			Description:  rj.job.Description,
			Schedule:     rj.job.Schedule,
			Runs:         rj.runs,
			Failures:     rj.failures,
			LastRun:      rj.lastRun,
			LastDuration: rj.lastDur,
			NextRun:      s.cron.Entry(rj.entryID).Next,
		}
		if rj.lastErr != nil {
			info.LastError = rj.lastErr.Error()
		}
		infos = append(infos, info)
	}
	slices.SortFunc(infos, func(a, b JobInfo) int { return cmp.Compare(a.Name, b.Name) })
	return infos
}

// Start begins running jobs on their schedules.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// cronLogger adapts slog to cron's logger interface.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
