package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/amaumene/tvrarcleanup/internal/controllers"
	"github.com/amaumene/tvrarcleanup/internal/utils"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Sweeper runs one sweep
type Sweeper interface {
	Run(ctx context.Context) (*controllers.Summary, error)
}

// Scheduler runs sweeps, once or on a cron schedule, one at a time
type Scheduler struct {
	cron     *cron.Cron
	sweeper  Sweeper
	lock     *utils.RunLock
	schedule string
	logger   *logrus.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	initial sync.WaitGroup
}

// NewScheduler creates a new scheduler. A nil lock runs sweeps unguarded,
// which is only meant for preview sweeps.
func NewScheduler(sweeper Sweeper, lock *utils.RunLock, schedule string, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cron.PrintfLogger(logger)),
		)),
		sweeper:  sweeper,
		lock:     lock,
		schedule: schedule,
		logger:   logger,
	}
}

// RunOnce takes the run lock and performs a single sweep
func (s *Scheduler) RunOnce(ctx context.Context) (*controllers.Summary, error) {
	if s.lock == nil {
		return s.sweeper.Run(ctx)
	}

	if err := s.lock.Acquire(); err != nil {
		return nil, err
	}
	defer func() {
		if err := s.lock.Release(); err != nil {
			s.logger.WithError(err).Warn("Failed to release run lock")
		}
	}()

	return s.sweeper.Run(ctx)
}

// Start registers the sweep on the cron schedule and runs one immediately
func (s *Scheduler) Start(ctx context.Context) error {
	if s.schedule == "" {
		return errors.New("no schedule configured")
	}
	s.logger.WithField("schedule", s.schedule).Info("Starting scheduler")

	s.ctx, s.cancel = context.WithCancel(ctx)

	_, err := s.cron.AddFunc(s.schedule, func() {
		s.runSweep()
	})
	if err != nil {
		s.cancel()
		return fmt.Errorf("failed to add sweep job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started")

	// Run initial sweep immediately
	s.initial.Add(1)
	go func() {
		defer s.initial.Done()
		s.runSweep()
	}()

	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	if s.cancel != nil {
		s.cancel()
	}
	<-s.cron.Stop().Done()
	s.initial.Wait()
}

// runSweep executes the scheduled sweep
func (s *Scheduler) runSweep() {
	s.logger.Info("Running scheduled sweep")

	_, err := s.RunOnce(s.ctx)
	switch {
	case errors.Is(err, utils.ErrAlreadyRunning):
		s.logger.Warn("Previous sweep still running, skipping")
	case errors.Is(err, context.Canceled):
		s.logger.Debug("Sweep canceled")
	case err != nil:
		s.logger.WithError(err).Error("Sweep failed")
	}
}
