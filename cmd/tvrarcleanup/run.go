package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/amaumene/tvrarcleanup/internal/config"
	"github.com/amaumene/tvrarcleanup/internal/controllers"
	"github.com/amaumene/tvrarcleanup/internal/models"
	"github.com/amaumene/tvrarcleanup/internal/scheduler"
	"github.com/amaumene/tvrarcleanup/internal/services/unrar"
	"github.com/amaumene/tvrarcleanup/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func runSweep(ctx context.Context, v *viper.Viper) error {
	// 1. Load configuration
	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger
	logger := utils.NewLogger(cfg.LogLevel, nil)
	logger.WithField("config_dir", cfg.ConfigDir).Debug("Configuration loaded")

	// 3. Load ignore list
	ignoreList, err := utils.LoadIgnoreList(cfg.IgnoreFile)
	if err != nil {
		logger.WithError(err).Warn("Failed to load ignore list, continuing without it")
		ignoreList = &utils.IgnoreList{}
	} else if ignoreList.Len() > 0 {
		logger.WithField("terms", ignoreList.Len()).Info("Ignore list loaded")
	}

	// 4. Initialize services
	sweep := &journaledSweep{
		cfg:        cfg,
		ignoreList: ignoreList,
		extractor:  unrar.NewClient(cfg, logger),
		logger:     logger,
	}
	// Preview sweeps change nothing, so they neither take nor create the lock
	var lock *utils.RunLock
	if !cfg.PreviewOnly {
		lock = utils.NewRunLock(cfg.LockFile)
		logger.WithField("lock", lock.Path()).Debug("Sweeps guarded by run lock")
	}
	sched := scheduler.NewScheduler(sweep, lock, cfg.Schedule, logger)

	// 5. Single sweep unless a schedule is configured
	if cfg.Schedule == "" {
		_, err := sched.RunOnce(ctx)
		return err
	}

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	logger.Info("tvrarcleanup is running")

	// 6. Wait for shutdown signal
	<-ctx.Done()
	logger.Info("Received shutdown signal")
	sched.Stop()

	logger.Info("tvrarcleanup stopped")
	return nil
}

// journaledSweep opens the journal for the duration of each sweep only, so
// the history command can read it between scheduled runs
type journaledSweep struct {
	cfg        config.Config
	ignoreList *utils.IgnoreList
	extractor  controllers.Extractor
	logger     *logrus.Logger
}

func (s *journaledSweep) Run(ctx context.Context) (*controllers.Summary, error) {
	var journal controllers.Journal
	if !s.cfg.PreviewOnly {
		db, err := models.NewDatabase(s.cfg.JournalFile)
		if err != nil {
			s.logger.WithError(err).Warn("Journal unavailable, sweeping without it")
		} else {
			defer func() {
				if err := db.Close(); err != nil {
					s.logger.WithError(err).Warn("Failed to close journal")
				}
			}()
			journal = db
		}
	}

	scanCtrl := controllers.NewScanController(s.cfg, s.ignoreList, s.extractor, journal, s.logger)
	summary, err := scanCtrl.Run(ctx)
	if errors.Is(err, context.Canceled) {
		s.logger.Warn("Sweep interrupted")
	}
	return summary, err
}
