package controllers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/amaumene/tvrarcleanup/internal/config"
	"github.com/amaumene/tvrarcleanup/internal/models"
	"github.com/amaumene/tvrarcleanup/internal/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Extractor unpacks the archives of an episode directory into that directory.
// It returns how many archives extracted cleanly along with any failures.
type Extractor interface {
	Extract(ctx context.Context, dir string, archives []string) (int, error)
}

// Journal records sweep actions
type Journal interface {
	RecordEntry(entry *models.Entry) error
	PruneBefore(cutoff time.Time) (int, error)
}

// Summary reports what one sweep did
type Summary struct {
	RunID     string
	Actions   map[models.Action]int
	Ignored   int
	Failures  int
	Organized int
}

// ScanController runs a sweep over the scan root and then the library
type ScanController struct {
	cfg        config.Config
	ignoreList *utils.IgnoreList
	extractor  Extractor
	markers    *MarkerController
	cleanup    *CleanupController
	organizer  *OrganizeController
	journal    Journal
	logger     *logrus.Logger
}

// NewScanController creates a new scan controller. journal may be nil.
func NewScanController(cfg config.Config, ignoreList *utils.IgnoreList, extractor Extractor, journal Journal, logger *logrus.Logger) *ScanController {
	return &ScanController{
		cfg:        cfg,
		ignoreList: ignoreList,
		extractor:  extractor,
		markers:    NewMarkerController(cfg, logger),
		cleanup:    NewCleanupController(cfg, logger),
		organizer:  NewOrganizeController(cfg, logger),
		journal:    journal,
		logger:     logger,
	}
}

// Run performs one sweep: every episode directory under the scan root is
// classified and handled in name order, then the library is organized.
// Per-directory failures are logged and counted, never returned.
func (c *ScanController) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		RunID:   uuid.NewString(),
		Actions: make(map[models.Action]int),
	}
	logger := c.logger.WithField("run_id", summary.RunID)
	logger.WithFields(logrus.Fields{
		"scan_root": c.cfg.ScanRoot,
		"library":   c.cfg.LibraryRoot,
		"preview":   c.cfg.PreviewOnly,
	}).Info("Starting sweep")

	c.pruneJournal(logger)

	entries, err := os.ReadDir(c.cfg.ScanRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read scan root: %w", err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if !entry.IsDir() || !utils.HasEpisodeCode(entry.Name()) {
			continue
		}
		if ignored, term := c.ignoreList.IsIgnored(entry.Name()); ignored {
			logger.WithFields(logrus.Fields{
				"directory": entry.Name(),
				"term":      term,
			}).Debug("Directory ignored")
			summary.Ignored++
			continue
		}

		c.processDirectory(ctx, summary, filepath.Join(c.cfg.ScanRoot, entry.Name()))
	}

	moves, err := c.organizer.OrganizeLibrary(ctx)
	if err != nil {
		logger.WithError(err).Error("Library organize failed")
		summary.Failures++
	}
	for _, move := range moves {
		if move.Err != nil {
			summary.Failures++
			c.record(summary.RunID, move.File, models.ActionOrganize, move.Err, move.Destination)
			continue
		}
		summary.Organized++
		c.record(summary.RunID, move.File, models.ActionOrganize, nil, move.Destination)
	}

	logger.WithFields(logrus.Fields{
		"extracted": summary.Actions[models.ActionExtract],
		"marked":    summary.Actions[models.ActionMarkPending],
		"cleaned":   summary.Actions[models.ActionClean],
		"waiting":   summary.Actions[models.ActionWait],
		"organized": summary.Organized,
		"failures":  summary.Failures,
	}).Info("Sweep completed")

	return summary, nil
}

// processDirectory inspects, classifies and handles one episode directory
func (c *ScanController) processDirectory(ctx context.Context, summary *Summary, path string) {
	logger := c.logger.WithField("directory", path)

	dir, err := Inspect(path)
	if err != nil {
		logger.WithError(err).Error("Failed to inspect directory")
		summary.Failures++
		return
	}

	action := Classify(dir)
	logger.WithFields(logrus.Fields{
		"action":   action,
		"videos":   len(dir.Videos),
		"archives": len(dir.Archives),
		"pending":  dir.PendingWatch,
	}).Debug("Classified directory")

	var detail string
	switch action {
	case models.ActionClean:
		result, cleanErr := c.cleanup.CleanupDirectory(dir)
		err = cleanErr
		if result != nil {
			detail = result.Disposal
		}
	case models.ActionMarkPending:
		err = c.markers.Ensure(dir.Path)
	case models.ActionExtract:
		err = c.extractAndMark(ctx, dir)
	default:
		// Waiting for the user, or nothing to work with
		summary.Actions[action]++
		return
	}

	if err != nil {
		logger.WithError(err).WithField("action", action).Error("Directory action failed")
		summary.Failures++
	} else {
		summary.Actions[action]++
	}
	c.record(summary.RunID, dir.Name, action, err, detail)
}

// extractAndMark extracts the archives, then marks the directory pending when
// at least one archive came out. A directory where everything failed keeps no
// markers so the next sweep retries it.
func (c *ScanController) extractAndMark(ctx context.Context, dir *models.EpisodeDir) error {
	extracted, err := c.extractor.Extract(ctx, dir.Path, dir.Archives)
	if err != nil {
		if extracted == 0 {
			return fmt.Errorf("extraction failed: %w", err)
		}
		c.logger.WithError(err).WithFields(logrus.Fields{
			"directory": dir.Path,
			"extracted": extracted,
			"archives":  len(dir.Archives),
		}).Warn("Some archives failed to extract")
	}

	return c.markers.Ensure(dir.Path)
}

// record writes a journal entry, except in preview mode
func (c *ScanController) record(runID, name string, action models.Action, err error, detail string) {
	if c.journal == nil || c.cfg.PreviewOnly {
		return
	}

	entry := &models.Entry{
		RunID:     runID,
		Directory: name,
		Action:    action,
		Outcome:   models.OutcomeDone,
		Detail:    detail,
	}
	if err != nil {
		entry.Outcome = models.OutcomeFailed
		entry.Detail = err.Error()
	}

	if err := c.journal.RecordEntry(entry); err != nil {
		c.logger.WithError(err).Warn("Failed to record journal entry")
	}
}

func (c *ScanController) pruneJournal(logger *logrus.Entry) {
	if c.journal == nil || c.cfg.PreviewOnly || c.cfg.JournalRetentionDays <= 0 {
		return
	}

	cutoff := time.Now().AddDate(0, 0, -c.cfg.JournalRetentionDays)
	removed, err := c.journal.PruneBefore(cutoff)
	if err != nil {
		logger.WithError(err).Warn("Failed to prune journal")
		return
	}
	if removed > 0 {
		logger.WithField("removed", removed).Debug("Pruned journal entries")
	}
}
