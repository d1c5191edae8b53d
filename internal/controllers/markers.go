package controllers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/amaumene/tvrarcleanup/internal/config"
	"github.com/amaumene/tvrarcleanup/internal/models"
	"github.com/sirupsen/logrus"
)

// MarkerController creates the marker files that track an episode directory
type MarkerController struct {
	preview bool
	logger  *logrus.Logger
}

// NewMarkerController creates a new marker controller
func NewMarkerController(cfg config.Config, logger *logrus.Logger) *MarkerController {
	return &MarkerController{
		preview: cfg.PreviewOnly,
		logger:  logger,
	}
}

// Ensure creates whichever marker is missing in dir and hides the extracted
// marker. Calling it again on a marked directory changes nothing.
func (c *MarkerController) Ensure(dir string) error {
	c.logger.WithField("directory", dir).Info("Ready to watch")
	if c.preview {
		return nil
	}

	deleteWhenWatched := filepath.Join(dir, models.DeleteWhenWatchedMarker)
	extracted := filepath.Join(dir, models.ExtractedMarker)

	if err := touch(deleteWhenWatched); err != nil {
		return fmt.Errorf("failed to create %s: %w", models.DeleteWhenWatchedMarker, err)
	}
	if err := touch(extracted); err != nil {
		return fmt.Errorf("failed to create %s: %w", models.ExtractedMarker, err)
	}
	if err := hideFile(extracted); err != nil {
		return fmt.Errorf("failed to hide %s: %w", models.ExtractedMarker, err)
	}

	return nil
}

// touch creates an empty file, leaving an existing one alone
func touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return err
	}
	return f.Close()
}
