package controllers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/amaumene/tvrarcleanup/internal/config"
	"github.com/amaumene/tvrarcleanup/internal/utils"
	"github.com/sirupsen/logrus"
)

// FileMove is the outcome of organizing one library file
type FileMove struct {
	File        string // file name in the library root
	Destination string // target directory
	Err         error
}

// OrganizeController sorts loose library videos into show/season folders
type OrganizeController struct {
	libraryRoot string
	preview     bool
	logger      *logrus.Logger
}

// NewOrganizeController creates a new organize controller
func NewOrganizeController(cfg config.Config, logger *logrus.Logger) *OrganizeController {
	return &OrganizeController{
		libraryRoot: cfg.LibraryRoot,
		preview:     cfg.PreviewOnly,
		logger:      logger,
	}
}

// OrganizeLibrary moves every video at the top of the library whose name
// carries an episode code into <library>/<show>/<season>/. A failed file is
// logged and skipped; only an unreadable library root is returned as an error.
func (c *OrganizeController) OrganizeLibrary(ctx context.Context) ([]FileMove, error) {
	entries, err := os.ReadDir(c.libraryRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read library: %w", err)
	}

	var moves []FileMove
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return moves, err
		}
		if entry.IsDir() || !utils.IsVideoFile(entry.Name()) {
			continue
		}

		show, season, ok := utils.ParseEpisodeFile(entry.Name())
		if !ok {
			if utils.HasEpisodeCode(entry.Name()) {
				c.logger.WithField("file", entry.Name()).Warn("No show name before episode code, leaving in place")
			}
			continue
		}

		move := FileMove{
			File:        entry.Name(),
			Destination: filepath.Join(c.libraryRoot, show, season),
		}
		move.Err = c.moveIntoPlace(move)
		if move.Err != nil {
			c.logger.WithError(move.Err).WithField("file", move.File).Error("Failed to organize file")
		}
		moves = append(moves, move)
	}

	return moves, nil
}

func (c *OrganizeController) moveIntoPlace(move FileMove) error {
	source := filepath.Join(c.libraryRoot, move.File)
	c.logger.WithFields(logrus.Fields{
		"file":        source,
		"destination": move.Destination,
	}).Info("Moving")

	if c.preview {
		return nil
	}

	if err := os.MkdirAll(move.Destination, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", move.Destination, err)
	}
	if err := utils.MoveFile(source, filepath.Join(move.Destination, move.File)); err != nil {
		return fmt.Errorf("failed to move %s: %w", move.File, err)
	}
	return nil
}
