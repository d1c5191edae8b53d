package controllers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/amaumene/tvrarcleanup/internal/config"
	"github.com/amaumene/tvrarcleanup/internal/models"
	"github.com/amaumene/tvrarcleanup/internal/utils"
	"github.com/sirupsen/logrus"
)

// CleanupResult describes what happened to a cleaned directory
type CleanupResult struct {
	Moved      int    // videos moved into the library
	Duplicates int    // videos deleted because the library already had them
	Disposal   string // where the directory went, empty when deleted
}

// CleanupController handles cleanup of watched episode directories
type CleanupController struct {
	libraryRoot    string
	deletionGround string
	preview        bool
	logger         *logrus.Logger
}

// NewCleanupController creates a new cleanup controller
func NewCleanupController(cfg config.Config, logger *logrus.Logger) *CleanupController {
	return &CleanupController{
		libraryRoot:    cfg.LibraryRoot,
		deletionGround: cfg.DeletionGround,
		preview:        cfg.PreviewOnly,
		logger:         logger,
	}
}

// CleanupDirectory moves the directory's videos into the library root, then
// quarantines or deletes the directory. The first failure stops the cleanup
// of this directory and is returned; the directory stays as it was left.
func (c *CleanupController) CleanupDirectory(dir *models.EpisodeDir) (*CleanupResult, error) {
	c.logger.WithField("directory", dir.Path).Info("Cleaning")
	result := &CleanupResult{}
	if c.preview {
		return result, nil
	}

	for _, video := range dir.Videos {
		duplicate, err := c.moveVideo(video)
		if err != nil {
			return result, err
		}
		if duplicate {
			result.Duplicates++
		} else {
			result.Moved++
		}
	}

	disposal, err := c.disposeDirectory(dir)
	if err != nil {
		return result, err
	}
	result.Disposal = disposal

	return result, nil
}

// moveVideo moves one video to the library root. A file of the same name
// already in the library wins and the source is deleted instead.
func (c *CleanupController) moveVideo(video string) (bool, error) {
	destPath := filepath.Join(c.libraryRoot, filepath.Base(video))

	exists, err := utils.Exists(destPath)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", destPath, err)
	}

	if exists {
		c.logger.WithFields(logrus.Fields{
			"file":        video,
			"destination": destPath,
		}).Info("Already in library, deleting duplicate")
		if err := os.Remove(video); err != nil {
			return true, fmt.Errorf("failed to delete duplicate %s: %w", video, err)
		}
		return true, nil
	}

	if err := utils.MoveFile(video, destPath); err != nil {
		return false, fmt.Errorf("failed to move %s to library: %w", video, err)
	}
	return false, nil
}

// disposeDirectory moves dir under the deletion ground when one is set and
// has no directory of that name yet, otherwise deletes it recursively
func (c *CleanupController) disposeDirectory(dir *models.EpisodeDir) (string, error) {
	if c.deletionGround != "" {
		target := filepath.Join(c.deletionGround, dir.Name)
		exists, err := utils.Exists(target)
		if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", target, err)
		}
		if !exists {
			if err := utils.MoveDir(dir.Path, target); err != nil {
				return "", fmt.Errorf("failed to move %s to deletion ground: %w", dir.Path, err)
			}
			return target, nil
		}
		c.logger.WithField("target", target).Debug("Deletion ground already holds this directory, deleting instead")
	}

	if err := os.RemoveAll(dir.Path); err != nil {
		return "", fmt.Errorf("failed to delete %s: %w", dir.Path, err)
	}
	return "", nil
}
