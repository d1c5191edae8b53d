package controllers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/amaumene/tvrarcleanup/internal/models"
	"github.com/amaumene/tvrarcleanup/internal/utils"
)

// Inspect gathers the video files, archives and markers directly inside path
func Inspect(path string) (*models.EpisodeDir, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	dir := &models.EpisodeDir{
		Path: path,
		Name: filepath.Base(path),
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		full := filepath.Join(path, name)

		switch {
		case strings.EqualFold(name, models.ExtractedMarker):
			dir.Extracted = true
		case strings.EqualFold(name, models.DeleteWhenWatchedMarker):
			dir.PendingWatch = true
		case utils.IsVideoFile(name):
			dir.Videos = append(dir.Videos, full)
		case utils.IsArchiveFile(name):
			dir.Archives = append(dir.Archives, full)
		}
	}

	return dir, nil
}

// Classify decides what a sweep should do with an episode directory.
// Combinations not listed leave the directory untouched.
func Classify(dir *models.EpisodeDir) models.Action {
	archives := dir.HasArchives()
	videos := dir.HasVideos()

	switch {
	// Archives and videos, marker deleted: extracted and watched
	case archives && videos && !dir.PendingWatch:
		return models.ActionClean
	// Videos only, marker deleted after we extracted it
	case !archives && videos && !dir.PendingWatch && dir.Extracted:
		return models.ActionClean
	// Videos only, never seen before
	case !archives && videos && !dir.PendingWatch:
		return models.ActionMarkPending
	case !archives && videos:
		return models.ActionWait
	// Fresh download
	case archives && !videos:
		return models.ActionExtract
	case !archives && !videos:
		return models.ActionNone
	default:
		return models.ActionWait
	}
}
