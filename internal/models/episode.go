package models

// Marker file names written into episode directories
const (
	ExtractedMarker         = "extracted.towatch"
	DeleteWhenWatchedMarker = "DeleteWhenWatched.towatch"
)

// EpisodeDir is the filesystem evidence gathered for one episode directory
type EpisodeDir struct {
	Path string
	Name string

	Videos   []string // .avi / .mkv files, full paths
	Archives []string // .rar files, full paths

	Extracted    bool // extracted.towatch present
	PendingWatch bool // DeleteWhenWatched.towatch present
}

// HasVideos reports whether any video file was found
func (d *EpisodeDir) HasVideos() bool {
	return len(d.Videos) > 0
}

// HasArchives reports whether any archive file was found
func (d *EpisodeDir) HasArchives() bool {
	return len(d.Archives) > 0
}
