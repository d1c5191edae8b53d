package utils

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// episodeCodeRegex matches an SxxExx episode code anywhere in a name
var episodeCodeRegex = regexp.MustCompile(`[Ss][0-9][0-9][Ee][0-9][0-9]`)

var videoExtensions = map[string]bool{
	".avi": true,
	".mkv": true,
}

var archiveExtensions = map[string]bool{
	".rar": true,
}

// HasEpisodeCode reports whether name contains an SxxExx episode code
func HasEpisodeCode(name string) bool {
	return episodeCodeRegex.MatchString(name)
}

// ParseEpisodeFile derives the show and season folder names from a file name.
//
// The show is the text before the first episode code, minus the separator
// right before the code, with every period turned into a space. The season is
// the first three characters of the code as written ("S03" for "S03E07").
// ok is false when the name has no code or nothing usable precedes it.
func ParseEpisodeFile(name string) (show, season string, ok bool) {
	loc := episodeCodeRegex.FindStringIndex(name)
	if loc == nil || loc[0] == 0 {
		return "", "", false
	}

	// Drop the whole character before the code, not just its last byte
	_, size := utf8.DecodeLastRuneInString(name[:loc[0]])
	show = strings.ReplaceAll(name[:loc[0]-size], ".", " ")
	if strings.TrimSpace(show) == "" {
		return "", "", false
	}
	season = name[loc[0] : loc[0]+3]
	return show, season, true
}

// IsVideoFile checks the extension against the supported video types
func IsVideoFile(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsArchiveFile checks the extension against the supported archive types
func IsArchiveFile(path string) bool {
	return archiveExtensions[strings.ToLower(filepath.Ext(path))]
}
