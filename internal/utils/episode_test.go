package utils

import "testing"

func TestHasEpisodeCode(t *testing.T) {
	cases := map[string]bool{
		"Show.Name.S01E02.720p":    true,
		"show.name.s01e02.720p":    true,
		"Show.Name.s10E99":         true,
		"Show.Name.S1E02":          false,
		"Show.Name.Season.1":       false,
		"Movie.2024.1080p.BluRay":  false,
		"S05E01":                   true,
		"Show Name - S02E03 [WEB]": true,
	}

	for name, want := range cases {
		if got := HasEpisodeCode(name); got != want {
			t.Errorf("HasEpisodeCode(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestParseEpisodeFile(t *testing.T) {
	cases := []struct {
		name       string
		file       string
		wantShow   string
		wantSeason string
		wantOK     bool
	}{
		{name: "dotted", file: "Show.Name.S02E05.mkv", wantShow: "Show Name", wantSeason: "S02", wantOK: true},
		{name: "lowercase code", file: "show.name.s03e07.avi", wantShow: "show name", wantSeason: "s03", wantOK: true},
		{name: "spaced", file: "Show Name S01E01.mkv", wantShow: "Show Name", wantSeason: "S01", wantOK: true},
		{name: "dash separator keeps dash", file: "Show Name - S04E10.mkv", wantShow: "Show Name -", wantSeason: "S04", wantOK: true},
		{name: "first code wins", file: "Show.S01E01.S02E02.mkv", wantShow: "Show", wantSeason: "S01", wantOK: true},
		{name: "multibyte separator", file: "Show–S01E01.mkv", wantShow: "Show", wantSeason: "S01", wantOK: true},
		{name: "multibyte before code", file: "Café.CaféS01E01.mkv", wantShow: "Café Caf", wantSeason: "S01", wantOK: true},
		{name: "only multibyte before code", file: "éS01E01.mkv", wantOK: false},
		{name: "code at start", file: "S01E01.mkv", wantOK: false},
		{name: "no code", file: "Some.Movie.2019.mkv", wantOK: false},
		{name: "only separator before code", file: ".S01E01.mkv", wantOK: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			show, season, ok := ParseEpisodeFile(tc.file)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if show != tc.wantShow {
				t.Errorf("show = %q, want %q", show, tc.wantShow)
			}
			if season != tc.wantSeason {
				t.Errorf("season = %q, want %q", season, tc.wantSeason)
			}
		})
	}
}

func TestFileKinds(t *testing.T) {
	if !IsVideoFile("/tmp/a.mkv") || !IsVideoFile("a.AVI") {
		t.Error("expected .mkv and .AVI to be video files")
	}
	if IsVideoFile("a.mp4") || IsVideoFile("a.rar") {
		t.Error("expected .mp4 and .rar not to be video files")
	}
	if !IsArchiveFile("a.part01.rar") || !IsArchiveFile("A.RAR") {
		t.Error("expected .rar files to be archives")
	}
	if IsArchiveFile("a.r00") || IsArchiveFile("a.zip") {
		t.Error("expected .r00 and .zip not to be archives")
	}
}
