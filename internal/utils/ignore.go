package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// IgnoreList holds terms as written; an episode directory whose name
// contains any of them is left alone by every sweep
type IgnoreList struct {
	terms []string
}

// LoadIgnoreList reads one term per line from path. Blank lines and lines
// starting with # are skipped. A missing file yields an empty list.
func LoadIgnoreList(path string) (*IgnoreList, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &IgnoreList{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open ignore list: %w", err)
	}
	defer file.Close()

	list := &IgnoreList{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		list.terms = append(list.terms, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ignore list: %w", err)
	}

	return list, nil
}

// IsIgnored reports whether dirName contains an ignore term, case-insensitively,
// and which term matched first. A nil list ignores nothing.
func (l *IgnoreList) IsIgnored(dirName string) (bool, string) {
	if l == nil {
		return false, ""
	}

	lowered := strings.ToLower(dirName)
	for _, term := range l.terms {
		if strings.Contains(lowered, strings.ToLower(term)) {
			return true, term
		}
	}
	return false, ""
}

// Len returns the number of loaded terms
func (l *IgnoreList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.terms)
}
