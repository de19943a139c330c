package util

import (
	"errors"
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ErrUnsafeFileName indicates a file name that cannot be made safe for
// on-disk storage.
var ErrUnsafeFileName = errors.New("invalid file name")

// SanitizeFileName normalizes an uploaded file name for on-disk storage.
// Whitespace runs collapse to underscores; path separators are replaced;
// traversal patterns are rejected outright.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrUnsafeFileName
	}
	s := strings.TrimSpace(name)
	s = whitespaceRun.ReplaceAllString(s, "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", ErrUnsafeFileName
	}
	return s, nil
}
