package util

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^\w.\-]+`)

// SanitizeFileName strips any path components and restricts the name to a
// safe character set. The result is suitable for use as an on-disk basename.
func SanitizeFileName(name string) (string, error) {
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "\\", "/")
	base := filepath.Base(s)
	if base == "" || base == "." || base == ".." || base == "/" {
		return "", errors.New("invalid file name")
	}
	base = unsafeChars.ReplaceAllString(base, "_")
	if strings.Trim(base, "._") == "" {
		return "", errors.New("invalid file name")
	}
	return base, nil
}
