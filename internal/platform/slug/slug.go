package slug

import (
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// FileName maps an arbitrary key onto a single safe path element.
func FileName(key string) string {
	s := unsafeChars.ReplaceAllString(strings.TrimSpace(key), "_")
	s = strings.Trim(s, ".")
	if s == "" {
		return "untitled"
	}
	return s
}
