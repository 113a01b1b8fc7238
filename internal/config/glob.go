package config

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// matchAny reports whether rel (slash-separated, relative to the config
// root) matches one of patterns. A pattern without a slash is also tried
// against the base name; `**` spans any number of directories.
func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if matchGlob(p, rel) {
			return true
		}
	}
	return false
}

func matchGlob(pattern, rel string) bool {
	pattern = strings.TrimPrefix(pattern, "./")
	if !strings.Contains(pattern, "/") {
		if ok, _ := doublestar.Match(pattern, path.Base(rel)); ok {
			return true
		}
	}
	ok, _ := doublestar.Match(pattern, rel)
	return ok
}

func validatePattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return fmt.Errorf("empty files pattern")
	}
	if !doublestar.ValidatePattern(strings.TrimPrefix(pattern, "./")) {
		return fmt.Errorf("bad files pattern %q", pattern)
	}
	return nil
}
