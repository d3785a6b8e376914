package statement

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var yearSegment = regexp.MustCompile(`^\d{4}$`)

// YearError reports a document path that does not name exactly one
// statement year.
type YearError struct {
	Path  string
	Found []string
}

func (e *YearError) Error() string {
	return fmt.Sprintf("%d possible statement years found in path %s, must be exactly 1", len(e.Found), e.Path)
}

// ParseYear returns the statement year of the document at path: the one
// four-digit directory or file name segment of its absolute path, with
// symlinks followed when the path exists.
func ParseYear(path string) (int, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, fmt.Errorf("resolving %s: %w", path, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	var found []string
	for _, seg := range strings.Split(filepath.ToSlash(abs), "/") {
		if yearSegment.MatchString(seg) {
			found = append(found, seg)
		}
	}
	if len(found) != 1 {
		return 0, &YearError{Path: abs, Found: found}
	}

	year, err := strconv.Atoi(found[0])
	if err != nil {
		return 0, fmt.Errorf("parsing year %q: %w", found[0], err)
	}
	return year, nil
}
