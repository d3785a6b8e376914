// Package logging builds the diagnostic logger written to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// EnvVar overrides the configured level when the flag is not given.
const EnvVar = "LOGLEVEL"

// DefaultLevel applies when nothing else sets a level.
const DefaultLevel = "warn"

// New returns a logger writing to w at level.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: "statements2csv",
	}), nil
}

// ParseLevel accepts charmbracelet level names plus "warning", in any case.
func ParseLevel(level string) (log.Level, error) {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		name = "warn"
	}
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return 0, fmt.Errorf("parsing log level %q: %w", level, err)
	}
	return lvl, nil
}

// Level picks the first non-empty of flag, $LOGLEVEL and configured, falling
// back to DefaultLevel.
func Level(flag, configured string) string {
	for _, l := range []string{flag, os.Getenv(EnvVar), configured} {
		if strings.TrimSpace(l) != "" {
			return l
		}
	}
	return DefaultLevel
}
