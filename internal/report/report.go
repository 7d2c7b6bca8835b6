// Package report applies the site's reporting severities to build problems
// such as broken links or untruncated blog posts.
package report

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jigarkkarangiya/docs/pkg/logging"
)

// Severity says what to do when a problem is found.
type Severity string

const (
	Ignore Severity = "ignore"
	Log    Severity = "log"
	Warn   Severity = "warn"
	Throw  Severity = "throw"
)

// ErrThrown marks problems reported with the throw severity.
var ErrThrown = errors.New("build problem")

// ParseSeverity validates a severity from config.
func ParseSeverity(s string) (Severity, error) {
	switch sev := Severity(strings.ToLower(strings.TrimSpace(s))); sev {
	case Ignore, Log, Warn, Throw:
		return sev, nil
	default:
		return "", fmt.Errorf("unknown reporting severity %q", s)
	}
}

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	_, err := ParseSeverity(string(s))
	return err == nil
}

// Reporter logs problems and counts warnings. It is safe for concurrent use.
type Reporter struct {
	logger   logging.Logger
	mu       sync.Mutex
	warnings int
	thrown   []string
}

// NewReporter creates a reporter writing to logger.
func NewReporter(logger logging.Logger) *Reporter {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Reporter{logger: logger}
}

// Report handles one problem. It returns an error wrapping ErrThrown when
// sev is Throw and nil otherwise.
func (r *Reporter) Report(sev Severity, msg string, fields ...logging.Field) error {
	switch sev {
	case Ignore:
		return nil
	case Log:
		r.logger.Info(msg, fields...)
		return nil
	case Throw:
		r.mu.Lock()
		r.thrown = append(r.thrown, msg)
		r.mu.Unlock()
		r.logger.Error(msg, fields...)
		return fmt.Errorf("%w: %s", ErrThrown, msg)
	default:
		r.mu.Lock()
		r.warnings++
		r.mu.Unlock()
		r.logger.Warn(msg, fields...)
		return nil
	}
}

// Warnings returns how many warn-level problems were reported.
func (r *Reporter) Warnings() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.warnings
}

// Thrown returns the messages reported with Throw.
func (r *Reporter) Thrown() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.thrown))
	copy(out, r.thrown)
	return out
}
