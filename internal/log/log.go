package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Level orders diagnostics by severity. The zero value is LevelDebug.
type Level int

const (
	// LevelDebug covers skipped bindings and per-file progress
	LevelDebug Level = iota
	// LevelInfo covers run summaries
	LevelInfo
	// LevelWarn covers recoverable extraction problems
	LevelWarn
	// LevelError covers files that could not be extracted
	LevelError
)

var levelNames = [...]string{"debug", "info", "warn", "error"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// MarshalText encodes the level by name
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a level name
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel parses a level name such as "debug" or "WARN"
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

var (
	mu       sync.Mutex
	output   io.Writer = os.Stderr
	minLevel Level     = LevelInfo
	prefix   string    = "[i18n-extract]"
)

// SetOutput redirects log lines. A nil writer silences them.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetLevel sets the threshold below which lines are dropped
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = level
}

// GetLevel returns the threshold
func GetLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return minLevel
}

// Debug logs at LevelDebug
func Debug(format string, args ...any) {
	log(LevelDebug, format, args...)
}

// Info logs at LevelInfo
func Info(format string, args ...any) {
	log(LevelInfo, format, args...)
}

// Warn logs at LevelWarn
func Warn(format string, args ...any) {
	log(LevelWarn, format, args...)
}

// Error logs at LevelError
func Error(format string, args ...any) {
	log(LevelError, format, args...)
}

func log(level Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if level < minLevel || output == nil {
		return
	}
	fmt.Fprintf(output, "%s %s: %s\n", prefix, strings.ToUpper(level.String()), fmt.Sprintf(format, args...))
}
