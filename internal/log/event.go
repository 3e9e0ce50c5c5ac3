package log

import (
	"io"
	"slices"
	"sync"

	"github.com/rs/zerolog"
)

// Event is a diagnostic produced while extracting a file
type Event struct {
	Level   Level  `json:"level"`
	File    string `json:"file,omitempty"`
	Message string `json:"message"`
}

// Reporter receives diagnostics. Implementations must be safe for concurrent use.
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a function to the Reporter interface
type ReporterFunc func(Event)

// Report calls f(e)
func (f ReporterFunc) Report(e Event) { f(e) }

// Discard drops every event
var Discard Reporter = ReporterFunc(func(Event) {})

// Collector keeps events in memory in arrival order
type Collector struct {
	mu     sync.Mutex
	events []Event
}

// Report records e
func (c *Collector) Report(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

// Events returns a copy of the recorded events
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.events)
}

// AtLeast returns the recorded events whose level is at least min
func (c *Collector) AtLeast(min Level) []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Event
	for _, e := range c.events {
		if e.Level >= min {
			out = append(out, e)
		}
	}
	return out
}

// Forward returns a Reporter that writes events through the leveled logger
func Forward() Reporter {
	return ReporterFunc(func(e Event) {
		if e.File == "" {
			log(e.Level, "%s", e.Message)
			return
		}
		log(e.Level, "%s: %s", e.File, e.Message)
	})
}

// NewJSONReporter returns a Reporter that writes one JSON object per event to w
func NewJSONReporter(w io.Writer, min Level) Reporter {
	logger := zerolog.New(w).Level(zerologLevel(min)).With().Timestamp().Logger()
	var mu sync.Mutex
	return ReporterFunc(func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		ev := logger.WithLevel(zerologLevel(e.Level))
		if e.File != "" {
			ev = ev.Str("file", e.File)
		}
		ev.Msg(e.Message)
	})
}

func zerologLevel(l Level) zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Tee fans each event out to every reporter in order
type Tee []Reporter

// Report forwards e
func (t Tee) Report(e Event) {
	for _, r := range t {
		if r != nil {
			r.Report(e)
		}
	}
}
