package labels

import "time"

// SelectorLogEvent describes one match attempt for logging.
type SelectorLogEvent struct {
	Engine   string
	Expr     string
	Label    string
	Duration time.Duration
	Err      error
}

// SelectorLogger records selector events.
type SelectorLogger interface {
	LogMatch(SelectorLogEvent)
}

// SelectorLoggerFunc adapts a function to SelectorLogger.
type SelectorLoggerFunc func(SelectorLogEvent)

// LogMatch implements SelectorLogger.
func (f SelectorLoggerFunc) LogMatch(event SelectorLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopSelectorLogger struct{}

func (noopSelectorLogger) LogMatch(SelectorLogEvent) {}
