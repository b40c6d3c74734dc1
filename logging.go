package labels

import "log"

// ScopeLogEvent describes a noteworthy scope transition for logging.
type ScopeLogEvent struct {
	Message string
	Scope   string
	Warning bool
}

// ScopeLogger records scope events.
type ScopeLogger interface {
	LogScopeEvent(ScopeLogEvent)
}

// ScopeLoggerFunc adapts a function to ScopeLogger.
type ScopeLoggerFunc func(ScopeLogEvent)

// LogScopeEvent implements ScopeLogger.
func (f ScopeLoggerFunc) LogScopeEvent(event ScopeLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopScopeLogger struct{}

func (noopScopeLogger) LogScopeEvent(ScopeLogEvent) {}

// stdScopeLogger is the default sink. Fallback-to-global warnings degrade the
// reproducibility guarantee, so they must be visible without any setup.
type stdScopeLogger struct{}

func (stdScopeLogger) LogScopeEvent(event ScopeLogEvent) {
	if !event.Warning {
		return
	}
	if event.Scope != "" {
		log.Printf("labels: warning: %s (scope=%s)", event.Message, event.Scope)
		return
	}
	log.Printf("labels: warning: %s", event.Message)
}

// WithLogger attaches a scope logger to the Labeler. Passing nil silences
// scope events entirely.
func WithLogger(logger ScopeLogger) LabelerOption {
	return func(cfg *labelerConfig) {
		if logger == nil {
			cfg.logger = noopScopeLogger{}
			return
		}
		cfg.logger = logger
	}
}
