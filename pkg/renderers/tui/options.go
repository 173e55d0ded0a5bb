package tui

// Option configures a prompt session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithLabels sets the prompt message per field key. Fields without an entry
// fall back to a label derived from the key.
func WithLabels(labels map[string]string) Option {
	return func(s *Session) {
		s.labels = labels
	}
}

// WithHelp sets the help text per field key.
func WithHelp(help map[string]string) Option {
	return func(s *Session) {
		s.help = help
	}
}

// WithMultiline marks string fields that should prompt with a multi-line
// editor instead of a single-line input.
func WithMultiline(keys ...string) Option {
	return func(s *Session) {
		if s.multiline == nil {
			s.multiline = make(map[string]bool, len(keys))
		}
		for _, key := range keys {
			s.multiline[key] = true
		}
	}
}

// WithMaxAttempts caps the number of correction rounds after the initial pass.
// Zero means a single validation with no corrections.
func WithMaxAttempts(attempts int) Option {
	return func(s *Session) {
		if attempts >= 0 {
			s.maxAttempts = attempts
		}
	}
}
