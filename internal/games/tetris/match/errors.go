package match

import "fmt"

// Code classifies a round setup failure.
type Code string

const (
	CodeUnknownDifficulty   Code = "unknown_difficulty"
	CodeUnknownMode         Code = "unknown_mode"
	CodeSessionLimit        Code = "session_limit"
	CodeDuplicateRole       Code = "duplicate_role"
	CodeMissingOpponent     Code = "missing_opponent"
	CodeInvalidSessionCount Code = "invalid_session_count"
)

// ConfigError reports a round that cannot be set up as requested.
type ConfigError struct {
	Code   Code
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return "match: " + string(e.Code)
	}
	return fmt.Sprintf("match: %s: %s", e.Code, e.Reason)
}

// Is matches any ConfigError with the same code.
func (e *ConfigError) Is(target error) bool {
	if t, ok := target.(*ConfigError); ok {
		return e.Code == t.Code
	}
	return false
}

// Sentinels for errors.Is.
var (
	ErrUnknownDifficulty   = &ConfigError{Code: CodeUnknownDifficulty}
	ErrUnknownMode         = &ConfigError{Code: CodeUnknownMode}
	ErrSessionLimit        = &ConfigError{Code: CodeSessionLimit}
	ErrDuplicateRole       = &ConfigError{Code: CodeDuplicateRole}
	ErrMissingOpponent     = &ConfigError{Code: CodeMissingOpponent}
	ErrInvalidSessionCount = &ConfigError{Code: CodeInvalidSessionCount}
)

func newConfigError(code Code, format string, args ...any) *ConfigError {
	return &ConfigError{Code: code, Reason: fmt.Sprintf(format, args...)}
}
