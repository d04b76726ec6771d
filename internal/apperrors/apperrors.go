// Package apperrors provides categorized CLI errors with remediation hints.
// Categories map onto exit codes and help the formatter tell a usage mistake
// from a broken input file or an internal failure.
package apperrors

// ErrorCategory classifies a CLI error for display and exit-code purposes.
type ErrorCategory int

const (
	// Argument covers bad command-line usage.
	Argument ErrorCategory = iota
	// Configuration covers unloadable or invalid configuration.
	Configuration
	// Ingestion covers unsupported formats and unparseable input files.
	Ingestion
	// Runtime covers everything that fails after ingestion succeeded.
	Runtime
)

// String returns the display heading for the category.
func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	case Ingestion:
		return "Ingestion Error"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// CLIError is a user-facing error with a category and remediation steps.
type CLIError struct {
	Category    ErrorCategory
	Message     string
	Remediation []string
	Err         error
}

func (e *CLIError) Error() string { return e.Message }

func (e *CLIError) Unwrap() error { return e.Err }

// NewArgumentError builds an Argument-category error.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Remediation: remediation}
}

// NewConfigError builds a Configuration-category error.
func NewConfigError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Configuration, Message: message, Remediation: remediation}
}

// NewIngestionError builds an Ingestion-category error.
func NewIngestionError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Ingestion, Message: message, Remediation: remediation}
}

// NewRuntimeError builds a Runtime-category error.
func NewRuntimeError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Runtime, Message: message, Remediation: remediation}
}

// Wrap attaches a category and remediation to an existing error.
// A nil error stays nil.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     err.Error(),
		Remediation: remediation,
		Err:         err,
	}
}
