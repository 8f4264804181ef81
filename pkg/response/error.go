package response

import "fmt"

// LeakTKError expands a normal error to provide additional meta data
type LeakTKError struct {
	Fatal   bool      `json:"fatal"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	err     error
}

// NewError builds a LeakTKError that wraps err
func NewError(fatal bool, code ErrorCode, err error) *LeakTKError {
	return &LeakTKError{
		Fatal:   fatal,
		Code:    code,
		Message: err.Error(),
		err:     err,
	}
}

// Error is defined to implement the error interface
func (e *LeakTKError) Error() string {
	return e.String()
}

// Unwrap gives errors.Is and errors.As access to the cause
func (e *LeakTKError) Unwrap() error {
	return e.err
}

// String provides a string representation of the error
func (e *LeakTKError) String() string {
	fatal := ""

	if e.Fatal {
		fatal = "fatal "
	}

	return fmt.Sprintf("%serror occurred, code %d (%s): %s", fatal, e.Code, e.Code, e.Message)
}

// ErrorCode defines the set of error codes that can be set on a LeakTKError
type ErrorCode int

const (
	// NoErrorCode means the error code hasn't been set
	NoErrorCode ErrorCode = iota
	// ReadError means a candidate file exists but couldn't be read
	ReadError
	// ConfigError means the config, rules or output format are invalid
	ConfigError
	// GitError means the staged files couldn't be listed
	GitError
)

var errorNames = [...]string{"NoErrorCode", "ReadError", "ConfigError", "GitError"}

// String returns the name of the code
func (c ErrorCode) String() string {
	if c < 0 || int(c) >= len(errorNames) {
		return "UnknownError"
	}

	return errorNames[c]
}
