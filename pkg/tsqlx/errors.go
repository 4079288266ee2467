package tsqlx

import (
	"errors"
	"io/fs"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := refresher.Refresh(ctx, config)
//	if errors.Is(err, tsqlx.ErrDirectoryNotFound) {
//	    // Handle a missing script path
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDirectoryNotFound indicates the script path does not point to an existing directory.
	ErrDirectoryNotFound = errors.New("directory not found")

	// ErrMissingArgument indicates a required argument (server, database) is blank.
	ErrMissingArgument = errors.New("missing argument")

	// ErrUnsupportedAuthMethod indicates the requested authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrDatabaseNotFound indicates the server has no database with the requested name.
	ErrDatabaseNotFound = errors.New("database not found")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig),
		errors.Is(err, ErrDirectoryNotFound),
		errors.Is(err, ErrMissingArgument),
		errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed),
		errors.Is(err, ErrDatabaseNotFound):
		return ExitConnectionError
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return ExitIOError
	}

	errStr := err.Error()

	// cobra reports flag and argument misuse as plain errors
	for _, prefix := range []string{"unknown flag", "unknown shorthand flag", "unknown command", "invalid argument", "accepts ", "flag needs an argument"} {
		if strings.HasPrefix(errStr, prefix) {
			return ExitUsageError
		}
	}

	// Driver errors that escaped classification
	if strings.Contains(errStr, "unable to open tcp connection") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "login error") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
