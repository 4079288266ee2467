package tsqlx

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Refresh completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (unknown flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or arguments
	ExitConnectionError = 11 // Failed to connect to the server or database
	ExitIOError         = 12 // Directory or file create/write/delete failed
)

const (
	// BatchSeparator delimits independently executed groups of statements.
	BatchSeparator = "go"

	// ExcludePrefix marks objects whose scripts are removed instead of written.
	ExcludePrefix = "_"

	// ScriptExtension is the extension of every synchronized script file.
	ScriptExtension = ".sql"

	// CreateScriptsDir is the directory under <scriptpath>/<database> holding the object folders.
	CreateScriptsDir = "Create Scripts"

	// DefaultAppName is reported to the server as the client application name.
	DefaultAppName = "tsqlx"

	// DefaultConnectTimeout bounds the initial dial and login.
	DefaultConnectTimeout = 30 * time.Second

	// DefaultPort is the SQL Server default TCP port.
	DefaultPort = 1433
)
