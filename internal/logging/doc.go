// Package logging provides concrete implementations of the tsqlx.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes progress lines to a writer (stdout by default), styling prefixes on terminals
//   - JSONLogger: Writes one zerolog JSON object per message
//   - BufferLogger: Keeps lines in memory (useful for testing)
//   - NullLogger: Discards all messages
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
