// Package scripter extracts user schema objects from a SQL Server database
// and renders each one as a DDL script.
//
// Stored procedures, views and functions come from sys.sql_modules with the
// session settings and permissions around them. Table scripts are rendered
// from the catalog views: columns, defaults, keys, check and foreign key
// constraints, indexes, triggers and permissions.
//
// A Scripter owns one pinned connection; Opener creates it from a
// ConnectionConfig and Close releases every resource it holds.
package scripter
