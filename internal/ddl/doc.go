// Package ddl rewrites provider DDL into scripts that can be replayed
// against a database whether or not the object already exists.
//
// Programmable objects are deployed with the create-stub-then-alter pattern:
// a header creates a trivial placeholder when the object is missing, and the
// provider's CREATE statement is turned into an ALTER that installs the real
// definition. Tables are scripted as plain CREATE statements.
package ddl
