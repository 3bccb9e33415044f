// Package model defines the domain types and value objects for the
// uenv-venv CLI.
//
// This package contains pure data structures with no external dependencies.
// The central entity (Venv) is assembled over the course of a single run
// and exists only for that run; the tool keeps no state between
// invocations beyond the venv directory it creates.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries an exit code and an optional remediation hint
// for proper OS process exit handling.
package model
