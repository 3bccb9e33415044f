// Package model defines the domain types for the uenv-venv CLI.
//
// All entities in this package are transient: they describe one run of the
// tool (which interpreter was layered, which creation tool was used, where
// the .pth file ended up) and are rebuilt from scratch on every invocation.
package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Tool identifies the venv-creation strategy that was (or will be) used.
// The selection happens once per run:
//
//	uv on PATH (or forced by configuration) → ToolUv
//	otherwise                               → ToolVenv
type Tool string

const (
	// ToolUv creates the venv via the external uv binary
	// (uv venv ... --seed) and upgrades packages via uv pip install.
	ToolUv Tool = "uv"

	// ToolVenv creates the venv via the base interpreter's standard-library
	// venv module and upgrades packages via the venv's own pip.
	ToolVenv Tool = "venv"
)

// String returns the string representation of Tool.
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in CLI commands and logging.
func (t Tool) String() string {
	return string(t)
}

// IsValid checks whether the Tool value is one of the predefined
// strategies.
func (t Tool) IsValid() bool {
	switch t {
	case ToolUv, ToolVenv:
		return true
	default:
		return false
	}
}

// ParseTool converts a string to a Tool.
// Returns an error if the string does not match any valid strategy.
func ParseTool(s string) (Tool, error) {
	tool := Tool(strings.ToLower(s))
	if !tool.IsValid() {
		return "", fmt.Errorf("invalid tool: %q (valid: uv, venv)", s)
	}
	return tool, nil
}

// Venv describes a virtual environment layered on top of a uenv view.
// This is the primary aggregate entity in the domain: the create command
// fills it in step by step and hands it to the output layer at the end.
type Venv struct {
	// Path is the absolute path of the venv directory.
	Path string `json:"path"`

	// Python is the base interpreter the venv was created from.
	// Either the --python flag value verbatim, or the active view's
	// interpreter.
	Python string `json:"python"`

	// PythonVersion is the interpreter's MAJOR.MINOR version
	// ("3.11"), reported by the interpreter itself.
	PythonVersion string `json:"pythonVersion"`

	// Tool is the creation strategy that was used.
	Tool Tool `json:"tool"`

	// Mount is the filesystem mount point of the uenv image.
	// Empty when --python bypassed view detection.
	Mount string `json:"mount,omitempty"`

	// Uenv is the uenv image name (e.g. "prgenv-gnu/24.7:v1").
	// Empty when --python bypassed view detection.
	Uenv string `json:"uenv,omitempty"`

	// View is the active view name within the uenv image.
	// Empty when --python bypassed view detection.
	View string `json:"view,omitempty"`

	// ViewSitePackages is the view's package directory, the single line
	// written into the .pth file.
	ViewSitePackages string `json:"viewSitePackages"`

	// VenvSitePackages is the venv's own package directory, as reported
	// by the venv interpreter's sysconfig.
	VenvSitePackages string `json:"venvSitePackages"`

	// PthFile is the absolute path of the written uenv.pth file.
	PthFile string `json:"pthFile"`

	// CreatedAt is the timestamp when the venv was created.
	CreatedAt time.Time `json:"createdAt"`
}

// ActivateScript returns the path of the venv's shell activation script,
// used for the post-create hint ("source <venv>/bin/activate").
func (v *Venv) ActivateScript() string {
	return filepath.Join(v.Path, "bin", "activate")
}

// ExitCode defines standard CLI exit codes, one per failure class.
// These codes allow scripts and CI systems to programmatically determine
// the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred
	// (including flag/usage errors).
	ExitGeneralError ExitCode = 1

	// ExitPreconditionFailed indicates a conflicting environment variable
	// (PYTHONPATH) blocked the run before any work happened.
	ExitPreconditionFailed ExitCode = 2

	// ExitResolutionFailed indicates no base interpreter could be
	// determined: no active view and no --python flag, an undetectable
	// site-packages directory, or a forced tool that is not installed.
	ExitResolutionFailed ExitCode = 3

	// ExitSubprocessFailed indicates an invoked external process
	// (interpreter interrogation, uv, venv/pip module) exited non-zero.
	ExitSubprocessFailed ExitCode = 4

	// ExitFilesystemError indicates the target directory could not be
	// prepared or the .pth file could not be written.
	ExitFilesystemError ExitCode = 5
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Hint is optional multi-line remediation text printed after the
	// error message (e.g. how to unset PYTHONPATH in different shells).
	Hint string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
// This follows Go's error wrapping convention introduced in Go 1.13.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// WithHint attaches remediation text to the error and returns the same
// error, so it can be chained onto a constructor call.
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hint = hint
	return e
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
