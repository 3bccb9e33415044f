package venv

import (
	"context"
	"os/exec"

	"github.com/uenv-tools/uenv-venv/internal/model"
)

// ExecCommandFunc constructs the command used to invoke an external tool.
// It matches the signature of exec.CommandContext, which is the default;
// tests substitute a function that re-executes the test binary instead.
type ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

// Engine is the strategy for materializing a venv and installing
// packages into it. Implementations wrap one external tool each and are
// interchangeable from the caller's point of view.
type Engine interface {
	// Name identifies the strategy for summaries and logs.
	Name() model.Tool

	// Available reports whether the engine's tool can run on this
	// machine. The underlying probe happens once, at construction.
	Available() bool

	// CreateVenv materializes a venv at target from the given base
	// interpreter. With copies, files are copied instead of symlinked
	// (needed on filesystems that drop symlinks, e.g. some scratch
	// mounts).
	CreateVenv(ctx context.Context, target, interpreter string, copies bool) error

	// InstallPackages installs the given packages into the venv that
	// owns venvPython, upgrading any that are already present. indexURL
	// optionally redirects the package index.
	InstallPackages(ctx context.Context, venvPython string, packages []string, indexURL string) error
}

// Option configures engine construction.
type Option func(*options)

// options holds the cross-engine construction knobs.
type options struct {
	execCommand ExecCommandFunc
}

// WithExecCommand replaces the command constructor. Used by tests to
// avoid spawning real uv/python processes.
func WithExecCommand(fn ExecCommandFunc) Option {
	return func(o *options) {
		o.execCommand = fn
	}
}

// newOptions applies opts over the defaults.
func newOptions(opts []Option) *options {
	o := &options{execCommand: exec.CommandContext}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Select picks the engine for this run. The preference comes from
// configuration:
//
//	"uv"           force uv; a resolution error if uv is not installed
//	"venv"         force the stdlib module
//	"auto" or ""   uv when present on PATH, stdlib otherwise
//
// The PATH probe behind this decision runs once, here. Once an engine is
// selected there is no falling back: its subprocess failures are fatal.
func Select(preference string, opts ...Option) (Engine, error) {
	switch preference {
	case "uv":
		uv := NewUvEngine(opts...)
		if !uv.Available() {
			return nil, model.NewCLIError(model.ExitResolutionFailed,
				"configuration forces the uv tool but uv is not on PATH").
				WithHint("Install uv, or set tool: auto (or venv) in the configuration file.")
		}
		return uv, nil
	case "venv":
		return NewStdlibEngine(opts...), nil
	default:
		if uv := NewUvEngine(opts...); uv.Available() {
			return uv, nil
		}
		return NewStdlibEngine(opts...), nil
	}
}
