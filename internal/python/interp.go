package python

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/uenv-tools/uenv-venv/internal/model"
)

// ExecCommandFunc constructs the command used to invoke an interpreter.
// It matches the signature of exec.CommandContext, which is the default;
// tests substitute a function that re-executes the test binary instead.
type ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

// Interpreter wraps a single Python executable and answers questions by
// running it. The zero value is not usable; construct with NewInterpreter.
type Interpreter struct {
	path        string
	execCommand ExecCommandFunc
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithExecCommand replaces the command constructor. Used by tests to
// avoid spawning a real python process.
func WithExecCommand(fn ExecCommandFunc) Option {
	return func(in *Interpreter) {
		in.execCommand = fn
	}
}

// NewInterpreter creates an Interpreter for the given executable path.
// The path is used verbatim; existence and executability are left to
// the first invocation, which reports them as subprocess errors.
func NewInterpreter(path string, opts ...Option) *Interpreter {
	in := &Interpreter{
		path:        path,
		execCommand: exec.CommandContext,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Path returns the interpreter's executable path.
func (in *Interpreter) Path() string {
	return in.path
}

// Info is what an interpreter reports about itself via the probe script.
type Info struct {
	// Version is the MAJOR.MINOR interpreter version (e.g. "3.11").
	Version string `json:"version"`

	// SearchPath is the interpreter's sys.path. The first entry is ""
	// for -c invocations (Python inserts the current directory slot).
	SearchPath []string `json:"path"`
}

// probeScript dumps the version and module search path as one JSON line.
// The "%d.%d" formatting happens inside Python, not in Go.
const probeScript = `import sys, json; print(json.dumps({"version": "%d.%d" % sys.version_info[:2], "path": sys.path}))`

// purelibScript prints the interpreter's pure-Python package directory.
const purelibScript = `import sysconfig; print(sysconfig.get_paths()["purelib"])`

// Probe asks the interpreter for its version and sys.path.
func (in *Interpreter) Probe(ctx context.Context) (*Info, error) {
	out, err := in.run(ctx, "interpreter probe", "-c", probeScript)
	if err != nil {
		return nil, err
	}

	var info Info
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		return nil, model.WrapCLIError(model.ExitSubprocessFailed,
			fmt.Sprintf("unexpected probe output from %s", in.path), err)
	}
	if info.Version == "" {
		return nil, model.NewCLIError(model.ExitSubprocessFailed,
			fmt.Sprintf("probe output from %s is missing the version", in.path))
	}
	return &info, nil
}

// Purelib asks the interpreter for its site-packages directory
// (sysconfig's "purelib" path). For a venv interpreter this is where
// the uenv.pth file belongs.
func (in *Interpreter) Purelib(ctx context.Context) (string, error) {
	out, err := in.run(ctx, "site-packages query", "-c", purelibScript)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// EnsurePip runs `python -m ensurepip --upgrade`. Some interpreters ship
// without ensurepip, so callers treat failure as tolerable and move on
// to the real package install.
func (in *Interpreter) EnsurePip(ctx context.Context) error {
	_, err := in.run(ctx, "ensurepip", "-m", "ensurepip", "--upgrade")
	return err
}

// run invokes the interpreter, capturing stdout and stderr separately so
// stderr can be folded into error messages while stdout is returned on
// success.
func (in *Interpreter) run(ctx context.Context, label string, args ...string) (string, error) {
	cmd := in.execCommand(ctx, in.path, args...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		message := fmt.Sprintf("%s failed (%s)", label, in.path)
		if stderrStr != "" {
			message = fmt.Sprintf("%s: %s", message, stderrStr)
		}
		return "", model.WrapCLIError(model.ExitSubprocessFailed, message, err)
	}

	return stdout.String(), nil
}
