package venv

import (
	"context"
	"fmt"
	"strings"

	"github.com/uenv-tools/uenv-venv/internal/model"
)

// StdlibEngine creates venvs with the interpreter's own standard-library
// tooling: `python -m venv` for creation and `python -m pip` for
// installs. It is the always-available fallback, since every interpreter
// that can base a venv also ships the venv module.
type StdlibEngine struct {
	execCommand ExecCommandFunc
}

// NewStdlibEngine returns the stdlib engine. There is nothing to probe:
// the tool is the base interpreter itself, which the caller has already
// resolved.
func NewStdlibEngine(opts ...Option) *StdlibEngine {
	o := newOptions(opts)
	return &StdlibEngine{execCommand: o.execCommand}
}

// Name identifies this engine in summaries and logs.
func (e *StdlibEngine) Name() model.Tool {
	return model.ToolVenv
}

// Available always reports true; see NewStdlibEngine.
func (e *StdlibEngine) Available() bool {
	return true
}

// CreateVenv runs `<interpreter> -m venv <target>`. Unlike uv there is
// no seeding flag; pip arrives via ensurepip and the upgrade step.
func (e *StdlibEngine) CreateVenv(ctx context.Context, target, interpreter string, copies bool) error {
	args := []string{"-m", "venv", target}
	if copies {
		args = append(args, "--copies")
	}
	return e.run(ctx, "python -m venv", interpreter, args...)
}

// InstallPackages runs `<venvPython> -m pip install -U <packages...>`.
// Invoking pip through the venv's interpreter guarantees the install
// lands in the venv regardless of what pip happens to be on PATH.
func (e *StdlibEngine) InstallPackages(ctx context.Context, venvPython string, packages []string, indexURL string) error {
	args := []string{"-m", "pip", "install", "-U"}
	if indexURL != "" {
		args = append(args, "--index-url", indexURL)
	}
	args = append(args, packages...)
	return e.run(ctx, "pip install", venvPython, args...)
}

// run executes the interpreter-based tool, capturing stdout and stderr
// together for error reporting.
func (e *StdlibEngine) run(ctx context.Context, label, binary string, args ...string) error {
	cmd := e.execCommand(ctx, binary, args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		message := fmt.Sprintf("%s failed", label)
		if text := strings.TrimSpace(string(output)); text != "" {
			message = fmt.Sprintf("%s: %s", message, text)
		}
		return model.WrapCLIError(model.ExitSubprocessFailed, message, err)
	}
	return nil
}
