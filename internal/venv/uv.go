package venv

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/uenv-tools/uenv-venv/internal/model"
)

// UvEngine creates venvs by shelling out to the uv binary.
//
// uv is preferred over the stdlib module because it seeds pip,
// setuptools and wheel during creation (--seed) and installs upgrades an
// order of magnitude faster, which matters on parallel filesystems.
type UvEngine struct {
	// binaryPath is the resolved uv location, or "" when uv is not
	// installed. Resolved once at construction.
	binaryPath string

	execCommand ExecCommandFunc
}

// NewUvEngine probes PATH for uv and returns the engine. A missing
// binary is not an error here: Available reports it, and Select decides
// what that means for the run.
func NewUvEngine(opts ...Option) *UvEngine {
	o := newOptions(opts)

	// LookPath failure leaves binaryPath empty on purpose.
	path, _ := exec.LookPath("uv")
	return &UvEngine{binaryPath: path, execCommand: o.execCommand}
}

// Name identifies this engine in summaries and logs.
func (e *UvEngine) Name() model.Tool {
	return model.ToolUv
}

// Available reports whether the PATH probe found a uv binary.
func (e *UvEngine) Available() bool {
	return e.binaryPath != ""
}

// CreateVenv runs `uv venv <target> --python <interpreter> --seed`.
// The --seed flag pre-installs pip, setuptools and wheel so the venv is
// immediately usable even before the upgrade step.
func (e *UvEngine) CreateVenv(ctx context.Context, target, interpreter string, copies bool) error {
	args := []string{"venv", target, "--python", interpreter, "--seed"}
	if copies {
		args = append(args, "--copies")
	}
	return e.run(ctx, "uv venv", args...)
}

// InstallPackages runs `uv pip install -p <venvPython> -U <packages...>`,
// targeting the venv explicitly so uv does not need an activated
// environment.
func (e *UvEngine) InstallPackages(ctx context.Context, venvPython string, packages []string, indexURL string) error {
	args := []string{"pip", "install", "-p", venvPython, "-U"}
	if indexURL != "" {
		args = append(args, "--index-url", indexURL)
	}
	args = append(args, packages...)
	return e.run(ctx, "uv pip install", args...)
}

// run executes uv and captures stdout and stderr together for error
// reporting. Success is quiet; on failure the tool's own output is the
// most useful diagnostic, so it goes into the error message verbatim.
func (e *UvEngine) run(ctx context.Context, label string, args ...string) error {
	cmd := e.execCommand(ctx, e.binaryPath, args...)

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
