package uenv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/uenv-tools/uenv-venv/internal/model"
)

// View identifies the active uenv view: which image is mounted where, and
// which of its views the user activated.
//
// Detection can be partial: the UENV_MOUNT_LIST fallback only reveals the
// mount point, leaving Uenv and Name empty. Callers that need the full
// identity use Validate; callers that only report (the status command)
// display whatever is present.
type View struct {
	// Mount is the filesystem mount point of the uenv image
	// (e.g. "/user-environment").
	Mount string

	// Uenv is the image name, including any tag (e.g. "prgenv-gnu/24.7:v1").
	Uenv string

	// Name is the activated view name within the image (e.g. "default").
	Name string
}

// Complete reports whether all three identity fields were detected.
func (v *View) Complete() bool {
	return v.Mount != "" && v.Uenv != "" && v.Name != ""
}

// Root returns the view's installation root, <mount>/env/<view-name>.
func (v *View) Root() string {
	return filepath.Join(v.Mount, "env", v.Name)
}

// Interpreter returns the conventional path of the view's Python binary,
// used as the default base interpreter when --python is not given.
func (v *View) Interpreter() string {
	return filepath.Join(v.Root(), "bin", "python")
}

// String returns the "mount / name / view" form used in summaries.
func (v *View) String() string {
	return fmt.Sprintf("%s / %s / %s", v.Mount, v.Uenv, v.Name)
}

// Validate checks that the view is complete enough to derive an
// interpreter from, and that its mount point actually exists. Each
// missing piece gets its own resolution error so the user knows exactly
// what the runtime did not expose.
func (v *View) Validate() error {
	if v.Uenv == "" {
		return model.NewCLIError(model.ExitResolutionFailed, "could not detect the uenv name").
			WithHint(activateHint)
	}
	if info, err := os.Stat(v.Mount); err != nil || !info.IsDir() {
		return model.NewCLIError(model.ExitResolutionFailed,
			fmt.Sprintf("uenv mount point does not exist: %s", v.Mount))
	}
	if v.Name == "" {
		return model.NewCLIError(model.ExitResolutionFailed, "could not detect an active view").
			WithHint(activateHint)
	}
	return nil
}

// activateHint tells the user how to get a fully-identified view.
const activateHint = `Start a uenv with an explicit view first, e.g.:

  uenv start prgenv-gnu/24.7:v1 --view=default

or pass --python <path-to-interpreter> to skip view detection.`

// Detect parses the uenv runtime's environment variables into a View.
//
// UENV_VIEW ("<mount>:<uenv-name>:<view-name>") wins when it has exactly
// three fields. Otherwise UENV_MOUNT_LIST is scanned last-to-first for a
// "<squashfs-image>:<mount>" token, which yields a mount-only View. When
// neither variable produces anything, detection fails with a resolution
// error.
func Detect(env Environ) (*View, error) {
	if raw := env[EnvView]; raw != "" {
		// SplitN with one extra slot so a fourth colon is visible as a
		// malformed value instead of being folded into the view name.
		parts := strings.SplitN(raw, ":", 4)
		if len(parts) == 3 {
			return &View{Mount: parts[0], Uenv: parts[1], Name: parts[2]}, nil
		}
	}

	if raw := env[EnvMountList]; raw != "" {
		tokens := strings.FieldsFunc(strings.TrimSpace(raw), func(r rune) bool {
			return r == ' ' || r == ','
		})
		// The most recently mounted image is listed last; take the mount
		// from the last token that has the "<image>:<mount>" shape.
		for i := len(tokens) - 1; i >= 0; i-- {
			if idx := strings.LastIndex(tokens[i], ":"); idx >= 0 {
				return &View{Mount: tokens[i][idx+1:]}, nil
			}
		}
	}

	return nil, model.NewCLIError(model.ExitResolutionFailed, "could not detect an active uenv").
		WithHint(activateHint)
}

// pythonPathHint shows how to clear the override in the common shells.
// Kept verbatim across shells because HPC users switch between them.
const pythonPathHint = `Unset it and rerun:

  # bash/zsh:
  unset PYTHONPATH

  # fish:
  set -e PYTHONPATH

  # csh/tcsh:
  unsetenv PYTHONPATH`

// CheckPythonPath enforces the precondition that PYTHONPATH is absent or
// empty. It runs before any other work: a stale override would let the
// new venv silently see a different package set than the one being
// layered, corrupting import resolution.
func CheckPythonPath(env Environ) error {
	if pp := env[EnvPythonPath]; pp != "" {
		return model.NewCLIError(model.ExitPreconditionFailed,
			fmt.Sprintf("PYTHONPATH is set in your environment and will break venv tooling (PYTHONPATH=%s)", pp)).
			WithHint(pythonPathHint)
	}
	return nil
}
