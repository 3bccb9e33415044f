package venv

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/uenv-tools/uenv-venv/internal/model"
)

// PythonPath returns the interpreter a venv exposes after creation,
// <target>/bin/python. Both engines produce this layout on POSIX
// systems.
func PythonPath(target string) string {
	return filepath.Join(target, "bin", "python")
}

// PrepareTarget makes the target directory ready for creation.
//
// With force, any existing tree at target is removed first. Without it,
// an existing non-empty target is refused so a previous venv (or an
// unrelated directory) is never silently clobbered. The directory itself
// is then created with parents; both engines accept an existing empty
// directory as their target.
func PrepareTarget(target string, force bool) error {
	if force {
		if err := os.RemoveAll(target); err != nil {
			return model.WrapCLIError(model.ExitFilesystemError,
				fmt.Sprintf("failed to remove existing venv directory %s", target), err)
		}
	}

	entries, err := os.ReadDir(target)
	if err == nil && len(entries) > 0 {
		return model.NewCLIError(model.ExitFilesystemError,
			fmt.Sprintf("venv directory exists and is not empty: %s", target)).
			WithHint("Pass --force to remove it first.")
	}
	// Any other ReadDir error (not-a-directory, permissions) surfaces
	// through MkdirAll below with the same failure class.

	if err := os.MkdirAll(target, 0o755); err != nil {
		return model.WrapCLIError(model.ExitFilesystemError,
			fmt.Sprintf("failed to create venv directory %s", target), err)
	}
	return nil
}
