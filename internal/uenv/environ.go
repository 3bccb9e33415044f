package uenv

import (
	"os"
	"strings"
)

// Environment variable names owned by the uenv runtime (read-only for us)
// and by this tool.
const (
	// EnvView is set by `uenv start --view=...` and holds the active view
	// identity as "<mount>:<uenv-name>:<view-name>".
	EnvView = "UENV_VIEW"

	// EnvMountList is set by the uenv runtime and lists mounted images as
	// space- or comma-separated "<squashfs-image>:<mount>" tokens.
	EnvMountList = "UENV_MOUNT_LIST"

	// EnvPythonPath is Python's package-search override variable. A venv
	// created while it is set would silently resolve packages from the
	// override instead of the layered view, so its presence is fatal.
	EnvPythonPath = "PYTHONPATH"

	// EnvConfig overrides the location of the uenv-venv configuration file.
	EnvConfig = "UENV_VENV_CONFIG"
)

// Environ is the process environment as a key-value mapping. It is read
// once at startup and passed down explicitly, never re-read, so every
// function that depends on the environment is testable with a literal map.
type Environ map[string]string

// EnvironFromOS snapshots the real process environment into an Environ.
func EnvironFromOS() Environ {
	pairs := os.Environ()
	env := make(Environ, len(pairs))
	for _, kv := range pairs {
		if key, value, ok := strings.Cut(kv, "="); ok {
			env[key] = value
		}
	}
	return env
}
