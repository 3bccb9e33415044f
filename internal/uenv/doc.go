// Package uenv reads the state the uenv runtime leaves behind in the
// process environment and on the filesystem.
//
// The uenv runtime itself is an external collaborator and is never
// reimplemented here. This package only:
//   - Parses UENV_VIEW / UENV_MOUNT_LIST into a View value
//   - Enforces the PYTHONPATH precondition
//   - Reads the image metadata file mounted at <mount>/meta/env.json
//
// All environment access goes through the Environ mapping so tests can
// inject arbitrary environments without touching the real process state.
package uenv
