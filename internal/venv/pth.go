package venv

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/uenv-tools/uenv-venv/internal/model"
)

// PthFileName is the path-configuration file dropped into the venv's
// site-packages. Python's site module reads every *.pth file there at
// startup and appends each line to sys.path.
const PthFileName = "uenv.pth"

// WritePth writes the file that layers the view's packages into the
// venv: a single absolute path, newline-terminated, at
// <venvSitePackages>/uenv.pth. Returns the written path.
//
// The write truncates any previous content, so rerunning against an
// unchanged view produces an identical file and a changed view simply
// repoints the venv. The view path is written as given, even if nothing
// exists there yet.
func WritePth(venvSitePackages, viewSitePackages string) (string, error) {
	pthPath := filepath.Join(venvSitePackages, PthFileName)
	content := viewSitePackages + "\n"

	if err := os.WriteFile(pthPath, []byte(content), 0o644); err != nil {
		return "", model.WrapCLIError(model.ExitFilesystemError,
			fmt.Sprintf("failed to write %s", pthPath), err)
	}
	return pthPath, nil
}
