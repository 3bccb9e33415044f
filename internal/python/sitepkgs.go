package python

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/uenv-tools/uenv-venv/internal/model"
)

// EnvRoot derives an installation root from an interpreter path by
// stripping the executable name and its bin directory:
//
//	/user-environment/env/default/bin/python → /user-environment/env/default
//	/opt/view/bin/python3.11                 → /opt/view
//
// This matches both uenv views and regular prefix installs, which share
// the <root>/bin/<python> convention.
func EnvRoot(interpreterPath string) string {
	return filepath.Dir(filepath.Dir(interpreterPath))
}

// SitePackagesDir returns the conventional pure-Python package directory
// for an installation root and a MAJOR.MINOR version.
func SitePackagesDir(envRoot, version string) string {
	return filepath.Join(envRoot, "lib", "python"+version, "site-packages")
}

// DiscoverViewSitePackages locates the package directory of the
// environment the interpreter belongs to, which is the single path the
// uenv.pth file will carry.
//
// The interpreter's own sys.path is the ground truth: the first entry
// that is an existing directory under the conventional location wins.
// When sys.path has no such entry (some views trim it from the default
// interpreter), the conventional location itself is used as long as it
// exists. Otherwise the environment does not expose its packages where
// expected and the run fails.
func DiscoverViewSitePackages(envRoot string, info *Info) (string, error) {
	want := SitePackagesDir(envRoot, info.Version)

	for _, entry := range info.SearchPath {
		if entry == "" {
			// The cwd slot Python inserts for -c invocations.
			continue
		}
		cleaned := filepath.Clean(entry)
		if !strings.HasPrefix(cleaned, want) {
			continue
		}
		if isDir(cleaned) {
			return cleaned, nil
		}
	}

	if isDir(want) {
		return want, nil
	}

	return "", model.NewCLIError(model.ExitResolutionFailed,
		fmt.Sprintf("could not locate the view's site-packages (looked for %s)", want)).
		WithHint("Ensure the uenv is active and exposes its view on sys.path.")
}

// isDir reports whether path exists and is a directory.
func isDir(path string) bool {
	fileInfo, err := os.Stat(path)
	return err == nil && fileInfo.IsDir()
}
