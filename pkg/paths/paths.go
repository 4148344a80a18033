// Package paths provides centralized path handling for the relocated
// distribution. It resolves the install root from the runtime layer's
// own on-disk location and exposes the fixed directory layout the
// artifact producer assembles for each platform.
package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/dwoz/relenv/pkg/errors"
)

// Platform identifies the distribution layout in use. It mirrors the
// build target, not the host the code happens to run on, so a tree
// built for one platform can be inspected from another.
type Platform string

// Supported platforms
const (
	// Win32 is the windows-style layout (Scripts\, Lib\site-packages)
	Win32 Platform = "win32"

	// Linux is the unix-style layout (bin/, lib/pythonX.Y/site-packages)
	Linux Platform = "linux"

	// Darwin uses the unix-style layout as well
	Darwin Platform = "darwin"
)

// CurrentPlatform returns the Platform matching the running host.
func CurrentPlatform() Platform {
	switch runtime.GOOS {
	case "windows":
		return Win32
	case "darwin":
		return Darwin
	default:
		return Linux
	}
}

// WindowsLayout reports whether the platform uses the windows-style
// directory layout.
func (p Platform) WindowsLayout() bool {
	return p == Win32
}

// ResolveRoot computes the relocated install root from the runtime
// layer's own module directory. The layer lives in
// Lib\site-packages\relenv on the windows-style layout and in
// lib/pythonX.Y/site-packages/relenv otherwise, so the ascent is one
// level shallower on windows (no intermediate versioned lib directory).
// Pure layout arithmetic, no I/O.
func ResolveRoot(moduleDir string, platform Platform) string {
	levels := 4
	if platform.WindowsLayout() {
		levels = 3
	}

	root := filepath.Clean(moduleDir)
	for i := 0; i < levels; i++ {
		root = filepath.Dir(root)
	}
	return root
}

// DefaultModuleDir returns the directory holding the running runtime
// layer, with symlinks resolved. Computed fresh per process; the result
// must never be persisted since the whole point is that the tree moves.
func DefaultModuleDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "failed to locate own executable")
	}

	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve symlinks for %s", exe)
	}

	return filepath.Dir(resolved), nil
}
