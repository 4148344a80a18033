package paths

import "path/filepath"

// Layout exposes the fixed directory tree the artifact producer
// assembles, anchored at the relocated root. All methods are pure path
// arithmetic against the root.
type Layout struct {
	// Root is the relocated install root
	Root string

	// Platform selects between the windows-style and unix-style trees
	Platform Platform

	// PyVersion is the python version in "X.Y" form, used to name the
	// versioned library directory on the unix-style layout
	PyVersion string
}

// NewLayout creates a Layout for the given root.
func NewLayout(root string, platform Platform, pyVersion string) *Layout {
	return &Layout{
		Root:      filepath.Clean(root),
		Platform:  platform,
		PyVersion: pyVersion,
	}
}

// BinDir returns the executable/scripts directory: Scripts on the
// windows-style layout, bin otherwise.
func (l *Layout) BinDir() string {
	if l.Platform.WindowsLayout() {
		return filepath.Join(l.Root, "Scripts")
	}
	return filepath.Join(l.Root, "bin")
}

// LibDir returns the shared-library directory binary rewrites are
// anchored to. DLLs sit next to the interpreter at the root on windows.
func (l *Layout) LibDir() string {
	if l.Platform.WindowsLayout() {
		return l.Root
	}
	return filepath.Join(l.Root, "lib")
}

// IncludeDir returns the C header directory.
func (l *Layout) IncludeDir() string {
	if l.Platform.WindowsLayout() {
		return filepath.Join(l.Root, "Include")
	}
	return filepath.Join(l.Root, "include")
}

// ImportLibDir returns the import-library directory. Only the
// windows-style layout carries one.
func (l *Layout) ImportLibDir() string {
	if l.Platform.WindowsLayout() {
		return filepath.Join(l.Root, "libs")
	}
	return ""
}

// PythonLibDir returns the python module directory.
func (l *Layout) PythonLibDir() string {
	if l.Platform.WindowsLayout() {
		return filepath.Join(l.Root, "Lib")
	}
	return filepath.Join(l.Root, "lib", "python"+l.PyVersion)
}

// SitePackagesDir returns the third-party package directory.
func (l *Layout) SitePackagesDir() string {
	return filepath.Join(l.PythonLibDir(), "site-packages")
}

// ModuleDir returns the runtime layer's own directory inside the tree.
func (l *Layout) ModuleDir() string {
	return filepath.Join(l.SitePackagesDir(), "relenv")
}

// PythonExe returns the interpreter path.
func (l *Layout) PythonExe() string {
	if l.Platform.WindowsLayout() {
		return filepath.Join(l.Root, "python.exe")
	}
	return filepath.Join(l.BinDir(), "python3")
}
