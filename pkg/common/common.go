// Package common holds the pieces of the build pipeline's contract that the
// runtime layer consumes: the distribution's shebang convention and the
// python version helpers used to name versioned directories.
package common

import (
	"fmt"
	"strings"
)

// shebangTpl is the relative shebang convention used for every script the
// build produces. The target interpreter is resolved from the script's own
// location at execution time, so scripts stay valid after the whole tree
// is moved.
const shebangTpl = `#!/bin/sh
"exec" "$(dirname "$(readlink -f "$0")")%s" "$0" "$@"
`

// FormatShebang returns the relative shebang for the given interpreter path.
// The path is interpreted relative to the directory containing the script,
// e.g. "/bin/python3" or "/python3".
func FormatShebang(python string) string {
	return fmt.Sprintf(shebangTpl, python)
}

// MajorVersion returns the "X.Y" form of a full python version string.
func MajorVersion(version string) string {
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 {
		return version
	}
	return parts[0] + "." + parts[1]
}
