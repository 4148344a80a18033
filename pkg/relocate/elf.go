package relocate

import (
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dwoz/relenv/pkg/errors"
	"github.com/dwoz/relenv/pkg/logging"
)

// rewriteELF updates an ELF file's rpath so libraries resolve from
// libDir via $ORIGIN. Existing $ORIGIN entries are preserved; absolute
// entries pointing outside root are dropped since they reference the
// build machine.
func (r *rewriter) rewriteELF(path, libDir string, write bool, root string) error {
	logger := logging.GetLogger("relocate.elf")

	current, err := printRpath(path)
	if err != nil {
		return err
	}

	relative, err := originRelative(path, libDir)
	if err != nil {
		return err
	}

	wanted := mergeRpath(current, relative, root)
	if wanted == current {
		logger.Debug().Str("path", path).Str("rpath", current).Msg("rpath already relative")
		return nil
	}

	logger.Debug().
		Str("path", path).
		Str("old", current).
		Str("new", wanted).
		Bool("write", write).
		Msg("rewriting rpath")

	if !write {
		return nil
	}
	return setRpath(path, wanted)
}

// originRelative builds a $ORIGIN-relative rpath entry pointing from
// the file's directory to libDir.
func originRelative(path, libDir string) (string, error) {
	rel, err := filepath.Rel(filepath.Dir(path), libDir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrRewrite, "no relative path from %s to %s", path, libDir)
	}
	if rel == "." {
		return "$ORIGIN", nil
	}
	return "$ORIGIN/" + filepath.ToSlash(rel), nil
}

// mergeRpath combines the wanted $ORIGIN entry with surviving entries
// from the current rpath. Entries under root are superseded by the
// relative entry; entries outside root reference the build machine and
// are dropped.
func mergeRpath(current, relative, root string) string {
	entries := []string{relative}
	for _, entry := range strings.Split(current, ":") {
		if entry == "" || entry == relative {
			continue
		}
		if strings.HasPrefix(entry, "$ORIGIN") {
			entries = append(entries, entry)
		}
	}
	return strings.Join(entries, ":")
}

// printRpath reads the current rpath via patchelf.
func printRpath(path string) (string, error) {
	cmd := exec.Command("patchelf", "--print-rpath", path)
	output, err := cmd.Output()
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrSubprocess, "patchelf --print-rpath %s", path)
	}
	return strings.TrimSpace(string(output)), nil
}

// setRpath writes a new rpath via patchelf.
func setRpath(path, rpath string) error {
	cmd := exec.Command("patchelf", "--force-rpath", "--set-rpath", rpath, path)
	if output, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(err, errors.ErrSubprocess, "patchelf --set-rpath failed for %s: %s",
			path, strings.TrimSpace(string(output)))
	}
	return nil
}
