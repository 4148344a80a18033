package relocate

import (
	"os/exec"
	"strings"

	"github.com/dwoz/relenv/pkg/errors"
	"github.com/dwoz/relenv/pkg/logging"
)

// rewriteMachO adds a loader-relative rpath to a Mach-O file so
// libraries resolve from libDir after the tree moves.
func (r *rewriter) rewriteMachO(path, libDir string, write bool, root string) error {
	logger := logging.GetLogger("relocate.macho")

	relative, err := originRelative(path, libDir)
	if err != nil {
		return err
	}
	// Mach-O spells the anchor differently
	relative = strings.Replace(relative, "$ORIGIN", "@loader_path", 1)

	logger.Debug().
		Str("path", path).
		Str("rpath", relative).
		Bool("write", write).
		Msg("adding loader-relative rpath")

	if !write {
		return nil
	}

	cmd := exec.Command("install_name_tool", "-add_rpath", relative, path)
	if output, err := cmd.CombinedOutput(); err != nil {
		// Re-adding an existing rpath fails; that means the file is
		// already relocatable.
		if strings.Contains(string(output), "would duplicate path") {
			logger.Debug().Str("path", path).Msg("rpath already present")
			return nil
		}
		return errors.Wrapf(err, errors.ErrSubprocess, "install_name_tool failed for %s: %s",
			path, strings.TrimSpace(string(output)))
	}
	return nil
}
