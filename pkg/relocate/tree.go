package relocate

import (
	"io/fs"
	"path/filepath"

	"github.com/dwoz/relenv/pkg/errors"
	"github.com/dwoz/relenv/pkg/logging"
)

// Tree applies the rewriter to every dynamically linked file under dir
// and returns the number of files rewritten. Individual detection
// failures are logged and skipped; the walk itself failing is an error.
func Tree(rw Rewriter, dir, libDir string, write bool, root string) (int, error) {
	logger := logging.GetLogger("relocate.tree")
	rewritten := 0

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		isBin, err := rw.IsBinary(path)
		if err != nil {
			logger.Debug().Err(err).Str("path", path).Msg("detection failed, skipping")
			return nil
		}
		if !isBin {
			return nil
		}

		if err := rw.Rewrite(path, libDir, write, root); err != nil {
			return err
		}
		rewritten++
		return nil
	})
	if err != nil {
		return rewritten, errors.Wrapf(err, errors.ErrFileAccess, "failed walking %s", dir)
	}

	return rewritten, nil
}
