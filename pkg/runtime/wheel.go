package runtime

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/dwoz/relenv/pkg/errors"
	"github.com/dwoz/relenv/pkg/logging"
)

// Scheme is the installer's target directory set for one install.
type Scheme struct {
	// Platlib receives platform-specific modules
	Platlib string

	// Purelib receives pure modules
	Purelib string

	// Scripts receives generated launcher scripts
	Scripts string

	// Data receives everything else
	Data string
}

// WheelRequest describes one binary-package install.
type WheelRequest struct {
	// Name is the package's declared name
	Name string

	// WheelPath is the package archive being installed
	WheelPath string

	// Scheme is where the installer unpacked the package
	Scheme *Scheme
}

// WheelInstaller models the binary-package installer.
type WheelInstaller struct {
	// Install performs the install
	Install func(req *WheelRequest) error
}

// ModuleName implements Module.
func (w *WheelInstaller) ModuleName() string { return ModWheelInstall }

// newWheelInstaller builds the default installer. The real unpacking
// belongs to the package manager; the default is a passthrough the
// patch wraps its post-processing around.
func newWheelInstaller(env *Environment) Module {
	return &WheelInstaller{
		Install: func(req *WheelRequest) error {
			logger := logging.GetLogger("runtime.wheel")
			logger.Debug().Str("name", req.Name).Msg("install wheel")
			return nil
		},
	}
}

// patchWheelInstall delegates to the original installer, then walks the
// package's installed-file manifest and rewrites the library search
// path of every listed file that exists and is dynamically linked.
func patchWheelInstall(env *Environment, mod Module) (Module, error) {
	wi, ok := mod.(*WheelInstaller)
	if !ok {
		return nil, errTypeMismatch(ModWheelInstall, mod)
	}

	orig := wi.Install
	wi.Install = func(req *WheelRequest) error {
		if err := orig(req); err != nil {
			return err
		}
		return processRecord(env, req)
	}

	return wi, nil
}

// processRecord reads the install's RECORD manifest: one entry per
// line, comma delimited, first field the installed path relative to
// platlib. Missing files are metadata-only entries and skipped.
func processRecord(env *Environment, req *WheelRequest) error {
	logger := logging.GetLogger("runtime.wheel")
	record := filepath.Join(req.Scheme.Platlib, distInfoDir(req.WheelPath), "RECORD")

	f, err := os.Open(record)
	if err != nil {
		return errors.Wrapf(err, errors.ErrManifestRead, "failed to read manifest for %s", req.Name)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		entry := strings.SplitN(scanner.Text(), ",", 2)[0]
		if entry == "" {
			continue
		}

		file := filepath.Join(req.Scheme.Platlib, entry)
		if _, err := os.Stat(file); err != nil {
			logger.Debug().Str("file", file).Msg("file not found")
			continue
		}

		isBin, err := env.Rewriter.IsBinary(file)
		if err != nil {
			logger.Debug().Err(err).Str("file", file).Msg("detection failed")
			continue
		}
		if !isBin {
			continue
		}

		logger.Debug().Str("file", file).Msg("found binary")
		if err := env.Rewriter.Rewrite(file, env.Layout.LibDir(), true, env.Layout.Root); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, errors.ErrManifestRead, "failed to read manifest for %s", req.Name)
	}

	return nil
}

// distInfoDir derives the metadata directory name from the wheel's
// file name: the first two dash-separated fields are name and version.
func distInfoDir(wheelPath string) string {
	base := strings.TrimSuffix(filepath.Base(wheelPath), ".whl")
	parts := strings.SplitN(base, "-", 3)
	if len(parts) < 2 {
		return base + ".dist-info"
	}
	return parts[0] + "-" + parts[1] + ".dist-info"
}
