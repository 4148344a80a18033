package runtime

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dwoz/relenv/pkg/errors"
	"github.com/dwoz/relenv/pkg/logging"
)

// LegacyRequest describes one setup-script based install.
type LegacyRequest struct {
	// SetupPath is the package's setup script
	SetupPath string

	// Prefix is an alternate install prefix, normally empty
	Prefix string

	// Scheme is where the installer placed the package
	Scheme *Scheme
}

// LegacyInstaller models the setup-script based installer.
type LegacyInstaller struct {
	// Install performs the install
	Install func(req *LegacyRequest) error
}

// ModuleName implements Module.
func (l *LegacyInstaller) ModuleName() string { return ModLegacyInstall }

// newLegacyInstaller builds the default installer, a passthrough like
// the wheel default.
func newLegacyInstaller(env *Environment) Module {
	return &LegacyInstaller{
		Install: func(req *LegacyRequest) error {
			logger := logging.GetLogger("runtime.legacy")
			logger.Debug().Str("setup", req.SetupPath).Msg("install legacy")
			return nil
		},
	}
}

// patchLegacyInstall delegates to the original installer, then locates
// the package's legacy metadata directory by its declared name and
// version and rewrites every dynamically linked file it recorded.
// A package without findable metadata is logged and left alone.
func patchLegacyInstall(env *Environment, mod Module) (Module, error) {
	li, ok := mod.(*LegacyInstaller)
	if !ok {
		return nil, errTypeMismatch(ModLegacyInstall, mod)
	}

	orig := li.Install
	li.Install = func(req *LegacyRequest) error {
		logger := logging.GetLogger("runtime.legacy")

		name, version, err := readPkgInfo(filepath.Join(filepath.Dir(req.SetupPath), "PKG-INFO"))
		if err != nil {
			return err
		}

		if err := orig(req); err != nil {
			return err
		}

		eggInfo := findEggInfo(env, req, name, version)
		if eggInfo == "" {
			logger.Debug().Str("name", name).Str("version", version).Msg("no egg info found")
			return nil
		}

		return processInstalledFiles(env, eggInfo)
	}

	return li, nil
}

// readPkgInfo recovers the declared name and version from a package
// descriptor file.
func readPkgInfo(path string) (name, version string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", errors.Wrapf(err, errors.ErrPkgInfoRead, "failed to read %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if v, ok := strings.CutPrefix(line, "Name: "); ok {
			name = strings.TrimSpace(v)
		} else if v, ok := strings.CutPrefix(line, "Version: "); ok {
			version = strings.TrimSpace(v)
		}
		if name != "" && version != "" {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", "", errors.Wrapf(err, errors.ErrPkgInfoRead, "failed to read %s", path)
	}

	return name, version, nil
}

// findEggInfo searches the version-specific site directory, then the
// install scheme's generic site directory, for a metadata directory
// named <name>-<version>-<suffix>. The later match wins. The prefix
// comparison cannot tell apart distinct packages sharing a name
// prefix; that matches the installer's own convention.
func findEggInfo(env *Environment, req *LegacyRequest, name, version string) string {
	wanted := name + "-" + version
	var eggInfo string

	if req.Prefix != "" {
		sitePackages := filepath.Join(req.Prefix, "lib", "python"+env.Layout.PyVersion, "site-packages")
		if match := globEggInfo(sitePackages, wanted); match != "" {
			eggInfo = match
		}
	}

	if match := globEggInfo(req.Scheme.Purelib, wanted); match != "" {
		eggInfo = match
	}

	return eggInfo
}

// globEggInfo returns the first .egg-info directory under dir whose
// name starts with the wanted prefix.
func globEggInfo(dir, wanted string) string {
	matches, err := filepath.Glob(filepath.Join(dir, "*.egg-info"))
	if err != nil {
		return ""
	}
	sort.Strings(matches)

	for _, match := range matches {
		if strings.HasPrefix(filepath.Base(match), wanted) {
			return match
		}
	}
	return ""
}

// processInstalledFiles reads the legacy manifest, one path per line
// relative to the metadata directory, and rewrites every dynamically
// linked entry. Missing files are skipped.
func processInstalledFiles(env *Environment, eggInfo string) error {
	logger := logging.GetLogger("runtime.legacy")
	manifest := filepath.Join(eggInfo, "installed-files.txt")

	f, err := os.Open(manifest)
	if err != nil {
		return errors.Wrapf(err, errors.ErrManifestRead, "failed to read %s", manifest)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		entry := strings.TrimSpace(scanner.Text())
		if entry == "" {
			continue
		}

		file := entry
		if !filepath.IsAbs(file) {
			file = filepath.Clean(filepath.Join(eggInfo, file))
		}
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
		return errors.Wrapf(err, errors.ErrManifestRead, "failed to read %s", manifest)
	}

	return nil
}
