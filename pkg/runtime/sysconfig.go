package runtime

import (
	"github.com/dwoz/relenv/pkg/logging"
)

// Sysconfig models the host's standard configuration module: the
// compiled-in configuration variables and the per-scheme install path
// sets the packaging toolchain reads.
type Sysconfig struct {
	// ConfigVar returns a compiled-in configuration variable
	ConfigVar func(name string) string

	// Paths returns the install path set for a scheme. An empty scheme
	// selects the default scheme.
	Paths func(scheme string) map[string]string

	// PipUseSysconfig tells the package manager to read paths from
	// this module rather than its own fallback tables
	PipUseSysconfig bool

	scheme string
}

// ModuleName implements Module.
func (s *Sysconfig) ModuleName() string { return ModSysconfig }

// GetDefaultScheme returns the default install scheme. This is the
// modern accessor name; older hosts expose DefaultScheme instead.
func (s *Sysconfig) GetDefaultScheme() string { return s.scheme }

// defaultSchemer is the modern accessor for the default install scheme.
type defaultSchemer interface {
	GetDefaultScheme() string
}

// legacySchemer is the accessor name used by older hosts.
type legacySchemer interface {
	DefaultScheme() string
}

// schemeOf resolves the default scheme through the ordered accessor
// fallback. A host exposing neither is unsupported and an unhandled
// fault.
func schemeOf(mod Module) string {
	if m, ok := mod.(defaultSchemer); ok {
		return m.GetDefaultScheme()
	}
	if m, ok := mod.(legacySchemer); ok {
		return m.DefaultScheme()
	}
	panic("configuration module exposes no default-scheme accessor")
}

// newSysconfig builds the default configuration module with its
// compiled-in, build-time values.
func newSysconfig(env *Environment) Module {
	buildLayout := buildTimeLayout(env)

	vars := map[string]string{
		"BINDIR":    buildLayout.BinDir(),
		"INCLUDEPY": buildLayout.IncludeDir(),
		"LIBDIR":    buildLayout.LibDir(),
		"prefix":    env.BuildPrefix,
	}

	pathSets := func(scheme string) map[string]string {
		return map[string]string{
			"stdlib":  buildLayout.PythonLibDir(),
			"platlib": buildLayout.SitePackagesDir(),
			"purelib": buildLayout.SitePackagesDir(),
			"include": buildLayout.IncludeDir(),
			"scripts": buildLayout.BinDir(),
			"data":    env.BuildPrefix,
		}
	}

	return &Sysconfig{
		ConfigVar: func(name string) string { return vars[name] },
		Paths:     pathSets,
		scheme:    defaultSchemeName(env),
	}
}

// defaultSchemeName names the host's default install scheme.
func defaultSchemeName(env *Environment) string {
	if env.Layout.Platform.WindowsLayout() {
		return "nt"
	}
	return "posix_prefix"
}

// patchSysconfig redirects the configuration module to the relocated
// root: the scripts-directory variable and, in package-manager
// directory mode, the "scripts" path entry and the effective execution
// prefix.
func patchSysconfig(env *Environment, mod Module) (Module, error) {
	sc, ok := mod.(*Sysconfig)
	if !ok {
		return nil, errTypeMismatch(ModSysconfig, mod)
	}
	logger := logging.GetLogger("runtime.sysconfig")

	origVar := sc.ConfigVar
	sc.ConfigVar = func(name string) string {
		if name == "BINDIR" {
			orig := origVar(name)
			var val string
			if env.Settings.PipDir {
				val = env.Layout.Root
			} else {
				val = env.Layout.BinDir()
			}
			logger.Debug().Str("name", name).Str("old", orig).Str("new", val).Msg("config var")
			return val
		}
		val := origVar(name)
		logger.Debug().Str("name", name).Str("value", val).Msg("config var")
		return val
	}

	sc.PipUseSysconfig = true

	// Resolve the default scheme through the accessor fallback before
	// wrapping the path accessor.
	defaultScheme := schemeOf(sc)

	origPaths := sc.Paths
	sc.Paths = func(scheme string) map[string]string {
		if scheme == "" {
			scheme = defaultScheme
		}
		pathSet := origPaths(scheme)
		if env.Settings.PipDir {
			pathSet["scripts"] = env.Layout.Root
			env.ExecPrefix = env.Layout.Root
		}
		return pathSet
	}

	return sc, nil
}
