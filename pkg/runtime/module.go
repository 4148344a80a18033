// Package runtime is the relocation layer proper: it resolves the
// relocated install root, virtualizes the packaging toolchain's
// build-time path assumptions through a fixed set of patch targets, and
// post-processes installed binaries so their library search paths stay
// valid at the new location.
package runtime

import (
	"github.com/dwoz/relenv/pkg/errors"
	"github.com/dwoz/relenv/pkg/logging"
)

// Names of the patch targets. These are the packaging/configuration
// entry points the layer recognizes in the module chain.
const (
	// ModSysconfig is the standard configuration module. Matched by
	// prefix so versioned data submodules resolve through it too.
	ModSysconfig = "sysconfig"

	// ModScripts is the script-generator module
	ModScripts = "pip._vendor.distlib.scripts"

	// ModBuildExt is the extension-build-configuration module
	ModBuildExt = "distutils.command.build_ext"

	// ModWheelInstall is the binary-package installer
	ModWheelInstall = "pip._internal.operations.install.wheel"

	// ModLegacyInstall is the setup-script based installer
	ModLegacyInstall = "pip._internal.operations.install.legacy"
)

// Module is a loaded host module.
type Module interface {
	// ModuleName returns the module's import name
	ModuleName() string
}

// Finder locates modules ahead of the default mechanism. Finders are
// consulted in order; existence check and execution are separate steps
// in the resolution protocol, so a Finder that answers true to Probe
// will receive the matching Materialize call.
type Finder interface {
	// Probe reports whether this finder will materialize the module
	Probe(name string) bool

	// Materialize loads the module
	Materialize(name string) (Module, error)
}

// factory builds a host module's default implementation.
type factory func(env *Environment) Module

// Chain is the module-resolution chain: an ordered finder list in
// front of the default mechanism, plus the process-wide module cache.
// The model is single threaded; materializing a module may reenter
// Import for the same or another name.
type Chain struct {
	env      *Environment
	finders  []Finder
	cache    map[string]Module
	builtins map[string]factory
}

// newChain creates an empty chain bound to the environment.
func newChain(env *Environment) *Chain {
	return &Chain{
		env:      env,
		cache:    make(map[string]Module),
		builtins: make(map[string]factory),
	}
}

// Prepend installs a finder ahead of all existing finders and the
// default mechanism.
func (c *Chain) Prepend(f Finder) {
	c.finders = append([]Finder{f}, c.finders...)
}

// Import resolves a module: cached modules are returned as-is, then
// finders are consulted in order, then the default mechanism runs.
func (c *Chain) Import(name string) (Module, error) {
	if mod, ok := c.cache[name]; ok {
		return mod, nil
	}

	for _, f := range c.finders {
		if f.Probe(name) {
			return f.Materialize(name)
		}
	}

	return c.loadDefault(name)
}

// loadDefault is the default resolution mechanism: it builds the
// module from the builtin table and caches it.
func (c *Chain) loadDefault(name string) (Module, error) {
	fn, ok := c.builtins[name]
	if !ok {
		return nil, errors.Newf(errors.ErrModuleNotFound, "no module named '%s'", name)
	}

	logger := logging.GetLogger("runtime.chain")
	logger.Debug().Str("module", name).Msg("default load")
	mod := fn(c.env)
	c.cache[name] = mod
	return mod, nil
}

// Install replaces the cached module, keeping later imports on the
// installed instance.
func (c *Chain) Install(name string, mod Module) {
	c.cache[name] = mod
}

// registerBuiltin adds a default module implementation to the chain.
func (c *Chain) registerBuiltin(name string, fn factory) {
	c.builtins[name] = fn
}

// errTypeMismatch reports a module that loaded under a target name but
// does not expose the expected surface.
func errTypeMismatch(name string, mod Module) error {
	return errors.Newf(errors.ErrInternal, "module '%s' has unexpected type %T", name, mod)
}
