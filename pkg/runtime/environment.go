package runtime

import (
	"path/filepath"

	"github.com/dwoz/relenv/pkg/config"
	"github.com/dwoz/relenv/pkg/paths"
	"github.com/dwoz/relenv/pkg/relocate"
)

// defaultBuildPrefix stands in for the prefix the interpreter was
// compiled against. Every path derived from it is stale after the tree
// moves; redirecting those is this package's whole job.
const defaultBuildPrefix = "/build/relenv"

// Environment is the process-wide state of the relocated runtime:
// the configuration snapshot, the resolved layout, the module chain and
// the effective prefixes the packaging toolchain reads.
type Environment struct {
	// Settings is the configuration snapshot. Bootstrap is the only
	// writer after capture.
	Settings *config.Settings

	// Layout is the relocated distribution layout
	Layout *paths.Layout

	// Rewriter post-processes installed binaries
	Rewriter relocate.Rewriter

	// Chain is the module-resolution chain
	Chain *Chain

	// Prefix is the effective install prefix
	Prefix string

	// ExecPrefix is the effective execution prefix
	ExecPrefix string

	// SearchPath is the module search-path list
	SearchPath []string

	// BuildPrefix is the compiled-in prefix baked into the default
	// configuration module
	BuildPrefix string
}

// NewEnvironment assembles the runtime environment around a resolved
// layout. The returned environment is inert until Bootstrap runs.
func NewEnvironment(settings *config.Settings, layout *paths.Layout, rewriter relocate.Rewriter) *Environment {
	env := &Environment{
		Settings:    settings,
		Layout:      layout,
		Rewriter:    rewriter,
		Prefix:      layout.Root,
		ExecPrefix:  layout.Root,
		BuildPrefix: defaultBuildPrefix,
		SearchPath: []string{
			layout.PythonLibDir(),
			filepath.Join(layout.PythonLibDir(), "lib-dynload"),
			layout.SitePackagesDir(),
		},
	}

	env.Chain = newChain(env)
	registerBuiltins(env.Chain)

	return env
}

// registerBuiltins wires the default host module implementations into
// the chain's builtin table.
func registerBuiltins(c *Chain) {
	c.registerBuiltin(ModSysconfig, newSysconfig)
	c.registerBuiltin(ModScripts, newScriptMaker)
	c.registerBuiltin(ModBuildExt, newBuildExt)
	c.registerBuiltin(ModWheelInstall, newWheelInstaller)
	c.registerBuiltin(ModLegacyInstall, newLegacyInstaller)
}

// buildTimeLayout is the layout the interpreter was compiled against,
// anchored at the baked build prefix.
func buildTimeLayout(env *Environment) *paths.Layout {
	return paths.NewLayout(env.BuildPrefix, env.Layout.Platform, env.Layout.PyVersion)
}
