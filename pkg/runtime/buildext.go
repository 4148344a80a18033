package runtime

import (
	"github.com/dwoz/relenv/pkg/logging"
)

// ExtOptions is the compiled-extension build configuration assembled
// before a native build runs.
type ExtOptions struct {
	// IncludeDirs is the header search-path list
	IncludeDirs []string

	// LibraryDirs is the library search-path list
	LibraryDirs []string

	// Libraries names libraries to link against
	Libraries []string
}

// BuildExt models the extension-build-configuration module.
type BuildExt struct {
	// FinalizeOptions completes the build configuration in place
	FinalizeOptions func(opts *ExtOptions)
}

// ModuleName implements Module.
func (b *BuildExt) ModuleName() string { return ModBuildExt }

// newBuildExt builds the default configuration step, which fills in
// the build-time header and library locations.
func newBuildExt(env *Environment) Module {
	buildLayout := buildTimeLayout(env)
	return &BuildExt{
		FinalizeOptions: func(opts *ExtOptions) {
			if len(opts.IncludeDirs) == 0 {
				opts.IncludeDirs = []string{buildLayout.IncludeDir()}
			}
			if len(opts.LibraryDirs) == 0 {
				opts.LibraryDirs = []string{buildLayout.LibDir()}
			}
		},
	}
}

// patchBuildExt appends the relocated header directory after the
// original logic runs; the build-time header location no longer exists
// once the tree has moved.
func patchBuildExt(env *Environment, mod Module) (Module, error) {
	be, ok := mod.(*BuildExt)
	if !ok {
		return nil, errTypeMismatch(ModBuildExt, mod)
	}

	orig := be.FinalizeOptions
	be.FinalizeOptions = func(opts *ExtOptions) {
		orig(opts)
		include := env.Layout.IncludeDir()
		opts.IncludeDirs = append(opts.IncludeDirs, include)
		logger := logging.GetLogger("runtime.buildext")
		logger.Debug().Str("include", include).Msg("added include dir")
	}

	return be, nil
}
