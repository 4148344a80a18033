package runtime

import (
	"strings"

	"github.com/dwoz/relenv/pkg/errors"
	"github.com/dwoz/relenv/pkg/logging"
	"github.com/dwoz/relenv/pkg/registry"
)

// patchState is the per-target one-shot state. It only ever moves
// forward; "patching" exists to let a reentrant load of the same target
// fall through to the default mechanism.
type patchState int

const (
	stateUnpatched patchState = iota
	statePatching
	statePatched
)

// PatchFunc adapts a freshly loaded host module to the relocated root.
type PatchFunc func(env *Environment, mod Module) (Module, error)

// target pairs a recognized module name with its one-shot state and
// patch function.
type target struct {
	name   string
	prefix bool
	state  patchState
	patch  PatchFunc
}

// Importer is the finder prepended to the module chain. It recognizes
// the five patch targets, applies each patch exactly once per process,
// and steps aside for everything else.
type Importer struct {
	env     *Environment
	targets registry.Registry[*target]
}

// NewImporter creates the importer with the fixed target set.
func NewImporter(env *Environment) *Importer {
	targets := registry.New[*target]()
	registry.MustRegister(targets, ModSysconfig, &target{name: ModSysconfig, prefix: true, patch: patchSysconfig})
	registry.MustRegister(targets, ModScripts, &target{name: ModScripts, patch: patchScripts})
	registry.MustRegister(targets, ModBuildExt, &target{name: ModBuildExt, patch: patchBuildExt})
	registry.MustRegister(targets, ModWheelInstall, &target{name: ModWheelInstall, patch: patchWheelInstall})
	registry.MustRegister(targets, ModLegacyInstall, &target{name: ModLegacyInstall, patch: patchLegacyInstall})

	return &Importer{env: env, targets: targets}
}

// match returns the target recognizing the given module name, nil when
// no target matches.
func (i *Importer) match(name string) *target {
	if t, err := i.targets.Get(name); err == nil {
		return t
	}
	// The configuration module owns its versioned data submodules
	if t, err := i.targets.Get(ModSysconfig); err == nil && t.prefix && strings.HasPrefix(name, ModSysconfig) {
		return t
	}
	return nil
}

// Probe implements Finder. It answers true exactly once per target:
// the matching target moves to "patching" as a side effect, so the
// reentrant load triggered by Materialize falls through to the default
// mechanism instead of looping back here.
func (i *Importer) Probe(name string) bool {
	t := i.match(name)
	if t == nil {
		return false
	}
	if t.state != stateUnpatched {
		return false
	}

	logger := logging.GetLogger("runtime.importer")
	logger.Debug().Str("module", name).Msg("match")
	t.state = statePatching
	return true
}

// Materialize implements Finder. It loads the real module through the
// default mechanism, applies the registered patch, marks the target
// patched and installs the result in the module cache.
func (i *Importer) Materialize(name string) (Module, error) {
	t := i.match(name)
	if t == nil {
		return nil, errors.Newf(errors.ErrInternal, "materialize without probe for '%s'", name)
	}

	logger := logging.GetLogger("runtime.importer")
	logger.Debug().Str("module", name).Msg("load module")

	// Prefix matches load the base module
	mod, err := i.env.Chain.Import(t.name)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrModuleLoad, "failed to load '%s'", t.name)
	}

	patched, err := t.patch(i.env, mod)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPatchFailed, "failed to patch '%s'", t.name)
	}

	t.state = statePatched
	i.env.Chain.Install(name, patched)
	return patched, nil
}
