package runtime

import (
	"github.com/dwoz/relenv/pkg/common"
	"github.com/dwoz/relenv/pkg/logging"
)

// ScriptMaker models the script-generator module: it builds the
// shebang line stamped into every generated launcher script.
type ScriptMaker struct {
	// BuildShebang constructs the shebang for a generated script
	BuildShebang func() []byte
}

// ModuleName implements Module.
func (s *ScriptMaker) ModuleName() string { return ModScripts }

// newScriptMaker builds the default script generator, which points
// scripts at the interpreter's absolute build-time location.
func newScriptMaker(env *Environment) Module {
	buildLayout := buildTimeLayout(env)
	return &ScriptMaker{
		BuildShebang: func() []byte {
			return []byte("#!" + buildLayout.PythonExe())
		},
	}
}

// patchScripts replaces the shebang builder so generated scripts find
// the interpreter relative to their own location. The launcher token
// resolves at execution time on windows; elsewhere the artifact
// producer's relative shebang convention does the same job.
func patchScripts(env *Environment, mod Module) (Module, error) {
	sm, ok := mod.(*ScriptMaker)
	if !ok {
		return nil, errTypeMismatch(ModScripts, mod)
	}

	sm.BuildShebang = func() []byte {
		logger := logging.GetLogger("runtime.scripts")
		logger.Debug().Msg("build shebang")
		if env.Layout.Platform.WindowsLayout() {
			if env.Settings.PipDir {
				return []byte(`#!<launcher_dir>\Scripts\python.exe`)
			}
			return []byte(`#!<launcher_dir>\python.exe`)
		}
		if env.Settings.PipDir {
			return []byte(common.FormatShebang("/bin/python3"))
		}
		return []byte(common.FormatShebang("/python3"))
	}

	return sm, nil
}
