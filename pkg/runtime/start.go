package runtime

import (
	"os"

	"github.com/dwoz/relenv/pkg/common"
	"github.com/dwoz/relenv/pkg/config"
	"github.com/dwoz/relenv/pkg/logging"
	"github.com/dwoz/relenv/pkg/paths"
	"github.com/dwoz/relenv/pkg/relocate"
)

// fallbackPyVersion is assumed when the distribution carries no build
// metadata.
const fallbackPyVersion = "3.10"

// Start is the process-entry routine: it snapshots the configuration,
// resolves the relocated root from the layer's own location and
// bootstraps the environment. It never fails; a tree it cannot make
// sense of simply gets no virtualization.
func Start() *Environment {
	settings := config.FromEnv()
	logging.SetupDebugLogger(settings.Debug)
	logger := logging.GetLogger("runtime.start")

	platform := paths.CurrentPlatform()

	moduleDir, err := paths.DefaultModuleDir()
	if err != nil {
		logger.Debug().Err(err).Msg("cannot locate own module, using working directory")
		moduleDir, _ = os.Getwd()
	}
	root := paths.ResolveRoot(moduleDir, platform)

	pyVersion := fallbackPyVersion
	if meta, err := config.LoadMetadata(root); err == nil {
		pyVersion = common.MajorVersion(meta.PyVersion)
		if meta.Platform != "" {
			platform = paths.Platform(meta.Platform)
		}
	} else {
		logger.Debug().Err(err).Msg("no build metadata")
	}

	layout := paths.NewLayout(root, platform, pyVersion)
	env := NewEnvironment(settings, layout, relocate.New())
	env.Bootstrap()

	logger.Debug().Str("root", root).Str("platform", string(platform)).Msg("bootstrapped")
	return env
}
