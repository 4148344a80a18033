package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwoz/relenv/pkg/config"
	"github.com/dwoz/relenv/pkg/paths"
)

// loadSysconfig bootstraps an environment and imports the patched
// configuration module.
func loadSysconfig(t *testing.T, platform paths.Platform, settings *config.Settings) (*Environment, *Sysconfig) {
	t.Helper()

	env, _ := newTestEnv(t, platform, settings)
	env.Bootstrap(WithCertProber(&recordingProber{}))

	mod, err := env.Chain.Import(ModSysconfig)
	require.NoError(t, err)
	sc, ok := mod.(*Sysconfig)
	require.True(t, ok)
	return env, sc
}

func TestConfigVarBinDir(t *testing.T) {
	t.Run("mode off returns scripts directory", func(t *testing.T) {
		env, sc := loadSysconfig(t, paths.Linux, nil)
		assert.Equal(t, env.Layout.BinDir(), sc.ConfigVar("BINDIR"))
	})

	t.Run("mode off on windows layout", func(t *testing.T) {
		env, sc := loadSysconfig(t, paths.Win32, nil)
		assert.Equal(t, env.Layout.BinDir(), sc.ConfigVar("BINDIR"))
		assert.Contains(t, sc.ConfigVar("BINDIR"), "Scripts")
	})

	t.Run("mode on returns bare root", func(t *testing.T) {
		env, sc := loadSysconfig(t, paths.Linux, &config.Settings{PipDir: true})
		assert.Equal(t, env.Layout.Root, sc.ConfigVar("BINDIR"))
	})
}

func TestConfigVarPassthrough(t *testing.T) {
	env, sc := loadSysconfig(t, paths.Linux, nil)

	// Any other variable keeps its compiled-in value
	build := buildTimeLayout(env)
	assert.Equal(t, build.IncludeDir(), sc.ConfigVar("INCLUDEPY"))
	assert.Equal(t, env.BuildPrefix, sc.ConfigVar("prefix"))
	assert.Equal(t, "", sc.ConfigVar("NOSUCHVAR"))
}

func TestGetPaths(t *testing.T) {
	t.Run("mode off leaves scripts alone", func(t *testing.T) {
		env, sc := loadSysconfig(t, paths.Linux, nil)

		pathSet := sc.Paths("")
		build := buildTimeLayout(env)
		assert.Equal(t, build.BinDir(), pathSet["scripts"])
		assert.Equal(t, env.Layout.Root, env.ExecPrefix, "exec prefix untouched")
	})

	t.Run("mode on overrides scripts and exec prefix", func(t *testing.T) {
		env, sc := loadSysconfig(t, paths.Linux, &config.Settings{PipDir: true})

		pathSet := sc.Paths("")
		assert.Equal(t, env.Layout.Root, pathSet["scripts"])
		assert.Equal(t, env.Layout.Root, env.ExecPrefix)
	})
}

func TestPipUseSysconfigSet(t *testing.T) {
	_, sc := loadSysconfig(t, paths.Linux, nil)
	assert.True(t, sc.PipUseSysconfig)
}

func TestDefaultSchemeName(t *testing.T) {
	_, sc := loadSysconfig(t, paths.Linux, nil)
	assert.Equal(t, "posix_prefix", sc.GetDefaultScheme())

	_, scWin := loadSysconfig(t, paths.Win32, nil)
	assert.Equal(t, "nt", scWin.GetDefaultScheme())
}

// modernHost and legacyHost model the two accessor generations.
type modernHost struct{ Module }

func (modernHost) GetDefaultScheme() string { return "modern" }

type legacyHost struct{ Module }

func (legacyHost) DefaultScheme() string { return "legacy" }

type schemelessHost struct{ Module }

func TestSchemeAccessorFallback(t *testing.T) {
	assert.Equal(t, "modern", schemeOf(modernHost{}))
	assert.Equal(t, "legacy", schemeOf(legacyHost{}))

	assert.Panics(t, func() { schemeOf(schemelessHost{}) })
}
