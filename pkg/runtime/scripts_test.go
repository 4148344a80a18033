package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwoz/relenv/pkg/common"
	"github.com/dwoz/relenv/pkg/config"
	"github.com/dwoz/relenv/pkg/paths"
)

func loadScriptMaker(t *testing.T, platform paths.Platform, settings *config.Settings) *ScriptMaker {
	t.Helper()

	env, _ := newTestEnv(t, platform, settings)
	env.Bootstrap(WithCertProber(&recordingProber{}))

	mod, err := env.Chain.Import(ModScripts)
	require.NoError(t, err)
	sm, ok := mod.(*ScriptMaker)
	require.True(t, ok)
	return sm
}

func TestBuildShebang(t *testing.T) {
	tests := []struct {
		name     string
		platform paths.Platform
		pipDir   bool
		want     string
	}{
		{
			name:     "windows mode on",
			platform: paths.Win32,
			pipDir:   true,
			want:     `#!<launcher_dir>\Scripts\python.exe`,
		},
		{
			name:     "windows mode off",
			platform: paths.Win32,
			pipDir:   false,
			want:     `#!<launcher_dir>\python.exe`,
		},
		{
			name:     "unix mode on",
			platform: paths.Linux,
			pipDir:   true,
			want:     common.FormatShebang("/bin/python3"),
		},
		{
			name:     "unix mode off",
			platform: paths.Linux,
			pipDir:   false,
			want:     common.FormatShebang("/python3"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := loadScriptMaker(t, tt.platform, &config.Settings{PipDir: tt.pipDir})
			assert.Equal(t, tt.want, string(sm.BuildShebang()))
		})
	}
}

func TestDefaultShebangIsAbsolute(t *testing.T) {
	env, _ := newTestEnv(t, paths.Linux, nil)

	// Without bootstrap the default builder survives, pointing at the
	// stale build-time interpreter.
	mod, err := env.Chain.Import(ModScripts)
	require.NoError(t, err)
	sm := mod.(*ScriptMaker)

	assert.Equal(t, "#!"+buildTimeLayout(env).PythonExe(), string(sm.BuildShebang()))
}
