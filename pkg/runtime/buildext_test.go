package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwoz/relenv/pkg/paths"
)

func TestFinalizeOptionsAppendsRelocatedInclude(t *testing.T) {
	env, _ := newTestEnv(t, paths.Linux, nil)
	env.Bootstrap(WithCertProber(&recordingProber{}))

	mod, err := env.Chain.Import(ModBuildExt)
	require.NoError(t, err)
	be := mod.(*BuildExt)

	opts := &ExtOptions{}
	be.FinalizeOptions(opts)

	// Original logic ran first, relocated include appended last
	require.Len(t, opts.IncludeDirs, 2)
	assert.Equal(t, buildTimeLayout(env).IncludeDir(), opts.IncludeDirs[0])
	assert.Equal(t, env.Layout.IncludeDir(), opts.IncludeDirs[1])
}

func TestFinalizeOptionsKeepsCallerDirs(t *testing.T) {
	env, _ := newTestEnv(t, paths.Linux, nil)
	env.Bootstrap(WithCertProber(&recordingProber{}))

	mod, err := env.Chain.Import(ModBuildExt)
	require.NoError(t, err)
	be := mod.(*BuildExt)

	opts := &ExtOptions{IncludeDirs: []string{"/custom/include"}}
	be.FinalizeOptions(opts)

	assert.Equal(t, []string{"/custom/include", env.Layout.IncludeDir()}, opts.IncludeDirs)
}
