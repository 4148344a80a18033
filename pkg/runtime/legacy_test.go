package runtime

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwoz/relenv/pkg/paths"
	"github.com/dwoz/relenv/pkg/testutil"
)

func loadLegacyInstaller(t *testing.T, env *Environment) *LegacyInstaller {
	t.Helper()

	env.Bootstrap(WithCertProber(&recordingProber{}))
	mod, err := env.Chain.Import(ModLegacyInstall)
	require.NoError(t, err)
	li, ok := mod.(*LegacyInstaller)
	require.True(t, ok)
	return li
}

// setupLegacyInstall lays out a source dir with PKG-INFO and a purelib
// with an egg-info metadata directory, returning the request.
func setupLegacyInstall(t *testing.T, name, version string) (*LegacyRequest, string) {
	t.Helper()

	srcDir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(srcDir, "PKG-INFO"),
		"Metadata-Version: 1.0\nName: "+name+"\nVersion: "+version+"\n")

	purelib := t.TempDir()
	return &LegacyRequest{
		SetupPath: filepath.Join(srcDir, "setup.py"),
		Scheme:    &Scheme{Purelib: purelib, Platlib: purelib},
	}, purelib
}

func TestLegacyInstallProcessesMatchingEggInfo(t *testing.T) {
	env, rewriter := newTestEnv(t, paths.Linux, nil)
	li := loadLegacyInstaller(t, env)

	req, purelib := setupLegacyInstall(t, "foo", "1.2")

	// Two candidates, only one matches foo-1.2
	matching := filepath.Join(purelib, "foo-1.2-py3.10.egg-info")
	other := filepath.Join(purelib, "foobar-2.0-py3.10.egg-info")

	testutil.WriteELF(t, filepath.Join(purelib, "foo", "_native.so"))
	testutil.WriteFile(t, filepath.Join(matching, "installed-files.txt"),
		"../foo/_native.so\n../foo/__init__.py\n../foo/gone.so\n")
	testutil.WriteFile(t, filepath.Join(matching, "PKG-INFO"), "Name: foo\n")
	testutil.WriteELF(t, filepath.Join(purelib, "foobar", "_other.so"))
	testutil.WriteFile(t, filepath.Join(other, "installed-files.txt"),
		"../foobar/_other.so\n")
	testutil.WriteFile(t, filepath.Join(purelib, "foo", "__init__.py"), "")

	require.NoError(t, li.Install(req))

	// Only the matching directory's manifest was processed
	require.Len(t, rewriter.calls, 1)
	assert.Equal(t, filepath.Join(purelib, "foo", "_native.so"), rewriter.calls[0].path)
	assert.Equal(t, env.Layout.LibDir(), rewriter.calls[0].libDir)
	assert.True(t, rewriter.calls[0].write)
}

func TestLegacyInstallNoEggInfoIsNonFatal(t *testing.T) {
	env, rewriter := newTestEnv(t, paths.Linux, nil)
	li := loadLegacyInstaller(t, env)

	req, _ := setupLegacyInstall(t, "bar", "0.1")

	require.NoError(t, li.Install(req))
	assert.Empty(t, rewriter.calls)
}

func TestLegacyInstallPrefixSiteDir(t *testing.T) {
	env, rewriter := newTestEnv(t, paths.Linux, nil)
	li := loadLegacyInstaller(t, env)

	req, _ := setupLegacyInstall(t, "baz", "2.0")
	req.Prefix = t.TempDir()

	sitePackages := filepath.Join(req.Prefix, "lib", "python3.10", "site-packages")
	testutil.WriteELF(t, filepath.Join(sitePackages, "baz", "_ext.so"))
	testutil.WriteFile(t,
		filepath.Join(sitePackages, "baz-2.0-py3.10.egg-info", "installed-files.txt"),
		"../baz/_ext.so\n")

	require.NoError(t, li.Install(req))

	require.Len(t, rewriter.calls, 1)
	assert.Equal(t, filepath.Join(sitePackages, "baz", "_ext.so"), rewriter.calls[0].path)
}

func TestLegacyInstallMissingPkgInfo(t *testing.T) {
	env, _ := newTestEnv(t, paths.Linux, nil)
	li := loadLegacyInstaller(t, env)

	err := li.Install(&LegacyRequest{
		SetupPath: filepath.Join(t.TempDir(), "setup.py"),
		Scheme:    &Scheme{Purelib: t.TempDir()},
	})
	assert.Error(t, err)
}

func TestReadPkgInfo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PKG-INFO")
	testutil.WriteFile(t, path,
		"Metadata-Version: 2.1\nVersion: 4.5.6\nName: widget\nSummary: things\n")

	name, version, err := readPkgInfo(path)
	require.NoError(t, err)
	assert.Equal(t, "widget", name)
	assert.Equal(t, "4.5.6", version)
}
