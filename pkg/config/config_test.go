package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	relerrors "github.com/dwoz/relenv/pkg/errors"
)

func TestFromEnviron(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Settings
	}{
		{
			name: "all unset",
			env:  map[string]string{},
			want: Settings{},
		},
		{
			name: "debug and pip dir toggles",
			env: map[string]string{
				EnvDebug:  "1",
				EnvPipDir: "x",
			},
			want: Settings{Debug: true, PipDir: true},
		},
		{
			name: "cross root and trust store",
			env: map[string]string{
				EnvCross:       "/opt/cross",
				EnvSSLCertDir:  "/etc/ssl/certs",
				EnvSSLCertFile: "/etc/ssl/cert.pem",
			},
			want: Settings{
				CrossRoot: "/opt/cross",
				CertDir:   "/etc/ssl/certs",
				CertFile:  "/etc/ssl/cert.pem",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(key string) string { return tt.env[key] }
			got := FromEnviron(getenv)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestSetIfAbsent(t *testing.T) {
	t.Run("sets when unset", func(t *testing.T) {
		key := "RELENV_TEST_UNSET"
		os.Unsetenv(key)
		t.Cleanup(func() { os.Unsetenv(key) })

		require.NoError(t, SetIfAbsent(key, "value"))
		assert.Equal(t, "value", os.Getenv(key))
	})

	t.Run("never overwrites caller value", func(t *testing.T) {
		key := "RELENV_TEST_SET"
		t.Setenv(key, "caller")

		require.NoError(t, SetIfAbsent(key, "layer"))
		assert.Equal(t, "caller", os.Getenv(key))
	})

	t.Run("empty caller value still counts as set", func(t *testing.T) {
		key := "RELENV_TEST_EMPTY"
		t.Setenv(key, "")

		require.NoError(t, SetIfAbsent(key, "layer"))
		assert.Equal(t, "", os.Getenv(key))
	})
}

func TestLoadMetadata(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		root := t.TempDir()
		meta := &Metadata{
			Version:   "0.18.1",
			Platform:  "linux",
			PyVersion: "3.10.14",
			Toolchain: "x86_64-linux-gnu",
		}
		require.NoError(t, WriteMetadata(root, meta))

		got, err := LoadMetadata(root)
		require.NoError(t, err)
		assert.Equal(t, meta, got)
	})

	t.Run("missing file is not found", func(t *testing.T) {
		_, err := LoadMetadata(t.TempDir())
		assert.True(t, relerrors.IsErrorCode(err, relerrors.ErrNotFound))
	})

	t.Run("unparsable metadata", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(root+"/"+MetadataFile, []byte("not = [toml"), 0644))

		_, err := LoadMetadata(root)
		assert.True(t, relerrors.IsErrorCode(err, relerrors.ErrConfigParse))
	})
}
