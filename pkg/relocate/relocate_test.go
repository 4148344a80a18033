package relocate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwoz/relenv/pkg/testutil"
)

func TestIsBinary(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"elf", "\x7fELF\x02\x01\x01\x00", true},
		{"macho 64", "\xcf\xfa\xed\xfe rest", true},
		{"macho swapped", "\xfe\xed\xfa\xcf rest", true},
		{"macho fat", "\xca\xfe\xba\xbe rest", true},
		{"python source", "import sys\n", false},
		{"shell script", "#!/bin/sh\necho hi\n", false},
		{"short file", "ab", false},
		{"empty file", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			testutil.WriteFile(t, path, tt.content)

			got, err := IsBinary(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsBinaryMissingFile(t *testing.T) {
	_, err := IsBinary(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestOriginRelative(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		libDir string
		want   string
	}{
		{
			name:   "site-packages extension",
			path:   "/opt/relenv/lib/python3.10/site-packages/foo/_foo.so",
			libDir: "/opt/relenv/lib",
			want:   "$ORIGIN/../../../..",
		},
		{
			name:   "library beside libDir",
			path:   "/opt/relenv/lib/libssl.so",
			libDir: "/opt/relenv/lib",
			want:   "$ORIGIN",
		},
		{
			name:   "binary in bin",
			path:   "/opt/relenv/bin/python3",
			libDir: "/opt/relenv/lib",
			want:   "$ORIGIN/../lib",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := originRelative(tt.path, tt.libDir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeRpath(t *testing.T) {
	root := "/opt/relenv"

	tests := []struct {
		name     string
		current  string
		relative string
		want     string
	}{
		{
			name:     "build machine path dropped",
			current:  "/build/relenv/lib",
			relative: "$ORIGIN/../lib",
			want:     "$ORIGIN/../lib",
		},
		{
			name:     "existing origin entry preserved",
			current:  "$ORIGIN/../vendored",
			relative: "$ORIGIN/../lib",
			want:     "$ORIGIN/../lib:$ORIGIN/../vendored",
		},
		{
			name:     "duplicate of wanted entry collapsed",
			current:  "$ORIGIN/../lib:/usr/lib",
			relative: "$ORIGIN/../lib",
			want:     "$ORIGIN/../lib",
		},
		{
			name:     "empty current",
			current:  "",
			relative: "$ORIGIN/../lib",
			want:     "$ORIGIN/../lib",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeRpath(tt.current, tt.relative, root))
		})
	}
}
