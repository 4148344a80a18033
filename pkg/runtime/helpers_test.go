package runtime

import (
	"os"
	"testing"

	"github.com/dwoz/relenv/pkg/config"
	"github.com/dwoz/relenv/pkg/paths"
	"github.com/dwoz/relenv/pkg/relocate"
)

// recordingRewriter captures rewrite calls instead of patching files.
type recordingRewriter struct {
	calls []rewriteCall
}

type rewriteCall struct {
	path   string
	libDir string
	write  bool
	root   string
}

func (r *recordingRewriter) IsBinary(path string) (bool, error) {
	return relocate.IsBinary(path)
}

func (r *recordingRewriter) Rewrite(path, libDir string, write bool, root string) error {
	r.calls = append(r.calls, rewriteCall{path: path, libDir: libDir, write: write, root: root})
	return nil
}

// recordingProber counts trust-store discovery attempts.
type recordingProber struct {
	calls int
	dir   string
	err   error
}

func (p *recordingProber) Discover() (string, error) {
	p.calls++
	return p.dir, p.err
}

// newTestEnv builds an environment over a temp root with a recording
// rewriter.
func newTestEnv(t *testing.T, platform paths.Platform, settings *config.Settings) (*Environment, *recordingRewriter) {
	t.Helper()

	if settings == nil {
		settings = &config.Settings{}
	}
	rewriter := &recordingRewriter{}
	layout := paths.NewLayout(t.TempDir(), platform, "3.10")
	return NewEnvironment(settings, layout, rewriter), rewriter
}

// unsetEnv removes a variable for the test's duration, restoring the
// original value afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()

	orig, had := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, orig)
		} else {
			os.Unsetenv(key)
		}
	})
}
