// Package relocate patches dynamically linked files so their embedded
// library search paths stay valid after the distribution tree is moved.
// Installer post-processing consumes it through the Rewriter interface;
// the default implementation shells out to patchelf and
// install_name_tool the way the build pipeline does.
package relocate

import (
	"bytes"
	"os"

	"github.com/dwoz/relenv/pkg/errors"
	"github.com/dwoz/relenv/pkg/logging"
)

// Rewriter detects dynamically linked files and rewrites their library
// search path relative to a library directory inside the given root.
type Rewriter interface {
	// IsBinary reports whether the file is a dynamically linkable
	// binary format (ELF or Mach-O)
	IsBinary(path string) (bool, error)

	// Rewrite points the file's library search path at libDir. When
	// write is false the rewrite is computed but not applied. Paths
	// outside root are left alone.
	Rewrite(path, libDir string, write bool, root string) error
}

// Binary format magics
var (
	elfMagic      = []byte{0x7f, 'E', 'L', 'F'}
	machoMagic64  = []byte{0xcf, 0xfa, 0xed, 0xfe}
	machoCigam64  = []byte{0xfe, 0xed, 0xfa, 0xcf}
	machoFatMagic = []byte{0xca, 0xfe, 0xba, 0xbe}
)

// binaryKind classifies a file header
type binaryKind int

const (
	kindNone binaryKind = iota
	kindELF
	kindMachO
)

// detectKind reads the file header and classifies the format.
func detectKind(path string) (binaryKind, error) {
	f, err := os.Open(path)
	if err != nil {
		return kindNone, errors.Wrapf(err, errors.ErrFileAccess, "failed to open %s", path)
	}
	defer f.Close()

	magic := make([]byte, 4)
	n, err := f.Read(magic)
	if err != nil || n < 4 {
		// Too short to be a binary
		return kindNone, nil
	}

	switch {
	case bytes.Equal(magic, elfMagic):
		return kindELF, nil
	case bytes.Equal(magic, machoMagic64), bytes.Equal(magic, machoCigam64), bytes.Equal(magic, machoFatMagic):
		return kindMachO, nil
	}
	return kindNone, nil
}

// IsBinary reports whether the file at path is an ELF or Mach-O binary.
// Exposed for callers that only need detection.
func IsBinary(path string) (bool, error) {
	kind, err := detectKind(path)
	if err != nil {
		return false, err
	}
	return kind != kindNone, nil
}

// rewriter is the default patchelf/install_name_tool implementation.
type rewriter struct{}

// New creates the default Rewriter.
func New() Rewriter {
	return &rewriter{}
}

// IsBinary implements Rewriter.
func (r *rewriter) IsBinary(path string) (bool, error) {
	return IsBinary(path)
}

// Rewrite implements Rewriter.
func (r *rewriter) Rewrite(path, libDir string, write bool, root string) error {
	logger := logging.GetLogger("relocate")

	kind, err := detectKind(path)
	if err != nil {
		return err
	}

	switch kind {
	case kindELF:
		return r.rewriteELF(path, libDir, write, root)
	case kindMachO:
		return r.rewriteMachO(path, libDir, write, root)
	default:
		logger.Debug().Str("path", path).Msg("not a dynamically linked file, skipping")
		return nil
	}
}
