package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/dwoz/relenv/pkg/errors"
)

// MetadataFile is the name of the build metadata file the artifact
// producer writes at the distribution root.
const MetadataFile = ".relenv"

// Metadata describes the build that produced the distribution tree.
type Metadata struct {
	// Version is the relenv version that built the tree
	Version string `toml:"version"`

	// Platform is the build target platform ("win32", "linux", "darwin")
	Platform string `toml:"platform"`

	// PyVersion is the full python version, e.g. "3.10.14"
	PyVersion string `toml:"py_version"`

	// Toolchain names the cross toolchain used for the build, if any
	Toolchain string `toml:"toolchain,omitempty"`
}

// LoadMetadata reads the build metadata file from the given root.
// A missing file returns ErrNotFound; callers treat that as a
// pre-metadata distribution, not a fault.
func LoadMetadata(root string) (*Metadata, error) {
	path := filepath.Join(root, MetadataFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrNotFound, "no build metadata at %s", path)
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", path)
	}

	var meta Metadata
	if err := toml.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path)
	}

	return &meta, nil
}

// WriteMetadata writes the build metadata file to the given root. Used
// by tooling that assembles or repairs a distribution tree.
func WriteMetadata(root string, meta *Metadata) error {
	data, err := toml.Marshal(meta)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode build metadata")
	}

	path := filepath.Join(root, MetadataFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to write %s", path)
	}

	return nil
}
