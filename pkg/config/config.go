// Package config provides the runtime layer's configuration surface.
// All knobs are optional process environment variables owned by the
// caller; the layer snapshots them once at startup and passes the
// resulting Settings value into every component instead of reading
// process state ad hoc.
package config

import "os"

// Environment variable names
const (
	// EnvDebug enables debug tracing when set to any non-empty value
	EnvDebug = "RELENV_DEBUG"

	// EnvPipDir enables package-manager directory mode, where pip is
	// given the bare install root instead of the scripts subdirectory
	EnvPipDir = "RELENV_PIP_DIR"

	// EnvCross points at an alternate root to install packages into
	// when cross building
	EnvCross = "RELENV_CROSS"

	// EnvSSLCertDir is the OpenSSL certificate directory override
	EnvSSLCertDir = "SSL_CERT_DIR"

	// EnvSSLCertFile is the OpenSSL certificate bundle override
	EnvSSLCertFile = "SSL_CERT_FILE"
)

// Settings is the process-wide configuration snapshot. It is captured
// once during bootstrap and never mutated afterwards.
type Settings struct {
	// Debug enables debug tracing
	Debug bool

	// PipDir is the package-manager directory mode toggle
	PipDir bool

	// CrossRoot is the cross-target install root, empty when not cross
	// building
	CrossRoot string

	// CertDir is the trust-store directory, empty when unset
	CertDir string

	// CertFile is the trust-store bundle file, empty when unset
	CertFile string
}

// FromEnv captures Settings from the process environment.
func FromEnv() *Settings {
	return FromEnviron(os.Getenv)
}

// FromEnviron captures Settings using the given lookup function. Tests
// supply their own lookup to avoid touching the real environment.
func FromEnviron(getenv func(string) string) *Settings {
	return &Settings{
		Debug:     getenv(EnvDebug) != "",
		PipDir:    getenv(EnvPipDir) != "",
		CrossRoot: getenv(EnvCross),
		CertDir:   getenv(EnvSSLCertDir),
		CertFile:  getenv(EnvSSLCertFile),
	}
}

// SetIfAbsent writes an environment variable only when the caller has
// not already set it. Variables owned by the caller are never
// overwritten by this layer.
func SetIfAbsent(key, value string) error {
	if _, ok := os.LookupEnv(key); ok {
		return nil
	}
	return os.Setenv(key, value)
}
