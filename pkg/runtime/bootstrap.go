package runtime

import (
	"path/filepath"
	"strings"

	"github.com/dwoz/relenv/pkg/config"
	"github.com/dwoz/relenv/pkg/logging"
)

// BootstrapOption adjusts bootstrap behavior.
type BootstrapOption func(*bootstrapOptions)

type bootstrapOptions struct {
	prober CertProber
}

// WithCertProber overrides the trust-store discovery mechanism.
func WithCertProber(p CertProber) BootstrapOption {
	return func(o *bootstrapOptions) {
		o.prober = p
	}
}

// Bootstrap prepares the environment for application code: it applies
// cross-target mode, discovers the system trust store and installs the
// importer at the front of the module chain. Runs once per process,
// before anything imports a patch target. Never fails; everything that
// can go wrong here is optional and logged at debug level.
func (env *Environment) Bootstrap(opts ...BootstrapOption) {
	o := &bootstrapOptions{prober: &opensslProber{}}
	for _, opt := range opts {
		opt(o)
	}

	if env.Settings.CrossRoot != "" {
		env.applyCrossRoot()
	}

	if !env.Layout.Platform.WindowsLayout() {
		env.discoverTrustStore(o.prober)
	}

	env.Chain.Prepend(NewImporter(env))
}

// applyCrossRoot points the effective prefixes and the module search
// path at the cross-target root. Search-path entries that are not
// site-local package directories survive the rewrite.
func (env *Environment) applyCrossRoot() {
	logger := logging.GetLogger("runtime.bootstrap")

	crossRoot, err := filepath.Abs(env.Settings.CrossRoot)
	if err != nil {
		logger.Debug().Err(err).Str("root", env.Settings.CrossRoot).Msg("unusable cross root")
		return
	}

	env.Prefix = crossRoot
	env.ExecPrefix = crossRoot

	pythonLib := filepath.Join(crossRoot, "lib", "python"+env.Layout.PyVersion)
	searchPath := []string{
		pythonLib,
		filepath.Join(pythonLib, "lib-dynload"),
		filepath.Join(pythonLib, "site-packages"),
	}
	for _, entry := range env.SearchPath {
		if !strings.Contains(entry, "site-packages") {
			searchPath = append(searchPath, entry)
		}
	}
	env.SearchPath = searchPath

	logger.Debug().Str("root", crossRoot).Msg("cross-target mode")
}

// discoverTrustStore locates the system certificate store and exports
// it, unless the caller already configured one. Failures leave TLS
// verification on whatever the process already had.
func (env *Environment) discoverTrustStore(prober CertProber) {
	logger := logging.GetLogger("runtime.bootstrap")

	if env.Settings.CertDir != "" {
		logger.Debug().Str("dir", env.Settings.CertDir).Msg("trust store already configured")
		return
	}

	dir, err := prober.Discover()
	if err != nil {
		logger.Debug().Err(err).Msg("trust store discovery failed")
		return
	}

	certDir := filepath.Join(dir, "certs")
	if err := config.SetIfAbsent(config.EnvSSLCertDir, certDir); err != nil {
		logger.Debug().Err(err).Msg("failed to export trust-store directory")
		return
	}
	env.Settings.CertDir = certDir
	logger.Debug().Str("dir", certDir).Msg("trust store configured")

	certFile := filepath.Join(dir, "cert.pem")
	if fileExists(certFile) && env.Settings.CertFile == "" {
		if err := config.SetIfAbsent(config.EnvSSLCertFile, certFile); err != nil {
			logger.Debug().Err(err).Msg("failed to export trust-store file")
			return
		}
		env.Settings.CertFile = certFile
		logger.Debug().Str("file", certFile).Msg("trust-store bundle configured")
	}
}
