package runtime

import (
	stderrors "errors"
	"os"
	"os/exec"
	"strings"

	"github.com/dwoz/relenv/pkg/errors"
)

// CertProber discovers the system certificate directory.
type CertProber interface {
	// Discover returns the certificate-authority tool's configured
	// certificate directory
	Discover() (string, error)
}

// opensslProber queries the openssl binary for its configured
// certificate directory.
type opensslProber struct{}

// Discover implements CertProber by parsing `openssl version -d`,
// whose output looks like `OPENSSLDIR: "/usr/lib/ssl"`.
func (p *opensslProber) Discover() (string, error) {
	bin, err := exec.LookPath("openssl")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrNotFound, "could not find the 'openssl' binary in the path")
	}

	cmd := exec.Command(bin, "version", "-d")
	output, err := cmd.Output()
	if err != nil {
		msg := "unable to get the certificates directory from openssl"
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			msg += ": " + strings.TrimSpace(string(exitErr.Stderr))
		}
		return "", errors.Wrap(err, errors.ErrSubprocess, msg)
	}

	return parseOpensslDir(string(output))
}

func parseOpensslDir(output string) (string, error) {
	parts := strings.SplitN(output, ":", 2)
	if len(parts) < 2 {
		return "", errors.Newf(errors.ErrConfigParse, "unexpected openssl output %q", strings.TrimSpace(output))
	}
	return strings.Trim(strings.TrimSpace(parts[1]), `"`), nil
}

// fileExists reports whether path names an existing file.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
