// Package launcher drives the external installation process: shell
// execution for file-based installers, and package deployment for
// MSIX. The workflow only prepares InstallerPath and InstallerArgs;
// everything that actually runs lives here.
package launcher

import (
	"context"
	stderrors "errors"
	"os/exec"
	"strings"

	"github.com/arthur-debert/getpkg/pkg/errors"
	"github.com/arthur-debert/getpkg/pkg/logging"
	"github.com/arthur-debert/getpkg/pkg/msix"
	"github.com/arthur-debert/getpkg/pkg/registry"
)

// Result reports how the external installer process finished
type Result struct {
	ExitCode int
}

// ShellLauncher runs a file-based installer with a synthesized
// argument string
type ShellLauncher interface {
	Launch(ctx context.Context, installerPath, args string) (Result, error)
}

// MsixDeployer installs an MSIX package identified by a URI that is
// either a local file path or a remote https location
type MsixDeployer interface {
	Deploy(ctx context.Context, uri string) error
}

var (
	shellLaunchers = registry.New[ShellLauncher]()
	msixDeployers  = registry.New[MsixDeployer]()
)

// Registered launcher names
const (
	ShellExecuteName   = "shellexecute"
	PlatformDeployName = "platform"
)

func init() {
	registry.MustRegister(shellLaunchers, ShellExecuteName, ShellLauncher(ShellExecute{}))
	registry.MustRegister(msixDeployers, PlatformDeployName, MsixDeployer(PlatformMsixDeployer{}))
}

// Shell returns a registered shell launcher
func Shell(name string) (ShellLauncher, error) {
	return shellLaunchers.Get(name)
}

// Msix returns a registered MSIX deployer
func Msix(name string) (MsixDeployer, error) {
	return msixDeployers.Get(name)
}

// RegisterShell registers a shell launcher implementation
func RegisterShell(name string, l ShellLauncher) error {
	return shellLaunchers.Register(name, l)
}

// RegisterMsix registers an MSIX deployer implementation
func RegisterMsix(name string, d MsixDeployer) error {
	return msixDeployers.Register(name, d)
}

// ShellExecute is the production ShellLauncher: it spawns the
// installer process and waits for it to finish. Step boundaries are
// synchronous, so the process is joined before returning.
type ShellExecute struct{}

// Launch runs installerPath with the given argument string
func (ShellExecute) Launch(ctx context.Context, installerPath, args string) (Result, error) {
	logger := logging.GetLogger("launcher")
	logger.Info().
		Str("installer", installerPath).
		Str("args", args).
		Msg("Launching installer")

	cmd := exec.CommandContext(ctx, installerPath, SplitArgs(args)...)
	err := cmd.Run()
	if err == nil {
		return Result{ExitCode: 0}, nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		// The installer ran and failed; the workflow decides what a
		// non-zero exit means
		return Result{ExitCode: exitErr.ExitCode()}, nil
	}

	return Result{}, errors.Wrapf(err, errors.ErrInstallerFailed,
		"failed to launch installer %s", installerPath)
}

// PlatformMsixDeployer validates the package and hands it to the
// platform deployment service. Local packages have their identity read
// before deployment; remote URIs are deployed by reference.
type PlatformMsixDeployer struct{}

// Deploy installs the MSIX package at uri
func (PlatformMsixDeployer) Deploy(ctx context.Context, uri string) error {
	logger := logging.GetLogger("launcher.msix")

	if IsRemoteURI(uri) {
		logger.Info().Str("uri", uri).Msg("Deploying MSIX package by reference")
	} else {
		identity, err := msix.ReadIdentity(uri)
		if err != nil {
			return err
		}
		logger.Info().
			Str("uri", uri).
			Str("name", identity.Name).
			Str("version", identity.Version).
			Msg("Deploying local MSIX package")
	}

	// Deployment needs the platform package manager; on hosts without
	// one the operation is reported as unimplemented rather than faked
	return errors.New(errors.ErrNotImplemented,
		"MSIX deployment is not available on this host")
}

// IsRemoteURI reports whether the package URI refers to a remote
// location rather than a local file
func IsRemoteURI(uri string) bool {
	return strings.HasPrefix(uri, "https://") || strings.HasPrefix(uri, "http://")
}

// SplitArgs splits a synthesized argument string into argv entries,
// honoring double quotes so paths with spaces survive
func SplitArgs(args string) []string {
	var (
		parts    []string
		current  strings.Builder
		inQuotes bool
		started  bool
	)

	for _, r := range args {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			started = true
		case r == ' ' && !inQuotes:
			if started {
				parts = append(parts, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if started {
		parts = append(parts, current.String())
	}

	return parts
}
