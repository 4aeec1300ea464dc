// Package testutil provides the fixture manifests, test source and
// override helpers shared by workflow, flow and command tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/getpkg/pkg/manifest"
	"github.com/stretchr/testify/require"
)

// Fixture package identities. Tests assert on these strings.
const (
	FixtureID      = "GetpkgTest.TestInstaller"
	FixtureName    = "Getpkg Test Installer"
	FixtureVersion = "1.0.0.0"
	FixtureURL     = "https://ThisIsNotUsed"

	SecondFixtureID   = "GetpkgTest.SecondInstaller"
	SecondFixtureName = "Getpkg Second Installer"
)

// HostArch returns the running host's architecture as manifest text
func HostArch() string {
	return string(manifest.HostArchitecture())
}

// InapplicableArch returns an architecture no installer on this host
// can run, for the no-applicable-installer fixtures
func InapplicableArch() string {
	if manifest.ArchArm64.CompatibleWith(manifest.HostArchitecture()) {
		return string(manifest.ArchX64)
	}
	return string(manifest.ArchArm64)
}

// ExeManifestYAML is the baseline exe fixture: custom and
// silent-with-progress switches declared, applicable on any host
func ExeManifestYAML() string {
	return fmt.Sprintf(`Id: %s
Name: %s
Version: %s
Author: Getpkg Tests
License: MIT
Description: A test installer that does nothing.
Installers:
  - Arch: %s
    Url: %s
    InstallerType: exe
    Switches:
      Custom: /custom
      SilentWithProgress: /silentwithprogress
`, FixtureID, FixtureName, FixtureVersion, HostArch(), FixtureURL)
}

// SecondManifestYAML is a second well-formed package, used to produce
// multi-match search results
func SecondManifestYAML() string {
	return fmt.Sprintf(`Id: %s
Name: %s
Version: 2.0.0
Channel: beta
Installers:
  - Arch: neutral
    Url: https://example.com/second.exe
    InstallerType: exe
`, SecondFixtureID, SecondFixtureName)
}

// NoApplicableArchYAML declares only installers this host cannot run
func NoApplicableArchYAML() string {
	return fmt.Sprintf(`Id: %s
Name: %s
Version: %s
Installers:
  - Arch: %s
    Url: %s
    InstallerType: exe
`, FixtureID, FixtureName, FixtureVersion, InapplicableArch(), FixtureURL)
}

// MsiNoSwitchesYAML declares an msi installer without custom switches
func MsiNoSwitchesYAML() string {
	return fmt.Sprintf(`Id: %s
Name: %s
Version: %s
Installers:
  - Arch: %s
    Url: https://example.com/installer.msi
    InstallerType: msi
`, FixtureID, FixtureName, FixtureVersion, HostArch())
}

// MsiWithSwitchesYAML declares an msi installer whose manifest
// switches supersede every built-in default
func MsiWithSwitchesYAML() string {
	return fmt.Sprintf(`Id: %s
Name: %s
Version: %s
Installers:
  - Arch: %s
    Url: https://example.com/installer.msi
    InstallerType: msi
    Switches:
      Custom: /mycustom
      Silent: /mysilent
      SilentWithProgress: /mysilentwithprogress
      Log: /mylog="<LOGPATH>"
      InstallLocation: /myinstalldir="<INSTALLPATH>"
`, FixtureID, FixtureName, FixtureVersion, HostArch())
}

// MsixLocalYAML declares an msix installer whose package is a local
// file (the download flow)
func MsixLocalYAML(packagePath string) string {
	return fmt.Sprintf(`Id: %s
Name: %s
Version: %s
Installers:
  - Arch: %s
    Url: %s
    InstallerType: msix
`, FixtureID, FixtureName, FixtureVersion, HostArch(), packagePath)
}

// MsixStreamingYAML declares an msix installer deployed straight from
// its https location (the streaming flow)
func MsixStreamingYAML() string {
	return fmt.Sprintf(`Id: %s
Name: %s
Version: %s
Installers:
  - Arch: %s
    Url: https://example.com/streaming.msix
    InstallerType: msix
`, FixtureID, FixtureName, FixtureVersion, HostArch())
}

// MustParse parses fixture YAML, panicking on error since a broken
// fixture is a bug in the tests themselves
func MustParse(yaml string) *manifest.Manifest {
	m, err := manifest.Parse([]byte(yaml))
	if err != nil {
		panic(fmt.Sprintf("testutil: broken fixture manifest: %v", err))
	}
	if err := m.Validate(); err != nil {
		panic(fmt.Sprintf("testutil: invalid fixture manifest: %v", err))
	}
	return m
}

// WriteManifest writes fixture YAML into dir and returns its path
func WriteManifest(t *testing.T, dir, name, yaml string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
	return path
}
