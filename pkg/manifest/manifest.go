// Package manifest defines the package manifest model: a declarative
// description of a package, its version, and its installer variants.
package manifest

import (
	"runtime"
	"strings"
)

// InstallerType identifies the technology used by an installer entry
type InstallerType string

const (
	InstallerTypeExe      InstallerType = "exe"
	InstallerTypeMsi      InstallerType = "msi"
	InstallerTypeWix      InstallerType = "wix"
	InstallerTypeInno     InstallerType = "inno"
	InstallerTypeNullsoft InstallerType = "nullsoft"
	InstallerTypeBurn     InstallerType = "burn"
	InstallerTypeMsix     InstallerType = "msix"
	InstallerTypeUnknown  InstallerType = "unknown"
)

// ParseInstallerType normalizes a manifest-declared installer type
func ParseInstallerType(s string) InstallerType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exe":
		return InstallerTypeExe
	case "msi":
		return InstallerTypeMsi
	case "wix":
		return InstallerTypeWix
	case "inno":
		return InstallerTypeInno
	case "nullsoft":
		return InstallerTypeNullsoft
	case "burn":
		return InstallerTypeBurn
	case "msix", "appx":
		return InstallerTypeMsix
	default:
		return InstallerTypeUnknown
	}
}

// Architecture identifies the processor architecture an installer targets
type Architecture string

const (
	ArchX64     Architecture = "x64"
	ArchX86     Architecture = "x86"
	ArchArm64   Architecture = "arm64"
	ArchArm     Architecture = "arm"
	ArchNeutral Architecture = "neutral"
	ArchUnknown Architecture = "unknown"
)

// ParseArchitecture normalizes a manifest-declared architecture
func ParseArchitecture(s string) Architecture {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x64", "amd64", "x86-64", "x86_64":
		return ArchX64
	case "x86", "386", "i386":
		return ArchX86
	case "arm64", "aarch64":
		return ArchArm64
	case "arm":
		return ArchArm
	case "neutral", "any":
		return ArchNeutral
	default:
		return ArchUnknown
	}
}

// HostArchitecture returns the architecture of the running host
func HostArchitecture() Architecture {
	switch runtime.GOARCH {
	case "amd64":
		return ArchX64
	case "386":
		return ArchX86
	case "arm64":
		return ArchArm64
	case "arm":
		return ArchArm
	default:
		return ArchUnknown
	}
}

// CompatibleWith reports whether an installer targeting a runs on host.
// Neutral installers run everywhere; 32-bit variants run on their
// 64-bit counterparts.
func (a Architecture) CompatibleWith(host Architecture) bool {
	if a == ArchNeutral || a == host {
		return true
	}
	switch host {
	case ArchX64:
		return a == ArchX86
	case ArchArm64:
		return a == ArchArm
	}
	return false
}

// Switches holds the installer-technology-specific command line
// switches declared by a manifest. Log and InstallLocation values may
// contain the <LOGPATH> and <INSTALLPATH> tokens, replaced at argument
// synthesis time.
type Switches struct {
	Custom             string `yaml:"Custom,omitempty"`
	Silent             string `yaml:"Silent,omitempty"`
	SilentWithProgress string `yaml:"SilentWithProgress,omitempty"`
	Interactive        string `yaml:"Interactive,omitempty"`
	Log                string `yaml:"Log,omitempty"`
	InstallLocation    string `yaml:"InstallLocation,omitempty"`
}

// IsEmpty reports whether no switch is declared
func (s Switches) IsEmpty() bool {
	return s == Switches{}
}

// Installer is one technology/architecture-specific way to install a
// manifest version
type Installer struct {
	Arch          string   `yaml:"Arch"`
	URL           string   `yaml:"Url"`
	Sha256        string   `yaml:"Sha256,omitempty"`
	InstallerType string   `yaml:"InstallerType,omitempty"`
	Language      string   `yaml:"Language,omitempty"`
	Scope         string   `yaml:"Scope,omitempty"`
	Switches      Switches `yaml:"Switches,omitempty"`
}

// Architecture returns the normalized target architecture
func (i Installer) Architecture() Architecture {
	return ParseArchitecture(i.Arch)
}

// Type returns the normalized installer technology, falling back to
// the manifest-level default when the entry declares none
func (i Installer) Type(fallback InstallerType) InstallerType {
	if strings.TrimSpace(i.InstallerType) == "" {
		return fallback
	}
	return ParseInstallerType(i.InstallerType)
}

// VersionAndChannel pairs a package version with its release channel
type VersionAndChannel struct {
	Version string
	Channel string
}

// Manifest identifies a package and enumerates its installer entries
type Manifest struct {
	ID            string      `yaml:"Id"`
	Name          string      `yaml:"Name"`
	Version       string      `yaml:"Version"`
	Channel       string      `yaml:"Channel,omitempty"`
	Publisher     string      `yaml:"Publisher,omitempty"`
	Moniker       string      `yaml:"AppMoniker,omitempty"`
	Author        string      `yaml:"Author,omitempty"`
	License       string      `yaml:"License,omitempty"`
	Description   string      `yaml:"Description,omitempty"`
	Homepage      string      `yaml:"Homepage,omitempty"`
	InstallerType string      `yaml:"InstallerType,omitempty"`
	Installers    []Installer `yaml:"Installers"`
}

// DefaultInstallerType returns the manifest-level installer technology
// default, or unknown when none is declared
func (m *Manifest) DefaultInstallerType() InstallerType {
	if strings.TrimSpace(m.InstallerType) == "" {
		return InstallerTypeUnknown
	}
	return ParseInstallerType(m.InstallerType)
}

// VersionAndChannel returns the manifest's version/channel pair
func (m *Manifest) VersionAndChannel() VersionAndChannel {
	return VersionAndChannel{Version: m.Version, Channel: m.Channel}
}
