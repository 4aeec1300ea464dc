// Package installer selects the applicable installer entry from a
// manifest and synthesizes the technology-specific command line for
// the external install process.
package installer

import (
	"github.com/arthur-debert/getpkg/pkg/logging"
	"github.com/arthur-debert/getpkg/pkg/manifest"
)

// applicability ranks how well an installer's architecture fits the
// requested one. Lower is better; -1 means not applicable.
func applicability(target, requested manifest.Architecture) int {
	switch {
	case target == requested:
		return 0
	case target != manifest.ArchNeutral && target.CompatibleWith(requested):
		return 1
	case target == manifest.ArchNeutral:
		return 2
	default:
		return -1
	}
}

// SelectApplicable picks the installer entry best matching the
// requested architecture. Pass manifest.ArchUnknown to use the host
// architecture. Preference: exact match, then compatible (x86 on x64,
// arm on arm64), then neutral; ties are broken by manifest declaration
// order. Returns false when no entry is applicable.
func SelectApplicable(m *manifest.Manifest, requested manifest.Architecture) (manifest.Installer, bool) {
	logger := logging.GetLogger("installer")

	if requested == manifest.ArchUnknown {
		requested = manifest.HostArchitecture()
	}

	best := -1
	var selected manifest.Installer
	for _, inst := range m.Installers {
		rank := applicability(inst.Architecture(), requested)
		if rank < 0 {
			continue
		}
		// Strict less-than keeps the first declared entry on ties
		if best < 0 || rank < best {
			best = rank
			selected = inst
		}
	}

	if best < 0 {
		logger.Debug().
			Str("manifest", m.ID).
			Str("requested", string(requested)).
			Msg("No applicable installer")
		return manifest.Installer{}, false
	}

	logger.Debug().
		Str("manifest", m.ID).
		Str("requested", string(requested)).
		Str("selected", selected.Arch).
		Str("type", string(selected.Type(m.DefaultInstallerType()))).
		Msg("Selected installer")
	return selected, true
}
