package manifest

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/getpkg/pkg/errors"
	"github.com/arthur-debert/getpkg/pkg/logging"
)

// CreateFromPath loads and validates a manifest from a YAML file
func CreateFromPath(path string) (*Manifest, error) {
	logger := logging.GetLogger("manifest")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to read manifest %s", path)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to parse manifest %s", path)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Str("id", m.ID).
		Str("version", m.Version).
		Int("installers", len(m.Installers)).
		Msg("Loaded manifest")

	return m, nil
}

// Parse decodes manifest YAML without validating it
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestParse, "manifest YAML is malformed")
	}
	return &m, nil
}

// Validate checks the structural invariants a manifest must satisfy
// before the workflow may consume it
func (m *Manifest) Validate() error {
	var missing []string
	if strings.TrimSpace(m.ID) == "" {
		missing = append(missing, "Id")
	}
	if strings.TrimSpace(m.Name) == "" {
		missing = append(missing, "Name")
	}
	if strings.TrimSpace(m.Version) == "" {
		missing = append(missing, "Version")
	}
	if len(missing) > 0 {
		return errors.Newf(errors.ErrManifestInvalid,
			"manifest is missing required fields: %s", strings.Join(missing, ", "))
	}

	if len(m.Installers) == 0 {
		return errors.Newf(errors.ErrManifestInvalid,
			"manifest %s declares no installers", m.ID)
	}

	for idx, inst := range m.Installers {
		if strings.TrimSpace(inst.Arch) == "" {
			return errors.Newf(errors.ErrManifestInvalid,
				"manifest %s installer #%d has no Arch", m.ID, idx)
		}
		if inst.Architecture() == ArchUnknown {
			return errors.Newf(errors.ErrManifestInvalid,
				"manifest %s installer #%d has unrecognized Arch %q", m.ID, idx, inst.Arch)
		}
		if strings.TrimSpace(inst.URL) == "" {
			return errors.Newf(errors.ErrManifestInvalid,
				"manifest %s installer #%d has no Url", m.ID, idx)
		}
	}

	return nil
}
