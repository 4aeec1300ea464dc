// Package config loads getpkg's layered settings: embedded defaults,
// then the user's config file, then GETPKG_ environment variables,
// each layer overriding the previous one.
package config

import (
	"os"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/getpkg/pkg/errors"
	"github.com/arthur-debert/getpkg/pkg/manifest"
	"github.com/arthur-debert/getpkg/pkg/paths"
	"github.com/arthur-debert/getpkg/pkg/sources"
)

// EnvPrefix namespaces getpkg's environment overrides
const EnvPrefix = "GETPKG_"

// SourceSettings configures one named source
type SourceSettings struct {
	Type string `koanf:"type" toml:"type"`
	Path string `koanf:"path" toml:"path"`
}

// Settings is the typed view of the merged configuration
type Settings struct {
	Source struct {
		Default string `koanf:"default" toml:"default"`
	} `koanf:"source" toml:"source"`

	Sources map[string]SourceSettings `koanf:"sources" toml:"sources"`

	Install struct {
		Architecture string `koanf:"architecture" toml:"architecture"`
		Silent       bool   `koanf:"silent" toml:"silent"`
	} `koanf:"install" toml:"install"`

	Logging struct {
		Verbosity int `koanf:"verbosity" toml:"verbosity"`
	} `koanf:"logging" toml:"logging"`
}

// Load builds the merged Settings from defaults, the user config file
// (if present) and environment variables
func Load() (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(rawBytesProvider{bytes: defaultsTOML}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load built-in defaults")
	}

	configFile := paths.ConfigFile()
	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load %s", configFile)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envToKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var settings Settings
	if err := k.Unmarshal("", &settings); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "configuration does not match the expected shape")
	}

	return &settings, nil
}

// envToKey maps GETPKG_INSTALL_SILENT to install.silent
func envToKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
}

// Architecture returns the configured architecture preference, or
// unknown (= host) when none is set
func (s *Settings) Architecture() manifest.Architecture {
	if strings.TrimSpace(s.Install.Architecture) == "" {
		return manifest.ArchUnknown
	}
	return manifest.ParseArchitecture(s.Install.Architecture)
}

// SourceConfigs returns the configured sources in registration order:
// the default source first, the rest in name order. An empty local
// path resolves to the XDG manifest directory.
func (s *Settings) SourceConfigs() []sources.Config {
	names := make([]string, 0, len(s.Sources))
	for name := range s.Sources {
		if name != s.Source.Default {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := s.Sources[s.Source.Default]; ok {
		names = append([]string{s.Source.Default}, names...)
	}

	configs := make([]sources.Config, 0, len(names))
	for _, name := range names {
		src := s.Sources[name]
		path := src.Path
		if src.Type == sources.TypeLocal && strings.TrimSpace(path) == "" {
			path = paths.DefaultManifestDir()
		}
		configs = append(configs, sources.Config{Name: name, Type: src.Type, Path: path})
	}
	return configs
}

// MarshalTOML serializes the effective settings back to TOML; the
// genconfig command uses it to emit a ready-to-edit file
func (s *Settings) MarshalTOML() ([]byte, error) {
	data, err := gotoml.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to serialize settings")
	}
	return data, nil
}

// rawBytesProvider feeds in-memory bytes to koanf
type rawBytesProvider struct {
	bytes []byte
}

func (p rawBytesProvider) ReadBytes() ([]byte, error) {
	return p.bytes, nil
}

func (p rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrNotImplemented, "rawBytesProvider provides bytes only")
}
