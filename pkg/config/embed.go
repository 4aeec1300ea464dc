package config

import _ "embed"

//go:embed defaults.toml
var defaultsTOML []byte

// DefaultsTOML returns the embedded default configuration, verbatim.
// The genconfig command prints it for users to copy from.
func DefaultsTOML() []byte {
	return defaultsTOML
}
