package workflow

import "fmt"

// ArgType enumerates the run-time options a command may carry. Flag
// syntax is the CLI layer's concern; tasks only see this typed bag.
type ArgType int

const (
	// ArgManifest is a path to a local manifest file
	ArgManifest ArgType = iota

	// ArgQuery is the free-text search query
	ArgQuery

	// ArgVersion is the requested package version
	ArgVersion

	// ArgChannel is the requested release channel
	ArgChannel

	// ArgSource names the source to search
	ArgSource

	// ArgSilent requests a fully silent install
	ArgSilent

	// ArgLog is the installer log file path
	ArgLog

	// ArgInstallLocation is the requested install directory
	ArgInstallLocation

	// ArgOverride replaces the entire synthesized argument string
	ArgOverride

	// ArgListVersions requests the version listing in show
	ArgListVersions

	// ArgArchitecture overrides the host architecture for installer selection
	ArgArchitecture
)

var argNames = map[ArgType]string{
	ArgManifest:        "Manifest",
	ArgQuery:           "Query",
	ArgVersion:         "Version",
	ArgChannel:         "Channel",
	ArgSource:          "Source",
	ArgSilent:          "Silent",
	ArgLog:             "Log",
	ArgInstallLocation: "InstallLocation",
	ArgOverride:        "Override",
	ArgListVersions:    "ListVersions",
	ArgArchitecture:    "Architecture",
}

// String returns the option's name
func (a ArgType) String() string {
	if name, ok := argNames[a]; ok {
		return name
	}
	return fmt.Sprintf("ArgType(%d)", int(a))
}

// Args is the typed bag of run-time options for one command execution
type Args struct {
	values map[ArgType]string
}

// NewArgs creates an empty option bag
func NewArgs() *Args {
	return &Args{values: make(map[ArgType]string)}
}

// Add records a boolean option
func (a *Args) Add(t ArgType) {
	a.values[t] = ""
}

// AddWithValue records an option carrying a value
func (a *Args) AddWithValue(t ArgType, value string) {
	a.values[t] = value
}

// Contains reports whether the option was given
func (a *Args) Contains(t ArgType) bool {
	_, ok := a.values[t]
	return ok
}

// Value returns the option's value, or "" when absent or boolean
func (a *Args) Value(t ArgType) string {
	return a.values[t]
}
