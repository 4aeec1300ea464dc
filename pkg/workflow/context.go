// Package workflow implements the execution engine at the core of
// getpkg: a typed per-command Context threaded through an ordered
// pipeline of named tasks, with an override hook consulted before each
// task and a set-once termination status that short-circuits the rest
// of the pipeline.
package workflow

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/getpkg/pkg/errors"
	"github.com/arthur-debert/getpkg/pkg/logging"
)

// Data enumerates the keys of the Context's data bag. The key set is
// closed: every value a task may publish for a later task has a key
// here.
type Data int

const (
	// DataSource is the opened package source (sources.Source)
	DataSource Data = iota

	// DataSearchResult is the result of querying the source (sources.SearchResult)
	DataSearchResult

	// DataManifest is the resolved package manifest (*manifest.Manifest)
	DataManifest

	// DataInstaller is the selected installer entry (manifest.Installer)
	DataInstaller

	// DataInstallerPath is the local path of the downloaded installer (string)
	DataInstallerPath

	// DataHashPair is the expected/actual checksum pair (downloader.HashPair)
	DataHashPair

	// DataInstallerArgs is the synthesized installer command line (string)
	DataInstallerArgs

	// DataInstallResult is the installer process exit code (int)
	DataInstallResult
)

var dataNames = map[Data]string{
	DataSource:        "Source",
	DataSearchResult:  "SearchResult",
	DataManifest:      "Manifest",
	DataInstaller:     "Installer",
	DataInstallerPath: "InstallerPath",
	DataHashPair:      "HashPair",
	DataInstallerArgs: "InstallerArgs",
	DataInstallResult: "InstallResult",
}

// String returns the key's name
func (d Data) String() string {
	if name, ok := dataNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Data(%d)", int(d))
}

// Termination is the single terminal outcome of a command execution
type Termination struct {
	Code    errors.ErrorCode
	Message string
}

// Context is the single-owner data carrier for one command execution.
// It is not a synchronization primitive: exactly one pipeline runs
// against it at a time, and it must never be shared across concurrent
// commands.
type Context struct {
	// Out receives user-facing status text
	Out io.Writer

	// Args holds the run-time options for this command
	Args *Args

	hook        OverrideHook
	logger      zerolog.Logger
	data        map[Data]any
	termination *Termination
}

// NewContext creates a Context writing user-facing output to out.
// The override hook defaults to NopHook (no substitutions).
func NewContext(out io.Writer) *Context {
	return &Context{
		Out:    out,
		Args:   NewArgs(),
		hook:   NopHook{},
		logger: logging.GetLogger("workflow"),
		data:   make(map[Data]any),
	}
}

// SetHook installs the override hook consulted before every task
func (c *Context) SetHook(hook OverrideHook) {
	if hook == nil {
		hook = NopHook{}
	}
	c.hook = hook
}

// Add inserts or replaces the value for key
func (c *Context) Add(key Data, value any) {
	c.data[key] = value
}

// Contains reports whether key has been populated. It is the only safe
// probe before a conditional Get.
func (c *Context) Contains(key Data) bool {
	_, ok := c.data[key]
	return ok
}

// Get retrieves the value for key. Reading an absent key, or reading
// it as the wrong type, is a contract violation between tasks and
// panics rather than returning a recoverable error.
func Get[T any](c *Context, key Data) T {
	raw, ok := c.data[key]
	if !ok {
		panic(fmt.Sprintf("workflow: context key %s read before being populated", key))
	}
	value, ok := raw.(T)
	if !ok {
		panic(fmt.Sprintf("workflow: context key %s holds %T, requested %T", key, raw, value))
	}
	return value
}

// Terminate sets the terminal status exactly once. Later calls never
// overwrite the first termination; they log a warning and are ignored.
func (c *Context) Terminate(code errors.ErrorCode, message string) {
	if c.termination != nil {
		c.logger.Warn().
			Str("existing", string(c.termination.Code)).
			Str("ignored", string(code)).
			Msg("Terminate called on an already-terminated context")
		return
	}
	c.termination = &Termination{Code: code, Message: message}
	c.logger.Debug().
		Str("code", string(code)).
		Str("message", message).
		Msg("Context terminated")
}

// IsTerminated reports whether the terminal status has been set
func (c *Context) IsTerminated() bool {
	return c.termination != nil
}

// Termination returns the terminal status, or nil while running
func (c *Context) Termination() *Termination {
	return c.termination
}

// Report writes a line of user-facing status text
func (c *Context) Report(message string) {
	fmt.Fprintln(c.Out, message)
}

// Reportf writes formatted user-facing status text followed by a newline
func (c *Context) Reportf(format string, args ...any) {
	fmt.Fprintf(c.Out, format+"\n", args...)
}
