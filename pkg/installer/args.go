package installer

import (
	"strings"

	"github.com/arthur-debert/getpkg/pkg/manifest"
)

// Tokens replaced in log and install-location switch templates,
// whether built-in or manifest-declared
const (
	TokenLogPath     = "<LOGPATH>"
	TokenInstallPath = "<INSTALLPATH>"
)

// DefaultLogSuffix is appended to the installer file path to derive
// the log path when the user supplies none
const DefaultLogSuffix = ".log"

// switchSet holds the per-technology switch templates for each logical
// switch. An empty template means the technology has no default and
// the switch is omitted unless the manifest declares one.
type switchSet struct {
	silent             string
	silentWithProgress string
	log                string
	installLocation    string
}

// techDefaults is the built-in switch table per installer technology.
// Exe, burn and msix entries are manifest-driven only.
var techDefaults = map[manifest.InstallerType]switchSet{
	manifest.InstallerTypeMsi: {
		silent:             "/quiet",
		silentWithProgress: "/passive",
		log:                `/log "` + TokenLogPath + `"`,
		installLocation:    `TARGETDIR="` + TokenInstallPath + `"`,
	},
	manifest.InstallerTypeWix: {
		silent:             "/quiet",
		silentWithProgress: "/passive",
		log:                `/log "` + TokenLogPath + `"`,
		installLocation:    `TARGETDIR="` + TokenInstallPath + `"`,
	},
	manifest.InstallerTypeInno: {
		silent:             "/VERYSILENT",
		silentWithProgress: "/SILENT",
		log:                `/LOG="` + TokenLogPath + `"`,
		installLocation:    `/DIR="` + TokenInstallPath + `"`,
	},
	manifest.InstallerTypeNullsoft: {
		silent:             "/S",
		silentWithProgress: "/S",
	},
}

// ArgOptions carries the user-supplied run-time inputs to argument
// synthesis. A non-empty Override replaces the entire argument string.
type ArgOptions struct {
	Silent          bool
	Log             string
	InstallLocation string
	Override        string

	// InstallerPath is the local installer file, used to derive the
	// default log path. Empty when the installer has not been
	// downloaded, in which case no default log path exists.
	InstallerPath string
}

// SynthesizeArgs builds the final command-line string for the selected
// installer. Precedence, highest first: the user's Override string
// verbatim; manifest-declared switches over built-in technology
// defaults; user run-time values substituted into whichever template
// is in effect. A switch with neither a template nor a value is
// omitted entirely.
func SynthesizeArgs(inst manifest.Installer, fallbackType manifest.InstallerType, opts ArgOptions) string {
	if opts.Override != "" {
		return opts.Override
	}

	tech := inst.Type(fallbackType)
	templates := techDefaults[tech]
	declared := inst.Switches

	silent := coalesce(declared.Silent, templates.silent)
	silentWithProgress := coalesce(declared.SilentWithProgress, templates.silentWithProgress)
	logTemplate := coalesce(declared.Log, templates.log)
	locationTemplate := coalesce(declared.InstallLocation, templates.installLocation)

	var parts []string

	if opts.Silent {
		if silent != "" {
			parts = append(parts, silent)
		}
	} else if silentWithProgress != "" {
		parts = append(parts, silentWithProgress)
	}

	if declared.Custom != "" {
		parts = append(parts, declared.Custom)
	}

	if logTemplate != "" {
		logPath := opts.Log
		if logPath == "" && opts.InstallerPath != "" {
			logPath = opts.InstallerPath + DefaultLogSuffix
		}
		if logPath != "" {
			parts = append(parts, strings.ReplaceAll(logTemplate, TokenLogPath, logPath))
		}
	}

	if locationTemplate != "" && opts.InstallLocation != "" {
		parts = append(parts, strings.ReplaceAll(locationTemplate, TokenInstallPath, opts.InstallLocation))
	}

	return strings.Join(parts, " ")
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
