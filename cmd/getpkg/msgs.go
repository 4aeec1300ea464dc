package main

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort = "A manifest-driven package installer"
	MsgRootLong = `getpkg installs software described by declarative package manifests.
It searches configured sources, picks the installer that fits your
system, downloads it, and runs it with the right arguments.`

	MsgInstallShort = "Install a package"
	MsgInstallLong = `Install resolves a package from the configured sources (or a local
manifest file), selects the applicable installer, downloads it, and
runs it.`
	MsgInstallExample = `  getpkg install vscode
  getpkg install --manifest ./vscode.yaml
  getpkg install vscode --silent --log /tmp/vscode-install.log`

	MsgShowShort = "Show package details"
	MsgShowLong = `Show resolves a package and prints its manifest details, or the
available versions with --versions.`
	MsgShowExample = `  getpkg show vscode
  getpkg show vscode --versions
  getpkg show --manifest ./vscode.yaml`

	MsgGenConfigShort = "Print the configuration file"
	MsgGenConfigLong = `Print the default configuration as TOML, ready to save as
the user configuration file. With --effective, print the merged
settings currently in effect instead.`

	MsgVersionShort = "Print version information"
	MsgDocsShort    = "Display the getpkg manual"

	// Flag descriptions
	MsgFlagVerbose         = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagNoColor         = "Disable colored output"
	MsgFlagManifest        = "Path to a local package manifest file"
	MsgFlagVersion         = "Package version to install"
	MsgFlagChannel         = "Release channel of the requested version"
	MsgFlagSource          = "Search only the named source"
	MsgFlagSilent          = "Run the installer fully silent"
	MsgFlagLog             = "Installer log file path"
	MsgFlagInstallLocation = "Directory to install into"
	MsgFlagOverride        = "Replace the synthesized installer arguments entirely"
	MsgFlagArch            = "Override the host architecture for installer selection"
	MsgFlagListVersions    = "List the available versions instead of details"
	MsgFlagEffective       = "Print the merged settings currently in effect"
)
