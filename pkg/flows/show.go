package flows

import (
	"github.com/arthur-debert/getpkg/pkg/installer"
	"github.com/arthur-debert/getpkg/pkg/manifest"
	"github.com/arthur-debert/getpkg/pkg/output"
	"github.com/arthur-debert/getpkg/pkg/sources"
	"github.com/arthur-debert/getpkg/pkg/workflow"
)

// Show tasks
var (
	// ShowManifestInfo prints the manifest's metadata and the download
	// location of the applicable installer
	ShowManifestInfo = workflow.NewTask("ShowManifestInfo", showManifestInfo)

	// ShowVersions prints the available version/channel pairs of the
	// resolved package
	ShowVersions = workflow.NewTask("ShowVersions", showVersions)
)

func showManifestInfo(ctx *workflow.Context) error {
	m := workflow.Get[*manifest.Manifest](ctx, workflow.DataManifest)

	ctx.Reportf("Id: %s", m.ID)
	ctx.Reportf("Name: %s", m.Name)
	ctx.Reportf("Version: %s", m.Version)
	if m.Channel != "" {
		ctx.Reportf("Channel: %s", m.Channel)
	}
	if m.Publisher != "" {
		ctx.Reportf("Publisher: %s", m.Publisher)
	}
	if m.Author != "" {
		ctx.Reportf("Author: %s", m.Author)
	}
	if m.Moniker != "" {
		ctx.Reportf("AppMoniker: %s", m.Moniker)
	}
	if m.Description != "" {
		ctx.Reportf("Description: %s", m.Description)
	}
	if m.Homepage != "" {
		ctx.Reportf("Homepage: %s", m.Homepage)
	}
	if m.License != "" {
		ctx.Reportf("License: %s", m.License)
	}

	ctx.Report("Installer:")
	inst, ok := installer.SelectApplicable(m, manifest.ArchUnknown)
	if !ok {
		ctx.Report("  No applicable installer for the current system.")
		return nil
	}
	ctx.Reportf("  InstallerType: %s", inst.Type(m.DefaultInstallerType()))
	ctx.Reportf("  Download Url: %s", inst.URL)
	if inst.Sha256 != "" {
		ctx.Reportf("  Sha256: %s", inst.Sha256)
	}
	return nil
}

func showVersions(ctx *workflow.Context) error {
	var versions []manifest.VersionAndChannel

	if ctx.Contains(workflow.DataSearchResult) {
		result := workflow.Get[sources.SearchResult](ctx, workflow.DataSearchResult)
		versions = result.Matches[0].Package.Versions()
	} else {
		m := workflow.Get[*manifest.Manifest](ctx, workflow.DataManifest)
		versions = []manifest.VersionAndChannel{m.VersionAndChannel()}
	}

	table, err := output.VersionTable(versions)
	if err != nil {
		return err
	}
	ctx.Report(table)
	return nil
}
