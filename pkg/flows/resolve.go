// Package flows is the workflow task library: the named tasks that
// install and show pipelines compose. Tasks communicate exclusively
// through the workflow Context; everything here is replaceable through
// the override hook, which is how tests substitute sources, downloads
// and launchers.
package flows

import (
	"github.com/arthur-debert/getpkg/pkg/config"
	"github.com/arthur-debert/getpkg/pkg/errors"
	"github.com/arthur-debert/getpkg/pkg/manifest"
	"github.com/arthur-debert/getpkg/pkg/paths"
	"github.com/arthur-debert/getpkg/pkg/sources"
	"github.com/arthur-debert/getpkg/pkg/workflow"
)

// User-facing search outcome messages
const (
	MsgNoMatches       = "No package found matching input criteria."
	MsgMultipleMatches = "Multiple packages found matching input criteria. Please refine the input."
)

// Resolution tasks
var (
	// OpenSource opens the configured sources as one aggregate and
	// publishes it as Source
	OpenSource = workflow.NewTask("OpenSource", openSource)

	// SearchSource queries Source with the Query argument and publishes
	// SearchResult
	SearchSource = workflow.NewTask("SearchSource", searchSource)

	// HandleSearchResult reduces SearchResult to its zero/one/many
	// outcome, terminating the benign zero and many cases
	HandleSearchResult = workflow.NewTask("HandleSearchResult", handleSearchResult)

	// GetManifestFromSearchResult resolves the single match to its
	// manifest, honoring the Version and Channel arguments
	GetManifestFromSearchResult = workflow.NewTask("GetManifestFromSearchResult", getManifestFromSearchResult)

	// GetManifestFromArg loads the manifest file named by the Manifest
	// argument
	GetManifestFromArg = workflow.NewTask("GetManifestFromArg", getManifestFromArg)

	// ReportManifestIdentity announces the resolved package to the user
	ReportManifestIdentity = workflow.NewTask("ReportManifestIdentity", reportManifestIdentity)
)

func openSource(ctx *workflow.Context) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	configs := settings.SourceConfigs()
	if name := ctx.Args.Value(workflow.ArgSource); name != "" {
		var selected []sources.Config
		for _, cfg := range configs {
			if cfg.Name == name {
				selected = append(selected, cfg)
			}
		}
		if len(selected) == 0 {
			return errors.Newf(errors.ErrSourceNotFound, "no source named '%s' is configured", name)
		}
		configs = selected
	}

	opened := make([]sources.Source, 0, len(configs))
	for _, cfg := range configs {
		// The built-in local source points at getpkg's own data
		// directory, which exists only after first use
		if cfg.Type == sources.TypeLocal && cfg.Path == paths.DefaultManifestDir() {
			if err := paths.EnsureDir(cfg.Path); err != nil {
				return errors.Wrapf(err, errors.ErrSourceNotFound,
					"failed to create manifest directory %s", cfg.Path)
			}
		}
		src, err := sources.Create(cfg)
		if err != nil {
			return err
		}
		opened = append(opened, src)
	}

	var source sources.Source
	if len(opened) == 1 {
		source = opened[0]
	} else {
		source = sources.NewAggregate("all", opened...)
	}

	ctx.Add(workflow.DataSource, source)
	return nil
}

func searchSource(ctx *workflow.Context) error {
	source := workflow.Get[sources.Source](ctx, workflow.DataSource)

	request := sources.SearchRequest{Query: ctx.Args.Value(workflow.ArgQuery)}
	result, err := source.Search(request)
	if err != nil {
		if errors.GetErrorCode(err) == errors.ErrUnknown {
			return errors.Wrapf(err, errors.ErrSourceQueryFailed,
				"search against source '%s' failed", source.Name())
		}
		return err
	}

	ctx.Add(workflow.DataSearchResult, result)
	return nil
}

func handleSearchResult(ctx *workflow.Context) error {
	result := workflow.Get[sources.SearchResult](ctx, workflow.DataSearchResult)

	switch len(result.Matches) {
	case 0:
		ctx.Report(MsgNoMatches)
		ctx.Terminate(errors.ErrNoMatches, MsgNoMatches)
	case 1:
		// Single unambiguous match; the pipeline proceeds
	default:
		ctx.Report(MsgMultipleMatches)
		for _, match := range result.Matches {
			ctx.Reportf("  %s [%s]", match.Package.PackageName(), match.Package.ID())
		}
		ctx.Terminate(errors.ErrMultipleMatches, MsgMultipleMatches)
	}

	return nil
}

func getManifestFromSearchResult(ctx *workflow.Context) error {
	result := workflow.Get[sources.SearchResult](ctx, workflow.DataSearchResult)
	pkg := result.Matches[0].Package

	version := ctx.Args.Value(workflow.ArgVersion)
	channel := ctx.Args.Value(workflow.ArgChannel)

	m, ok := pkg.Manifest(version, channel)
	if !ok {
		message := "No version of " + pkg.ID() + " matches the requested version and channel."
		ctx.Report(message)
		ctx.Terminate(errors.ErrNoMatches, message)
		return nil
	}

	ctx.Add(workflow.DataManifest, m)
	return nil
}

func getManifestFromArg(ctx *workflow.Context) error {
	path := ctx.Args.Value(workflow.ArgManifest)
	m, err := manifest.CreateFromPath(path)
	if err != nil {
		return err
	}

	ctx.Add(workflow.DataManifest, m)
	return nil
}

func reportManifestIdentity(ctx *workflow.Context) error {
	m := workflow.Get[*manifest.Manifest](ctx, workflow.DataManifest)
	ctx.Reportf("Found %s [%s]", m.Name, m.ID)
	return nil
}
