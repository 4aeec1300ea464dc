package testutil

import (
	"testing"

	"github.com/arthur-debert/getpkg/pkg/downloader"
	"github.com/arthur-debert/getpkg/pkg/errors"
	"github.com/arthur-debert/getpkg/pkg/sources"
	"github.com/arthur-debert/getpkg/pkg/workflow"
	"github.com/stretchr/testify/assert"
)

// Reference queries honored by TestSource
const (
	QueryReturnOne  = "TestQueryReturnOne"
	QueryReturnTwo  = "TestQueryReturnTwo"
	QueryReturnZero = "TestQueryReturnZero"
)

// TestSource is the reference fixture catalog: one query returns
// exactly one exact Id match, one returns two matches sharing the same
// filter, everything else returns nothing. Details is deliberately
// unimplemented, like any ephemeral source.
type TestSource struct{}

// Name returns the fixture source name
func (TestSource) Name() string {
	return "test"
}

// Search implements the reference query semantics
func (TestSource) Search(request sources.SearchRequest) (sources.SearchResult, error) {
	var result sources.SearchResult

	switch request.Query {
	case QueryReturnOne:
		result.Matches = append(result.Matches, sources.Match{
			Package: sources.NewManifestPackage(MustParse(ExeManifestYAML())),
			Filter: sources.MatchFilter{
				Field: sources.FieldID,
				Type:  sources.MatchExact,
				Value: QueryReturnOne,
			},
		})
	case QueryReturnTwo:
		filter := sources.MatchFilter{
			Field: sources.FieldID,
			Type:  sources.MatchExact,
			Value: QueryReturnTwo,
		}
		result.Matches = append(result.Matches,
			sources.Match{
				Package: sources.NewManifestPackage(MustParse(ExeManifestYAML())),
				Filter:  filter,
			},
			sources.Match{
				Package: sources.NewManifestPackage(MustParse(SecondManifestYAML())),
				Filter:  filter,
			},
		)
	}

	return result, nil
}

// Details is unimplemented for the ephemeral test source
func (TestSource) Details() (sources.SourceDetails, error) {
	return sources.SourceDetails{}, errors.New(errors.ErrNotImplemented, "test source has no registration")
}

// OverrideOpenSource substitutes the OpenSource task so the pipeline
// searches the fixture catalog instead of configured sources
func OverrideOpenSource(overrides *workflow.OverrideSet) {
	overrides.Override(workflow.TaskByName("OpenSource"), func(ctx *workflow.Context) error {
		ctx.Add(workflow.DataSource, sources.Source(TestSource{}))
		return nil
	})
}

// OverrideDownload substitutes the download and rename tasks, placing
// installerPath into the context the way a real download would
func OverrideDownload(overrides *workflow.OverrideSet, installerPath string) {
	overrides.Override(workflow.TaskByName("DownloadInstallerFile"), func(ctx *workflow.Context) error {
		ctx.Add(workflow.DataHashPair, downloader.HashPair{})
		ctx.Add(workflow.DataInstallerPath, installerPath)
		return nil
	})
	overrides.Override(workflow.TaskByName("RenameDownloadedInstaller"), func(ctx *workflow.Context) error {
		return nil
	})
}

// AssertAllOverridesUsed fails the test when a registered override
// never matched a pipeline task
func AssertAllOverridesUsed(t *testing.T, overrides *workflow.OverrideSet) {
	t.Helper()
	assert.Empty(t, overrides.Unused(), "unused workflow task overrides")
}
