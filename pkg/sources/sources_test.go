package sources_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/getpkg/pkg/errors"
	"github.com/arthur-debert/getpkg/pkg/sources"
	"github.com/arthur-debert/getpkg/pkg/testutil"
)

func TestTestSourceSingleMatch(t *testing.T) {
	src := testutil.TestSource{}

	result, err := src.Search(sources.SearchRequest{Query: testutil.QueryReturnOne})
	require.NoError(t, err)

	require.Len(t, result.Matches, 1)
	match := result.Matches[0]
	assert.Equal(t, testutil.FixtureID, match.Package.ID())
	assert.Equal(t, sources.FieldID, match.Filter.Field)
	assert.Equal(t, sources.MatchExact, match.Filter.Type)
}

func TestTestSourceTwoMatchesShareFilter(t *testing.T) {
	src := testutil.TestSource{}

	result, err := src.Search(sources.SearchRequest{Query: testutil.QueryReturnTwo})
	require.NoError(t, err)

	require.Len(t, result.Matches, 2)
	assert.Equal(t, result.Matches[0].Filter, result.Matches[1].Filter)
	assert.Equal(t, testutil.FixtureID, result.Matches[0].Package.ID())
	assert.Equal(t, testutil.SecondFixtureID, result.Matches[1].Package.ID())
}

func TestTestSourceNoMatch(t *testing.T) {
	src := testutil.TestSource{}

	result, err := src.Search(sources.SearchRequest{Query: testutil.QueryReturnZero})
	require.NoError(t, err)
	assert.Empty(t, result.Matches)
}

func TestLocalSourceRequiresDirectory(t *testing.T) {
	_, err := sources.NewLocalSource("local", "/does/not/exist")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceNotFound))
}

func newLocalSource(t *testing.T) (*sources.LocalSource, string) {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteManifest(t, dir, "installer.yaml", testutil.ExeManifestYAML())
	testutil.WriteManifest(t, dir, "second.yaml", testutil.SecondManifestYAML())

	src, err := sources.NewLocalSource("local", dir)
	require.NoError(t, err)
	return src, dir
}

func TestLocalSourceExactIDMatch(t *testing.T) {
	src, _ := newLocalSource(t)

	result, err := src.Search(sources.SearchRequest{Query: testutil.FixtureID})
	require.NoError(t, err)

	require.Len(t, result.Matches, 1)
	assert.Equal(t, sources.FieldID, result.Matches[0].Filter.Field)
	assert.Equal(t, sources.MatchExact, result.Matches[0].Filter.Type)
}

func TestLocalSourceExactNameMatch(t *testing.T) {
	src, _ := newLocalSource(t)

	result, err := src.Search(sources.SearchRequest{Query: testutil.FixtureName})
	require.NoError(t, err)

	require.Len(t, result.Matches, 1)
	assert.Equal(t, sources.FieldName, result.Matches[0].Filter.Field)
	assert.Equal(t, sources.MatchExact, result.Matches[0].Filter.Type)
}

func TestLocalSourceSubstringMatch(t *testing.T) {
	src, _ := newLocalSource(t)

	// Case-insensitive containment matches both fixture packages
	result, err := src.Search(sources.SearchRequest{Query: "getpkgtest"})
	require.NoError(t, err)

	require.Len(t, result.Matches, 2)
	for _, match := range result.Matches {
		assert.Equal(t, sources.MatchSubstring, match.Filter.Type)
	}
}

func TestLocalSourceFuzzyMatch(t *testing.T) {
	src, _ := newLocalSource(t)

	// A subsequence of "Getpkg Test Installer" that is not a substring
	result, err := src.Search(sources.SearchRequest{Query: "gtstinst"})
	require.NoError(t, err)

	require.NotEmpty(t, result.Matches)
	assert.Equal(t, sources.MatchFuzzy, result.Matches[0].Filter.Type)
	assert.Equal(t, sources.FieldName, result.Matches[0].Filter.Field)
}

func TestLocalSourceEmptyRequestListsAll(t *testing.T) {
	src, _ := newLocalSource(t)

	result, err := src.Search(sources.SearchRequest{})
	require.NoError(t, err)
	assert.Len(t, result.Matches, 2)
}

func TestLocalSourceSkipsMalformedManifest(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteManifest(t, dir, "broken.yaml", "Id: [unbalanced")
	testutil.WriteManifest(t, dir, "good.yaml", testutil.ExeManifestYAML())

	src, err := sources.NewLocalSource("local", dir)
	require.NoError(t, err)

	result, err := src.Search(sources.SearchRequest{})
	require.NoError(t, err)
	assert.Len(t, result.Matches, 1)
}

func TestLocalSourceDetails(t *testing.T) {
	src, dir := newLocalSource(t)

	details, err := src.Details()
	require.NoError(t, err)
	assert.Equal(t, "local", details.Name)
	assert.Equal(t, sources.TypeLocal, details.Type)
	assert.Equal(t, dir, details.Arg)
}

func TestAggregatePreservesOrderWithoutDedup(t *testing.T) {
	agg := sources.NewAggregate("all", testutil.TestSource{}, testutil.TestSource{})

	result, err := agg.Search(sources.SearchRequest{Query: testutil.QueryReturnOne})
	require.NoError(t, err)

	// Both members report the same package; the aggregate keeps both
	require.Len(t, result.Matches, 2)
	assert.Equal(t, testutil.FixtureID, result.Matches[0].Package.ID())
	assert.Equal(t, testutil.FixtureID, result.Matches[1].Package.ID())
}

type failingSource struct{}

func (failingSource) Name() string { return "failing" }

func (failingSource) Search(sources.SearchRequest) (sources.SearchResult, error) {
	return sources.SearchResult{}, errors.New(errors.ErrInternal, "catalog unavailable")
}

func (failingSource) Details() (sources.SourceDetails, error) {
	return sources.SourceDetails{}, errors.New(errors.ErrNotImplemented, "n/a")
}

func TestAggregateFailsWhenMemberFails(t *testing.T) {
	agg := sources.NewAggregate("all", testutil.TestSource{}, failingSource{})

	_, err := agg.Search(sources.SearchRequest{Query: testutil.QueryReturnOne})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceQueryFailed))
}

func TestAggregateDetailsUnimplemented(t *testing.T) {
	agg := sources.NewAggregate("all", testutil.TestSource{})

	_, err := agg.Details()
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotImplemented))
}

func TestFactoryCreatesLocalSource(t *testing.T) {
	dir := t.TempDir()

	src, err := sources.Create(sources.Config{Name: "mine", Type: sources.TypeLocal, Path: dir})
	require.NoError(t, err)
	assert.Equal(t, "mine", src.Name())
	assert.Contains(t, sources.Types(), sources.TypeLocal)
}

func TestFactoryUnknownType(t *testing.T) {
	_, err := sources.Create(sources.Config{Name: "x", Type: "carrier-pigeon"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceNotFound))
}

func TestManifestPackageVersionHints(t *testing.T) {
	pkg := sources.NewManifestPackage(testutil.MustParse(testutil.SecondManifestYAML()))

	tests := []struct {
		name    string
		version string
		channel string
		want    bool
	}{
		{"no hints", "", "", true},
		{"matching version", "2.0.0", "", true},
		{"matching version and channel", "2.0.0", "beta", true},
		{"case-insensitive channel", "2.0.0", "BETA", true},
		{"wrong version", "1.0.0", "", false},
		{"wrong channel", "2.0.0", "stable", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := pkg.Manifest(tt.version, tt.channel)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestManifestPackageVersions(t *testing.T) {
	pkg := sources.NewManifestPackage(testutil.MustParse(testutil.SecondManifestYAML()))

	versions := pkg.Versions()
	require.Len(t, versions, 1)
	assert.Equal(t, "2.0.0", versions[0].Version)
	assert.Equal(t, "beta", versions[0].Channel)
}
