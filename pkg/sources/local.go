package sources

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/arthur-debert/getpkg/pkg/errors"
	"github.com/arthur-debert/getpkg/pkg/logging"
	"github.com/arthur-debert/getpkg/pkg/manifest"
)

// TypeLocal is the registered type name of the local directory source
const TypeLocal = "local"

func init() {
	MustRegisterFactory(TypeLocal, func(cfg Config) (Source, error) {
		return NewLocalSource(cfg.Name, cfg.Path)
	})
}

// LocalSource is a catalog backed by a directory of YAML manifests,
// one package per file. Files are read on every search so a manifest
// dropped into the directory is visible immediately.
type LocalSource struct {
	name string
	root string
}

// NewLocalSource creates a local source rooted at dir
func NewLocalSource(name, dir string) (*LocalSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceNotFound,
			"local source root %s is not accessible", dir)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrSourceNotFound,
			"local source root %s is not a directory", dir)
	}
	return &LocalSource{name: name, root: dir}, nil
}

// Name returns the source's registered name
func (s *LocalSource) Name() string {
	return s.name
}

// Details returns the source's registration details
func (s *LocalSource) Details() (SourceDetails, error) {
	return SourceDetails{Name: s.name, Type: TypeLocal, Arg: s.root}, nil
}

// Search matches the query against each manifest in the root
// directory. Exact matches on Id or Name are reported at the Exact
// tier, case-insensitive containment at the Substring tier, and
// subsequence matches on the name at the Fuzzy tier. File-name order
// keeps results deterministic.
func (s *LocalSource) Search(request SearchRequest) (SearchResult, error) {
	logger := logging.GetLogger("sources.local")

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return SearchResult{}, errors.Wrapf(err, errors.ErrSourceQueryFailed,
			"failed to read local source root %s", s.root)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	var result SearchResult
	for _, name := range files {
		path := filepath.Join(s.root, name)
		m, err := manifest.CreateFromPath(path)
		if err != nil {
			// A malformed manifest must not hide the rest of the catalog
			logger.Warn().Err(err).Str("path", path).Msg("Skipping unreadable manifest")
			continue
		}

		filter, ok := matchManifest(m, request)
		if !ok {
			continue
		}
		result.Matches = append(result.Matches, Match{
			Package: NewManifestPackage(m),
			Filter:  filter,
		})
	}

	return result, nil
}

// matchManifest applies the request to one manifest, returning the
// filter explaining the match
func matchManifest(m *manifest.Manifest, request SearchRequest) (MatchFilter, bool) {
	if request.IsEmpty() {
		return MatchFilter{Field: FieldID, Type: MatchExact, Value: m.ID}, true
	}

	query := request.Query
	switch {
	case query == m.ID:
		return MatchFilter{Field: FieldID, Type: MatchExact, Value: query}, true
	case query == m.Name:
		return MatchFilter{Field: FieldName, Type: MatchExact, Value: query}, true
	case m.Moniker != "" && query == m.Moniker:
		return MatchFilter{Field: FieldMoniker, Type: MatchExact, Value: query}, true
	}

	lower := strings.ToLower(query)
	switch {
	case strings.Contains(strings.ToLower(m.ID), lower):
		return MatchFilter{Field: FieldID, Type: MatchSubstring, Value: query}, true
	case strings.Contains(strings.ToLower(m.Name), lower):
		return MatchFilter{Field: FieldName, Type: MatchSubstring, Value: query}, true
	}

	if fuzzy.MatchNormalizedFold(query, m.Name) {
		return MatchFilter{Field: FieldName, Type: MatchFuzzy, Value: query}, true
	}

	return MatchFilter{}, false
}

// ManifestPackage adapts a single manifest into a Package handle. The
// local source and test fixtures both use it.
type ManifestPackage struct {
	m *manifest.Manifest
}

// NewManifestPackage wraps a manifest in a Package handle
func NewManifestPackage(m *manifest.Manifest) *ManifestPackage {
	return &ManifestPackage{m: m}
}

// ID returns the package identifier
func (p *ManifestPackage) ID() string {
	return p.m.ID
}

// PackageName returns the human-readable package name
func (p *ManifestPackage) PackageName() string {
	return p.m.Name
}

// Manifest returns the wrapped manifest when the optional hints match
// its declared version and channel. Hints are compared
// case-insensitively after trimming, the same normalization applied to
// manifest fields on load.
func (p *ManifestPackage) Manifest(version, channel string) (*manifest.Manifest, bool) {
	if !hintMatches(version, p.m.Version) || !hintMatches(channel, p.m.Channel) {
		return nil, false
	}
	return p.m, true
}

// Versions returns the declared version/channel pairs
func (p *ManifestPackage) Versions() []manifest.VersionAndChannel {
	return []manifest.VersionAndChannel{p.m.VersionAndChannel()}
}

func hintMatches(hint, declared string) bool {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return true
	}
	return strings.EqualFold(hint, strings.TrimSpace(declared))
}
