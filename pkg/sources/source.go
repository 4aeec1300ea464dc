// Package sources implements the source search engine: polymorphic
// package sources queried with a structured request, producing ordered
// match lists that downstream workflow tasks reduce to zero/one/many
// outcomes.
package sources

import (
	"fmt"

	"github.com/arthur-debert/getpkg/pkg/manifest"
)

// MatchField identifies the manifest field a search filter matched
type MatchField int

const (
	FieldID MatchField = iota
	FieldName
	FieldMoniker
	FieldTag
)

var fieldNames = map[MatchField]string{
	FieldID:      "Id",
	FieldName:    "Name",
	FieldMoniker: "Moniker",
	FieldTag:     "Tag",
}

// String returns the field's name
func (f MatchField) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("MatchField(%d)", int(f))
}

// MatchType is the exactness tier of a match. Exact means the field
// value equals the query byte-for-byte; downstream logic relies on the
// tier to distinguish confidence.
type MatchType int

const (
	MatchExact MatchType = iota
	MatchSubstring
	MatchFuzzy
)

var matchTypeNames = map[MatchType]string{
	MatchExact:     "Exact",
	MatchSubstring: "Substring",
	MatchFuzzy:     "Fuzzy",
}

// String returns the match type's name
func (t MatchType) String() string {
	if name, ok := matchTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("MatchType(%d)", int(t))
}

// MatchFilter explains why a result matched: which field, at which
// exactness tier, against which value
type MatchFilter struct {
	Field MatchField
	Type  MatchType
	Value string
}

// SearchRequest carries an optional free-text query plus optional
// structured filters. An empty request matches every package the
// source knows, which is how listing is implemented.
type SearchRequest struct {
	Query   string
	Filters []MatchFilter
}

// IsEmpty reports whether the request carries no criteria
func (r SearchRequest) IsEmpty() bool {
	return r.Query == "" && len(r.Filters) == 0
}

// Match pairs a package handle with the filter that produced it
type Match struct {
	Package Package
	Filter  MatchFilter
}

// SearchResult is an ordered sequence of matches. Matches preserve
// provider order and are never deduplicated across sources; consumers
// collapse by package identity when they need to.
type SearchResult struct {
	Matches []Match
}

// SourceDetails describes a source's registration
type SourceDetails struct {
	Name string
	Type string
	Arg  string
}

// Source is a queryable package catalog
type Source interface {
	// Name returns the source's registered name
	Name() string

	// Search queries the catalog
	Search(request SearchRequest) (SearchResult, error)

	// Details returns the source's registration details. Ephemeral
	// sources may return ErrNotImplemented instead of inventing them.
	Details() (SourceDetails, error)
}

// Package is a handle to one package within a source
type Package interface {
	// ID returns the package identifier
	ID() string

	// PackageName returns the human-readable package name
	PackageName() string

	// Manifest returns the manifest matching the optional version and
	// channel hints, or false when no declared version matches
	Manifest(version, channel string) (*manifest.Manifest, bool)

	// Versions returns the declared version/channel pairs
	Versions() []manifest.VersionAndChannel
}
