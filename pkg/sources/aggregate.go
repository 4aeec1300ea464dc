package sources

import (
	"github.com/arthur-debert/getpkg/pkg/errors"
	"github.com/arthur-debert/getpkg/pkg/logging"
)

// Aggregate queries several sources as one: results are concatenated
// in source-registration order, with no deduplication across sources.
type Aggregate struct {
	name    string
	sources []Source
}

// NewAggregate creates an aggregate over the given sources
func NewAggregate(name string, srcs ...Source) *Aggregate {
	return &Aggregate{name: name, sources: srcs}
}

// Name returns the aggregate's name
func (a *Aggregate) Name() string {
	return a.name
}

// Sources returns the member sources in registration order
func (a *Aggregate) Sources() []Source {
	return a.sources
}

// Search queries each member source in order. A failing member fails
// the whole search: a partial result would silently hide packages.
func (a *Aggregate) Search(request SearchRequest) (SearchResult, error) {
	logger := logging.GetLogger("sources")

	var result SearchResult
	for _, src := range a.sources {
		partial, err := src.Search(request)
		if err != nil {
			return SearchResult{}, errors.Wrapf(err, errors.ErrSourceQueryFailed,
				"search against source '%s' failed", src.Name())
		}
		logger.Debug().
			Str("source", src.Name()).
			Str("query", request.Query).
			Int("matches", len(partial.Matches)).
			Msg("Source searched")
		result.Matches = append(result.Matches, partial.Matches...)
	}

	return result, nil
}

// Details is not meaningful for an aggregate of several sources
func (a *Aggregate) Details() (SourceDetails, error) {
	return SourceDetails{}, errors.New(errors.ErrNotImplemented,
		"aggregate source has no single registration")
}
