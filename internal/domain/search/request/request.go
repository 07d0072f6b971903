// Package request holds the validated hybrid search input.
package request

import "github.com/allenmylath/propvoice/internal/domain/search/filter"

// Search parameter defaults.
const (
	DefaultLimit = 10
	DefaultIndex = "vector_index"
)

// Request is an immutable hybrid search request. Query emptiness is not
// checked here: the orchestrator owns input validation so an empty query
// is classified like any other stage failure.
type Request struct {
	query   string
	filters filter.Params
	limit   int
	index   string
}

// New normalizes search parameters. A non-positive limit falls back to
// DefaultLimit; an empty index name falls back to DefaultIndex.
func New(query string, filters filter.Params, limit int, index string) Request {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if index == "" {
		index = DefaultIndex
	}
	return Request{query: query, filters: filters, limit: limit, index: index}
}

// Query returns the free-text query as supplied by the caller.
func (r *Request) Query() string { return r.query }

// Filters returns the optional structured filter params.
func (r *Request) Filters() filter.Params { return r.filters }

// Limit returns the final result limit.
func (r *Request) Limit() int { return r.limit }

// Index returns the vector search index name.
func (r *Request) Index() string { return r.index }
