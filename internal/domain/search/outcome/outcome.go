// Package outcome holds the tagged search result union. Exactly one
// variant exists per invocation; every failure is encoded here rather
// than surfaced as an error to the tool caller.
package outcome

import (
	"encoding/json"

	"github.com/allenmylath/propvoice/internal/domain/property"
	"github.com/allenmylath/propvoice/internal/domain/search/filter"
	"github.com/allenmylath/propvoice/internal/domain/search/stage"
	"github.com/allenmylath/propvoice/internal/domain/search/trace"
)

// SearchType labels the retrieval strategy in success payloads.
const SearchType = "hybrid_vector_traditional"

// FiltersApplied echoes the structured filters back to the caller.
// Absent filters serialize as null.
type FiltersApplied struct {
	MinPrice         *float64 `json:"min_price"`
	MaxPrice         *float64 `json:"max_price"`
	Bedrooms         *string  `json:"bedrooms"`
	Bathrooms        *string  `json:"bathrooms"`
	PropertyType     *string  `json:"property_type"`
	LocationKeywords *string  `json:"location_keywords"`
	MLSGenuine       *bool    `json:"mls_genuine"`
}

// FiltersFromParams converts filter params into the echo shape.
func FiltersFromParams(p filter.Params) FiltersApplied {
	return FiltersApplied{
		MinPrice:         p.MinPrice,
		MaxPrice:         p.MaxPrice,
		Bedrooms:         p.Bedrooms,
		Bathrooms:        p.Bathrooms,
		PropertyType:     p.PropertyType,
		LocationKeywords: p.Location,
		MLSGenuine:       p.MLSGenuine,
	}
}

// Success is the completed-search variant.
type Success struct {
	SearchCompleted     bool              `json:"search_completed"`
	SearchType          string            `json:"search_type"`
	Query               string            `json:"query"`
	EmbeddingDimensions int               `json:"embedding_dimensions"`
	FiltersApplied      FiltersApplied    `json:"filters_applied"`
	ResultsFound        int               `json:"results_found"`
	TopScores           []float64         `json:"top_similarity_scores"`
	Properties          []property.Record `json:"properties"`
	ExecutionSeconds    float64           `json:"execution_time_seconds"`
	DebugLog            []trace.Entry     `json:"debug_log"`
}

// Failure is the failed-search variant. Error carries the internal
// diagnostic; UserMessage is the short session-presentable text.
type Failure struct {
	Error        string        `json:"error"`
	UserMessage  string        `json:"user_message"`
	FailurePoint stage.Stage   `json:"failure_point"`
	Query        string        `json:"query"`
	DebugLog     []trace.Entry `json:"debug_log"`
	FullTrace    string        `json:"full_traceback,omitempty"`
}

// Outcome is the tagged union returned by every search invocation.
type Outcome struct {
	success *Success
	failure *Failure
}

// OK creates a success outcome, stamping the invariant fields. Nil
// slices are normalized so a zero-match success serializes as [].
func OK(s Success) Outcome {
	s.SearchCompleted = true
	s.SearchType = SearchType
	if s.Properties == nil {
		s.Properties = []property.Record{}
	}
	if s.TopScores == nil {
		s.TopScores = []float64{}
	}
	return Outcome{success: &s}
}

// Fail creates a failure outcome. An empty UserMessage falls back to the
// stage's presentable text.
func Fail(f Failure) Outcome {
	if f.UserMessage == "" {
		f.UserMessage = f.FailurePoint.UserMessage()
	}
	return Outcome{failure: &f}
}

// IsSuccess reports whether the success variant is active.
func (o Outcome) IsSuccess() bool { return o.success != nil }

// Success returns the success variant, or nil.
func (o Outcome) Success() *Success { return o.success }

// Failure returns the failure variant, or nil.
func (o Outcome) Failure() *Failure { return o.failure }

// Query returns the original query text from whichever variant is active.
func (o Outcome) Query() string {
	if o.success != nil {
		return o.success.Query
	}
	if o.failure != nil {
		return o.failure.Query
	}
	return ""
}

// MarshalJSON emits the active variant as a flat object.
func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.success != nil {
		return json.Marshal(o.success)
	}
	return json.Marshal(o.failure)
}
