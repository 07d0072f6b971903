// Package notify defines the session notification boundary: the envelope
// delivered to a live session and the contract a session exposes for
// accepting one across the execution-context boundary.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allenmylath/propvoice/internal/domain/property"
	"github.com/allenmylath/propvoice/internal/domain/search/outcome"
)

// Kind discriminates envelope payloads.
type Kind string

const (
	// KindResults carries a non-empty property result set.
	KindResults Kind = "property_search_results"
	// KindError carries a failure or an empty result set.
	KindError Kind = "property_search_error"
)

// Session is the live session boundary. Submit schedules envelope
// transmission onto the session's own execution context and returns a
// channel that yields the transmission error (or nil) once the
// transmission has actually run, not merely been enqueued.
type Session interface {
	Submit(ctx context.Context, env Envelope) (<-chan error, error)
}

// Envelope wraps one search outcome for delivery. Created once, sent at
// most once, immutable in transit.
type Envelope struct {
	Type      Kind      `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	SearchID  string    `json:"search_id"`
	Query     string    `json:"query"`

	// Results payload.
	Summary        *Summary                `json:"summary,omitempty"`
	FiltersApplied *outcome.FiltersApplied `json:"filters_applied,omitempty"`
	Properties     []PropertyMessage       `json:"properties,omitempty"`

	// Error payload.
	Error        string `json:"error,omitempty"`
	FailurePoint string `json:"failure_point,omitempty"`
}

// Summary is the results-envelope header block.
type Summary struct {
	TotalFound       int     `json:"total_found"`
	Showing          int     `json:"showing"`
	ExecutionSeconds float64 `json:"execution_time"`
	SearchType       string  `json:"search_type"`
}

// PropertyMessage is the per-property breakdown inside a results envelope.
type PropertyMessage struct {
	ID       string           `json:"id"`
	URL      string           `json:"url"`
	Images   PropertyImages   `json:"images"`
	Details  PropertyDetails  `json:"details"`
	Metadata PropertyMetadata `json:"metadata"`
}

// PropertyImages groups the media references.
type PropertyImages struct {
	Primary string   `json:"primary"`
	All     []string `json:"all"`
}

// PropertyDetails groups the human-facing listing fields.
type PropertyDetails struct {
	Address     string `json:"address"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
	Bedrooms    string `json:"bedrooms"`
	Bathrooms   string `json:"bathrooms"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// PropertyMetadata groups the search bookkeeping fields.
type PropertyMetadata struct {
	SearchScore float64 `json:"search_score"`
	MLSGenuine  string  `json:"mls_genuine"`
	Status      string  `json:"status"`
}

// NewResults builds a results envelope from a successful outcome.
func NewResults(s *outcome.Success, query string) Envelope {
	filters := s.FiltersApplied
	return Envelope{
		Type:      KindResults,
		Timestamp: time.Now(),
		SearchID:  uuid.NewString(),
		Query:     query,
		Summary: &Summary{
			TotalFound:       s.ResultsFound,
			Showing:          len(s.Properties),
			ExecutionSeconds: s.ExecutionSeconds,
			SearchType:       s.SearchType,
		},
		FiltersApplied: &filters,
		Properties:     propertyMessages(s.Properties),
	}
}

// NewError builds an error envelope carrying the session-presentable
// message and the failing stage tag.
func NewError(message, failurePoint, query string) Envelope {
	return Envelope{
		Type:         KindError,
		Timestamp:    time.Now(),
		SearchID:     uuid.NewString(),
		Query:        query,
		Error:        message,
		FailurePoint: failurePoint,
	}
}

func propertyMessages(records []property.Record) []PropertyMessage {
	out := make([]PropertyMessage, 0, len(records))
	for _, r := range records {
		out = append(out, PropertyMessage{
			ID:  r.PropertyID,
			URL: r.URL,
			Images: PropertyImages{
				Primary: r.PrimaryImage,
				All:     r.ImageURLs,
			},
			Details: PropertyDetails{
				Address:     r.Address,
				Price:       r.Price,
				Currency:    r.Currency,
				Bedrooms:    r.Bedrooms,
				Bathrooms:   r.Bathrooms,
				Type:        r.PropertyType,
				Description: r.Description,
			},
			Metadata: PropertyMetadata{
				SearchScore: r.SearchScore,
				MLSGenuine:  r.MLSGenuine,
				Status:      r.Status,
			},
		})
	}
	return out
}
