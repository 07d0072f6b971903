package notify

import (
	"testing"

	"github.com/allenmylath/propvoice/internal/domain/property"
	"github.com/allenmylath/propvoice/internal/domain/search/outcome"
)

func successWithProperties() *outcome.Success {
	oc := outcome.OK(outcome.Success{
		Query:            "3 bedroom house",
		ResultsFound:     2,
		ExecutionSeconds: 0.42,
		Properties: []property.Record{
			{
				PropertyID:   "p1",
				URL:          "https://listings.example.com/p1",
				ImageURLs:    []string{"a.jpg", "b.jpg"},
				PrimaryImage: "a.jpg",
				Address:      "12 King St W",
				Price:        "499000",
				Currency:     "CAD",
				Bedrooms:     "3",
				Bathrooms:    "2",
				PropertyType: "house",
				MLSGenuine:   "true",
				SearchScore:  0.91,
				Status:       "processed",
				Description:  "Bright detached home.",
			},
			{PropertyID: "p2"},
		},
	})
	return oc.Success()
}

func TestNewResults(t *testing.T) {
	env := NewResults(successWithProperties(), "3 bedroom house")

	if env.Type != KindResults {
		t.Errorf("Type = %q", env.Type)
	}
	if env.SearchID == "" {
		t.Error("SearchID must be generated")
	}
	if env.Timestamp.IsZero() {
		t.Error("Timestamp must be stamped")
	}
	if env.Summary == nil {
		t.Fatal("results envelope must carry a summary")
	}
	if env.Summary.TotalFound != 2 || env.Summary.Showing != 2 {
		t.Errorf("summary = %+v", env.Summary)
	}
	if env.Summary.SearchType != outcome.SearchType {
		t.Errorf("SearchType = %q", env.Summary.SearchType)
	}
	if len(env.Properties) != 2 {
		t.Fatalf("expected 2 property messages, got %d", len(env.Properties))
	}

	p := env.Properties[0]
	if p.ID != "p1" || p.Images.Primary != "a.jpg" || len(p.Images.All) != 2 {
		t.Errorf("property message mismatch: %+v", p)
	}
	if p.Details.Price != "499000" || p.Details.Type != "house" {
		t.Errorf("details mismatch: %+v", p.Details)
	}
	if p.Metadata.SearchScore != 0.91 || p.Metadata.MLSGenuine != "true" {
		t.Errorf("metadata mismatch: %+v", p.Metadata)
	}
	if env.Error != "" || env.FailurePoint != "" {
		t.Error("results envelope must not carry error fields")
	}
}

func TestNewError(t *testing.T) {
	env := NewError("No properties found", "data_store_operation", "condo halifax")

	if env.Type != KindError {
		t.Errorf("Type = %q", env.Type)
	}
	if env.Error != "No properties found" {
		t.Errorf("Error = %q", env.Error)
	}
	if env.FailurePoint != "data_store_operation" {
		t.Errorf("FailurePoint = %q", env.FailurePoint)
	}
	if env.Query != "condo halifax" {
		t.Errorf("Query = %q", env.Query)
	}
	if env.Summary != nil || env.Properties != nil {
		t.Error("error envelope must not carry result fields")
	}
}

func TestSearchIDsUnique(t *testing.T) {
	a := NewError("x", "unexpected_error", "q")
	b := NewError("x", "unexpected_error", "q")
	if a.SearchID == b.SearchID {
		t.Error("correlation ids must be freshly generated per envelope")
	}
}
