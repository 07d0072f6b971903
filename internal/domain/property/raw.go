// Package property holds the raw document store match shape and the
// stable, session-consumable property record derived from it.
package property

// RawMatch is one raw document store match. Every field except ID is
// optional: a nil pointer or empty slice means the source document did
// not carry it. Storage drivers map their native documents into this
// shape before formatting.
type RawMatch struct {
	ID          string
	PropertyURL string
	Details     RawDetails
	Processing  RawProcessing
	Score       *float64
}

// RawDetails is the nested property details sub-document.
type RawDetails struct {
	Address        *string
	ListedPrice    *float64
	Currency       *string
	Bedrooms       *string
	Bathrooms      *string
	PropertyType   *string
	MLSDescription *string
	MLSNumber      *string
	MLSIsGenuine   *bool
}

// RawProcessing is the nested processing metadata sub-document.
type RawProcessing struct {
	ImagesAnalyzed []string
	Status         *string
}
