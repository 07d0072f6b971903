package property

import (
	"fmt"
	"math"
	"strconv"
)

// Formatting conventions for absent source fields.
const (
	naValue         = "N/A"
	defaultCurrency = "CAD"

	maxImages          = 3
	descriptionPreview = 200

	placeholderURLTemplate = "https://images.realtor.com/property/%s/%s.jpg"
)

var placeholderViews = []string{"main", "interior", "exterior"}

// Format derives a Record from one raw match. It is a pure function and
// never fails: absent fields degrade to the documented defaults.
func Format(m RawMatch) Record {
	images := imageURLs(m)

	return Record{
		PropertyID:   m.ID,
		URL:          m.PropertyURL,
		ImageURLs:    images,
		PrimaryImage: primaryImage(images),
		Address:      stringOr(m.Details.Address, naValue),
		Price:        priceOr(m.Details.ListedPrice, naValue),
		Currency:     stringOr(m.Details.Currency, defaultCurrency),
		Bedrooms:     stringOr(m.Details.Bedrooms, naValue),
		Bathrooms:    stringOr(m.Details.Bathrooms, naValue),
		PropertyType: stringOr(m.Details.PropertyType, naValue),
		MLSNumber:    stringOr(m.Details.MLSNumber, naValue),
		MLSGenuine:   boolOr(m.Details.MLSIsGenuine, naValue),
		SearchScore:  roundScore(floatOr(m.Score, 0)),
		Status:       stringOr(m.Processing.Status, naValue),
		Description:  truncateDescription(stringOr(m.Details.MLSDescription, "")),
	}
}

// FormatAll formats every raw match in order.
func FormatAll(matches []RawMatch) []Record {
	records := make([]Record, 0, len(matches))
	for _, m := range matches {
		records = append(records, Format(m))
	}
	return records
}

// imageURLs takes the first three analyzed images, or synthesizes exactly
// three placeholder URLs from the record identifier when none exist.
func imageURLs(m RawMatch) []string {
	analyzed := m.Processing.ImagesAnalyzed
	if len(analyzed) > 0 {
		if len(analyzed) > maxImages {
			analyzed = analyzed[:maxImages]
		}
		out := make([]string, len(analyzed))
		copy(out, analyzed)
		return out
	}

	out := make([]string, 0, len(placeholderViews))
	for _, view := range placeholderViews {
		out = append(out, fmt.Sprintf(placeholderURLTemplate, m.ID, view))
	}
	return out
}

func primaryImage(images []string) string {
	if len(images) == 0 {
		return ""
	}
	return images[0]
}

// truncateDescription keeps the first 200 characters plus an ellipsis
// marker. Empty source stays empty; short descriptions pass unmodified.
func truncateDescription(desc string) string {
	if desc == "" {
		return ""
	}
	r := []rune(desc)
	if len(r) > descriptionPreview {
		return string(r[:descriptionPreview]) + "..."
	}
	return desc
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

func priceOr(v *float64, def string) string {
	if v == nil {
		return def
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func boolOr(v *bool, def string) string {
	if v == nil {
		return def
	}
	return strconv.FormatBool(*v)
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func roundScore(score float64) float64 {
	return math.Round(score*10000) / 10000
}
