package search

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/allenmylath/propvoice/internal/domain/property"
)

// rawDoc mirrors the projected aggregation output. Every field is
// optional; the formatter owns defaulting.
type rawDoc struct {
	ID         interface{}    `bson:"_id"`
	URL        *string        `bson:"property_url"`
	Details    *rawDetails    `bson:"property_details"`
	Processing *rawProcessing `bson:"processing_info"`
	Score      *float64       `bson:"search_score"`
}

type rawDetails struct {
	Address        *string  `bson:"address"`
	ListedPrice    *float64 `bson:"listed_price"`
	Currency       *string  `bson:"currency"`
	Bedrooms       *string  `bson:"bedrooms"`
	Bathrooms      *string  `bson:"bathrooms"`
	PropertyType   *string  `bson:"property_type"`
	MLSDescription *string  `bson:"mls_description"`
	MLSNumber      *string  `bson:"mls_number"`
	MLSIsGenuine   *bool    `bson:"mls_is_genuine"`
}

type rawProcessing struct {
	ImagesAnalyzed []string `bson:"images_analyzed"`
	Status         *string  `bson:"status"`
}

func (d rawDoc) toMatch() property.RawMatch {
	m := property.RawMatch{
		ID:    documentID(d.ID),
		Score: d.Score,
	}
	if d.URL != nil {
		m.PropertyURL = *d.URL
	}
	if d.Details != nil {
		m.Details = property.RawDetails{
			Address:        d.Details.Address,
			ListedPrice:    d.Details.ListedPrice,
			Currency:       d.Details.Currency,
			Bedrooms:       d.Details.Bedrooms,
			Bathrooms:      d.Details.Bathrooms,
			PropertyType:   d.Details.PropertyType,
			MLSDescription: d.Details.MLSDescription,
			MLSNumber:      d.Details.MLSNumber,
			MLSIsGenuine:   d.Details.MLSIsGenuine,
		}
	}
	if d.Processing != nil {
		m.Processing = property.RawProcessing{
			ImagesAnalyzed: d.Processing.ImagesAnalyzed,
			Status:         d.Processing.Status,
		}
	}
	return m
}

// documentID renders the store identifier as a string regardless of
// whether the collection uses ObjectIDs or plain string keys.
func documentID(id interface{}) string {
	switch v := id.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
