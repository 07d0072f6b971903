package property

// Record is the stable output unit delivered to sessions. Constructed once
// per raw match, never mutated afterwards.
type Record struct {
	PropertyID   string   `json:"property_id"`
	URL          string   `json:"url"`
	ImageURLs    []string `json:"image_urls"`
	PrimaryImage string   `json:"primary_image"`
	Address      string   `json:"address"`
	Price        string   `json:"price"`
	Currency     string   `json:"currency"`
	Bedrooms     string   `json:"bedrooms"`
	Bathrooms    string   `json:"bathrooms"`
	PropertyType string   `json:"property_type"`
	MLSNumber    string   `json:"mls_number"`
	MLSGenuine   string   `json:"mls_genuine"`
	SearchScore  float64  `json:"search_score"`
	Status       string   `json:"status"`
	Description  string   `json:"description"`
}
