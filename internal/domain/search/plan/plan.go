// Package plan composes the ranked-retrieval query plan executed against
// the document store: vector similarity ranking, optional structured
// filtering, projection, score sort, and a final limit.
package plan

import "github.com/allenmylath/propvoice/internal/domain/search/filter"

const (
	// ScoreField is the computed similarity score field name.
	ScoreField = "search_score"
	// EmbeddingPath is the stored document field holding the vector.
	EmbeddingPath = "embedding"

	// candidatePoolCap bounds store-side vector search cost.
	candidatePoolCap = 100
	// candidatePoolFactor sizes the candidate pool relative to the limit.
	candidatePoolFactor = 10
	// poolLimitFactor oversizes the pre-filter pool so post-filter results
	// remain plentiful.
	poolLimitFactor = 5
)

// ProjectedFields are the document fields emitted by the projection stage.
var ProjectedFields = []string{
	"_id",
	"property_url",
	"property_details.address",
	"property_details.listed_price",
	"property_details.currency",
	"property_details.bedrooms",
	"property_details.bathrooms",
	"property_details.property_type",
	"property_details.mls_description",
	"property_details.mls_number",
	"property_details.mls_is_genuine",
	"processing_info.images_analyzed",
	"processing_info.status",
	ScoreField,
}

// Plan is an immutable hybrid search query plan.
type Plan struct {
	index         string
	vector        []float32
	numCandidates int
	poolLimit     int
	filters       filter.Expression
	finalLimit    int
}

// Build creates a plan for the given query vector, filters, final limit,
// and vector index name. The candidate pool is min(100, limit*10); the
// pre-filter pool limit is limit*5.
func Build(vector []float32, filters filter.Expression, limit int, index string) Plan {
	numCandidates := limit * candidatePoolFactor
	if numCandidates > candidatePoolCap {
		numCandidates = candidatePoolCap
	}
	return Plan{
		index:         index,
		vector:        vector,
		numCandidates: numCandidates,
		poolLimit:     limit * poolLimitFactor,
		filters:       filters,
		finalLimit:    limit,
	}
}

// Index returns the vector search index name.
func (p Plan) Index() string { return p.index }

// Vector returns the query vector.
func (p Plan) Vector() []float32 { return p.vector }

// NumCandidates returns the vector stage candidate pool size.
func (p Plan) NumCandidates() int { return p.numCandidates }

// PoolLimit returns the intermediate (pre-filter) result limit.
func (p Plan) PoolLimit() int { return p.poolLimit }

// Filters returns the structured filter expression. An empty expression
// means the filter stage is omitted entirely.
func (p Plan) Filters() filter.Expression { return p.filters }

// FinalLimit returns the number of results emitted by the plan.
func (p Plan) FinalLimit() int { return p.finalLimit }
