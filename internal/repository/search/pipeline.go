package search

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/allenmylath/propvoice/internal/domain/search/filter"
	"github.com/allenmylath/propvoice/internal/domain/search/plan"
)

// buildPipeline translates a query plan into aggregation stages: vector
// ranking, score materialization, optional structured match, projection,
// score sort, final limit. The match stage is omitted entirely when the
// filter expression is empty.
func buildPipeline(p plan.Plan) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$vectorSearch", Value: bson.D{
			{Key: "index", Value: p.Index()},
			{Key: "path", Value: plan.EmbeddingPath},
			{Key: "queryVector", Value: p.Vector()},
			{Key: "numCandidates", Value: p.NumCandidates()},
			{Key: "limit", Value: p.PoolLimit()},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: plan.ScoreField, Value: bson.D{{Key: "$meta", Value: "vectorSearchScore"}}},
		}}},
	}

	if !p.Filters().IsEmpty() {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: matchConditions(p.Filters())}})
	}

	return append(pipeline,
		bson.D{{Key: "$project", Value: projection()}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: plan.ScoreField, Value: -1}}}},
		bson.D{{Key: "$limit", Value: p.FinalLimit()}},
	)
}

// matchConditions maps each predicate to its store operator. Substring
// values are escaped so pattern metacharacters match literally.
func matchConditions(e filter.Expression) bson.D {
	match := make(bson.D, 0, e.Len())
	for _, c := range e.Conditions() {
		switch {
		case c.IsRange():
			bounds := bson.D{}
			if c.Min() != nil {
				bounds = append(bounds, bson.E{Key: "$gte", Value: *c.Min()})
			}
			if c.Max() != nil {
				bounds = append(bounds, bson.E{Key: "$lte", Value: *c.Max()})
			}
			match = append(match, bson.E{Key: c.Field(), Value: bounds})
		case c.IsEquals():
			match = append(match, bson.E{Key: c.Field(), Value: c.Equals()})
		case c.IsContains():
			match = append(match, bson.E{Key: c.Field(), Value: bson.D{
				{Key: "$regex", Value: regexp.QuoteMeta(c.Contains())},
				{Key: "$options", Value: "i"},
			}})
		case c.IsBool():
			match = append(match, bson.E{Key: c.Field(), Value: c.Bool()})
		}
	}
	return match
}

func projection() bson.D {
	proj := make(bson.D, 0, len(plan.ProjectedFields))
	for _, f := range plan.ProjectedFields {
		proj = append(proj, bson.E{Key: f, Value: 1})
	}
	return proj
}
