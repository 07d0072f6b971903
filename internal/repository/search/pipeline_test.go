package search

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/allenmylath/propvoice/internal/domain/search/filter"
	"github.com/allenmylath/propvoice/internal/domain/search/plan"
)

func ptr[T any](v T) *T { return &v }

func stageName(d bson.D) string {
	if len(d) == 0 {
		return ""
	}
	return d[0].Key
}

func stageValue(t *testing.T, d bson.D) bson.D {
	t.Helper()
	v, ok := d[0].Value.(bson.D)
	if !ok {
		t.Fatalf("stage %s value is %T, want bson.D", d[0].Key, d[0].Value)
	}
	return v
}

func lookup(d bson.D, key string) (interface{}, bool) {
	for _, e := range d {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

func TestBuildPipeline_StageOrder(t *testing.T) {
	filters := filter.Build(filter.Params{Bedrooms: ptr("3")})
	p := plan.Build([]float32{0.1, 0.2}, filters, 5, "vector_index")

	pipeline := buildPipeline(p)

	want := []string{"$vectorSearch", "$addFields", "$match", "$project", "$sort", "$limit"}
	if len(pipeline) != len(want) {
		t.Fatalf("expected %d stages, got %d", len(want), len(pipeline))
	}
	for i, name := range want {
		if got := stageName(pipeline[i]); got != name {
			t.Errorf("stage %d: expected %s, got %s", i, name, got)
		}
	}
}

func TestBuildPipeline_OmitsMatchWhenNoFilters(t *testing.T) {
	p := plan.Build([]float32{0.1}, filter.Expression{}, 5, "vector_index")

	pipeline := buildPipeline(p)

	for _, s := range pipeline {
		if stageName(s) == "$match" {
			t.Fatal("expected no $match stage for an empty filter expression")
		}
	}
	if len(pipeline) != 5 {
		t.Errorf("expected 5 stages without filters, got %d", len(pipeline))
	}
}

func TestBuildPipeline_VectorStage(t *testing.T) {
	p := plan.Build([]float32{0.1, 0.2, 0.3}, filter.Expression{}, 5, "custom_index")

	pipeline := buildPipeline(p)
	vs := stageValue(t, pipeline[0])

	if idx, _ := lookup(vs, "index"); idx != "custom_index" {
		t.Errorf("expected index 'custom_index', got %v", idx)
	}
	if path, _ := lookup(vs, "path"); path != "embedding" {
		t.Errorf("expected path 'embedding', got %v", path)
	}
	if n, _ := lookup(vs, "numCandidates"); n != 50 {
		t.Errorf("expected numCandidates 50, got %v", n)
	}
	if l, _ := lookup(vs, "limit"); l != 25 {
		t.Errorf("expected pool limit 25, got %v", l)
	}
}

func TestBuildPipeline_FinalLimitAndSort(t *testing.T) {
	p := plan.Build([]float32{0.1}, filter.Expression{}, 7, "vector_index")

	pipeline := buildPipeline(p)

	sort := stageValue(t, pipeline[3])
	if v, _ := lookup(sort, "search_score"); v != -1 {
		t.Errorf("expected descending score sort, got %v", v)
	}
	if limit := pipeline[4][0].Value; limit != 7 {
		t.Errorf("expected final limit 7, got %v", limit)
	}
}

func TestMatchConditions_AllPredicateKinds(t *testing.T) {
	filters := filter.Build(filter.Params{
		MinPrice:     ptr(250000.0),
		MaxPrice:     ptr(500000.0),
		Bedrooms:     ptr("3"),
		PropertyType: ptr("house"),
		MLSGenuine:   ptr(true),
	})

	match := matchConditions(filters)

	price, ok := lookup(match, "property_details.listed_price")
	if !ok {
		t.Fatal("expected a price bound")
	}
	bounds := price.(bson.D)
	if gte, _ := lookup(bounds, "$gte"); gte != 250000.0 {
		t.Errorf("expected $gte 250000, got %v", gte)
	}
	if lte, _ := lookup(bounds, "$lte"); lte != 500000.0 {
		t.Errorf("expected $lte 500000, got %v", lte)
	}

	if beds, _ := lookup(match, "property_details.bedrooms"); beds != "3" {
		t.Errorf("expected verbatim bedrooms string, got %v", beds)
	}

	ptype, ok := lookup(match, "property_details.property_type")
	if !ok {
		t.Fatal("expected a property type predicate")
	}
	regex := ptype.(bson.D)
	if pat, _ := lookup(regex, "$regex"); pat != "house" {
		t.Errorf("expected regex 'house', got %v", pat)
	}
	if opts, _ := lookup(regex, "$options"); opts != "i" {
		t.Errorf("expected case-insensitive option, got %v", opts)
	}

	if genuine, _ := lookup(match, "property_details.mls_is_genuine"); genuine != true {
		t.Errorf("expected mls_is_genuine true, got %v", genuine)
	}
}

func TestMatchConditions_EscapesRegexMetacharacters(t *testing.T) {
	filters := filter.Build(filter.Params{Location: ptr("King St. W (Toronto)")})

	match := matchConditions(filters)

	addr, ok := lookup(match, "property_details.address")
	if !ok {
		t.Fatal("expected an address predicate")
	}
	pat, _ := lookup(addr.(bson.D), "$regex")
	want := `King St\. W \(Toronto\)`
	if pat != want {
		t.Errorf("expected escaped pattern %q, got %q", want, pat)
	}
}

func TestRawDoc_ToMatch(t *testing.T) {
	oid := primitive.NewObjectID()
	doc := rawDoc{
		ID:  oid,
		URL: ptr("https://example.com/listing/1"),
		Details: &rawDetails{
			Address:     ptr("12 Main St"),
			ListedPrice: ptr(450000.0),
			Bedrooms:    ptr("3"),
		},
		Processing: &rawProcessing{
			ImagesAnalyzed: []string{"img1.jpg"},
			Status:         ptr("processed"),
		},
		Score: ptr(0.91),
	}

	m := doc.toMatch()

	if m.ID != oid.Hex() {
		t.Errorf("expected hex object id, got %q", m.ID)
	}
	if m.PropertyURL != "https://example.com/listing/1" {
		t.Errorf("unexpected url %q", m.PropertyURL)
	}
	if m.Details.Address == nil || *m.Details.Address != "12 Main St" {
		t.Errorf("unexpected address %v", m.Details.Address)
	}
	if m.Score == nil || *m.Score != 0.91 {
		t.Errorf("unexpected score %v", m.Score)
	}
	if len(m.Processing.ImagesAnalyzed) != 1 {
		t.Errorf("unexpected images %v", m.Processing.ImagesAnalyzed)
	}
}

func TestDocumentID_Variants(t *testing.T) {
	oid := primitive.NewObjectID()

	tests := []struct {
		in   interface{}
		want string
	}{
		{oid, oid.Hex()},
		{"plain-key", "plain-key"},
		{nil, ""},
		{int64(42), "42"},
	}

	for _, tc := range tests {
		if got := documentID(tc.in); got != tc.want {
			t.Errorf("documentID(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
