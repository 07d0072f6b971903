// Package search executes hybrid query plans against a MongoDB Atlas
// collection. The connection lifetime is scoped to one invocation: opened
// on entry, released on every exit path.
package search

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/allenmylath/propvoice/internal/domain"
	"github.com/allenmylath/propvoice/internal/domain/property"
	"github.com/allenmylath/propvoice/internal/domain/search/plan"
)

// Repo runs aggregation pipelines against the property collection.
type Repo struct {
	uri        string
	database   string
	collection string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewRepo creates a repository for the given connection settings.
func NewRepo(uri, database, collection string, timeout time.Duration, logger *zap.Logger) *Repo {
	return &Repo{
		uri:        uri,
		database:   database,
		collection: collection,
		timeout:    timeout,
		logger:     logger,
	}
}

// Run executes the query plan and returns raw matches in ranked order.
func (r *Repo) Run(ctx context.Context, p plan.Plan) ([]property.RawMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(r.uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %v: %w", err, domain.ErrStoreUnavailable)
	}
	defer r.disconnect(client)

	coll := client.Database(r.database).Collection(r.collection)

	cursor, err := coll.Aggregate(ctx, buildPipeline(p))
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	defer cursor.Close(ctx) //nolint:errcheck

	var docs []rawDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode matches: %w", err)
	}

	matches := make([]property.RawMatch, 0, len(docs))
	for _, d := range docs {
		matches = append(matches, d.toMatch())
	}

	r.logger.Debug("aggregation completed",
		zap.String("collection", r.collection),
		zap.Int("matches", len(matches)),
	)
	return matches, nil
}

// Ping verifies store connectivity for readiness checks.
func (r *Repo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(r.uri))
	if err != nil {
		return fmt.Errorf("connect: %v: %w", err, domain.ErrStoreUnavailable)
	}
	defer r.disconnect(client)

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping: %v: %w", err, domain.ErrStoreUnavailable)
	}
	return nil
}

func (r *Repo) disconnect(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		r.logger.Warn("document store disconnect failed", zap.Error(err))
	}
}
