package search

import (
	"context"

	"github.com/allenmylath/propvoice/internal/domain/notify"
	"github.com/allenmylath/propvoice/internal/domain/property"
	"github.com/allenmylath/propvoice/internal/domain/search/outcome"
	"github.com/allenmylath/propvoice/internal/domain/search/plan"
)

// Repository executes a query plan against the document store and returns
// the raw matches in ranked order.
type Repository interface {
	Run(ctx context.Context, p plan.Plan) ([]property.RawMatch, error)
}

// Notifier delivers one outcome to a live session. It never fails back to
// the caller.
type Notifier interface {
	Deliver(ctx context.Context, sess notify.Session, oc outcome.Outcome)
}
