// Package notify delivers search outcomes to a live session. The
// dispatcher is the only bridge between the search execution context and
// the session's event loop.
package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/allenmylath/propvoice/internal/domain/notify"
	"github.com/allenmylath/propvoice/internal/domain/search/outcome"
	"github.com/allenmylath/propvoice/internal/metrics"
)

const (
	defaultResultTimeout = 5 * time.Second
	defaultErrorTimeout  = 3 * time.Second

	emptyResultMessage = "No properties found"
)

// Dispatcher builds a notification envelope from a search outcome and
// submits it onto the session's own execution context, waiting a bounded
// time for the transmission to finish. It never returns an error: failed
// or timed-out deliveries are logged and dropped.
type Dispatcher struct {
	logger        *zap.Logger
	resultTimeout time.Duration
	errorTimeout  time.Duration
}

// NewDispatcher creates a dispatcher. Non-positive timeouts fall back to
// the defaults (5s for results, 3s for errors).
func NewDispatcher(logger *zap.Logger, resultTimeout, errorTimeout time.Duration) *Dispatcher {
	if resultTimeout <= 0 {
		resultTimeout = defaultResultTimeout
	}
	if errorTimeout <= 0 {
		errorTimeout = defaultErrorTimeout
	}
	return &Dispatcher{
		logger:        logger,
		resultTimeout: resultTimeout,
		errorTimeout:  errorTimeout,
	}
}

// Deliver sends one envelope for the given outcome to the session.
// A Success with zero properties is deliberately delivered as an error
// envelope so the session still surfaces an event for empty result sets.
// A nil session is a no-op.
func (d *Dispatcher) Deliver(ctx context.Context, sess notify.Session, oc outcome.Outcome) {
	if sess == nil {
		d.logger.Warn("notification skipped: no session handle", zap.String("query", oc.Query()))
		metrics.NotifyDeliveriesTotal.WithLabelValues(string(notify.KindError), "skipped").Inc()
		return
	}

	env, timeout := d.envelope(oc)

	done, err := sess.Submit(ctx, env)
	if err != nil {
		d.logger.Warn("notification submit failed",
			zap.String("kind", string(env.Type)),
			zap.String("query", env.Query),
			zap.Error(err),
		)
		metrics.NotifyDeliveriesTotal.WithLabelValues(string(env.Type), "error").Inc()
		return
	}

	select {
	case err := <-done:
		if err != nil {
			d.logger.Warn("notification transmission failed",
				zap.String("kind", string(env.Type)),
				zap.String("query", env.Query),
				zap.Error(err),
			)
			metrics.NotifyDeliveriesTotal.WithLabelValues(string(env.Type), "error").Inc()
			return
		}
		d.logger.Debug("notification delivered",
			zap.String("kind", string(env.Type)),
			zap.String("search_id", env.SearchID),
		)
		metrics.NotifyDeliveriesTotal.WithLabelValues(string(env.Type), "sent").Inc()
	case <-time.After(timeout):
		d.logger.Warn("notification delivery timed out",
			zap.String("kind", string(env.Type)),
			zap.String("query", env.Query),
			zap.Duration("timeout", timeout),
		)
		metrics.NotifyDeliveriesTotal.WithLabelValues(string(env.Type), "timeout").Inc()
	}
}

// envelope picks the payload kind and its delivery timeout.
func (d *Dispatcher) envelope(oc outcome.Outcome) (notify.Envelope, time.Duration) {
	if s := oc.Success(); s != nil {
		if len(s.Properties) > 0 {
			return notify.NewResults(s, s.Query), d.resultTimeout
		}
		return notify.NewError(emptyResultMessage, "", s.Query), d.errorTimeout
	}

	f := oc.Failure()
	return notify.NewError(f.UserMessage, string(f.FailurePoint), f.Query), d.errorTimeout
}
