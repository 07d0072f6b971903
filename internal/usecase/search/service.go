// Package search orchestrates a hybrid property search: validate the
// query, embed it, run the combined vector+filter plan against the store,
// format the matches, and hand the outcome to the session notifier. Every
// failure is encoded in the returned outcome; Execute never returns an
// error and never panics out.
package search

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/allenmylath/propvoice/internal/domain"
	"github.com/allenmylath/propvoice/internal/domain/notify"
	"github.com/allenmylath/propvoice/internal/domain/property"
	"github.com/allenmylath/propvoice/internal/domain/search/filter"
	"github.com/allenmylath/propvoice/internal/domain/search/outcome"
	"github.com/allenmylath/propvoice/internal/domain/search/plan"
	"github.com/allenmylath/propvoice/internal/domain/search/request"
	"github.com/allenmylath/propvoice/internal/domain/search/stage"
	"github.com/allenmylath/propvoice/internal/domain/search/trace"
	"github.com/allenmylath/propvoice/internal/metrics"
)

// Service runs hybrid property searches.
type Service struct {
	embedder domain.Embedder
	repo     Repository
	notifier Notifier
	logger   *zap.Logger
}

// NewService creates a search service.
func NewService(embedder domain.Embedder, repo Repository, notifier Notifier, logger *zap.Logger) *Service {
	return &Service{
		embedder: embedder,
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// Execute runs one search end to end and returns its outcome. Exactly one
// notification is dispatched per invocation, on success and on every
// failure path alike; delivery happens asynchronously and Execute does
// not wait for it.
func (s *Service) Execute(ctx context.Context, req request.Request, sess notify.Session) (oc outcome.Outcome) {
	start := time.Now()
	tr := trace.New(start)

	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("panic: %v", r)
			tr.Append(stage.UnexpectedError.String(), msg)
			s.logger.Error("search panicked",
				zap.String("query", req.Query()),
				zap.Any("panic", r),
			)
			oc = outcome.Fail(outcome.Failure{
				Error:        msg,
				FailurePoint: stage.UnexpectedError,
				Query:        req.Query(),
				DebugLog:     tr.Entries(),
				FullTrace:    string(debug.Stack()),
			})
		}

		s.observe(oc, time.Since(start))
		// Delivery is decoupled from the request lifetime: the caller gets
		// its outcome back without waiting, and request cancellation does
		// not abort an in-flight notification.
		go s.notifier.Deliver(context.WithoutCancel(ctx), sess, oc)
	}()

	query := strings.TrimSpace(req.Query())
	tr.Append("validating", query)
	if query == "" {
		tr.Append(stage.InputValidation.String(), "empty query text")
		return outcome.Fail(outcome.Failure{
			Error:        domain.ErrEmptyQuery.Error(),
			FailurePoint: stage.InputValidation,
			Query:        req.Query(),
			DebugLog:     tr.Entries(),
		})
	}

	tr.Append("embedding", "requesting query embedding")
	emb, err := s.embedder.Embed(ctx, query)
	if err != nil {
		tr.Append(stage.EmbeddingGeneration.String(), err.Error())
		s.logger.Error("embedding generation failed", zap.String("query", query), zap.Error(err))
		return outcome.Fail(outcome.Failure{
			Error:        fmt.Sprintf("embedding generation failed: %v", err),
			FailurePoint: stage.EmbeddingGeneration,
			Query:        query,
			DebugLog:     tr.Entries(),
		})
	}
	tr.Append("embedding", fmt.Sprintf("received %d-dimensional vector", len(emb.Embedding)))

	filters := filter.Build(req.Filters())
	p := plan.Build(emb.Embedding, filters, req.Limit(), req.Index())
	tr.Append("composing_and_querying", fmt.Sprintf(
		"index=%s candidates=%d pool=%d filters=%d limit=%d",
		p.Index(), p.NumCandidates(), p.PoolLimit(), filters.Len(), p.FinalLimit(),
	))

	matches, err := s.repo.Run(ctx, p)
	if err != nil {
		tr.Append(stage.DataStoreOperation.String(), err.Error())
		s.logger.Error("document store query failed", zap.String("query", query), zap.Error(err))
		return outcome.Fail(outcome.Failure{
			Error:        fmt.Sprintf("document store query failed: %v", err),
			FailurePoint: stage.DataStoreOperation,
			Query:        query,
			DebugLog:     tr.Entries(),
		})
	}

	tr.Append("formatting", fmt.Sprintf("%d raw matches", len(matches)))
	records := property.FormatAll(matches)

	tr.Append("done", fmt.Sprintf("returning %d properties", len(records)))
	s.logger.Info("search completed",
		zap.String("query", query),
		zap.Int("results", len(records)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return outcome.OK(outcome.Success{
		Query:               query,
		EmbeddingDimensions: len(emb.Embedding),
		FiltersApplied:      outcome.FiltersFromParams(req.Filters()),
		ResultsFound:        len(records),
		TopScores:           similarityScores(records),
		Properties:          records,
		ExecutionSeconds:    time.Since(start).Seconds(),
		DebugLog:            tr.Entries(),
	})
}

func (s *Service) observe(oc outcome.Outcome, elapsed time.Duration) {
	metrics.SearchDuration.Observe(elapsed.Seconds())
	if f := oc.Failure(); f != nil {
		metrics.SearchRequestsTotal.WithLabelValues("failure", f.FailurePoint.String()).Inc()
		return
	}
	metrics.SearchRequestsTotal.WithLabelValues("success", "").Inc()
	if suc := oc.Success(); suc != nil {
		metrics.SearchResultsFound.Observe(float64(suc.ResultsFound))
	}
}

func similarityScores(records []property.Record) []float64 {
	scores := make([]float64, 0, len(records))
	for _, r := range records {
		scores = append(scores, r.SearchScore)
	}
	return scores
}
