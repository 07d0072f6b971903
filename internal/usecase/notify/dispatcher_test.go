package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/allenmylath/propvoice/internal/domain/notify"
	"github.com/allenmylath/propvoice/internal/domain/property"
	"github.com/allenmylath/propvoice/internal/domain/search/outcome"
	"github.com/allenmylath/propvoice/internal/domain/search/stage"
)

type mockSession struct {
	envelopes []notify.Envelope
	submitErr error
	sendErr   error
	hang      bool
}

func (m *mockSession) Submit(_ context.Context, env notify.Envelope) (<-chan error, error) {
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	m.envelopes = append(m.envelopes, env)
	done := make(chan error, 1)
	if !m.hang {
		done <- m.sendErr
	}
	return done, nil
}

func successOutcome(records ...property.Record) outcome.Outcome {
	return outcome.OK(outcome.Success{
		Query:        "3 bedroom house Toronto",
		ResultsFound: len(records),
		Properties:   records,
	})
}

func TestDeliver_ResultsEnvelope(t *testing.T) {
	sess := &mockSession{}
	d := NewDispatcher(zap.NewNop(), time.Second, time.Second)

	d.Deliver(context.Background(), sess, successOutcome(property.Record{PropertyID: "p1"}))

	if len(sess.envelopes) != 1 {
		t.Fatalf("expected 1 envelope, got %d", len(sess.envelopes))
	}
	env := sess.envelopes[0]
	if env.Type != notify.KindResults {
		t.Errorf("expected kind %q, got %q", notify.KindResults, env.Type)
	}
	if env.Summary == nil || env.Summary.Showing != 1 {
		t.Errorf("expected summary showing 1, got %+v", env.Summary)
	}
	if env.Query != "3 bedroom house Toronto" {
		t.Errorf("unexpected query %q", env.Query)
	}
}

func TestDeliver_EmptySuccessBecomesErrorEnvelope(t *testing.T) {
	sess := &mockSession{}
	d := NewDispatcher(zap.NewNop(), time.Second, time.Second)

	d.Deliver(context.Background(), sess, successOutcome())

	if len(sess.envelopes) != 1 {
		t.Fatalf("expected 1 envelope, got %d", len(sess.envelopes))
	}
	env := sess.envelopes[0]
	if env.Type != notify.KindError {
		t.Errorf("expected kind %q, got %q", notify.KindError, env.Type)
	}
	if env.Error != "No properties found" {
		t.Errorf("expected empty-result message, got %q", env.Error)
	}
}

func TestDeliver_FailureEnvelope(t *testing.T) {
	sess := &mockSession{}
	d := NewDispatcher(zap.NewNop(), time.Second, time.Second)

	oc := outcome.Fail(outcome.Failure{
		Error:        "dial tcp: connection refused",
		FailurePoint: stage.DataStoreOperation,
		Query:        "condo downtown",
	})
	d.Deliver(context.Background(), sess, oc)

	if len(sess.envelopes) != 1 {
		t.Fatalf("expected 1 envelope, got %d", len(sess.envelopes))
	}
	env := sess.envelopes[0]
	if env.Type != notify.KindError {
		t.Errorf("expected kind %q, got %q", notify.KindError, env.Type)
	}
	if env.FailurePoint != string(stage.DataStoreOperation) {
		t.Errorf("expected failure point %q, got %q", stage.DataStoreOperation, env.FailurePoint)
	}
	if env.Error == "" {
		t.Error("expected a user-presentable error message")
	}
}

func TestDeliver_NilSessionIsNoOp(t *testing.T) {
	d := NewDispatcher(zap.NewNop(), time.Second, time.Second)

	// Must not panic and must not block.
	d.Deliver(context.Background(), nil, successOutcome(property.Record{PropertyID: "p1"}))
}

func TestDeliver_SubmitError(t *testing.T) {
	sess := &mockSession{submitErr: errors.New("session closed")}
	d := NewDispatcher(zap.NewNop(), time.Second, time.Second)

	d.Deliver(context.Background(), sess, successOutcome(property.Record{PropertyID: "p1"}))

	if len(sess.envelopes) != 0 {
		t.Errorf("expected no recorded envelopes, got %d", len(sess.envelopes))
	}
}

func TestDeliver_TransmissionError(t *testing.T) {
	sess := &mockSession{sendErr: errors.New("write: broken pipe")}
	d := NewDispatcher(zap.NewNop(), time.Second, time.Second)

	// Errors are swallowed; nothing to assert beyond no panic.
	d.Deliver(context.Background(), sess, successOutcome(property.Record{PropertyID: "p1"}))
}

func TestDeliver_Timeout(t *testing.T) {
	sess := &mockSession{hang: true}
	d := NewDispatcher(zap.NewNop(), 20*time.Millisecond, 20*time.Millisecond)

	start := time.Now()
	d.Deliver(context.Background(), sess, successOutcome(property.Record{PropertyID: "p1"}))
	elapsed := time.Since(start)

	if elapsed < 20*time.Millisecond {
		t.Errorf("expected Deliver to wait for the timeout, returned after %v", elapsed)
	}
	if elapsed > time.Second {
		t.Errorf("expected Deliver to return shortly after the timeout, took %v", elapsed)
	}
}

func TestNewDispatcher_DefaultTimeouts(t *testing.T) {
	d := NewDispatcher(zap.NewNop(), 0, 0)

	if d.resultTimeout != 5*time.Second {
		t.Errorf("expected default result timeout 5s, got %v", d.resultTimeout)
	}
	if d.errorTimeout != 3*time.Second {
		t.Errorf("expected default error timeout 3s, got %v", d.errorTimeout)
	}
}
