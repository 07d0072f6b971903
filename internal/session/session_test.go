package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/allenmylath/propvoice/internal/domain"
	"github.com/allenmylath/propvoice/internal/domain/notify"
)

func TestLoop_RunsSubmittedTasks(t *testing.T) {
	l := NewLoop(4)
	defer l.Close()

	var ran atomic.Bool
	done := make(chan struct{})
	if err := l.Submit(func() { ran.Store(true); close(done) }); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task did not run")
	}
	if !ran.Load() {
		t.Error("task side effect missing")
	}
}

func TestLoop_SequentialExecution(t *testing.T) {
	l := NewLoop(16)
	defer l.Close()

	var order []int
	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		i := i
		fn := func() { order = append(order, i) }
		if i == 4 {
			fn = func() { order = append(order, i); close(done) }
		}
		if err := l.Submit(fn); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("tasks did not complete")
	}
	// order is only touched on the loop goroutine, so no race here.
	for i, v := range order {
		if v != i {
			t.Fatalf("tasks ran out of order: %v", order)
		}
	}
}

func TestLoop_SubmitAfterClose(t *testing.T) {
	l := NewLoop(1)
	l.Close()
	l.Close() // idempotent

	err := l.Submit(func() {})
	if !errors.Is(err, domain.ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed, got %v", err)
	}
}

func TestSession_SubmitAndDrain(t *testing.T) {
	s := New("s-1", 8, zap.NewNop())
	defer s.Close()

	env := notify.NewError("No properties found", "data_store_operation", "q")
	done, err := s.Submit(context.Background(), env)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	select {
	case terr := <-done:
		if terr != nil {
			t.Fatalf("transmission error: %v", terr)
		}
	case <-time.After(time.Second):
		t.Fatal("transmission did not complete")
	}

	got := s.Drain()
	if len(got) != 1 {
		t.Fatalf("expected 1 envelope, got %d", len(got))
	}
	if got[0].SearchID != env.SearchID {
		t.Error("drained envelope does not match the submitted one")
	}
	if len(s.Drain()) != 0 {
		t.Error("second drain must be empty")
	}
}

func TestSession_OutboxFull(t *testing.T) {
	s := New("s-2", 1, zap.NewNop())
	defer s.Close()

	first, err := s.Submit(context.Background(), notify.NewError("x", "unexpected_error", "q"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if terr := <-first; terr != nil {
		t.Fatalf("first transmission: %v", terr)
	}

	second, err := s.Submit(context.Background(), notify.NewError("y", "unexpected_error", "q"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if terr := <-second; !errors.Is(terr, domain.ErrOutboxFull) {
		t.Errorf("expected ErrOutboxFull, got %v", terr)
	}
}

func TestSession_SubmitAfterClose(t *testing.T) {
	s := New("s-3", 1, zap.NewNop())
	s.Close()

	_, err := s.Submit(context.Background(), notify.NewError("x", "unexpected_error", "q"))
	if !errors.Is(err, domain.ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed, got %v", err)
	}
}

func TestManager_Lifecycle(t *testing.T) {
	m := NewManager(8, zap.NewNop())

	s := m.Create()
	if s.ID() == "" {
		t.Fatal("session id must be generated")
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d", m.Len())
	}

	got, ok := m.Get(s.ID())
	if !ok || got != s {
		t.Error("Get did not return the created session")
	}

	if !m.Remove(s.ID()) {
		t.Error("Remove returned false for a live session")
	}
	if m.Remove(s.ID()) {
		t.Error("Remove must return false for an unknown session")
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d after remove", m.Len())
	}

	// Removed session's loop is closed.
	_, err := s.Submit(context.Background(), notify.NewError("x", "unexpected_error", "q"))
	if !errors.Is(err, domain.ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed after removal, got %v", err)
	}
}

func TestManager_CloseAll(t *testing.T) {
	m := NewManager(8, zap.NewNop())
	a := m.Create()
	m.Create()

	m.CloseAll()
	if m.Len() != 0 {
		t.Errorf("Len = %d after CloseAll", m.Len())
	}
	_, err := a.Submit(context.Background(), notify.NewError("x", "unexpected_error", "q"))
	if !errors.Is(err, domain.ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed, got %v", err)
	}
}
