package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/allenmylath/propvoice/internal/domain"
	"github.com/allenmylath/propvoice/internal/domain/notify"
)

// Session is one live session: an event loop plus a bounded outbox of
// envelopes awaiting pickup by the session's client.
type Session struct {
	id     string
	loop   *Loop
	outbox chan notify.Envelope
	logger *zap.Logger
}

// Compile-time check: Session implements the notification boundary.
var _ notify.Session = (*Session)(nil)

// New creates a running session.
func New(id string, outboxSize int, logger *zap.Logger) *Session {
	return &Session{
		id:     id,
		loop:   NewLoop(outboxSize),
		outbox: make(chan notify.Envelope, outboxSize),
		logger: logger,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Submit implements notify.Session. The returned channel yields the
// transmission result once the envelope has actually been handed to the
// outbox on the loop goroutine.
func (s *Session) Submit(_ context.Context, env notify.Envelope) (<-chan error, error) {
	done := make(chan error, 1)
	err := s.loop.Submit(func() {
		done <- s.transmit(env)
	})
	if err != nil {
		return nil, err
	}
	return done, nil
}

// transmit runs on the loop goroutine only.
func (s *Session) transmit(env notify.Envelope) error {
	select {
	case s.outbox <- env:
		s.logger.Debug("envelope transmitted",
			zap.String("session_id", s.id),
			zap.String("kind", string(env.Type)),
			zap.String("search_id", env.SearchID),
		)
		return nil
	default:
		return domain.ErrOutboxFull
	}
}

// Drain returns every envelope currently in the outbox without blocking.
func (s *Session) Drain() []notify.Envelope {
	var out []notify.Envelope
	for {
		select {
		case env := <-s.outbox:
			out = append(out, env)
		default:
			return out
		}
	}
}

// Close stops the session loop. Undrained envelopes stay readable.
func (s *Session) Close() {
	s.loop.Close()
}
