// Package session implements the live session runtime: a cooperative
// event loop per session, an outbox for delivered envelopes, and a
// manager tracking the sessions a server currently hosts.
package session

import (
	"sync"

	"github.com/allenmylath/propvoice/internal/domain"
)

// Loop is a single-goroutine cooperative event loop. Tasks submitted from
// other goroutines run sequentially on the loop goroutine.
type Loop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

// NewLoop creates and starts a loop with the given task buffer.
func NewLoop(buffer int) *Loop {
	l := &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	for {
		select {
		case fn := <-l.tasks:
			fn()
		case <-l.done:
			return
		}
	}
}

// Submit schedules fn onto the loop goroutine. Returns ErrSessionClosed
// once the loop has been closed.
func (l *Loop) Submit(fn func()) error {
	select {
	case <-l.done:
		return domain.ErrSessionClosed
	default:
	}
	select {
	case l.tasks <- fn:
		return nil
	case <-l.done:
		return domain.ErrSessionClosed
	}
}

// Close stops the loop. Pending buffered tasks are discarded. Safe to
// call more than once.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
}
