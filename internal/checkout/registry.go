package checkout

import (
	"sync"
	"time"

	applog "shopdesk/internal/log"
	"shopdesk/internal/metrics"
	"shopdesk/internal/session"
)

type entry struct {
	sess *Session
	mon  *session.Monitor
}

// Registry keeps one Session per till session id. Sessions idle for longer
// than the timeout are discarded along with their carts.
type Registry struct {
	deps    Deps
	clock   session.Clock
	timeout time.Duration

	// OnExpire, when set, runs after an idle session has been dropped.
	OnExpire func(id string)

	mu       sync.Mutex
	sessions map[string]*entry
}

func NewRegistry(deps Deps, clock session.Clock, timeout time.Duration) *Registry {
	if clock == nil {
		clock = session.RealClock()
	}
	return &Registry{deps: deps, clock: clock, timeout: timeout, sessions: map[string]*entry{}}
}

// Get returns the session for id, creating it on first use, and records
// activity on it.
func (r *Registry) Get(id string) *Session {
	r.mu.Lock()
	e, ok := r.sessions[id]
	if !ok {
		e = &entry{sess: NewSession(id, r.deps)}
		if r.timeout > 0 {
			e.mon = session.NewMonitor(r.clock, r.timeout, func() { r.expire(id) })
			e.mon.Start()
		}
		r.sessions[id] = e
		metrics.ActiveSessions.Inc()
	}
	r.mu.Unlock()

	if e.mon != nil {
		e.mon.Touch()
	}
	return e.sess
}

// Drop discards the session for id, if any.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	e, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
		metrics.ActiveSessions.Dec()
	}
	r.mu.Unlock()

	if ok && e.mon != nil {
		e.mon.Stop()
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) expire(id string) {
	r.mu.Lock()
	e, ok := r.sessions[id]
	if ok && e.sess.Submitting() {
		// keep it until the sale call returns; the next check will retry
		e.mon.Start()
		r.mu.Unlock()
		return
	}
	if ok {
		delete(r.sessions, id)
		metrics.ActiveSessions.Dec()
	}
	r.mu.Unlock()

	if !ok {
		return
	}
	applog.Info(nil, "checkout.session.expired", map[string]any{"sid": id, "idle_timeout": r.timeout.String()})
	if r.OnExpire != nil {
		r.OnExpire(id)
	}
}

func (r *Registry) Timeout() time.Duration { return r.timeout }
