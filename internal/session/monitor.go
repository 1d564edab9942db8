// Package session watches idle time and fires a callback once a session has
// been inactive for longer than its timeout.
package session

import (
	"sync"
	"time"
)

// Clock is the time source used by Monitor. Tests substitute a manual clock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock is backed by the time package.
func RealClock() Clock { return realClock{} }

// Monitor tracks the last activity of one session. Start arms it, Touch
// records activity, Stop disarms it. onExpire runs at most once per Start,
// outside the monitor's lock.
type Monitor struct {
	clock    Clock
	timeout  time.Duration
	onExpire func()

	mu       sync.Mutex
	timer    Timer
	lastSeen time.Time
	running  bool
	expired  bool
}

func NewMonitor(clock Clock, timeout time.Duration, onExpire func()) *Monitor {
	if clock == nil {
		clock = RealClock()
	}
	return &Monitor{clock: clock, timeout: timeout, onExpire: onExpire}
}

func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return
	}
	m.running = true
	m.expired = false
	m.lastSeen = m.clock.Now()
	m.timer = m.clock.AfterFunc(m.timeout, m.check)
}

func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = false
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// Touch records activity. It does not re-arm the timer; the pending check
// reschedules itself for the remaining idle window.
func (m *Monitor) Touch() {
	m.mu.Lock()
	m.lastSeen = m.clock.Now()
	m.mu.Unlock()
}

func (m *Monitor) Expired() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.expired
}

func (m *Monitor) LastSeen() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSeen
}

func (m *Monitor) check() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	idle := m.clock.Now().Sub(m.lastSeen)
	if idle < m.timeout {
		m.timer = m.clock.AfterFunc(m.timeout-idle, m.check)
		m.mu.Unlock()
		return
	}
	m.running = false
	m.expired = true
	m.timer = nil
	cb := m.onExpire
	m.mu.Unlock()

	if cb != nil {
		cb()
	}
}
