package checkout_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdesk/internal/checkout"
	"shopdesk/internal/session"
)

func newRegistry(g *gateway, clock session.Clock, timeout time.Duration) *checkout.Registry {
	return checkout.NewRegistry(checkout.Deps{Catalog: catalog(), Sales: g, Customers: newCustomers()}, clock, timeout)
}

func TestRegistry_SameSessionPerID(t *testing.T) {
	r := newRegistry(&gateway{}, session.NewManualClock(time.Unix(0, 0)), time.Minute)
	a := r.Get("a")
	assert.Same(t, a, r.Get("a"))
	assert.NotSame(t, a, r.Get("b"))
	assert.Equal(t, 2, r.Len())

	r.Drop("a")
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_IdleSessionExpires(t *testing.T) {
	clock := session.NewManualClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	r := newRegistry(&gateway{}, clock, 10*time.Minute)
	var expired []string
	r.OnExpire = func(id string) { expired = append(expired, id) }

	_, _, err := r.Get("till-1").AddItem(context.Background(), "phone")
	require.NoError(t, err)

	clock.Advance(6 * time.Minute)
	r.Get("till-1")
	clock.Advance(6 * time.Minute)
	assert.Equal(t, 1, r.Len(), "activity should extend the idle window")
	assert.Empty(t, expired)

	clock.Advance(5 * time.Minute)
	assert.Zero(t, r.Len())
	assert.Equal(t, []string{"till-1"}, expired)

	assert.True(t, r.Get("till-1").Cart().IsEmpty(), "expired cart must not come back")
}

func TestRegistry_SessionKeptWhileSubmitting(t *testing.T) {
	clock := session.NewManualClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	g := &gateway{entered: make(chan struct{}), gate: make(chan error)}
	r := newRegistry(g, clock, time.Minute)

	s := r.Get("till-1")
	ctx := context.Background()
	_, _, err := s.AddItem(ctx, "phone")
	require.NoError(t, err)
	walkIn(t, s)

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(ctx)
		done <- err
	}()
	<-g.entered

	clock.Advance(2 * time.Minute)
	assert.Equal(t, 1, r.Len())

	g.gate <- nil
	require.NoError(t, <-done)

	clock.Advance(2 * time.Minute)
	assert.Zero(t, r.Len())
}
