package session

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/trackr-app/trackr/pkg/api"
)

// Listener receives authentication state changes.
type Listener func(authenticated bool, user *api.User)

// Subscription is the handle returned by Subscribe. Cancelling is
// idempotent; cancelling an already-removed handle is a no-op. Handles
// are identified by id, not by callback identity, so distinct
// subscriptions of the same function are distinct entries.
type Subscription struct {
	id       uuid.UUID
	registry *Registry
}

// Cancel removes the subscription from its registry.
func (s Subscription) Cancel() {
	if s.registry == nil {
		return
	}
	s.registry.remove(s.id)
}

type entry struct {
	id uuid.UUID
	fn Listener
}

// Registry fans authentication state changes out to subscribers. This is
// the sole mechanism by which consumers learn about session transitions;
// there is no polling.
type Registry struct {
	mu      sync.Mutex
	entries []entry
	logger  *slog.Logger
}

// NewRegistry creates an empty listener registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{logger: logger}
}

// Subscribe registers a listener and returns its handle.
func (r *Registry) Subscribe(fn Listener) Subscription {
	id := uuid.New()

	r.mu.Lock()
	r.entries = append(r.entries, entry{id: id, fn: fn})
	r.mu.Unlock()

	return Subscription{id: id, registry: r}
}

// Len returns the number of registered listeners.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Notify invokes every registered listener in registration order with
// the same arguments. A listener that panics is recovered and logged so
// the remaining listeners still run. Notify returns only after all
// listeners have run, which lets callers treat the notification as
// settled; listener-internal async work is not awaited.
func (r *Registry) Notify(authenticated bool, user *api.User) {
	r.mu.Lock()
	listeners := make([]entry, len(r.entries))
	copy(listeners, r.entries)
	r.mu.Unlock()

	for _, l := range listeners {
		r.invoke(l, authenticated, user)
	}
}

func (r *Registry) invoke(l entry, authenticated bool, user *api.User) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("auth listener panicked", "listener_id", l.id, "panic", rec)
		}
	}()
	l.fn(authenticated, user)
}

func (r *Registry) remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, l := range r.entries {
		if l.id == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}
