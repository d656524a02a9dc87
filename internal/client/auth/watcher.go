package auth

import (
	"context"
	"sync"

	"github.com/trackr-app/trackr/internal/client/session"
	"github.com/trackr-app/trackr/pkg/api"
)

// Watcher adapts the singleton Service into a per-consumer reactive
// subscription, the way a screen would consume it. Consumers must gate
// authenticated UI on Checked(), not on LoggedIn()'s initial false.
type Watcher struct {
	service *Service

	mu           sync.Mutex
	sub          session.Subscription
	started      bool
	loggedIn     bool
	user         *api.User
	checked      bool
	initializing bool
}

// NewWatcher creates a watcher for the given service. Call Start to
// begin receiving updates and Stop to release the subscription.
func NewWatcher(service *Service) *Watcher {
	return &Watcher{service: service}
}

// Start subscribes to state changes and runs Initialize. The
// initializing flag is raised before the call and dropped afterwards
// whatever the outcome, and checked becomes true once the first answer
// (from Initialize or from any notification) is in.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return
	}
	w.started = true
	w.initializing = true
	w.sub = w.service.Subscribe(w.onAuthChange)
	w.mu.Unlock()

	loggedIn := w.service.Initialize(ctx)

	w.mu.Lock()
	w.loggedIn = loggedIn
	w.user = w.service.CurrentUser()
	w.initializing = false
	w.checked = true
	w.mu.Unlock()
}

// Stop cancels the subscription taken at Start. Idempotent.
func (w *Watcher) Stop() {
	w.mu.Lock()
	sub := w.sub
	w.started = false
	w.mu.Unlock()

	sub.Cancel()
}

// LoggedIn reports the last observed authentication state.
func (w *Watcher) LoggedIn() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loggedIn
}

// CurrentUser returns the last observed user snapshot.
func (w *Watcher) CurrentUser() *api.User {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.user
}

// Checked reports whether an authoritative answer has been observed.
func (w *Watcher) Checked() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.checked
}

// Initializing reports whether Start is still waiting on Initialize.
func (w *Watcher) Initializing() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.initializing
}

// SignOut delegates to the service. Notification fan-out is synchronous,
// so when this returns every listener has already observed the
// unauthenticated state and the caller can safely move on (navigate,
// exit) without any settling delay.
func (w *Watcher) SignOut(ctx context.Context) {
	w.service.SignOut(ctx)
}

func (w *Watcher) onAuthChange(authenticated bool, user *api.User) {
	w.mu.Lock()
	w.loggedIn = authenticated
	w.user = user
	w.checked = true
	w.mu.Unlock()
}
