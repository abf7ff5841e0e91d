// Package ctxwatch lets a single goroutine watch an arbitrary number of
// contexts, one at a time, calling a callback when the currently watched
// one is canceled. The engine uses a fresh ContextWatcher for each blocking
// wait on an operation's outcome to make the otherwise-context-free wire protocol respect a caller's
// context.Context on a blocking operation (§5: "suspension occurs
// implicitly at the transport read boundary").
package ctxwatch

import "context"

// ContextWatcher watches one context.Context at a time. OnCancel runs in
// its own goroutine whenever Watch's context is canceled before Unwatch is
// called; OnUnwatch runs synchronously inside Unwatch after the watch
// goroutine has been asked to stop.
type ContextWatcher struct {
	onCancel  func()
	onUnwatch func()

	unwatchChan chan struct{}
}

// NewContextWatcher returns a ContextWatcher that isn't watching anything.
func NewContextWatcher(onCancel func(), onUnwatch func()) *ContextWatcher {
	return &ContextWatcher{onCancel: onCancel, onUnwatch: onUnwatch}
}

// Watch starts watching ctx. It panics if called while already watching a
// context — callers must Unwatch first.
func (cw *ContextWatcher) Watch(ctx context.Context) {
	if cw.unwatchChan != nil {
		panic("ContextWatcher already watching")
	}

	if ctx.Done() == nil {
		return
	}

	unwatchChan := make(chan struct{})
	cw.unwatchChan = unwatchChan

	go func() {
		select {
		case <-ctx.Done():
			cw.onCancel()
			<-unwatchChan
		case <-unwatchChan:
		}
	}()
}

// Unwatch stops watching the context passed to the most recent Watch call.
// It is always safe to call, including when nothing is being watched and
// when called more than once.
func (cw *ContextWatcher) Unwatch() {
	if cw.unwatchChan != nil {
		close(cw.unwatchChan)
		cw.unwatchChan = nil
	}

	if cw.onUnwatch != nil {
		cw.onUnwatch()
	}
}
