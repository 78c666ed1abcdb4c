package orchestrate

import "sync"

// Guard is the single-flight gate: at most one orchestration operation
// (search, load-more, download) may be in flight at a time. It is a pure
// gate and never fails; callers denied entry surface a "please wait"
// notice rather than an error.
type Guard struct {
	mu   sync.Mutex
	busy bool
}

// TryEnter admits the caller if no operation is in flight. A denied entry
// has no side effect.
func (g *Guard) TryEnter() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.busy {
		return false
	}
	g.busy = true
	return true
}

// Exit releases the gate. It is deferred on every path of a guarded
// operation so a failure can never leave the gate held.
func (g *Guard) Exit() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.busy = false
}

// Busy reports whether an operation is in flight.
func (g *Guard) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy
}
