package guard

import "sync"

// Result reports a guard decision.
type Result struct {
	Allowed bool
	Reason  string
}

// CompletionGuard deduplicates show-completion attempts within a process.
// The database state machine is the source of truth; this guard just
// short-circuits obvious duplicate requests before they reach it.
type CompletionGuard struct {
	mu   sync.Mutex
	seen map[string]bool
}

// NewCompletionGuard creates an in-memory completion guard.
func NewCompletionGuard() *CompletionGuard {
	return &CompletionGuard{seen: make(map[string]bool)}
}

// Check returns whether the given show has already been completed through
// this process.
func (g *CompletionGuard) Check(key string) Result {
	if key == "" {
		return Result{Allowed: true}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.seen[key] {
		return Result{Allowed: false, Reason: "show already completed"}
	}

	g.seen[key] = true
	return Result{Allowed: true}
}

// Remove deletes a key so a failed completion can be retried.
func (g *CompletionGuard) Remove(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.seen, key)
}
