package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDs generates "<prefix>-1", "<prefix>-2", ... identities.
//
// The same test with a fresh SequentialIDs produces byte-identical
// snapshots, which golden-file comparison depends on.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequentialIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialIDs creates a generator. An empty prefix means "task".
func NewSequentialIDs(prefix string) *SequentialIDs {
	if prefix == "" {
		prefix = "task"
	}
	return &SequentialIDs{prefix: prefix}
}

// Generate returns the next identity.
func (g *SequentialIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
