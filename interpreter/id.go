package interpreter

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid"

	"go.appointy.com/graphwalk/adapter"
)

// idSource mints adapter.ID values for freshly-born DataContexts from a
// single mutex-guarded entropy source. Each Interpret call creates its
// own idSource and the walk itself is single-threaded (spec §9), so the
// mutex is not contended by concurrent interpretations.
type idSource struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func newIDSource() *idSource {
	return &idSource{entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)}
}

func (s *idSource) next() adapter.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return adapter.ID(ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy))
}
