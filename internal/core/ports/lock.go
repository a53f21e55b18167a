package ports

import "context"

// Locker serializes mutations per wallet id. The service runs as multiple
// concurrent processes against one backing store, so the production
// implementation is a distributed lock; the contract for any implementation
// is at-most-one in-flight mutation per wallet id, with no ordering
// guarantees across distinct wallet ids. Callers must release the lease on
// every exit path, error paths included.
type Locker interface {
	// Acquire blocks until the lease for the wallet id is obtained, the
	// context is cancelled, or the implementation gives up with a
	// contention error.
	Acquire(ctx context.Context, walletID string) (Lease, error)
}

// Lease is an acquired per-wallet exclusive lock.
type Lease interface {
	// Release gives the lock back. It is safe to call more than once.
	Release()
}
