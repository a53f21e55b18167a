package lock

import (
	"context"
	"sync"

	"github.com/randomzgm/bitcore-wallet-service/internal/core/ports"
)

// locker is an in-process implementation of the Locker port, keyed by
// wallet id. It satisfies the at-most-one-mutation-per-wallet contract for
// a single service process; deployments running several processes against
// one store replace it with a distributed lock.
type locker struct {
	mtx    sync.Mutex
	leases map[string]chan struct{}
}

// NewInMemoryLocker returns a per-wallet in-process lock service.
func NewInMemoryLocker() ports.Locker {
	return &locker{
		leases: map[string]chan struct{}{},
	}
}

func (l *locker) Acquire(ctx context.Context, walletID string) (ports.Lease, error) {
	ch := l.leaseChan(walletID)

	select {
	case ch <- struct{}{}:
		return &lease{ch: ch}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *locker) leaseChan(walletID string) chan struct{} {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	ch, ok := l.leases[walletID]
	if !ok {
		ch = make(chan struct{}, 1)
		l.leases[walletID] = ch
	}
	return ch
}

type lease struct {
	ch   chan struct{}
	once sync.Once
}

func (l *lease) Release() {
	l.once.Do(func() { <-l.ch })
}
