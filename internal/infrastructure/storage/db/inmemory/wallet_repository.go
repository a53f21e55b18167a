package inmemory

import (
	"context"
	"sync"

	"github.com/randomzgm/bitcore-wallet-service/internal/core/domain"
)

// walletRepository keeps wallet documents in a map, storing the snapshot
// shape just like the persistent implementation so load/save round-trips
// are exercised the same way.
type walletRepository struct {
	mtx     sync.RWMutex
	wallets map[string]domain.WalletSnapshot
}

func newWalletRepository() *walletRepository {
	return &walletRepository{
		wallets: map[string]domain.WalletSnapshot{},
	}
}

func (r *walletRepository) AddWallet(
	_ context.Context, wallet *domain.Wallet,
) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.wallets[wallet.ID]; ok {
		return domain.ErrWalletAlreadyExists
	}
	r.wallets[wallet.ID] = wallet.Snapshot()
	return nil
}

func (r *walletRepository) GetWallet(
	_ context.Context, walletID string,
) (*domain.Wallet, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	snapshot, ok := r.wallets[walletID]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	return domain.WalletFromSnapshot(snapshot)
}

func (r *walletRepository) UpdateWallet(
	ctx context.Context,
	walletID string, updateFn func(w *domain.Wallet) (*domain.Wallet, error),
) error {
	wallet, err := r.GetWallet(ctx, walletID)
	if err != nil {
		return err
	}

	updated, err := updateFn(wallet)
	if err != nil {
		return err
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.wallets[walletID] = updated.Snapshot()
	return nil
}
