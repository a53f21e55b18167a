package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"

	"github.com/randomzgm/bitcore-wallet-service/internal/core/domain"
)

type walletRepository struct {
	store *badgerhold.Store
}

func newWalletRepository(store *badgerhold.Store) *walletRepository {
	return &walletRepository{store: store}
}

func (r *walletRepository) AddWallet(
	_ context.Context, wallet *domain.Wallet,
) error {
	if err := r.store.Insert(wallet.ID, wallet.Snapshot()); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return domain.ErrWalletAlreadyExists
		}
		return err
	}
	return nil
}

func (r *walletRepository) GetWallet(
	_ context.Context, walletID string,
) (*domain.Wallet, error) {
	snapshot, err := r.getSnapshot(walletID)
	if err != nil {
		return nil, err
	}
	return domain.WalletFromSnapshot(*snapshot)
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

	return r.store.Update(walletID, updated.Snapshot())
}

func (r *walletRepository) getSnapshot(walletID string) (*domain.WalletSnapshot, error) {
	var snapshot domain.WalletSnapshot
	if err := r.store.Get(walletID, &snapshot); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return &snapshot, nil
}
