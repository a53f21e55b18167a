package domain

import (
	"context"
	"errors"
)

var (
	// ErrWalletNotFound is returned by repositories for unknown wallet ids.
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrWalletAlreadyExists is returned when inserting a wallet whose id
	// is already taken.
	ErrWalletAlreadyExists = errors.New("wallet already exists")
)

// WalletRepository is the abstraction for any kind of database intended to
// persist wallets. Implementations store the WalletSnapshot document and
// rebuild the aggregate on load.
type WalletRepository interface {
	// AddWallet persists a freshly created wallet.
	AddWallet(ctx context.Context, wallet *Wallet) error
	// GetWallet returns the wallet with the given id.
	GetWallet(ctx context.Context, walletID string) (*Wallet, error)
	// UpdateWallet loads the wallet, applies updateFn and persists the
	// result atomically. The closure lets callers commit multiple changes
	// to a wallet in a transactional way.
	UpdateWallet(
		ctx context.Context,
		walletID string, updateFn func(w *Wallet) (*Wallet, error),
	) error
}
