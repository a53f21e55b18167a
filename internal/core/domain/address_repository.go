package domain

import "context"

// AddressRepository is the abstraction for any kind of database intended to
// persist derived addresses.
type AddressRepository interface {
	// AddAddresses persists the given addresses.
	AddAddresses(ctx context.Context, addresses []*Address) error
	// GetAddressesForWallet returns all addresses derived for a wallet.
	GetAddressesForWallet(ctx context.Context, walletID string) ([]*Address, error)
}
