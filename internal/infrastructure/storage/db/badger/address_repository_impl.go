package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/randomzgm/bitcore-wallet-service/internal/core/domain"
)

type addressRepository struct {
	store *badgerhold.Store
}

func newAddressRepository(store *badgerhold.Store) *addressRepository {
	return &addressRepository{store: store}
}

func (r *addressRepository) AddAddresses(
	_ context.Context, addresses []*domain.Address,
) error {
	for _, addr := range addresses {
		if err := r.store.Upsert(addr.Address, *addr); err != nil {
			return err
		}
	}
	return nil
}

func (r *addressRepository) GetAddressesForWallet(
	_ context.Context, walletID string,
) ([]*domain.Address, error) {
	var list []domain.Address
	if err := r.store.Find(
		&list, badgerhold.Where("WalletID").Eq(walletID),
	); err != nil {
		return nil, err
	}

	addresses := make([]*domain.Address, 0, len(list))
	for i := range list {
		addresses = append(addresses, &list[i])
	}
	return addresses, nil
}
