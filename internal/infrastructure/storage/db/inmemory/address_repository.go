package inmemory

import (
	"context"
	"sync"

	"github.com/randomzgm/bitcore-wallet-service/internal/core/domain"
)

type addressRepository struct {
	mtx       sync.RWMutex
	addresses map[string][]*domain.Address
}

func newAddressRepository() *addressRepository {
	return &addressRepository{
		addresses: map[string][]*domain.Address{},
	}
}

func (r *addressRepository) AddAddresses(
	_ context.Context, addresses []*domain.Address,
) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	for _, addr := range addresses {
		cp := *addr
		r.addresses[addr.WalletID] = append(r.addresses[addr.WalletID], &cp)
	}
	return nil
}

func (r *addressRepository) GetAddressesForWallet(
	_ context.Context, walletID string,
) ([]*domain.Address, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	list := make([]*domain.Address, 0, len(r.addresses[walletID]))
	for _, addr := range r.addresses[walletID] {
		cp := *addr
		list = append(list, &cp)
	}
	return list, nil
}
