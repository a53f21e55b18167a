package inmemory

import (
	"github.com/randomzgm/bitcore-wallet-service/internal/core/domain"
	"github.com/randomzgm/bitcore-wallet-service/internal/core/ports"
)

type repoManager struct {
	walletRepository  *walletRepository
	addressRepository *addressRepository
}

// NewRepoManager returns a volatile storage layer, used by tests and
// ephemeral runs.
func NewRepoManager() ports.RepoManager {
	return &repoManager{
		walletRepository:  newWalletRepository(),
		addressRepository: newAddressRepository(),
	}
}

func (m *repoManager) WalletRepository() domain.WalletRepository {
	return m.walletRepository
}

func (m *repoManager) AddressRepository() domain.AddressRepository {
	return m.addressRepository
}

func (m *repoManager) Close() error { return nil }
