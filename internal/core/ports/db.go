package ports

import (
	"github.com/randomzgm/bitcore-wallet-service/internal/core/domain"
)

// RepoManager gives access to all the repositories of the storage layer.
type RepoManager interface {
	// WalletRepository returns the repository of wallet documents.
	WalletRepository() domain.WalletRepository
	// AddressRepository returns the repository of derived addresses.
	AddressRepository() domain.AddressRepository
	// Close releases the underlying storage resources.
	Close() error
}
