package application

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/randomzgm/bitcore-wallet-service/internal/core/domain"
	"github.com/randomzgm/bitcore-wallet-service/internal/core/ports"
)

// WalletService exposes the wallet use cases. Every mutation acquires the
// per-wallet lease before touching storage and releases it on all paths;
// derivation-index consumption is never rolled back once an update has been
// committed.
type WalletService struct {
	repoManager ports.RepoManager
	locker      ports.Locker
}

// NewWalletService returns a service backed by the given storage and
// locking collaborators.
func NewWalletService(
	repoManager ports.RepoManager, locker ports.Locker,
) *WalletService {
	return &WalletService{
		repoManager: repoManager,
		locker:      locker,
	}
}

// CreateWalletInfo groups the arguments of CreateWallet.
type CreateWalletInfo struct {
	Name               string
	M                  int
	N                  int
	PubKey             string
	Coin               domain.Coin
	Network            domain.Network
	SingleAddress      bool
	DerivationStrategy domain.DerivationStrategy
	AddressType        domain.ScriptType
}

// CreateWallet creates a pending wallet and returns its id.
func (s *WalletService) CreateWallet(
	ctx context.Context, info CreateWalletInfo,
) (string, error) {
	wallet, err := domain.NewWallet(domain.NewWalletOpts{
		Name:               info.Name,
		M:                  info.M,
		N:                  info.N,
		PubKey:             info.PubKey,
		Coin:               info.Coin,
		Network:            info.Network,
		SingleAddress:      info.SingleAddress,
		DerivationStrategy: info.DerivationStrategy,
		AddressType:        info.AddressType,
	})
	if err != nil {
		return "", err
	}

	if err := s.repoManager.WalletRepository().AddWallet(ctx, wallet); err != nil {
		return "", err
	}

	log.WithFields(log.Fields{
		"wallet": wallet.ID,
		"coin":   wallet.Coin,
		"m":      wallet.M,
		"n":      wallet.N,
	}).Debug("wallet created")
	return wallet.ID, nil
}

// JoinWalletInfo groups the arguments of JoinWallet.
type JoinWalletInfo struct {
	Coin          domain.Coin
	Name          string
	XPubKey       string
	RequestPubKey string
	Signature     string
}

// JoinWallet adds a copayer to a pending wallet and returns the copayer id.
func (s *WalletService) JoinWallet(
	ctx context.Context, walletID string, info JoinWalletInfo,
) (string, error) {
	copayer, err := domain.NewCopayer(
		info.Coin, info.Name, info.XPubKey, info.RequestPubKey, info.Signature,
	)
	if err != nil {
		return "", err
	}

	if err := s.updateWallet(ctx, walletID, func(w *domain.Wallet) error {
		return w.AddCopayer(copayer)
	}); err != nil {
		return "", err
	}

	log.WithFields(log.Fields{
		"wallet":  walletID,
		"copayer": copayer.ID,
	}).Debug("copayer joined")
	return copayer.ID, nil
}

// AddAccessKey registers an additional request key for a copayer of a
// complete wallet.
func (s *WalletService) AddAccessKey(
	ctx context.Context,
	walletID, copayerID, requestPubKey, signature, restrictions, name string,
) error {
	return s.updateWallet(ctx, walletID, func(w *domain.Wallet) error {
		return w.AddCopayerRequestKey(
			copayerID, requestPubKey, signature, restrictions, name,
		)
	})
}

// NewAddress derives the next unused address on the receive or change
// branch and persists it.
func (s *WalletService) NewAddress(
	ctx context.Context, walletID string, change bool,
) (*domain.Address, error) {
	var address *domain.Address
	if err := s.updateWallet(ctx, walletID, func(w *domain.Wallet) error {
		var err error
		address, err = w.CreateAddress(change, false)
		return err
	}); err != nil {
		return nil, err
	}

	if err := s.repoManager.AddressRepository().AddAddresses(
		ctx, []*domain.Address{address},
	); err != nil {
		return nil, err
	}
	return address, nil
}

// NewAddresses derives the next unused address in every encoding the
// wallet's coin supports and persists the results. All returned addresses
// reference the same derivation path.
func (s *WalletService) NewAddresses(
	ctx context.Context, walletID string, change bool,
) ([]*domain.Address, error) {
	var addresses []*domain.Address
	if err := s.updateWallet(ctx, walletID, func(w *domain.Wallet) error {
		var err error
		addresses, err = w.CreateAddresses(change)
		return err
	}); err != nil {
		return nil, err
	}

	if err := s.repoManager.AddressRepository().AddAddresses(ctx, addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// SetupColdStaking installs a cold staking configuration on the wallet.
func (s *WalletService) SetupColdStaking(
	ctx context.Context, walletID, stakingKey, spendAddress string,
) error {
	return s.updateWallet(ctx, walletID, func(w *domain.Wallet) error {
		return domain.NewColdStakingCoordinator(w).Setup(stakingKey, spendAddress)
	})
}

// ColdStakingAddresses resolves the staking/spend address pair for the
// wallet's cold staking setup. The setup may be mutated (index advance,
// cached spend address), so the operation runs under the wallet lease.
func (s *WalletService) ColdStakingAddresses(
	ctx context.Context, walletID, spendAddress string,
) (*domain.ColdStakingAddresses, error) {
	var addresses *domain.ColdStakingAddresses
	if err := s.updateWallet(ctx, walletID, func(w *domain.Wallet) error {
		var err error
		addresses, err = w.GetColdStakingAddresses(spendAddress)
		return err
	}); err != nil {
		return nil, err
	}
	return addresses, nil
}

// CreateColdStakingAddress validates the given staking key against the
// wallet's coin policy and returns either the key itself or an address
// derived on the cold staking branch.
func (s *WalletService) CreateColdStakingAddress(
	ctx context.Context, walletID, stakingKey string,
) (string, error) {
	var address string
	if err := s.updateWallet(ctx, walletID, func(w *domain.Wallet) error {
		var err error
		address, err = w.CreateColdStakingAddress(stakingKey)
		return err
	}); err != nil {
		return "", err
	}
	return address, nil
}

// GetWallet returns the wallet with the given id. Reads need no lease since
// they only see committed state.
func (s *WalletService) GetWallet(
	ctx context.Context, walletID string,
) (*domain.Wallet, error) {
	return s.repoManager.WalletRepository().GetWallet(ctx, walletID)
}

func (s *WalletService) updateWallet(
	ctx context.Context, walletID string, mutate func(w *domain.Wallet) error,
) error {
	lease, err := s.locker.Acquire(ctx, walletID)
	if err != nil {
		return err
	}
	defer lease.Release()

	return s.repoManager.WalletRepository().UpdateWallet(
		ctx, walletID, func(w *domain.Wallet) (*domain.Wallet, error) {
			if err := mutate(w); err != nil {
				return nil, err
			}
			return w, nil
		},
	)
}
