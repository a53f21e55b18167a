package domain

import (
	"fmt"

	"github.com/randomzgm/bitcore-wallet-service/pkg/derivation"
)

// IsComplete returns whether all n copayers have joined the wallet.
func (w *Wallet) IsComplete() bool {
	return w.Status == WalletStatusComplete
}

// IsShared returns whether the wallet has more than one copayer.
func (w *Wallet) IsShared() bool {
	return w.N > 1
}

// IsScanning returns whether an address scan is in progress for the wallet.
func (w *Wallet) IsScanning() bool {
	return w.ScanStatus == "running"
}

// CopayerByID returns the copayer with the given id.
func (w *Wallet) CopayerByID(copayerID string) (*Copayer, error) {
	for _, c := range w.Copayers {
		if c.ID == copayerID {
			return c, nil
		}
	}
	return nil, ErrCopayerNotFound
}

// AddCopayer appends a copayer to a pending wallet. When the n-th copayer
// joins, the wallet transitions to complete and the public key ring is
// recomputed; the transition happens exactly once and cannot be reverted.
func (w *Wallet) AddCopayer(copayer *Copayer) error {
	if w.IsComplete() {
		return ErrWalletAlreadyComplete
	}
	if copayer.Coin != w.Coin {
		return ErrCopayerCoinMismatch
	}

	w.Copayers = append(w.Copayers, copayer)
	w.updatePublicKeyRing()

	if len(w.Copayers) == w.N {
		w.Status = WalletStatusComplete
	}
	w.checkConsistency()
	return nil
}

// AddCopayerRequestKey registers a new request key for an existing copayer
// of a complete wallet. The previous keys are kept: rotation is additive,
// never destructive.
func (w *Wallet) AddCopayerRequestKey(
	copayerID, requestPubKey, signature, restrictions, name string,
) error {
	if !w.IsComplete() {
		return ErrWalletNotComplete
	}
	copayer, err := w.CopayerByID(copayerID)
	if err != nil {
		return err
	}

	copayer.AddRequestKey(requestPubKey, signature, restrictions, name)
	w.updatePublicKeyRing()
	w.checkConsistency()
	return nil
}

// CreateAddress derives the next unused address on the receive or change
// branch. With preferSecondary the address is rendered in the coin's
// alternate encoding when one exists; the underlying script is unaffected.
func (w *Wallet) CreateAddress(isChange, preferSecondary bool) (*Address, error) {
	if !w.IsComplete() {
		return nil, ErrWalletNotComplete
	}

	path, err := w.newAddressPath(isChange)
	if err != nil {
		return nil, err
	}
	return w.deriveAddressAtPath(path, isChange, preferSecondary)
}

// CreateAddresses derives the next unused address and, for coins with a
// secondary encoding, its alternate rendering. Both results reference the
// same derivation path: the index is consumed exactly once. If the
// secondary derivation fails after the index was consumed, the error is
// surfaced and the consumption is not rolled back, since re-issuing the
// same index is unsafe.
func (w *Wallet) CreateAddresses(isChange bool) ([]*Address, error) {
	if !w.IsComplete() {
		return nil, ErrWalletNotComplete
	}

	path, err := w.newAddressPath(isChange)
	if err != nil {
		return nil, err
	}

	primary, err := w.deriveAddressAtPath(path, isChange, false)
	if err != nil {
		return nil, err
	}
	addresses := []*Address{primary}

	if w.policy.SupportsSecondaryEncoding {
		secondary, err := w.deriveAddressAtPath(path, isChange, true)
		if err != nil {
			return nil, fmt.Errorf(
				"index at path %s consumed but secondary encoding failed: %w",
				path, err,
			)
		}
		addresses = append(addresses, secondary)
	}

	return addresses, nil
}

// GetColdStakingAddresses returns the staking/spend address pair for the
// wallet's cold staking setup. It is a no-op for coins without cold staking
// support or wallets with no setup.
func (w *Wallet) GetColdStakingAddresses(spendAddress string) (*ColdStakingAddresses, error) {
	return NewColdStakingCoordinator(w).Addresses(spendAddress)
}

// CreateColdStakingAddress validates the given staking key and either
// returns it verbatim or derives a staking address from the wallet's own
// key ring on the dedicated cold staking branch.
func (w *Wallet) CreateColdStakingAddress(stakingKey string) (string, error) {
	return NewColdStakingCoordinator(w).CreateColdStakingAddress(stakingKey)
}

// newAddressPath consumes the next index on the requested branch.
// Single-address wallets always reuse the first receive path instead of
// rotating.
func (w *Wallet) newAddressPath(isChange bool) (string, error) {
	if w.SingleAddress {
		if _, err := w.addressManager.branch(); err != nil {
			return "", err
		}
		return w.addressManager.formatPath(ReceiveBranch, 0), nil
	}
	return w.addressManager.GetNewAddressPath(isChange)
}

func (w *Wallet) deriveAddressAtPath(path string, isChange, secondary bool) (*Address, error) {
	useCashAddr := secondary && w.policy.SupportsSecondaryEncoding

	info, err := derivation.DeriveAddress(derivation.DeriveAddressOpts{
		PublicKeyRing:  w.ringXPubKeys(),
		Path:           path,
		M:              w.M,
		ScriptType:     derivation.ScriptType(w.AddressType),
		ChainParams:    w.policy.ChainParams[w.Network],
		UseCashAddr:    useCashAddr,
		CashAddrPrefix: w.policy.CashAddrPrefix[w.Network],
	})
	if err != nil {
		return nil, err
	}

	return newAddress(w, info, isChange), nil
}

func (w *Wallet) ringXPubKeys() []string {
	keys := make([]string, 0, len(w.PublicKeyRing))
	for _, entry := range w.PublicKeyRing {
		keys = append(keys, entry.XPubKey)
	}
	return keys
}

func (w *Wallet) updatePublicKeyRing() {
	ring := make([]PubKeyRingEntry, 0, len(w.Copayers))
	for _, c := range w.Copayers {
		ring = append(ring, PubKeyRingEntry{
			XPubKey:       c.XPubKey,
			RequestPubKey: c.RequestPubKey,
		})
	}
	w.PublicKeyRing = ring
}

// checkConsistency panics on a broken internal invariant. Such a violation
// is a programming defect: masking it could let two copayers derive
// different addresses for the same path.
func (w *Wallet) checkConsistency() {
	if len(w.PublicKeyRing) != len(w.Copayers) {
		panic(&StateConsistencyError{
			WalletID:  w.ID,
			Invariant: "publicKeyRing length must equal copayers length",
		})
	}
	if w.IsComplete() && len(w.Copayers) != w.N {
		panic(&StateConsistencyError{
			WalletID:  w.ID,
			Invariant: "complete wallet must have exactly n copayers",
		})
	}
}
