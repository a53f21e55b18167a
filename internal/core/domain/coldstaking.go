package domain

import (
	"strings"

	"github.com/randomzgm/bitcore-wallet-service/pkg/derivation"
)

// ColdStakingSetup is the optional cold staking configuration of a wallet.
// StakingKey is either a raw staking address, used verbatim, or an extended
// public key from which staking addresses are derived incrementally via
// AddressIndex. AddressIndex is a consumed, monotonic counter kept apart
// from the wallet's ordinary receive/change indices.
type ColdStakingSetup struct {
	StakingKey   string `json:"staking_key"`
	SpendAddress string `json:"spend_address"`
	AddressIndex uint32 `json:"address_index"`
}

// ColdStakingAddresses pairs the staking address with the spend address
// that retains spending authority.
type ColdStakingAddresses struct {
	StakingAddress string
	SpendAddress   string
}

// ColdStakingCoordinator gathers the wallet's cold staking policy in one
// place: validate the input form, dispatch to verbatim use or
// derive-and-advance, pair with a spend address and persist the result into
// the wallet's setup.
type ColdStakingCoordinator struct {
	wallet *Wallet
}

// NewColdStakingCoordinator returns a coordinator bound to the given wallet.
func NewColdStakingCoordinator(w *Wallet) *ColdStakingCoordinator {
	return &ColdStakingCoordinator{wallet: w}
}

// Setup validates the staking key form and installs a fresh cold staking
// setup on the wallet. An optional spend address may be supplied; otherwise
// it is derived lazily on first use.
func (c *ColdStakingCoordinator) Setup(stakingKey, spendAddress string) error {
	w := c.wallet
	if !w.policy.SupportsColdStaking {
		return ErrColdStakingNotSupported
	}
	if !c.hasStakingPrefix(stakingKey) && !c.isStakingXPub(stakingKey) {
		return ErrInvalidStakingKey
	}

	w.ColdStakingSetup = &ColdStakingSetup{
		StakingKey:   stakingKey,
		SpendAddress: spendAddress,
	}
	return nil
}

// Addresses resolves the staking/spend address pair for the wallet's
// current setup. Coins without cold staking support and wallets without a
// setup yield an empty result. A staking key with a recognized staking
// prefix is used verbatim; an extended public key is advanced by one
// address index per call.
func (c *ColdStakingCoordinator) Addresses(spendAddress string) (*ColdStakingAddresses, error) {
	w := c.wallet
	if !w.policy.SupportsColdStaking || w.ColdStakingSetup == nil {
		return nil, nil
	}
	setup := w.ColdStakingSetup

	switch {
	case c.hasStakingPrefix(setup.StakingKey):
		spend, err := c.spendAddress("")
		if err != nil {
			return nil, err
		}
		return &ColdStakingAddresses{
			StakingAddress: setup.StakingKey,
			SpendAddress:   spend,
		}, nil

	case c.isStakingXPub(setup.StakingKey):
		index := setup.AddressIndex
		setup.AddressIndex++
		staking, err := derivation.StakingAddressFromXPub(
			derivation.StakingAddressFromXPubOpts{
				XPubKey: setup.StakingKey,
				Index:   index,
				HRP:     w.policy.StakingHRP[w.Network],
			},
		)
		if err != nil {
			return nil, err
		}
		spend, err := c.spendAddress(spendAddress)
		if err != nil {
			return nil, err
		}
		return &ColdStakingAddresses{
			StakingAddress: staking,
			SpendAddress:   spend,
		}, nil

	default:
		return nil, ErrInvalidStakingKey
	}
}

// CreateColdStakingAddress validates the given input against the coin's
// accepted staking prefixes and extended-key prefixes. A staking address is
// returned unchanged after the prefix check; full checksum validation is
// deliberately not performed here. An extended public key triggers a
// derivation from the wallet's own key ring on the dedicated cold staking
// branch.
func (c *ColdStakingCoordinator) CreateColdStakingAddress(input string) (string, error) {
	w := c.wallet
	if !w.policy.SupportsColdStaking {
		return "", ErrColdStakingNotSupported
	}
	if !w.IsComplete() {
		return "", ErrWalletNotComplete
	}

	if c.hasStakingPrefix(input) {
		return input, nil
	}

	if c.hasExtendedKeyPrefix(input) && derivation.IsExtendedPublicKey(input) {
		path, err := w.addressManager.GetNewColdStakingAddressPath()
		if err != nil {
			return "", err
		}
		return derivation.StakingAddressForRing(
			derivation.StakingAddressForRingOpts{
				PublicKeyRing: w.ringXPubKeys(),
				Path:          path,
				M:             w.M,
				HRP:           w.policy.StakingHRP[w.Network],
				ChainParams:   w.policy.ChainParams[w.Network],
			},
		)
	}

	return "", ErrInvalidStakingKey
}

// spendAddress returns the spend address to pair with a staking address.
// The caller-supplied one wins; otherwise the cached setup address is used,
// derived once on first call (change branch, secondary encoding preferred)
// and reused afterwards.
func (c *ColdStakingCoordinator) spendAddress(supplied string) (string, error) {
	if supplied != "" {
		return supplied, nil
	}
	setup := c.wallet.ColdStakingSetup
	if setup.SpendAddress != "" {
		return setup.SpendAddress, nil
	}

	addr, err := c.wallet.CreateAddress(true, true)
	if err != nil {
		return "", err
	}
	setup.SpendAddress = addr.Address
	return setup.SpendAddress, nil
}

func (c *ColdStakingCoordinator) hasStakingPrefix(key string) bool {
	for _, prefix := range c.wallet.policy.StakingPrefixes[c.wallet.Network] {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

func (c *ColdStakingCoordinator) hasExtendedKeyPrefix(key string) bool {
	for _, prefix := range c.wallet.policy.ExtendedKeyPrefixes[c.wallet.Network] {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

func (c *ColdStakingCoordinator) isStakingXPub(key string) bool {
	return c.hasExtendedKeyPrefix(key) && derivation.IsExtendedPublicKey(key)
}
