package domain

import (
	"time"

	"github.com/google/uuid"
)

// WalletVersion is the schema version of the persisted wallet document.
const WalletVersion = 2

// WalletStatus is the onboarding state of a wallet.
type WalletStatus string

const (
	// WalletStatusPending is the state of a wallet still waiting for
	// copayers to join.
	WalletStatusPending WalletStatus = "pending"
	// WalletStatusComplete is the state of a wallet with all n copayers.
	// The transition is one way: membership becomes immutable.
	WalletStatusComplete WalletStatus = "complete"
)

// PubKeyRingEntry is the projection of one copayer's keys used for address
// derivation.
type PubKeyRingEntry struct {
	XPubKey       string `json:"xPubKey"`
	RequestPubKey string `json:"requestPubKey"`
}

// Wallet is the shared m-of-n wallet aggregate: the onboarding state machine
// over its copayers, the address-index counters and the optional cold
// staking configuration. All mutating methods assume the caller holds the
// per-wallet lock (see the Locker port).
type Wallet struct {
	Version            int
	ID                 string
	CreatedOn          int64
	Name               string
	M                  int
	N                  int
	SingleAddress      bool
	Status             WalletStatus
	PublicKeyRing      []PubKeyRingEntry
	Copayers           []*Copayer
	PubKey             string
	Coin               Coin
	Network            Network
	DerivationStrategy DerivationStrategy
	AddressType        ScriptType
	ScanStatus         string
	ColdStakingSetup   *ColdStakingSetup

	addressManager *AddressManager
	policy         CoinPolicy
}

// NewWalletOpts is the struct given to the NewWallet factory.
type NewWalletOpts struct {
	Name string
	M    int
	N    int
	// PubKey is the public key the wallet creator signed the create request
	// with.
	PubKey        string
	Coin          Coin
	Network       Network
	SingleAddress bool
	// DerivationStrategy defaults to BIP44, or BIP45 for shared wallets.
	DerivationStrategy DerivationStrategy
	// AddressType defaults to P2PKH for 1-of-1 wallets and P2SH otherwise.
	AddressType ScriptType
}

// VerifyCopayerLimits reports whether the signature threshold m and total
// copayer count n form a valid combination. Exposed on its own so the API
// layer can validate before attempting wallet creation.
func VerifyCopayerLimits(m, n int) error {
	if m < 1 || n < 1 || m > n || n > MaxCopayers {
		return ErrWalletInvalidCopayerLimits
	}
	return nil
}

// NewWallet validates the given options and returns a fresh pending wallet
// with zero copayers and a zeroed AddressManager.
func NewWallet(opts NewWalletOpts) (*Wallet, error) {
	if err := VerifyCopayerLimits(opts.M, opts.N); err != nil {
		return nil, err
	}
	policy, ok := PolicyForCoin(opts.Coin)
	if !ok {
		return nil, ErrWalletUnsupportedCoin
	}
	if !IsSupportedNetwork(opts.Network) {
		return nil, ErrWalletUnsupportedNetwork
	}

	strategy := opts.DerivationStrategy
	if strategy == "" {
		strategy = DerivationBIP44
		if opts.N > 1 {
			strategy = DerivationBIP45
		}
	}
	if !isSupportedStrategy(strategy) {
		return nil, ErrWalletUnsupportedDerivationStrategy
	}

	addressType := opts.AddressType
	if addressType == "" {
		addressType = ScriptP2SH
		if opts.N == 1 {
			addressType = ScriptP2PKH
		}
	}
	if !isSupportedScriptType(addressType) {
		return nil, ErrWalletUnsupportedAddressType
	}
	if opts.N > 1 && (addressType == ScriptP2PKH || addressType == ScriptP2WPKH) {
		return nil, ErrWalletUnsupportedAddressType
	}

	am, err := NewAddressManager(strategy)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		Version:            WalletVersion,
		ID:                 uuid.New().String(),
		CreatedOn:          time.Now().Unix(),
		Name:               opts.Name,
		M:                  opts.M,
		N:                  opts.N,
		SingleAddress:      opts.SingleAddress,
		Status:             WalletStatusPending,
		PublicKeyRing:      []PubKeyRingEntry{},
		Copayers:           []*Copayer{},
		PubKey:             opts.PubKey,
		Coin:               opts.Coin,
		Network:            opts.Network,
		DerivationStrategy: strategy,
		AddressType:        addressType,
		addressManager:     am,
		policy:             policy,
	}, nil
}

// Policy returns the capability descriptor resolved for the wallet's coin.
func (w *Wallet) Policy() CoinPolicy {
	return w.policy
}

// AddressManager exposes the wallet's derivation-index counters.
func (w *Wallet) AddressManager() *AddressManager {
	return w.addressManager
}
