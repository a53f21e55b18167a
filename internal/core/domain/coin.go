package domain

import "github.com/btcsuite/btcd/chaincfg"

// Coin identifies a supported currency.
type Coin string

const (
	CoinBTC  Coin = "btc"
	CoinBCH  Coin = "bch"
	CoinPART Coin = "part"
)

// Network identifies the chain a wallet operates on.
type Network string

const (
	Livenet Network = "livenet"
	Testnet Network = "testnet"
)

// DerivationStrategy identifies the hierarchical derivation scheme shared by
// all copayers of a wallet.
type DerivationStrategy string

const (
	DerivationBIP44 DerivationStrategy = "BIP44"
	DerivationBIP45 DerivationStrategy = "BIP45"
)

// ScriptType identifies how an address locks funds.
type ScriptType string

const (
	ScriptP2PKH  ScriptType = "P2PKH"
	ScriptP2WPKH ScriptType = "P2WPKH"
	ScriptP2SH   ScriptType = "P2SH"
	ScriptP2WSH  ScriptType = "P2WSH"
)

// MaxCopayers is the highest supported number of copayers of a shared wallet.
const MaxCopayers = 15

// CoinPolicy is the closed descriptor of a supported coin's capabilities.
// It is resolved once at wallet creation and drives all coin-dependent
// branching afterwards, instead of re-matching on the coin string at every
// call site.
type CoinPolicy struct {
	Coin Coin
	// SupportsSecondaryEncoding is set for coins whose addresses have an
	// alternate string representation of the same underlying hash
	// (bch: cashaddr next to the legacy base58 form).
	SupportsSecondaryEncoding bool
	// SupportsColdStaking is set for coins that can delegate staking rights
	// to a separate key.
	SupportsColdStaking bool
	// CashAddrPrefix is the secondary-encoding prefix per network.
	CashAddrPrefix map[Network]string
	// StakingPrefixes lists the accepted bech32 prefixes of raw staking
	// addresses per network.
	StakingPrefixes map[Network][]string
	// ExtendedKeyPrefixes lists the accepted prefixes of extended public
	// keys usable as incremental staking keys per network.
	ExtendedKeyPrefixes map[Network][]string
	// StakingHRP is the bech32 human readable part used when rendering a
	// derived staking address, per network.
	StakingHRP map[Network]string
	// ChainParams holds the address-encoding parameters per network.
	ChainParams map[Network]*chaincfg.Params
}

// partMainNetParams and partTestNetParams carry only the address-encoding
// versions of the Particl chains; the remaining chaincfg fields are unused
// by address construction.
var (
	partMainNetParams = &chaincfg.Params{
		Name:             "part-mainnet",
		PubKeyHashAddrID: 0x38,
		ScriptHashAddrID: 0x3c,
		Bech32HRPSegwit:  "pw",
	}
	partTestNetParams = &chaincfg.Params{
		Name:             "part-testnet",
		PubKeyHashAddrID: 0x76,
		ScriptHashAddrID: 0x7a,
		Bech32HRPSegwit:  "tpw",
	}
)

var coinPolicies = map[Coin]CoinPolicy{
	CoinBTC: {
		Coin: CoinBTC,
		ChainParams: map[Network]*chaincfg.Params{
			Livenet: &chaincfg.MainNetParams,
			Testnet: &chaincfg.TestNet3Params,
		},
	},
	CoinBCH: {
		Coin:                      CoinBCH,
		SupportsSecondaryEncoding: true,
		CashAddrPrefix: map[Network]string{
			Livenet: "bitcoincash",
			Testnet: "bchtest",
		},
		// bch shares the legacy base58 encoding with btc.
		ChainParams: map[Network]*chaincfg.Params{
			Livenet: &chaincfg.MainNetParams,
			Testnet: &chaincfg.TestNet3Params,
		},
	},
	CoinPART: {
		Coin:                CoinPART,
		SupportsColdStaking: true,
		StakingPrefixes: map[Network][]string{
			Livenet: {"pcs", "pw"},
			Testnet: {"tpcs", "tpw"},
		},
		ExtendedKeyPrefixes: map[Network][]string{
			Livenet: {"xpub", "PPAR"},
			Testnet: {"tpub", "ppar"},
		},
		StakingHRP: map[Network]string{
			Livenet: "pcs",
			Testnet: "tpcs",
		},
		ChainParams: map[Network]*chaincfg.Params{
			Livenet: partMainNetParams,
			Testnet: partTestNetParams,
		},
	},
}

// PolicyForCoin returns the capability descriptor of the given coin.
func PolicyForCoin(c Coin) (CoinPolicy, bool) {
	p, ok := coinPolicies[c]
	return p, ok
}

// IsSupportedNetwork returns whether the given network identifier is known.
func IsSupportedNetwork(n Network) bool {
	return n == Livenet || n == Testnet
}

func isSupportedStrategy(s DerivationStrategy) bool {
	return s == DerivationBIP44 || s == DerivationBIP45
}

func isSupportedScriptType(t ScriptType) bool {
	switch t {
	case ScriptP2PKH, ScriptP2WPKH, ScriptP2SH, ScriptP2WSH:
		return true
	}
	return false
}
