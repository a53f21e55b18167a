package derivation

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// StakingAddressFromXPubOpts is the struct given to the
// StakingAddressFromXPub function.
type StakingAddressFromXPubOpts struct {
	// XPubKey is the extended staking public key.
	XPubKey string
	// Index is the child index of the staking address to derive.
	Index uint32
	// HRP is the bech32 human readable part of the staking address.
	HRP string
}

func (o StakingAddressFromXPubOpts) validate() error {
	if o.XPubKey == "" {
		return ErrNullExtendedKey
	}
	if o.HRP == "" {
		return ErrNullStakingHRP
	}
	if o.Index >= hdkeychain.HardenedKeyStart {
		return ErrHardenedDerivationPath
	}
	return nil
}

// StakingAddressFromXPub derives the child public key at the given index of
// the staking extended key and renders its hash as a bech32 staking address.
func StakingAddressFromXPub(opts StakingAddressFromXPubOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	hdNode, err := hdkeychain.NewKeyFromString(opts.XPubKey)
	if err != nil {
		return "", err
	}
	child, err := hdNode.Derive(opts.Index)
	if err != nil {
		return "", err
	}
	pubKey, err := child.ECPubKey()
	if err != nil {
		return "", err
	}

	program, err := bech32.ConvertBits(
		btcutil.Hash160(pubKey.SerializeCompressed()), 8, 5, true,
	)
	if err != nil {
		return "", err
	}
	return bech32.Encode(opts.HRP, append([]byte{0}, program...))
}

// StakingAddressForRingOpts is the struct given to the StakingAddressForRing
// function.
type StakingAddressForRingOpts struct {
	PublicKeyRing []string
	Path          string
	M             int
	HRP           string
	ChainParams   *chaincfg.Params
}

func (o StakingAddressForRingOpts) validate() error {
	if len(o.PublicKeyRing) <= 0 {
		return ErrEmptyPublicKeyRing
	}
	if o.M < 1 || o.M > len(o.PublicKeyRing) {
		return ErrInvalidRequiredSignatures
	}
	if o.HRP == "" {
		return ErrNullStakingHRP
	}
	if o.ChainParams == nil {
		return ErrNullChainParams
	}
	path, err := ParseDerivationPath(o.Path)
	if err != nil {
		return err
	}
	return checkAddressPath(path)
}

// StakingAddressForRing advances the ring keys along the path and renders
// the resulting key hash as a bech32 staking address: the single pubkey
// hash for one-key rings, the m-of-n redeem script hash otherwise.
func StakingAddressForRing(opts StakingAddressForRingOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	pubKeys, err := deriveChildPubKeys(opts.PublicKeyRing, opts.Path)
	if err != nil {
		return "", err
	}

	var hash []byte
	if len(pubKeys) == 1 {
		hash = btcutil.Hash160(pubKeys[0].SerializeCompressed())
	} else {
		script, err := MultiSigScript(pubKeys, opts.M, opts.ChainParams)
		if err != nil {
			return "", err
		}
		hash = btcutil.Hash160(script)
	}

	program, err := bech32.ConvertBits(hash, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(opts.HRP, append([]byte{0}, program...))
}

// IsExtendedPublicKey returns whether the given string parses as a usable
// extended public key.
func IsExtendedPublicKey(key string) bool {
	hdNode, err := hdkeychain.NewKeyFromString(key)
	if err != nil {
		return false
	}
	return !hdNode.IsPrivate()
}
