package derivation

import "errors"

var (
	// ErrNullDerivationPath ...
	ErrNullDerivationPath = errors.New("derivation path must not be null")
	// ErrMalformedDerivationPath ...
	ErrMalformedDerivationPath = errors.New("derivation path is malformed")
	// ErrInvalidDerivationPathLength ...
	ErrInvalidDerivationPathLength = errors.New("derivation path must have a branch and an address index")
	// ErrHardenedDerivationPath is returned for paths with hardened steps,
	// which cannot be derived from an extended public key.
	ErrHardenedDerivationPath = errors.New("derivation path must not contain hardened steps")
	// ErrEmptyPublicKeyRing ...
	ErrEmptyPublicKeyRing = errors.New("public key ring must not be empty")
	// ErrInvalidRequiredSignatures ...
	ErrInvalidRequiredSignatures = errors.New("required signatures must be in range [1, len(ring)]")
	// ErrNullChainParams ...
	ErrNullChainParams = errors.New("chain params must not be null")
	// ErrNullCashAddrPrefix ...
	ErrNullCashAddrPrefix = errors.New("cashaddr prefix must not be null")
	// ErrNullStakingHRP ...
	ErrNullStakingHRP = errors.New("staking address prefix must not be null")
	// ErrNullExtendedKey ...
	ErrNullExtendedKey = errors.New("extended public key must not be null")
	// ErrUnsupportedScriptType ...
	ErrUnsupportedScriptType = errors.New("script type is not supported")
	// ErrScriptTypeKeyCount is returned when the number of ring keys does
	// not fit the script type, e.g. a multi-key ring for a pubkey-hash type.
	ErrScriptTypeKeyCount = errors.New("script type does not fit the number of ring keys")
)
