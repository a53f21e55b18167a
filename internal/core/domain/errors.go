package domain

import (
	"errors"
	"fmt"
)

// Category sentinels. Concrete violations wrap one of these so that callers
// can branch with errors.Is without matching on message text.
var (
	// ErrPrecondition marks operations attempted with invalid arguments or
	// in the wrong wallet state.
	ErrPrecondition = errors.New("precondition violation")
	// ErrValidation marks malformed user-supplied values, e.g. a staking key
	// with an unknown prefix. The wallet state is left untouched.
	ErrValidation = errors.New("validation failure")
)

var (
	// ErrWalletInvalidCopayerLimits ...
	ErrWalletInvalidCopayerLimits = &PreconditionError{"m/n", "required signers m and total copayers n must satisfy 1 <= m <= n <= 15"}
	// ErrWalletUnsupportedCoin ...
	ErrWalletUnsupportedCoin = &PreconditionError{"coin", "coin is not supported"}
	// ErrWalletUnsupportedNetwork ...
	ErrWalletUnsupportedNetwork = &PreconditionError{"network", "network must be either livenet or testnet"}
	// ErrWalletUnsupportedDerivationStrategy ...
	ErrWalletUnsupportedDerivationStrategy = &PreconditionError{"derivationStrategy", "derivation strategy is not supported"}
	// ErrWalletUnsupportedAddressType ...
	ErrWalletUnsupportedAddressType = &PreconditionError{"addressType", "address type is not supported"}
	// ErrWalletNotComplete is returned when an operation requires all n
	// copayers to have joined.
	ErrWalletNotComplete = &PreconditionError{"status", "wallet is not complete"}
	// ErrWalletAlreadyComplete is returned when trying to add a copayer to a
	// wallet that already reached its n copayers.
	ErrWalletAlreadyComplete = &PreconditionError{"status", "wallet is already complete"}
	// ErrCopayerCoinMismatch is returned when a joining copayer is configured
	// for a different coin than the wallet.
	ErrCopayerCoinMismatch = &PreconditionError{"copayer.coin", "copayer coin must match wallet coin"}
	// ErrCopayerNotFound ...
	ErrCopayerNotFound = &PreconditionError{"copayerId", "no copayer with the given id"}
	// ErrAddressManagerNotInitialized is returned when a derivation path is
	// requested from a manager that was never created for a strategy.
	ErrAddressManagerNotInitialized = &PreconditionError{"addressManager", "address manager has not been initialized"}
	// ErrColdStakingNotSupported is returned for cold-staking operations on
	// coins without the capability.
	ErrColdStakingNotSupported = &PreconditionError{"coin", "coin does not support cold staking"}
	// ErrInvalidStakingKey is returned when a staking key is neither a
	// recognized staking address nor an extended public key for the wallet's
	// network.
	ErrInvalidStakingKey = &ValidationError{"coldStakingKey", "staking key must be a staking address or an extended public key valid for the wallet network"}
)

// PreconditionError reports which field violated which constraint so the API
// layer can translate it into a meaningful client error.
type PreconditionError struct {
	Field  string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *PreconditionError) Unwrap() error { return ErrPrecondition }

// ValidationError reports a malformed user-supplied value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// StateConsistencyError signals a broken internal invariant, i.e. a
// programming defect. It is never returned: code that detects one panics,
// since masking it risks fund-affecting address collisions.
type StateConsistencyError struct {
	WalletID  string
	Invariant string
}

func (e *StateConsistencyError) Error() string {
	return fmt.Sprintf("wallet %s: state consistency violated: %s", e.WalletID, e.Invariant)
}
