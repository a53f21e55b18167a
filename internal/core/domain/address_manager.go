package domain

import "fmt"

// Derivation branches. Cold staking uses a dedicated branch so that staking
// derivation can never collide with ordinary address issuance.
const (
	ReceiveBranch     = 0
	ChangeBranch      = 1
	ColdStakingBranch = 2
)

// sharedCosignerIndex is the BIP45 constant prepended to every path derived
// for a shared wallet.
const sharedCosignerIndex = 2147483647

type branchCounters struct {
	ReceiveIndex     uint32 `json:"receiveIndex"`
	ChangeIndex      uint32 `json:"changeIndex"`
	ColdStakingIndex uint32 `json:"coldStakingIndex"`
}

// AddressManager owns the monotonic derivation-index counters of one wallet.
// Counters are kept per derivation strategy; an index is consumed exactly
// once per issued path and never reused. The manager itself is not
// concurrency-safe: callers serialize access per wallet id (see the Locker
// port).
type AddressManager struct {
	strategy DerivationStrategy
	counters map[DerivationStrategy]*branchCounters
}

// AddressManagerSnapshot is the persisted shape of an AddressManager,
// keyed by strategy as in the stored wallet document.
type AddressManagerSnapshot map[DerivationStrategy]struct {
	ReceiveIndex     uint32 `json:"receiveIndex"`
	ChangeIndex      uint32 `json:"changeIndex"`
	ColdStakingIndex uint32 `json:"coldStakingIndex"`
}

// NewAddressManager returns a manager for the given strategy with all
// counters initialized to zero.
func NewAddressManager(strategy DerivationStrategy) (*AddressManager, error) {
	if !isSupportedStrategy(strategy) {
		return nil, ErrWalletUnsupportedDerivationStrategy
	}
	return &AddressManager{
		strategy: strategy,
		counters: map[DerivationStrategy]*branchCounters{
			strategy: {},
		},
	}, nil
}

// Strategy returns the derivation strategy the manager issues paths for.
func (am *AddressManager) Strategy() DerivationStrategy {
	return am.strategy
}

// GetNewAddressPath returns the next unused path on the receive or change
// branch and consumes the corresponding index.
func (am *AddressManager) GetNewAddressPath(isChange bool) (string, error) {
	branch := ReceiveBranch
	if isChange {
		branch = ChangeBranch
	}
	return am.nextPath(branch)
}

// GetNewColdStakingAddressPath returns the next unused path on the cold
// staking branch and consumes its index.
func (am *AddressManager) GetNewColdStakingAddressPath() (string, error) {
	return am.nextPath(ColdStakingBranch)
}

// CurrentAddressPath returns the path of the last issued index on the given
// branch without consuming anything. On a fresh manager it returns the path
// of index 0.
func (am *AddressManager) CurrentAddressPath(isChange bool) (string, error) {
	c, err := am.branch()
	if err != nil {
		return "", err
	}
	index := c.ReceiveIndex
	branch := ReceiveBranch
	if isChange {
		index = c.ChangeIndex
		branch = ChangeBranch
	}
	if index > 0 {
		index--
	}
	return am.formatPath(branch, index), nil
}

func (am *AddressManager) nextPath(branch int) (string, error) {
	c, err := am.branch()
	if err != nil {
		return "", err
	}

	var index uint32
	switch branch {
	case ReceiveBranch:
		index = c.ReceiveIndex
		c.ReceiveIndex++
	case ChangeBranch:
		index = c.ChangeIndex
		c.ChangeIndex++
	case ColdStakingBranch:
		index = c.ColdStakingIndex
		c.ColdStakingIndex++
	}
	return am.formatPath(branch, index), nil
}

func (am *AddressManager) branch() (*branchCounters, error) {
	if am == nil || am.counters == nil {
		return nil, ErrAddressManagerNotInitialized
	}
	c, ok := am.counters[am.strategy]
	if !ok {
		return nil, ErrAddressManagerNotInitialized
	}
	return c, nil
}

func (am *AddressManager) formatPath(branch int, index uint32) string {
	if am.strategy == DerivationBIP45 {
		return fmt.Sprintf("m/%d/%d/%d", sharedCosignerIndex, branch, index)
	}
	return fmt.Sprintf("m/%d/%d", branch, index)
}

// Snapshot returns the persisted counter state. Counter values round-trip
// exactly: losing one would risk re-deriving an already issued address.
func (am *AddressManager) Snapshot() AddressManagerSnapshot {
	out := AddressManagerSnapshot{}
	for strategy, c := range am.counters {
		out[strategy] = struct {
			ReceiveIndex     uint32 `json:"receiveIndex"`
			ChangeIndex      uint32 `json:"changeIndex"`
			ColdStakingIndex uint32 `json:"coldStakingIndex"`
		}{c.ReceiveIndex, c.ChangeIndex, c.ColdStakingIndex}
	}
	return out
}

// AddressManagerFromSnapshot restores a manager for the given strategy from
// its persisted counter state.
func AddressManagerFromSnapshot(
	strategy DerivationStrategy, snapshot AddressManagerSnapshot,
) (*AddressManager, error) {
	am, err := NewAddressManager(strategy)
	if err != nil {
		return nil, err
	}
	for s, c := range snapshot {
		am.counters[s] = &branchCounters{
			ReceiveIndex:     c.ReceiveIndex,
			ChangeIndex:      c.ChangeIndex,
			ColdStakingIndex: c.ColdStakingIndex,
		}
	}
	if _, ok := am.counters[strategy]; !ok {
		am.counters[strategy] = &branchCounters{}
	}
	return am, nil
}
