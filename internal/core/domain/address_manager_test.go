package domain_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/randomzgm/bitcore-wallet-service/internal/core/domain"
)

func TestGetNewAddressPath(t *testing.T) {
	t.Parallel()

	am, err := domain.NewAddressManager(domain.DerivationBIP44)
	require.NoError(t, err)

	seen := map[string]struct{}{}
	for i := 0; i < 5; i++ {
		path, err := am.GetNewAddressPath(false)
		require.NoError(t, err)
		require.Equal(t, formatBIP44Path(domain.ReceiveBranch, i), path)
		_, dup := seen[path]
		require.False(t, dup)
		seen[path] = struct{}{}
	}

	// the change branch starts from its own zero and never overlaps the
	// receive branch
	for i := 0; i < 3; i++ {
		path, err := am.GetNewAddressPath(true)
		require.NoError(t, err)
		require.Equal(t, formatBIP44Path(domain.ChangeBranch, i), path)
		_, dup := seen[path]
		require.False(t, dup)
		seen[path] = struct{}{}
	}
}

func TestGetNewColdStakingAddressPath(t *testing.T) {
	t.Parallel()

	am, err := domain.NewAddressManager(domain.DerivationBIP44)
	require.NoError(t, err)

	// consuming ordinary indices must not move the cold staking counter
	_, err = am.GetNewAddressPath(false)
	require.NoError(t, err)
	_, err = am.GetNewAddressPath(true)
	require.NoError(t, err)

	path, err := am.GetNewColdStakingAddressPath()
	require.NoError(t, err)
	require.Equal(t, formatBIP44Path(domain.ColdStakingBranch, 0), path)

	path, err = am.GetNewColdStakingAddressPath()
	require.NoError(t, err)
	require.Equal(t, formatBIP44Path(domain.ColdStakingBranch, 1), path)
}

func TestBIP45PathsCarrySharedCosignerIndex(t *testing.T) {
	t.Parallel()

	am, err := domain.NewAddressManager(domain.DerivationBIP45)
	require.NoError(t, err)

	path, err := am.GetNewAddressPath(false)
	require.NoError(t, err)
	require.Equal(t, "m/2147483647/0/0", path)
}

func TestAddressManagerSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	am, err := domain.NewAddressManager(domain.DerivationBIP45)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err := am.GetNewAddressPath(false)
		require.NoError(t, err)
	}
	_, err = am.GetNewAddressPath(true)
	require.NoError(t, err)
	_, err = am.GetNewColdStakingAddressPath()
	require.NoError(t, err)

	restored, err := domain.AddressManagerFromSnapshot(
		domain.DerivationBIP45, am.Snapshot(),
	)
	require.NoError(t, err)

	// the restored manager continues exactly where the original left off
	expected, err := am.GetNewAddressPath(false)
	require.NoError(t, err)
	got, err := restored.GetNewAddressPath(false)
	require.NoError(t, err)
	require.Equal(t, expected, got)
	require.Equal(t, "m/2147483647/0/4", got)
}

func TestUninitializedAddressManager(t *testing.T) {
	t.Parallel()

	var am domain.AddressManager

	_, err := am.GetNewAddressPath(false)
	require.ErrorIs(t, err, domain.ErrPrecondition)

	_, err = am.GetNewColdStakingAddressPath()
	require.ErrorIs(t, err, domain.ErrPrecondition)
}

func TestNewAddressManagerFailsOnUnknownStrategy(t *testing.T) {
	t.Parallel()

	_, err := domain.NewAddressManager("BIP32")
	require.ErrorIs(t, err, domain.ErrPrecondition)
}

func formatBIP44Path(branch, index int) string {
	return fmt.Sprintf("m/%d/%d", branch, index)
}
