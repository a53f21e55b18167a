package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/randomzgm/bitcore-wallet-service/internal/core/domain"
)

func TestColdStakingNoSetup(t *testing.T) {
	t.Parallel()

	wallet := newCompleteWallet(t, domain.CoinPART, 2, 2)

	addresses, err := wallet.GetColdStakingAddresses("")
	require.NoError(t, err)
	require.Nil(t, addresses)
}

func TestColdStakingUnsupportedCoin(t *testing.T) {
	t.Parallel()

	wallet := newCompleteWallet(t, domain.CoinBTC, 2, 2)

	err := domain.NewColdStakingCoordinator(wallet).Setup("pcs1qstakingkey", "")
	require.ErrorIs(t, err, domain.ErrPrecondition)

	addresses, err := wallet.GetColdStakingAddresses("")
	require.NoError(t, err)
	require.Nil(t, addresses)
}

func TestColdStakingVerbatimStakingKey(t *testing.T) {
	t.Parallel()

	wallet := newCompleteWallet(t, domain.CoinPART, 2, 2)
	coordinator := domain.NewColdStakingCoordinator(wallet)
	require.NoError(t, coordinator.Setup("pcs1qverbatimstakingkey", ""))

	addresses, err := wallet.GetColdStakingAddresses("")
	require.NoError(t, err)
	require.NotNil(t, addresses)
	require.Equal(t, "pcs1qverbatimstakingkey", addresses.StakingAddress)
	require.NotEmpty(t, addresses.SpendAddress)
	require.Equal(t, addresses.SpendAddress, wallet.ColdStakingSetup.SpendAddress)

	// second call reuses the cached spend address without deriving again
	counters := wallet.AddressManager().Snapshot()
	again, err := wallet.GetColdStakingAddresses("")
	require.NoError(t, err)
	require.Equal(t, addresses.SpendAddress, again.SpendAddress)
	require.Equal(t, counters, wallet.AddressManager().Snapshot())
}

func TestColdStakingExtendedStakingKey(t *testing.T) {
	t.Parallel()

	wallet := newCompleteWallet(t, domain.CoinPART, 2, 2)
	coordinator := domain.NewColdStakingCoordinator(wallet)
	require.NoError(t, coordinator.Setup(testXPubKeys[0], ""))

	first, err := wallet.GetColdStakingAddresses("")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(first.StakingAddress, "pcs1"))
	require.EqualValues(t, 1, wallet.ColdStakingSetup.AddressIndex)

	second, err := wallet.GetColdStakingAddresses("")
	require.NoError(t, err)
	require.EqualValues(t, 2, wallet.ColdStakingSetup.AddressIndex)
	// a consumed index is never reissued
	require.NotEqual(t, first.StakingAddress, second.StakingAddress)
	// the spend address was derived once and is stable across calls
	require.Equal(t, first.SpendAddress, second.SpendAddress)
}

func TestColdStakingCallerSuppliedSpendAddress(t *testing.T) {
	t.Parallel()

	wallet := newCompleteWallet(t, domain.CoinPART, 2, 2)
	coordinator := domain.NewColdStakingCoordinator(wallet)
	require.NoError(t, coordinator.Setup(testXPubKeys[0], ""))

	addresses, err := wallet.GetColdStakingAddresses("supplied-spend-address")
	require.NoError(t, err)
	require.Equal(t, "supplied-spend-address", addresses.SpendAddress)
}

func TestFailingColdStakingSetup(t *testing.T) {
	t.Parallel()

	wallet := newCompleteWallet(t, domain.CoinPART, 2, 2)
	coordinator := domain.NewColdStakingCoordinator(wallet)

	err := coordinator.Setup("bc1qsomewhereelse", "")
	require.ErrorIs(t, err, domain.ErrValidation)
	require.Nil(t, wallet.ColdStakingSetup)
}

func TestColdStakingIndexIsolatedFromAddressIndices(t *testing.T) {
	t.Parallel()

	wallet := newCompleteWallet(t, domain.CoinPART, 2, 2)
	coordinator := domain.NewColdStakingCoordinator(wallet)
	require.NoError(t, coordinator.Setup(testXPubKeys[0], "supplied"))

	_, err := wallet.GetColdStakingAddresses("supplied")
	require.NoError(t, err)
	_, err = wallet.GetColdStakingAddresses("supplied")
	require.NoError(t, err)

	// staking derivation consumed no ordinary index
	addr, err := wallet.CreateAddress(false, false)
	require.NoError(t, err)
	require.Equal(t, "m/2147483647/0/0", addr.Path)
}

func TestCreateColdStakingAddress(t *testing.T) {
	t.Parallel()

	wallet := newCompleteWallet(t, domain.CoinPART, 2, 2)

	t.Run("staking_address_returned_verbatim", func(t *testing.T) {
		addr, err := wallet.CreateColdStakingAddress("pcs1qrawstakingaddress")
		require.NoError(t, err)
		require.Equal(t, "pcs1qrawstakingaddress", addr)
	})

	t.Run("extended_key_derives_on_cold_staking_branch", func(t *testing.T) {
		first, err := wallet.CreateColdStakingAddress(testXPubKeys[0])
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(first, "pcs1"))

		second, err := wallet.CreateColdStakingAddress(testXPubKeys[0])
		require.NoError(t, err)
		require.NotEqual(t, first, second)
	})

	t.Run("unrecognized_input", func(t *testing.T) {
		_, err := wallet.CreateColdStakingAddress("bc1qwrongnetwork")
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("pending_wallet", func(t *testing.T) {
		pending := newTestWallet(t, domain.CoinPART, 2, 2)
		_, err := pending.CreateColdStakingAddress("pcs1qrawstakingaddress")
		require.ErrorIs(t, err, domain.ErrPrecondition)
	})
}
