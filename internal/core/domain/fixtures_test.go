package domain_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/randomzgm/bitcore-wallet-service/internal/core/domain"
)

// Extended public keys from the BIP32 published test vectors: valid,
// derivable and stable.
var testXPubKeys = []string{
	"xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8",
	"xpub661MyMwAqRbcFW31YEwpkMuc5THy2PSt5bDMsktWQcFF8syAmRUapSCGu8ED9W6oDMSgv6Zz8idoc4a6mr8BDzTJY47LJhkJ8UB7WEGuduB",
	"xpub661MyMwAqRbcEZVB4dScxMAdx6d4nFc9nvyvH3v4gJL378CSRZiYmhRoP7mBy6gSPSCYk6SzXPTf3ND1cZAceL7SfJ1Z3GC8vBgp2epUt13",
}

func newTestWallet(t *testing.T, coin domain.Coin, m, n int) *domain.Wallet {
	t.Helper()

	wallet, err := domain.NewWallet(domain.NewWalletOpts{
		Name:    "shared wallet",
		M:       m,
		N:       n,
		PubKey:  "03cbcaa9c98c877a26977d00825c956a238e8dddfbd322cce4f74b0b5bd6ace4a7",
		Coin:    coin,
		Network: domain.Livenet,
	})
	require.NoError(t, err)
	return wallet
}

func newCompleteWallet(t *testing.T, coin domain.Coin, m, n int) *domain.Wallet {
	t.Helper()

	wallet := newTestWallet(t, coin, m, n)
	for i := 0; i < n; i++ {
		require.NoError(t, wallet.AddCopayer(newTestCopayer(t, coin, i)))
	}
	require.True(t, wallet.IsComplete())
	return wallet
}

func newTestCopayer(t *testing.T, coin domain.Coin, i int) *domain.Copayer {
	t.Helper()

	copayer, err := domain.NewCopayer(
		coin,
		fmt.Sprintf("copayer-%d", i),
		testXPubKeys[i%len(testXPubKeys)],
		fmt.Sprintf("request-key-%d", i),
		fmt.Sprintf("signature-%d", i),
	)
	require.NoError(t, err)
	return copayer
}
