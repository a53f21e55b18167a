package derivation_test

import (
	"strings"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/require"

	"github.com/randomzgm/bitcore-wallet-service/pkg/derivation"
)

// Extended public keys from the BIP32 published test vectors.
var testXPubKeys = []string{
	"xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8",
	"xpub661MyMwAqRbcFW31YEwpkMuc5THy2PSt5bDMsktWQcFF8syAmRUapSCGu8ED9W6oDMSgv6Zz8idoc4a6mr8BDzTJY47LJhkJ8UB7WEGuduB",
	"xpub661MyMwAqRbcEZVB4dScxMAdx6d4nFc9nvyvH3v4gJL378CSRZiYmhRoP7mBy6gSPSCYk6SzXPTf3ND1cZAceL7SfJ1Z3GC8vBgp2epUt13",
}

func TestDeriveAddressIsDeterministic(t *testing.T) {
	t.Parallel()

	opts := derivation.DeriveAddressOpts{
		PublicKeyRing: testXPubKeys,
		Path:          "m/2147483647/0/0",
		M:             2,
		ScriptType:    derivation.P2SH,
		ChainParams:   &chaincfg.MainNetParams,
	}

	first, err := derivation.DeriveAddress(opts)
	require.NoError(t, err)
	second, err := derivation.DeriveAddress(opts)
	require.NoError(t, err)

	require.Equal(t, first.Address, second.Address)
	require.Equal(t, first.RedeemScript, second.RedeemScript)
	require.Equal(t, first.PublicKeys, second.PublicKeys)
}

func TestDeriveAddressIgnoresRingOrder(t *testing.T) {
	t.Parallel()

	shuffled := []string{testXPubKeys[2], testXPubKeys[0], testXPubKeys[1]}

	first, err := derivation.DeriveAddress(derivation.DeriveAddressOpts{
		PublicKeyRing: testXPubKeys,
		Path:          "m/0/0",
		M:             2,
		ScriptType:    derivation.P2SH,
		ChainParams:   &chaincfg.MainNetParams,
	})
	require.NoError(t, err)

	second, err := derivation.DeriveAddress(derivation.DeriveAddressOpts{
		PublicKeyRing: shuffled,
		Path:          "m/0/0",
		M:             2,
		ScriptType:    derivation.P2SH,
		ChainParams:   &chaincfg.MainNetParams,
	})
	require.NoError(t, err)

	require.Equal(t, first.Address, second.Address)
}

func TestDeriveAddressScriptTypes(t *testing.T) {
	t.Parallel()

	t.Run("p2pkh", func(t *testing.T) {
		t.Parallel()

		info, err := derivation.DeriveAddress(derivation.DeriveAddressOpts{
			PublicKeyRing: testXPubKeys[:1],
			Path:          "m/0/0",
			M:             1,
			ScriptType:    derivation.P2PKH,
			ChainParams:   &chaincfg.MainNetParams,
		})
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(info.Address, "1"))
		require.Nil(t, info.RedeemScript)
	})

	t.Run("p2wpkh", func(t *testing.T) {
		t.Parallel()

		info, err := derivation.DeriveAddress(derivation.DeriveAddressOpts{
			PublicKeyRing: testXPubKeys[:1],
			Path:          "m/0/0",
			M:             1,
			ScriptType:    derivation.P2WPKH,
			ChainParams:   &chaincfg.MainNetParams,
		})
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(info.Address, "bc1"))
	})

	t.Run("p2sh", func(t *testing.T) {
		t.Parallel()

		info, err := derivation.DeriveAddress(derivation.DeriveAddressOpts{
			PublicKeyRing: testXPubKeys,
			Path:          "m/0/0",
			M:             2,
			ScriptType:    derivation.P2SH,
			ChainParams:   &chaincfg.MainNetParams,
		})
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(info.Address, "3"))
		require.NotEmpty(t, info.RedeemScript)
		require.Len(t, info.PublicKeys, 3)
	})

	t.Run("p2wsh", func(t *testing.T) {
		t.Parallel()

		info, err := derivation.DeriveAddress(derivation.DeriveAddressOpts{
			PublicKeyRing: testXPubKeys,
			Path:          "m/0/0",
			M:             2,
			ScriptType:    derivation.P2WSH,
			ChainParams:   &chaincfg.MainNetParams,
		})
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(info.Address, "bc1"))
		require.NotEmpty(t, info.RedeemScript)
	})
}

func TestDeriveAddressCashAddr(t *testing.T) {
	t.Parallel()

	legacy, err := derivation.DeriveAddress(derivation.DeriveAddressOpts{
		PublicKeyRing: testXPubKeys[:2],
		Path:          "m/0/0",
		M:             2,
		ScriptType:    derivation.P2SH,
		ChainParams:   &chaincfg.MainNetParams,
	})
	require.NoError(t, err)

	cashaddr, err := derivation.DeriveAddress(derivation.DeriveAddressOpts{
		PublicKeyRing:  testXPubKeys[:2],
		Path:           "m/0/0",
		M:              2,
		ScriptType:     derivation.P2SH,
		ChainParams:    &chaincfg.MainNetParams,
		UseCashAddr:    true,
		CashAddrPrefix: "bitcoincash",
	})
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(cashaddr.Address, "bitcoincash:"))
	require.NotEqual(t, legacy.Address, cashaddr.Address)
	// the two encodings commit to the same redeem script
	require.Equal(t, legacy.RedeemScript, cashaddr.RedeemScript)

	// cashaddr output is stable
	again, err := derivation.DeriveAddress(derivation.DeriveAddressOpts{
		PublicKeyRing:  testXPubKeys[:2],
		Path:           "m/0/0",
		M:              2,
		ScriptType:     derivation.P2SH,
		ChainParams:    &chaincfg.MainNetParams,
		UseCashAddr:    true,
		CashAddrPrefix: "bitcoincash",
	})
	require.NoError(t, err)
	require.Equal(t, cashaddr.Address, again.Address)
}

func TestFailingDeriveAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		opts          derivation.DeriveAddressOpts
		expectedError error
	}{
		{
			name: "empty_ring",
			opts: derivation.DeriveAddressOpts{
				Path:        "m/0/0",
				M:           1,
				ScriptType:  derivation.P2SH,
				ChainParams: &chaincfg.MainNetParams,
			},
			expectedError: derivation.ErrEmptyPublicKeyRing,
		},
		{
			name: "m_out_of_range",
			opts: derivation.DeriveAddressOpts{
				PublicKeyRing: testXPubKeys[:2],
				Path:          "m/0/0",
				M:             3,
				ScriptType:    derivation.P2SH,
				ChainParams:   &chaincfg.MainNetParams,
			},
			expectedError: derivation.ErrInvalidRequiredSignatures,
		},
		{
			name: "hardened_path",
			opts: derivation.DeriveAddressOpts{
				PublicKeyRing: testXPubKeys[:1],
				Path:          "m/0'/0",
				M:             1,
				ScriptType:    derivation.P2PKH,
				ChainParams:   &chaincfg.MainNetParams,
			},
			expectedError: derivation.ErrHardenedDerivationPath,
		},
		{
			name: "path_too_deep",
			opts: derivation.DeriveAddressOpts{
				PublicKeyRing: testXPubKeys[:1],
				Path:          "m/0/0/0/0",
				M:             1,
				ScriptType:    derivation.P2PKH,
				ChainParams:   &chaincfg.MainNetParams,
			},
			expectedError: derivation.ErrInvalidDerivationPathLength,
		},
		{
			name: "multi_key_ring_for_pubkeyhash",
			opts: derivation.DeriveAddressOpts{
				PublicKeyRing: testXPubKeys,
				Path:          "m/0/0",
				M:             1,
				ScriptType:    derivation.P2PKH,
				ChainParams:   &chaincfg.MainNetParams,
			},
			expectedError: derivation.ErrScriptTypeKeyCount,
		},
		{
			name: "unsupported_script_type",
			opts: derivation.DeriveAddressOpts{
				PublicKeyRing: testXPubKeys[:1],
				Path:          "m/0/0",
				M:             1,
				ScriptType:    "P2TR",
				ChainParams:   &chaincfg.MainNetParams,
			},
			expectedError: derivation.ErrUnsupportedScriptType,
		},
		{
			name: "null_chain_params",
			opts: derivation.DeriveAddressOpts{
				PublicKeyRing: testXPubKeys[:1],
				Path:          "m/0/0",
				M:             1,
				ScriptType:    derivation.P2PKH,
			},
			expectedError: derivation.ErrNullChainParams,
		},
		{
			name: "cashaddr_without_prefix",
			opts: derivation.DeriveAddressOpts{
				PublicKeyRing: testXPubKeys[:1],
				Path:          "m/0/0",
				M:             1,
				ScriptType:    derivation.P2PKH,
				ChainParams:   &chaincfg.MainNetParams,
				UseCashAddr:   true,
			},
			expectedError: derivation.ErrNullCashAddrPrefix,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			info, err := derivation.DeriveAddress(tt.opts)
			require.EqualError(t, err, tt.expectedError.Error())
			require.Nil(t, info)
		})
	}
}
