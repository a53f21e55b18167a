package derivation

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// ScriptType identifies the locking script an address commits to.
type ScriptType string

const (
	P2PKH  ScriptType = "P2PKH"
	P2WPKH ScriptType = "P2WPKH"
	P2SH   ScriptType = "P2SH"
	P2WSH  ScriptType = "P2WSH"
)

// AddressInfo is the result of a derivation: the encoded address together
// with the inputs needed to re-derive or spend from it.
type AddressInfo struct {
	Address      string
	Path         string
	ScriptType   ScriptType
	PublicKeys   []string
	RedeemScript []byte
}

// DeriveAddressOpts is the struct given to the DeriveAddress function.
type DeriveAddressOpts struct {
	// PublicKeyRing holds one extended public key per copayer.
	PublicKeyRing []string
	// Path is the relative derivation path applied to every ring key.
	Path string
	// M is the number of required signatures for multisig script types.
	M int
	// ScriptType selects the locking script and therefore the address kind.
	ScriptType ScriptType
	// ChainParams selects the base58/bech32 encoding parameters.
	ChainParams *chaincfg.Params
	// UseCashAddr renders the address in the alternate cashaddr form
	// instead of legacy base58. Only meaningful for P2PKH and P2SH.
	UseCashAddr bool
	// CashAddrPrefix is the network prefix for the cashaddr form.
	CashAddrPrefix string
}

func (o DeriveAddressOpts) validate() error {
	path, err := ParseDerivationPath(o.Path)
	if err != nil {
		return err
	}
	if err := checkAddressPath(path); err != nil {
		return err
	}
	if len(o.PublicKeyRing) <= 0 {
		return ErrEmptyPublicKeyRing
	}
	if o.M < 1 || o.M > len(o.PublicKeyRing) {
		return ErrInvalidRequiredSignatures
	}
	if o.ChainParams == nil {
		return ErrNullChainParams
	}
	switch o.ScriptType {
	case P2PKH, P2WPKH:
		if len(o.PublicKeyRing) != 1 {
			return ErrScriptTypeKeyCount
		}
	case P2SH, P2WSH:
	default:
		return ErrUnsupportedScriptType
	}
	if o.UseCashAddr {
		if o.ScriptType == P2WPKH || o.ScriptType == P2WSH {
			return ErrUnsupportedScriptType
		}
		if o.CashAddrPrefix == "" {
			return ErrNullCashAddrPrefix
		}
	}
	return nil
}

// DeriveAddress advances every ring key along the path and builds the
// address for the requested script type. It is a pure function: identical
// inputs always produce an identical address.
func DeriveAddress(opts DeriveAddressOpts) (*AddressInfo, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	pubKeys, err := deriveChildPubKeys(opts.PublicKeyRing, opts.Path)
	if err != nil {
		return nil, err
	}

	info := &AddressInfo{
		Path:       opts.Path,
		ScriptType: opts.ScriptType,
		PublicKeys: serializeAll(pubKeys),
	}

	switch opts.ScriptType {
	case P2PKH:
		hash := btcutil.Hash160(pubKeys[0].SerializeCompressed())
		if opts.UseCashAddr {
			info.Address, err = encodeCashAddr(
				opts.CashAddrPrefix, cashAddrTypePubKeyHash, hash,
			)
		} else {
			var addr *btcutil.AddressPubKeyHash
			addr, err = btcutil.NewAddressPubKeyHash(hash, opts.ChainParams)
			if err == nil {
				info.Address = addr.EncodeAddress()
			}
		}
	case P2WPKH:
		hash := btcutil.Hash160(pubKeys[0].SerializeCompressed())
		var addr *btcutil.AddressWitnessPubKeyHash
		addr, err = btcutil.NewAddressWitnessPubKeyHash(hash, opts.ChainParams)
		if err == nil {
			info.Address = addr.EncodeAddress()
		}
	case P2SH:
		var script []byte
		script, err = MultiSigScript(pubKeys, opts.M, opts.ChainParams)
		if err != nil {
			break
		}
		info.RedeemScript = script
		if opts.UseCashAddr {
			info.Address, err = encodeCashAddr(
				opts.CashAddrPrefix, cashAddrTypeScriptHash, btcutil.Hash160(script),
			)
		} else {
			var addr *btcutil.AddressScriptHash
			addr, err = btcutil.NewAddressScriptHash(script, opts.ChainParams)
			if err == nil {
				info.Address = addr.EncodeAddress()
			}
		}
	case P2WSH:
		var script []byte
		script, err = MultiSigScript(pubKeys, opts.M, opts.ChainParams)
		if err != nil {
			break
		}
		info.RedeemScript = script
		scriptHash := sha256.Sum256(script)
		var addr *btcutil.AddressWitnessScriptHash
		addr, err = btcutil.NewAddressWitnessScriptHash(scriptHash[:], opts.ChainParams)
		if err == nil {
			info.Address = addr.EncodeAddress()
		}
	}
	if err != nil {
		return nil, err
	}

	return info, nil
}

// MultiSigScript builds the m-of-n redeem script over the given public keys.
// Keys are sorted by their compressed serialization first, so every copayer
// derives the same script regardless of join order.
func MultiSigScript(
	pubKeys []*btcec.PublicKey, m int, params *chaincfg.Params,
) ([]byte, error) {
	if m < 1 || m > len(pubKeys) {
		return nil, ErrInvalidRequiredSignatures
	}

	sorted := make([]*btcec.PublicKey, len(pubKeys))
	copy(sorted, pubKeys)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(
			sorted[i].SerializeCompressed(), sorted[j].SerializeCompressed(),
		) < 0
	})

	addrPubKeys := make([]*btcutil.AddressPubKey, 0, len(sorted))
	for _, key := range sorted {
		addrPubKey, err := btcutil.NewAddressPubKey(
			key.SerializeCompressed(), params,
		)
		if err != nil {
			return nil, err
		}
		addrPubKeys = append(addrPubKeys, addrPubKey)
	}

	return txscript.MultiSigScript(addrPubKeys, m)
}

func deriveChildPubKeys(ring []string, strPath string) ([]*btcec.PublicKey, error) {
	path, _ := ParseDerivationPath(strPath)

	pubKeys := make([]*btcec.PublicKey, 0, len(ring))
	for _, xPubKey := range ring {
		hdNode, err := hdkeychain.NewKeyFromString(xPubKey)
		if err != nil {
			return nil, err
		}
		for _, step := range path {
			hdNode, err = hdNode.Derive(step)
			if err != nil {
				return nil, err
			}
		}
		pubKey, err := hdNode.ECPubKey()
		if err != nil {
			return nil, err
		}
		pubKeys = append(pubKeys, pubKey)
	}
	return pubKeys, nil
}

func serializeAll(pubKeys []*btcec.PublicKey) []string {
	out := make([]string, 0, len(pubKeys))
	for _, key := range pubKeys {
		out = append(out, hex.EncodeToString(key.SerializeCompressed()))
	}
	return out
}
