package domain

import (
	"time"

	"github.com/randomzgm/bitcore-wallet-service/pkg/derivation"
)

// Address is a derived address record. It is a deterministic function of the
// wallet's public key ring and the derivation path: re-deriving with the
// same inputs always yields the same address.
type Address struct {
	Version       int
	WalletID      string
	CreatedOn     int64
	Address       string
	Path          string
	Type          ScriptType
	PublicKeys    []string
	Coin          Coin
	Network       Network
	IsChange      bool
	IsColdStaking bool
}

func newAddress(w *Wallet, info *derivation.AddressInfo, isChange bool) *Address {
	return &Address{
		Version:    WalletVersion,
		WalletID:   w.ID,
		CreatedOn:  time.Now().Unix(),
		Address:    info.Address,
		Path:       info.Path,
		Type:       ScriptType(info.ScriptType),
		PublicKeys: info.PublicKeys,
		Coin:       w.Coin,
		Network:    w.Network,
		IsChange:   isChange,
	}
}
