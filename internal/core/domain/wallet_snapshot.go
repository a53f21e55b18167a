package domain

// WalletSnapshot is the persisted wallet document. It is an explicit copy
// of the documented shape, not a deep clone of the aggregate, so transient
// state can never leak into storage.
type WalletSnapshot struct {
	Version            int                    `json:"version"`
	ID                 string                 `json:"id" badgerhold:"key"`
	CreatedOn          int64                  `json:"createdOn"`
	Name               string                 `json:"name"`
	M                  int                    `json:"m"`
	N                  int                    `json:"n"`
	SingleAddress      bool                   `json:"singleAddress"`
	Status             WalletStatus           `json:"status"`
	PublicKeyRing      []PubKeyRingEntry      `json:"publicKeyRing"`
	Copayers           []CopayerSnapshot      `json:"copayers"`
	PubKey             string                 `json:"pubKey"`
	Coin               Coin                   `json:"coin"`
	Network            Network                `json:"network"`
	DerivationStrategy DerivationStrategy     `json:"derivationStrategy"`
	AddressType        ScriptType             `json:"addressType"`
	AddressManager     AddressManagerSnapshot `json:"addressManager"`
	ScanStatus         string                 `json:"scanStatus"`
	ColdStakingSetup   *ColdStakingSetup      `json:"coldStakingSetup,omitempty"`
}

// CopayerSnapshot is the persisted shape of one copayer.
type CopayerSnapshot struct {
	ID             string       `json:"id"`
	CreatedOn      int64        `json:"createdOn"`
	Coin           Coin         `json:"coin"`
	Name           string       `json:"name"`
	XPubKey        string       `json:"xPubKey"`
	RequestPubKey  string       `json:"requestPubKey"`
	Signature      string       `json:"signature"`
	RequestPubKeys []RequestKey `json:"requestPubKeys"`
}

// Snapshot returns the wallet's persisted document.
func (w *Wallet) Snapshot() WalletSnapshot {
	copayers := make([]CopayerSnapshot, 0, len(w.Copayers))
	for _, c := range w.Copayers {
		keys := make([]RequestKey, len(c.RequestPubKeys))
		copy(keys, c.RequestPubKeys)
		copayers = append(copayers, CopayerSnapshot{
			ID:             c.ID,
			CreatedOn:      c.CreatedOn,
			Coin:           c.Coin,
			Name:           c.Name,
			XPubKey:        c.XPubKey,
			RequestPubKey:  c.RequestPubKey,
			Signature:      c.Signature,
			RequestPubKeys: keys,
		})
	}

	ring := make([]PubKeyRingEntry, len(w.PublicKeyRing))
	copy(ring, w.PublicKeyRing)

	var setup *ColdStakingSetup
	if w.ColdStakingSetup != nil {
		cp := *w.ColdStakingSetup
		setup = &cp
	}

	return WalletSnapshot{
		Version:            w.Version,
		ID:                 w.ID,
		CreatedOn:          w.CreatedOn,
		Name:               w.Name,
		M:                  w.M,
		N:                  w.N,
		SingleAddress:      w.SingleAddress,
		Status:             w.Status,
		PublicKeyRing:      ring,
		Copayers:           copayers,
		PubKey:             w.PubKey,
		Coin:               w.Coin,
		Network:            w.Network,
		DerivationStrategy: w.DerivationStrategy,
		AddressType:        w.AddressType,
		AddressManager:     w.addressManager.Snapshot(),
		ScanStatus:         w.ScanStatus,
		ColdStakingSetup:   setup,
	}
}

// WalletFromSnapshot rebuilds a wallet aggregate from its persisted
// document. The restore is lossless for every persisted field, counters
// included.
func WalletFromSnapshot(s WalletSnapshot) (*Wallet, error) {
	policy, ok := PolicyForCoin(s.Coin)
	if !ok {
		return nil, ErrWalletUnsupportedCoin
	}
	if !IsSupportedNetwork(s.Network) {
		return nil, ErrWalletUnsupportedNetwork
	}

	am, err := AddressManagerFromSnapshot(s.DerivationStrategy, s.AddressManager)
	if err != nil {
		return nil, err
	}

	copayers := make([]*Copayer, 0, len(s.Copayers))
	for _, cs := range s.Copayers {
		keys := make([]RequestKey, len(cs.RequestPubKeys))
		copy(keys, cs.RequestPubKeys)
		copayers = append(copayers, &Copayer{
			ID:             cs.ID,
			CreatedOn:      cs.CreatedOn,
			Coin:           cs.Coin,
			Name:           cs.Name,
			XPubKey:        cs.XPubKey,
			RequestPubKey:  cs.RequestPubKey,
			Signature:      cs.Signature,
			RequestPubKeys: keys,
		})
	}

	ring := make([]PubKeyRingEntry, len(s.PublicKeyRing))
	copy(ring, s.PublicKeyRing)

	var setup *ColdStakingSetup
	if s.ColdStakingSetup != nil {
		cp := *s.ColdStakingSetup
		setup = &cp
	}

	return &Wallet{
		Version:            s.Version,
		ID:                 s.ID,
		CreatedOn:          s.CreatedOn,
		Name:               s.Name,
		M:                  s.M,
		N:                  s.N,
		SingleAddress:      s.SingleAddress,
		Status:             s.Status,
		PublicKeyRing:      ring,
		Copayers:           copayers,
		PubKey:             s.PubKey,
		Coin:               s.Coin,
		Network:            s.Network,
		DerivationStrategy: s.DerivationStrategy,
		AddressType:        s.AddressType,
		ScanStatus:         s.ScanStatus,
		ColdStakingSetup:   setup,
		addressManager:     am,
		policy:             policy,
	}, nil
}
