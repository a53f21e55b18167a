package domain

import (
	"time"

	"github.com/google/uuid"
)

// RequestKey is one key a copayer uses to authenticate API requests,
// together with the signature proving it was authorized by the copayer's
// extended key.
type RequestKey struct {
	Key          string `json:"key"`
	Signature    string `json:"signature"`
	SelfSigned   bool   `json:"selfSigned"`
	Restrictions string `json:"restrictions"`
	Name         string `json:"name"`
}

// Copayer represents one signer of a shared wallet. It is owned exclusively
// by its wallet.
type Copayer struct {
	ID        string
	CreatedOn int64
	Coin      Coin
	Name      string
	// XPubKey is the copayer's extended public key the wallet derives
	// addresses from.
	XPubKey string
	// RequestPubKey is the copayer's current request authentication key.
	RequestPubKey string
	// Signature proves RequestPubKey was signed with the copayer's key.
	Signature string
	// RequestPubKeys holds the full request-key history, newest first.
	// Rotation is additive: old keys are kept, never removed.
	RequestPubKeys []RequestKey
}

// NewCopayer returns a copayer for the given coin with its initial request
// key recorded as the head of the request-key history.
func NewCopayer(coin Coin, name, xPubKey, requestPubKey, signature string) (*Copayer, error) {
	if _, ok := PolicyForCoin(coin); !ok {
		return nil, ErrWalletUnsupportedCoin
	}
	return &Copayer{
		ID:            uuid.New().String(),
		CreatedOn:     time.Now().Unix(),
		Coin:          coin,
		Name:          name,
		XPubKey:       xPubKey,
		RequestPubKey: requestPubKey,
		Signature:     signature,
		RequestPubKeys: []RequestKey{
			{Key: requestPubKey, Signature: signature},
		},
	}, nil
}

// AddRequestKey prepends a new request key to the history and makes it the
// copayer's current one.
func (c *Copayer) AddRequestKey(key, signature, restrictions, name string) {
	c.RequestPubKeys = append([]RequestKey{{
		Key:          key,
		Signature:    signature,
		Restrictions: restrictions,
		Name:         name,
	}}, c.RequestPubKeys...)
	c.RequestPubKey = key
	c.Signature = signature
}
