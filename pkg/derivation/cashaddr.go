package derivation

import (
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// cashaddr is the base32 address format used by bch as the alternate
// representation of legacy base58 addresses. It encodes the same 160-bit
// hash with a different checksum and prefix, so the two forms always control
// the same funds.

const cashAddrCharset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

const (
	cashAddrTypePubKeyHash uint8 = 0
	cashAddrTypeScriptHash uint8 = 1
)

// cashAddrPolyMod is the BCH checksum function over 5-bit groups.
func cashAddrPolyMod(values []byte) uint64 {
	c := uint64(1)
	for _, d := range values {
		c0 := c >> 35
		c = ((c & 0x07ffffffff) << 5) ^ uint64(d)
		if c0&0x01 != 0 {
			c ^= 0x98f2bc8e61
		}
		if c0&0x02 != 0 {
			c ^= 0x79b76d99e2
		}
		if c0&0x04 != 0 {
			c ^= 0xf33e5fb3c4
		}
		if c0&0x08 != 0 {
			c ^= 0xae2eabe2a8
		}
		if c0&0x10 != 0 {
			c ^= 0x1e4f43e470
		}
	}
	return c ^ 1
}

// encodeCashAddr renders a 20-byte hash as a cashaddr string with the given
// prefix and address type.
func encodeCashAddr(prefix string, addrType uint8, hash []byte) (string, error) {
	if prefix == "" {
		return "", ErrNullCashAddrPrefix
	}

	// version byte: type in the upper bits, size bits zero for 160-bit
	// hashes.
	payload := make([]byte, 0, len(hash)+1)
	payload = append(payload, addrType<<3)
	payload = append(payload, hash...)

	data, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", err
	}

	// checksum input: low 5 bits of each prefix char, a zero separator, the
	// payload and eight zeroes standing in for the checksum itself.
	values := make([]byte, 0, len(prefix)+1+len(data)+8)
	for _, c := range prefix {
		values = append(values, byte(c)&0x1f)
	}
	values = append(values, 0)
	values = append(values, data...)
	values = append(values, make([]byte, 8)...)

	polyMod := cashAddrPolyMod(values)
	checksum := make([]byte, 8)
	for i := 0; i < 8; i++ {
		checksum[i] = byte((polyMod >> uint(5*(7-i))) & 0x1f)
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteByte(':')
	for _, d := range append(data, checksum...) {
		sb.WriteByte(cashAddrCharset[d])
	}
	return sb.String(), nil
}
