package crypto

import (
	"encoding/hex"
	"fmt"
)

// AddressSize is the size of an address in bytes.
const AddressSize = 20

// Address is a raw account address derived from a public key.
type Address []byte

func (a Address) String() string {
	return fmt.Sprintf("%X", []byte(a))
}

// Hex returns the address as a 0x-prefixed lowercase hex string,
// the form used on Ethereum-style chains.
func (a Address) Hex() string {
	return "0x" + hex.EncodeToString(a)
}

// PrivKey is a private key usable for signing.
type PrivKey interface {
	Bytes() []byte
	Sign(msg []byte) ([]byte, error)
	PubKey() PubKey
	Type() string
}

// PubKey is the public half of a PrivKey.
type PubKey interface {
	Address() Address
	Bytes() []byte
	VerifySignature(msg []byte, sig []byte) bool
	Type() string
}
