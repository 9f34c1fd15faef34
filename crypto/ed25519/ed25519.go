// Package ed25519 implements signing and verification per RFC 8032 with
// extended-coordinate twisted Edwards arithmetic over math/big.
package ed25519

import (
	"bytes"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/picops/picocrypto/crypto"
)

const (
	KeyType = "ed25519"

	// SeedSize is the size of the private key seed in bytes.
	SeedSize = 32
	// PubKeySize is the size of a compressed public key in bytes.
	PubKeySize = 32
	// SignatureSize is the size of a signature: R || s.
	SignatureSize = 64
)

var ErrSeedLength = errors.New("ed25519: seed must be 32 bytes")

// PublicKeyFromSeed derives the 32-byte compressed public key from a
// 32-byte seed.
func PublicKeyFromSeed(seed []byte) ([]byte, error) {
	if len(seed) != SeedSize {
		return nil, ErrSeedLength
	}
	a, _ := expandSeed(seed)
	return pointCompress(pointMul(a, basePoint)), nil
}

// Sign produces the 64-byte signature R || s of message under seed
// (RFC 8032, section 5.1.6).
func Sign(message, seed []byte) ([]byte, error) {
	if len(seed) != SeedSize {
		return nil, ErrSeedLength
	}
	a, prefix := expandSeed(seed)
	aEnc := pointCompress(pointMul(a, basePoint))

	r := sha512ModL(prefix, message)
	rEnc := pointCompress(pointMul(r, basePoint))

	h := sha512ModL(rEnc, aEnc, message)
	s := new(big.Int).Mul(h, a)
	s.Add(s, r)
	s.Mod(s, orderL)

	return append(rEnc, scalarToLE(s)...), nil
}

// Verify reports whether signature is a valid signature of message by the
// holder of publicKey (RFC 8032, section 5.1.7). Malformed inputs verify
// as false; Verify never panics or errors.
func Verify(message, signature, publicKey []byte) bool {
	if len(signature) != SignatureSize || len(publicKey) != PubKeySize {
		return false
	}
	a, err := pointDecompress(publicKey)
	if err != nil {
		return false
	}
	rEnc := signature[:32]
	r, err := pointDecompress(rEnc)
	if err != nil {
		return false
	}
	s := leToScalar(signature[32:])
	if s.Cmp(orderL) >= 0 {
		return false
	}

	h := sha512ModL(rEnc, publicKey, message)
	lhs := pointMul(s, basePoint)
	rhs := pointAdd(r, pointMul(h, a))
	return pointEqual(lhs, rhs)
}

// -------------------------------------

var _ crypto.PrivKey = PrivKey{}

// PrivKey implements crypto.PrivKey; it is the 32-byte RFC 8032 seed.
type PrivKey []byte

// Bytes returns the raw seed.
func (privKey PrivKey) Bytes() []byte {
	return []byte(privKey)
}

// Sign signs msg per RFC 8032.
func (privKey PrivKey) Sign(msg []byte) ([]byte, error) {
	return Sign(msg, privKey)
}

// PubKey derives the compressed public key from the seed.
func (privKey PrivKey) PubKey() crypto.PubKey {
	pub, err := PublicKeyFromSeed(privKey)
	if err != nil {
		panic(err)
	}
	return PubKey(pub)
}

// Equals - you probably don't need to use this.
// Runs in constant time based on length of the keys.
func (privKey PrivKey) Equals(other crypto.PrivKey) bool {
	if otherEd, ok := other.(PrivKey); ok {
		return subtle.ConstantTimeCompare(privKey[:], otherEd[:]) == 1
	}
	return false
}

func (PrivKey) Type() string {
	return KeyType
}

// GenPrivKey generates a new ed25519 private key.
// It uses OS randomness to generate the private key.
func GenPrivKey() PrivKey {
	return genPrivKey(crypto.CReader())
}

// genPrivKey generates a new ed25519 private key using the provided reader.
func genPrivKey(rand io.Reader) PrivKey {
	seed := make([]byte, SeedSize)
	if _, err := io.ReadFull(rand, seed); err != nil {
		panic(err)
	}
	return PrivKey(seed)
}

// GenPrivKeyFromSecret hashes the secret with SHA-256 and uses that 32-byte
// output as the seed.
//
// NOTE: secret should be the output of a KDF like bcrypt,
// if it's derived from user input.
func GenPrivKeyFromSecret(secret []byte) PrivKey {
	return PrivKey(crypto.Sha256(secret))
}

// -------------------------------------

var _ crypto.PubKey = PubKey{}

// PubKey implements crypto.PubKey; it is the compressed Edwards y with the
// sign of x in the top bit.
type PubKey []byte

// Address is the first 20 bytes of the SHA-256 of the raw pubkey bytes.
func (pubKey PubKey) Address() crypto.Address {
	if len(pubKey) != PubKeySize {
		panic(fmt.Sprintf("length of pubkey is incorrect %d != %d", len(pubKey), PubKeySize))
	}
	return crypto.Address(crypto.Sha256(pubKey)[:crypto.AddressSize])
}

// Bytes returns the raw 32-byte public key.
func (pubKey PubKey) Bytes() []byte {
	return []byte(pubKey)
}

func (pubKey PubKey) String() string {
	return fmt.Sprintf("PubKeyEd25519{%X}", []byte(pubKey))
}

func (pubKey PubKey) Equals(other crypto.PubKey) bool {
	if otherEd, ok := other.(PubKey); ok {
		return bytes.Equal(pubKey[:], otherEd[:])
	}
	return false
}

func (PubKey) Type() string {
	return KeyType
}

// VerifySignature reports whether sig is a valid RFC 8032 signature of msg.
func (pubKey PubKey) VerifySignature(msg []byte, sig []byte) bool {
	return Verify(msg, sig, pubKey)
}
