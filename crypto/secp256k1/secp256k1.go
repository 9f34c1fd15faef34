// Package secp256k1 implements key derivation, recoverable ECDSA signing
// and public key recovery on the Bitcoin/Ethereum curve, with affine
// arithmetic over math/big.
package secp256k1

import (
	"bytes"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/picops/picocrypto/crypto"
	"github.com/picops/picocrypto/crypto/keccak"
)

const (
	KeyType = "secp256k1"

	// PrivKeySize is the size of a raw private key in bytes.
	PrivKeySize = 32
	// PubKeySize (uncompressed) is comprised of 65 bytes for two field
	// elements (x and y) and a prefix byte (0x04) to indicate that it is
	// uncompressed.
	PubKeySize = 65
	// SigSize is the size of the serialized signature: r || s || recid.
	SigSize = 65
)

var (
	ErrKeyLength         = errors.New("secp256k1: private key must be 32 bytes")
	ErrHashLength        = errors.New("secp256k1: message hash must be 32 bytes")
	ErrScalarRange       = errors.New("secp256k1: scalar outside [1, N-1]")
	ErrInvalidRecoveryID = errors.New("secp256k1: recovery id must be in 0..3")
	ErrNoSquareRoot      = errors.New("secp256k1: no square root for recovered x")
	ErrPointAtInfinity   = errors.New("secp256k1: recovered point is the identity")
	ErrSignFailure       = errors.New("secp256k1: could not produce valid signature")
)

// signAttempts bounds the nonce search in SignRecoverable.
const signAttempts = 256

// PrivKeyToPubKey derives the uncompressed public key 0x04 || X || Y from a
// 32-byte private key.
func PrivKeyToPubKey(privKey []byte) ([]byte, error) {
	if len(privKey) != PrivKeySize {
		return nil, ErrKeyLength
	}
	d := new(big.Int).SetBytes(privKey)
	if d.Sign() == 0 || d.Cmp(curveN) >= 0 {
		return nil, ErrScalarRange
	}
	x, y := pointMul(d, curveGx, curveGy)
	return encodePoint(x, y), nil
}

// PrivKeyToAddress derives the Ethereum address for a private key as a
// 0x-prefixed lowercase hex string: the last 20 bytes of Keccak-256 over
// the 64-byte X || Y public key.
func PrivKeyToAddress(privKey []byte) (string, error) {
	pub, err := PrivKeyToPubKey(privKey)
	if err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(keccak.Sum(pub[1:])[12:]), nil
}

// recoverPoint recovers the signer's affine public point from (hash, r, s,
// recid). Bit 1 of recid selects the x = r + N candidate, bit 0 the parity
// of y.
func recoverPoint(msgHash []byte, r, s *big.Int, recid byte) (*big.Int, *big.Int, error) {
	x := new(big.Int)
	if recid&2 != 0 {
		x.Add(r, curveN)
		if x.Cmp(curveP) >= 0 {
			return nil, nil, fmt.Errorf("%w: r+n exceeds field prime for recid %d", ErrScalarRange, recid)
		}
		x.Mod(x, curveP)
	} else {
		x.Mod(r, curveP)
	}

	// alpha = x^3 + 7, beta = alpha^((p+1)/4)
	alpha := new(big.Int).Mul(x, x)
	alpha.Mul(alpha, x)
	alpha.Add(alpha, curveB)
	alpha.Mod(alpha, curveP)
	beta := new(big.Int).Exp(alpha, sqrtExp, curveP)

	check := new(big.Int).Mul(beta, beta)
	check.Mod(check, curveP)
	if check.Cmp(alpha) != 0 {
		return nil, nil, ErrNoSquareRoot
	}

	y := beta
	if uint(recid&1) != y.Bit(0) {
		y = new(big.Int).Sub(curveP, y)
		y.Mod(y, curveP)
	}

	z := new(big.Int).SetBytes(msgHash)
	z.Mod(z, curveN)
	rInv, err := modInverse(new(big.Int).Mod(r, curveN), curveN)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: r not invertible", ErrScalarRange)
	}
	u1 := new(big.Int).Neg(z)
	u1.Mul(u1, rInv)
	u1.Mod(u1, curveN)
	u2 := new(big.Int).Mul(s, rInv)
	u2.Mod(u2, curveN)

	gx, gy := pointMul(u1, curveGx, curveGy)
	rx, ry := pointMul(u2, x, y)
	qx, qy := pointAdd(gx, gy, rx, ry)
	if qx.Sign() == 0 && qy.Sign() == 0 {
		return nil, nil, ErrPointAtInfinity
	}
	return qx, qy, nil
}

// RecoverPubKey recovers the uncompressed public key that produced the
// signature (r, s) over msgHash, selected by recid in 0..3.
func RecoverPubKey(msgHash []byte, r, s *big.Int, recid byte) ([]byte, error) {
	if len(msgHash) != 32 {
		return nil, ErrHashLength
	}
	if recid > 3 {
		return nil, ErrInvalidRecoveryID
	}
	if r.Sign() <= 0 || r.Cmp(curveN) >= 0 || s.Sign() <= 0 || s.Cmp(curveN) >= 0 {
		return nil, ErrScalarRange
	}
	qx, qy, err := recoverPoint(msgHash, r, s, recid)
	if err != nil {
		return nil, err
	}
	return encodePoint(qx, qy), nil
}

// SignRecoverable signs a 32-byte message hash and returns (r, s, v) with
// s in low-S form and v in 27..30 encoding the recovery id.
//
// The nonce is derived deterministically from the message and key
// (k0 = 1 + (z+d) mod (N-2), bumped on each retry). This is not RFC 6979,
// so the signatures differ from those of standards-conforming libraries,
// but they recover and verify like any other low-S ECDSA signature.
func SignRecoverable(privKey, msgHash []byte) (r, s *big.Int, v byte, err error) {
	if len(privKey) != PrivKeySize {
		return nil, nil, 0, ErrKeyLength
	}
	if len(msgHash) != 32 {
		return nil, nil, 0, ErrHashLength
	}

	ourPub, err := PrivKeyToPubKey(privKey)
	if err != nil {
		return nil, nil, 0, err
	}

	z := new(big.Int).SetBytes(msgHash)
	d := new(big.Int).SetBytes(privKey)
	d.Mod(d, curveN)

	// k0 = 1 + (z + d) mod (N - 2)
	k0 := new(big.Int).Add(z, d)
	k0.Mod(k0, new(big.Int).Sub(curveN, big.NewInt(2)))
	k0.Add(k0, big.NewInt(1))

	k := new(big.Int)
	for attempt := int64(0); attempt < signAttempts; attempt++ {
		k.Add(k0, big.NewInt(attempt))
		k.Mod(k, curveN)
		if k.Sign() == 0 {
			continue
		}

		kx, _ := pointMul(k, curveGx, curveGy)
		r = new(big.Int).Mod(kx, curveN)
		if r.Sign() == 0 {
			continue
		}

		kInv, invErr := modInverse(k, curveN)
		if invErr != nil {
			continue
		}
		s = new(big.Int).Mul(r, d)
		s.Add(s, z)
		s.Mul(s, kInv)
		s.Mod(s, curveN)
		if s.Sign() == 0 {
			continue
		}
		if s.Cmp(halfN) > 0 {
			s.Sub(curveN, s)
		}

		for recid := byte(0); recid < 4; recid++ {
			qx, qy, recErr := recoverPoint(msgHash, r, s, recid)
			if recErr != nil {
				continue
			}
			if bytes.Equal(encodePoint(qx, qy), ourPub) {
				return r, s, 27 + recid, nil
			}
		}
	}
	return nil, nil, 0, ErrSignFailure
}

// -------------------------------------

var _ crypto.PrivKey = PrivKey{}

// PrivKey implements crypto.PrivKey.
type PrivKey []byte

// Bytes returns the raw 32-byte private key.
func (privKey PrivKey) Bytes() []byte {
	return []byte(privKey)
}

// PubKey performs the point-scalar multiplication from the privKey on the
// generator point to get the pubkey.
func (privKey PrivKey) PubKey() crypto.PubKey {
	pub, err := PrivKeyToPubKey(privKey)
	if err != nil {
		panic(err)
	}
	return PubKey(pub)
}

// Equals - you probably don't need to use this.
// Runs in constant time based on length of the keys.
func (privKey PrivKey) Equals(other crypto.PrivKey) bool {
	if otherSecp, ok := other.(PrivKey); ok {
		return subtle.ConstantTimeCompare(privKey[:], otherSecp[:]) == 1
	}
	return false
}

func (PrivKey) Type() string {
	return KeyType
}

// Sign hashes msg with Keccak-256 and produces a recoverable signature in
// the form r || s || recid (65 bytes, low-S).
func (privKey PrivKey) Sign(msg []byte) ([]byte, error) {
	digest := keccak.Sum(msg)
	r, s, v, err := SignRecoverable(privKey, digest)
	if err != nil {
		return nil, err
	}
	sig := make([]byte, SigSize)
	r.FillBytes(sig[:32])
	s.FillBytes(sig[32:64])
	sig[64] = v - 27
	return sig, nil
}

// GenPrivKey generates a new ECDSA private key on curve secp256k1.
// It uses OS randomness to generate the private key.
func GenPrivKey() PrivKey {
	return genPrivKey(crypto.CReader())
}

// genPrivKey generates a new secp256k1 private key using the provided reader.
func genPrivKey(rand io.Reader) PrivKey {
	var privKeyBytes [PrivKeySize]byte
	d := new(big.Int)

	for {
		_, err := io.ReadFull(rand, privKeyBytes[:])
		if err != nil {
			panic(err)
		}

		d.SetBytes(privKeyBytes[:])
		// break if we found a valid point (i.e. > 0 and < N == curveOrder)
		if d.Sign() > 0 && d.Cmp(curveN) < 0 {
			break
		}
	}

	return PrivKey(privKeyBytes[:])
}

var one = new(big.Int).SetInt64(1)

// GenPrivKeyFromSecret hashes the secret with SHA-256 and uses that 32-byte
// output to create the private key.
//
// It makes sure the private key is a valid field element by setting:
//
// c = sha256(secret)
// k = (c mod (n − 1)) + 1, where n = curve order.
//
// NOTE: secret should be the output of a KDF like bcrypt,
// if it's derived from user input.
func GenPrivKeyFromSecret(secret []byte) PrivKey {
	secHash := crypto.Sha256(secret)

	fe := new(big.Int).SetBytes(secHash)
	n := new(big.Int).Sub(curveN, one)
	fe.Mod(fe, n)
	fe.Add(fe, one)

	privKey32 := make([]byte, PrivKeySize)
	fe.FillBytes(privKey32)
	return PrivKey(privKey32)
}

// -------------------------------------

var _ crypto.PubKey = PubKey{}

// PubKey implements crypto.PubKey.
// It is the uncompressed form of the pubkey. The first byte is prefixed
// with 0x04. This prefix is followed with the (x,y)-coordinates.
type PubKey []byte

// Address returns an Ethereum style address: Last_20_Bytes(KECCAK256(pubkey[1:])).
func (pubKey PubKey) Address() crypto.Address {
	if len(pubKey) != PubKeySize {
		panic(fmt.Sprintf("length of pubkey is incorrect %d != %d", len(pubKey), PubKeySize))
	}
	return crypto.Address(keccak.Sum(pubKey[1:])[12:])
}

// Bytes returns the raw 65-byte public key.
func (pubKey PubKey) Bytes() []byte {
	return []byte(pubKey)
}

func (pubKey PubKey) String() string {
	return fmt.Sprintf("PubKeySecp256k1{%X}", []byte(pubKey))
}

func (pubKey PubKey) Equals(other crypto.PubKey) bool {
	if otherSecp, ok := other.(PubKey); ok {
		return bytes.Equal(pubKey[:], otherSecp[:])
	}
	return false
}

func (PubKey) Type() string {
	return KeyType
}

// VerifySignature verifies a signature of the form r || s || recid over the
// Keccak-256 digest of msg. It rejects signatures which are not in lower-S
// form.
func (pubKey PubKey) VerifySignature(msg []byte, sigStr []byte) bool {
	if len(sigStr) != SigSize {
		return false
	}
	r := new(big.Int).SetBytes(sigStr[:32])
	s := new(big.Int).SetBytes(sigStr[32:64])
	if s.Cmp(halfN) > 0 {
		return false
	}

	digest := keccak.Sum(msg)
	recovered, err := RecoverPubKey(digest, r, s, sigStr[64])
	if err != nil {
		return false
	}
	return bytes.Equal(recovered, pubKey)
}
