// Package bip137 implements Bitcoin-style signed messages: a recoverable
// secp256k1 signature over the message digest, serialized as
// base64(header || r || s) where the header byte carries the recovery id.
//
// The digest is a single SHA-256 of the raw message. Strict BIP-137
// tooling instead prefixes "\x18Bitcoin Signed Message:\n" and
// double-hashes; signatures from this package are therefore only
// verifiable by implementations that share this digest.
package bip137

import (
	"bytes"
	"encoding/base64"
	"math/big"

	"github.com/picops/picocrypto/crypto"
	"github.com/picops/picocrypto/crypto/secp256k1"
)

// SignatureSize is the size of the decoded signature: 1-byte header plus
// two 32-byte scalars.
const SignatureSize = 65

// SignedMessageHash returns the 32-byte digest that gets signed: a single
// SHA-256 of the raw message.
func SignedMessageHash(message []byte) []byte {
	return crypto.Sha256(message)
}

// SignMessage signs message with the given secp256k1 private key and
// returns the base64-encoded 65-byte signature.
func SignMessage(privKey, message []byte) ([]byte, error) {
	msgHash := SignedMessageHash(message)
	r, s, v, err := secp256k1.SignRecoverable(privKey, msgHash)
	if err != nil {
		return nil, err
	}

	recid := v - 27
	header := byte(31)
	if recid < 3 {
		header = 32 + recid
	}

	sig := make([]byte, SignatureSize)
	sig[0] = header
	r.FillBytes(sig[1:33])
	s.FillBytes(sig[33:65])

	out := make([]byte, base64.StdEncoding.EncodedLen(len(sig)))
	base64.StdEncoding.Encode(out, sig)
	return out, nil
}

// VerifyMessage reports whether sigB64 is a valid signed-message signature
// of message by the holder of the 65-byte uncompressed pubkey. Malformed
// input verifies as false; VerifyMessage never errors.
func VerifyMessage(message, sigB64, pubKey []byte) bool {
	sig := make([]byte, base64.StdEncoding.DecodedLen(len(sigB64)))
	n, err := base64.StdEncoding.Decode(sig, sigB64)
	if err != nil {
		return false
	}
	if n != SignatureSize {
		return false
	}
	sig = sig[:n]

	recid := sig[0] & 0x03
	r := new(big.Int).SetBytes(sig[1:33])
	s := new(big.Int).SetBytes(sig[33:65])

	msgHash := SignedMessageHash(message)
	recovered, err := secp256k1.RecoverPubKey(msgHash, r, s, recid)
	if err != nil {
		return false
	}
	return bytes.Equal(recovered, pubKey)
}
