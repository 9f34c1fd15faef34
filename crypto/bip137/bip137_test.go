package bip137_test

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picops/picocrypto/crypto/bip137"
	"github.com/picops/picocrypto/crypto/secp256k1"
)

func TestSignedMessageHash(t *testing.T) {
	msg := []byte("picocrypto")
	want := sha256.Sum256(msg)
	assert.Equal(t, want[:], bip137.SignedMessageHash(msg))
}

func TestSignVerifyRoundTrip(t *testing.T) {
	privKey := secp256k1.GenPrivKey()
	pub, err := secp256k1.PrivKeyToPubKey(privKey)
	require.NoError(t, err)
	msg := []byte("I hereby claim this address.")

	sigB64, err := bip137.SignMessage(privKey, msg)
	require.NoError(t, err)

	assert.True(t, bip137.VerifyMessage(msg, sigB64, pub))
	assert.False(t, bip137.VerifyMessage([]byte("different message"), sigB64, pub))

	otherPub, err := secp256k1.PrivKeyToPubKey(secp256k1.GenPrivKey())
	require.NoError(t, err)
	assert.False(t, bip137.VerifyMessage(msg, sigB64, otherPub))
}

func TestSignatureEncoding(t *testing.T) {
	privKey := bytes.Repeat([]byte{0x01}, 32)
	pub, err := secp256k1.PrivKeyToPubKey(privKey)
	require.NoError(t, err)
	msg := []byte("header encoding")

	sigB64, err := bip137.SignMessage(privKey, msg)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(string(sigB64))
	require.NoError(t, err)
	require.Len(t, raw, bip137.SignatureSize)

	// header = 32 + recid for recid < 3, else 31
	header := raw[0]
	assert.True(t, header == 31 || (header >= 32 && header <= 34), "header %d", header)

	// the embedded (r, s, recid) recovers the signer
	msgHash := bip137.SignedMessageHash(msg)
	r, s, v, err := secp256k1.SignRecoverable(privKey, msgHash)
	require.NoError(t, err)
	assert.Equal(t, r.FillBytes(make([]byte, 32)), raw[1:33])
	assert.Equal(t, s.FillBytes(make([]byte, 32)), raw[33:65])
	if v-27 < 3 {
		assert.Equal(t, 32+(v-27), header)
	} else {
		assert.Equal(t, byte(31), header)
	}

	recovered, err := secp256k1.RecoverPubKey(msgHash, r, s, header&0x03)
	require.NoError(t, err)
	assert.Equal(t, pub, recovered)
}

func TestVerifyMalformed(t *testing.T) {
	privKey := secp256k1.GenPrivKey()
	pub, err := secp256k1.PrivKeyToPubKey(privKey)
	require.NoError(t, err)
	msg := []byte("malformed")

	sigB64, err := bip137.SignMessage(privKey, msg)
	require.NoError(t, err)

	tests := []struct {
		name string
		sig  []byte
	}{
		{"NotBase64", []byte("!!!not base64!!!")},
		{"Empty", nil},
		{"TooShort", []byte(base64.StdEncoding.EncodeToString(make([]byte, 64)))},
		{"TooLong", []byte(base64.StdEncoding.EncodeToString(make([]byte, 66)))},
		{"ZeroScalars", []byte(base64.StdEncoding.EncodeToString(make([]byte, 65)))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, bip137.VerifyMessage(msg, tt.sig, pub))
		})
	}

	// corrupting any part of a good signature must fail verification
	raw, err := base64.StdEncoding.DecodeString(string(sigB64))
	require.NoError(t, err)
	for _, i := range []int{1, 32, 33, 64} {
		bad := append([]byte(nil), raw...)
		bad[i] ^= 0x01
		badB64 := []byte(base64.StdEncoding.EncodeToString(bad))
		assert.False(t, bip137.VerifyMessage(msg, badB64, pub), "corrupted byte %d", i)
	}
}

func TestSignRejectsBadKey(t *testing.T) {
	_, err := bip137.SignMessage(make([]byte, 31), []byte("m"))
	require.ErrorIs(t, err, secp256k1.ErrKeyLength)

	_, err = bip137.SignMessage(make([]byte, 32), []byte("m"))
	require.ErrorIs(t, err, secp256k1.ErrScalarRange)
}
