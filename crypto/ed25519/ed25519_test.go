package ed25519_test

import (
	stded25519 "crypto/ed25519"
	"encoding/hex"
	"testing"

	voied25519 "github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picops/picocrypto/crypto/ed25519"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// Test vectors from RFC 8032, section 7.1.
func TestRFC8032Vectors(t *testing.T) {
	tests := []struct {
		name string
		seed string
		pub  string
		msg  string
		sig  string
	}{
		{
			"Test1EmptyMessage",
			"9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60",
			"d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a",
			"",
			"e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e06522490155" +
				"5fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b",
		},
		{
			"Test2OneByte",
			"4ccd089b28ff96da9db6c346ec114e0f5b8a319f35aba624da8cf6ed4fb8a6fb",
			"3d4017c3e843895a92b70aa74d1b7ebc9c982ccf2ec4968cc0cd55f12af4660c",
			"72",
			"92a009a9f0d4cab8720e820b5f642540a2b27b5416503f8fb3762223ebdb69da" +
				"085ac1e43e15996e458f3613d0f11d8c387b2eaeb4302aeeb00d291612bb0c00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := mustHex(t, tt.seed)
			msg := mustHex(t, tt.msg)

			pub, err := ed25519.PublicKeyFromSeed(seed)
			require.NoError(t, err)
			assert.Equal(t, mustHex(t, tt.pub), pub)

			sig, err := ed25519.Sign(msg, seed)
			require.NoError(t, err)
			assert.Equal(t, mustHex(t, tt.sig), sig)

			assert.True(t, ed25519.Verify(msg, sig, pub))
		})
	}
}

func TestMatchesStdlibAndVoi(t *testing.T) {
	seed := ed25519.GenPrivKey()
	msg := []byte("interoperability check")

	sig, err := ed25519.Sign(msg, seed)
	require.NoError(t, err)
	pub, err := ed25519.PublicKeyFromSeed(seed)
	require.NoError(t, err)

	stdPriv := stded25519.NewKeyFromSeed(seed)
	assert.Equal(t, []byte(stdPriv.Public().(stded25519.PublicKey)), pub)
	assert.Equal(t, stded25519.Sign(stdPriv, msg), sig)
	assert.True(t, stded25519.Verify(stded25519.PublicKey(pub), msg, sig))

	voiPriv := voied25519.NewKeyFromSeed(seed)
	assert.Equal(t, voied25519.Sign(voiPriv, msg), sig)
	assert.True(t, voied25519.Verify(voied25519.PublicKey(pub), msg, sig))
}

func TestVerifyRejectsMutations(t *testing.T) {
	seed := ed25519.GenPrivKey()
	msg := []byte("mutation resistance")

	sig, err := ed25519.Sign(msg, seed)
	require.NoError(t, err)
	pub, err := ed25519.PublicKeyFromSeed(seed)
	require.NoError(t, err)
	require.True(t, ed25519.Verify(msg, sig, pub))

	for _, i := range []int{0, 1, 31, 32, 33, 63} {
		mutated := append([]byte(nil), sig...)
		mutated[i] ^= 0x40
		assert.False(t, ed25519.Verify(msg, mutated, pub), "flipped signature byte %d", i)
	}
	for _, i := range []int{0, 15, 31} {
		mutated := append([]byte(nil), pub...)
		mutated[i] ^= 0x40
		assert.False(t, ed25519.Verify(msg, sig, mutated), "flipped pubkey byte %d", i)
	}
	assert.False(t, ed25519.Verify(append(msg, 'x'), sig, pub))
}

func TestVerifyMalformedInputs(t *testing.T) {
	seed := ed25519.GenPrivKey()
	msg := []byte("shapes")
	sig, err := ed25519.Sign(msg, seed)
	require.NoError(t, err)
	pub, err := ed25519.PublicKeyFromSeed(seed)
	require.NoError(t, err)

	assert.False(t, ed25519.Verify(msg, sig[:63], pub))
	assert.False(t, ed25519.Verify(msg, sig, pub[:31]))
	assert.False(t, ed25519.Verify(msg, nil, pub))

	// s >= L must be rejected: the all-0xff scalar is far above the order
	bigS := append([]byte(nil), sig...)
	for i := 32; i < 64; i++ {
		bigS[i] = 0xff
	}
	assert.False(t, ed25519.Verify(msg, bigS, pub))
}

func TestSeedLength(t *testing.T) {
	_, err := ed25519.PublicKeyFromSeed(make([]byte, 31))
	require.ErrorIs(t, err, ed25519.ErrSeedLength)
	_, err = ed25519.Sign([]byte("m"), make([]byte, 33))
	require.ErrorIs(t, err, ed25519.ErrSeedLength)
}

func TestKeyInterface(t *testing.T) {
	privKey := ed25519.GenPrivKey()
	msg := []byte("We have lingered long enough on the shores of the cosmic ocean.")

	sig, err := privKey.Sign(msg)
	require.NoError(t, err)

	pubKey := privKey.PubKey()
	assert.True(t, pubKey.VerifySignature(msg, sig))
	assert.False(t, pubKey.VerifySignature([]byte("other"), sig))

	assert.Equal(t, ed25519.KeyType, privKey.Type())
	assert.Len(t, pubKey.Address(), 20)
	assert.True(t, privKey.Equals(ed25519.PrivKey(privKey.Bytes())))

	fromSecret := ed25519.GenPrivKeyFromSecret([]byte("secret"))
	assert.True(t, fromSecret.Equals(ed25519.GenPrivKeyFromSecret([]byte("secret"))))
	assert.False(t, fromSecret.Equals(privKey))
}

func BenchmarkSign(b *testing.B) {
	seed := ed25519.GenPrivKey()
	msg := []byte("benchmark message")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := ed25519.Sign(msg, seed); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkVerify(b *testing.B) {
	seed := ed25519.GenPrivKey()
	msg := []byte("benchmark message")
	sig, _ := ed25519.Sign(msg, seed)
	pub, _ := ed25519.PublicKeyFromSeed(seed)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if !ed25519.Verify(msg, sig, pub) {
			b.Fatal("verification failed")
		}
	}
}
