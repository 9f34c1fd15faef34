package secp256k1

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_genPrivKey(t *testing.T) {
	empty := make([]byte, 0, 32)
	oneB := big.NewInt(1).Bytes()
	onePadded := make([]byte, 32)
	copy(onePadded[32-len(oneB):32], oneB)

	validOne := append(empty, onePadded...)
	tests := []struct {
		name        string
		notSoRand   []byte
		shouldPanic bool
	}{
		{"empty bytes (panics because the reader runs out before 32 bytes are read)", empty, true},
		{"curve order: N", curveN.Bytes(), true},
		{"valid because 0 < 1 < N", validOne, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldPanic {
				require.Panics(t, func() {
					genPrivKey(bytes.NewReader(tt.notSoRand))
				})
				return
			}
			got := genPrivKey(bytes.NewReader(tt.notSoRand))
			fe := new(big.Int).SetBytes(got[:])
			require.Less(t, fe.Cmp(curveN), 0)
			require.Greater(t, fe.Sign(), 0)
		})
	}
}

func TestPointAddIdentity(t *testing.T) {
	zero := new(big.Int)

	// 0 + G = G
	x, y := pointAdd(zero, zero, curveGx, curveGy)
	require.Zero(t, x.Cmp(curveGx))
	require.Zero(t, y.Cmp(curveGy))

	// G + (-G) = 0
	negGy := new(big.Int).Sub(curveP, curveGy)
	x, y = pointAdd(curveGx, curveGy, curveGx, negGy)
	require.Zero(t, x.Sign())
	require.Zero(t, y.Sign())
}

func TestPointMulAgainstAdd(t *testing.T) {
	// 2G and 3G via repeated addition must match scalar mul
	x2, y2 := pointAdd(curveGx, curveGy, curveGx, curveGy)
	mx, my := pointMul(big.NewInt(2), curveGx, curveGy)
	require.Zero(t, x2.Cmp(mx))
	require.Zero(t, y2.Cmp(my))

	x3, y3 := pointAdd(x2, y2, curveGx, curveGy)
	mx, my = pointMul(big.NewInt(3), curveGx, curveGy)
	require.Zero(t, x3.Cmp(mx))
	require.Zero(t, y3.Cmp(my))

	// N*G = identity
	mx, my = pointMul(curveN, curveGx, curveGy)
	require.Zero(t, mx.Sign())
	require.Zero(t, my.Sign())
}

func BenchmarkSignRecoverable(b *testing.B) {
	privKey := GenPrivKey()
	digest := make([]byte, 32)
	digest[31] = 1
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, _, _, err := SignRecoverable(privKey, digest); err != nil {
			b.Fatal(err)
		}
	}
}
