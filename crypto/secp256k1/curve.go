package secp256k1

import (
	"fmt"
	"math/big"
)

// Curve parameters per SEC2: y^2 = x^3 + 7 over F_p.
var (
	curveP  = mustHexInt("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F")
	curveN  = mustHexInt("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141")
	curveGx = mustHexInt("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798")
	curveGy = mustHexInt("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8")

	curveB = big.NewInt(7)

	// halfN is N/2, the low-S boundary.
	halfN = new(big.Int).Rsh(curveN, 1)

	// sqrtExp is (p+1)/4; p = 3 mod 4, so a^sqrtExp is a square root of a
	// when one exists.
	sqrtExp = new(big.Int).Rsh(new(big.Int).Add(curveP, big.NewInt(1)), 2)
)

func mustHexInt(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic(fmt.Sprintf("bad hex constant %q", s))
	}
	return v
}

// modInverse returns a^-1 mod m in [0, m), or an error when a has no
// inverse mod m.
func modInverse(a, m *big.Int) (*big.Int, error) {
	inv := new(big.Int).ModInverse(a, m)
	if inv == nil {
		return nil, fmt.Errorf("no inverse of %v mod %v", a, m)
	}
	return inv, nil
}

// pointAdd adds two affine points on the curve. The identity is (0, 0).
// Handles the doubling case (P == Q) and the vertical case (P == -Q).
func pointAdd(px, py, qx, qy *big.Int) (*big.Int, *big.Int) {
	if px.Sign() == 0 && py.Sign() == 0 {
		return new(big.Int).Set(qx), new(big.Int).Set(qy)
	}
	if qx.Sign() == 0 && qy.Sign() == 0 {
		return new(big.Int).Set(px), new(big.Int).Set(py)
	}

	lam := new(big.Int)
	if px.Cmp(qx) == 0 {
		if py.Cmp(qy) != 0 {
			return new(big.Int), new(big.Int)
		}
		// slope 3x^2 / 2y
		num := new(big.Int).Mul(px, px)
		num.Mul(num, big.NewInt(3))
		den, err := modInverse(new(big.Int).Lsh(py, 1), curveP)
		if err != nil {
			// 2y not invertible means y == 0, a point of order two,
			// which does not exist on secp256k1.
			return new(big.Int), new(big.Int)
		}
		lam.Mul(num, den)
	} else {
		num := new(big.Int).Sub(qy, py)
		den, err := modInverse(new(big.Int).Sub(qx, px), curveP)
		if err != nil {
			return new(big.Int), new(big.Int)
		}
		lam.Mul(num, den)
	}
	lam.Mod(lam, curveP)

	rx := new(big.Int).Mul(lam, lam)
	rx.Sub(rx, px)
	rx.Sub(rx, qx)
	rx.Mod(rx, curveP)

	ry := new(big.Int).Sub(px, rx)
	ry.Mul(ry, lam)
	ry.Sub(ry, py)
	ry.Mod(ry, curveP)

	return rx, ry
}

// pointMul computes d*(x, y) with right-to-left double-and-add. The scalar
// is reduced mod N first.
func pointMul(d, x, y *big.Int) (*big.Int, *big.Int) {
	k := new(big.Int).Mod(d, curveN)
	rx, ry := new(big.Int), new(big.Int)
	px, py := new(big.Int).Set(x), new(big.Int).Set(y)
	for k.Sign() > 0 {
		if k.Bit(0) == 1 {
			rx, ry = pointAdd(rx, ry, px, py)
		}
		px, py = pointAdd(px, py, px, py)
		k.Rsh(k, 1)
	}
	return rx, ry
}

// encodePoint serializes an affine point uncompressed: 0x04 || X || Y.
func encodePoint(x, y *big.Int) []byte {
	out := make([]byte, PubKeySize)
	out[0] = 0x04
	x.FillBytes(out[1:33])
	y.FillBytes(out[33:65])
	return out
}
