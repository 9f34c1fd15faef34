package ed25519

import (
	"crypto/sha512"
	"errors"
	"math/big"
)

// Field prime p = 2^255 - 19 and base-point order
// L = 2^252 + 27742317777372353535851937790883648493.
var (
	fieldP = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(19))
	orderL = func() *big.Int {
		l, _ := new(big.Int).SetString("27742317777372353535851937790883648493", 10)
		return l.Add(l, new(big.Int).Lsh(big.NewInt(1), 252))
	}()

	// curveD = -121665/121666 mod p
	curveD = func() *big.Int {
		inv := new(big.Int).ModInverse(big.NewInt(121666), fieldP)
		d := new(big.Int).Mul(big.NewInt(-121665), inv)
		return d.Mod(d, fieldP)
	}()

	// sqrtM1 = 2^((p-1)/4), the square root of -1 used to fix up
	// candidate roots in decompression.
	sqrtM1 = new(big.Int).Exp(big.NewInt(2), new(big.Int).Rsh(new(big.Int).Sub(fieldP, big.NewInt(1)), 2), fieldP)

	// xRecExp = (p+3)/8, the candidate-root exponent.
	xRecExp = new(big.Int).Rsh(new(big.Int).Add(fieldP, big.NewInt(3)), 3)
)

var errNoPoint = errors.New("ed25519: not a valid curve point")

// point is an extended-coordinate Edwards point: x = X/Z, y = Y/Z,
// x*y = T/Z.
type point struct {
	x, y, z, t *big.Int
}

func newIdentity() *point {
	return &point{big.NewInt(0), big.NewInt(1), big.NewInt(1), big.NewInt(0)}
}

// basePoint has y = 4/5 and the even x.
var basePoint = func() *point {
	y := new(big.Int).ModInverse(big.NewInt(5), fieldP)
	y.Mul(y, big.NewInt(4))
	y.Mod(y, fieldP)
	x, err := recoverX(y, 0)
	if err != nil {
		panic(err)
	}
	t := new(big.Int).Mul(x, y)
	t.Mod(t, fieldP)
	return &point{x, y, big.NewInt(1), t}
}()

func modP(v *big.Int) *big.Int { return v.Mod(v, fieldP) }

// recoverX solves x^2 = (y^2 - 1) / (d*y^2 + 1) for the x whose low bit
// matches sign. p = 5 mod 8, so the candidate root is v^((p+3)/8),
// corrected by sqrt(-1) when it squares to -x2.
func recoverX(y *big.Int, sign uint) (*big.Int, error) {
	if y.Cmp(fieldP) >= 0 {
		return nil, errNoPoint
	}
	y2 := new(big.Int).Mul(y, y)
	num := new(big.Int).Sub(y2, big.NewInt(1))
	den := new(big.Int).Mul(curveD, y2)
	den.Add(den, big.NewInt(1))
	if den.ModInverse(den, fieldP) == nil {
		return nil, errNoPoint
	}
	x2 := modP(new(big.Int).Mul(num, den))
	if x2.Sign() == 0 {
		if sign == 0 {
			return big.NewInt(0), nil
		}
		return nil, errNoPoint
	}

	x := new(big.Int).Exp(x2, xRecExp, fieldP)
	if modP(new(big.Int).Mul(x, x)).Cmp(x2) != 0 {
		x = modP(x.Mul(x, sqrtM1))
	}
	if modP(new(big.Int).Mul(x, x)).Cmp(x2) != 0 {
		return nil, errNoPoint
	}
	if x.Bit(0) != uint(sign) {
		x.Sub(fieldP, x)
	}
	return x, nil
}

// pointAdd adds two points with the unified extended-coordinate formulas
// (RFC 8032, section 5.1.4).
func pointAdd(p, q *point) *point {
	a := new(big.Int).Sub(p.y, p.x)
	a.Mul(a, new(big.Int).Sub(q.y, q.x))
	modP(a)

	b := new(big.Int).Add(p.y, p.x)
	b.Mul(b, new(big.Int).Add(q.y, q.x))
	modP(b)

	c := new(big.Int).Mul(p.t, q.t)
	c.Mul(c, curveD)
	c.Lsh(c, 1)
	modP(c)

	d := new(big.Int).Mul(p.z, q.z)
	d.Lsh(d, 1)
	modP(d)

	e := new(big.Int).Sub(b, a)
	f := new(big.Int).Sub(d, c)
	g := new(big.Int).Add(d, c)
	h := new(big.Int).Add(b, a)

	return &point{
		x: modP(new(big.Int).Mul(e, f)),
		y: modP(new(big.Int).Mul(g, h)),
		z: modP(new(big.Int).Mul(f, g)),
		t: modP(new(big.Int).Mul(e, h)),
	}
}

// pointMul computes s*P with right-to-left double-and-add; the scalar is
// reduced mod L first.
func pointMul(s *big.Int, p *point) *point {
	k := new(big.Int).Mod(s, orderL)
	q := newIdentity()
	acc := p
	for k.Sign() > 0 {
		if k.Bit(0) == 1 {
			q = pointAdd(q, acc)
		}
		acc = pointAdd(acc, acc)
		k.Rsh(k, 1)
	}
	return q
}

// pointEqual compares two projective points by cross-multiplying out the
// Z denominators.
func pointEqual(p, q *point) bool {
	lhs := new(big.Int).Mul(p.x, q.z)
	rhs := new(big.Int).Mul(q.x, p.z)
	if modP(lhs).Cmp(modP(rhs)) != 0 {
		return false
	}
	lhs.Mul(p.y, q.z)
	rhs.Mul(q.y, p.z)
	return modP(lhs).Cmp(modP(rhs)) == 0
}

// pointCompress encodes a point as 32 little-endian bytes: y with the sign
// bit of x in the top bit.
func pointCompress(p *point) []byte {
	zinv := new(big.Int).ModInverse(p.z, fieldP)
	x := modP(new(big.Int).Mul(p.x, zinv))
	y := modP(new(big.Int).Mul(p.y, zinv))
	y.SetBit(y, 255, x.Bit(0))
	return scalarToLE(y)
}

// pointDecompress parses a 32-byte compressed point; the y coordinate must
// be canonical (below p).
func pointDecompress(enc []byte) (*point, error) {
	if len(enc) != 32 {
		return nil, errNoPoint
	}
	le := make([]byte, 32)
	for i, c := range enc {
		le[31-i] = c
	}
	y := new(big.Int).SetBytes(le)
	sign := y.Bit(255)
	y.SetBit(y, 255, 0)

	x, err := recoverX(y, sign)
	if err != nil {
		return nil, err
	}
	t := modP(new(big.Int).Mul(x, y))
	return &point{x, y, big.NewInt(1), t}, nil
}

// sha512ModL hashes the concatenation of the given slices with SHA-512 and
// reduces the little-endian result mod L.
func sha512ModL(chunks ...[]byte) *big.Int {
	h := sha512.New()
	for _, c := range chunks {
		h.Write(c)
	}
	sum := h.Sum(nil)
	le := make([]byte, len(sum))
	for i, c := range sum {
		le[len(sum)-1-i] = c
	}
	v := new(big.Int).SetBytes(le)
	return v.Mod(v, orderL)
}

// expandSeed derives the clamped scalar and the signing prefix from a seed
// (RFC 8032, section 5.1.5).
func expandSeed(seed []byte) (*big.Int, []byte) {
	h := sha512.Sum512(seed)
	a := leToScalar(h[:32])
	// clamp: clear the low 3 bits and the top bit, set bit 254
	a.SetBit(a, 0, 0)
	a.SetBit(a, 1, 0)
	a.SetBit(a, 2, 0)
	a.SetBit(a, 255, 0)
	a.SetBit(a, 254, 1)
	return a, h[32:]
}

// scalarToLE encodes a scalar as 32 little-endian bytes.
func scalarToLE(s *big.Int) []byte {
	be := make([]byte, 32)
	s.FillBytes(be)
	out := make([]byte, 32)
	for i, c := range be {
		out[31-i] = c
	}
	return out
}

// leToScalar decodes 32 little-endian bytes into a scalar.
func leToScalar(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i, c := range b {
		be[len(b)-1-i] = c
	}
	return new(big.Int).SetBytes(be)
}
