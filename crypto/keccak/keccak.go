// Package keccak implements the original Keccak-256 hash as used by
// Ethereum. This is the pre-NIST variant with the 0x01 domain separator,
// not the later SHA3-256 (which pads with 0x06); the two produce different
// digests for every input.
package keccak

import (
	"encoding/binary"
	"hash"
	"math/bits"
)

const (
	// Size is the size of a Keccak-256 digest in bytes.
	Size = 32
	// BlockSize is the sponge rate in bytes: 1088 bits of the 1600-bit
	// state absorb input, the remaining 512 bits are capacity.
	BlockSize = 136
)

const numRounds = 24

// roundConstants are XORed into lane (0,0) by the iota step, one per round.
var roundConstants = [numRounds]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// rotationOffsets[x][y] is the rho-step rotation for lane (x, y).
var rotationOffsets = [5][5]int{
	{0, 36, 3, 41, 18},
	{1, 44, 10, 45, 2},
	{62, 6, 43, 15, 61},
	{28, 55, 25, 21, 56},
	{27, 20, 39, 8, 14},
}

// keccakF applies the 24-round Keccak-f[1600] permutation to the state.
// Lanes are indexed x + 5*y.
func keccakF(a *[25]uint64) {
	var b [25]uint64
	var c, d [5]uint64

	for r := 0; r < numRounds; r++ {
		// theta
		for x := 0; x < 5; x++ {
			c[x] = a[x] ^ a[x+5] ^ a[x+10] ^ a[x+15] ^ a[x+20]
		}
		for x := 0; x < 5; x++ {
			d[x] = bits.RotateLeft64(c[(x+1)%5], 1) ^ c[(x+4)%5]
		}
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x+5*y] ^= d[x]
			}
		}

		// rho and pi
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				b[y+5*((2*x+3*y)%5)] = bits.RotateLeft64(a[x+5*y], rotationOffsets[x][y])
			}
		}

		// chi
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x+5*y] = b[x+5*y] ^ (^b[(x+1)%5+5*y] & b[(x+2)%5+5*y])
			}
		}

		// iota
		a[0] ^= roundConstants[r]
	}
}

type digest struct {
	a   [25]uint64
	buf [BlockSize]byte
	n   int
}

var _ hash.Hash = (*digest)(nil)

// New returns a new streaming Keccak-256 hash.Hash.
func New() hash.Hash {
	return &digest{}
}

func (d *digest) Size() int      { return Size }
func (d *digest) BlockSize() int { return BlockSize }

func (d *digest) Reset() {
	d.a = [25]uint64{}
	d.n = 0
}

func (d *digest) Write(p []byte) (int, error) {
	written := len(p)
	for len(p) > 0 {
		n := copy(d.buf[d.n:], p)
		d.n += n
		p = p[n:]
		if d.n == BlockSize {
			d.absorb()
		}
	}
	return written, nil
}

// absorb XORs the buffered rate block into the state as 17 little-endian
// lanes and applies the permutation.
func (d *digest) absorb() {
	for i := 0; i < BlockSize/8; i++ {
		d.a[i] ^= binary.LittleEndian.Uint64(d.buf[i*8:])
	}
	keccakF(&d.a)
	d.n = 0
}

// Sum appends the Keccak-256 digest to b. The receiver state is not
// modified, so callers may keep writing.
func (d *digest) Sum(b []byte) []byte {
	dup := *d

	// Multirate padding pad10*1: the 0x01 domain byte at the current
	// offset, zeros, and 0x80 ORed into the final byte of the block. When
	// the message fills all but one byte of the block the two markers land
	// in the same byte, 0x81. A message ending on the rate boundary gets a
	// full padding block.
	for i := dup.n; i < BlockSize; i++ {
		dup.buf[i] = 0
	}
	dup.buf[dup.n] = 0x01
	dup.buf[BlockSize-1] |= 0x80
	dup.n = BlockSize
	dup.absorb()

	var out [Size]byte
	for i := 0; i < Size/8; i++ {
		binary.LittleEndian.PutUint64(out[i*8:], dup.a[i])
	}
	return append(b, out[:]...)
}

// Sum256 returns the Keccak-256 digest of data.
func Sum256(data []byte) [Size]byte {
	var d digest
	d.Write(data) //nolint:errcheck // never fails
	var out [Size]byte
	copy(out[:], d.Sum(nil))
	return out
}

// Sum returns the Keccak-256 digest of data as a byte slice.
func Sum(data []byte) []byte {
	out := Sum256(data)
	return out[:]
}

// SumMany hashes the concatenation of the given byteslices as if they were
// one joined slice.
func SumMany(data []byte, rest ...[]byte) []byte {
	var d digest
	d.Write(data) //nolint:errcheck // never fails
	for _, b := range rest {
		d.Write(b) //nolint:errcheck // never fails
	}
	return d.Sum(nil)
}
