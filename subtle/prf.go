package subtle

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"fmt"
	"math/big"
)

// FFX-A2 header constants.
const (
	ffxVersion  = 1
	ffxMethod   = 2 // alternating Feistel
	ffxAddition = 1 // blockwise addition
)

// blockLength returns b = ceil(ceil(beta * log2(radix)) / 8) where beta = ceil(n/2).
// ceil(log2(radix^beta)) is the bit length of radix^beta - 1, so no floating point is involved.
func blockLength(n, radix int) int {
	beta := (n + 1) / 2
	x := radixPow(radix, beta)
	x.Sub(x, big.NewInt(1))
	return (x.BitLen() + 7) / 8
}

// headerP builds the 16-byte P block:
// [vers] | [method] | [addition] | [radix]^3 | [rounds] | [split(n)] | [n]^4 | [t]^4
func (f *FFX) headerP(n int) []byte {
	p := make([]byte, aes.BlockSize)
	p[0] = ffxVersion
	p[1] = ffxMethod
	p[2] = ffxAddition
	p[3] = byte(f.radix >> 16)
	p[4] = byte(f.radix >> 8)
	p[5] = byte(f.radix)
	p[6] = byte(f.rounds)
	p[7] = byte(n / 2)
	binary.BigEndian.PutUint32(p[8:12], uint32(n))
	binary.BigEndian.PutUint32(p[12:16], uint32(len(f.tweak)))
	return p
}

// tailQ builds Q = tweak | [0]^((-t-b-1) mod 16) | [round] | [NUM_radix(B)]^b.
// The padding makes len(Q) a multiple of 16.
func (f *FFX) tailQ(round int, b string, blkLen int) ([]byte, error) {
	padLen := mod(-len(f.tweak)-blkLen-1, aes.BlockSize)

	q := make([]byte, 0, len(f.tweak)+padLen+1+blkLen)
	q = append(q, f.tweak...)
	q = append(q, make([]byte, padLen)...)
	q = append(q, byte(round))

	v, err := Num(b, f.radix)
	if err != nil {
		return nil, err
	}
	q = append(q, fixedBytes(v, blkLen)...)

	return q, nil
}

// fixedBytes returns the low length bytes of v, big-endian.
func fixedBytes(v *big.Int, length int) []byte {
	limit := new(big.Int).Lsh(big.NewInt(1), uint(length*8))
	return new(big.Int).Mod(v, limit).FillBytes(make([]byte, length))
}

// cbcMAC returns the last block of the CBC encryption of msg under a zero IV.
func cbcMAC(block cipher.Block, msg []byte) ([]byte, error) {
	if len(msg) == 0 || len(msg)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrInvalidBlockSize, len(msg), aes.BlockSize)
	}

	iv := make([]byte, aes.BlockSize)
	out := make([]byte, len(msg))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, msg)

	return out[len(out)-aes.BlockSize:], nil
}

// expandY returns the first d+4 bytes of Y | AES(Y ^ [1]^16) | AES(Y ^ [2]^16) | ...
// as a big-endian integer, with d = 4 * ceil(b/4).
func (f *FFX) expandY(y []byte, blkLen int) (*big.Int, error) {
	d := 4 * ((blkLen + 3) / 4)
	need := d + 4

	s := make([]byte, 0, need+aes.BlockSize)
	s = append(s, y...)
	for j := uint64(1); len(s) < need; j++ {
		var counter [aes.BlockSize]byte
		binary.BigEndian.PutUint64(counter[8:], j)
		x, err := XORBytes(y, counter[:])
		if err != nil {
			return nil, err
		}
		f.block.Encrypt(x, x)
		s = append(s, x...)
	}

	return new(big.Int).SetBytes(s[:need]), nil
}

// roundFunction is the FFX-A2 round function F_K(n, T, i, B). It returns m digits,
// where m alternates between floor(n/2) on even rounds and ceil(n/2) on odd rounds.
func (f *FFX) roundFunction(n, round int, b string) (string, error) {
	blkLen := blockLength(n, f.radix)

	q, err := f.tailQ(round, b, blkLen)
	if err != nil {
		return "", err
	}
	msg := append(f.headerP(n), q...)

	mac, err := cbcMAC(f.block, msg)
	if err != nil {
		return "", err
	}

	y, err := f.expandY(mac, blkLen)
	if err != nil {
		return "", err
	}

	m := n / 2
	if round%2 == 1 {
		m = n - n/2
	}

	z := y.Mod(y, radixPow(f.radix, m))
	return Str(z, f.radix, m), nil
}

func mod(x, m int) int {
	return ((x % m) + m) % m
}
