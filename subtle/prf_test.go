package subtle

import (
	"bytes"
	"crypto/aes"
	"encoding/hex"
	"errors"
	"testing"
)

func TestBlockLength(t *testing.T) {
	testCases := []struct {
		n, radix int
		want     int
	}{
		{10, 10, 3},
		{9, 10, 3},
		{6, 10, 2},
		{32, 2, 2},
		{64, 2, 4},
		{12, 36, 4},
		{60, 10, 13},
		// 8^1 - 1 = 7 needs exactly 3 bits; floating point log2 can land just above 3.
		{2, 8, 1},
	}

	for _, tc := range testCases {
		if got := blockLength(tc.n, tc.radix); got != tc.want {
			t.Errorf("blockLength(%d, %d) = %d, want %d", tc.n, tc.radix, got, tc.want)
		}
	}
}

func TestHeaderP(t *testing.T) {
	f := newTestFFX(t, "9876543210", Params{Length: 10, Radix: 10})

	want, _ := hex.DecodeString("0102010000" + "0a" + "0a" + "05" + "0000000a" + "0000000a")
	if got := f.headerP(10); !bytes.Equal(got, want) {
		t.Errorf("headerP = %x, want %x", got, want)
	}
}

func TestTailQ_IsBlockAligned(t *testing.T) {
	for _, tweak := range []string{"", "a", "9876543210", "0123456789abcdef", "a tweak that is longer than one block"} {
		f := newTestFFX(t, tweak, Params{Length: 10, Radix: 10})
		for _, blkLen := range []int{1, 3, 4, 13, 15, 16, 17} {
			q, err := f.tailQ(3, "12345", blkLen)
			if err != nil {
				t.Fatalf("tailQ failed: %v", err)
			}
			if len(q)%aes.BlockSize != 0 {
				t.Errorf("tweak %q, b=%d: len(Q) = %d is not block aligned", tweak, blkLen, len(q))
			}
			if q[len(q)-blkLen-1] != 3 {
				t.Errorf("tweak %q, b=%d: round byte = %d, want 3", tweak, blkLen, q[len(q)-blkLen-1])
			}
		}
	}
}

func TestTailQ_NumRadixBytes(t *testing.T) {
	f := newTestFFX(t, "", Params{Length: 10, Radix: 10})

	q, err := f.tailQ(0, "56789", 3)
	if err != nil {
		t.Fatalf("tailQ failed: %v", err)
	}
	// 56789 = 0x00ddd5
	if got := q[len(q)-3:]; !bytes.Equal(got, []byte{0x00, 0xdd, 0xd5}) {
		t.Errorf("NUM_radix(B) bytes = %x, want 00ddd5", got)
	}
}

func TestCBCMAC(t *testing.T) {
	f := newTestFFX(t, "", Params{Length: 10, Radix: 10})

	// NIST SP 800-38A F.1.1 / F.2.1 plaintext blocks.
	msg, _ := hex.DecodeString("6bc1bee22e409f96e93d7e117393172aae2d8a571e03ac9c9eb76fac45af8e51")

	single, err := cbcMAC(f.block, msg[:16])
	if err != nil {
		t.Fatalf("cbcMAC failed: %v", err)
	}
	if got := hex.EncodeToString(single); got != "3ad77bb40d7a3660a89ecaf32466ef97" {
		t.Errorf("one-block CBC-MAC = %s", got)
	}

	double, err := cbcMAC(f.block, msg)
	if err != nil {
		t.Fatalf("cbcMAC failed: %v", err)
	}
	if got := hex.EncodeToString(double); got != "b148c17f309ee692287ae57cf12add49" {
		t.Errorf("two-block CBC-MAC = %s", got)
	}

	for _, size := range []int{0, 15, 17, 31} {
		if _, err := cbcMAC(f.block, make([]byte, size)); !errors.Is(err, ErrInvalidBlockSize) {
			t.Errorf("cbcMAC(%d bytes) error = %v, want ErrInvalidBlockSize", size, err)
		}
	}
}

func TestExpandY(t *testing.T) {
	f := newTestFFX(t, "", Params{Length: 10, Radix: 10})
	y, _ := hex.DecodeString("3ad77bb40d7a3660a89ecaf32466ef97")

	short, err := f.expandY(y, 3)
	if err != nil {
		t.Fatalf("expandY failed: %v", err)
	}
	// d = 4, so the first 8 bytes of Y are used.
	if got := hex.EncodeToString(short.Bytes()); got != "3ad77bb40d7a3660" {
		t.Errorf("expandY(b=3) = %s", got)
	}

	long, err := f.expandY(y, 13)
	if err != nil {
		t.Fatalf("expandY failed: %v", err)
	}
	raw := long.FillBytes(make([]byte, 20))
	if !bytes.Equal(raw[:16], y) {
		t.Errorf("expandY(b=13) does not start with Y: %x", raw)
	}

	var counter [aes.BlockSize]byte
	counter[aes.BlockSize-1] = 1
	next, _ := XORBytes(y, counter[:])
	f.block.Encrypt(next, next)
	if !bytes.Equal(raw[16:], next[:4]) {
		t.Errorf("expandY(b=13) tail = %x, want %x", raw[16:], next[:4])
	}
}

func TestRoundFunction_AlternatesWidth(t *testing.T) {
	f := newTestFFX(t, "7777777", Params{Length: 9, Radix: 10})

	for round, want := range []int{4, 5, 4, 5} {
		out, err := f.roundFunction(9, round, "12345")
		if err != nil {
			t.Fatalf("roundFunction failed: %v", err)
		}
		if len(out) != want {
			t.Errorf("round %d produced %d digits, want %d", round, len(out), want)
		}
	}
}
