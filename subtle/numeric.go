// Package subtle provides the low-level AES-FFX format-preserving cipher used by ffxcodec.
// It operates on fixed-length digit strings in radix 2 to 36 and works with raw keys.
// Most users should go through the parent package or tinkffx instead.
package subtle

import (
	"fmt"
	"math/big"
	"strings"
)

const digitAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// MinRadix and MaxRadix bound the numeral bases a digit string may use.
const (
	MinRadix = 2
	MaxRadix = len(digitAlphabet)
)

// digitValue returns the value of c in the given radix, or -1 if c is not a digit of it.
// Letters are accepted in either case.
func digitValue(c byte, radix int) int {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a' && c <= 'z':
		v = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		v = int(c-'A') + 10
	default:
		return -1
	}
	if v >= radix {
		return -1
	}
	return v
}

// Num interprets s as a big-endian numeral in the given radix (NUM_radix).
// Leading zero digits are allowed and do not change the value.
func Num(s string, radix int) (*big.Int, error) {
	result := big.NewInt(0)
	radixBig := big.NewInt(int64(radix))

	var digit big.Int
	for i := 0; i < len(s); i++ {
		v := digitValue(s[i], radix)
		if v < 0 {
			return nil, fmt.Errorf("%w: %q at position %d (radix %d)", ErrInvalidDigit, s[i], i, radix)
		}
		result.Mul(result, radixBig)
		result.Add(result, digit.SetInt64(int64(v)))
	}

	return result, nil
}

// Str renders x as exactly m base-radix digits, most significant first (STR^m_radix).
// x must be non-negative; digits above radix^m are dropped.
func Str(x *big.Int, radix, m int) string {
	out := make([]byte, m)
	radixBig := big.NewInt(int64(radix))
	temp := new(big.Int).Set(x)

	var remainder big.Int
	for i := m - 1; i >= 0; i-- {
		temp.DivMod(temp, radixBig, &remainder)
		out[i] = digitAlphabet[remainder.Int64()]
	}

	return string(out)
}

// ZeroPad prepends '0' digits until s is length characters long.
// A string already at least that long is returned unchanged.
func ZeroPad(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return strings.Repeat("0", length-len(s)) + s
}

// Bisect splits s down the middle. When len(s) is odd the right half gets the extra digit.
func Bisect(s string) (string, string) {
	l := len(s) / 2
	return s[:l], s[l:]
}

// XORBytes returns a XOR b. Both slices must have the same length.
func XORBytes(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: cannot xor %d bytes with %d bytes", ErrLengthMismatch, len(a), len(b))
	}
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out, nil
}

// radixPow returns radix^n.
func radixPow(radix, n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(int64(radix)), big.NewInt(int64(n)), nil)
}

// blockAdd computes (x + y) mod radix^len(x), rendered as len(x) digits.
func blockAdd(x, y string, radix int) (string, error) {
	xv, err := Num(x, radix)
	if err != nil {
		return "", err
	}
	yv, err := Num(y, radix)
	if err != nil {
		return "", err
	}
	sum := xv.Add(xv, yv)
	sum.Mod(sum, radixPow(radix, len(x)))
	return Str(sum, radix, len(x)), nil
}

// blockSub computes (x - y) mod radix^n, rendered as n digits. The result is never negative.
func blockSub(n int, x, y string, radix int) (string, error) {
	xv, err := Num(x, radix)
	if err != nil {
		return "", err
	}
	yv, err := Num(y, radix)
	if err != nil {
		return "", err
	}
	diff := xv.Sub(xv, yv)
	diff.Mod(diff, radixPow(radix, n))
	return Str(diff, radix, n), nil
}
