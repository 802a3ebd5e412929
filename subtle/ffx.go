package subtle

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
)

const (
	// DefaultRounds is the number of Feistel rounds used when Params.Rounds is zero.
	DefaultRounds = 10

	// MinLength is the shortest digit string the network can split into two halves.
	MinLength = 2

	// MaxLength is bounded by the one-byte split field of the P header.
	MaxLength = 2*math.MaxUint8 + 1

	// MaxRounds is bounded by the one-byte round fields of P and Q.
	MaxRounds = math.MaxUint8
)

// Params fixes the digit-string domain of an FFX instance. Encrypt and Decrypt only invert
// each other when both sides use identical Params.
type Params struct {
	Length int // number of digits after zero-padding
	Radix  int // numeral base, 2 to 36
	Rounds int // Feistel rounds, 0 means DefaultRounds
}

func (p Params) normalize() (Params, error) {
	if p.Rounds == 0 {
		p.Rounds = DefaultRounds
	}
	if p.Radix < MinRadix || p.Radix > MaxRadix {
		return p, fmt.Errorf("%w: radix %d outside [%d, %d]", ErrInvalidParams, p.Radix, MinRadix, MaxRadix)
	}
	if p.Length < MinLength || p.Length > MaxLength {
		return p, fmt.Errorf("%w: length %d outside [%d, %d]", ErrInvalidParams, p.Length, MinLength, MaxLength)
	}
	if p.Rounds < 1 || p.Rounds > MaxRounds {
		return p, fmt.Errorf("%w: rounds %d outside [1, %d]", ErrInvalidParams, p.Rounds, MaxRounds)
	}
	return p, nil
}

// FFX implements AES-FFX (FFX-A2): a tweakable Feistel network over fixed-length digit
// strings whose round function is a CBC-MAC over AES.
//
// An FFX is immutable once built. It is safe for concurrent use by multiple goroutines;
// use WithTweak or WithParams to derive a differently configured instance.
type FFX struct {
	block  cipher.Block
	tweak  []byte
	length int
	radix  int
	rounds int
}

// NewFFX creates an FFX instance from a raw AES key, a tweak and the digit domain.
// The tweak is public and may be empty.
func NewFFX(key, tweak []byte, p Params) (*FFX, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKey, len(key))
	}
	p, err := p.normalize()
	if err != nil {
		return nil, err
	}
	if uint64(len(tweak)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: tweak of %d bytes", ErrInvalidParams, len(tweak))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	return &FFX{
		block:  block,
		tweak:  append([]byte(nil), tweak...),
		length: p.Length,
		radix:  p.Radix,
		rounds: p.Rounds,
	}, nil
}

// NewFFXFromHex is NewFFX with the key given as a hexadecimal string.
func NewFFXFromHex(keyHex string, tweak []byte, p Params) (*FFX, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: key is not hex: %v", ErrInvalidKey, err)
	}
	return NewFFX(key, tweak, p)
}

// Params returns the digit domain of f.
func (f *FFX) Params() Params {
	return Params{Length: f.length, Radix: f.radix, Rounds: f.rounds}
}

// Tweak returns a copy of the tweak.
func (f *FFX) Tweak() []byte {
	return append([]byte(nil), f.tweak...)
}

// WithTweak returns a copy of f that uses tweak. The key schedule is shared.
func (f *FFX) WithTweak(tweak []byte) *FFX {
	g := *f
	g.tweak = append([]byte(nil), tweak...)
	return &g
}

// WithParams returns a copy of f operating over a different digit domain.
func (f *FFX) WithParams(p Params) (*FFX, error) {
	p, err := p.normalize()
	if err != nil {
		return nil, err
	}
	g := *f
	g.length, g.radix, g.rounds = p.Length, p.Radix, p.Rounds
	return &g, nil
}

// prepare zero-pads input to the configured length and checks every digit.
func (f *FFX) prepare(input string) (string, error) {
	if len(input) > f.length {
		return "", fmt.Errorf("%w: input has %d digits, configured length is %d", ErrLengthMismatch, len(input), f.length)
	}
	for i := 0; i < len(input); i++ {
		if digitValue(input[i], f.radix) < 0 {
			return "", fmt.Errorf("%w: %q at position %d (radix %d)", ErrInvalidDigit, input[i], i, f.radix)
		}
	}
	return ZeroPad(strings.ToLower(input), f.length), nil
}

// Encrypt enciphers a base-radix digit string. Inputs shorter than the configured length
// are left-padded with zeros; the result always has exactly that many digits.
func (f *FFX) Encrypt(input string) (string, error) {
	x, err := f.prepare(input)
	if err != nil {
		return "", err
	}

	n := len(x)
	a, b := Bisect(x)
	for i := 0; i < f.rounds; i++ {
		fr, err := f.roundFunction(n, i, b)
		if err != nil {
			return "", fmt.Errorf("round %d: %w", i, err)
		}
		c, err := blockAdd(a, fr, f.radix)
		if err != nil {
			return "", fmt.Errorf("round %d: %w", i, err)
		}
		a, b = b, c
	}

	return a + b, nil
}

// Decrypt inverts Encrypt for the same key, tweak and Params.
func (f *FFX) Decrypt(input string) (string, error) {
	x, err := f.prepare(input)
	if err != nil {
		return "", err
	}

	// Every round swaps the half widths, so after an odd number of rounds the
	// left half holds the extra digit of an odd-length input.
	n := len(x)
	l := n / 2
	if f.rounds%2 == 1 {
		l = n - l
	}
	a, b := x[:l], x[l:]
	for i := f.rounds - 1; i >= 0; i-- {
		c := b
		b = a
		fr, err := f.roundFunction(n, i, b)
		if err != nil {
			return "", fmt.Errorf("round %d: %w", i, err)
		}
		a, err = blockSub(min(len(c), len(fr)), c, fr, f.radix)
		if err != nil {
			return "", fmt.Errorf("round %d: %w", i, err)
		}
	}

	return a + b, nil
}
