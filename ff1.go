package ffxcodec

import (
	"fmt"
	"strings"

	"github.com/capitalone/fpe/ff1"
	"github.com/vdparikh/ffxcodec/subtle"
)

// ff1Cipher adapts NIST SP 800-38G FF1 (github.com/capitalone/fpe) to the Cipher interface.
// Inputs are zero-padded to a fixed length so the result has the same width as FFX output.
type ff1Cipher struct {
	ff1    ff1.Cipher
	radix  int
	length int
}

// NewFF1Cipher returns a Cipher backed by FF1 over length-digit numerals of the given radix.
// Use radix 2 and the Codec's BitLength to plug it into a Codec in place of FFX:
//
//	c, err := ffxcodec.NewFF1Cipher(key, tweak, 2, codec.BitLength())
//	encrypted := codec.WithEncryption(c)
func NewFF1Cipher(key, tweak []byte, radix, length int) (Cipher, error) {
	if radix < subtle.MinRadix || radix > subtle.MaxRadix {
		return nil, fmt.Errorf("%w: radix %d", subtle.ErrInvalidParams, radix)
	}
	if length < subtle.MinLength {
		return nil, fmt.Errorf("%w: length %d", subtle.ErrInvalidParams, length)
	}

	c, err := ff1.NewCipher(radix, len(tweak), key, tweak)
	if err != nil {
		return nil, fmt.Errorf("failed to create FF1 cipher: %w", err)
	}
	return &ff1Cipher{ff1: c, radix: radix, length: length}, nil
}

func (c *ff1Cipher) Encrypt(digits string) (string, error) {
	x, err := c.prepare(digits)
	if err != nil {
		return "", err
	}
	out, err := c.ff1.Encrypt(x)
	if err != nil {
		return "", fmt.Errorf("ff1 encrypt: %w", err)
	}
	return out, nil
}

func (c *ff1Cipher) Decrypt(digits string) (string, error) {
	x, err := c.prepare(digits)
	if err != nil {
		return "", err
	}
	out, err := c.ff1.Decrypt(x)
	if err != nil {
		return "", fmt.Errorf("ff1 decrypt: %w", err)
	}
	return out, nil
}

func (c *ff1Cipher) prepare(digits string) (string, error) {
	if len(digits) > c.length {
		return "", fmt.Errorf("%w: input has %d digits, configured length is %d", ErrLengthMismatch, len(digits), c.length)
	}
	x := strings.ToLower(digits)
	if _, err := subtle.Num(x, c.radix); err != nil {
		return "", err
	}
	return subtle.ZeroPad(x, c.length), nil
}
