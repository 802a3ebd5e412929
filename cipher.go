package ffxcodec

import "github.com/vdparikh/ffxcodec/subtle"

// Cipher is a format-preserving cipher over fixed-length digit strings.
// Encrypt and Decrypt must return exactly as many digits as they are given once the
// input is padded to the cipher's configured length, and Decrypt must invert Encrypt.
//
// The Codec passes binary strings of its combined bit length. *subtle.FFX implements
// Cipher, as does the FF1 adapter returned by NewFF1Cipher; tests may substitute their own.
type Cipher interface {
	// Encrypt enciphers a digit string, preserving its length.
	Encrypt(digits string) (string, error)

	// Decrypt is the inverse of Encrypt.
	Decrypt(digits string) (string, error)
}

// Verify that the FFX primitive implements Cipher
var _ Cipher = (*subtle.FFX)(nil)
