package subtle

import "errors"

var (
	// ErrInvalidKey is returned when the AES key is not 16, 24, or 32 bytes.
	ErrInvalidKey = errors.New("subtle: invalid key size, must be 16, 24, or 32 bytes")

	// ErrInvalidParams is returned when the radix, length, or round count is out of range.
	ErrInvalidParams = errors.New("subtle: invalid FFX parameters")

	// ErrInvalidDigit is returned when an input character is not a digit in the configured radix.
	ErrInvalidDigit = errors.New("subtle: invalid digit for radix")

	// ErrLengthMismatch is returned when an input is longer than the configured length,
	// or when two byte strings that must be the same length are not.
	ErrLengthMismatch = errors.New("subtle: length mismatch")

	// ErrInvalidBlockSize is returned when a CBC-MAC input is not a whole number of AES blocks.
	// It indicates a construction defect rather than bad input.
	ErrInvalidBlockSize = errors.New("subtle: invalid block size")
)
