package ffxcodec

import (
	"errors"
	"fmt"

	"github.com/vdparikh/ffxcodec/subtle"
)

var (
	// ErrConfiguration is returned when the two field widths do not add up to 32 or 64 bits.
	ErrConfiguration = errors.New("ffxcodec: combined size must be 32 or 64 bits")

	// ErrOutOfRange is returned when a component value does not fit its field.
	ErrOutOfRange = errors.New("ffxcodec: value out of bounds")

	// ErrRangeOverflow is returned when a packed value exceeds the combined width.
	// It cannot happen with a valid Encoder and indicates a bug.
	ErrRangeOverflow = errors.New("ffxcodec: combined value exceeds width")

	// ErrCipherOutput is returned when a Cipher produces something that is not a
	// binary numeral of the combined width.
	ErrCipherOutput = errors.New("ffxcodec: cipher output does not fit the combined width")

	// ErrStructural is returned when the FFX round function builds a CBC-MAC input that
	// is not block aligned.
	ErrStructural = subtle.ErrInvalidBlockSize

	// ErrLengthMismatch is returned when a digit string is longer than the cipher length.
	ErrLengthMismatch = subtle.ErrLengthMismatch
)

// RangeError reports a component value outside its allotted bit width.
type RangeError struct {
	Field    string // "LHS" or "RHS"
	Bits     int
	Value    uint64
	Negative bool // Value is the magnitude of a negative input
	Max      uint64
}

func (e *RangeError) Error() string {
	sign := ""
	if e.Negative {
		sign = "-"
	}
	return fmt.Sprintf("ffxcodec: %s %d-bit value out of bounds: %s%d (max %d)", e.Field, e.Bits, sign, e.Value, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

// ConfigError reports an invalid pair of field widths.
type ConfigError struct {
	ASize, BSize int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: got %d + %d = %d", ErrConfiguration, e.ASize, e.BSize, e.ASize+e.BSize)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }
