package ffxcodec

import "fmt"

// Encoder packs two unsigned integers of fixed bit widths into one 32 or 64-bit
// unsigned integer and splits it back. The left value occupies the high bits.
//
// An Encoder is immutable and safe for concurrent use.
type Encoder struct {
	aSize, bSize int
	size         int
	aMax, bMax   uint64
}

// NewEncoder creates an Encoder that gives aSize bits to the left integer and bSize bits
// to the right one. aSize + bSize must be 32 or 64.
func NewEncoder(aSize, bSize int) (*Encoder, error) {
	size := aSize + bSize
	if aSize < 0 || bSize < 0 || (size != 32 && size != 64) {
		return nil, &ConfigError{ASize: aSize, BSize: bSize}
	}
	return &Encoder{
		aSize: aSize,
		bSize: bSize,
		size:  size,
		aMax:  maxValue(aSize),
		bMax:  maxValue(bSize),
	}, nil
}

// maxValue returns 2^bits - 1 without overflowing at 64 bits.
func maxValue(bits int) uint64 {
	if bits == 0 {
		return 0
	}
	return ^uint64(0) >> (64 - bits)
}

// Encode combines a and b into a single integer as (a << bSize) ^ b.
// Because b never exceeds 2^bSize - 1 the XOR never touches a's bits, so this is a plain
// concatenation of the two fields.
func (e *Encoder) Encode(a, b uint64) (uint64, error) {
	if a > e.aMax {
		return 0, &RangeError{Field: "LHS", Bits: e.aSize, Value: a, Max: e.aMax}
	}
	if b > e.bMax {
		return 0, &RangeError{Field: "RHS", Bits: e.bSize, Value: b, Max: e.bMax}
	}

	c := (a << e.bSize) ^ b
	if c > maxValue(e.size) {
		return 0, fmt.Errorf("%w: %d does not fit in %d bits", ErrRangeOverflow, c, e.size)
	}
	return c, nil
}

// EncodeInt is Encode for signed inputs. Negative values are out of range.
func (e *Encoder) EncodeInt(a, b int64) (uint64, error) {
	if a < 0 {
		return 0, &RangeError{Field: "LHS", Bits: e.aSize, Value: uint64(-a), Negative: true, Max: e.aMax}
	}
	if b < 0 {
		return 0, &RangeError{Field: "RHS", Bits: e.bSize, Value: uint64(-b), Negative: true, Max: e.bMax}
	}
	return e.Encode(uint64(a), uint64(b))
}

// Decode separates c into its two component integers. Bits above the combined width
// are ignored, so every input decodes to some pair.
func (e *Encoder) Decode(c uint64) (uint64, uint64) {
	c &= maxValue(e.size)
	a := c >> e.bSize
	b := c ^ (a << e.bSize)
	return a, b
}

// Maximums returns the largest value each field can hold.
func (e *Encoder) Maximums() (uint64, uint64) {
	return e.aMax, e.bMax
}

// Size returns the combined width in bytes (4 or 8).
func (e *Encoder) Size() int {
	return e.size / 8
}

// BitLength returns the combined width in bits (32 or 64).
func (e *Encoder) BitLength() int {
	return e.size
}
