package ffxcodec

import (
	"fmt"
	"strconv"

	"github.com/vdparikh/ffxcodec/subtle"
)

// bitsToString renders c as exactly width binary digits, keeping leading zeros.
func bitsToString(c uint64, width int) string {
	return subtle.ZeroPad(strconv.FormatUint(c, 2), width)
}

// stringToBits parses a binary numeral produced by a Cipher and checks it fits width bits.
func stringToBits(s string, width int) (uint64, error) {
	if len(s) > width {
		return 0, fmt.Errorf("%w: %d digits for a %d-bit value", ErrCipherOutput, len(s), width)
	}
	v, err := strconv.ParseUint(s, 2, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCipherOutput, err)
	}
	return v, nil
}
