package ffxcodec

// Byte interlacing moves bytes across the midpoint of the combined value so that the two
// Feistel halves do not line up with the two packed fields. Bytes are numbered from the most
// significant end. For 64 bits, bytes 1<->6 and 3<->4 are exchanged; for 32 bits, bytes 1<->2.
var interlaceTable = map[int][]deltaSwap{
	64: {
		{mask: 0x000000000000ff00, shift: 40},
		{mask: 0x00000000ff000000, shift: 8},
	},
	32: {
		{mask: 0x0000ff00, shift: 8},
	},
}

type deltaSwap struct {
	mask  uint64
	shift uint
}

// apply exchanges the bits selected by mask with the bits shift positions above them.
func (d deltaSwap) apply(x uint64) uint64 {
	t := ((x >> d.shift) ^ x) & d.mask
	return x ^ t ^ (t << d.shift)
}

// Interlace permutes the bytes of a bitLength-wide value. It is its own inverse.
// Values of any other width are returned unchanged.
func Interlace(c uint64, bitLength int) uint64 {
	for _, d := range interlaceTable[bitLength] {
		c = d.apply(c)
	}
	return c
}
