package huffman

import (
	"bytes"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// BitWriter is a sink for individual bits.  *bitio.Writer implements it.
type BitWriter interface {
	WriteBool(bit bool) error
}

// BitReader is a source of individual bits.  *bitio.Reader implements it.
type BitReader interface {
	ReadBool() (bool, error)
}

var (
	_ BitWriter = (*bitio.Writer)(nil)
	_ BitReader = (*bitio.Reader)(nil)
)

// PackBits packs a sequence of bits into bytes, MSB-first.  If len(bits) is
// not a multiple of 8, the low-order bits of the final byte are zero.  The
// result is always ceil(len(bits)/8) bytes long.
func PackBits(bits []bool) []byte {
	var buf bytes.Buffer
	buf.Grow(byteCount(len(bits)))

	// Writes to a bytes.Buffer cannot fail.
	bw := bitio.NewWriter(&buf)
	for _, bit := range bits {
		_ = bw.WriteBool(bit)
	}
	_ = bw.Close()

	return buf.Bytes()
}

// BitSet returns true iff bit i of b is set, counting from the most
// significant bit (i == 0) to the least (i == 7).
func BitSet(b byte, i uint) bool {
	assert.Assertf(i < 8, "bit index %d > 7", i)
	return b&(0x80>>i) != 0
}

// writeCode writes every bit of hc to w, first bit first.
func writeCode(w BitWriter, hc Code) error {
	for i := 0; i < int(hc.Size); i++ {
		if err := w.WriteBool(hc.Bit(i)); err != nil {
			return err
		}
	}
	return nil
}
