package huffman

import (
	"encoding"
	"fmt"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// MaxCodeSize is the maximum number of bits in a Code.  The preamble stores
// each code's bit length in a single byte.
const MaxCodeSize = 255

// Code represents a sequence of bits.  The zero Code holds no bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The most significant bit
	// of Bits[0] is the first bit; bits past Size are always zero.
	Bits [byteCountMax]byte
}

const byteCountMax = (MaxCodeSize + 7) / 8

// MakeCode is a convenience function that constructs a Code from a sequence
// of bits, where false is 0 (left) and true is 1 (right).
func MakeCode(bits ...bool) Code {
	assert.Assertf(len(bits) <= MaxCodeSize, "len(bits) %d > MaxCodeSize %d", len(bits), MaxCodeSize)

	var hc Code
	for _, bit := range bits {
		hc = hc.appendBit(bit)
	}
	return hc
}

// ParseCode parses a string of '0' and '1' characters into a Code.
func ParseCode(str string) (Code, error) {
	if len(str) == 0 {
		return Code{}, fmt.Errorf("invalid Huffman code %q: empty", str)
	}
	if len(str) > MaxCodeSize {
		return Code{}, fmt.Errorf("invalid Huffman code %q: %w", str, ErrCodeTooLong)
	}

	var hc Code
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case '0':
			hc = hc.appendBit(false)
		case '1':
			hc = hc.appendBit(true)
		default:
			return Code{}, fmt.Errorf("invalid Huffman code %q: unexpected character %q at index %d", str, str[i], i)
		}
	}
	return hc, nil
}

// Bit returns the i'th bit of this Code.
func (hc Code) Bit(i int) bool {
	assert.Assertf(i >= 0 && i < int(hc.Size), "bit index %d out of range [0, %d)", i, hc.Size)
	return BitSet(hc.Bits[i>>3], uint(i&7))
}

// Append returns a copy of this Code with one more bit at the end.
func (hc Code) Append(bit bool) (Code, error) {
	if hc.Size >= MaxCodeSize {
		return hc, ErrCodeTooLong
	}
	return hc.appendBit(bit), nil
}

func (hc Code) appendBit(bit bool) Code {
	if bit {
		hc.Bits[hc.Size>>3] |= 0x80 >> (hc.Size & 7)
	}
	hc.Size++
	return hc
}

// Bools returns the bits of this Code as a slice.
func (hc Code) Bools() []bool {
	out := make([]bool, hc.Size)
	for i := range out {
		out[i] = hc.Bit(i)
	}
	return out
}

// Packed returns the bits of this Code packed MSB-first into ceil(Size/8)
// bytes, with the final byte zero-padded.  This is the pattern as it appears
// in the preamble.
func (hc Code) Packed() []byte {
	n := byteCount(int(hc.Size))
	out := make([]byte, n)
	copy(out, hc.Bits[:n])
	return out
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	return strconv.Quote(hc.bitString())
}

// MarshalText renders this Code as a string of '0' and '1' characters.
func (hc Code) MarshalText() ([]byte, error) {
	if hc.Size == 0 {
		return nil, fmt.Errorf("cannot marshal an empty Huffman code")
	}
	return []byte(hc.bitString()), nil
}

// UnmarshalText parses a string of '0' and '1' characters, as ParseCode does.
func (hc *Code) UnmarshalText(text []byte) error {
	parsed, err := ParseCode(string(text))
	if err != nil {
		return err
	}
	*hc = parsed
	return nil
}

func (hc Code) bitString() string {
	var buf strings.Builder
	buf.Grow(int(hc.Size))
	for i := 0; i < int(hc.Size); i++ {
		if hc.Bit(i) {
			buf.WriteByte('1')
		} else {
			buf.WriteByte('0')
		}
	}
	return buf.String()
}

var (
	_ fmt.Stringer             = Code{}
	_ encoding.TextMarshaler   = Code{}
	_ encoding.TextUnmarshaler = (*Code)(nil)
)
