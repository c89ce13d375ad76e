package huffman

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/icza/bitio"
)

// Entry pairs a Symbol with its Code.
type Entry struct {
	Symbol Symbol `json:"symbol"`
	Code   Code   `json:"code"`
}

// Codebook is an ordered list of (Symbol, Code) pairs.  It is what the
// preamble of an encoded stream carries, and what a DecodingTree is built
// from.  A Codebook read from a stream is untrusted until NewDecodingTree
// accepts it.
type Codebook []Entry

// MarshalBinary serializes this Codebook in preamble format:
//
//	u16  codeCount (big-endian)
//	repeated codeCount times:
//	  u8  symbol
//	  u8  bit length
//	  u8[ceil(bit length / 8)]  pattern, MSB-first, zero-padded
//
func (cb Codebook) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	if err := cb.writePreamble(bw); err != nil {
		return nil, err
	}
	if err := bw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary parses a preamble produced by MarshalBinary.  Trailing data
// is an error.
func (cb *Codebook) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	parsed, err := readCodebook(bitio.NewReader(r))
	if err != nil {
		return err
	}
	if r.Len() != 0 {
		return fmt.Errorf("unexpected %d bytes of trailing data after Huffman codebook", r.Len())
	}
	*cb = parsed
	return nil
}

// ReadCodebook reads exactly one preamble from r.  No bytes beyond the
// preamble are consumed if r implements io.ByteReader.
func ReadCodebook(r io.Reader) (Codebook, error) {
	return readCodebook(bitio.NewReader(r))
}

func (cb Codebook) writePreamble(bw *bitio.Writer) error {
	if len(cb) > math.MaxUint16 {
		return fmt.Errorf("%w: got %d, max %d", ErrTooManyCodes, len(cb), math.MaxUint16)
	}

	if err := bw.WriteBits(uint64(len(cb)), 16); err != nil {
		return err
	}
	for _, entry := range cb {
		if entry.Code.Size == 0 {
			return &StructuralError{Err: ErrZeroLengthCode, Symbol: entry.Symbol}
		}
		if err := bw.WriteByte(byte(entry.Symbol)); err != nil {
			return err
		}
		if err := bw.WriteByte(entry.Code.Size); err != nil {
			return err
		}
		if err := writeCode(bw, entry.Code); err != nil {
			return err
		}
		if _, err := bw.Align(); err != nil {
			return err
		}
	}
	return nil
}

func readCodebook(br *bitio.Reader) (Codebook, error) {
	var offset uint64

	fail := func(err error, need uint64) error {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return &TruncatedStreamError{Section: "preamble", Want: offset + need, Got: offset}
		}
		return err
	}

	count, err := br.ReadBits(16)
	if err != nil {
		return nil, fail(err, 2)
	}
	offset += 2

	// More than NumSymbols entries must contain a duplicate, which
	// NewDecodingTree reports; don't let the count drive the allocation.
	capacity := count
	if capacity > NumSymbols {
		capacity = NumSymbols
	}

	cb := make(Codebook, 0, capacity)
	var pattern [byteCountMax]byte
	for i := uint64(0); i < count; i++ {
		var header [2]byte
		if _, err := io.ReadFull(br, header[:]); err != nil {
			return nil, fail(err, 2)
		}
		offset += 2

		symbol, size := Symbol(header[0]), header[1]
		if size == 0 {
			return nil, &StructuralError{Err: ErrZeroLengthCode, Symbol: symbol}
		}

		n := byteCount(int(size))
		if _, err := io.ReadFull(br, pattern[:n]); err != nil {
			return nil, fail(err, uint64(n))
		}
		offset += uint64(n)

		var hc Code
		for j := 0; j < int(size); j++ {
			hc = hc.appendBit(BitSet(pattern[j>>3], uint(j&7)))
		}
		cb = append(cb, Entry{Symbol: symbol, Code: hc})
	}
	return cb, nil
}
