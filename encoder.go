package huffman

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// Encoder implements an encoder for static Huffman codes.
//
// The encoded form of a byte sequence is a preamble holding the Codebook,
// followed by a body holding the original length as a big-endian u32 and
// then the concatenated code of every input byte, packed MSB-first with the
// final byte zero-padded.  Empty input encodes to empty output.
//
type Encoder struct {
	table CodeTable
}

// Init initializes this Encoder with the CodeTable that is optimal for data.
func (e *Encoder) Init(data []byte) error {
	if err := checkInputLength(data); err != nil {
		return err
	}
	table, err := NewCodeTableFromData(data)
	if err != nil {
		return err
	}
	*e = Encoder{table: table}
	return nil
}

// Table returns the CodeTable chosen by Init.
func (e Encoder) Table() CodeTable {
	return e.table
}

// Encode encodes data into a new byte slice.  Every byte of data must have
// been seen by Init; otherwise an *UnknownSymbolError is returned.
func (e Encoder) Encode(data []byte) ([]byte, error) {
	if e.table.Len() == 0 && len(data) == 0 {
		return []byte{}, nil
	}
	var buf bytes.Buffer
	if err := e.encode(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo encodes data and writes the result to w.  Nothing is written to w
// unless encoding succeeds.
func (e Encoder) EncodeTo(w io.Writer, data []byte) (int64, error) {
	if e.table.Len() == 0 && len(data) == 0 {
		return 0, nil
	}
	var buf bytes.Buffer
	if err := e.encode(&buf, data); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

func (e Encoder) encode(buf *bytes.Buffer, data []byte) error {
	assert.Assertf(e.table.Len() != 0, "Encoder has no codes: call Init with non-empty data first")

	if err := checkInputLength(data); err != nil {
		return err
	}

	// Writes to a bytes.Buffer cannot fail, so the only errors that reach
	// us come from the codebook or the table.
	bw := bitio.NewWriter(buf)
	if err := e.table.Codebook().writePreamble(bw); err != nil {
		return err
	}
	if err := bw.WriteBits(uint64(len(data)), 32); err != nil {
		return err
	}
	if err := e.table.WriteSymbols(bw, data); err != nil {
		return err
	}
	return bw.Close()
}

// WriteSymbols writes the Code of each byte of data to w, in order.
func (t CodeTable) WriteSymbols(w BitWriter, data []byte) error {
	for _, b := range data {
		hc, err := t.Encode(Symbol(b))
		if err != nil {
			return err
		}
		if err := writeCode(w, hc); err != nil {
			return err
		}
	}
	return nil
}

// Encode compresses data with a CodeTable built from data itself.
func Encode(data []byte) ([]byte, error) {
	var e Encoder
	if err := e.Init(data); err != nil {
		return nil, err
	}
	return e.Encode(data)
}

func checkInputLength(data []byte) error {
	if uint64(len(data)) > math.MaxUint32 {
		return fmt.Errorf("%w: %d bytes", ErrInputTooLarge, uint64(len(data)))
	}
	return nil
}
