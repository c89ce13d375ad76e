package huffman

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/icza/bitio"
)

// Decoder implements a decoder for the output of Encoder.
//
// The zero Decoder is ready to use.  Decoders hold no per-stream state, so
// one Decoder may decode many streams concurrently.
//
type Decoder struct {
	// Cache, if non-nil, lets streams that share a preamble skip rebuilding
	// and revalidating their DecodingTree.
	Cache *TreeCache
}

// Decode decodes one complete encoded stream.  Empty input decodes to empty
// output.  On failure, no partial output is returned.
func (d Decoder) Decode(wire []byte) ([]byte, error) {
	if len(wire) == 0 {
		return []byte{}, nil
	}

	r := bytes.NewReader(wire)
	br := bitio.NewReader(r)

	cb, err := readCodebook(br)
	if err != nil {
		return nil, err
	}

	// Every pattern ends on a byte boundary, so the preamble is exactly the
	// bytes consumed so far.
	preamble := wire[:len(wire)-r.Len()]
	tree, err := d.tree(preamble, cb)
	if err != nil {
		return nil, err
	}

	available := r.Len()
	length, err := br.ReadBits(32)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &TruncatedStreamError{Section: "length header", Want: 4, Got: uint64(available)}
		}
		return nil, err
	}
	if length > math.MaxInt {
		return nil, fmt.Errorf("%w: declared length %d", ErrInputTooLarge, length)
	}

	// Every symbol takes at least one bit.
	capacity := length
	if limit := uint64(r.Len()) * 8; capacity > limit {
		capacity = limit
	}

	return tree.Decode(make([]byte, 0, capacity), br, int(length))
}

// DecodeFrom reads r to EOF and decodes the result, as Decode does.
func (d Decoder) DecodeFrom(r io.Reader) ([]byte, error) {
	wire, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return d.Decode(wire)
}

func (d Decoder) tree(preamble []byte, cb Codebook) (*DecodingTree, error) {
	if d.Cache != nil {
		if tree, found := d.Cache.Get(preamble); found {
			return tree, nil
		}
	}

	tree, err := NewDecodingTree(cb)
	if err != nil {
		return nil, err
	}

	if d.Cache != nil {
		d.Cache.Add(preamble, tree)
	}
	return tree, nil
}

// Decode decompresses the output of Encode.
func Decode(wire []byte) ([]byte, error) {
	var d Decoder
	return d.Decode(wire)
}
