package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTree is returned by BuildTree when it is given no nodes.
	ErrEmptyTree = errors.New("cannot build a Huffman tree from zero symbols")

	// ErrCodeTooLong is returned when a code would need more than
	// MaxCodeSize bits.
	ErrCodeTooLong = fmt.Errorf("Huffman code longer than %d bits", MaxCodeSize)

	// ErrInputTooLarge is returned when the input length does not fit in
	// the 32-bit length field of the body.
	ErrInputTooLarge = errors.New("input too large for a 32-bit length header")

	// ErrTooManyCodes is returned when a codebook has more entries than
	// the 16-bit count field of the preamble can describe.
	ErrTooManyCodes = errors.New("too many codes for a 16-bit code count")

	ErrDuplicateValue      = errors.New("codebook contains multiple codes for the same decompressed value")
	ErrOccupiedLeaf        = errors.New("expecting an empty slot for a leaf")
	ErrIncompleteTree      = errors.New("codebook does not describe a full binary tree")
	ErrMalformedSingleCode = errors.New("only one code was found so expecting a single '0' bit")
	ErrEmptyCodebook       = errors.New("codebook has no codes")
	ErrZeroLengthCode      = errors.New("code has a bit length of zero")

	// ErrTruncatedStream is matched by every *TruncatedStreamError.
	ErrTruncatedStream = errors.New("truncated stream")

	// ErrCorruptStream is returned when the body contains a bit sequence
	// that no code in the codebook can produce.
	ErrCorruptStream = errors.New("corrupt stream")

	// ErrUnknownSymbol is matched by every *UnknownSymbolError.
	ErrUnknownSymbol = errors.New("unknown symbol")
)

// StructuralError reports a codebook that cannot be turned into a valid
// DecodingTree.  Err is one of the sentinel errors above.
type StructuralError struct {
	Err    error
	Symbol Symbol
	Code   Code
}

// Error fulfills the error interface.
func (err *StructuralError) Error() string {
	switch {
	case errors.Is(err.Err, ErrEmptyCodebook):
		return fmt.Sprintf("invalid Huffman codebook: %v", err.Err)
	case errors.Is(err.Err, ErrIncompleteTree):
		// Symbol is meaningless here; Code is the path of the empty slot.
		return fmt.Sprintf("invalid Huffman codebook: %v: at %s", err.Err, err.Code)
	case err.Code.Size == 0:
		return fmt.Sprintf("invalid Huffman codebook: %v: symbol %d", err.Err, err.Symbol)
	default:
		return fmt.Sprintf("invalid Huffman codebook: %v: symbol %d, code %s", err.Err, err.Symbol, err.Code)
	}
}

// Unwrap returns the underlying sentinel error.
func (err *StructuralError) Unwrap() error {
	return err.Err
}

// TruncatedStreamError reports that the input ended before the declared
// amount of data could be read.
type TruncatedStreamError struct {
	// Section is "preamble" or "body".
	Section string

	// Want and Got count symbols for the body, and bytes for the preamble.
	Want uint64
	Got  uint64
}

// Error fulfills the error interface.
func (err *TruncatedStreamError) Error() string {
	return fmt.Sprintf("truncated Huffman %s: expected %d, got %d", err.Section, err.Want, err.Got)
}

// Is returns true for ErrTruncatedStream.
func (err *TruncatedStreamError) Is(target error) bool {
	return target == ErrTruncatedStream
}

// UnknownSymbolError reports an attempt to encode a Symbol that has no code
// in the CodeTable.
type UnknownSymbolError struct {
	Symbol Symbol
}

// Error fulfills the error interface.
func (err *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol %d: no Huffman code was assigned", err.Symbol)
}

// Is returns true for ErrUnknownSymbol.
func (err *UnknownSymbolError) Is(target error) bool {
	return target == ErrUnknownSymbol
}

var (
	_ error = (*StructuralError)(nil)
	_ error = (*TruncatedStreamError)(nil)
	_ error = (*UnknownSymbolError)(nil)
)
