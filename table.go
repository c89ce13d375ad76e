package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// CodeTable maps each Symbol to its Huffman Code.  The zero CodeTable is the
// table for empty input: it has no codes, and nothing can be encoded with it.
type CodeTable struct {
	codes   []Code
	count   int
	minSize byte
	maxSize byte
}

// NewCodeTable derives a CodeTable from the root of a Huffman tree.  Walking
// down to a left child appends a 0 bit, walking down to a right child appends
// a 1 bit.  If the root is itself a leaf, its symbol is assigned the code "0".
//
func NewCodeTable(root *Node) (CodeTable, error) {
	assert.Assertf(root != nil, "NewCodeTable called with a nil root")

	t := CodeTable{codes: make([]Code, NumSymbols)}
	if root.IsLeaf() {
		t.set(root.Symbol, MakeCode(false))
		return t, nil
	}
	if err := t.derive(root, Code{}); err != nil {
		return CodeTable{}, err
	}
	return t, nil
}

// NewCodeTableFromData counts the bytes of data, builds a Huffman tree from
// the counts, and derives its CodeTable.  Empty data yields the zero
// CodeTable.
func NewCodeTableFromData(data []byte) (CodeTable, error) {
	if len(data) == 0 {
		return CodeTable{}, nil
	}

	var h Histogram
	h.Add(data)
	root, err := BuildTree(h.Leaves())
	if err != nil {
		return CodeTable{}, err
	}
	return NewCodeTable(root)
}

func (t *CodeTable) derive(node *Node, path Code) error {
	if node.IsLeaf() {
		if t.codes[node.Symbol].Size != 0 {
			return &StructuralError{Err: ErrDuplicateValue, Symbol: node.Symbol, Code: path}
		}
		t.set(node.Symbol, path)
		return nil
	}

	assert.Assertf(node.Left != nil && node.Right != nil, "internal node must have exactly two children")

	left, err := path.Append(false)
	if err != nil {
		return fmt.Errorf("failed to extend code %s: %w", path, err)
	}
	if err := t.derive(node.Left, left); err != nil {
		return err
	}

	right, err := path.Append(true)
	if err != nil {
		return fmt.Errorf("failed to extend code %s: %w", path, err)
	}
	return t.derive(node.Right, right)
}

func (t *CodeTable) set(symbol Symbol, hc Code) {
	t.codes[symbol] = hc
	if t.count == 0 {
		t.minSize = hc.Size
		t.maxSize = hc.Size
	} else if t.minSize > hc.Size {
		t.minSize = hc.Size
	} else if t.maxSize < hc.Size {
		t.maxSize = hc.Size
	}
	t.count++
}

// Encode returns the Code for a Symbol.
//
// Calling Encode on a table with no codes is a programming error and panics.
// A Symbol that was never seen yields an *UnknownSymbolError.
//
func (t CodeTable) Encode(symbol Symbol) (Code, error) {
	assert.Assertf(t.count != 0, "the table had no input values, so nothing can be encoded")
	hc := t.codes[symbol]
	if hc.Size == 0 {
		return Code{}, &UnknownSymbolError{Symbol: symbol}
	}
	return hc, nil
}

// Len returns the number of Symbols that have a Code.
func (t CodeTable) Len() int {
	return t.count
}

// MinSize is the bit length of the shortest legal code.
func (t CodeTable) MinSize() byte {
	return t.minSize
}

// MaxSize is the bit length of the longest legal code.
func (t CodeTable) MaxSize() byte {
	return t.maxSize
}

// Symbols returns the Symbols that have a Code, in ascending order.
func (t CodeTable) Symbols() []Symbol {
	out := make([]Symbol, 0, t.count)
	for symbol, hc := range t.codes {
		if hc.Size != 0 {
			out = append(out, Symbol(symbol))
		}
	}
	return out
}

// SizeBySymbol returns an array containing the bit length for each Symbol in
// the alphabet, with 0 for Symbols that have no Code.
func (t CodeTable) SizeBySymbol() []byte {
	out := make([]byte, NumSymbols)
	for symbol, hc := range t.codes {
		out[symbol] = hc.Size
	}
	return out
}

// Codebook returns the (Symbol, Code) pairs of this table in ascending Symbol
// order.
func (t CodeTable) Codebook() Codebook {
	out := make(Codebook, 0, t.count)
	for symbol, hc := range t.codes {
		if hc.Size != 0 {
			out = append(out, Entry{Symbol: Symbol(symbol), Code: hc})
		}
	}
	return out
}

// Dump writes a programmer-readable debugging dump of the CodeTable to the
// given writer.
func (t CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", t.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", t.maxSize)
	for symbol, hc := range t.codes {
		if hc.Size != 0 {
			fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", symbol, hc)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// String returns a brief description of this CodeTable.
func (t CodeTable) String() string {
	return fmt.Sprintf("(Huffman code table with %d symbols, with coded lengths of %d .. %d bits)", t.count, t.minSize, t.maxSize)
}

var _ fmt.Stringer = CodeTable{}
