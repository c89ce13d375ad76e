package huffman

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// DecodingTree is a validated binary tree built from a Codebook.  It is
// immutable once built, so one DecodingTree may be shared by any number of
// concurrent decodes, each with its own Cursor.
type DecodingTree struct {
	// nodes[0] is the root.  Children are indices into nodes; noChild only
	// ever appears as the right child of the root of a single-code tree.
	nodes []treeNode
	count int
}

type treeNode struct {
	child  [2]int32
	symbol Symbol
	leaf   bool
}

const noChild = -1

// NewDecodingTree validates cb and builds the tree it describes.
//
// Every failure is a *StructuralError wrapping one of ErrEmptyCodebook,
// ErrDuplicateValue, ErrMalformedSingleCode, ErrOccupiedLeaf, or
// ErrIncompleteTree.  A codebook with exactly one entry must map that entry
// to the code "0".  Any other codebook must describe a full binary tree, so
// that every bit sequence decodes to something.
//
func NewDecodingTree(cb Codebook) (*DecodingTree, error) {
	if len(cb) == 0 {
		return nil, &StructuralError{Err: ErrEmptyCodebook}
	}

	var seen [NumSymbols]bool
	for _, entry := range cb {
		if seen[entry.Symbol] {
			return nil, &StructuralError{Err: ErrDuplicateValue, Symbol: entry.Symbol, Code: entry.Code}
		}
		seen[entry.Symbol] = true
	}

	var b treeBuilder
	if len(cb) == 1 {
		entry := cb[0]
		if entry.Code.Size != 1 || entry.Code.Bit(0) {
			return nil, &StructuralError{Err: ErrMalformedSingleCode, Symbol: entry.Symbol, Code: entry.Code}
		}
		b.root.child[0] = &pendingNode{leaf: true, symbol: entry.Symbol}
		return b.freeze(1), nil
	}

	for _, entry := range cb {
		if err := b.insert(entry); err != nil {
			return nil, err
		}
	}
	if err := b.root.checkFull(Code{}); err != nil {
		return nil, err
	}
	return b.freeze(len(cb)), nil
}

// Len returns the number of codes in the tree.
func (t *DecodingTree) Len() int {
	return t.count
}

// Cursor returns a new Cursor positioned at the root of this tree.
func (t *DecodingTree) Cursor() Cursor {
	return Cursor{tree: t}
}

// Decode reads bits from r and appends exactly n decoded bytes to dst.  Bits
// after the n'th symbol are not read.  If r runs dry first, the result is a
// *TruncatedStreamError.  On failure, the contents of dst are unspecified.
func (t *DecodingTree) Decode(dst []byte, r BitReader, n int) ([]byte, error) {
	cursor := t.Cursor()
	emitted := 0
	for emitted < n {
		bit, err := r.ReadBool()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, &TruncatedStreamError{Section: "body", Want: uint64(n), Got: uint64(emitted)}
			}
			return nil, err
		}

		symbol, ok, err := cursor.Step(bit)
		if err != nil {
			return nil, err
		}
		if ok {
			dst = append(dst, byte(symbol))
			emitted++
		}
	}
	return dst, nil
}

// Dump writes a programmer-readable debugging dump of the DecodingTree to the
// given writer, listing each code in tree order.
func (t *DecodingTree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("DecodingTree{\n")
	fmt.Fprintf(&buf, "\tLen() = %d\n", t.count)
	t.dumpNode(&buf, 0, Code{})
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func (t *DecodingTree) dumpNode(buf *bytes.Buffer, index int32, path Code) {
	node := t.nodes[index]
	if node.leaf {
		fmt.Fprintf(buf, "\tDecode(%s) = %d\n", path, node.symbol)
		return
	}
	for bit, child := range node.child {
		if child != noChild {
			t.dumpNode(buf, child, path.appendBit(bit == 1))
		}
	}
}

// Cursor tracks the current position within a DecodingTree while decoding
// one stream bit by bit.  The zero Cursor is not usable; obtain one from
// DecodingTree.Cursor.
type Cursor struct {
	tree *DecodingTree
	pos  int32
}

// AtRoot returns true iff the Cursor is between symbols.
func (c *Cursor) AtRoot() bool {
	return c.pos == 0
}

// Reset moves the Cursor back to the root.
func (c *Cursor) Reset() {
	c.pos = 0
}

// Step follows one bit down the tree: false is left, true is right.  If that
// reaches a leaf, Step returns its Symbol with ok == true and moves back to
// the root.  A bit with nowhere to go yields ErrCorruptStream.
func (c *Cursor) Step(bit bool) (symbol Symbol, ok bool, err error) {
	next := c.tree.nodes[c.pos].child[bitIndex(bit)]
	if next == noChild {
		c.pos = 0
		return 0, false, fmt.Errorf("%w: no code begins with bit %d here", ErrCorruptStream, bitIndex(bit))
	}

	child := &c.tree.nodes[next]
	if child.leaf {
		c.pos = 0
		return child.symbol, true, nil
	}
	c.pos = next
	return 0, false, nil
}

func bitIndex(bit bool) int {
	if bit {
		return 1
	}
	return 0
}

// type treeBuilder + type pendingNode {{{

// treeBuilder holds the partially built, mutable form of a DecodingTree.  It
// never escapes NewDecodingTree.
type treeBuilder struct {
	root  pendingNode
	nodes int
}

type pendingNode struct {
	child  [2]*pendingNode
	symbol Symbol
	leaf   bool
}

func (b *treeBuilder) insert(entry Entry) error {
	hc := entry.Code
	if hc.Size == 0 {
		return &StructuralError{Err: ErrZeroLengthCode, Symbol: entry.Symbol}
	}

	node := &b.root
	last := int(hc.Size) - 1
	for i := 0; i < last; i++ {
		slot := &node.child[bitIndex(hc.Bit(i))]
		switch {
		case *slot == nil:
			*slot = &pendingNode{}
			b.nodes++
		case (*slot).leaf:
			return &StructuralError{Err: ErrOccupiedLeaf, Symbol: entry.Symbol, Code: hc}
		}
		node = *slot
	}

	slot := &node.child[bitIndex(hc.Bit(last))]
	if *slot != nil {
		return &StructuralError{Err: ErrOccupiedLeaf, Symbol: entry.Symbol, Code: hc}
	}
	*slot = &pendingNode{leaf: true, symbol: entry.Symbol}
	b.nodes++
	return nil
}

// checkFull returns an error for the first missing child found, left before
// right, depth first.
func (n *pendingNode) checkFull(path Code) error {
	for bit, child := range n.child {
		childPath := path.appendBit(bit == 1)
		if child == nil {
			return &StructuralError{Err: fmt.Errorf("%w: missing %s child", ErrIncompleteTree, sideName[bit]), Code: childPath}
		}
		if child.leaf {
			continue
		}
		if err := child.checkFull(childPath); err != nil {
			return err
		}
	}
	return nil
}

var sideName = [2]string{"left", "right"}

func (b *treeBuilder) freeze(count int) *DecodingTree {
	t := &DecodingTree{
		nodes: make([]treeNode, 0, b.nodes+1),
		count: count,
	}
	t.add(&b.root)
	return t
}

func (t *DecodingTree) add(n *pendingNode) int32 {
	index := int32(len(t.nodes))
	t.nodes = append(t.nodes, treeNode{
		child:  [2]int32{noChild, noChild},
		symbol: n.symbol,
		leaf:   n.leaf,
	})
	for bit, child := range n.child {
		if child != nil {
			childIndex := t.add(child)
			t.nodes[index].child[bit] = childIndex
		}
	}
	return index
}

// }}}
