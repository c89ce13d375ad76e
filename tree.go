package huffman

import (
	"container/heap"
	"math"

	"github.com/chronos-tachyon/assert"
)

// Node is a node in a weighted Huffman tree.
//
// A leaf has Left == nil and Right == nil, and Weight is the number of
// occurrences of Symbol.  An internal node has both children set, Weight is
// the sum of their weights, and Symbol is meaningless.
type Node struct {
	Symbol Symbol
	Weight uint64
	Left   *Node
	Right  *Node
}

// IsLeaf returns true iff this node has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// BuildTree merges the given nodes into a single Huffman tree and returns its
// root.  Ownership of the nodes passes to the tree.
//
// The two lowest-weight nodes are repeatedly replaced by a new internal node
// with the lowest as its right child and the next lowest as its left child.
// Equal weights are broken deterministically: leaves come before internal
// nodes, leaves in ascending Symbol order, internal nodes in the order they
// were created.  The output is therefore reproducible for a given histogram.
//
func BuildTree(nodes []*Node) (*Node, error) {
	if len(nodes) == 0 {
		return nil, ErrEmptyTree
	}

	// Ranks: leaves use their symbol, caller-supplied internal nodes come
	// next, and merged nodes after that.
	h := nodeHeap{make([]rankedNode, 0, len(nodes))}
	nextRank := uint32(NumSymbols)
	for _, node := range nodes {
		assert.Assertf(node != nil, "nil node in BuildTree input")
		assert.Assertf((node.Left == nil) == (node.Right == nil), "internal node must have exactly two children")
		rank := uint32(node.Symbol)
		if !node.IsLeaf() {
			rank = nextRank
			nextRank++
		}
		h.list = append(h.list, rankedNode{node, rank})
	}
	h.Init()

	for h.Len() > 1 {
		right := heap.Pop(&h).(rankedNode)
		left := heap.Pop(&h).(rankedNode)

		// Compute weight using saturating addition
		weight := left.node.Weight + right.node.Weight
		if weight < left.node.Weight {
			weight = math.MaxUint64
		}

		merged := &Node{Weight: weight, Left: left.node, Right: right.node}
		heap.Push(&h, rankedNode{merged, nextRank})
		nextRank++
	}

	root := heap.Pop(&h).(rankedNode)
	return root.node, nil
}

// type rankedNode + type nodeHeap {{{

type rankedNode struct {
	node *Node
	rank uint32
}

type nodeHeap struct {
	list []rankedNode
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.node.Weight != b.node.Weight {
		return a.node.Weight < b.node.Weight
	}
	return a.rank < b.rank
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(rankedNode))
}

func (h *nodeHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list[last] = rankedNode{}
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
