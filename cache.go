package huffman

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// TreeCache remembers recently built DecodingTrees, keyed by the exact bytes
// of the preamble they were built from.  It is safe for concurrent use.
type TreeCache struct {
	lru *lru.Cache[uint64, cachedTree]
}

type cachedTree struct {
	preamble []byte
	tree     *DecodingTree
}

// NewTreeCache returns a TreeCache holding at most size trees.
func NewTreeCache(size int) (*TreeCache, error) {
	c, err := lru.New[uint64, cachedTree](size)
	if err != nil {
		return nil, err
	}
	return &TreeCache{lru: c}, nil
}

// Get returns the tree previously added for this preamble, if any.
func (c *TreeCache) Get(preamble []byte) (*DecodingTree, bool) {
	entry, found := c.lru.Get(xxhash.Sum64(preamble))
	if !found || !bytes.Equal(entry.preamble, preamble) {
		return nil, false
	}
	return entry.tree, true
}

// Add records the tree built from this preamble.  The preamble is copied.
func (c *TreeCache) Add(preamble []byte, tree *DecodingTree) {
	c.lru.Add(xxhash.Sum64(preamble), cachedTree{
		preamble: bytes.Clone(preamble),
		tree:     tree,
	})
}

// Len returns the number of cached trees.
func (c *TreeCache) Len() int {
	return c.lru.Len()
}
