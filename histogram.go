package huffman

// Histogram counts the occurrences of each Symbol.
type Histogram [NumSymbols]uint64

// Add counts every byte of data.
func (h *Histogram) Add(data []byte) {
	for _, b := range data {
		h[b]++
	}
}

// Weight returns the number of times the given Symbol was seen.
func (h *Histogram) Weight(symbol Symbol) uint64 {
	return h[symbol]
}

// Len returns the number of distinct Symbols seen.
func (h *Histogram) Len() int {
	var n int
	for _, w := range h {
		if w != 0 {
			n++
		}
	}
	return n
}

// Leaves returns one leaf Node per distinct Symbol seen, weighted by its
// count.  Callers should not depend on the order of the result.
func (h *Histogram) Leaves() []*Node {
	out := make([]*Node, 0, h.Len())
	for symbol, w := range h {
		if w != 0 {
			out = append(out, &Node{Symbol: Symbol(symbol), Weight: w})
		}
	}
	return out
}
