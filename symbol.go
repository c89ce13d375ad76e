package huffman

import (
	"math"
)

// Symbol represents one byte of uncompressed data.
type Symbol byte

// NumSymbols is the size of the alphabet.
const NumSymbols = 256

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(math.MaxUint8)
