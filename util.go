package huffman

// byteCount returns the number of bytes needed to hold the given number of
// bits, i.e. ceil(bits / 8).
func byteCount(bits int) int {
	return (bits + 7) >> 3
}
