// Package huffman implements static Huffman compression of byte sequences.
//
// Encode counts the bytes of its input, builds an optimal prefix code for
// that distribution, and writes the code table followed by the packed
// payload.  Decode validates the code table, rebuilds the tree it describes,
// and walks the payload through it one bit at a time.
//
// Wire format (all multi-byte integers big-endian):
//
//     u16  codeCount
//     repeated codeCount times:
//         u8   symbol
//         u8   bitLength (1 .. 255)
//         u8[ceil(bitLength/8)]  pattern, MSB-first, zero-padded
//     u32  original length in bytes
//     u8[] payload bits, MSB-first, zero-padded
//
// Empty input encodes to empty output, and vice versa.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
