// Package filter implements CDF whole-file decompression.
//
// A compressed CDF stores everything after its magic numbers inside a
// single compressed CDF record (CCR). The compression parameters record
// (CPR) names the algorithm. Decoding the CCR payload yields the bytes of
// the equivalent uncompressed file starting right after the magic numbers.
//
// # Supported Algorithms
//
//   - GZIP (type 5): gzip streams, decoded with klauspost/compress. The
//     compression level parameter is ignored when reading.
//
//   - RLE (type 1): run-length encoding of zero bytes. A zero byte is
//     followed by a count byte c and expands to c+1 zeros; every other
//     byte is literal.
//
// # Unsupported Algorithms
//
// Huffman (type 2) and adaptive Huffman (type 3) are recognized but not
// implemented. Files using them cannot be read.
//
// # Key Types
//
//   - [Filter]: Interface implemented by all codecs (ID, Decode, Encode)
//   - [Gzip]: GZIP codec
//   - [RLE]: zero run-length codec
package filter
