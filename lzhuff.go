// Package lzhuff is a two-stage lossless compressor for byte buffers.
//
// The first stage is LZ77: a MatchFinder looks for repeated sequences of
// bytes, and a TokenEncoder writes the result as runs of literal bytes
// separated by fixed-width indicators that describe one back-reference each.
// The second stage Huffman-codes the token stream (see package huffman).
//
// The two stages meet at the Match, an intermediate representation that
// lets a different match finder (or a debugging encoder such as TextEncoder)
// be plugged in without touching the rest of the pipeline.
//
// The compressed format is private to this package. It does not record the
// bit widths it was written with, so data must be decompressed with the
// same Config it was compressed with.
package lzhuff

// A Match is the basic unit of LZ77 compression.
type Match struct {
	Unmatched int // the number of unmatched bytes since the previous match
	Length    int // the number of bytes in the matched string; it may be 0
	Distance  int // how far back in the stream to copy from
}

// A MatchFinder performs the LZ77 stage of compression, looking for matches.
// The matches it returns cover all of src; the last one may have a Length of
// 0 to account for trailing literal bytes.
type MatchFinder interface {
	// FindMatches looks for matches in src, appends them to dst, and returns dst.
	FindMatches(dst []Match, src []byte) []Match
}
