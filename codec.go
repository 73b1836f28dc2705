package lzhuff

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/andybalholm/lzhuff/huffman"
	"github.com/pierrec/xxHash/xxHash32"
)

// A Codec compresses and decompresses whole buffers: LZ77 tokens first,
// then Huffman coding of the token stream. Each call allocates its own
// state, so a Codec may be used from several goroutines as long as its
// MatchFinder allows it. WindowSearch and HashChain do.
type Codec struct {
	// Config is the token format. The zero value means DefaultConfig().
	Config Config

	// MatchFinder chooses the matches to encode. The default is a
	// WindowSearch using Config.
	MatchFinder MatchFinder
}

func (c *Codec) config() Config {
	if c.Config == (Config{}) {
		return DefaultConfig()
	}
	return c.Config
}

func (c *Codec) matchFinder(cfg Config) MatchFinder {
	if c.MatchFinder == nil {
		return &WindowSearch{Config: cfg}
	}
	return c.MatchFinder
}

// Compress returns the compressed form of src.
func (c *Codec) Compress(src []byte) ([]byte, error) {
	cfg := c.config()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	matches := c.matchFinder(cfg).FindMatches(nil, src)
	tokens, err := TokenEncoder{Config: cfg}.Encode(nil, src, matches)
	if err != nil {
		return nil, err
	}
	return huffman.Encode(tokens)
}

// Decompress reverses Compress. Corrupt input returns an error matching
// ErrCorrupt with errors.Is.
func (c *Codec) Decompress(blob []byte) ([]byte, error) {
	cfg := c.config()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tokens, err := huffman.Decode(blob)
	if err != nil {
		if errors.Is(err, huffman.ErrCorrupt) {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		return nil, err
	}
	return DecodeTokens(nil, tokens, cfg)
}

// A Report describes a successful Verify.
type Report struct {
	OriginalSize   int
	CompressedSize int

	// Checksum is the xxHash32 of the original data.
	Checksum uint32
}

// Ratio returns the compressed size as a fraction of the original size,
// or 0 for empty input.
func (r Report) Ratio() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return float64(r.CompressedSize) / float64(r.OriginalSize)
}

// Verify compresses src, decompresses the result, and checks that it matches
// src byte for byte. A difference is reported as a *MismatchError.
func (c *Codec) Verify(src []byte) (Report, error) {
	compressed, err := c.Compress(src)
	if err != nil {
		return Report{}, err
	}
	decompressed, err := c.Decompress(compressed)
	if err != nil {
		return Report{}, err
	}
	if !bytes.Equal(decompressed, src) {
		return Report{}, &MismatchError{
			Index:       firstDifference(src, decompressed),
			OriginalLen: len(src),
			DecodedLen:  len(decompressed),
		}
	}
	return Report{
		OriginalSize:   len(src),
		CompressedSize: len(compressed),
		Checksum:       xxHash32.Checksum(src, 0),
	}, nil
}

func firstDifference(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// Compress compresses src with the default Config.
func Compress(src []byte) ([]byte, error) {
	return new(Codec).Compress(src)
}

// Decompress decompresses data produced by Compress.
func Decompress(blob []byte) ([]byte, error) {
	return new(Codec).Decompress(blob)
}
