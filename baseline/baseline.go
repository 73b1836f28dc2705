// Package baseline measures established compressors on the same input as
// lzhuff, to put its compression ratio in context.
package baseline

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/huff0"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// A Compressor is a named whole-buffer compression function.
type Compressor struct {
	Name     string
	Compress func(src []byte) ([]byte, error)
}

// A Result is the outcome of running one Compressor.
type Result struct {
	Name           string
	OriginalSize   int
	CompressedSize int
}

// Ratio returns the original size divided by the compressed size, the
// way the benchmarks report it.
func (r Result) Ratio() float64 {
	if r.CompressedSize == 0 {
		return 0
	}
	return float64(r.OriginalSize) / float64(r.CompressedSize)
}

// Standard returns the reference compressors: snappy, LZ4 (block format),
// zstd, brotli, and huff0, which is a Huffman coder with no LZ77 stage.
func Standard() []Compressor {
	return []Compressor{
		{Name: "snappy", Compress: compressSnappy},
		{Name: "lz4", Compress: compressLZ4},
		{Name: "zstd", Compress: compressZstd},
		{Name: "brotli", Compress: compressBrotli},
		{Name: "huff0", Compress: compressHuff0},
	}
}

// Run compresses src with each of compressors, in order.
func Run(src []byte, compressors []Compressor) ([]Result, error) {
	results := make([]Result, 0, len(compressors))
	for _, c := range compressors {
		out, err := c.Compress(src)
		if err != nil {
			return results, fmt.Errorf("baseline: %s: %w", c.Name, err)
		}
		results = append(results, Result{
			Name:           c.Name,
			OriginalSize:   len(src),
			CompressedSize: len(out),
		})
	}
	return results, nil
}

func compressSnappy(src []byte) ([]byte, error) {
	return snappy.Encode(nil, src), nil
}

func compressLZ4(src []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(src)))
	n, err := lz4.CompressBlock(src, dst, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Incompressible; LZ4 would store it as literals.
		return src, nil
	}
	return dst[:n], nil
}

func compressZstd(src []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(src, nil), nil
}

func compressBrotli(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.BestCompression)
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// huff0Block is the size of the blocks fed to huff0, which rejects
// larger inputs.
const huff0Block = 1 << 16

// Kinds of huff0 blocks. Each block starts with a 3-byte little-endian
// header holding the regenerated size << 2 | kind, so that the baseline pays
// for the same bookkeeping a decoder would need.
const (
	blockRaw = iota
	blockRLE
	blockHuff0
)

func appendBlockHeader(dst []byte, size, kind int) []byte {
	h := size<<2 | kind
	return append(dst, byte(h), byte(h>>8), byte(h>>16))
}

func compressHuff0(src []byte) ([]byte, error) {
	var out []byte
	s := huff0.Scratch{Reuse: huff0.ReusePolicyNone}
	for len(src) > 0 {
		block := src
		if len(block) > huff0Block {
			block = block[:huff0Block]
		}
		src = src[len(block):]

		comp, _, err := huff0.Compress1X(block, &s)
		switch {
		case errors.Is(err, huff0.ErrIncompressible):
			out = appendBlockHeader(out, len(block), blockRaw)
			out = append(out, block...)
		case errors.Is(err, huff0.ErrUseRLE):
			out = appendBlockHeader(out, len(block), blockRLE)
			out = append(out, block[0])
		case err != nil:
			return nil, err
		default:
			out = appendBlockHeader(out, len(block), blockHuff0)
			out = append(out, comp...)
		}
	}
	return out, nil
}
