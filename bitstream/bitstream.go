// Package bitstream packs and unpacks bits most-significant-bit first.
//
// A packed stream ends with a trailer byte that records how many bits of the
// byte before it are valid, so a reader knows exactly where the data stops
// without a length prefix.
package bitstream

import (
	"bytes"
	"errors"
	"io"

	"github.com/icza/bitio"
)

// ErrCorrupt is returned by NewReader when the trailer is inconsistent with
// the stream length.
var ErrCorrupt = errors.New("bitstream: corrupt trailer")

// A Writer accumulates bits and whole bytes into a packed stream.
type Writer struct {
	buf   bytes.Buffer
	bw    *bitio.Writer
	nbits uint64
	err   error
}

func NewWriter() *Writer {
	w := new(Writer)
	w.bw = bitio.NewWriter(&w.buf)
	return w
}

// WriteBits writes the low n bits of bits, most significant first.
func (w *Writer) WriteBits(bits uint64, n uint8) {
	if w.err != nil || n == 0 {
		return
	}
	w.err = w.bw.WriteBits(bits, n)
	w.nbits += uint64(n)
}

func (w *Writer) WriteBool(b bool) {
	if w.err != nil {
		return
	}
	w.err = w.bw.WriteBool(b)
	w.nbits++
}

// WriteByte writes 8 bits. The stream does not need to be byte-aligned.
func (w *Writer) WriteByte(b byte) error {
	w.WriteBits(uint64(b), 8)
	return w.err
}

// WriteUint32 writes v as 32 bits, big-endian.
func (w *Writer) WriteUint32(v uint32) {
	w.WriteBits(uint64(v), 32)
}

// Len returns the number of bits written so far.
func (w *Writer) Len() uint64 {
	return w.nbits
}

// Close pushes the last partial byte (zero-padded), appends the trailer
// byte, and returns the packed stream. The trailer is n%8 for a partial last
// byte, 8 when the bits ended on a byte boundary, and 0 for an empty stream,
// which is stored as a single zero byte.
func (w *Writer) Close() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	valid := byte(w.nbits % 8)
	switch {
	case valid != 0:
		if _, err := w.bw.Align(); err != nil {
			return nil, err
		}
	case w.nbits > 0:
		valid = 8
	default:
		if err := w.bw.WriteByte(0); err != nil {
			return nil, err
		}
	}
	if err := w.bw.WriteByte(valid); err != nil {
		return nil, err
	}
	if err := w.bw.Close(); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

// A Reader reads back a stream produced by Writer, stopping at the last
// valid bit.
type Reader struct {
	br    *bitio.Reader
	limit uint64
	pos   uint64
}

// NewReader validates the trailer of src and returns a Reader positioned at
// its first bit.
func NewReader(src []byte) (*Reader, error) {
	if len(src) < 2 {
		return nil, ErrCorrupt
	}
	valid := src[len(src)-1]
	if valid > 8 || valid == 0 && len(src) != 2 {
		return nil, ErrCorrupt
	}
	r := &Reader{
		br:    bitio.NewReader(bytes.NewReader(src[:len(src)-1])),
		limit: uint64(len(src)-1)*8 - uint64(8-valid),
	}
	return r, nil
}

// ReadBool reads one bit. It returns io.EOF at the end of the valid bits.
func (r *Reader) ReadBool() (bool, error) {
	if r.pos >= r.limit {
		return false, io.EOF
	}
	b, err := r.br.ReadBool()
	if err != nil {
		return false, err
	}
	r.pos++
	return b, nil
}

// ReadBits reads n bits (at most 64), most significant first.
func (r *Reader) ReadBits(n uint8) (uint64, error) {
	if r.pos >= r.limit && n > 0 {
		return 0, io.EOF
	}
	if r.pos+uint64(n) > r.limit {
		return 0, io.ErrUnexpectedEOF
	}
	v, err := r.br.ReadBits(n)
	if err != nil {
		return 0, err
	}
	r.pos += uint64(n)
	return v, nil
}

func (r *Reader) ReadByte() (byte, error) {
	v, err := r.ReadBits(8)
	return byte(v), err
}

func (r *Reader) ReadUint32() (uint32, error) {
	v, err := r.ReadBits(32)
	return uint32(v), err
}

// Remaining returns the number of valid bits not yet read.
func (r *Reader) Remaining() uint64 {
	return r.limit - r.pos
}
