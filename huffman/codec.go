package huffman

import (
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/lzhuff/bitstream"
)

// ErrCorrupt is returned by Decode for input that Encode could not have
// produced.
var ErrCorrupt = errors.New("huffman: corrupt input")

// Encode compresses src. The output is a header holding the frequency table
// (one byte with the number of entries minus one, then a value byte and a
// big-endian uint32 count per entry), the bit-packed codes, and the
// bitstream trailer. An empty src encodes to an empty slice.
func Encode(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}
	table, err := Count(src)
	if err != nil {
		return nil, err
	}
	codes, err := Build(table).Codes()
	if err != nil {
		return nil, err
	}

	w := bitstream.NewWriter()
	writeHeader(w, table)
	for _, b := range src {
		c := codes[b]
		w.WriteBits(c.Bits, c.Len)
	}
	return w.Close()
}

func writeHeader(w *bitstream.Writer, table []Entry) {
	w.WriteByte(byte(len(table) - 1))
	for _, e := range table {
		w.WriteByte(e.Value)
		w.WriteUint32(e.Freq)
	}
}

func readHeader(r *bitstream.Reader) ([]Entry, error) {
	n, err := r.ReadByte()
	if err != nil {
		return nil, corrupt(err)
	}
	var seen [256]bool
	table := make([]Entry, int(n)+1)
	for i := range table {
		v, err := r.ReadByte()
		if err != nil {
			return nil, corrupt(err)
		}
		f, err := r.ReadUint32()
		if err != nil {
			return nil, corrupt(err)
		}
		if f == 0 {
			return nil, fmt.Errorf("%w: zero count for byte %#x", ErrCorrupt, v)
		}
		if seen[v] {
			return nil, fmt.Errorf("%w: byte %#x listed twice", ErrCorrupt, v)
		}
		seen[v] = true
		table[i] = Entry{Value: v, Freq: f}
	}
	return table, nil
}

// Decode reverses Encode.
func Decode(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}
	r, err := bitstream.NewReader(src)
	if err != nil {
		return nil, corrupt(err)
	}
	table, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	tree := Build(table)

	var total uint64
	for _, e := range table {
		total += uint64(e.Freq)
	}
	// Every symbol takes at least one bit.
	if total > r.Remaining() {
		return nil, fmt.Errorf("%w: header counts %d symbols but only %d bits follow", ErrCorrupt, total, r.Remaining())
	}
	out := make([]byte, 0, total)

	root := tree.Root
	n := root
	for r.Remaining() > 0 {
		bit, err := r.ReadBool()
		if err != nil {
			return nil, corrupt(err)
		}
		if tree.Nodes[root].IsLeaf() {
			if bit {
				return nil, fmt.Errorf("%w: invalid code", ErrCorrupt)
			}
		} else if bit {
			n = tree.Nodes[n].Right
		} else {
			n = tree.Nodes[n].Left
		}
		if tree.Nodes[n].IsLeaf() {
			if uint64(len(out)) == total {
				return nil, fmt.Errorf("%w: more symbols than the header counts", ErrCorrupt)
			}
			out = append(out, tree.Nodes[n].Value)
			n = root
		}
	}
	if n != root || uint64(len(out)) != total {
		return nil, fmt.Errorf("%w: decoded %d of %d symbols", ErrCorrupt, len(out), total)
	}
	return out, nil
}

func corrupt(err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("%w: %w", ErrCorrupt, err)
}
