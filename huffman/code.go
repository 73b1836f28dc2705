package huffman

import "errors"

// A Code is the bit path from the root to a leaf: 0 for left, 1 for right.
// The first step is the most significant of the Len low bits of Bits.
type Code struct {
	Bits uint64
	Len  uint8
}

var errCodeTooLong = errors.New("huffman: code longer than 64 bits")

// Codes derives the code table for t. Values that are not in the tree get a
// zero-length Code.
//
// A tree with a single leaf would give it an empty path; that leaf gets the
// one-bit code 0 instead, so every symbol costs at least one bit.
func (t *Tree) Codes() ([256]Code, error) {
	var codes [256]Code
	if t.Root < 0 {
		return codes, nil
	}
	if t.Nodes[t.Root].IsLeaf() {
		codes[t.Nodes[t.Root].Value] = Code{Bits: 0, Len: 1}
		return codes, nil
	}

	type frame struct {
		node int
		code Code
	}
	stack := []frame{{node: t.Root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.Nodes[f.node]
		if n.IsLeaf() {
			codes[n.Value] = f.code
			continue
		}
		if f.code.Len == 64 {
			return codes, errCodeTooLong
		}
		stack = append(stack,
			frame{n.Right, Code{Bits: f.code.Bits<<1 | 1, Len: f.code.Len + 1}},
			frame{n.Left, Code{Bits: f.code.Bits << 1, Len: f.code.Len + 1}},
		)
	}
	return codes, nil
}
