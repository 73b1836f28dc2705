// Package huffman implements the static Huffman stage: a frequency table
// stored in the stream header, a prefix-code tree rebuilt identically by the
// encoder and the decoder, and the bit-packed code stream.
package huffman

import (
	"container/heap"
	"errors"
	"math"
)

// An Entry is one row of a frequency table.
type Entry struct {
	Value byte
	Freq  uint32
}

// Count returns the frequency table of src: one Entry per byte value that
// occurs, in ascending order of Value.
func Count(src []byte) ([]Entry, error) {
	if uint64(len(src)) > math.MaxUint32 {
		return nil, errTooLarge
	}
	var hist [256]uint32
	for _, b := range src {
		hist[b]++
	}
	var table []Entry
	for v, f := range hist {
		if f != 0 {
			table = append(table, Entry{Value: byte(v), Freq: f})
		}
	}
	return table, nil
}

var errTooLarge = errors.New("huffman: input larger than 4 GiB")

// A Node is an element of a Tree's arena. Leaves have Left == Right == -1.
type Node struct {
	Freq  uint64
	Left  int
	Right int
	Value byte
}

func (n Node) IsLeaf() bool {
	return n.Left < 0
}

// A Tree is a Huffman tree stored as a flat arena of nodes; children are
// addressed by index.
type Tree struct {
	Nodes []Node
	Root  int // -1 for an empty tree
}

// Build constructs the Huffman tree for table.
//
// The leaves take arena indices 0..len(table)-1 in table order, and each
// internal node takes the next free index when it is created. Nodes are
// merged lowest frequency first; equal frequencies are broken by the lower
// arena index, and the first node taken becomes the left child. Given the
// same table, Build always produces the same tree.
func Build(table []Entry) *Tree {
	t := &Tree{
		Nodes: make([]Node, 0, 2*len(table)),
		Root:  -1,
	}
	if len(table) == 0 {
		return t
	}

	q := &nodeQueue{tree: t}
	for _, e := range table {
		t.Nodes = append(t.Nodes, Node{Freq: uint64(e.Freq), Left: -1, Right: -1, Value: e.Value})
		q.items = append(q.items, len(t.Nodes)-1)
	}
	heap.Init(q)

	for q.Len() > 1 {
		left := heap.Pop(q).(int)
		right := heap.Pop(q).(int)
		t.Nodes = append(t.Nodes, Node{
			Freq:  t.Nodes[left].Freq + t.Nodes[right].Freq,
			Left:  left,
			Right: right,
		})
		heap.Push(q, len(t.Nodes)-1)
	}
	t.Root = q.items[0]
	return t
}

// nodeQueue is a min-heap of arena indices.
type nodeQueue struct {
	tree  *Tree
	items []int
}

func (q *nodeQueue) Len() int { return len(q.items) }

func (q *nodeQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	fa, fb := q.tree.Nodes[a].Freq, q.tree.Nodes[b].Freq
	if fa != fb {
		return fa < fb
	}
	return a < b
}

func (q *nodeQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *nodeQueue) Push(x any) { q.items = append(q.items, x.(int)) }

func (q *nodeQueue) Pop() any {
	n := len(q.items)
	x := q.items[n-1]
	q.items = q.items[:n-1]
	return x
}
