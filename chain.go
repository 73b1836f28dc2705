package lzhuff

import "encoding/binary"

// HashChain is an implementation of the MatchFinder interface that uses
// hash chaining to find matches, instead of comparing every position in the
// window. It only finds matches of at least 4 bytes, and it stops after
// SearchLen candidates, so it can miss the longest match; in exchange its
// speed hardly depends on WindowBits.
//
// The parse rules and the output format are the same as for WindowSearch.
type HashChain struct {
	Config Config

	// SearchLen is how many entries to examine on the hash chain.
	// The default is 32.
	SearchLen int

	// Progress is passed on to the GreedyParser used by FindMatches.
	Progress func(done, total int)
}

const (
	maxTableSize = 1 << 14
	shift        = 32 - 14
	// tableMask is redundant, but helps the compiler eliminate bounds
	// checks.
	tableMask = maxTableSize - 1
)

// FindMatches looks for matches in src, appends them to dst, and returns dst.
// The hash table and chains are built for each call, so one HashChain may
// be used by several goroutines at once.
func (q *HashChain) FindMatches(dst []Match, src []byte) []Match {
	s := &chainSearcher{
		Config:    q.Config,
		searchLen: q.SearchLen,
		src:       src,
		chain:     make([]int32, len(src)),
	}
	if s.searchLen == 0 {
		s.searchLen = 32
	}

	// Pre-calculate hashes and chains.
	table := make([]int32, maxTableSize)
	for i := 0; i+3 < len(src); i++ {
		h := hash4(binary.LittleEndian.Uint32(src[i:])) & tableMask
		s.chain[i] = table[h]
		table[h] = int32(i + 1)
	}

	p := newGreedyParser(q.Config, q.Progress)
	return p.Parse(dst, s, 0, len(src))
}

// A chainSearcher is the Searcher for one call to HashChain.FindMatches.
type chainSearcher struct {
	Config
	searchLen int
	src       []byte

	// chain[i] is one more than the previous position with the same hash
	// as position i; 0 ends the chain.
	chain []int32
}

func (s *chainSearcher) Search(dst []AbsoluteMatch, pos, min, max int) []AbsoluteMatch {
	src := s.src[:max]
	if pos == 0 || pos+4 > len(src) {
		return dst
	}
	end := pos + s.maxLength()
	if end > len(src) {
		end = len(src)
	}
	floor := pos - s.maxBackRef()

	limited := src[:end]
	searchSeq := binary.LittleEndian.Uint32(src[pos:])
	best, bestPos := 0, pos
	candidate := int(s.chain[pos]) - 1
	for i := 0; i < s.searchLen && candidate >= 0 && candidate >= floor; i++ {
		if binary.LittleEndian.Uint32(src[candidate:]) == searchSeq {
			n := extendMatch(limited, candidate, pos) - pos
			if n > best {
				best, bestPos = n, candidate
				if pos+best == end {
					break
				}
			}
		}
		candidate = int(s.chain[candidate]) - 1
	}
	if best == 0 {
		return dst
	}
	return append(dst, AbsoluteMatch{
		Start: pos,
		End:   pos + best,
		Match: bestPos,
	})
}

const hashMul32 = 0x1e35a7bd

func hash4(u uint32) uint32 {
	return (u * hashMul32) >> shift
}
