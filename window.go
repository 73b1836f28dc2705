package lzhuff

import (
	"encoding/binary"
	"math/bits"
	"runtime"
)

// WindowSearch is an implementation of the MatchFinder interface that
// compares every position in the window instead of consulting a hash table.
// The work per byte is proportional to the window size times the match
// length, so it is slow with the wider levels, but it always finds the
// closest of the longest matches.
type WindowSearch struct {
	Config Config

	// Progress is passed on to the GreedyParser used by FindMatches.
	Progress func(done, total int)
}

// Search returns the longest match for the bytes at pos, as the distance
// back to its start and its length. Among matches of the same length, the
// closest one wins. The match source may overlap pos. It returns (0, 0) if
// there is no match.
func (q *WindowSearch) Search(src []byte, pos int) (backRef, length int) {
	if pos <= 0 || pos >= len(src) {
		return 0, 0
	}
	end := pos + q.Config.maxLength()
	if end > len(src) {
		end = len(src)
	}
	floor := pos - q.Config.maxBackRef()
	if floor < 0 {
		floor = 0
	}

	limited := src[:end]
	best, bestPos := 0, pos
	for candidate := pos - 1; candidate >= floor; candidate-- {
		if src[candidate] != src[pos] {
			continue
		}
		n := extendMatch(limited, candidate, pos) - pos
		if n > best {
			best, bestPos = n, candidate
			if pos+best == end {
				break
			}
		}
	}
	return pos - bestPos, best
}

// FindMatches parses src with a GreedyParser, taking the match from Search
// at each position where one is used.
func (q *WindowSearch) FindMatches(dst []Match, src []byte) []Match {
	p := newGreedyParser(q.Config, q.Progress)
	return p.Parse(dst, windowSearcher{q: q, src: src}, 0, len(src))
}

// windowSearcher binds a WindowSearch to one input, so that the
// WindowSearch itself holds no per-input state.
type windowSearcher struct {
	q   *WindowSearch
	src []byte
}

func (s windowSearcher) Search(dst []AbsoluteMatch, pos, min, max int) []AbsoluteMatch {
	backRef, length := s.q.Search(s.src[:max], pos)
	if length == 0 {
		return dst
	}
	return append(dst, AbsoluteMatch{
		Start: pos,
		End:   pos + length,
		Match: pos - backRef,
	})
}

// extendMatch is based on code from github.com/golang/snappy.

//Copyright (c) 2011 The Snappy-Go Authors. All rights reserved.
//
//Redistribution and use in source and binary forms, with or without
//modification, are permitted provided that the following conditions are
//met:
//
//   * Redistributions of source code must retain the above copyright
//notice, this list of conditions and the following disclaimer.
//   * Redistributions in binary form must reproduce the above
//copyright notice, this list of conditions and the following disclaimer
//in the documentation and/or other materials provided with the
//distribution.
//   * Neither the name of Google Inc. nor the names of its
//contributors may be used to endorse or promote products derived from
//this software without specific prior written permission.
//
//THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
//"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
//LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
//A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
//OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
//SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
//LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
//DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
//THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
//(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
//OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

// extendMatch returns the largest k such that k <= len(src) and that
// src[i:i+k-j] and src[j:k] have the same contents.
//
// It assumes that:
//
//	0 <= i && i < j && j <= len(src)
func extendMatch(src []byte, i, j int) int {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		// As long as we are 8 or more bytes before the end of src, we can load and
		// compare 8 bytes at a time. If those 8 bytes are equal, repeat.
		for j+8 < len(src) {
			iBytes := binary.LittleEndian.Uint64(src[i:])
			jBytes := binary.LittleEndian.Uint64(src[j:])
			if iBytes != jBytes {
				// XOR the two values; the lowest set bit marks the first
				// byte that differs, since the loads are little-endian.
				return j + bits.TrailingZeros64(iBytes^jBytes)>>3
			}
			i, j = i+8, j+8
		}
	case "386":
		// On a 32-bit CPU, we do it 4 bytes at a time.
		for j+4 < len(src) {
			iBytes := binary.LittleEndian.Uint32(src[i:])
			jBytes := binary.LittleEndian.Uint32(src[j:])
			if iBytes != jBytes {
				return j + bits.TrailingZeros32(iBytes^jBytes)>>3
			}
			i, j = i+4, j+4
		}
	}
	for ; j < len(src) && src[i] == src[j]; i, j = i+1, j+1 {
	}
	return j
}
